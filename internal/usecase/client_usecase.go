package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rioplata-erp/tesoreria/internal/domain"
)

// ClientUseCase handles client lifecycle: creation with the automatic
// opening movement, updates with derived-age maintenance, and the guarded
// soft-delete / restore transitions.
type ClientUseCase struct {
	txManager    TransactionManager
	clientRepo   ClientRepository
	movementRepo MovementRepository
	logger       zerolog.Logger
}

// NewClientUseCase creates a new ClientUseCase.
func NewClientUseCase(
	txManager TransactionManager,
	clientRepo ClientRepository,
	movementRepo MovementRepository,
	logger zerolog.Logger,
) *ClientUseCase {
	return &ClientUseCase{
		txManager:    txManager,
		clientRepo:   clientRepo,
		movementRepo: movementRepo,
		logger:       logger,
	}
}

// CreateClientInput represents input for creating a client.
type CreateClientInput struct {
	Nombre          string
	Apellido        string
	Documento       string
	TipoDocumento   domain.DocumentType
	TipoPersona     domain.PersonType
	NombreFantasia  string
	CodigoInterno   string
	EsCliente       bool
	EsProveedor     bool
	CategoriaFiscal domain.TaxCategory
	PersonaTipoIIBB domain.IIBBType
	Domicilio       string
	Barrio          string
	Localidad       string
	Telefono        string
	Email           string
	Contacto        string
	FechaNacimiento *time.Time
	Observaciones   string
}

// Create persists a new client, assigns its internal code from the new row's
// id when none is supplied, derives the age, and appends the opening
// movement. Everything commits or rolls back together.
func (uc *ClientUseCase) Create(ctx context.Context, input CreateClientInput) (*domain.Client, error) {
	if err := domain.ValidateDocumento(input.Documento, input.TipoDocumento); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	client := &domain.Client{
		Nombre:          input.Nombre,
		Apellido:        input.Apellido,
		Documento:       input.Documento,
		TipoDocumento:   input.TipoDocumento,
		TipoPersona:     input.TipoPersona,
		NombreFantasia:  input.NombreFantasia,
		CodigoInterno:   input.CodigoInterno,
		EsCliente:       input.EsCliente,
		EsProveedor:     input.EsProveedor,
		CategoriaFiscal: input.CategoriaFiscal,
		PersonaTipoIIBB: input.PersonaTipoIIBB,
		Domicilio:       input.Domicilio,
		Barrio:          input.Barrio,
		Localidad:       input.Localidad,
		Telefono:        input.Telefono,
		Email:           input.Email,
		Contacto:        input.Contacto,
		FechaNacimiento: input.FechaNacimiento,
		Observaciones:   input.Observaciones,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	client.RecomputeAge(now)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.clientRepo.Create(ctx, tx, client); err != nil {
		return nil, err
	}

	// The code derives from the row's own id, so it is monotonic and never
	// reused even after soft deletion, without a read-then-format race.
	if client.CodigoInterno == "" {
		client.CodigoInterno = domain.InternalCode(client.ID)
		if err := uc.clientRepo.AssignInternalCode(ctx, tx, client.ID, client.CodigoInterno); err != nil {
			return nil, err
		}
	}

	opening := domain.NewOpeningMovement(client.ID, now)
	if err := uc.movementRepo.Create(ctx, tx, opening); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Int64("client_id", client.ID).
		Str("codigo", client.CodigoInterno).
		Str("nombre", client.FullName()).
		Msg("cliente creado")

	return client, nil
}

// UpdateClientInput represents input for updating a client. Nil pointers
// leave the field unchanged.
type UpdateClientInput struct {
	Nombre          *string
	Apellido        *string
	Documento       *string
	TipoDocumento   *domain.DocumentType
	TipoPersona     *domain.PersonType
	NombreFantasia  *string
	EsCliente       *bool
	EsProveedor     *bool
	CategoriaFiscal *domain.TaxCategory
	PersonaTipoIIBB *domain.IIBBType
	Domicilio       *string
	Barrio          *string
	Localidad       *string
	Telefono        *string
	Email           *string
	Contacto        *string
	FechaNacimiento *time.Time
	Observaciones   *string
}

// Update applies the changes, recomputing the derived age when the birth
// date changes. Email and documento changes are logged but not enforced.
func (uc *ClientUseCase) Update(ctx context.Context, id int64, input UpdateClientInput) (*domain.Client, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	client, err := uc.clientRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != client.Email {
		uc.logger.Warn().
			Int64("client_id", client.ID).
			Str("email_anterior", client.Email).
			Str("email_nuevo", *input.Email).
			Msg("email del cliente modificado")
	}
	if input.Documento != nil && *input.Documento != client.Documento {
		tipo := client.TipoDocumento
		if input.TipoDocumento != nil {
			tipo = *input.TipoDocumento
		}
		if err := domain.ValidateDocumento(*input.Documento, tipo); err != nil {
			return nil, err
		}
		uc.logger.Warn().
			Int64("client_id", client.ID).
			Str("documento_anterior", client.Documento).
			Str("documento_nuevo", *input.Documento).
			Msg("documento del cliente modificado")
	}

	birthDateChanged := applyClientUpdate(client, input)
	if birthDateChanged {
		client.RecomputeAge(time.Now().UTC())
	}
	client.UpdatedAt = time.Now().UTC()

	if err := uc.clientRepo.Update(ctx, tx, client); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Int64("client_id", client.ID).
		Str("codigo", client.CodigoInterno).
		Msg("cliente actualizado")

	return client, nil
}

// SoftDelete marks the client deleted after the ledger guard passes: the
// cached saldo must be zero and the ledger must hold no pending movements.
// On violation nothing persists, the client stays active.
func (uc *ClientUseCase) SoftDelete(ctx context.Context, id int64) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	client, err := uc.clientRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}

	hasPending, err := uc.movementRepo.HasPending(ctx, tx, id)
	if err != nil {
		return err
	}

	if err := client.CanDelete(hasPending); err != nil {
		return err
	}

	if err := uc.clientRepo.SoftDelete(ctx, tx, id, time.Now().UTC()); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.logger.Warn().
		Int64("client_id", client.ID).
		Str("codigo", client.CodigoInterno).
		Str("nombre", client.FullName()).
		Msg("cliente eliminado (soft delete)")

	return nil
}

// Restore returns a soft-deleted client to the active state. The transition
// is unconditional; saldo and movements are untouched.
func (uc *ClientUseCase) Restore(ctx context.Context, id int64) (*domain.Client, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	client, err := uc.clientRepo.GetByIDWithDeleted(ctx, id)
	if err != nil {
		return nil, err
	}

	if client.IsDeleted() {
		if err := uc.clientRepo.Restore(ctx, tx, id); err != nil {
			return nil, err
		}
		client.DeletedAt = nil
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Int64("client_id", client.ID).
		Str("codigo", client.CodigoInterno).
		Msg("cliente restaurado")

	return client, nil
}

// ForceDelete removes the client row and, via cascade, its whole ledger.
// It intentionally bypasses the soft-delete guard: this is an administrative
// override, not a user-facing operation, and it is not exposed over HTTP.
func (uc *ClientUseCase) ForceDelete(ctx context.Context, id int64) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	client, err := uc.clientRepo.GetByIDWithDeleted(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.clientRepo.ForceDelete(ctx, tx, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.logger.Warn().
		Int64("client_id", client.ID).
		Str("codigo", client.CodigoInterno).
		Str("nombre", client.FullName()).
		Msg("cliente eliminado permanentemente")

	return nil
}

// Get retrieves an active client by ID.
func (uc *ClientUseCase) Get(ctx context.Context, id int64) (*domain.Client, error) {
	return uc.clientRepo.GetByID(ctx, id)
}

// List lists clients with optional search and role filters.
func (uc *ClientUseCase) List(ctx context.Context, filter ListClientsFilter) ([]*domain.Client, error) {
	filter.Limit, filter.Offset = clampPage(filter.Limit, filter.Offset)
	return uc.clientRepo.List(ctx, filter)
}

// applyClientUpdate copies non-nil fields onto the client and reports
// whether the birth date changed.
func applyClientUpdate(client *domain.Client, input UpdateClientInput) bool {
	if input.Nombre != nil {
		client.Nombre = *input.Nombre
	}
	if input.Apellido != nil {
		client.Apellido = *input.Apellido
	}
	if input.Documento != nil {
		client.Documento = *input.Documento
	}
	if input.TipoDocumento != nil {
		client.TipoDocumento = *input.TipoDocumento
	}
	if input.TipoPersona != nil {
		client.TipoPersona = *input.TipoPersona
	}
	if input.NombreFantasia != nil {
		client.NombreFantasia = *input.NombreFantasia
	}
	if input.EsCliente != nil {
		client.EsCliente = *input.EsCliente
	}
	if input.EsProveedor != nil {
		client.EsProveedor = *input.EsProveedor
	}
	if input.CategoriaFiscal != nil {
		client.CategoriaFiscal = *input.CategoriaFiscal
	}
	if input.PersonaTipoIIBB != nil {
		client.PersonaTipoIIBB = *input.PersonaTipoIIBB
	}
	if input.Domicilio != nil {
		client.Domicilio = *input.Domicilio
	}
	if input.Barrio != nil {
		client.Barrio = *input.Barrio
	}
	if input.Localidad != nil {
		client.Localidad = *input.Localidad
	}
	if input.Telefono != nil {
		client.Telefono = *input.Telefono
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Contacto != nil {
		client.Contacto = *input.Contacto
	}
	if input.Observaciones != nil {
		client.Observaciones = *input.Observaciones
	}

	birthDateChanged := false
	if input.FechaNacimiento != nil {
		if client.FechaNacimiento == nil || !client.FechaNacimiento.Equal(*input.FechaNacimiento) {
			birthDateChanged = true
		}
		client.FechaNacimiento = input.FechaNacimiento
	}
	return birthDateChanged
}
