package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rioplata-erp/tesoreria/internal/domain"
)

// ClientTaxUseCase handles tax associations on clients.
type ClientTaxUseCase struct {
	clientRepo ClientRepository
	taxRepo    ClientTaxRepository
	logger     zerolog.Logger
}

// NewClientTaxUseCase creates a new ClientTaxUseCase.
func NewClientTaxUseCase(clientRepo ClientRepository, taxRepo ClientTaxRepository, logger zerolog.Logger) *ClientTaxUseCase {
	return &ClientTaxUseCase{
		clientRepo: clientRepo,
		taxRepo:    taxRepo,
		logger:     logger,
	}
}

// AttachTaxInput represents input for attaching a tax to a client.
type AttachTaxInput struct {
	ClientID           int64
	TaxID              int64
	FechaActualizacion time.Time
	Alcuota            decimal.Decimal
	Observaciones      string
}

// Attach registers a tax rate for the client at an effective date.
func (uc *ClientTaxUseCase) Attach(ctx context.Context, input AttachTaxInput) (*domain.ClientTax, error) {
	if _, err := uc.clientRepo.GetByID(ctx, input.ClientID); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(input.Alcuota); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tax := &domain.ClientTax{
		ClientID:           input.ClientID,
		TaxID:              input.TaxID,
		FechaActualizacion: input.FechaActualizacion,
		Alcuota:            input.Alcuota,
		Observaciones:      input.Observaciones,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := uc.taxRepo.Create(ctx, tax); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Int64("client_id", input.ClientID).
		Int64("tax_id", input.TaxID).
		Str("alcuota", input.Alcuota.StringFixed(2)).
		Msg("impuesto asociado al cliente")

	return tax, nil
}

// UpdateTaxInput represents input for updating a client tax.
type UpdateTaxInput struct {
	FechaActualizacion *time.Time
	Alcuota            *decimal.Decimal
	Observaciones      *string
}

// Update modifies an existing tax association.
func (uc *ClientTaxUseCase) Update(ctx context.Context, clientID, taxID int64, input UpdateTaxInput) (*domain.ClientTax, error) {
	tax, err := uc.taxRepo.GetByID(ctx, clientID, taxID)
	if err != nil {
		return nil, err
	}

	if input.FechaActualizacion != nil {
		tax.FechaActualizacion = *input.FechaActualizacion
	}
	if input.Alcuota != nil {
		if err := domain.ValidateAmount(*input.Alcuota); err != nil {
			return nil, err
		}
		tax.Alcuota = *input.Alcuota
	}
	if input.Observaciones != nil {
		tax.Observaciones = *input.Observaciones
	}
	tax.UpdatedAt = time.Now().UTC()

	if err := uc.taxRepo.Update(ctx, tax); err != nil {
		return nil, err
	}
	return tax, nil
}

// Detach removes a tax association from the client.
func (uc *ClientTaxUseCase) Detach(ctx context.Context, clientID, taxID int64) error {
	if err := uc.taxRepo.Delete(ctx, clientID, taxID); err != nil {
		return err
	}
	uc.logger.Info().
		Int64("client_id", clientID).
		Int64("client_tax_id", taxID).
		Msg("impuesto eliminado del cliente")
	return nil
}

// ListByClient lists the tax associations of one client.
func (uc *ClientTaxUseCase) ListByClient(ctx context.Context, clientID int64) ([]*domain.ClientTax, error) {
	if _, err := uc.clientRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	return uc.taxRepo.ListByClient(ctx, clientID)
}
