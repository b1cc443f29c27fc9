package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rioplata-erp/tesoreria/internal/domain"
)

// MovementUseCase handles current-account ledger mutations. Every mutation
// runs inside one transaction with the client row locked before the previous
// balance is read, so concurrent appends to the same ledger serialize.
type MovementUseCase struct {
	txManager    TransactionManager
	clientRepo   ClientRepository
	movementRepo MovementRepository
	logger       zerolog.Logger
}

// NewMovementUseCase creates a new MovementUseCase.
func NewMovementUseCase(
	txManager TransactionManager,
	clientRepo ClientRepository,
	movementRepo MovementRepository,
	logger zerolog.Logger,
) *MovementUseCase {
	return &MovementUseCase{
		txManager:    txManager,
		clientRepo:   clientRepo,
		movementRepo: movementRepo,
		logger:       logger,
	}
}

// AppendMovementInput represents input for appending a ledger movement.
type AppendMovementInput struct {
	ClientID    int64
	Fecha       time.Time
	Concepto    string
	Detalle     string
	Debe        decimal.Decimal
	Haber       decimal.Decimal
	DocumentRef *domain.DocumentRef
}

// Append validates and appends a movement to the client's ledger, stamping
// its running balance and refreshing the client's cached saldo.
func (uc *MovementUseCase) Append(ctx context.Context, input AppendMovementInput) (*domain.Movement, error) {
	if err := domain.ValidateConcepto(input.Concepto); err != nil {
		return nil, err
	}
	if err := domain.ValidateDetalle(input.Detalle); err != nil {
		return nil, err
	}

	movement := &domain.Movement{
		ClientID:    input.ClientID,
		Fecha:       input.Fecha,
		Concepto:    input.Concepto,
		Detalle:     input.Detalle,
		Debe:        input.Debe,
		Haber:       input.Haber,
		DocumentRef: input.DocumentRef,
		CreatedAt:   time.Now().UTC(),
	}
	if err := movement.Validate(); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	client, err := uc.clientRepo.GetByIDForUpdate(ctx, tx, input.ClientID)
	if err != nil {
		return nil, err
	}

	if err := stampAndInsert(ctx, tx, uc.clientRepo, uc.movementRepo, movement); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Int64("client_id", client.ID).
		Int64("movement_id", movement.ID).
		Str("debe", movement.Debe.StringFixed(2)).
		Str("haber", movement.Haber.StringFixed(2)).
		Str("saldo", movement.Saldo.StringFixed(2)).
		Msg("movimiento de cuenta corriente creado")

	return movement, nil
}

// Remove deletes a movement and repairs the ledger: later movements are
// restamped in insertion order and the client's cached saldo is refreshed,
// all within the same transaction.
func (uc *MovementUseCase) Remove(ctx context.Context, clientID, movementID int64) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := uc.clientRepo.GetByIDForUpdate(ctx, tx, clientID); err != nil {
		return err
	}

	movement, err := uc.movementRepo.GetByID(ctx, clientID, movementID)
	if err != nil {
		return err
	}

	if err := uc.movementRepo.Delete(ctx, tx, movement.ID); err != nil {
		return err
	}

	if err := restampChain(ctx, tx, uc.movementRepo, clientID); err != nil {
		return err
	}

	if err := refreshClientSaldo(ctx, tx, uc.clientRepo, uc.movementRepo, clientID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.logger.Info().
		Int64("client_id", clientID).
		Int64("movement_id", movementID).
		Msg("movimiento eliminado, saldos recalculados")

	return nil
}

// GetMovement retrieves one movement of a client.
func (uc *MovementUseCase) GetMovement(ctx context.Context, clientID, movementID int64) (*domain.Movement, error) {
	if _, err := uc.clientRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	return uc.movementRepo.GetByID(ctx, clientID, movementID)
}

// ListMovementsInput represents input for listing movements.
type ListMovementsInput struct {
	ClientID int64
	Limit    int
	Offset   int
}

// ListMovements lists a client's movements ordered by fecha descending.
func (uc *MovementUseCase) ListMovements(ctx context.Context, input ListMovementsInput) ([]*domain.Movement, error) {
	if _, err := uc.clientRepo.GetByID(ctx, input.ClientID); err != nil {
		return nil, err
	}
	limit, offset := clampPage(input.Limit, input.Offset)
	return uc.movementRepo.ListByClient(ctx, input.ClientID, limit, offset)
}

// BalanceSummary is the read-only projection of a client's ledger.
type BalanceSummary struct {
	SaldoActual         decimal.Decimal
	TotalDebe           decimal.Decimal
	TotalHaber          decimal.Decimal
	UltimosMovimientos  []*domain.Movement
	CantidadMovimientos int64
}

// GetBalance re-reads the ledger from storage and builds the summary. No
// in-memory state is trusted.
func (uc *MovementUseCase) GetBalance(ctx context.Context, clientID int64) (*BalanceSummary, error) {
	client, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	totalDebe, totalHaber, count, err := uc.movementRepo.SumByClient(ctx, nil, clientID)
	if err != nil {
		return nil, err
	}

	last, err := uc.movementRepo.ListByClient(ctx, clientID, BalanceSummaryMovements, 0)
	if err != nil {
		return nil, err
	}

	return &BalanceSummary{
		SaldoActual:         client.Saldo,
		TotalDebe:           totalDebe,
		TotalHaber:          totalHaber,
		UltimosMovimientos:  last,
		CantidadMovimientos: count,
	}, nil
}

// stampAndInsert computes the movement's running balance from the last
// entry, inserts it, and refreshes the client's cached saldo. Callers must
// hold the client row lock on tx.
func stampAndInsert(ctx context.Context, tx Transaction, clientRepo ClientRepository, movementRepo MovementRepository, movement *domain.Movement) error {
	previous := decimal.Zero

	last, err := movementRepo.GetLastForClient(ctx, tx, movement.ClientID)
	if err != nil && !errors.Is(err, domain.ErrMovementNotFound) {
		return err
	}
	if last != nil {
		previous = last.Saldo
	}

	movement.Saldo = domain.NextBalance(previous, movement.Debe, movement.Haber)

	if err := movementRepo.Create(ctx, tx, movement); err != nil {
		return err
	}

	return refreshClientSaldo(ctx, tx, clientRepo, movementRepo, movement.ClientID)
}

// refreshClientSaldo recomputes the cached client saldo from the full entry
// sum. This is the only write path for Client.Saldo.
func refreshClientSaldo(ctx context.Context, tx Transaction, clientRepo ClientRepository, movementRepo MovementRepository, clientID int64) error {
	totalDebe, totalHaber, _, err := movementRepo.SumByClient(ctx, tx, clientID)
	if err != nil {
		return err
	}
	return clientRepo.UpdateSaldo(ctx, tx, clientID, totalDebe.Sub(totalHaber), time.Now().UTC())
}

// restampChain rewrites the stored saldo of every movement of the client in
// insertion order so stamped balances stay a pure function of the chain.
func restampChain(ctx context.Context, tx Transaction, movementRepo MovementRepository, clientID int64) error {
	movements, err := movementRepo.ListByClientAsc(ctx, tx, clientID)
	if err != nil {
		return err
	}

	saldo := decimal.Zero
	for _, m := range movements {
		saldo = domain.NextBalance(saldo, m.Debe, m.Haber)
		if !m.Saldo.Equal(saldo) {
			if err := movementRepo.UpdateSaldo(ctx, tx, m.ID, saldo); err != nil {
				return err
			}
		}
	}
	return nil
}
