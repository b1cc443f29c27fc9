package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rioplata-erp/tesoreria/internal/domain"
)

// ReceiptUseCase handles receipts. Creating a receipt posts a credit
// movement on the client's current account referencing the receipt, inside
// the same transaction.
type ReceiptUseCase struct {
	txManager    TransactionManager
	clientRepo   ClientRepository
	movementRepo MovementRepository
	receiptRepo  ReceiptRepository
	logger       zerolog.Logger
}

// NewReceiptUseCase creates a new ReceiptUseCase.
func NewReceiptUseCase(
	txManager TransactionManager,
	clientRepo ClientRepository,
	movementRepo MovementRepository,
	receiptRepo ReceiptRepository,
	logger zerolog.Logger,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		txManager:    txManager,
		clientRepo:   clientRepo,
		movementRepo: movementRepo,
		receiptRepo:  receiptRepo,
		logger:       logger,
	}
}

// ReceiptItemInput is one line of a receipt being created.
type ReceiptItemInput struct {
	Descripcion    string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
}

// CreateReceiptInput represents input for creating a receipt.
type CreateReceiptInput struct {
	ClientID    int64
	FechaRecibo time.Time
	Estado      domain.ReceiptStatus
	Impuesto    decimal.Decimal
	Referencia  string
	Concepto    string
	MetodoPago  string
	Items       []ReceiptItemInput
}

// Create persists the receipt with a sequential number, computes its totals
// from the items, and posts the ledger credit for the client.
func (uc *ReceiptUseCase) Create(ctx context.Context, input CreateReceiptInput) (*domain.Receipt, error) {
	now := time.Now().UTC()

	estado := input.Estado
	if estado == "" {
		estado = domain.ReceiptPendiente
	}
	metodoPago := input.MetodoPago
	if metodoPago == "" {
		metodoPago = "efectivo"
	}

	receipt := &domain.Receipt{
		ClientID:    input.ClientID,
		FechaRecibo: input.FechaRecibo,
		Estado:      estado,
		Impuesto:    input.Impuesto,
		Referencia:  input.Referencia,
		Concepto:    input.Concepto,
		MetodoPago:  metodoPago,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, item := range input.Items {
		receipt.Items = append(receipt.Items, domain.ReceiptItem{
			Descripcion:    item.Descripcion,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
		})
	}
	receipt.ComputeTotals()

	if err := domain.ValidateAmount(receipt.Total); err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the client row first: the receipt posts a ledger movement.
	client, err := uc.clientRepo.GetByIDForUpdate(ctx, tx, input.ClientID)
	if err != nil {
		return nil, err
	}

	if err := uc.receiptRepo.Create(ctx, tx, receipt); err != nil {
		return nil, err
	}

	receipt.NumeroRecibo = domain.ReceiptNumber(receipt.ID)
	if err := uc.receiptRepo.AssignNumber(ctx, tx, receipt.ID, receipt.NumeroRecibo); err != nil {
		return nil, err
	}

	for i := range receipt.Items {
		receipt.Items[i].ReceiptID = receipt.ID
		if err := uc.receiptRepo.CreateItem(ctx, tx, &receipt.Items[i]); err != nil {
			return nil, err
		}
	}

	if receipt.Total.IsPositive() {
		movement := &domain.Movement{
			ClientID:  client.ID,
			Fecha:     receipt.FechaRecibo,
			Concepto:  "Recibo " + receipt.NumeroRecibo,
			Detalle:   receipt.Concepto,
			Debe:      decimal.Zero,
			Haber:     receipt.Total,
			CreatedAt: now,
			DocumentRef: &domain.DocumentRef{
				Kind: domain.DocumentKindReceipt,
				ID:   receipt.ID,
			},
		}
		if err := stampAndInsert(ctx, tx, uc.clientRepo, uc.movementRepo, movement); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Int64("receipt_id", receipt.ID).
		Str("numero", receipt.NumeroRecibo).
		Str("total", receipt.Total.StringFixed(2)).
		Msg("recibo creado")

	return receipt, nil
}

// Get retrieves a receipt with its items.
func (uc *ReceiptUseCase) Get(ctx context.Context, id int64) (*domain.Receipt, error) {
	return uc.receiptRepo.GetByID(ctx, id)
}

// ListReceiptsInput represents input for listing receipts.
type ListReceiptsInput struct {
	ClientID int64
	Limit    int
	Offset   int
}

// List lists receipts, optionally restricted to one client.
func (uc *ReceiptUseCase) List(ctx context.Context, input ListReceiptsInput) ([]*domain.Receipt, error) {
	limit, offset := clampPage(input.Limit, input.Offset)
	return uc.receiptRepo.List(ctx, input.ClientID, limit, offset)
}

// Delete soft-deletes a receipt. The ledger movement it originated remains;
// corrections are modeled as compensating movements, not retroactive edits.
func (uc *ReceiptUseCase) Delete(ctx context.Context, id int64) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	receipt, err := uc.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.receiptRepo.SoftDelete(ctx, tx, receipt.ID, time.Now().UTC()); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	uc.logger.Info().Int64("receipt_id", receipt.ID).Msg("recibo eliminado")
	return nil
}
