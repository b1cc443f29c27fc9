package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rioplata-erp/tesoreria/internal/domain"
	"github.com/rioplata-erp/tesoreria/internal/usecase"
)

const receiptColumns = `id, client_id, numero_recibo, fecha_recibo, estado, subtotal,
	impuesto, total, referencia, concepto, metodo_pago, created_at, updated_at, deleted_at`

// ReceiptRepository implements usecase.ReceiptRepository.
type ReceiptRepository struct {
	pool *pgxpool.Pool
}

// NewReceiptRepository creates a new ReceiptRepository.
func NewReceiptRepository(pool *pgxpool.Pool) *ReceiptRepository {
	return &ReceiptRepository{pool: pool}
}

// Create inserts a receipt and fills in its generated id. The numero is
// stamped afterwards via AssignNumber, inside the same transaction.
func (r *ReceiptRepository) Create(ctx context.Context, tx usecase.Transaction, receipt *domain.Receipt) error {
	q := txQuerier(tx, r.pool)

	return q.QueryRow(ctx, `
		INSERT INTO receipts (
			client_id, fecha_recibo, estado, subtotal, impuesto, total,
			referencia, concepto, metodo_pago, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		receipt.ClientID, timeToPgTimestamptz(receipt.FechaRecibo), receipt.Estado,
		decimalToNumeric(receipt.Subtotal), decimalToNumeric(receipt.Impuesto),
		decimalToNumeric(receipt.Total), receipt.Referencia, receipt.Concepto,
		receipt.MetodoPago, timeToPgTimestamptz(receipt.CreatedAt),
		timeToPgTimestamptz(receipt.UpdatedAt),
	).Scan(&receipt.ID)
}

// AssignNumber stamps the generated numero onto a freshly inserted receipt.
func (r *ReceiptRepository) AssignNumber(ctx context.Context, tx usecase.Transaction, id int64, numero string) error {
	q := txQuerier(tx, r.pool)

	tag, err := q.Exec(ctx, `UPDATE receipts SET numero_recibo = $2 WHERE id = $1`, id, numero)
	if err != nil {
		if isUniqueViolation(err, "receipts_numero_recibo_key") {
			return domain.ErrDuplicateReceiptNumber
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReceiptNotFound
	}
	return nil
}

// CreateItem inserts one receipt line.
func (r *ReceiptRepository) CreateItem(ctx context.Context, tx usecase.Transaction, item *domain.ReceiptItem) error {
	q := txQuerier(tx, r.pool)

	return q.QueryRow(ctx, `
		INSERT INTO receipt_items (receipt_id, descripcion, cantidad, precio_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		item.ReceiptID, item.Descripcion, decimalToNumeric(item.Cantidad),
		decimalToNumeric(item.PrecioUnitario), decimalToNumeric(item.Subtotal),
	).Scan(&item.ID)
}

// GetByID retrieves a receipt with its items.
func (r *ReceiptRepository) GetByID(ctx context.Context, id int64) (*domain.Receipt, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+receiptColumns+` FROM receipts WHERE id = $1 AND deleted_at IS NULL`, id)

	receipt, err := scanReceipt(row)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, receipt_id, descripcion, cantidad, precio_unitario, subtotal
		FROM receipt_items WHERE receipt_id = $1 ORDER BY id ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item                               domain.ReceiptItem
			cantidad, precioUnitario, subtotal pgtype.Numeric
		)
		if err := rows.Scan(&item.ID, &item.ReceiptID, &item.Descripcion,
			&cantidad, &precioUnitario, &subtotal); err != nil {
			return nil, err
		}
		item.Cantidad = numericToDecimal(cantidad)
		item.PrecioUnitario = numericToDecimal(precioUnitario)
		item.Subtotal = numericToDecimal(subtotal)
		receipt.Items = append(receipt.Items, item)
	}
	return receipt, rows.Err()
}

// List lists receipts newest first, optionally restricted to one client.
// Items are not loaded for listings.
func (r *ReceiptRepository) List(ctx context.Context, clientID int64, limit, offset int) ([]*domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE deleted_at IS NULL`
	args := []any{}

	if clientID != 0 {
		args = append(args, clientID)
		query += ` AND client_id = $1 ORDER BY id DESC LIMIT $2 OFFSET $3`
	} else {
		query += ` ORDER BY id DESC LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []*domain.Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	return receipts, rows.Err()
}

// SoftDelete marks the receipt deleted. Its ledger movement is untouched.
func (r *ReceiptRepository) SoftDelete(ctx context.Context, tx usecase.Transaction, id int64, deletedAt time.Time) error {
	q := txQuerier(tx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE receipts SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, timeToPgTimestamptz(deletedAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReceiptNotFound
	}
	return nil
}

func scanReceipt(row pgx.Row) (*domain.Receipt, error) {
	var (
		receipt                   domain.Receipt
		numero                    pgtype.Text
		subtotal, impuesto, total pgtype.Numeric
	)

	err := row.Scan(
		&receipt.ID, &receipt.ClientID, &numero, &receipt.FechaRecibo,
		&receipt.Estado, &subtotal, &impuesto, &total, &receipt.Referencia,
		&receipt.Concepto, &receipt.MetodoPago, &receipt.CreatedAt,
		&receipt.UpdatedAt, &receipt.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrReceiptNotFound
		}
		return nil, err
	}

	receipt.NumeroRecibo = numero.String
	receipt.Subtotal = numericToDecimal(subtotal)
	receipt.Impuesto = numericToDecimal(impuesto)
	receipt.Total = numericToDecimal(total)
	return &receipt, nil
}
