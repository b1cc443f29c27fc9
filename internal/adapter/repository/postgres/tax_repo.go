package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rioplata-erp/tesoreria/internal/domain"
)

const clientTaxColumns = `id, client_id, tax_id, fecha_actualizacion, alcuota,
	observaciones, created_at, updated_at`

// ClientTaxRepository implements usecase.ClientTaxRepository.
type ClientTaxRepository struct {
	pool *pgxpool.Pool
}

// NewClientTaxRepository creates a new ClientTaxRepository.
func NewClientTaxRepository(pool *pgxpool.Pool) *ClientTaxRepository {
	return &ClientTaxRepository{pool: pool}
}

// Create inserts a tax association and fills in its generated id.
func (r *ClientTaxRepository) Create(ctx context.Context, tax *domain.ClientTax) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO client_taxes (
			client_id, tax_id, fecha_actualizacion, alcuota, observaciones,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		tax.ClientID, tax.TaxID, timeToPgTimestamptz(tax.FechaActualizacion),
		decimalToNumeric(tax.Alcuota), tax.Observaciones,
		timeToPgTimestamptz(tax.CreatedAt), timeToPgTimestamptz(tax.UpdatedAt),
	).Scan(&tax.ID)
	if err != nil {
		if isUniqueViolation(err, "client_taxes_client_tax_fecha_key") {
			return domain.ErrDuplicateClientTax
		}
		return err
	}
	return nil
}

// GetByID retrieves one tax association of a client.
func (r *ClientTaxRepository) GetByID(ctx context.Context, clientID, id int64) (*domain.ClientTax, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+clientTaxColumns+` FROM client_taxes WHERE id = $1 AND client_id = $2`,
		id, clientID)
	return scanClientTax(row)
}

// Update persists the mutable fields of a tax association.
func (r *ClientTaxRepository) Update(ctx context.Context, tax *domain.ClientTax) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE client_taxes SET
			fecha_actualizacion = $2, alcuota = $3, observaciones = $4, updated_at = $5
		WHERE id = $1`,
		tax.ID, timeToPgTimestamptz(tax.FechaActualizacion),
		decimalToNumeric(tax.Alcuota), tax.Observaciones,
		timeToPgTimestamptz(tax.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err, "client_taxes_client_tax_fecha_key") {
			return domain.ErrDuplicateClientTax
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientTaxNotFound
	}
	return nil
}

// Delete removes a tax association of a client.
func (r *ClientTaxRepository) Delete(ctx context.Context, clientID, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM client_taxes WHERE id = $1 AND client_id = $2`, id, clientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientTaxNotFound
	}
	return nil
}

// ListByClient lists the tax associations of one client, newest first.
func (r *ClientTaxRepository) ListByClient(ctx context.Context, clientID int64) ([]*domain.ClientTax, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+clientTaxColumns+` FROM client_taxes
		 WHERE client_id = $1 ORDER BY fecha_actualizacion DESC, id DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var taxes []*domain.ClientTax
	for rows.Next() {
		tax, err := scanClientTax(rows)
		if err != nil {
			return nil, err
		}
		taxes = append(taxes, tax)
	}
	return taxes, rows.Err()
}

func scanClientTax(row pgx.Row) (*domain.ClientTax, error) {
	var (
		tax     domain.ClientTax
		alcuota pgtype.Numeric
	)

	err := row.Scan(
		&tax.ID, &tax.ClientID, &tax.TaxID, &tax.FechaActualizacion, &alcuota,
		&tax.Observaciones, &tax.CreatedAt, &tax.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClientTaxNotFound
		}
		return nil, err
	}

	tax.Alcuota = numericToDecimal(alcuota)
	return &tax, nil
}
