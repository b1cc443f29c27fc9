package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rioplata-erp/tesoreria/internal/domain"
	"github.com/rioplata-erp/tesoreria/internal/usecase"
)

const movementColumns = `id, client_id, fecha, concepto, detalle, debe, haber, saldo,
	document_kind, document_id, created_at`

// MovementRepository implements usecase.MovementRepository.
type MovementRepository struct {
	pool *pgxpool.Pool
}

// NewMovementRepository creates a new MovementRepository.
func NewMovementRepository(pool *pgxpool.Pool) *MovementRepository {
	return &MovementRepository{pool: pool}
}

// Create inserts a movement and fills in its generated id. Insertion order of
// ids is what defines the ledger chain.
func (r *MovementRepository) Create(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error {
	q := txQuerier(tx, r.pool)

	var kind *string
	var docID *int64
	if movement.DocumentRef != nil {
		kind = &movement.DocumentRef.Kind
		docID = &movement.DocumentRef.ID
	}

	return q.QueryRow(ctx, `
		INSERT INTO movements (
			client_id, fecha, concepto, detalle, debe, haber, saldo,
			document_kind, document_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		movement.ClientID, timeToPgTimestamptz(movement.Fecha), movement.Concepto,
		movement.Detalle, decimalToNumeric(movement.Debe),
		decimalToNumeric(movement.Haber), decimalToNumeric(movement.Saldo),
		kind, docID, timeToPgTimestamptz(movement.CreatedAt),
	).Scan(&movement.ID)
}

// GetByID retrieves one movement of a client.
func (r *MovementRepository) GetByID(ctx context.Context, clientID, id int64) (*domain.Movement, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+movementColumns+` FROM movements WHERE id = $1 AND client_id = $2`,
		id, clientID)
	return scanMovement(row)
}

// GetLastForClient returns the most recently inserted movement of the client,
// or domain.ErrMovementNotFound when the ledger is empty.
func (r *MovementRepository) GetLastForClient(ctx context.Context, tx usecase.Transaction, clientID int64) (*domain.Movement, error) {
	q := txQuerier(tx, r.pool)

	row := q.QueryRow(ctx,
		`SELECT `+movementColumns+` FROM movements WHERE client_id = $1 ORDER BY id DESC LIMIT 1`,
		clientID)
	return scanMovement(row)
}

// Delete removes a movement row.
func (r *MovementRepository) Delete(ctx context.Context, tx usecase.Transaction, id int64) error {
	q := txQuerier(tx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMovementNotFound
	}
	return nil
}

// UpdateSaldo rewrites the stamped saldo of one movement during a restamp.
func (r *MovementRepository) UpdateSaldo(ctx context.Context, tx usecase.Transaction, id int64, saldo decimal.Decimal) error {
	q := txQuerier(tx, r.pool)

	tag, err := q.Exec(ctx, `UPDATE movements SET saldo = $2 WHERE id = $1`,
		id, decimalToNumeric(saldo))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMovementNotFound
	}
	return nil
}

// ListByClientAsc returns every movement of the client in insertion order.
func (r *MovementRepository) ListByClientAsc(ctx context.Context, tx usecase.Transaction, clientID int64) ([]*domain.Movement, error) {
	q := txQuerier(tx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT `+movementColumns+` FROM movements WHERE client_id = $1 ORDER BY id ASC`,
		clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMovements(rows)
}

// ListByClient returns movements for display, newest fecha first with id as
// the tiebreaker.
func (r *MovementRepository) ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]*domain.Movement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+movementColumns+` FROM movements
		 WHERE client_id = $1 ORDER BY fecha DESC, id DESC LIMIT $2 OFFSET $3`,
		clientID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMovements(rows)
}

// SumByClient aggregates the client's ledger.
func (r *MovementRepository) SumByClient(ctx context.Context, tx usecase.Transaction, clientID int64) (decimal.Decimal, decimal.Decimal, int64, error) {
	q := txQuerier(tx, r.pool)

	var (
		debe, haber pgtype.Numeric
		count       int64
	)
	err := q.QueryRow(ctx, `
		SELECT COALESCE(SUM(debe), 0), COALESCE(SUM(haber), 0), COUNT(*)
		FROM movements WHERE client_id = $1`, clientID,
	).Scan(&debe, &haber, &count)
	if err != nil {
		return decimal.Zero, decimal.Zero, 0, err
	}
	return numericToDecimal(debe), numericToDecimal(haber), count, nil
}

// HasPending reports whether the client has any movement with a nonzero
// amount. The opening movement never matches.
func (r *MovementRepository) HasPending(ctx context.Context, tx usecase.Transaction, clientID int64) (bool, error) {
	q := txQuerier(tx, r.pool)

	var pending bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM movements
			WHERE client_id = $1 AND (debe <> 0 OR haber <> 0)
		)`, clientID,
	).Scan(&pending)
	return pending, err
}

func scanMovement(row pgx.Row) (*domain.Movement, error) {
	var (
		movement           domain.Movement
		debe, haber, saldo pgtype.Numeric
		kind               *string
		docID              *int64
	)

	err := row.Scan(
		&movement.ID, &movement.ClientID, &movement.Fecha, &movement.Concepto,
		&movement.Detalle, &debe, &haber, &saldo, &kind, &docID,
		&movement.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMovementNotFound
		}
		return nil, err
	}

	movement.Debe = numericToDecimal(debe)
	movement.Haber = numericToDecimal(haber)
	movement.Saldo = numericToDecimal(saldo)
	if kind != nil && docID != nil {
		movement.DocumentRef = &domain.DocumentRef{Kind: *kind, ID: *docID}
	}
	return &movement, nil
}

func scanMovements(rows pgx.Rows) ([]*domain.Movement, error) {
	var movements []*domain.Movement
	for rows.Next() {
		movement, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		movements = append(movements, movement)
	}
	return movements, rows.Err()
}
