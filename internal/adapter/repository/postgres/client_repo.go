package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rioplata-erp/tesoreria/internal/domain"
	"github.com/rioplata-erp/tesoreria/internal/usecase"
)

const clientColumns = `id, nombre, apellido, documento, tipo_documento, tipo_persona,
	nombre_fantasia, codigo_interno, es_cliente, es_proveedor, categoria_fiscal,
	persona_tipo_iibb, domicilio, barrio, localidad, telefono, email, contacto,
	fecha_nacimiento, edad, observaciones, saldo, created_at, updated_at, deleted_at`

// ClientRepository implements usecase.ClientRepository.
type ClientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

// Create inserts a new client and fills in its generated id.
func (r *ClientRepository) Create(ctx context.Context, tx usecase.Transaction, client *domain.Client) error {
	q := txQuerier(tx, r.pool)

	err := q.QueryRow(ctx, `
		INSERT INTO clients (
			nombre, apellido, documento, tipo_documento, tipo_persona,
			nombre_fantasia, codigo_interno, es_cliente, es_proveedor,
			categoria_fiscal, persona_tipo_iibb, domicilio, barrio, localidad,
			telefono, email, contacto, fecha_nacimiento, edad, observaciones,
			saldo, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23
		) RETURNING id`,
		client.Nombre, client.Apellido, client.Documento, client.TipoDocumento,
		client.TipoPersona, client.NombreFantasia, client.CodigoInterno,
		client.EsCliente, client.EsProveedor, client.CategoriaFiscal,
		client.PersonaTipoIIBB, client.Domicilio, client.Barrio, client.Localidad,
		client.Telefono, client.Email, client.Contacto, client.FechaNacimiento,
		client.Edad, client.Observaciones, decimalToNumeric(client.Saldo),
		timeToPgTimestamptz(client.CreatedAt), timeToPgTimestamptz(client.UpdatedAt),
	).Scan(&client.ID)
	if err != nil {
		if isUniqueViolation(err, "clients_documento_key") {
			return domain.ErrDuplicateDocumento
		}
		if isUniqueViolation(err, "clients_codigo_interno_key") {
			return domain.ErrDuplicateCodigoInterno
		}
		return err
	}
	return nil
}

// AssignInternalCode stamps the generated code onto a freshly inserted row.
func (r *ClientRepository) AssignInternalCode(ctx context.Context, tx usecase.Transaction, id int64, code string) error {
	q := txQuerier(tx, r.pool)

	tag, err := q.Exec(ctx, `UPDATE clients SET codigo_interno = $2 WHERE id = $1`, id, code)
	if err != nil {
		if isUniqueViolation(err, "clients_codigo_interno_key") {
			return domain.ErrDuplicateCodigoInterno
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// GetByID retrieves an active client by ID.
func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1 AND deleted_at IS NULL`, id)
	return scanClient(row)
}

// GetByIDWithDeleted retrieves a client by ID including soft-deleted rows.
func (r *ClientRepository) GetByIDWithDeleted(ctx context.Context, id int64) (*domain.Client, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	return scanClient(row)
}

// GetByIDForUpdate retrieves an active client with a FOR UPDATE lock.
func (r *ClientRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Client, error) {
	q := txQuerier(tx, r.pool)

	row := q.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id)
	return scanClient(row)
}

// Update persists the mutable fields of a client. Saldo is excluded; it only
// moves through UpdateSaldo.
func (r *ClientRepository) Update(ctx context.Context, tx usecase.Transaction, client *domain.Client) error {
	q := txQuerier(tx, r.pool)

	tag, err := q.Exec(ctx, `
		UPDATE clients SET
			nombre = $2, apellido = $3, documento = $4, tipo_documento = $5,
			tipo_persona = $6, nombre_fantasia = $7, es_cliente = $8,
			es_proveedor = $9, categoria_fiscal = $10, persona_tipo_iibb = $11,
			domicilio = $12, barrio = $13, localidad = $14, telefono = $15,
			email = $16, contacto = $17, fecha_nacimiento = $18, edad = $19,
			observaciones = $20, updated_at = $21
		WHERE id = $1 AND deleted_at IS NULL`,
		client.ID, client.Nombre, client.Apellido, client.Documento,
		client.TipoDocumento, client.TipoPersona, client.NombreFantasia,
		client.EsCliente, client.EsProveedor, client.CategoriaFiscal,
		client.PersonaTipoIIBB, client.Domicilio, client.Barrio, client.Localidad,
		client.Telefono, client.Email, client.Contacto, client.FechaNacimiento,
		client.Edad, client.Observaciones, timeToPgTimestamptz(client.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err, "clients_documento_key") {
			return domain.ErrDuplicateDocumento
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// UpdateSaldo writes the cached saldo of a client.
func (r *ClientRepository) UpdateSaldo(ctx context.Context, tx usecase.Transaction, id int64, saldo decimal.Decimal, updatedAt time.Time) error {
	q := txQuerier(tx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE clients SET saldo = $2, updated_at = $3 WHERE id = $1`,
		id, decimalToNumeric(saldo), timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// SoftDelete marks the client deleted.
func (r *ClientRepository) SoftDelete(ctx context.Context, tx usecase.Transaction, id int64, deletedAt time.Time) error {
	q := txQuerier(tx, r.pool)

	tag, err := q.Exec(ctx,
		`UPDATE clients SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, timeToPgTimestamptz(deletedAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// Restore clears the soft-delete mark.
func (r *ClientRepository) Restore(ctx context.Context, tx usecase.Transaction, id int64) error {
	q := txQuerier(tx, r.pool)

	tag, err := q.Exec(ctx, `UPDATE clients SET deleted_at = NULL WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// ForceDelete removes the row permanently. Movements, taxes, certificates and
// receipts follow via ON DELETE CASCADE.
func (r *ClientRepository) ForceDelete(ctx context.Context, tx usecase.Transaction, id int64) error {
	q := txQuerier(tx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// List lists active clients with optional search and role filters.
func (r *ClientRepository) List(ctx context.Context, filter usecase.ListClientsFilter) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE deleted_at IS NULL`
	args := []any{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += ` AND (nombre ILIKE $1 OR apellido ILIKE $1 OR nombre_fantasia ILIKE $1
			OR documento ILIKE $1 OR codigo_interno ILIKE $1)`
	}
	if filter.OnlyClients {
		query += ` AND es_cliente`
	}
	if filter.OnlyProviders {
		query += ` AND es_proveedor`
	}

	args = append(args, filter.Limit, filter.Offset)
	if filter.Search != "" {
		query += ` ORDER BY apellido, nombre LIMIT $2 OFFSET $3`
	} else {
		query += ` ORDER BY apellido, nombre LIMIT $1 OFFSET $2`
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*domain.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var (
		client        domain.Client
		codigoInterno pgtype.Text
		saldo         pgtype.Numeric
	)

	err := row.Scan(
		&client.ID, &client.Nombre, &client.Apellido, &client.Documento,
		&client.TipoDocumento, &client.TipoPersona, &client.NombreFantasia,
		&codigoInterno, &client.EsCliente, &client.EsProveedor,
		&client.CategoriaFiscal, &client.PersonaTipoIIBB, &client.Domicilio,
		&client.Barrio, &client.Localidad, &client.Telefono, &client.Email,
		&client.Contacto, &client.FechaNacimiento, &client.Edad,
		&client.Observaciones, &saldo, &client.CreatedAt, &client.UpdatedAt,
		&client.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}

	client.CodigoInterno = codigoInterno.String
	client.Saldo = numericToDecimal(saldo)
	return &client, nil
}
