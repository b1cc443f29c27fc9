package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rioplata-erp/tesoreria/internal/domain"
)

const certificateColumns = `id, client_id, tipo_certificado, numero, fecha_vencimiento,
	alertado, created_at, updated_at`

// CertificateRepository implements usecase.CertificateRepository.
type CertificateRepository struct {
	pool *pgxpool.Pool
}

// NewCertificateRepository creates a new CertificateRepository.
func NewCertificateRepository(pool *pgxpool.Pool) *CertificateRepository {
	return &CertificateRepository{pool: pool}
}

// Create inserts a certificate and fills in its generated id.
func (r *CertificateRepository) Create(ctx context.Context, certificate *domain.Certificate) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO client_certificates (
			client_id, tipo_certificado, numero, fecha_vencimiento, alertado,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		certificate.ClientID, certificate.TipoCertificado, certificate.Numero,
		certificate.FechaVencimiento, certificate.Alertado,
		timeToPgTimestamptz(certificate.CreatedAt),
		timeToPgTimestamptz(certificate.UpdatedAt),
	).Scan(&certificate.ID)
}

// GetByID retrieves one certificate of a client.
func (r *CertificateRepository) GetByID(ctx context.Context, clientID, id int64) (*domain.Certificate, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+certificateColumns+` FROM client_certificates WHERE id = $1 AND client_id = $2`,
		id, clientID)
	return scanCertificate(row)
}

// Update persists the mutable fields of a certificate.
func (r *CertificateRepository) Update(ctx context.Context, certificate *domain.Certificate) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE client_certificates SET
			numero = $2, fecha_vencimiento = $3, alertado = $4, updated_at = $5
		WHERE id = $1`,
		certificate.ID, certificate.Numero, certificate.FechaVencimiento,
		certificate.Alertado, timeToPgTimestamptz(certificate.UpdatedAt))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCertificateNotFound
	}
	return nil
}

// Delete removes a certificate of a client.
func (r *CertificateRepository) Delete(ctx context.Context, clientID, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM client_certificates WHERE id = $1 AND client_id = $2`, id, clientID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCertificateNotFound
	}
	return nil
}

// ListByClient lists the certificates of one client, soonest expiry first.
func (r *CertificateRepository) ListByClient(ctx context.Context, clientID int64) ([]*domain.Certificate, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+certificateColumns+` FROM client_certificates
		 WHERE client_id = $1 ORDER BY fecha_vencimiento ASC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCertificates(rows)
}

// ListExpiring returns certificates across all clients expiring inside
// [from, to].
func (r *CertificateRepository) ListExpiring(ctx context.Context, from, to time.Time) ([]*domain.Certificate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+certificateColumns+` FROM client_certificates
		WHERE fecha_vencimiento >= $1::date AND fecha_vencimiento <= $2::date
		ORDER BY fecha_vencimiento ASC`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCertificates(rows)
}

func scanCertificate(row pgx.Row) (*domain.Certificate, error) {
	var certificate domain.Certificate

	err := row.Scan(
		&certificate.ID, &certificate.ClientID, &certificate.TipoCertificado,
		&certificate.Numero, &certificate.FechaVencimiento, &certificate.Alertado,
		&certificate.CreatedAt, &certificate.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCertificateNotFound
		}
		return nil, err
	}
	return &certificate, nil
}

func scanCertificates(rows pgx.Rows) ([]*domain.Certificate, error) {
	var certificates []*domain.Certificate
	for rows.Next() {
		certificate, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		certificates = append(certificates, certificate)
	}
	return certificates, rows.Err()
}
