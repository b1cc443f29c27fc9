package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rioplata-erp/tesoreria/internal/domain"
)

// CertificateUseCase handles client non-withholding certificates.
type CertificateUseCase struct {
	clientRepo      ClientRepository
	certificateRepo CertificateRepository
	logger          zerolog.Logger
}

// NewCertificateUseCase creates a new CertificateUseCase.
func NewCertificateUseCase(clientRepo ClientRepository, certificateRepo CertificateRepository, logger zerolog.Logger) *CertificateUseCase {
	return &CertificateUseCase{
		clientRepo:      clientRepo,
		certificateRepo: certificateRepo,
		logger:          logger,
	}
}

// AttachCertificateInput represents input for attaching a certificate.
type AttachCertificateInput struct {
	ClientID         int64
	TipoCertificado  domain.CertificateType
	Numero           string
	FechaVencimiento time.Time
}

// Attach registers a certificate for the client.
func (uc *CertificateUseCase) Attach(ctx context.Context, input AttachCertificateInput) (*domain.Certificate, error) {
	if _, err := uc.clientRepo.GetByID(ctx, input.ClientID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	certificate := &domain.Certificate{
		ClientID:         input.ClientID,
		TipoCertificado:  input.TipoCertificado,
		Numero:           input.Numero,
		FechaVencimiento: input.FechaVencimiento,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := uc.certificateRepo.Create(ctx, certificate); err != nil {
		return nil, err
	}

	uc.logger.Info().
		Int64("client_id", input.ClientID).
		Str("tipo", string(input.TipoCertificado)).
		Str("numero", input.Numero).
		Msg("certificado agregado al cliente")

	return certificate, nil
}

// UpdateCertificateInput represents input for updating a certificate.
type UpdateCertificateInput struct {
	Numero           *string
	FechaVencimiento *time.Time
	Alertado         *bool
}

// Update modifies an existing certificate of the client.
func (uc *CertificateUseCase) Update(ctx context.Context, clientID, certificateID int64, input UpdateCertificateInput) (*domain.Certificate, error) {
	certificate, err := uc.certificateRepo.GetByID(ctx, clientID, certificateID)
	if err != nil {
		return nil, err
	}

	if input.Numero != nil {
		certificate.Numero = *input.Numero
	}
	if input.FechaVencimiento != nil {
		certificate.FechaVencimiento = *input.FechaVencimiento
		certificate.Alertado = false
	}
	if input.Alertado != nil {
		certificate.Alertado = *input.Alertado
	}
	certificate.UpdatedAt = time.Now().UTC()

	if err := uc.certificateRepo.Update(ctx, certificate); err != nil {
		return nil, err
	}
	return certificate, nil
}

// Delete removes a certificate of the client.
func (uc *CertificateUseCase) Delete(ctx context.Context, clientID, certificateID int64) error {
	if err := uc.certificateRepo.Delete(ctx, clientID, certificateID); err != nil {
		return err
	}
	uc.logger.Info().
		Int64("client_id", clientID).
		Int64("certificate_id", certificateID).
		Msg("certificado eliminado del cliente")
	return nil
}

// ListByClient lists the certificates of one client.
func (uc *CertificateUseCase) ListByClient(ctx context.Context, clientID int64) ([]*domain.Certificate, error) {
	if _, err := uc.clientRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	return uc.certificateRepo.ListByClient(ctx, clientID)
}

// ExpiringCertificate pairs a certificate with its remaining days.
type ExpiringCertificate struct {
	Certificate   *domain.Certificate
	DaysRemaining int
}

// CheckExpiring returns certificates across all clients expiring within the
// window [today, today+daysAhead].
func (uc *CertificateUseCase) CheckExpiring(ctx context.Context, daysAhead int) ([]ExpiringCertificate, error) {
	if daysAhead <= 0 {
		daysAhead = domain.DefaultExpiryThresholdDays
	}

	now := time.Now().UTC()
	certificates, err := uc.certificateRepo.ListExpiring(ctx, now, now.AddDate(0, 0, daysAhead))
	if err != nil {
		return nil, err
	}

	expiring := make([]ExpiringCertificate, 0, len(certificates))
	for _, c := range certificates {
		if c.IsExpiringSoon(now, daysAhead) {
			expiring = append(expiring, ExpiringCertificate{
				Certificate:   c,
				DaysRemaining: c.DaysUntilExpiration(now),
			})
		}
	}
	return expiring, nil
}
