package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rioplata-erp/tesoreria/internal/domain"
	"github.com/rioplata-erp/tesoreria/internal/usecase"
	"github.com/rioplata-erp/tesoreria/internal/usecase/mocks"
)

type certificateFixture struct {
	*ledgerFixture
	certificateRepo *mocks.MockCertificateRepository
	certificates    *usecase.CertificateUseCase
}

func newCertificateFixture() *certificateFixture {
	base := newLedgerFixture()
	repo := mocks.NewMockCertificateRepository()
	return &certificateFixture{
		ledgerFixture:   base,
		certificateRepo: repo,
		certificates:    usecase.NewCertificateUseCase(base.clientRepo, repo, zerolog.Nop()),
	}
}

func TestCertificateUseCase_Attach(t *testing.T) {
	ctx := context.Background()

	t.Run("attaches to an existing client", func(t *testing.T) {
		f := newCertificateFixture()
		client := f.seedClient(t)

		certificate, err := f.certificates.Attach(ctx, usecase.AttachCertificateInput{
			ClientID:         client.ID,
			TipoCertificado:  domain.CertificateIVA,
			Numero:           "EXC-2026-0012",
			FechaVencimiento: time.Now().UTC().AddDate(0, 6, 0),
		})
		require.NoError(t, err)
		assert.NotZero(t, certificate.ID)
		assert.False(t, certificate.Alertado)

		list, err := f.certificates.ListByClient(ctx, client.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("unknown client", func(t *testing.T) {
		f := newCertificateFixture()

		_, err := f.certificates.Attach(ctx, usecase.AttachCertificateInput{
			ClientID:        99,
			TipoCertificado: domain.CertificateIIBB,
		})
		assert.ErrorIs(t, err, domain.ErrClientNotFound)
	})
}

func TestCertificateUseCase_Update(t *testing.T) {
	ctx := context.Background()

	f := newCertificateFixture()
	client := f.seedClient(t)

	certificate, err := f.certificates.Attach(ctx, usecase.AttachCertificateInput{
		ClientID:         client.ID,
		TipoCertificado:  domain.CertificateIVA,
		Numero:           "EXC-2026-0012",
		FechaVencimiento: time.Now().UTC().AddDate(0, 1, 0),
	})
	require.NoError(t, err)

	alertado := true
	_, err = f.certificates.Update(ctx, client.ID, certificate.ID, usecase.UpdateCertificateInput{
		Alertado: &alertado,
	})
	require.NoError(t, err)

	// Renewing the expiry date re-arms the alert.
	renewed := time.Now().UTC().AddDate(1, 0, 0)
	updated, err := f.certificates.Update(ctx, client.ID, certificate.ID, usecase.UpdateCertificateInput{
		FechaVencimiento: &renewed,
	})
	require.NoError(t, err)
	assert.False(t, updated.Alertado)
	assert.True(t, updated.FechaVencimiento.Equal(renewed))
}

func TestCertificateUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	f := newCertificateFixture()
	client := f.seedClient(t)

	certificate, err := f.certificates.Attach(ctx, usecase.AttachCertificateInput{
		ClientID:         client.ID,
		TipoCertificado:  domain.CertificateIIBB,
		Numero:           "IB-777",
		FechaVencimiento: time.Now().UTC().AddDate(0, 1, 0),
	})
	require.NoError(t, err)

	require.NoError(t, f.certificates.Delete(ctx, client.ID, certificate.ID))

	err = f.certificates.Delete(ctx, client.ID, certificate.ID)
	assert.ErrorIs(t, err, domain.ErrCertificateNotFound)
}

func TestCertificateUseCase_CheckExpiring(t *testing.T) {
	ctx := context.Background()

	f := newCertificateFixture()
	client := f.seedClient(t)
	now := time.Now().UTC()

	attach := func(numero string, vencimiento time.Time) {
		t.Helper()
		_, err := f.certificates.Attach(ctx, usecase.AttachCertificateInput{
			ClientID:         client.ID,
			TipoCertificado:  domain.CertificateIVA,
			Numero:           numero,
			FechaVencimiento: vencimiento,
		})
		require.NoError(t, err)
	}

	attach("HOY", now)
	attach("MANANA", now.AddDate(0, 0, 1))
	attach("LEJOS", now.AddDate(0, 0, 30))
	attach("VENCIDO", now.AddDate(0, 0, -1))

	expiring, err := f.certificates.CheckExpiring(ctx, domain.DefaultExpiryThresholdDays)
	require.NoError(t, err)

	numeros := make(map[string]int, len(expiring))
	for _, e := range expiring {
		numeros[e.Certificate.Numero] = e.DaysRemaining
	}
	assert.Len(t, numeros, 2)
	assert.Equal(t, 0, numeros["HOY"])
	assert.Equal(t, 1, numeros["MANANA"])
}
