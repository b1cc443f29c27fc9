package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rioplata-erp/tesoreria/internal/domain"
)

func TestValidateCUIT(t *testing.T) {
	tests := []struct {
		name    string
		cuit    string
		wantErr bool
	}{
		{"valid CUIT", "20-12345678-6", false},
		{"wrong check digit", "20-12345678-5", true},
		{"missing dashes", "20123456786", true},
		{"letters", "20-1234567a-6", true},
		{"too short", "20-1234567-6", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateCUIT(tt.cuit)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidCUIT)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateDocumento(t *testing.T) {
	// DNI has no check digit, only length rules.
	require.NoError(t, domain.ValidateDocumento("30123456", domain.DocumentDNI))
	require.Error(t, domain.ValidateDocumento("", domain.DocumentDNI))
	require.Error(t, domain.ValidateDocumento(strings.Repeat("9", 21), domain.DocumentDNI))

	// CUIT/CUIL validate the check digit too.
	require.NoError(t, domain.ValidateDocumento("20-12345678-6", domain.DocumentCUIT))
	require.ErrorIs(t, domain.ValidateDocumento("20-12345678-0", domain.DocumentCUIL), domain.ErrInvalidCUIT)
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, domain.ValidateAmount(dec("0")))
	assert.NoError(t, domain.ValidateAmount(dec("1500.50")))
	assert.NoError(t, domain.ValidateAmount(dec("0.01")))
	assert.ErrorIs(t, domain.ValidateAmount(dec("-1")), domain.ErrNegativeAmount)
	assert.ErrorIs(t, domain.ValidateAmount(dec("0.001")), domain.ErrTooManyDecimals)
	// Trailing zeros beyond two places are not an error.
	assert.NoError(t, domain.ValidateAmount(dec("10.100")))
}

func TestValidateConcepto(t *testing.T) {
	assert.NoError(t, domain.ValidateConcepto("Recibo REC-000001"))
	assert.ErrorIs(t, domain.ValidateConcepto("  "), domain.ErrInvalidConcepto)
	assert.ErrorIs(t, domain.ValidateConcepto(strings.Repeat("x", 256)), domain.ErrInvalidConcepto)
}

func TestValidateDetalle(t *testing.T) {
	assert.NoError(t, domain.ValidateDetalle(""))
	// Anything up to the limit passes, including text longer than a
	// typical one-line description.
	assert.NoError(t, domain.ValidateDetalle(strings.Repeat("x", 300)))
	assert.NoError(t, domain.ValidateDetalle(strings.Repeat("x", domain.MaxDetalleLength)))
	assert.ErrorIs(t, domain.ValidateDetalle(strings.Repeat("x", domain.MaxDetalleLength+1)), domain.ErrInvalidDetalle)
}
