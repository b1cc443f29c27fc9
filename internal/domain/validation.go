package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidConcepto  = errors.New("invalid concepto")
	ErrInvalidDetalle   = errors.New("invalid detalle")
	ErrInvalidCUIT      = errors.New("invalid CUIT")
	ErrInvalidDocumento = errors.New("invalid documento")
)

// Validation constants
const (
	MaxConceptoLength  = 255
	MaxDetalleLength   = 1000
	MaxDocumentoLength = 20
	AmountScale        = 2
)

var cuitRegex = regexp.MustCompile(`^\d{2}-\d{8}-\d$`)

// ValidateAmount checks a debe/haber amount: non-negative fixed-point with
// at most two fractional digits.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if amount.Exponent() < -AmountScale && !amount.Equal(amount.Round(AmountScale)) {
		return ErrTooManyDecimals
	}
	return nil
}

// ValidateConcepto checks the short description attached to a movement.
func ValidateConcepto(concepto string) error {
	concepto = strings.TrimSpace(concepto)
	if concepto == "" {
		return fmt.Errorf("%w: concepto cannot be empty", ErrInvalidConcepto)
	}
	if len(concepto) > MaxConceptoLength {
		return fmt.Errorf("%w: concepto exceeds %d characters", ErrInvalidConcepto, MaxConceptoLength)
	}
	return nil
}

// ValidateDetalle checks the optional free-form detail of a movement.
func ValidateDetalle(detalle string) error {
	if len(detalle) > MaxDetalleLength {
		return fmt.Errorf("%w: detalle exceeds %d characters", ErrInvalidDetalle, MaxDetalleLength)
	}
	return nil
}

// ValidateDocumento checks the tax-id field for length and, for CUIT/CUIL,
// format and check digit.
func ValidateDocumento(documento string, tipo DocumentType) error {
	documento = strings.TrimSpace(documento)
	if documento == "" {
		return fmt.Errorf("%w: documento cannot be empty", ErrInvalidDocumento)
	}
	if len(documento) > MaxDocumentoLength {
		return fmt.Errorf("%w: documento exceeds %d characters", ErrInvalidDocumento, MaxDocumentoLength)
	}
	if tipo == DocumentCUIT || tipo == DocumentCUIL {
		return ValidateCUIT(documento)
	}
	return nil
}

// ValidateCUIT validates the XX-XXXXXXXX-X format and its check digit.
func ValidateCUIT(cuit string) error {
	if !cuitRegex.MatchString(cuit) {
		return fmt.Errorf("%w: format must be XX-XXXXXXXX-X", ErrInvalidCUIT)
	}

	digits := strings.ReplaceAll(cuit, "-", "")
	multipliers := []int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

	sum := 0
	for i := 0; i < 10; i++ {
		sum += int(digits[i]-'0') * multipliers[i]
	}

	check := 11 - sum%11
	if check == 11 {
		check = 0
	}

	if check != int(digits[10]-'0') {
		return fmt.Errorf("%w: check digit mismatch", ErrInvalidCUIT)
	}
	return nil
}
