package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rioplata-erp/tesoreria/internal/domain"
)

func TestReceiptNumber(t *testing.T) {
	assert.Equal(t, "REC-000001", domain.ReceiptNumber(1))
	assert.Equal(t, "REC-000777", domain.ReceiptNumber(777))
}

func TestReceipt_ComputeTotals(t *testing.T) {
	r := &domain.Receipt{
		Impuesto: dec("21.00"),
		Items: []domain.ReceiptItem{
			{Descripcion: "Servicio mensual", Cantidad: dec("2"), PrecioUnitario: dec("50.25")},
			{Descripcion: "Ajuste", Cantidad: dec("1"), PrecioUnitario: dec("0.50")},
		},
	}

	r.ComputeTotals()

	assert.Equal(t, "100.50", r.Items[0].Subtotal.StringFixed(2))
	assert.Equal(t, "0.50", r.Items[1].Subtotal.StringFixed(2))
	assert.Equal(t, "101.00", r.Subtotal.StringFixed(2))
	assert.Equal(t, "122.00", r.Total.StringFixed(2))
}
