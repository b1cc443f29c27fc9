package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKindReceipt tags movements originated by a receipt.
const DocumentKindReceipt = "receipt"

// ReceiptStatus is the lifecycle state of a receipt.
type ReceiptStatus string

const (
	ReceiptPendiente ReceiptStatus = "pendiente"
	ReceiptPagado    ReceiptStatus = "pagado"
	ReceiptAnulado   ReceiptStatus = "anulado"
)

func (s ReceiptStatus) Valid() bool {
	return s == ReceiptPendiente || s == ReceiptPagado || s == ReceiptAnulado
}

// Receipt is a collection document issued against a client. Creating one
// posts a credit movement on the client's current account referencing the
// receipt.
type Receipt struct {
	ID           int64
	ClientID     int64
	NumeroRecibo string
	FechaRecibo  time.Time
	Estado       ReceiptStatus
	Subtotal     decimal.Decimal
	Impuesto     decimal.Decimal
	Total        decimal.Decimal
	Referencia   string
	Concepto     string
	MetodoPago   string
	Items        []ReceiptItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// ReceiptItem is one line of a receipt.
type ReceiptItem struct {
	ID             int64
	ReceiptID      int64
	Descripcion    string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}

// ReceiptNumber formats the sequential receipt number for a surrogate id.
func ReceiptNumber(id int64) string {
	return fmt.Sprintf("REC-%06d", id)
}

// ComputeTotals recalculates line subtotals and the receipt subtotal/total
// from the items and the impuesto amount.
func (r *Receipt) ComputeTotals() {
	subtotal := decimal.Zero
	for i := range r.Items {
		r.Items[i].Subtotal = r.Items[i].Cantidad.Mul(r.Items[i].PrecioUnitario)
		subtotal = subtotal.Add(r.Items[i].Subtotal)
	}
	r.Subtotal = subtotal
	r.Total = subtotal.Add(r.Impuesto)
}
