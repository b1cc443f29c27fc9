package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientTax links a client to a tax definition with an effective date and a
// percentage rate. Uniquely keyed by (client, tax, fecha actualizacion).
type ClientTax struct {
	ID                 int64
	ClientID           int64
	TaxID              int64
	FechaActualizacion time.Time
	Alcuota            decimal.Decimal
	Observaciones      string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
