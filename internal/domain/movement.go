package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Concept and detail stamped on the automatic opening movement.
const (
	OpeningConcept = "Apertura de cuenta corriente"
	OpeningDetail  = "Cuenta corriente abierta automaticamente"
)

// DocumentRef is a tagged reference to the record that originated a
// movement (e.g. a receipt). Resolution to the concrete record is a
// collaborator lookup, not part of the ledger.
type DocumentRef struct {
	Kind string
	ID   int64
}

// Movement is one dated debit-or-credit record in a client's current
// account. Saldo is stamped at insertion time from the previous movement's
// saldo; insertion order (id), not fecha, defines "previous".
type Movement struct {
	ID          int64
	ClientID    int64
	Fecha       time.Time
	Concepto    string
	Detalle     string
	Debe        decimal.Decimal
	Haber       decimal.Decimal
	Saldo       decimal.Decimal
	DocumentRef *DocumentRef
	CreatedAt   time.Time
}

// IsPending reports whether the movement carries a nonzero amount. The
// opening movement (debe=haber=0) is never pending.
func (m *Movement) IsPending() bool {
	return !m.Debe.IsZero() || !m.Haber.IsZero()
}

// Validate checks a caller-supplied movement. The zero/zero form is reserved
// for the automatic opening movement.
func (m *Movement) Validate() error {
	if err := ValidateAmount(m.Debe); err != nil {
		return err
	}
	if err := ValidateAmount(m.Haber); err != nil {
		return err
	}
	if m.Debe.IsZero() && m.Haber.IsZero() {
		return ErrZeroMovement
	}
	return nil
}

// NextBalance computes the running balance a movement must be stamped with,
// given the previous movement's saldo. The first movement of a client has an
// implicit previous balance of zero.
func NextBalance(previous, debe, haber decimal.Decimal) decimal.Decimal {
	return previous.Add(debe).Sub(haber)
}

// NewOpeningMovement builds the zero-amount movement created together with
// every client. It is always the client's first ledger record.
func NewOpeningMovement(clientID int64, now time.Time) *Movement {
	return &Movement{
		ClientID:  clientID,
		Fecha:     now,
		Concepto:  OpeningConcept,
		Detalle:   OpeningDetail,
		Debe:      decimal.Zero,
		Haber:     decimal.Zero,
		Saldo:     decimal.Zero,
		CreatedAt: now,
	}
}
