package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Client is the aggregate root of the current-account ledger. Saldo is a
// cached projection of SUM(debe) - SUM(haber) over the client's movements
// and is only written through the movement use case's refresh path.
type Client struct {
	ID              int64
	Nombre          string
	Apellido        string
	Documento       string
	TipoDocumento   DocumentType
	TipoPersona     PersonType
	NombreFantasia  string
	CodigoInterno   string
	EsCliente       bool
	EsProveedor     bool
	CategoriaFiscal TaxCategory
	PersonaTipoIIBB IIBBType
	Domicilio       string
	Barrio          string
	Localidad       string
	Telefono        string
	Email           string
	Contacto        string
	FechaNacimiento *time.Time
	Edad            *int
	Observaciones   string
	Saldo           decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time
}

// FullName joins nombre and apellido for display and error messages.
func (c *Client) FullName() string {
	return strings.TrimSpace(c.Nombre + " " + c.Apellido)
}

// IsDeleted reports whether the client is soft-deleted.
func (c *Client) IsDeleted() bool {
	return c.DeletedAt != nil
}

// RecomputeAge refreshes Edad from FechaNacimiento. Called on create and
// whenever the birth date changes on update; a nil birth date clears the age.
func (c *Client) RecomputeAge(now time.Time) {
	if c.FechaNacimiento == nil {
		c.Edad = nil
		return
	}
	age := AgeAt(*c.FechaNacimiento, now)
	c.Edad = &age
}

// AgeAt returns the age in whole years at the given instant.
func AgeAt(birthDate, now time.Time) int {
	age := now.Year() - birthDate.Year()
	anniversary := time.Date(now.Year(), birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, now.Location())
	if now.Before(anniversary) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age
}

// InternalCode formats the sequential human-readable client code for a
// surrogate id. Codes are assigned once at creation and never reused, even
// for soft-deleted clients.
func InternalCode(id int64) string {
	return fmt.Sprintf("CLI-%06d", id)
}

// CanDelete is the single soft-delete guard. hasPendingMovements must be the
// result of the ledger predicate (any movement with nonzero debe or haber);
// the opening movement never counts. Note that once a real movement has been
// posted the predicate stays true forever, so such clients remain
// undeletable even when the balance nets back to zero.
func (c *Client) CanDelete(hasPendingMovements bool) error {
	if !c.Saldo.IsZero() {
		return fmt.Errorf("%w: cannot delete client %s with pending balance of %s",
			ErrClientHasBalance, c.FullName(), c.Saldo.Abs().StringFixed(2))
	}
	if hasPendingMovements {
		return fmt.Errorf("%w: cannot delete client %s",
			ErrClientHasMovements, c.FullName())
	}
	return nil
}
