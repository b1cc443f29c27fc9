package domain

import "errors"

var (
	// Not-found errors
	ErrClientNotFound      = errors.New("client not found")
	ErrMovementNotFound    = errors.New("movement not found")
	ErrCertificateNotFound = errors.New("certificate not found")
	ErrClientTaxNotFound   = errors.New("client tax not found")
	ErrReceiptNotFound     = errors.New("receipt not found")

	// Business-rule violations raised by the client deletion guard
	ErrClientHasBalance   = errors.New("client has a pending balance")
	ErrClientHasMovements = errors.New("client has movements in its current account")

	// Movement validation errors
	ErrZeroMovement    = errors.New("either debe or haber must be greater than zero")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
	ErrTooManyDecimals = errors.New("amount cannot have more than two decimal places")

	// Integrity errors mapped from unique constraints
	ErrDuplicateDocumento     = errors.New("documento already registered")
	ErrDuplicateCodigoInterno = errors.New("codigo interno already registered")
	ErrDuplicateClientTax     = errors.New("tax already registered for the client on that date")
	ErrDuplicateReceiptNumber = errors.New("receipt number already registered")
)
