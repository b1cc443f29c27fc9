package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rioplata-erp/tesoreria/internal/domain"
	"github.com/rioplata-erp/tesoreria/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ClientResponse represents a client in API responses.
type ClientResponse struct {
	ID              int64           `json:"id"`
	Nombre          string          `json:"nombre"`
	Apellido        string          `json:"apellido,omitempty"`
	Documento       string          `json:"documento"`
	TipoDocumento   string          `json:"tipo_documento"`
	TipoPersona     string          `json:"tipo_persona"`
	NombreFantasia  string          `json:"nombre_fantasia,omitempty"`
	CodigoInterno   string          `json:"codigo_interno"`
	EsCliente       bool            `json:"es_cliente"`
	EsProveedor     bool            `json:"es_proveedor"`
	CategoriaFiscal string          `json:"categoria_fiscal,omitempty"`
	PersonaTipoIIBB string          `json:"persona_tipo_iibb,omitempty"`
	Domicilio       string          `json:"domicilio,omitempty"`
	Barrio          string          `json:"barrio,omitempty"`
	Localidad       string          `json:"localidad,omitempty"`
	Telefono        string          `json:"telefono,omitempty"`
	Email           string          `json:"email,omitempty"`
	Contacto        string          `json:"contacto,omitempty"`
	FechaNacimiento *time.Time      `json:"fecha_nacimiento,omitempty"`
	Edad            *int            `json:"edad,omitempty"`
	Observaciones   string          `json:"observaciones,omitempty"`
	Saldo           decimal.Decimal `json:"saldo"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       *time.Time      `json:"deleted_at,omitempty"`
}

// ClientFromDomain converts a domain client to a response.
func ClientFromDomain(c *domain.Client) *ClientResponse {
	return &ClientResponse{
		ID:              c.ID,
		Nombre:          c.Nombre,
		Apellido:        c.Apellido,
		Documento:       c.Documento,
		TipoDocumento:   string(c.TipoDocumento),
		TipoPersona:     string(c.TipoPersona),
		NombreFantasia:  c.NombreFantasia,
		CodigoInterno:   c.CodigoInterno,
		EsCliente:       c.EsCliente,
		EsProveedor:     c.EsProveedor,
		CategoriaFiscal: string(c.CategoriaFiscal),
		PersonaTipoIIBB: string(c.PersonaTipoIIBB),
		Domicilio:       c.Domicilio,
		Barrio:          c.Barrio,
		Localidad:       c.Localidad,
		Telefono:        c.Telefono,
		Email:           c.Email,
		Contacto:        c.Contacto,
		FechaNacimiento: c.FechaNacimiento,
		Edad:            c.Edad,
		Observaciones:   c.Observaciones,
		Saldo:           c.Saldo,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
		DeletedAt:       c.DeletedAt,
	}
}

// ClientsFromDomain converts domain clients to responses.
func ClientsFromDomain(clients []*domain.Client) []*ClientResponse {
	result := make([]*ClientResponse, len(clients))
	for i, c := range clients {
		result[i] = ClientFromDomain(c)
	}
	return result
}

// ListClientsResponse wraps a client listing.
type ListClientsResponse struct {
	Clients []*ClientResponse `json:"clients"`
	Total   int64             `json:"total"`
}

// MovementResponse represents a movement in API responses.
type MovementResponse struct {
	ID           int64           `json:"id"`
	ClientID     int64           `json:"client_id"`
	Fecha        time.Time       `json:"fecha"`
	Concepto     string          `json:"concepto"`
	Detalle      string          `json:"detalle,omitempty"`
	Debe         decimal.Decimal `json:"debe"`
	Haber        decimal.Decimal `json:"haber"`
	Saldo        decimal.Decimal `json:"saldo"`
	DocumentKind string          `json:"document_kind,omitempty"`
	DocumentID   int64           `json:"document_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// MovementFromDomain converts a domain movement to a response.
func MovementFromDomain(m *domain.Movement) *MovementResponse {
	resp := &MovementResponse{
		ID:        m.ID,
		ClientID:  m.ClientID,
		Fecha:     m.Fecha,
		Concepto:  m.Concepto,
		Detalle:   m.Detalle,
		Debe:      m.Debe,
		Haber:     m.Haber,
		Saldo:     m.Saldo,
		CreatedAt: m.CreatedAt,
	}
	if m.DocumentRef != nil {
		resp.DocumentKind = m.DocumentRef.Kind
		resp.DocumentID = m.DocumentRef.ID
	}
	return resp
}

// MovementsFromDomain converts domain movements to responses.
func MovementsFromDomain(movements []*domain.Movement) []*MovementResponse {
	result := make([]*MovementResponse, len(movements))
	for i, m := range movements {
		result[i] = MovementFromDomain(m)
	}
	return result
}

// ListMovementsResponse wraps a movement listing.
type ListMovementsResponse struct {
	Movements []*MovementResponse `json:"movimientos"`
	Total     int64               `json:"total"`
}

// BalanceResponse represents a client's ledger summary.
type BalanceResponse struct {
	SaldoActual         decimal.Decimal     `json:"saldo_actual"`
	TotalDebe           decimal.Decimal     `json:"total_debe"`
	TotalHaber          decimal.Decimal     `json:"total_haber"`
	CantidadMovimientos int64               `json:"cantidad_movimientos"`
	UltimosMovimientos  []*MovementResponse `json:"ultimos_movimientos"`
}

// BalanceFromSummary converts a usecase balance summary to a response.
func BalanceFromSummary(s *usecase.BalanceSummary) *BalanceResponse {
	return &BalanceResponse{
		SaldoActual:         s.SaldoActual,
		TotalDebe:           s.TotalDebe,
		TotalHaber:          s.TotalHaber,
		CantidadMovimientos: s.CantidadMovimientos,
		UltimosMovimientos:  MovementsFromDomain(s.UltimosMovimientos),
	}
}

// CertificateResponse represents a certificate in API responses.
type CertificateResponse struct {
	ID               int64     `json:"id"`
	ClientID         int64     `json:"client_id"`
	TipoCertificado  string    `json:"tipo_certificado"`
	Numero           string    `json:"numero"`
	FechaVencimiento time.Time `json:"fecha_vencimiento"`
	Alertado         bool      `json:"alertado"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CertificateFromDomain converts a domain certificate to a response.
func CertificateFromDomain(c *domain.Certificate) *CertificateResponse {
	return &CertificateResponse{
		ID:               c.ID,
		ClientID:         c.ClientID,
		TipoCertificado:  string(c.TipoCertificado),
		Numero:           c.Numero,
		FechaVencimiento: c.FechaVencimiento,
		Alertado:         c.Alertado,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// CertificatesFromDomain converts domain certificates to responses.
func CertificatesFromDomain(certificates []*domain.Certificate) []*CertificateResponse {
	result := make([]*CertificateResponse, len(certificates))
	for i, c := range certificates {
		result[i] = CertificateFromDomain(c)
	}
	return result
}

// ExpiringCertificateResponse pairs a certificate with its remaining days.
type ExpiringCertificateResponse struct {
	Certificate   *CertificateResponse `json:"certificate"`
	DaysRemaining int                  `json:"days_remaining"`
}

// ExpiringCertificatesFromUseCase converts the expiring listing.
func ExpiringCertificatesFromUseCase(expiring []usecase.ExpiringCertificate) []*ExpiringCertificateResponse {
	result := make([]*ExpiringCertificateResponse, len(expiring))
	for i, e := range expiring {
		result[i] = &ExpiringCertificateResponse{
			Certificate:   CertificateFromDomain(e.Certificate),
			DaysRemaining: e.DaysRemaining,
		}
	}
	return result
}

// ClientTaxResponse represents a client tax association in API responses.
type ClientTaxResponse struct {
	ID                 int64           `json:"id"`
	ClientID           int64           `json:"client_id"`
	TaxID              int64           `json:"tax_id"`
	FechaActualizacion time.Time       `json:"fecha_actualizacion"`
	Alcuota            decimal.Decimal `json:"alcuota"`
	Observaciones      string          `json:"observaciones,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ClientTaxFromDomain converts a domain client tax to a response.
func ClientTaxFromDomain(t *domain.ClientTax) *ClientTaxResponse {
	return &ClientTaxResponse{
		ID:                 t.ID,
		ClientID:           t.ClientID,
		TaxID:              t.TaxID,
		FechaActualizacion: t.FechaActualizacion,
		Alcuota:            t.Alcuota,
		Observaciones:      t.Observaciones,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

// ClientTaxesFromDomain converts domain client taxes to responses.
func ClientTaxesFromDomain(taxes []*domain.ClientTax) []*ClientTaxResponse {
	result := make([]*ClientTaxResponse, len(taxes))
	for i, t := range taxes {
		result[i] = ClientTaxFromDomain(t)
	}
	return result
}

// ReceiptItemResponse represents one receipt line in API responses.
type ReceiptItemResponse struct {
	ID             int64           `json:"id"`
	Descripcion    string          `json:"descripcion"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// ReceiptResponse represents a receipt in API responses.
type ReceiptResponse struct {
	ID           int64                 `json:"id"`
	ClientID     int64                 `json:"client_id"`
	NumeroRecibo string                `json:"numero_recibo"`
	FechaRecibo  time.Time             `json:"fecha_recibo"`
	Estado       string                `json:"estado"`
	Subtotal     decimal.Decimal       `json:"subtotal"`
	Impuesto     decimal.Decimal       `json:"impuesto"`
	Total        decimal.Decimal       `json:"total"`
	Referencia   string                `json:"referencia,omitempty"`
	Concepto     string                `json:"concepto,omitempty"`
	MetodoPago   string                `json:"metodo_pago"`
	Items        []ReceiptItemResponse `json:"items,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// ReceiptFromDomain converts a domain receipt to a response.
func ReceiptFromDomain(r *domain.Receipt) *ReceiptResponse {
	resp := &ReceiptResponse{
		ID:           r.ID,
		ClientID:     r.ClientID,
		NumeroRecibo: r.NumeroRecibo,
		FechaRecibo:  r.FechaRecibo,
		Estado:       string(r.Estado),
		Subtotal:     r.Subtotal,
		Impuesto:     r.Impuesto,
		Total:        r.Total,
		Referencia:   r.Referencia,
		Concepto:     r.Concepto,
		MetodoPago:   r.MetodoPago,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	for _, item := range r.Items {
		resp.Items = append(resp.Items, ReceiptItemResponse{
			ID:             item.ID,
			Descripcion:    item.Descripcion,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		})
	}
	return resp
}

// ReceiptsFromDomain converts domain receipts to responses.
func ReceiptsFromDomain(receipts []*domain.Receipt) []*ReceiptResponse {
	result := make([]*ReceiptResponse, len(receipts))
	for i, r := range receipts {
		result[i] = ReceiptFromDomain(r)
	}
	return result
}
