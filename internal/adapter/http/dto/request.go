package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/rioplata-erp/tesoreria/internal/domain"
	"github.com/rioplata-erp/tesoreria/internal/usecase"
)

var validate = validator.New()

// Validate runs the struct validation tags of a request.
func Validate(req any) error {
	return validate.Struct(req)
}

// CreateClientRequest represents a request to create a client.
type CreateClientRequest struct {
	Nombre          string     `json:"nombre" validate:"required,max=255"`
	Apellido        string     `json:"apellido" validate:"max=255"`
	Documento       string     `json:"documento" validate:"required,max=20"`
	TipoDocumento   string     `json:"tipo_documento" validate:"required,oneof=DNI CUIT CUIL PASAPORTE"`
	TipoPersona     string     `json:"tipo_persona" validate:"required,oneof=fisica juridica"`
	NombreFantasia  string     `json:"nombre_fantasia" validate:"max=255"`
	CodigoInterno   string     `json:"codigo_interno" validate:"max=20"`
	EsCliente       bool       `json:"es_cliente"`
	EsProveedor     bool       `json:"es_proveedor"`
	CategoriaFiscal string     `json:"categoria_fiscal" validate:"omitempty,oneof=responsable_inscripto responsable_no_inscripto monotributista exento consumidor_final no_responsable"`
	PersonaTipoIIBB string     `json:"persona_tipo_iibb" validate:"omitempty,oneof=local convenio_multilateral exento"`
	Domicilio       string     `json:"domicilio" validate:"max=255"`
	Barrio          string     `json:"barrio" validate:"max=255"`
	Localidad       string     `json:"localidad" validate:"max=255"`
	Telefono        string     `json:"telefono" validate:"max=50"`
	Email           string     `json:"email" validate:"omitempty,email,max=255"`
	Contacto        string     `json:"contacto" validate:"max=255"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento"`
	Observaciones   string     `json:"observaciones" validate:"max=1000"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateClientRequest) ToUseCaseInput() usecase.CreateClientInput {
	return usecase.CreateClientInput{
		Nombre:          r.Nombre,
		Apellido:        r.Apellido,
		Documento:       r.Documento,
		TipoDocumento:   domain.DocumentType(r.TipoDocumento),
		TipoPersona:     domain.PersonType(r.TipoPersona),
		NombreFantasia:  r.NombreFantasia,
		CodigoInterno:   r.CodigoInterno,
		EsCliente:       r.EsCliente,
		EsProveedor:     r.EsProveedor,
		CategoriaFiscal: domain.TaxCategory(r.CategoriaFiscal),
		PersonaTipoIIBB: domain.IIBBType(r.PersonaTipoIIBB),
		Domicilio:       r.Domicilio,
		Barrio:          r.Barrio,
		Localidad:       r.Localidad,
		Telefono:        r.Telefono,
		Email:           r.Email,
		Contacto:        r.Contacto,
		FechaNacimiento: r.FechaNacimiento,
		Observaciones:   r.Observaciones,
	}
}

// UpdateClientRequest represents a partial update of a client. Absent fields
// are left unchanged.
type UpdateClientRequest struct {
	Nombre          *string    `json:"nombre" validate:"omitempty,max=255"`
	Apellido        *string    `json:"apellido" validate:"omitempty,max=255"`
	Documento       *string    `json:"documento" validate:"omitempty,max=20"`
	TipoDocumento   *string    `json:"tipo_documento" validate:"omitempty,oneof=DNI CUIT CUIL PASAPORTE"`
	TipoPersona     *string    `json:"tipo_persona" validate:"omitempty,oneof=fisica juridica"`
	NombreFantasia  *string    `json:"nombre_fantasia" validate:"omitempty,max=255"`
	EsCliente       *bool      `json:"es_cliente"`
	EsProveedor     *bool      `json:"es_proveedor"`
	CategoriaFiscal *string    `json:"categoria_fiscal" validate:"omitempty,oneof=responsable_inscripto responsable_no_inscripto monotributista exento consumidor_final no_responsable"`
	PersonaTipoIIBB *string    `json:"persona_tipo_iibb" validate:"omitempty,oneof=local convenio_multilateral exento"`
	Domicilio       *string    `json:"domicilio" validate:"omitempty,max=255"`
	Barrio          *string    `json:"barrio" validate:"omitempty,max=255"`
	Localidad       *string    `json:"localidad" validate:"omitempty,max=255"`
	Telefono        *string    `json:"telefono" validate:"omitempty,max=50"`
	Email           *string    `json:"email" validate:"omitempty,email,max=255"`
	Contacto        *string    `json:"contacto" validate:"omitempty,max=255"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento"`
	Observaciones   *string    `json:"observaciones" validate:"omitempty,max=1000"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateClientRequest) ToUseCaseInput() usecase.UpdateClientInput {
	input := usecase.UpdateClientInput{
		Nombre:          r.Nombre,
		Apellido:        r.Apellido,
		Documento:       r.Documento,
		NombreFantasia:  r.NombreFantasia,
		EsCliente:       r.EsCliente,
		EsProveedor:     r.EsProveedor,
		Domicilio:       r.Domicilio,
		Barrio:          r.Barrio,
		Localidad:       r.Localidad,
		Telefono:        r.Telefono,
		Email:           r.Email,
		Contacto:        r.Contacto,
		FechaNacimiento: r.FechaNacimiento,
		Observaciones:   r.Observaciones,
	}
	if r.TipoDocumento != nil {
		tipo := domain.DocumentType(*r.TipoDocumento)
		input.TipoDocumento = &tipo
	}
	if r.TipoPersona != nil {
		tipo := domain.PersonType(*r.TipoPersona)
		input.TipoPersona = &tipo
	}
	if r.CategoriaFiscal != nil {
		categoria := domain.TaxCategory(*r.CategoriaFiscal)
		input.CategoriaFiscal = &categoria
	}
	if r.PersonaTipoIIBB != nil {
		tipo := domain.IIBBType(*r.PersonaTipoIIBB)
		input.PersonaTipoIIBB = &tipo
	}
	return input
}

// CreateMovementRequest represents a request to append a ledger movement.
type CreateMovementRequest struct {
	Fecha        *time.Time      `json:"fecha"`
	Concepto     string          `json:"concepto" validate:"required,max=255"`
	Detalle      string          `json:"detalle" validate:"max=1000"`
	Debe         decimal.Decimal `json:"debe"`
	Haber        decimal.Decimal `json:"haber"`
	DocumentKind string          `json:"document_kind" validate:"max=50"`
	DocumentID   int64           `json:"document_id"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateMovementRequest) ToUseCaseInput(clientID int64) usecase.AppendMovementInput {
	fecha := time.Now().UTC()
	if r.Fecha != nil {
		fecha = *r.Fecha
	}
	input := usecase.AppendMovementInput{
		ClientID: clientID,
		Fecha:    fecha,
		Concepto: r.Concepto,
		Detalle:  r.Detalle,
		Debe:     r.Debe,
		Haber:    r.Haber,
	}
	if r.DocumentKind != "" {
		input.DocumentRef = &domain.DocumentRef{Kind: r.DocumentKind, ID: r.DocumentID}
	}
	return input
}

// AttachCertificateRequest represents a request to attach a certificate.
type AttachCertificateRequest struct {
	TipoCertificado  string    `json:"tipo_certificado" validate:"required,oneof=IVA IIBB"`
	Numero           string    `json:"numero" validate:"required,max=100"`
	FechaVencimiento time.Time `json:"fecha_vencimiento" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *AttachCertificateRequest) ToUseCaseInput(clientID int64) usecase.AttachCertificateInput {
	return usecase.AttachCertificateInput{
		ClientID:         clientID,
		TipoCertificado:  domain.CertificateType(r.TipoCertificado),
		Numero:           r.Numero,
		FechaVencimiento: r.FechaVencimiento,
	}
}

// UpdateCertificateRequest represents a partial update of a certificate.
type UpdateCertificateRequest struct {
	Numero           *string    `json:"numero" validate:"omitempty,max=100"`
	FechaVencimiento *time.Time `json:"fecha_vencimiento"`
	Alertado         *bool      `json:"alertado"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateCertificateRequest) ToUseCaseInput() usecase.UpdateCertificateInput {
	return usecase.UpdateCertificateInput{
		Numero:           r.Numero,
		FechaVencimiento: r.FechaVencimiento,
		Alertado:         r.Alertado,
	}
}

// AttachTaxRequest represents a request to attach a tax to a client.
type AttachTaxRequest struct {
	TaxID              int64           `json:"tax_id" validate:"required"`
	FechaActualizacion time.Time       `json:"fecha_actualizacion" validate:"required"`
	Alcuota            decimal.Decimal `json:"alcuota"`
	Observaciones      string          `json:"observaciones" validate:"max=1000"`
}

// ToUseCaseInput converts to use case input.
func (r *AttachTaxRequest) ToUseCaseInput(clientID int64) usecase.AttachTaxInput {
	return usecase.AttachTaxInput{
		ClientID:           clientID,
		TaxID:              r.TaxID,
		FechaActualizacion: r.FechaActualizacion,
		Alcuota:            r.Alcuota,
		Observaciones:      r.Observaciones,
	}
}

// UpdateTaxRequest represents a partial update of a client tax.
type UpdateTaxRequest struct {
	FechaActualizacion *time.Time       `json:"fecha_actualizacion"`
	Alcuota            *decimal.Decimal `json:"alcuota"`
	Observaciones      *string          `json:"observaciones" validate:"omitempty,max=1000"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateTaxRequest) ToUseCaseInput() usecase.UpdateTaxInput {
	return usecase.UpdateTaxInput{
		FechaActualizacion: r.FechaActualizacion,
		Alcuota:            r.Alcuota,
		Observaciones:      r.Observaciones,
	}
}

// ReceiptItemRequest is one line of a receipt being created.
type ReceiptItemRequest struct {
	Descripcion    string          `json:"descripcion" validate:"required,max=255"`
	Cantidad       decimal.Decimal `json:"cantidad" validate:"required"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// CreateReceiptRequest represents a request to create a receipt.
type CreateReceiptRequest struct {
	ClientID    int64                `json:"client_id" validate:"required"`
	FechaRecibo *time.Time           `json:"fecha_recibo"`
	Estado      string               `json:"estado" validate:"omitempty,oneof=pendiente pagado anulado"`
	Impuesto    decimal.Decimal      `json:"impuesto"`
	Referencia  string               `json:"referencia" validate:"max=255"`
	Concepto    string               `json:"concepto" validate:"max=255"`
	MetodoPago  string               `json:"metodo_pago" validate:"max=50"`
	Items       []ReceiptItemRequest `json:"items" validate:"dive"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateReceiptRequest) ToUseCaseInput() usecase.CreateReceiptInput {
	fecha := time.Now().UTC()
	if r.FechaRecibo != nil {
		fecha = *r.FechaRecibo
	}
	input := usecase.CreateReceiptInput{
		ClientID:    r.ClientID,
		FechaRecibo: fecha,
		Estado:      domain.ReceiptStatus(r.Estado),
		Impuesto:    r.Impuesto,
		Referencia:  r.Referencia,
		Concepto:    r.Concepto,
		MetodoPago:  r.MetodoPago,
	}
	for _, item := range r.Items {
		input.Items = append(input.Items, usecase.ReceiptItemInput{
			Descripcion:    item.Descripcion,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
		})
	}
	return input
}
