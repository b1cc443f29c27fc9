package domain

// DocumentType is the kind of identity document a client registers with.
type DocumentType string

const (
	DocumentDNI       DocumentType = "DNI"
	DocumentCUIT      DocumentType = "CUIT"
	DocumentCUIL      DocumentType = "CUIL"
	DocumentPasaporte DocumentType = "PASAPORTE"
)

// Valid reports whether the document type is a known value.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentDNI, DocumentCUIT, DocumentCUIL, DocumentPasaporte:
		return true
	}
	return false
}

// PersonType distinguishes natural persons from legal entities.
type PersonType string

const (
	PersonFisica   PersonType = "fisica"
	PersonJuridica PersonType = "juridica"
)

// Valid reports whether the person type is a known value.
func (t PersonType) Valid() bool {
	return t == PersonFisica || t == PersonJuridica
}

// TaxCategory is the client's VAT standing.
type TaxCategory string

const (
	TaxResponsableInscripto   TaxCategory = "responsable_inscripto"
	TaxResponsableNoInscripto TaxCategory = "responsable_no_inscripto"
	TaxMonotributista         TaxCategory = "monotributista"
	TaxExento                 TaxCategory = "exento"
	TaxConsumidorFinal        TaxCategory = "consumidor_final"
	TaxNoResponsable          TaxCategory = "no_responsable"
)

// Valid reports whether the tax category is a known value.
func (t TaxCategory) Valid() bool {
	switch t {
	case TaxResponsableInscripto, TaxResponsableNoInscripto, TaxMonotributista,
		TaxExento, TaxConsumidorFinal, TaxNoResponsable:
		return true
	}
	return false
}

// IIBBType is the optional gross-income-tax subtype.
type IIBBType string

const (
	IIBBLocal    IIBBType = "local"
	IIBBConvenio IIBBType = "convenio_multilateral"
	IIBBExento   IIBBType = "exento"
)

// Valid reports whether the IIBB subtype is a known value. The empty value
// is allowed since the subtype is optional.
func (t IIBBType) Valid() bool {
	switch t {
	case "", IIBBLocal, IIBBConvenio, IIBBExento:
		return true
	}
	return false
}

// CertificateType is the kind of non-withholding certificate.
type CertificateType string

const (
	CertificateIVA  CertificateType = "IVA"
	CertificateIIBB CertificateType = "IIBB"
)

// Valid reports whether the certificate type is a known value.
func (t CertificateType) Valid() bool {
	return t == CertificateIVA || t == CertificateIIBB
}
