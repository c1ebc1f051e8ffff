package enums

import "fmt"

// DocumentType classifies an identity document.
type DocumentType string

const (
	DocumentTypeCPF      DocumentType = "CPF"
	DocumentTypeCNPJ     DocumentType = "CNPJ"
	DocumentTypeRG       DocumentType = "RG"
	DocumentTypeCNH      DocumentType = "CNH"
	DocumentTypePassport DocumentType = "PASSPORT"
)

var validDocumentTypes = []DocumentType{
	DocumentTypeCPF,
	DocumentTypeCNPJ,
	DocumentTypeRG,
	DocumentTypeCNH,
	DocumentTypePassport,
}

// String implements fmt.Stringer.
func (d DocumentType) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DocumentType.
func (d DocumentType) IsValid() bool {
	for _, candidate := range validDocumentTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// Multiple reports whether more than one active document of this type may
// exist in the collection. PASSPORT and CNPJ are exempt from the
// one-of-a-kind rule.
func (d DocumentType) Multiple() bool {
	return d == DocumentTypePassport || d == DocumentTypeCNPJ
}

// ParseDocumentType converts raw input into a DocumentType.
func ParseDocumentType(value string) (DocumentType, error) {
	for _, candidate := range validDocumentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid document type %q", value)
}
