package constants

import (
	"strings"
)

// DocumentKind is the canonical classification label for an uploaded file.
type DocumentKind string

// Stable values (these exact strings travel over the API and into logs).
const (
	KindIdentity       DocumentKind = "RG"
	KindDriverLicense  DocumentKind = "CNH"
	KindPayslip        DocumentKind = "HOLERITE"
	KindAddressProof   DocumentKind = "COMPROVANTE_ENDERECO"
	KindCertificate    DocumentKind = "CERTIDAO"
	KindTaxDeclaration DocumentKind = "IMPOSTO_RENDA"
	KindOther          DocumentKind = "OUTROS"
)

var allKinds = []DocumentKind{
	KindIdentity,
	KindDriverLicense,
	KindPayslip,
	KindAddressProof,
	KindCertificate,
	KindTaxDeclaration,
	KindOther,
}

// AllKinds returns every kind as strings, e.g. for prompt enums.
func AllKinds() []string {
	result := make([]string, len(allKinds))
	for i, k := range allKinds {
		result[i] = string(k)
	}
	return result
}

// IsIdentity reports whether the kind carries identity-document data.
// A driver's license subsumes the plain identity card for checklist purposes.
func (k DocumentKind) IsIdentity() bool {
	return k == KindIdentity || k == KindDriverLicense
}

// Label returns the human-readable (pt-BR) name used in verdicts and exports.
func (k DocumentKind) Label() string {
	switch k {
	case KindIdentity:
		return "RG"
	case KindDriverLicense:
		return "CNH"
	case KindPayslip:
		return "Comprovante de Renda"
	case KindAddressProof:
		return "Comprovante de Residência"
	case KindCertificate:
		return "Certidão"
	case KindTaxDeclaration:
		return "Imposto de Renda"
	default:
		return "Outros"
	}
}

// MissingLabel returns the label shown when a required kind is absent.
func (k DocumentKind) MissingLabel() string {
	switch k {
	case KindIdentity, KindDriverLicense:
		return "RG ou Documento de Identidade"
	case KindPayslip:
		return "Comprovante de Renda (Holerite)"
	case KindAddressProof:
		return "Comprovante de Residência"
	default:
		return k.Label()
	}
}

// RequiredKinds is the default checklist for a credit case. The identity slot
// is satisfied by either KindIdentity or KindDriverLicense.
var RequiredKinds = []DocumentKind{KindIdentity, KindPayslip, KindAddressProof}

// CanonicalizeKind maps a free-form backend label onto the enum. Unknown or
// empty labels map to KindOther with ok=false.
func CanonicalizeKind(input string) (DocumentKind, bool) {
	if input == "" {
		return KindOther, false
	}
	normalized := strings.ToUpper(strings.TrimSpace(input))

	// Backends answer with variations; match on the stable tokens first.
	switch {
	case strings.Contains(normalized, "CNH") || strings.Contains(normalized, "HABILITACAO"):
		return KindDriverLicense, true
	case strings.Contains(normalized, "ENDERECO") || strings.Contains(normalized, "RESIDENCIA"):
		return KindAddressProof, true
	case strings.Contains(normalized, "HOLERITE") || strings.Contains(normalized, "PAGAMENTO"):
		return KindPayslip, true
	// "COMPROVANTE DE RENDA" is this enum's own payslip label; it must not
	// fall through to the bare COMPROVANTE address branch.
	case strings.Contains(normalized, "COMPROVANTE") && strings.Contains(normalized, "RENDA"):
		return KindPayslip, true
	case strings.Contains(normalized, "COMPROVANTE"):
		return KindAddressProof, true
	case strings.Contains(normalized, "CERTIDAO"):
		return KindCertificate, true
	case strings.Contains(normalized, "IMPOSTO") || strings.Contains(normalized, "RENDA"):
		return KindTaxDeclaration, true
	}

	for _, k := range allKinds {
		if normalized == string(k) {
			return k, true
		}
	}
	return KindOther, false
}
