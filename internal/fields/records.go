package fields

import (
	"regexp"
	"strings"

	"github.com/CorretorBrazza/docu-flow-automato/constants"
	"github.com/CorretorBrazza/docu-flow-automato/internal/entity"
	"github.com/CorretorBrazza/docu-flow-automato/internal/extract"
)

// BuildPersonal canonicalizes identity fields into a PersonalRecord.
// Marital status always resolves to one of the four canonical values, falling
// back to keywords in the raw text when the field itself is absent.
func BuildPersonal(res extract.FieldsResult) entity.PersonalRecord {
	f := res.Fields
	return entity.PersonalRecord{
		FullName:         UpperTrim(f.Get(extract.FieldFullName)),
		IDNumber:         FormatIDNumber(f.Get(extract.FieldIDNumber)),
		TaxID:            FormatTaxID(f.Get(extract.FieldTaxID)),
		BirthDate:        NormalizeDate(f.Get(extract.FieldBirthDate)),
		BirthPlace:       UpperTrim(f.Get(extract.FieldBirthPlace)),
		MaritalStatus:    DeriveMaritalStatus(f.Get(extract.FieldMaritalStatus), res.RawText),
		IssuingAuthority: UpperTrim(f.Get(extract.FieldIssuer)),
	}
}

// BuildEmployment canonicalizes payslip fields into an EmploymentRecord.
func BuildEmployment(res extract.FieldsResult) entity.EmploymentRecord {
	f := res.Fields
	return entity.EmploymentRecord{
		EmployerName:  UpperTrim(f.Get(extract.FieldEmployer)),
		JobTitle:      UpperTrim(f.Get(extract.FieldJobTitle)),
		GrossSalary:   FormatCurrencyBRL(f.Get(extract.FieldGrossSalary)),
		AdmissionDate: NormalizeDate(f.Get(extract.FieldAdmissionDate)),
	}
}

// BuildAddress canonicalizes address-proof fields into an AddressRecord.
func BuildAddress(res extract.FieldsResult) entity.AddressRecord {
	f := res.Fields
	state := UpperTrim(f.Get(extract.FieldState))
	if len(state) > 2 {
		state = state[:2]
	}
	return entity.AddressRecord{
		Street:       UpperTrim(f.Get(extract.FieldStreet)),
		Complement:   UpperTrim(f.Get(extract.FieldComplement)),
		Neighborhood: UpperTrim(f.Get(extract.FieldNeighborhood)),
		City:         UpperTrim(f.Get(extract.FieldCity)),
		State:        state,
		PostalCode:   FormatPostalCode(f.Get(extract.FieldPostalCode)),
	}
}

// BuildRelatives canonicalizes certificate fields into a RelativesRecord.
func BuildRelatives(res extract.FieldsResult) entity.RelativesRecord {
	f := res.Fields
	return entity.RelativesRecord{
		FatherName: UpperTrim(f.Get(extract.FieldFatherName)),
		MotherName: UpperTrim(f.Get(extract.FieldMotherName)),
	}
}

// MergeInto routes one document's fields into the case extraction according
// to the document kind. Certificates may also settle marital status when the
// identity document left it at the default.
func MergeInto(c *entity.CaseExtraction, kind constants.DocumentKind, res extract.FieldsResult) {
	switch kind {
	case constants.KindIdentity, constants.KindDriverLicense:
		c.Personal.Merge(BuildPersonal(res))
	case constants.KindPayslip:
		c.Employment.Merge(BuildEmployment(res))
	case constants.KindAddressProof:
		c.Address.Merge(BuildAddress(res))
	case constants.KindCertificate:
		c.Relatives.Merge(BuildRelatives(res))
		if status := canonicalMarital(res.Fields.Get(extract.FieldMaritalStatus)); status != "" {
			overrideMarital(&c.Personal, status)
		} else if status := canonicalMarital(res.RawText); status != "" {
			overrideMarital(&c.Personal, status)
		}
	case constants.KindTaxDeclaration:
		c.Personal.FillTaxID(FormatTaxID(res.Fields.Get(extract.FieldTaxID)))
	}
}

// overrideMarital lets a registry certificate correct the single-by-default
// status an identity document yields when the field is missing.
func overrideMarital(p *entity.PersonalRecord, status string) {
	if p.MaritalStatus == "" || p.MaritalStatus == constants.MaritalSingle {
		p.MaritalStatus = status
	}
}

// HasIncomeTaxWithholding reports whether a payslip's raw text shows an IRRF
// deduction line, which implies the applicant must also present an income tax
// declaration.
func HasIncomeTaxWithholding(raw string) bool {
	up := strings.ToUpper(FoldDiacritics(raw))
	return strings.Contains(up, "IRRF") ||
		strings.Contains(up, "IRF") ||
		strings.Contains(up, "IMPOSTO DE RENDA RETIDO")
}

var (
	reRefLabeled = regexp.MustCompile(`(?i)(?:M[ÊE]S(?:/ANO)?|REFER[ÊE]NCIA|COMPET[ÊE]NCIA)[ \t:]*(\d{1,2}/\d{4})`)
	reRefMonth   = regexp.MustCompile(`(?i)\b(JANEIRO|FEVEREIRO|MAR[ÇC]O|ABRIL|MAIO|JUNHO|JULHO|AGOSTO|SETEMBRO|OUTUBRO|NOVEMBRO|DEZEMBRO)[ /\-]*(?:DE[ \t]+)?(\d{4})\b`)
)

// ReferenceMonth pulls the competence month off a payslip, either as MM/YYYY
// next to a reference label or as a written-out month name. Empty when the
// slip carries neither.
func ReferenceMonth(raw string) string {
	if m := reRefLabeled.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if m := reRefMonth.FindStringSubmatch(raw); m != nil {
		return strings.ToUpper(FoldDiacritics(m[1])) + "/" + m[2]
	}
	return ""
}

// IsAdvancePayment reports whether a payslip looks like an advance slip
// rather than a full monthly statement.
func IsAdvancePayment(raw string) bool {
	up := strings.ToUpper(FoldDiacritics(raw))
	return strings.Contains(up, "ADIANTAMENTO") ||
		strings.Contains(up, "VALE QUINZENAL") ||
		strings.Contains(up, "1A QUINZENA") ||
		strings.Contains(up, "1ª QUINZENA")
}
