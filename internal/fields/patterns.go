package fields

import (
	"regexp"
	"strings"

	"github.com/CorretorBrazza/docu-flow-automato/constants"
	"github.com/CorretorBrazza/docu-flow-automato/internal/extract"
)

// Each field is matched by an ordered list of patterns: a labeled form first
// (the value next to its printed label), then progressively looser shapes.
// The first pattern with a non-empty capture wins.

const upperWord = `A-ZÁÀÂÃÉÊÍÓÔÕÚÜÇ`

var identityPatterns = map[string][]*regexp.Regexp{
	extract.FieldFullName: {
		regexp.MustCompile(`(?i)NOME[ \t:]+([` + upperWord + `][` + upperWord + ` ]{4,})`),
	},
	extract.FieldIDNumber: {
		regexp.MustCompile(`(?i)(?:REGISTRO GERAL|RG)[ \t:.]*(\d{1,2}\.?\d{3}\.?\d{3}-?[\dX])`),
		regexp.MustCompile(`\b(\d{1,2}\.\d{3}\.\d{3}-[\dX])\b`),
	},
	extract.FieldTaxID: {
		regexp.MustCompile(`(?i)CPF[ \t:.]*(\d{3}\.?\d{3}\.?\d{3}-?\d{2})`),
		regexp.MustCompile(`\b(\d{3}\.\d{3}\.\d{3}-\d{2})\b`),
	},
	extract.FieldBirthDate: {
		regexp.MustCompile(`(?i)(?:DATA DE NASCIMENTO|NASCIMENTO|NASC)[ \t:.]*(\d{1,2}[/.-]\d{1,2}[/.-]\d{4})`),
		regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`),
	},
	extract.FieldBirthPlace: {
		regexp.MustCompile(`(?i)NATURALIDADE[ \t:]+([` + upperWord + `][` + upperWord + ` \-/]{2,})`),
	},
	extract.FieldMaritalStatus: {
		regexp.MustCompile(`(?i)ESTADO CIVIL[ \t:]+([` + upperWord + `]+)`),
	},
	extract.FieldIssuer: {
		regexp.MustCompile(`(?i)\b(SSP[-/ ]?[A-Z]{2})\b`),
		regexp.MustCompile(`(?i)(?:ORG[ÃA]O EMISSOR|EMISSOR)[ \t:]+([A-Z]{2,6}[-/ ]?[A-Z]{2})`),
	},
}

var payslipPatterns = map[string][]*regexp.Regexp{
	extract.FieldFullName: {
		regexp.MustCompile(`(?i)(?:NOME DO FUNCION[ÁA]RIO|FUNCION[ÁA]RIO|NOME)[ \t:]+([` + upperWord + `][` + upperWord + ` ]{4,})`),
	},
	extract.FieldEmployer: {
		regexp.MustCompile(`(?i)(?:EMPRESA|RAZ[ÃA]O SOCIAL|EMPREGADOR)[ \t:]+([` + upperWord + `0-9][` + upperWord + `0-9 .&\-]{2,})`),
	},
	extract.FieldJobTitle: {
		regexp.MustCompile(`(?i)(?:CARGO|FUN[ÇC][ÃA]O)[ \t:]+([` + upperWord + `][` + upperWord + ` ]{2,})`),
	},
	extract.FieldGrossSalary: {
		regexp.MustCompile(`(?i)(?:SAL[ÁA]RIO BRUTO|SAL[ÁA]RIO BASE|SAL[ÁA]RIO|VENCIMENTOS?)[ \t:]*(?:R\$)?[ \t]*(\d{1,3}(?:\.\d{3})*,\d{2})`),
		regexp.MustCompile(`(?i)BRUTO[ \t:]*(?:R\$)?[ \t]*(\d{1,3}(?:\.\d{3})*,\d{2})`),
	},
	extract.FieldAdmissionDate: {
		regexp.MustCompile(`(?i)(?:DATA DE ADMISS[ÃA]O|ADMISS[ÃA]O)[ \t:.]*(\d{1,2}[/.-]\d{1,2}[/.-]\d{4})`),
	},
}

var addressPatterns = map[string][]*regexp.Regexp{
	extract.FieldStreet: {
		regexp.MustCompile(`(?i)\b((?:RUA|AVENIDA|AV\.|TRAVESSA|ALAMEDA|ESTRADA|RODOVIA|PRA[ÇC]A)[ \t][^\n,]{3,60})`),
		regexp.MustCompile(`(?i)(?:ENDERE[ÇC]O|LOGRADOURO)[ \t:]+([^\n]{5,80})`),
	},
	extract.FieldComplement: {
		regexp.MustCompile(`(?i)(?:COMPLEMENTO|APTO?\.?|APARTAMENTO|BLOCO)[ \t:]*([^\n,]{1,40})`),
	},
	extract.FieldNeighborhood: {
		regexp.MustCompile(`(?i)BAIRRO[ \t:]+([` + upperWord + `][` + upperWord + ` ]{2,})`),
	},
	extract.FieldCity: {
		regexp.MustCompile(`(?i)(?:CIDADE|MUNIC[ÍI]PIO)[ \t:]+([` + upperWord + `][` + upperWord + ` ]{2,})`),
		regexp.MustCompile(`([` + upperWord + `][` + upperWord + ` ]{2,})[ \t]*[-/][ \t]*[A-Z]{2}\b`),
	},
	extract.FieldState: {
		regexp.MustCompile(`(?i)(?:ESTADO|UF)[ \t:]+([A-Z]{2})\b`),
		regexp.MustCompile(`[-/][ \t]*([A-Z]{2})[ \t]*(?:\n|$)`),
	},
	extract.FieldPostalCode: {
		regexp.MustCompile(`(?i)CEP[ \t:.]*(\d{5}-?\d{3})`),
		regexp.MustCompile(`\b(\d{5}-\d{3})\b`),
	},
}

var certificatePatterns = map[string][]*regexp.Regexp{
	extract.FieldFullName: {
		regexp.MustCompile(`(?i)NOME[ \t:]+([` + upperWord + `][` + upperWord + ` ]{4,})`),
	},
	extract.FieldMaritalStatus: {
		regexp.MustCompile(`(?i)ESTADO CIVIL[ \t:]+([` + upperWord + `]+)`),
	},
	extract.FieldFatherName: {
		regexp.MustCompile(`(?i)(?:NOME DO PAI|PAI)[ \t:]+([` + upperWord + `][` + upperWord + ` ]{4,})`),
	},
	extract.FieldMotherName: {
		regexp.MustCompile(`(?i)(?:NOME DA M[ÃA]E|M[ÃA]E)[ \t:]+([` + upperWord + `][` + upperWord + ` ]{4,})`),
	},
}

var taxDeclarationPatterns = map[string][]*regexp.Regexp{
	extract.FieldFullName: {
		regexp.MustCompile(`(?i)(?:NOME DO CONTRIBUINTE|NOME)[ \t:]+([` + upperWord + `][` + upperWord + ` ]{4,})`),
	},
	extract.FieldTaxID: {
		regexp.MustCompile(`(?i)CPF[ \t:.]*(\d{3}\.?\d{3}\.?\d{3}-?\d{2})`),
		regexp.MustCompile(`\b(\d{3}\.\d{3}\.\d{3}-\d{2})\b`),
	},
}

func patternsFor(kind constants.DocumentKind) map[string][]*regexp.Regexp {
	switch kind {
	case constants.KindIdentity, constants.KindDriverLicense:
		return identityPatterns
	case constants.KindPayslip:
		return payslipPatterns
	case constants.KindAddressProof:
		return addressPatterns
	case constants.KindCertificate:
		return certificatePatterns
	case constants.KindTaxDeclaration:
		return taxDeclarationPatterns
	default:
		return nil
	}
}

// MatchFields runs the pattern cascade for kind against raw OCR text and
// returns whichever fields matched. Values are trimmed but not yet
// canonicalized; the record builders own normalization.
func MatchFields(kind constants.DocumentKind, text string) extract.FieldSet {
	pats := patternsFor(kind)
	if pats == nil || strings.TrimSpace(text) == "" {
		return extract.FieldSet{}
	}
	out := extract.FieldSet{}
	for key, cascade := range pats {
		for _, re := range cascade {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			v := strings.TrimSpace(m[len(m)-1])
			v = strings.Trim(v, " .,:-")
			if v != "" {
				out[key] = v
				break
			}
		}
	}
	return out
}
