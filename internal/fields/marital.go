package fields

import (
	"regexp"
	"strings"

	"github.com/CorretorBrazza/docu-flow-automato/constants"
)

var reTokenCC = regexp.MustCompile(`\bCC\b`)

// DeriveMaritalStatus resolves the marital status from an explicit field
// value when present, otherwise from keywords in the raw document text.
// Defaults to solteiro when nothing points elsewhere.
func DeriveMaritalStatus(explicit, raw string) string {
	if s := canonicalMarital(explicit); s != "" {
		return s
	}
	if s := canonicalMarital(raw); s != "" {
		return s
	}
	return constants.MaritalSingle
}

func canonicalMarital(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	up := strings.ToUpper(FoldDiacritics(s))
	switch {
	case strings.Contains(up, "DIVORC"):
		return constants.MaritalDivorced
	case strings.Contains(up, "VIUV"):
		return constants.MaritalWidowed
	case strings.Contains(up, "CASAD"), strings.Contains(up, "CASAMENTO"), reTokenCC.MatchString(up):
		return constants.MaritalMarried
	case strings.Contains(up, "SOLTEIR"):
		return constants.MaritalSingle
	}
	return ""
}
