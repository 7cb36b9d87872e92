package fields

import (
	"regexp"
	"strings"
)

var reNonDigit = regexp.MustCompile(`\D`)

func digits(s string) string {
	return reNonDigit.ReplaceAllString(s, "")
}

// FormatTaxID canonicalizes a CPF to DDD.DDD.DDD-DD. Inputs without exactly
// 11 digits are returned trimmed as-is. Idempotent on canonical input.
func FormatTaxID(s string) string {
	s = strings.TrimSpace(s)
	d := digits(s)
	if len(d) != 11 {
		return s
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// FormatIDNumber canonicalizes an RG to (D)D.DDD.DDD-D. RG numbers carry 8 or
// 9 digits depending on the issuing state; anything else passes through.
func FormatIDNumber(s string) string {
	s = strings.TrimSpace(s)
	d := digits(s)
	if len(d) < 8 || len(d) > 9 {
		return s
	}
	check := d[len(d)-1:]
	body := d[:len(d)-1]
	return body[:len(body)-6] + "." + body[len(body)-6:len(body)-3] + "." + body[len(body)-3:] + "-" + check
}

// FormatPostalCode canonicalizes a CEP to DDDDD-DDD.
func FormatPostalCode(s string) string {
	s = strings.TrimSpace(s)
	d := digits(s)
	if len(d) != 8 {
		return s
	}
	return d[0:5] + "-" + d[5:8]
}

var reDateSep = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{4})$`)

// NormalizeDate rewrites D.M.YYYY / D-M-YYYY shaped dates with "/" separators.
// Anything that is not a day/month/year triple passes through trimmed.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if m := reDateSep.FindStringSubmatch(s); m != nil {
		return m[1] + "/" + m[2] + "/" + m[3]
	}
	return s
}

// UpperTrim uppercases a free-text field and collapses surrounding noise the
// OCR tends to leave behind.
func UpperTrim(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToUpper(s)
}

var reBRLAmount = regexp.MustCompile(`\d{1,3}(?:\.\d{3})*,\d{2}`)

// FormatCurrencyBRL normalizes a gross-salary match to "R$ N.NNN,NN".
// Idempotent; values without a recognizable amount pass through trimmed.
func FormatCurrencyBRL(s string) string {
	s = strings.TrimSpace(s)
	amount := reBRLAmount.FindString(s)
	if amount == "" {
		return s
	}
	return "R$ " + amount
}

var diacriticReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a",
	"é", "e", "ê", "e",
	"í", "i",
	"ó", "o", "ô", "o", "õ", "o",
	"ú", "u", "ü", "u",
	"ç", "c",
	"Á", "A", "À", "A", "Â", "A", "Ã", "A",
	"É", "E", "Ê", "E",
	"Í", "I",
	"Ó", "O", "Ô", "O", "Õ", "O",
	"Ú", "U", "Ü", "U",
	"Ç", "C",
)

// FoldDiacritics strips the accents found in Portuguese text so keyword
// matching works on OCR output and file names alike.
func FoldDiacritics(s string) string {
	return diacriticReplacer.Replace(s)
}
