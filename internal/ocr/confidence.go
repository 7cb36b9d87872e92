package ocr

import (
	"regexp"
	"strings"
)

var (
	reCPF  = regexp.MustCompile(`\d{3}\.?\d{3}\.?\d{3}-?\d{2}`)
	reCEP  = regexp.MustCompile(`\d{5}-?\d{3}`)
	reDate = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`)
	reBRL  = regexp.MustCompile(`r\$\s*\d{1,3}(\.\d{3})*,\d{2}`)
)

// naive heuristic confidence based on decoded text characteristics: Brazilian
// document artifacts (CPF, CEP, dates, currency) each raise the score.
func heuristicConfidence(txt string) float32 {
	txtL := strings.ToLower(txt)
	score := float32(0.2) // base
	if reCPF.MatchString(txtL) {
		score += 0.2
	}
	if reCEP.MatchString(txtL) {
		score += 0.15
	}
	if reDate.MatchString(txtL) {
		score += 0.15
	}
	if reBRL.MatchString(txtL) {
		score += 0.15
	}
	if len(txt) > 120 { // enough content
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
