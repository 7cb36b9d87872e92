package entity

import "github.com/CorretorBrazza/docu-flow-automato/constants"

// CheckResult is the outcome of one named verdict check.
type CheckResult struct {
	Name    string                `json:"name"`
	Passed  bool                  `json:"passed"`
	Status  constants.CheckStatus `json:"status"`
	Message string                `json:"message"`
	Detail  string                `json:"detail,omitempty"`
}

// ValidationVerdict aggregates every check of one validation run. Checks keep
// insertion order (classification order of first appearance) so repeated runs
// over the same input render identically.
type ValidationVerdict struct {
	Checks           []CheckResult      `json:"checks"`
	MissingDocuments []string           `json:"missing_documents"`
	OverallValid     bool               `json:"overall_valid"`
	State            constants.RunState `json:"state"`
}

// AddCheck appends a check, replacing an earlier check with the same name so
// a later, more specific result wins without disturbing the original position.
func (v *ValidationVerdict) AddCheck(c CheckResult) {
	for i := range v.Checks {
		if v.Checks[i].Name == c.Name {
			v.Checks[i] = c
			return
		}
	}
	v.Checks = append(v.Checks, c)
}

// Check returns the named check, if present.
func (v *ValidationVerdict) Check(name string) (CheckResult, bool) {
	for _, c := range v.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return CheckResult{}, false
}

// AddMissing appends labels to the missing-documents list, de-duplicated,
// preserving first-appearance order.
func (v *ValidationVerdict) AddMissing(labels ...string) {
	for _, label := range labels {
		seen := false
		for _, m := range v.MissingDocuments {
			if m == label {
				seen = true
				break
			}
		}
		if !seen {
			v.MissingDocuments = append(v.MissingDocuments, label)
		}
	}
}

// HasErrors reports whether any check carries error severity.
func (v *ValidationVerdict) HasErrors() bool {
	for _, c := range v.Checks {
		if c.Status == constants.CheckError {
			return true
		}
	}
	return false
}
