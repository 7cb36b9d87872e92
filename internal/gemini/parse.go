package gemini

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/CorretorBrazza/docu-flow-automato/internal/extract"
)

var reJSONObject = regexp.MustCompile(`(?s)\{.*\}`)

// firstJSONObject pulls the outermost {...} out of a model answer that may be
// wrapped in prose or code fences.
func firstJSONObject(text string) string {
	return reJSONObject.FindString(text)
}

// decodeFieldSet unmarshals a JSON object into a FieldSet, keeping only the
// keys the kind's schema knows and skipping empties. Non-string values are
// stringified when cheap (the model occasionally answers numbers bare).
func decodeFieldSet(data []byte, allowed []string) (extract.FieldSet, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	keep := make(map[string]bool, len(allowed))
	for _, k := range allowed {
		keep[k] = true
	}
	out := extract.FieldSet{}
	for k, v := range m {
		if !keep[k] {
			continue
		}
		s, ok := v.(string)
		if !ok {
			if f, isNum := v.(float64); isNum {
				s = strconv.FormatFloat(f, 'f', -1, 64)
				ok = true
			}
		}
		s = strings.TrimSpace(s)
		if ok && s != "" && s != "-" && !strings.EqualFold(s, "N/A") {
			out[k] = s
		}
	}
	return out, nil
}

// parseLenient recovers "chave: valor" lines from a non-JSON answer. It is
// the last resort before giving up on a response.
func parseLenient(text string, allowed []string) extract.FieldSet {
	out := extract.FieldSet{}
	lower := make(map[string]string, len(allowed))
	for _, k := range allowed {
		lower[strings.ToLower(k)] = k
	}
	for _, line := range strings.Split(text, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.Join(strings.Fields(key), ""))
		key = strings.Trim(key, `"' `)
		canonical, known := lower[key]
		if !known {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `",' `)
		if value != "" && value != "-" && !strings.EqualFold(value, "N/A") {
			out[canonical] = value
		}
	}
	return out
}
