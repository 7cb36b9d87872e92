package gemini

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/CorretorBrazza/docu-flow-automato/constants"
	"github.com/CorretorBrazza/docu-flow-automato/internal/extract"
)

// schemaFor builds the JSON schema for one kind's extraction response: an
// object whose known keys are strings. Unknown keys are rejected so a model
// drifting off-prompt fails validation instead of polluting the record.
func schemaFor(kind constants.DocumentKind) map[string]any {
	props := map[string]any{}
	for _, key := range extract.KindFields(kind) {
		props[key] = map[string]any{"type": "string"}
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
}

// validateAgainstSchema checks raw JSON against the kind's response schema.
func validateAgainstSchema(kind constants.DocumentKind, data []byte) error {
	b, err := json.Marshal(schemaFor(kind))
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
