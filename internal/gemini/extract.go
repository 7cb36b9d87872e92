package gemini

import (
	"context"
	"time"

	"github.com/CorretorBrazza/docu-flow-automato/constants"
	"github.com/CorretorBrazza/docu-flow-automato/internal/common"
	"github.com/CorretorBrazza/docu-flow-automato/internal/entity"
	"github.com/CorretorBrazza/docu-flow-automato/internal/extract"
)

var _ extract.FieldExtractor = (*Client)(nil)

// ExtractFields sends the document inline and parses the constrained JSON
// answer. Validation is strict first; a response that fails the schema falls
// back to the lenient line parser before the call is declared lost.
func (c *Client) ExtractFields(ctx context.Context, doc entity.UploadedDocument, kind constants.DocumentKind) (extract.FieldsResult, error) {
	prompt := promptFor(kind)
	if prompt == "" {
		return extract.FieldsResult{}, common.NewAppError("INVALID_INPUT", "gemini: no extraction prompt for kind "+string(kind), nil)
	}
	mimeType := doc.MediaType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	start := time.Now()
	text, err := c.generate(ctx, c.extractModel, mimeType, doc.Content, prompt)
	if err != nil {
		c.logger.Warn("gemini.extract.fail", "file", doc.FileName, "kind", string(kind), "error", err)
		return extract.FieldsResult{}, err
	}

	allowed := extract.KindFields(kind)
	var fs extract.FieldSet
	if raw := firstJSONObject(text); raw != "" {
		if verr := validateAgainstSchema(kind, []byte(raw)); verr == nil {
			fs, err = decodeFieldSet([]byte(raw), allowed)
		} else {
			c.logger.Warn("gemini.extract.schema_mismatch", "file", doc.FileName, "kind", string(kind), "error", verr)
			fs, err = decodeFieldSet([]byte(raw), allowed)
		}
		if err != nil {
			fs = nil
		}
	}
	if fs == nil {
		fs = parseLenient(text, allowed)
	}
	if len(fs) == 0 {
		return extract.FieldsResult{}, common.BackendErrorf("gemini: unparseable extraction response for %q", doc.FileName)
	}

	c.logger.Info("gemini.extract.ok",
		"file", doc.FileName,
		"kind", string(kind),
		"fields", len(fs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return extract.FieldsResult{Fields: fs, RawText: text}, nil
}
