package gemini

import (
	"context"

	"github.com/CorretorBrazza/docu-flow-automato/constants"
	"github.com/CorretorBrazza/docu-flow-automato/internal/entity"
	"github.com/CorretorBrazza/docu-flow-automato/internal/extract"
)

var _ extract.Classifier = (*Client)(nil)

// Classify asks the model which document kind the file is. The answer is
// constrained to the kind vocabulary; anything else canonicalizes to OUTROS.
func (c *Client) Classify(ctx context.Context, doc entity.UploadedDocument) (constants.DocumentKind, error) {
	mimeType := doc.MediaType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	text, err := c.generate(ctx, c.classifyModel, mimeType, doc.Content, classifyPrompt)
	if err != nil {
		return constants.KindOther, err
	}
	kind, ok := constants.CanonicalizeKind(text)
	if !ok {
		c.logger.Warn("gemini.classify.unknown", "file", doc.FileName, "answer", text)
	}
	return kind, nil
}
