package gemini

import (
	"context"
	"encoding/json"

	"github.com/CorretorBrazza/docu-flow-automato/internal/common"
	"github.com/CorretorBrazza/docu-flow-automato/internal/entity"
	"github.com/CorretorBrazza/docu-flow-automato/internal/extract"
)

var _ extract.QualityChecker = (*Client)(nil)

// QualityCheck asks the model whether the scan is legible and complete.
func (c *Client) QualityCheck(ctx context.Context, doc entity.UploadedDocument) (extract.QualityReport, error) {
	mimeType := doc.MediaType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	text, err := c.generate(ctx, c.qualityModel, mimeType, doc.Content, qualityPrompt)
	if err != nil {
		return extract.QualityReport{}, err
	}
	raw := firstJSONObject(text)
	if raw == "" {
		return extract.QualityReport{}, common.BackendErrorf("gemini: quality response carries no JSON for %q", doc.FileName)
	}
	var report extract.QualityReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return extract.QualityReport{}, common.BackendErrorf("gemini: decode quality response: %v", err)
	}
	c.logger.Info("gemini.quality.ok", "file", doc.FileName, "legible", report.Legible, "complete", report.Complete)
	return report, nil
}
