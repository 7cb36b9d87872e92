package fields

import (
	"context"
	"log/slog"
	"time"

	"github.com/CorretorBrazza/docu-flow-automato/constants"
	"github.com/CorretorBrazza/docu-flow-automato/internal/extract"
	"github.com/CorretorBrazza/docu-flow-automato/internal/entity"
)

// PatternExtractor is the offline extraction backend: OCR text recognition
// followed by the regex cascades in this package. It needs no network and no
// credentials, only the tesseract and poppler binaries.
type PatternExtractor struct {
	text   extract.TextExtractor
	logger *slog.Logger
}

var _ extract.FieldExtractor = (*PatternExtractor)(nil)

func NewPatternExtractor(text extract.TextExtractor, logger *slog.Logger) *PatternExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PatternExtractor{text: text, logger: logger}
}

// ExtractFields recognizes the document text and matches the kind's field
// patterns against it. OCR failures pass through untouched so the caller can
// distinguish unreadable input from backend trouble.
func (p *PatternExtractor) ExtractFields(ctx context.Context, doc entity.UploadedDocument, kind constants.DocumentKind) (extract.FieldsResult, error) {
	start := time.Now()
	tr, err := p.text.Extract(ctx, doc)
	if err != nil {
		return extract.FieldsResult{}, err
	}
	matched := MatchFields(kind, tr.Text)
	p.logger.Info("fields.pattern.ok",
		"file", doc.FileName,
		"kind", string(kind),
		"method", tr.Method,
		"matched", len(matched),
		"confidence", tr.Confidence,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return extract.FieldsResult{Fields: matched, RawText: tr.Text}, nil
}
