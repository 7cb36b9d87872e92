package ocr

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CorretorBrazza/docu-flow-automato/internal/common"
	"github.com/CorretorBrazza/docu-flow-automato/internal/entity"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\nrest-of-image")

// hangingRunner simulates an external tool that never finishes on its own.
type hangingRunner struct{}

func (hangingRunner) Run(ctx context.Context, _ string, _ ...string) ([]byte, []byte, error) {
	<-ctx.Done()
	return nil, nil, ctx.Err()
}

func TestExtractBoundsHungBackendCall(t *testing.T) {
	e := NewExtractor(Config{Timeout: 50 * time.Millisecond}, nil)
	e.runner = hangingRunner{}

	doc := entity.UploadedDocument{
		FileName:  "rg.png",
		MediaType: "image/png",
		Content:   pngHeader,
	}

	start := time.Now()
	_, err := e.Extract(context.Background(), doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrBackendUnavailable)
	assert.Less(t, time.Since(start), 5*time.Second, "the per-document timeout must end the call")
}

func TestExtractRejectsUndecodableBytes(t *testing.T) {
	e := NewExtractor(Config{}, nil)

	tests := []struct {
		name string
		doc  entity.UploadedDocument
	}{
		{"unknown media type", entity.UploadedDocument{FileName: "doc.txt", MediaType: "text/plain", Content: []byte("hello")}},
		{"pdf without magic", entity.UploadedDocument{FileName: "doc.pdf", MediaType: "application/pdf", Content: []byte("not a pdf")}},
		{"image without magic", entity.UploadedDocument{FileName: "doc.png", MediaType: "image/png", Content: []byte("not an image")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Extract(context.Background(), tt.doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrDecode)
		})
	}
}

func TestNewExtractorDefaults(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	assert.Equal(t, "tesseract", e.cfg.Tesseract)
	assert.Equal(t, "por", e.cfg.TesseractLang)
	assert.Equal(t, 300, e.cfg.DPI)
	assert.Equal(t, 60*time.Second, e.cfg.Timeout)
}
