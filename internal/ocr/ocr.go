package ocr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/CorretorBrazza/docu-flow-automato/constants"
	"github.com/CorretorBrazza/docu-flow-automato/internal/common"
	"github.com/CorretorBrazza/docu-flow-automato/internal/entity"
	"github.com/CorretorBrazza/docu-flow-automato/internal/extract"
)

// Below this many characters of embedded text, a PDF is treated as a scan and
// rasterized for OCR instead.
const minEmbeddedTextLen = 32

type Config struct {
	Tesseract string // binary name or absolute path; if empty -> "tesseract"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"

	TesseractLang string        // default "por"
	DPI           int           // rasterization DPI for scanned PDFs, default 300
	MaxPages      int           // 0 = no limit
	Timeout       time.Duration // per-document bound on the whole pass, default 60s

	PSM int // e.g., 6 for a uniform block of text
	OEM int // 1 = LSTM; 0 = engine default
}

// Extractor turns uploaded document bytes into plain text. PDFs are read
// in-memory; scanned PDFs and raster images go through tesseract.
type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "por"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Extract picks a strategy based on the declared media type, falling back to
// the file extension when the media type is missing or unknown.
func (e *Extractor) Extract(ctx context.Context, doc entity.UploadedDocument) (extract.TextResult, error) {
	start := time.Now()

	// One hung external tool must fail only this document, not the run.
	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	format := constants.MapMediaTypeToFormat(doc.MediaType)
	if format == "" {
		format = constants.MapExtToFormat(filepath.Ext(doc.FileName))
	}
	e.logger.Debug("starting text extraction", "file", doc.FileName, "format", format, "bytes", len(doc.Content))

	switch format {
	case constants.PDF:
		res, err := e.extractPDF(ctx, doc)
		res.Duration = time.Since(start)
		return res, err
	case constants.IMAGE:
		res, err := e.extractImage(ctx, doc)
		res.Duration = time.Since(start)
		return res, err
	default:
		return extract.TextResult{}, common.DecodeErrorf("unsupported media type %q for %q", doc.MediaType, doc.FileName)
	}
}

func (e *Extractor) extractPDF(ctx context.Context, doc entity.UploadedDocument) (extract.TextResult, error) {
	if !bytes.HasPrefix(doc.Content, []byte("%PDF-")) {
		return extract.TextResult{SourceType: constants.PDF}, common.DecodeErrorf("%q is not a PDF", doc.FileName)
	}

	text, pages, err := pdfPlainText(doc.Content)
	if err != nil {
		return extract.TextResult{SourceType: constants.PDF}, common.DecodeErrorf("read pdf %q: %v", doc.FileName, err)
	}

	if len(strings.TrimSpace(text)) >= minEmbeddedTextLen {
		res := extract.TextResult{
			Text:       text,
			Pages:      pages,
			SourceType: constants.PDF,
			Method:     "pdf-text",
		}
		res.Confidence = heuristicConfidence(res.Text)
		return res, nil
	}

	// No embedded text layer; rasterize and OCR each page.
	text, pages, warns, err := e.pdfToOCR(ctx, doc)
	if err != nil {
		return extract.TextResult{SourceType: constants.PDF, Warnings: warns},
			common.BackendErrorf("ocr scanned pdf %q: %v", doc.FileName, err)
	}
	res := extract.TextResult{
		Text:       text,
		Pages:      pages,
		SourceType: constants.PDF,
		Method:     "pdf-ocr",
		Warnings:   warns,
	}
	res.Confidence = heuristicConfidence(res.Text)
	return res, nil
}

func (e *Extractor) extractImage(ctx context.Context, doc entity.UploadedDocument) (extract.TextResult, error) {
	if !looksLikeImage(doc.Content) {
		return extract.TextResult{SourceType: constants.IMAGE}, common.DecodeErrorf("%q is not a supported image", doc.FileName)
	}

	path, cleanup, err := spill(doc)
	if err != nil {
		return extract.TextResult{SourceType: constants.IMAGE}, fmt.Errorf("stage image: %w", err)
	}
	defer cleanup()

	text, warns, err := e.tesseractOCR(ctx, path)
	if err != nil {
		return extract.TextResult{SourceType: constants.IMAGE, Warnings: warns},
			common.BackendErrorf("tesseract on %q: %v", doc.FileName, err)
	}
	res := extract.TextResult{
		Text:       text,
		Pages:      1,
		SourceType: constants.IMAGE,
		Method:     "image-ocr",
		Warnings:   warns,
	}
	res.Confidence = heuristicConfidence(res.Text)
	return res, nil
}

func (e *Extractor) tesseractOCR(ctx context.Context, imgPath string) (string, []string, error) {
	args := []string{imgPath, "stdout", "-l", e.cfg.TesseractLang}
	if e.cfg.PSM > 0 {
		args = append(args, "--psm", fmt.Sprintf("%d", e.cfg.PSM))
	}
	if e.cfg.OEM > 0 {
		args = append(args, "--oem", fmt.Sprintf("%d", e.cfg.OEM))
	}
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", []string{string(errb)}, err
	}
	return string(out), nil, nil
}

func (e *Extractor) pdfToOCR(ctx context.Context, doc entity.UploadedDocument) (text string, pages int, warnings []string, err error) {
	path, cleanup, err := spill(doc)
	if err != nil {
		return "", 0, nil, err
	}
	defer cleanup()

	tmpDir := filepath.Dir(path)
	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", fmt.Sprintf("%d", e.cfg.DPI), "-png", path, prefix)
	if err != nil {
		return "", 0, []string{string(errb)}, err
	}

	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if e.cfg.MaxPages > 0 && len(matches) > e.cfg.MaxPages {
		matches = matches[:e.cfg.MaxPages]
	}
	if len(matches) == 0 {
		return "", 0, []string{"pdftoppm produced no images"}, fmt.Errorf("no pages rendered")
	}

	var b strings.Builder
	var warns []string
	for _, img := range matches {
		txt, w, err := e.tesseractOCR(ctx, img)
		if err != nil {
			warns = append(warns, err.Error())
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\f\n")
		}
		b.WriteString(txt)
		warns = append(warns, w...)
	}
	return b.String(), len(matches), warns, nil
}

// spill writes the document payload to a private temp dir so external tools
// can read it. Callers must invoke cleanup.
func spill(doc entity.UploadedDocument) (string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "dfa-doc-*")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(tmpDir) }

	name := filepath.Base(doc.FileName)
	if name == "" || name == "." {
		name = "document"
	}
	path := filepath.Join(tmpDir, name)
	if err := os.WriteFile(path, doc.Content, 0o600); err != nil {
		cleanup()
		return "", nil, err
	}
	return path, cleanup, nil
}

func pdfPlainText(data []byte) (string, int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", 0, err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", 0, err
	}
	return buf.String(), reader.NumPage(), nil
}

func looksLikeImage(data []byte) bool {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return true
	case bytes.HasPrefix(data, []byte("\xff\xd8\xff")): // JPEG
		return true
	default:
		return false
	}
}
