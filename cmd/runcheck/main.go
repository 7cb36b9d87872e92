// runcheck validates a directory of case documents from the command line and
// prints the verdict as JSON. Useful for trying the pipeline without the
// HTTP server.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/CorretorBrazza/docu-flow-automato/constants"
	"github.com/CorretorBrazza/docu-flow-automato/internal/classify"
	"github.com/CorretorBrazza/docu-flow-automato/internal/common"
	"github.com/CorretorBrazza/docu-flow-automato/internal/entity"
	"github.com/CorretorBrazza/docu-flow-automato/internal/fields"
	"github.com/CorretorBrazza/docu-flow-automato/internal/ocr"
	"github.com/CorretorBrazza/docu-flow-automato/internal/pipeline"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "runcheck <documents-dir>")
		os.Exit(2)
	}
	dir := os.Args[1]

	docs, err := loadDocuments(dir)
	if err != nil {
		logger.Error("load documents", "dir", dir, "error", err)
		os.Exit(1)
	}
	if len(docs) == 0 {
		logger.Error("no supported documents found", "dir", dir)
		os.Exit(1)
	}

	cfg := common.LoadConfig()
	text := ocr.NewExtractor(ocr.Config{
		Tesseract:     cfg.OCR.Tesseract,
		Pdftoppm:      cfg.OCR.Pdftoppm,
		TesseractLang: cfg.OCR.TesseractLang,
		DPI:           cfg.OCR.DPI,
		Timeout:       cfg.OCR.Timeout,
	}, logger)
	engine := pipeline.NewEngine(
		classify.Filename{},
		fields.NewPatternExtractor(text, logger),
		nil,
		pipeline.Options{
			MaxConcurrent:    cfg.Pipeline.MaxConcurrent,
			RequireBirthDate: cfg.Pipeline.RequireBirthDate,
			MinPayslips:      cfg.Pipeline.MinPayslips,
			RequiredKinds:    cfg.Pipeline.RequiredKinds,
		},
		logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := engine.Run(ctx, docs)
	if err != nil {
		logger.Error("validation failed", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
	if !result.Verdict.OverallValid {
		os.Exit(3)
	}
}

func loadDocuments(dir string) ([]entity.UploadedDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var docs []entity.UploadedDocument
	for _, e := range entries {
		if e.IsDir() || !constants.IsAllowedExt(filepath.Ext(e.Name())) {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		docs = append(docs, entity.UploadedDocument{
			FileName:  e.Name(),
			MediaType: mime.TypeByExtension(filepath.Ext(e.Name())),
			Content:   content,
		})
	}
	return docs, nil
}
