package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CorretorBrazza/docu-flow-automato/internal/classify"
	"github.com/CorretorBrazza/docu-flow-automato/internal/common"
	"github.com/CorretorBrazza/docu-flow-automato/internal/docgen"
	"github.com/CorretorBrazza/docu-flow-automato/internal/extract"
	"github.com/CorretorBrazza/docu-flow-automato/internal/fields"
	"github.com/CorretorBrazza/docu-flow-automato/internal/gemini"
	"github.com/CorretorBrazza/docu-flow-automato/internal/ocr"
	"github.com/CorretorBrazza/docu-flow-automato/internal/pipeline"
	"github.com/CorretorBrazza/docu-flow-automato/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, classifier, quality, closeBackend, err := buildBackend(ctx, cfg, logger)
	if err != nil {
		logger.Error("backend setup failed", "error", err)
		os.Exit(1)
	}
	defer closeBackend()

	engine := pipeline.NewEngine(classifier, backend, quality, pipeline.Options{
		MaxConcurrent:    cfg.Pipeline.MaxConcurrent,
		QualityCheck:     cfg.Pipeline.QualityCheck,
		RequireBirthDate: cfg.Pipeline.RequireBirthDate,
		MinPayslips:      cfg.Pipeline.MinPayslips,
		RequiredKinds:    cfg.Pipeline.RequiredKinds,
	}, logger)

	handler := server.NewHandler(server.NewStore(), engine, docgen.NewGenerator(logger), cfg.Server.MaxUploadBytes, logger)
	router := server.NewRouter(handler, logger)

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr, "backend", cfg.Pipeline.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("stopped")
}

// buildBackend wires the extraction strategy the configuration asks for.
func buildBackend(ctx context.Context, cfg *common.Config, logger *slog.Logger) (extract.FieldExtractor, extract.Classifier, extract.QualityChecker, func(), error) {
	switch cfg.Pipeline.Backend {
	case "gemini":
		client, err := gemini.NewClient(ctx, gemini.Config{
			ProjectID: cfg.Gemini.ProjectID,
			Region:    cfg.Gemini.Region,
			Model:     cfg.Gemini.Model,
			Timeout:   cfg.Gemini.Timeout,
		}, logger)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		closer := func() {
			if cerr := client.Close(); cerr != nil {
				logger.Error("close gemini client", "error", cerr)
			}
		}
		return client, classify.NewChain(client, logger), client, closer, nil
	default:
		text := ocr.NewExtractor(ocr.Config{
			Tesseract:     cfg.OCR.Tesseract,
			Pdftoppm:      cfg.OCR.Pdftoppm,
			TesseractLang: cfg.OCR.TesseractLang,
			DPI:           cfg.OCR.DPI,
			Timeout:       cfg.OCR.Timeout,
		}, logger)
		return fields.NewPatternExtractor(text, logger), classify.Filename{}, nil, func() {}, nil
	}
}
