// Package pipeline is the validation engine: it classifies the uploaded
// file set, fans extraction out to the configured backend, reconciles the
// results into one CaseExtraction, and issues the ValidationVerdict.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/CorretorBrazza/docu-flow-automato/constants"
	"github.com/CorretorBrazza/docu-flow-automato/internal/common"
	"github.com/CorretorBrazza/docu-flow-automato/internal/entity"
	"github.com/CorretorBrazza/docu-flow-automato/internal/extract"
	"github.com/CorretorBrazza/docu-flow-automato/internal/fields"
)

// Options are the engine's policy knobs. Zero values fall back to the
// defaults in common.LoadConfig.
type Options struct {
	MaxConcurrent    int
	QualityCheck     bool
	RequireBirthDate bool
	MinPayslips      int
	RequiredKinds    []constants.DocumentKind
}

func (o Options) withDefaults() Options {
	if o.MaxConcurrent <= 0 {
		o.MaxConcurrent = 3
	}
	if o.MinPayslips <= 0 {
		o.MinPayslips = 1
	}
	if len(o.RequiredKinds) == 0 {
		o.RequiredKinds = constants.RequiredKinds
	}
	return o
}

// Engine runs one validation per call. It holds no per-run state, so one
// engine serves concurrent runs.
type Engine struct {
	classifier extract.Classifier
	backend    extract.FieldExtractor
	quality    extract.QualityChecker // nil disables the quality gate
	opts       Options
	logger     *slog.Logger
}

func NewEngine(classifier extract.Classifier, backend extract.FieldExtractor, quality extract.QualityChecker, opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		classifier: classifier,
		backend:    backend,
		quality:    quality,
		opts:       opts.withDefaults(),
		logger:     logger,
	}
}

// Result pairs the merged extraction with its verdict.
type Result struct {
	Extraction entity.CaseExtraction     `json:"extraction"`
	Verdict    entity.ValidationVerdict  `json:"verdict"`
	Kinds      map[string][]string       `json:"kinds"` // kind -> file names, classification order
}

// docGroup is one classified kind with its files, in upload order.
type docGroup struct {
	kind constants.DocumentKind
	docs []entity.UploadedDocument
}

// extraction is one kind's backend outcome.
type extraction struct {
	kind    constants.DocumentKind
	res     extract.FieldsResult
	rawDoc  entity.UploadedDocument
	err     error
	quality *extract.QualityReport
}

// Run traverses Classifying -> Extracting -> Reconciling and returns a
// complete verdict, or an error only when the backend was unreachable for
// every single document.
func (e *Engine) Run(ctx context.Context, docs []entity.UploadedDocument) (Result, error) {
	start := time.Now()
	if len(docs) == 0 {
		return Result{}, common.NewAppError("INVALID_INPUT", "no documents to validate", common.ErrInvalidInput)
	}

	groups := e.classifyAll(ctx, docs)
	extractions, err := e.extractAll(ctx, groups)
	if err != nil {
		e.logger.Error("pipeline.run.failed", "files", len(docs), "error", err)
		return Result{Verdict: entity.ValidationVerdict{State: constants.RunFailed}}, err
	}

	res := e.reconcile(ctx, groups, extractions)
	res.Kinds = kindIndex(groups)

	e.logger.Info("pipeline.run.done",
		"files", len(docs),
		"checks", len(res.Verdict.Checks),
		"missing", len(res.Verdict.MissingDocuments),
		"valid", res.Verdict.OverallValid,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

// classifyAll labels every file and groups them by kind, preserving the
// classification order of first appearance. Classification failures demote
// the file to KindOther instead of aborting the run.
func (e *Engine) classifyAll(ctx context.Context, docs []entity.UploadedDocument) []docGroup {
	kinds := make([]constants.DocumentKind, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.MaxConcurrent)
	for i := range docs {
		i := i
		g.Go(func() error {
			kind, err := e.classifier.Classify(gctx, docs[i])
			if err != nil {
				e.logger.Warn("pipeline.classify.fallback", "file", docs[i].FileName, "error", err)
				kind = constants.KindOther
			}
			kinds[i] = kind
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	var groups []docGroup
	index := map[constants.DocumentKind]int{}
	for i, doc := range docs {
		kind := kinds[i]
		at, seen := index[kind]
		if !seen {
			index[kind] = len(groups)
			groups = append(groups, docGroup{kind: kind})
			at = index[kind]
		}
		groups[at].docs = append(groups[at].docs, doc)
	}
	return groups
}

// extractAll invokes the backend once per kind on the representative file
// (first uploaded), concurrently up to the configured limit. It fails the
// whole run only when every attempted call came back BackendUnavailable.
func (e *Engine) extractAll(ctx context.Context, groups []docGroup) ([]extraction, error) {
	extractions := make([]extraction, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.MaxConcurrent)
	for i := range groups {
		extractions[i] = extraction{kind: groups[i].kind}
		if groups[i].kind == constants.KindOther {
			continue
		}
		i := i
		g.Go(func() error {
			doc := groups[i].docs[0]
			ex := &extractions[i]
			ex.rawDoc = doc

			if e.opts.QualityCheck && e.quality != nil {
				if report, qerr := e.quality.QualityCheck(gctx, doc); qerr == nil {
					ex.quality = &report
				} else {
					e.logger.Warn("pipeline.quality.skip", "file", doc.FileName, "error", qerr)
				}
			}

			res, err := e.backend.ExtractFields(gctx, doc, groups[i].kind)
			if err != nil {
				e.logger.Warn("pipeline.extract.fail", "file", doc.FileName, "kind", string(groups[i].kind), "error", err)
				ex.err = err
				return nil // per-document failures never abort the run
			}
			ex.res = res
			return nil
		})
	}
	_ = g.Wait()

	attempted, unreachable := 0, 0
	for i := range extractions {
		if extractions[i].kind == constants.KindOther {
			continue
		}
		attempted++
		if errors.Is(extractions[i].err, common.ErrBackendUnavailable) {
			unreachable++
		}
	}
	if attempted > 0 && unreachable == attempted {
		return nil, common.NewAppError("BACKEND_UNAVAILABLE",
			"extraction backend unreachable for every document", common.ErrBackendUnavailable)
	}
	return extractions, nil
}

func kindIndex(groups []docGroup) map[string][]string {
	out := make(map[string][]string, len(groups))
	for _, g := range groups {
		names := make([]string, len(g.docs))
		for i, d := range g.docs {
			names[i] = d.FileName
		}
		out[string(g.kind)] = names
	}
	return out
}

// mergeExtractions folds the per-kind results into one CaseExtraction.
// A driver's license outranks the plain identity card: when both are present
// the identity card only fills a still-missing tax ID.
func mergeExtractions(c *entity.CaseExtraction, extractions []extraction) {
	hasLicense := false
	for i := range extractions {
		if extractions[i].kind == constants.KindDriverLicense && extractions[i].err == nil {
			hasLicense = true
		}
	}

	// License first so its fields win the monotonic merge.
	for i := range extractions {
		ex := &extractions[i]
		if ex.err != nil || ex.kind != constants.KindDriverLicense {
			continue
		}
		fields.MergeInto(c, ex.kind, ex.res)
	}
	for i := range extractions {
		ex := &extractions[i]
		if ex.err != nil || ex.kind == constants.KindDriverLicense {
			continue
		}
		if ex.kind == constants.KindIdentity && hasLicense {
			c.Personal.FillTaxID(fields.BuildPersonal(ex.res).TaxID)
			continue
		}
		fields.MergeInto(c, ex.kind, ex.res)
	}
}
