package docgen

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/CorretorBrazza/docu-flow-automato/constants"
	"github.com/CorretorBrazza/docu-flow-automato/internal/entity"
)

// Dossier consolidates every uploaded document into one PDF, in upload
// order. Image uploads are imported as single-page PDFs first; PDF uploads
// pass through as-is.
func (g *Generator) Dossier(docs []entity.UploadedDocument) ([]byte, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("dossier: no documents")
	}
	start := time.Now()

	workDir, err := os.MkdirTemp("", "dossier-*")
	if err != nil {
		return nil, fmt.Errorf("dossier: temp dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	var parts []string
	for i, doc := range docs {
		ext := constants.NormalizeExt(filepath.Ext(doc.FileName))
		if !constants.IsAllowedExt(ext) {
			g.logger.Warn("docgen.dossier.skip", "file", doc.FileName, "ext", ext)
			continue
		}
		src := filepath.Join(workDir, fmt.Sprintf("doc-%03d.%s", i, ext))
		if err := os.WriteFile(src, doc.Content, 0o600); err != nil {
			return nil, fmt.Errorf("dossier: write %s: %w", doc.FileName, err)
		}

		if constants.MapExtToFormat(ext) == constants.PDF {
			parts = append(parts, src)
			continue
		}
		paged := filepath.Join(workDir, fmt.Sprintf("doc-%03d.pdf", i))
		if err := api.ImportImagesFile([]string{src}, paged, nil, nil); err != nil {
			return nil, fmt.Errorf("dossier: import image %s: %w", doc.FileName, err)
		}
		parts = append(parts, paged)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("dossier: no convertible documents")
	}

	out := filepath.Join(workDir, "dossier.pdf")
	if err := api.MergeCreateFile(parts, out, false, nil); err != nil {
		return nil, fmt.Errorf("dossier: merge: %w", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("dossier: read result: %w", err)
	}

	g.logger.Info("docgen.dossier.ok",
		"documents", len(parts),
		"bytes", len(data),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return data, nil
}
