// Package classify assigns a document kind to each uploaded file before
// extraction. Classification is deliberately cheap: the file name carries the
// answer for the vast majority of broker uploads, and a backend classifier is
// only consulted when configured.
package classify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/CorretorBrazza/docu-flow-automato/constants"
	"github.com/CorretorBrazza/docu-flow-automato/internal/entity"
	"github.com/CorretorBrazza/docu-flow-automato/internal/extract"
	"github.com/CorretorBrazza/docu-flow-automato/internal/fields"
)

// rule maps keywords to a kind. Substring keywords match anywhere in the
// folded name; token keywords must appear as a whole word so that "rg" does
// not fire inside "energia".
type rule struct {
	kind       constants.DocumentKind
	substrings []string
	tokens     []string
}

// Order matters: specific kinds come before the ones whose keywords they
// contain ("comprovante de pagamento" is a payslip, not an address proof).
var filenameRules = []rule{
	{
		kind:       constants.KindDriverLicense,
		substrings: []string{"cnh", "habilitacao", "motorista"},
	},
	{
		// Narrow tax keywords go before "recibo": the DIRPF delivery
		// receipt must not land in the payslip bucket.
		kind:       constants.KindTaxDeclaration,
		substrings: []string{"dirpf", "imposto"},
	},
	{
		kind:       constants.KindPayslip,
		substrings: []string{"holerite", "contracheque", "contra cheque", "pagamento", "salario", "folha", "recibo", "comprovante de renda"},
	},
	{
		kind:       constants.KindAddressProof,
		substrings: []string{"endereco", "residencia", "conta de luz", "energia", "luz", "agua", "telefone", "internet", "comprovante"},
	},
	{
		kind:       constants.KindCertificate,
		substrings: []string{"certidao", "casamento", "nascimento"},
	},
	{
		kind:       constants.KindTaxDeclaration,
		substrings: []string{"renda"},
		tokens:     []string{"ir", "irpf"},
	},
	{
		kind:       constants.KindIdentity,
		substrings: []string{"identidade", "registro geral"},
		tokens:     []string{"rg", "cpf"},
	},
}

// Filename classifies by keywords in the upload's file name.
type Filename struct{}

var _ extract.Classifier = Filename{}

// Classify never fails; a name matching nothing is simply KindOther.
func (Filename) Classify(_ context.Context, doc entity.UploadedDocument) (constants.DocumentKind, error) {
	return ByFilename(doc.FileName), nil
}

// ByFilename maps a file name to the first rule it satisfies.
func ByFilename(name string) constants.DocumentKind {
	folded := strings.ToLower(fields.FoldDiacritics(name))
	folded = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(folded)
	toks := strings.Fields(folded)
	for _, r := range filenameRules {
		for _, kw := range r.substrings {
			if strings.Contains(folded, kw) {
				return r.kind
			}
		}
		for _, kw := range r.tokens {
			for _, t := range toks {
				if t == kw {
					return r.kind
				}
			}
		}
	}
	return constants.KindOther
}

// Chain consults a backend classifier first and falls back to the file name
// when the backend errors out or answers KindOther.
type Chain struct {
	Backend extract.Classifier
	Logger  *slog.Logger
}

var _ extract.Classifier = (*Chain)(nil)

func NewChain(backend extract.Classifier, logger *slog.Logger) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	return &Chain{Backend: backend, Logger: logger}
}

func (c *Chain) Classify(ctx context.Context, doc entity.UploadedDocument) (constants.DocumentKind, error) {
	if c.Backend != nil {
		kind, err := c.Backend.Classify(ctx, doc)
		if err == nil && kind != constants.KindOther {
			return kind, nil
		}
		if err != nil {
			c.Logger.Warn("classify.backend.fallback", "file", doc.FileName, "error", err)
		}
	}
	return ByFilename(doc.FileName), nil
}
