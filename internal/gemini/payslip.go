package gemini

import (
	"context"
	"strings"

	"github.com/CorretorBrazza/docu-flow-automato/internal/entity"
	"github.com/CorretorBrazza/docu-flow-automato/internal/extract"
)

var _ extract.PayslipAuditor = (*Client)(nil)

const irrfPrompt = `Analise este holerite e responda apenas "SIM" ou "NÃO":
Há desconto de Imposto de Renda (IRRF) neste documento?`

const fullPaymentPrompt = `Analise este holerite e responda apenas "SIM" ou "NÃO":
Este é um pagamento completo (não é vale ou adiantamento)?`

const referenceMonthPrompt = `Analise este holerite e extraia apenas o mês de referência no formato "MM/AAAA".
Se não encontrar, retorne string vazia.`

// HasIncomeTaxWithholding asks whether the payslip shows an IRRF deduction.
func (c *Client) HasIncomeTaxWithholding(ctx context.Context, doc entity.UploadedDocument) (bool, error) {
	return c.yesNo(ctx, doc, irrfPrompt)
}

// IsFullPayment asks whether the payslip is a full monthly statement rather
// than an advance slip.
func (c *Client) IsFullPayment(ctx context.Context, doc entity.UploadedDocument) (bool, error) {
	return c.yesNo(ctx, doc, fullPaymentPrompt)
}

// ReferenceMonth asks for the payslip's competence month.
func (c *Client) ReferenceMonth(ctx context.Context, doc entity.UploadedDocument) (string, error) {
	mimeType := doc.MediaType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	text, err := c.generate(ctx, c.classifyModel, mimeType, doc.Content, referenceMonthPrompt)
	if err != nil {
		return "", err
	}
	return strings.Trim(strings.TrimSpace(text), `"`), nil
}

func (c *Client) yesNo(ctx context.Context, doc entity.UploadedDocument, prompt string) (bool, error) {
	mimeType := doc.MediaType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	text, err := c.generate(ctx, c.classifyModel, mimeType, doc.Content, prompt)
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToUpper(text), "SIM"), nil
}
