package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/CorretorBrazza/docu-flow-automato/constants"
	"github.com/CorretorBrazza/docu-flow-automato/internal/common"
	"github.com/CorretorBrazza/docu-flow-automato/internal/entity"
	"github.com/CorretorBrazza/docu-flow-automato/internal/extract"
	"github.com/CorretorBrazza/docu-flow-automato/internal/fields"
)

// Advisory labels added to the missing-documents list by cross-document
// rules. They never flip the overall verdict.
const (
	missingMarriageCertificate = "Certidão de Casamento"
	missingSpouseDocuments     = "Documentos do Cônjuge"
	missingBirthCertificate    = "Certidão de Nascimento"
	missingTaxDeclaration      = "Declaração de Imposto de Renda"
	missingTaxReceipt          = "Recibo de Entrega DIRPF"
)

// reconcile evaluates every gate over the extraction results and assembles
// the final verdict. Check order follows classification order of first
// appearance, then the required-document checks.
func (e *Engine) reconcile(ctx context.Context, groups []docGroup, extractions []extraction) Result {
	var c entity.CaseExtraction
	mergeExtractions(&c, extractions)

	verdict := entity.ValidationVerdict{State: constants.RunReconciling}

	for i := range groups {
		if groups[i].kind == constants.KindOther {
			continue
		}
		verdict.AddCheck(e.documentCheck(ctx, groups[i], &extractions[i], &c, &verdict))
	}

	requiredMissing := e.requiredDocumentGate(groups, &verdict)
	e.maritalGate(groups, c.Personal.MaritalStatus, &verdict)

	// Fallback fires only on total emptiness; one usable field keeps the
	// real extraction.
	if !c.HasUsableData() {
		c = entity.FallbackExtraction()
		verdict.AddCheck(entity.CheckResult{
			Name:    "Processamento Geral",
			Passed:  true,
			Status:  constants.CheckWarning,
			Message: "Documentos requerem verificação manual",
			Detail:  "Não foi possível extrair dados suficientes automaticamente",
		})
	}

	verdict.OverallValid = requiredMissing == 0 && !verdict.HasErrors()
	verdict.State = constants.RunDone
	return Result{Extraction: c, Verdict: verdict}
}

// documentCheck grades one classified kind: decode/backend failures are
// errors, an illegible scan is an error, insufficient fields are a warning,
// anything else passes.
func (e *Engine) documentCheck(ctx context.Context, g docGroup, ex *extraction, c *entity.CaseExtraction, verdict *entity.ValidationVerdict) entity.CheckResult {
	label := g.kind.Label()

	if ex.err != nil {
		return entity.CheckResult{
			Name:    label,
			Passed:  false,
			Status:  constants.CheckError,
			Message: fmt.Sprintf("Erro ao processar %s", label),
			Detail:  failureDetail(ex.err),
		}
	}

	if ex.quality != nil && !ex.quality.Legible {
		return entity.CheckResult{
			Name:    label,
			Passed:  false,
			Status:  constants.CheckError,
			Message: fmt.Sprintf("%s ilegível", label),
			Detail:  strings.Join(ex.quality.Problems, "; "),
		}
	}

	if g.kind == constants.KindPayslip {
		return e.payslipCheck(ctx, g, ex, c, verdict)
	}

	if ok, why := e.sufficient(g.kind, c); !ok {
		return entity.CheckResult{
			Name:    label,
			Passed:  true,
			Status:  constants.CheckWarning,
			Message: fmt.Sprintf("%s presente mas com dados limitados", label),
			Detail:  why,
		}
	}

	return entity.CheckResult{
		Name:    label,
		Passed:  true,
		Status:  constants.CheckSuccess,
		Message: fmt.Sprintf("%s processado com sucesso", label),
		Detail:  successDetail(g.kind, c),
	}
}

// payslipCheck applies the income-proof policy: enough slips, no advance
// slips posing as full statements, and the income-tax advisory.
func (e *Engine) payslipCheck(ctx context.Context, g docGroup, ex *extraction, c *entity.CaseExtraction, verdict *entity.ValidationVerdict) entity.CheckResult {
	label := g.kind.Label()

	if len(g.docs) < e.opts.MinPayslips {
		return entity.CheckResult{
			Name:    label,
			Passed:  false,
			Status:  constants.CheckError,
			Message: fmt.Sprintf("Necessários %d últimos comprovantes de pagamento", e.opts.MinPayslips),
			Detail:  fmt.Sprintf("Encontrado(s) apenas %d comprovante(s)", len(g.docs)),
		}
	}

	hasIR, advance, refMonth := e.payslipAudit(ctx, ex)
	if hasIR {
		verdict.AddMissing(missingTaxDeclaration, missingTaxReceipt)
	}

	if advance {
		return entity.CheckResult{
			Name:    label,
			Passed:  true,
			Status:  constants.CheckWarning,
			Message: "Comprovante parece ser vale ou adiantamento",
			Detail:  "Envie o holerite do pagamento mensal completo",
		}
	}

	if ok, why := e.sufficient(g.kind, c); !ok {
		return entity.CheckResult{
			Name:    label,
			Passed:  true,
			Status:  constants.CheckWarning,
			Message: fmt.Sprintf("%s presente mas com dados limitados", label),
			Detail:  why,
		}
	}

	detail := fmt.Sprintf("Empresa: %s", c.Employment.EmployerName)
	if refMonth != "" {
		detail += fmt.Sprintf(" | Referência: %s", refMonth)
	}
	return entity.CheckResult{
		Name:    label,
		Passed:  true,
		Status:  constants.CheckSuccess,
		Message: "Comprovante de pagamento processado",
		Detail:  detail,
	}
}

// payslipAudit answers the payslip-level questions, preferring the backend's
// own judgment when it offers one and falling back to keyword rules over the
// recognized text.
func (e *Engine) payslipAudit(ctx context.Context, ex *extraction) (hasIR, advance bool, refMonth string) {
	if auditor, ok := e.backend.(extract.PayslipAuditor); ok {
		if v, err := auditor.HasIncomeTaxWithholding(ctx, ex.rawDoc); err == nil {
			hasIR = v
		}
		if v, err := auditor.IsFullPayment(ctx, ex.rawDoc); err == nil {
			advance = !v
		}
		if v, err := auditor.ReferenceMonth(ctx, ex.rawDoc); err == nil {
			refMonth = v
		}
		return hasIR, advance, refMonth
	}
	raw := ex.res.RawText
	return fields.HasIncomeTaxWithholding(raw), fields.IsAdvancePayment(raw), fields.ReferenceMonth(raw)
}

// sufficient is the per-kind minimal field predicate.
func (e *Engine) sufficient(kind constants.DocumentKind, c *entity.CaseExtraction) (bool, string) {
	switch kind {
	case constants.KindIdentity, constants.KindDriverLicense:
		var gaps []string
		if !usableValue(c.Personal.FullName) {
			gaps = append(gaps, "nome completo")
		}
		if !usableValue(c.Personal.TaxID) {
			gaps = append(gaps, "CPF")
		}
		if e.opts.RequireBirthDate && !usableValue(c.Personal.BirthDate) {
			gaps = append(gaps, "data de nascimento")
		}
		return gapsDetail(gaps)
	case constants.KindPayslip:
		var gaps []string
		if !usableValue(c.Employment.EmployerName) {
			gaps = append(gaps, "empresa")
		}
		if !usableValue(c.Employment.GrossSalary) {
			gaps = append(gaps, "salário bruto")
		}
		return gapsDetail(gaps)
	case constants.KindAddressProof:
		var gaps []string
		if !usableValue(c.Address.Street) {
			gaps = append(gaps, "logradouro")
		}
		if !usableValue(c.Address.City) {
			gaps = append(gaps, "cidade")
		}
		if !usableValue(c.Address.PostalCode) {
			gaps = append(gaps, "CEP")
		}
		return gapsDetail(gaps)
	default:
		return true, ""
	}
}

// requiredDocumentGate records an error check and a missing-list entry for
// each required kind with zero files. The identity slot accepts either the
// identity card or the driver's license. Returns the hard-missing count.
func (e *Engine) requiredDocumentGate(groups []docGroup, verdict *entity.ValidationVerdict) int {
	present := map[constants.DocumentKind]bool{}
	identityPresent := false
	for _, g := range groups {
		present[g.kind] = true
		if g.kind.IsIdentity() {
			identityPresent = true
		}
	}

	missing := 0
	for _, kind := range e.opts.RequiredKinds {
		satisfied := present[kind]
		if kind.IsIdentity() {
			satisfied = identityPresent
		}
		if satisfied {
			continue
		}
		missing++
		verdict.AddMissing(kind.MissingLabel())
		verdict.AddCheck(entity.CheckResult{
			Name:    kind.MissingLabel(),
			Passed:  false,
			Status:  constants.CheckError,
			Message: fmt.Sprintf("Documento obrigatório ausente: %s", kind.MissingLabel()),
		})
	}
	return missing
}

// maritalGate extends the missing list from the marital status: marriage
// requires the certificate and the spouse's documents, single status suggests
// a birth certificate. Advisory only.
func (e *Engine) maritalGate(groups []docGroup, maritalStatus string, verdict *entity.ValidationVerdict) {
	certificatePresent := false
	for _, g := range groups {
		if g.kind == constants.KindCertificate {
			certificatePresent = true
		}
	}
	switch maritalStatus {
	case constants.MaritalMarried:
		if !certificatePresent {
			verdict.AddMissing(missingMarriageCertificate, missingSpouseDocuments)
		}
	case constants.MaritalSingle:
		if !certificatePresent {
			verdict.AddMissing(missingBirthCertificate)
		}
	}
}

func usableValue(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.Contains(v, entity.NotExtracted)
}

func gapsDetail(gaps []string) (bool, string) {
	if len(gaps) == 0 {
		return true, ""
	}
	return false, "Campos ausentes: " + strings.Join(gaps, ", ")
}

func successDetail(kind constants.DocumentKind, c *entity.CaseExtraction) string {
	switch kind {
	case constants.KindIdentity, constants.KindDriverLicense:
		return fmt.Sprintf("Nome: %s | Estado civil: %s", c.Personal.FullName, c.Personal.MaritalStatus)
	case constants.KindAddressProof:
		return fmt.Sprintf("Endereço: %s", c.Address.Street)
	case constants.KindCertificate:
		return fmt.Sprintf("Filiação: %s / %s", c.Relatives.FatherName, c.Relatives.MotherName)
	default:
		return ""
	}
}

func failureDetail(err error) string {
	switch {
	case errors.Is(err, common.ErrDecode):
		return "Arquivo corrompido ou em formato não reconhecido"
	case errors.Is(err, common.ErrBackendUnavailable):
		return "Falha de comunicação com o processamento automático"
	default:
		return "Falha no processamento do documento"
	}
}
