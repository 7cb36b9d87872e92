package extract

import (
	"context"
	"time"

	"github.com/CorretorBrazza/docu-flow-automato/constants"
	"github.com/CorretorBrazza/docu-flow-automato/internal/entity"
)

// Canonical field keys shared by both extraction strategies. They follow the
// JSON shape the generative backend is prompted to return.
const (
	FieldFullName      = "nomeCompleto"
	FieldIDNumber      = "rg"
	FieldTaxID         = "cpf"
	FieldBirthDate     = "dataNascimento"
	FieldBirthPlace    = "naturalidade"
	FieldMaritalStatus = "estadoCivil"
	FieldIssuer        = "orgaoEmissor"

	FieldEmployer      = "empresa"
	FieldJobTitle      = "cargo"
	FieldGrossSalary   = "salarioBruto"
	FieldAdmissionDate = "dataAdmissao"

	FieldStreet       = "logradouro"
	FieldComplement   = "complemento"
	FieldNeighborhood = "bairro"
	FieldCity         = "cidade"
	FieldState        = "estado"
	FieldPostalCode   = "cep"

	FieldFatherName = "nomePai"
	FieldMotherName = "nomeMae"
)

// FieldSet is a partial structured record keyed by the canonical field names.
// Absent fields are simply missing or empty; lookups never panic.
type FieldSet map[string]string

// Get returns the value for key, or "".
func (fs FieldSet) Get(key string) string {
	if fs == nil {
		return ""
	}
	return fs[key]
}

// TextExtractor is Stage 1 of the pattern strategy: document bytes -> text.
type TextExtractor interface {
	Extract(ctx context.Context, doc entity.UploadedDocument) (TextResult, error)
}

// TextResult is the outcome of a plain-text recognition pass.
type TextResult struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF | constants.IMAGE
	Method     string // "pdf-text" | "image-ocr"
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}

// FieldExtractor is the extraction backend capability the pipeline depends
// on: given a document and its kind, return the partial structured record for
// that kind's schema plus whatever raw text supported it. A field being
// absent from the document yields an empty string; an unreadable document or
// a failed backend call yields an error (common.ErrDecode /
// common.ErrBackendUnavailable respectively).
type FieldExtractor interface {
	ExtractFields(ctx context.Context, doc entity.UploadedDocument, kind constants.DocumentKind) (FieldsResult, error)
}

// FieldsResult carries the structured fields and the supporting raw text
// (used for keyword-level rules such as marital status and IRRF detection).
type FieldsResult struct {
	Fields  FieldSet
	RawText string
}

// Classifier assigns a document kind to an uploaded file.
type Classifier interface {
	Classify(ctx context.Context, doc entity.UploadedDocument) (constants.DocumentKind, error)
}

// QualityChecker is the optional legibility/completeness judgment a backend
// may offer before the pipeline trusts an extraction.
type QualityChecker interface {
	QualityCheck(ctx context.Context, doc entity.UploadedDocument) (QualityReport, error)
}

// PayslipAuditor is an optional backend capability for payslip-level
// questions that need the document itself rather than the extracted fields.
// Backends that cannot answer simply do not implement it and the pipeline
// falls back to keyword rules over the recognized text.
type PayslipAuditor interface {
	HasIncomeTaxWithholding(ctx context.Context, doc entity.UploadedDocument) (bool, error)
	IsFullPayment(ctx context.Context, doc entity.UploadedDocument) (bool, error)
	ReferenceMonth(ctx context.Context, doc entity.UploadedDocument) (string, error)
}

// QualityReport is the backend's verdict on one document's readability.
type QualityReport struct {
	Legible  bool     `json:"legivel"`
	Complete bool     `json:"completo"`
	Quality  string   `json:"qualidade,omitempty"`
	Problems []string `json:"problemas,omitempty"`
}
