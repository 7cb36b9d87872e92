package entity

import "strings"

// NotExtracted is the sentinel written into name-like fields when the
// fallback policy replaces an extraction nobody could read.
const NotExtracted = "DADOS NÃO EXTRAÍDOS - VERIFICAR MANUALMENTE"

// PersonalRecord holds data sourced from identity documents. Absent fields
// are empty strings, never omitted.
type PersonalRecord struct {
	FullName         string `json:"nome_completo"`
	IDNumber         string `json:"rg"`
	TaxID            string `json:"cpf"`
	BirthDate        string `json:"data_nascimento"`
	BirthPlace       string `json:"naturalidade"`
	MaritalStatus    string `json:"estado_civil"`
	IssuingAuthority string `json:"orgao_emissor"`
}

// EmploymentRecord holds data sourced from payslips.
type EmploymentRecord struct {
	EmployerName  string `json:"empresa"`
	JobTitle      string `json:"cargo"`
	GrossSalary   string `json:"salario_bruto"`
	AdmissionDate string `json:"data_admissao"`
}

// AddressRecord holds data sourced from address proofs.
type AddressRecord struct {
	Street       string `json:"logradouro"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"cidade"`
	State        string `json:"estado"`
	PostalCode   string `json:"cep"`
}

// RelativesRecord holds parent names, sourced only from certificates.
type RelativesRecord struct {
	FatherName string `json:"nome_pai"`
	MotherName string `json:"nome_mae"`
}

// CaseExtraction is the canonical structured output of one validation run.
// Sub-records are always present so downstream consumers never nil-check.
type CaseExtraction struct {
	Personal   PersonalRecord   `json:"dados_pessoais"`
	Employment EmploymentRecord `json:"dados_profissionais"`
	Address    AddressRecord    `json:"endereco"`
	Relatives  RelativesRecord  `json:"certidoes"`
}

// fill sets dst to src only when dst is currently empty. Merging never erases
// an already-populated field.
func fill(dst *string, src string) {
	if *dst == "" && src != "" {
		*dst = src
	}
}

// Merge fills empty fields of p from other, leaving populated fields intact.
func (p *PersonalRecord) Merge(other PersonalRecord) {
	fill(&p.FullName, other.FullName)
	fill(&p.IDNumber, other.IDNumber)
	fill(&p.TaxID, other.TaxID)
	fill(&p.BirthDate, other.BirthDate)
	fill(&p.BirthPlace, other.BirthPlace)
	fill(&p.MaritalStatus, other.MaritalStatus)
	fill(&p.IssuingAuthority, other.IssuingAuthority)
}

// FillTaxID is the one explicit override path: a tax ID found on a companion
// document (CPF card, tax declaration) fills the gap left by the identity
// document. It still never overwrites a present value.
func (p *PersonalRecord) FillTaxID(taxID string) {
	fill(&p.TaxID, taxID)
}

// Merge fills empty fields of e from other.
func (e *EmploymentRecord) Merge(other EmploymentRecord) {
	fill(&e.EmployerName, other.EmployerName)
	fill(&e.JobTitle, other.JobTitle)
	fill(&e.GrossSalary, other.GrossSalary)
	fill(&e.AdmissionDate, other.AdmissionDate)
}

// Merge fills empty fields of a from other.
func (a *AddressRecord) Merge(other AddressRecord) {
	fill(&a.Street, other.Street)
	fill(&a.Complement, other.Complement)
	fill(&a.Neighborhood, other.Neighborhood)
	fill(&a.City, other.City)
	fill(&a.State, other.State)
	fill(&a.PostalCode, other.PostalCode)
}

// Merge fills empty fields of r from other.
func (r *RelativesRecord) Merge(other RelativesRecord) {
	fill(&r.FatherName, other.FatherName)
	fill(&r.MotherName, other.MotherName)
}

func usable(values ...string) bool {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" && !strings.Contains(v, NotExtracted) {
			return true
		}
	}
	return false
}

// HasUsableData reports whether any field across all sub-records carries a
// real extracted value (non-empty and not the fallback sentinel). Derived
// defaults that extractors always emit, such as marital status, do not count.
func (c CaseExtraction) HasUsableData() bool {
	return usable(
		c.Personal.FullName, c.Personal.IDNumber, c.Personal.TaxID,
		c.Personal.BirthDate, c.Personal.BirthPlace, c.Personal.IssuingAuthority,
		c.Employment.EmployerName, c.Employment.JobTitle,
		c.Employment.GrossSalary, c.Employment.AdmissionDate,
		c.Address.Street, c.Address.Complement, c.Address.Neighborhood,
		c.Address.City, c.Address.State, c.Address.PostalCode,
		c.Relatives.FatherName, c.Relatives.MotherName,
	)
}

// FallbackExtraction is the clearly-labeled placeholder substituted when no
// document yields usable data; manual review remains possible.
func FallbackExtraction() CaseExtraction {
	return CaseExtraction{
		Personal: PersonalRecord{
			FullName:      NotExtracted,
			MaritalStatus: "SOLTEIRO",
		},
		Employment: EmploymentRecord{EmployerName: NotExtracted},
		Address:    AddressRecord{Street: NotExtracted},
	}
}
