package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CorretorBrazza/docu-flow-automato/constants"
	"github.com/CorretorBrazza/docu-flow-automato/internal/entity"
	"github.com/CorretorBrazza/docu-flow-automato/internal/extract"
)

const identityText = `REPUBLICA FEDERATIVA DO BRASIL
REGISTRO GERAL: 12.345.678-9
NOME: JOAO DA SILVA
CPF: 123.456.789-00
DATA DE NASCIMENTO: 15/03/1985
NATURALIDADE: SAO PAULO - SP
SSP-SP`

const payslipText = `EMPRESA: ACME LTDA
CARGO: ANALISTA DE SISTEMAS
DATA DE ADMISSAO: 01/02/2020
MES/ANO: 05/2026
SALARIO BRUTO R$ 3.000,00
DESCONTO IRRF 123,45`

const addressText = `ENEL DISTRIBUICAO SAO PAULO
RUA DAS FLORES, 123
BAIRRO: JARDIM EUROPA
CIDADE: SAO PAULO
CEP: 01310-100`

func TestMatchFieldsIdentity(t *testing.T) {
	fs := MatchFields(constants.KindIdentity, identityText)

	assert.Equal(t, "JOAO DA SILVA", fs.Get(extract.FieldFullName))
	assert.Equal(t, "12.345.678-9", fs.Get(extract.FieldIDNumber))
	assert.Equal(t, "123.456.789-00", fs.Get(extract.FieldTaxID))
	assert.Equal(t, "15/03/1985", fs.Get(extract.FieldBirthDate))
	assert.Equal(t, "SSP-SP", fs.Get(extract.FieldIssuer))
}

func TestMatchFieldsPayslip(t *testing.T) {
	fs := MatchFields(constants.KindPayslip, payslipText)

	assert.Equal(t, "ACME LTDA", fs.Get(extract.FieldEmployer))
	assert.Equal(t, "ANALISTA DE SISTEMAS", fs.Get(extract.FieldJobTitle))
	assert.Equal(t, "3.000,00", fs.Get(extract.FieldGrossSalary))
	assert.Equal(t, "01/02/2020", fs.Get(extract.FieldAdmissionDate))
}

func TestMatchFieldsAddress(t *testing.T) {
	fs := MatchFields(constants.KindAddressProof, addressText)

	assert.Contains(t, fs.Get(extract.FieldStreet), "RUA DAS FLORES")
	assert.Equal(t, "JARDIM EUROPA", fs.Get(extract.FieldNeighborhood))
	assert.Equal(t, "SAO PAULO", fs.Get(extract.FieldCity))
	assert.Equal(t, "01310-100", fs.Get(extract.FieldPostalCode))
}

func TestMatchFieldsAbsentFieldsStayAbsent(t *testing.T) {
	fs := MatchFields(constants.KindIdentity, "nothing recognizable here")
	assert.Empty(t, fs.Get(extract.FieldFullName))
	assert.Empty(t, fs.Get(extract.FieldTaxID))
}

func TestBuildPersonal(t *testing.T) {
	res := extract.FieldsResult{
		Fields: extract.FieldSet{
			extract.FieldFullName:  "joao da silva",
			extract.FieldIDNumber:  "123456789",
			extract.FieldTaxID:     "12345678900",
			extract.FieldBirthDate: "15.03.1985",
		},
		RawText: identityText,
	}
	p := BuildPersonal(res)

	assert.Equal(t, "JOAO DA SILVA", p.FullName)
	assert.Equal(t, "12.345.678-9", p.IDNumber)
	assert.Equal(t, "123.456.789-00", p.TaxID)
	assert.Equal(t, "15/03/1985", p.BirthDate)
	assert.Equal(t, constants.MaritalSingle, p.MaritalStatus)
}

func TestDeriveMaritalStatus(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		raw      string
		expected string
	}{
		{"explicit_married", "CASADO", "", constants.MaritalMarried},
		{"explicit_married_feminine", "casada", "", constants.MaritalMarried},
		{"raw_divorced", "", "ESTADO CIVIL DIVORCIADA", constants.MaritalDivorced},
		{"raw_widowed", "", "VIÚVO DESDE 2019", constants.MaritalWidowed},
		{"raw_marriage_certificate", "", "CERTIDÃO DE CASAMENTO", constants.MaritalMarried},
		{"default_single", "", "texto sem pistas", constants.MaritalSingle},
		{"divorce_beats_marriage_keyword", "", "CERTIDAO DE CASAMENTO AVERBADO O DIVORCIO", constants.MaritalDivorced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveMaritalStatus(tt.explicit, tt.raw))
		})
	}
}

func TestPayslipRules(t *testing.T) {
	assert.True(t, HasIncomeTaxWithholding(payslipText))
	assert.False(t, HasIncomeTaxWithholding(addressText))

	assert.True(t, IsAdvancePayment("RECIBO DE ADIANTAMENTO QUINZENAL"))
	assert.False(t, IsAdvancePayment(payslipText))

	assert.Equal(t, "05/2026", ReferenceMonth(payslipText))
	assert.Equal(t, "MAIO/2026", ReferenceMonth("FOLHA DE PAGAMENTO MAIO DE 2026"))
	assert.Empty(t, ReferenceMonth("sem referencia"))
}

func TestMergeIntoRoutesByKind(t *testing.T) {
	c := &entity.CaseExtraction{}

	MergeInto(c, constants.KindPayslip, extract.FieldsResult{
		Fields: extract.FieldSet{extract.FieldEmployer: "ACME LTDA", extract.FieldGrossSalary: "3.000,00"},
	})
	assert.Equal(t, "ACME LTDA", c.Employment.EmployerName)
	assert.Equal(t, "R$ 3.000,00", c.Employment.GrossSalary)

	MergeInto(c, constants.KindTaxDeclaration, extract.FieldsResult{
		Fields: extract.FieldSet{extract.FieldTaxID: "98765432100"},
	})
	assert.Equal(t, "987.654.321-00", c.Personal.TaxID)
}

func TestMergeIntoCertificateSettlesMaritalStatus(t *testing.T) {
	c := &entity.CaseExtraction{}
	c.Personal.MaritalStatus = constants.MaritalSingle

	MergeInto(c, constants.KindCertificate, extract.FieldsResult{
		Fields:  extract.FieldSet{extract.FieldFatherName: "JOSE DA SILVA"},
		RawText: "CERTIDAO DE CASAMENTO",
	})
	assert.Equal(t, constants.MaritalMarried, c.Personal.MaritalStatus)
	assert.Equal(t, "JOSE DA SILVA", c.Relatives.FatherName)
}
