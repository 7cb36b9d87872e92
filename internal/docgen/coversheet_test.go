package docgen

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/CorretorBrazza/docu-flow-automato/constants"
	"github.com/CorretorBrazza/docu-flow-automato/internal/entity"
)

func fixedGenerator() *Generator {
	g := NewGenerator(nil)
	g.now = func() time.Time { return time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC) }
	return g
}

func sampleExtraction() entity.CaseExtraction {
	var c entity.CaseExtraction
	c.Personal.FullName = "JOAO DA SILVA"
	c.Personal.TaxID = "123.456.789-00"
	c.Personal.MaritalStatus = constants.MaritalMarried
	c.Employment.EmployerName = "ACME LTDA"
	c.Employment.GrossSalary = "R$ 3.000,00"
	c.Address.Street = "RUA DAS FLORES, 123"
	c.Address.City = "SAO PAULO"
	c.Address.PostalCode = "01310-100"
	return c
}

// sheetValues flattens a rendered workbook into label -> value over the
// two-column layout. Labels repeated in a later section (the spouse block
// reuses "Nome Completo" and "CPF") keep their first value.
func sheetValues(t *testing.T, data []byte, sheet string) map[string]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)

	out := map[string]string{}
	for _, row := range rows {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		if _, seen := out[row[0]]; seen {
			continue
		}
		if len(row) >= 2 {
			out[row[0]] = row[1]
		} else {
			out[row[0]] = ""
		}
	}
	return out
}

func TestCoverSheet(t *testing.T) {
	details := entity.CaseDetails{
		Development: "Residencial Aurora",
		MediaOrigin: "Instagram",
		Phone:       "11 99999-0000",
		Spouse:      &entity.SpouseDetails{FullName: "MARIA DA SILVA", TaxID: "987.654.321-00"},
	}
	supplied := []constants.DocumentKind{constants.KindIdentity, constants.KindPayslip}

	data, err := fixedGenerator().CoverSheet(sampleExtraction(), details, supplied)
	require.NoError(t, err)

	values := sheetValues(t, data, "Capa")
	assert.Equal(t, "28/08/2026", values["Data"])
	assert.Equal(t, "Residencial Aurora", values["Empreendimento"])
	assert.Equal(t, "Instagram", values["Mídia de Origem"])
	assert.Equal(t, "11 99999-0000", values["Telefone"])
	assert.Contains(t, values, "CÔNJUGE")
	assert.Equal(t, "OK", values["RG"])
	assert.Equal(t, "OK", values["Comprovante de Renda"])
	assert.NotContains(t, values, "Comprovante de Residência")
}

func TestCoverSheetWithoutSpouse(t *testing.T) {
	data, err := fixedGenerator().CoverSheet(sampleExtraction(), entity.CaseDetails{}, nil)
	require.NoError(t, err)

	values := sheetValues(t, data, "Capa")
	assert.NotContains(t, values, "CÔNJUGE")
	assert.Equal(t, "—", values["Empreendimento"])
}

func TestRegistrationForm(t *testing.T) {
	details := entity.CaseDetails{
		Development: "Residencial Aurora",
		Spouse:      &entity.SpouseDetails{FullName: "MARIA DA SILVA"},
	}

	data, err := fixedGenerator().RegistrationForm(sampleExtraction(), details)
	require.NoError(t, err)

	values := sheetValues(t, data, "Ficha Cadastral")
	assert.Equal(t, "JOAO DA SILVA", values["Nome Completo"])
	assert.Equal(t, "ACME LTDA", values["Empresa"])
	assert.Equal(t, "R$ 3.000,00", values["Salário Bruto"])
	assert.Equal(t, "01310-100", values["CEP"])
	assert.Equal(t, constants.MaritalMarried, values["Estado Civil"])
	assert.Contains(t, values, "2º COMPRADOR")
}

func TestRegistrationFormOmitsSecondBuyerWithoutSpouse(t *testing.T) {
	data, err := fixedGenerator().RegistrationForm(sampleExtraction(), entity.CaseDetails{})
	require.NoError(t, err)

	values := sheetValues(t, data, "Ficha Cadastral")
	assert.NotContains(t, values, "2º COMPRADOR")
}
