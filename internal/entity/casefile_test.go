package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Merging never erases a populated field; it only fills empty ones.
func TestPersonalRecordMergeMonotonic(t *testing.T) {
	p := PersonalRecord{FullName: "JOAO DA SILVA", TaxID: "123.456.789-00"}
	p.Merge(PersonalRecord{
		FullName:  "OUTRO NOME",
		TaxID:     "999.999.999-99",
		BirthDate: "15/03/1985",
	})

	assert.Equal(t, "JOAO DA SILVA", p.FullName)
	assert.Equal(t, "123.456.789-00", p.TaxID)
	assert.Equal(t, "15/03/1985", p.BirthDate)
}

func TestFillTaxIDOnlyFillsGap(t *testing.T) {
	p := PersonalRecord{}
	p.FillTaxID("123.456.789-00")
	assert.Equal(t, "123.456.789-00", p.TaxID)

	p.FillTaxID("999.999.999-99")
	assert.Equal(t, "123.456.789-00", p.TaxID)
}

func TestAddressRecordMerge(t *testing.T) {
	a := AddressRecord{Street: "RUA DAS FLORES, 123"}
	a.Merge(AddressRecord{Street: "OUTRA RUA", City: "SAO PAULO", PostalCode: "01310-100"})

	assert.Equal(t, "RUA DAS FLORES, 123", a.Street)
	assert.Equal(t, "SAO PAULO", a.City)
	assert.Equal(t, "01310-100", a.PostalCode)
}

func TestHasUsableData(t *testing.T) {
	var empty CaseExtraction
	assert.False(t, empty.HasUsableData())

	// The marital-status default alone does not count as usable data.
	onlyDefault := CaseExtraction{Personal: PersonalRecord{MaritalStatus: "SOLTEIRO"}}
	assert.False(t, onlyDefault.HasUsableData())

	sentinelOnly := CaseExtraction{Personal: PersonalRecord{FullName: NotExtracted}}
	assert.False(t, sentinelOnly.HasUsableData())

	oneField := CaseExtraction{Address: AddressRecord{PostalCode: "01310-100"}}
	assert.True(t, oneField.HasUsableData())
}

func TestFallbackExtraction(t *testing.T) {
	f := FallbackExtraction()

	assert.Equal(t, NotExtracted, f.Personal.FullName)
	assert.Equal(t, NotExtracted, f.Employment.EmployerName)
	assert.Equal(t, NotExtracted, f.Address.Street)
	assert.Equal(t, "SOLTEIRO", f.Personal.MaritalStatus)
	assert.False(t, f.HasUsableData())
}

func TestVerdictAddCheckReplacesByName(t *testing.T) {
	var v ValidationVerdict
	v.AddCheck(CheckResult{Name: "RG", Message: "first"})
	v.AddCheck(CheckResult{Name: "Comprovante de Renda", Message: "second"})
	v.AddCheck(CheckResult{Name: "RG", Message: "updated"})

	assert.Len(t, v.Checks, 2)
	assert.Equal(t, "updated", v.Checks[0].Message)
	assert.Equal(t, "RG", v.Checks[0].Name)
}

func TestVerdictAddMissingDeduplicates(t *testing.T) {
	var v ValidationVerdict
	v.AddMissing("Certidão de Casamento", "Documentos do Cônjuge")
	v.AddMissing("Certidão de Casamento")

	assert.Equal(t, []string{"Certidão de Casamento", "Documentos do Cônjuge"}, v.MissingDocuments)
}
