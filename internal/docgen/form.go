package docgen

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/CorretorBrazza/docu-flow-automato/internal/entity"
)

// RegistrationForm builds the ficha cadastral workbook: every extracted field
// grouped by section, the supplementary details, and the second-buyer block
// when spouse data exists.
func (g *Generator) RegistrationForm(c entity.CaseExtraction, details entity.CaseDetails) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Ficha Cadastral"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	row := 1
	write := func(col, r int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, r)
		_ = f.SetCellValue(sheet, cell, v)
	}
	section := func(title string) {
		row++
		write(1, row, title)
		row++
	}
	pair := func(label, value string) {
		write(1, row, label)
		write(2, row, value)
		row++
	}

	write(1, row, "FICHA CADASTRAL")
	row++

	section("DADOS PESSOAIS")
	pair("Nome Completo", c.Personal.FullName)
	pair("RG", c.Personal.IDNumber)
	pair("CPF", c.Personal.TaxID)
	pair("Data de Nascimento", c.Personal.BirthDate)
	pair("Naturalidade", c.Personal.BirthPlace)
	pair("Estado Civil", c.Personal.MaritalStatus)
	pair("Órgão Emissor", c.Personal.IssuingAuthority)

	section("DADOS PROFISSIONAIS")
	pair("Empresa", c.Employment.EmployerName)
	pair("Cargo", c.Employment.JobTitle)
	pair("Salário Bruto", c.Employment.GrossSalary)
	pair("Data de Admissão", c.Employment.AdmissionDate)

	section("ENDEREÇO")
	pair("Logradouro", c.Address.Street)
	pair("Complemento", c.Address.Complement)
	pair("Bairro", c.Address.Neighborhood)
	pair("Cidade", c.Address.City)
	pair("Estado", c.Address.State)
	pair("CEP", c.Address.PostalCode)

	section("FILIAÇÃO")
	pair("Nome do Pai", c.Relatives.FatherName)
	pair("Nome da Mãe", c.Relatives.MotherName)

	section("DADOS DO CASO")
	pair("Empreendimento", details.Development)
	pair("Mídia de Origem", details.MediaOrigin)
	pair("Telefone", details.Phone)
	pair("E-mail", details.Email)
	pair("Observações", details.Notes)

	if details.Spouse != nil {
		section("2º COMPRADOR")
		pair("Nome Completo", details.Spouse.FullName)
		pair("CPF", details.Spouse.TaxID)
		pair("RG", details.Spouse.IDNumber)
	}

	_ = f.SetColWidth(sheet, "A", "A", 24)
	_ = f.SetColWidth(sheet, "B", "B", 52)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write registration form: %w", err)
	}
	g.logger.Info("docgen.form.ok", "bytes", buf.Len())
	return buf.Bytes(), nil
}
