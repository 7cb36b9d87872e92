// Package docgen produces the case paperwork: the cover sheet and the
// registration form as XLSX workbooks, and the consolidated PDF dossier.
package docgen

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/CorretorBrazza/docu-flow-automato/constants"
	"github.com/CorretorBrazza/docu-flow-automato/internal/entity"
)

// Generator renders case paperwork. Stateless; one instance serves all cases.
type Generator struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewGenerator(logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{logger: logger, now: time.Now}
}

// CoverSheet builds the capa workbook: date, development, client and spouse,
// media origin, notes, and the supplied-document checklist.
func (g *Generator) CoverSheet(c entity.CaseExtraction, details entity.CaseDetails, suppliedKinds []constants.DocumentKind) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Capa"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	row := 1
	write := func(col int, r int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, r)
		_ = f.SetCellValue(sheet, cell, v)
	}
	pair := func(label, value string) {
		write(1, row, label)
		write(2, row, value)
		row++
	}

	write(1, row, "DOCUMENTAÇÃO PARA ANÁLISE DE CRÉDITO")
	row += 2
	pair("Data", g.now().Format("02/01/2006"))
	pair("Empreendimento", orDash(details.Development))
	row++

	write(1, row, "CLIENTE")
	row++
	pair("Nome", orDash(c.Personal.FullName))
	pair("CPF", orDash(c.Personal.TaxID))

	if details.Spouse != nil {
		row++
		write(1, row, "CÔNJUGE")
		row++
		pair("Nome", orDash(details.Spouse.FullName))
		pair("CPF", orDash(details.Spouse.TaxID))
	}

	row++
	pair("Mídia de Origem", orDash(details.MediaOrigin))
	if details.Phone != "" {
		pair("Telefone", details.Phone)
	}
	if details.Email != "" {
		pair("E-mail", details.Email)
	}
	if details.Notes != "" {
		row++
		write(1, row, "Observações")
		write(2, row, details.Notes)
		row++
	}

	row++
	write(1, row, "DOCUMENTOS ENTREGUES")
	row++
	for _, kind := range suppliedKinds {
		if kind == constants.KindOther {
			continue
		}
		write(1, row, kind.Label())
		write(2, row, "OK")
		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "B", "B", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write cover sheet: %w", err)
	}
	g.logger.Info("docgen.coversheet.ok", "bytes", buf.Len(), "documents", len(suppliedKinds))
	return buf.Bytes(), nil
}

func orDash(v string) string {
	if v == "" {
		return "—"
	}
	return v
}
