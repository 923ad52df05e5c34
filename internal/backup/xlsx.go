package backup

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"kharcha/internal/core"
	"kharcha/internal/stats"
)

// ReportFilename is the download name for XLSX reports.
const ReportFilename = "expenses.xlsx"

// ExportXLSX builds a two-sheet workbook: the expense list and the
// category breakdown. This is a read-only report; restores go through
// the JSON backup.
func ExportXLSX(records []core.Expense, shares []stats.CategoryShare) ([]byte, error) {
	xlsx := excelize.NewFile()

	sheet := xlsx.GetSheetName(xlsx.GetActiveSheetIndex())
	_ = xlsx.SetSheetName(sheet, "Expenses")
	sheet = "Expenses"

	_ = xlsx.SetColWidth(sheet, "A", "A", 28)
	_ = xlsx.SetColWidth(sheet, "B", "B", 30)
	_ = xlsx.SetColWidth(sheet, "C", "E", 14)

	bold, _ := xlsx.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	headers := []string{"ID", "Title", "Category", "Date", "Amount"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = xlsx.SetCellValue(sheet, cell, h)
		_ = xlsx.SetCellStyle(sheet, cell, cell, bold)
	}

	row := 2
	var total int64
	for _, e := range records {
		_ = xlsx.SetCellValue(sheet, cellAt('A', row), e.ID)
		_ = xlsx.SetCellValue(sheet, cellAt('B', row), e.Title)
		_ = xlsx.SetCellValue(sheet, cellAt('C', row), e.Category)
		_ = xlsx.SetCellValue(sheet, cellAt('D', row), e.Date.String())
		_ = xlsx.SetCellValue(sheet, cellAt('E', row), e.Amount.Units())
		total += e.Amount.Cents
		row++
	}
	_ = xlsx.SetCellValue(sheet, cellAt('B', row), "Total")
	_ = xlsx.SetCellValue(sheet, cellAt('E', row), core.Money{Cents: total}.Units())
	_ = xlsx.SetCellStyle(sheet, cellAt('B', row), cellAt('E', row), bold)

	if _, err := xlsx.NewSheet("By category"); err != nil {
		return nil, fmt.Errorf("create breakdown sheet: %w", err)
	}

	_ = xlsx.SetColWidth("By category", "A", "A", 24)
	_ = xlsx.SetColWidth("By category", "B", "C", 14)
	_ = xlsx.SetCellValue("By category", "A1", "Category")
	_ = xlsx.SetCellValue("By category", "B1", "Amount")
	_ = xlsx.SetCellValue("By category", "C1", "Share %")
	_ = xlsx.SetCellStyle("By category", "A1", "C1", bold)

	row = 2
	for _, s := range shares {
		_ = xlsx.SetCellValue("By category", cellAt('A', row), s.Name)
		_ = xlsx.SetCellValue("By category", cellAt('B', row), s.Amount.Units())
		_ = xlsx.SetCellValue("By category", cellAt('C', row), s.Percent)
		row++
	}

	buf, err := xlsx.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cellAt(col rune, row int) string {
	return fmt.Sprintf("%c%d", col, row)
}
