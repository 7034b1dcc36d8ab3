package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"RodaClientPortal/internal/config"
)

// excelize rejects sheet names longer than 31 characters.
const maxSheetNameLen = 31

func sheetName(report *TabularReport) string {
	name := report.Title
	if name == "" {
		name = config.DefaultSheetName
	}
	if len(name) > maxSheetNameLen {
		name = name[:maxSheetNameLen]
	}
	return name
}

// renderExcel emits a single-sheet workbook: header row verbatim, one row
// per report row, fixed column width per column (not auto-fit).
func renderExcel(report *TabularReport) ([]byte, error) {
	if err := report.Validate(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := sheetName(report)
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	if sheet != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}
	f.SetActiveSheet(index)

	for i, h := range report.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, h)
	}

	for rIdx, row := range report.Rows {
		for cIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(cIdx+1, rIdx+2)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheet, cell, value)
		}
	}

	if len(report.Headers) > 0 {
		lastCol, err := excelize.ColumnNumberToName(len(report.Headers))
		if err != nil {
			return nil, err
		}
		f.SetColWidth(sheet, "A", lastCol, 15)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
