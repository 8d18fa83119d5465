package export

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Grades"

// XLSXExporter renders tables into a single-sheet workbook. Numeric cells are written as numbers.
type XLSXExporter struct{}

func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *XLSXExporter) Extension() string { return "xlsx" }

func (e *XLSXExporter) Render(table Table) ([]byte, error) {
	if err := table.validate(); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	headerRow := make([]interface{}, len(table.Headers))
	for i, h := range table.Headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(table.Headers), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", lastHeader, bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, row := range table.Rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = cellValue(v)
		}
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(xlsxSheet, start, &cells); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func cellValue(raw string) interface{} {
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	return raw
}
