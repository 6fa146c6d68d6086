package export

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// SheetName is the label of the single worksheet
const SheetName = "Invoice Analysis"

// Column width bounds, in characters
const (
	minColumnWidth = 10
	maxColumnWidth = 60
)

// WorkbookEncoder produces a spreadsheet workbook from rows
type WorkbookEncoder interface {
	Encode(rows Rows) ([]byte, error)
}

// XLSXEncoder writes a single-sheet xlsx workbook
type XLSXEncoder struct {
	Sheet string
}

// NewXLSXEncoder creates an encoder using SheetName
func NewXLSXEncoder() *XLSXEncoder {
	return &XLSXEncoder{Sheet: SheetName}
}

// Encode writes rows and sizes each column to its longest cell
func (e *XLSXEncoder) Encode(rows Rows) ([]byte, error) {
	sheet := e.Sheet
	if sheet == "" {
		sheet = SheetName
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	for j, width := range ColumnWidths(rows) {
		col, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, col, col, float64(width)); err != nil {
			return nil, fmt.Errorf("size column %s: %w", col, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ColumnWidths returns the longest cell length per column clamped to [10, 60]
func ColumnWidths(rows Rows) []int {
	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	widths := make([]int, cols)
	for j := range widths {
		longest := 0
		for _, row := range rows {
			if j < len(row) {
				longest = max(longest, utf8.RuneCountInString(row[j]))
			}
		}
		widths[j] = min(maxColumnWidth, max(minColumnWidth, longest))
	}
	return widths
}
