package spreadsheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxSheet adapts one worksheet of an excelize workbook.
type xlsxSheet struct {
	file *excelize.File
	name string
}

func openXLSX(path, sheetName string) (Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}

	idx, err := f.GetSheetIndex(sheetName)
	if err != nil || idx < 0 {
		f.Close()
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}

	return &xlsxSheet{file: f, name: sheetName}, nil
}

func (s *xlsxSheet) Name() string { return s.name }

func (s *xlsxSheet) Cell(row, col int) string {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	value, err := s.file.GetCellValue(s.name, axis)
	if err != nil {
		return ""
	}
	return value
}

func (s *xlsxSheet) SetCell(row, col int, value string) {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return
	}
	_ = s.file.SetCellValue(s.name, axis, value)
}

func (s *xlsxSheet) FillColor(row, col int) string {
	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	styleID, err := s.file.GetCellStyle(s.name, axis)
	if err != nil {
		return ""
	}
	style, err := s.file.GetStyle(styleID)
	if err != nil || style == nil {
		return ""
	}
	if len(style.Fill.Color) == 0 {
		return ""
	}
	return NormalizeARGB(style.Fill.Color[0])
}

func (s *xlsxSheet) ColumnByHeader(name string) int { return headerColumn(s, name) }

func (s *xlsxSheet) TagColumns() []int { return tagColumns(s) }

func (s *xlsxSheet) LastRow() int { return lastRow(s) }

func (s *xlsxSheet) SaveAs(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := s.file.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// NormalizeARGB normalizes a fill color to 8-digit uppercase ARGB.
// Accepts "#ff0000", "FF0000" and "FFFF0000" forms; returns "" for
// anything it cannot normalize.
func NormalizeARGB(color string) string {
	c := strings.ToUpper(strings.TrimPrefix(color, "#"))
	switch len(c) {
	case 6:
		return "FF" + c
	case 8:
		return c
	default:
		return ""
	}
}
