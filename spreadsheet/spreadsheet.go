// Package spreadsheet normalizes the two supported workbook container
// formats (XLSX and ODS) into row/column access over a single named sheet.
//
// All coordinates are 1-based. Empty cells read as "". Mutations made via
// SetCell stay in memory; SaveAs serializes the current state of the sheet
// to a new XLSX file and never touches the source file.
package spreadsheet

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Placeholder marks a cell whose value has not been filled yet.
const Placeholder = "."

// Sentinel errors for adapter failures.
var (
	// ErrUnsupportedFormat indicates the file extension maps to no adapter.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	// ErrSheetNotFound indicates the workbook has no sheet with the given name.
	ErrSheetNotFound = errors.New("sheet not found")
)

// OpenError wraps a failure to open a workbook or select a sheet.
type OpenError struct {
	Path  string
	Sheet string
	Err   error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open %s (sheet %q): %v", e.Path, e.Sheet, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// Sheet exposes one worksheet of a workbook as addressable cells.
type Sheet interface {
	// Name returns the sheet name.
	Name() string
	// Cell returns the cell value at the 1-based row/column, "" when empty.
	Cell(row, col int) string
	// SetCell updates the in-memory cell value.
	SetCell(row, col int, value string)
	// FillColor returns the cell's background fill as 8-digit ARGB
	// (e.g. "FFFF0000"), or "" when the cell has no solid fill.
	FillColor(row, col int) string
	// ColumnByHeader returns the 1-based column whose first-row cell equals
	// name, or 0 when no header matches.
	ColumnByHeader(name string) int
	// TagColumns returns the 1-based columns whose header contains "Tag".
	TagColumns() []int
	// LastRow returns the last populated row of column 1.
	LastRow() int
	// SaveAs serializes the sheet, including in-memory mutations, to a new
	// XLSX file at path.
	SaveAs(path string) error
}

// Open opens the workbook at path and selects the named sheet. The adapter
// is chosen by file extension: .xlsx and .ods are supported.
func Open(path, sheetName string) (Sheet, error) {
	var (
		sheet Sheet
		err   error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		sheet, err = openXLSX(path, sheetName)
	case ".ods":
		sheet, err = openODS(path, sheetName)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	if err != nil {
		return nil, &OpenError{Path: path, Sheet: sheetName, Err: err}
	}
	return sheet, nil
}

// headerColumn scans the first row of a sheet for an exact header match.
// Shared by both adapters.
func headerColumn(s Sheet, name string) int {
	for col := 1; ; col++ {
		value := s.Cell(1, col)
		if value == "" {
			return 0
		}
		if value == name {
			return col
		}
	}
}

// tagColumns collects first-row columns whose value contains "Tag".
func tagColumns(s Sheet) []int {
	var cols []int
	for col := 1; ; col++ {
		value := s.Cell(1, col)
		if value == "" {
			return cols
		}
		if strings.Contains(value, "Tag") {
			cols = append(cols, col)
		}
	}
}

// lastRow walks column 1 down to the last populated row.
func lastRow(s Sheet) int {
	row := 1
	for s.Cell(row, 1) != "" {
		row++
	}
	return row - 1
}
