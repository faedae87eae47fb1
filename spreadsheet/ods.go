package spreadsheet

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// odsSheet holds one fully-parsed ODS table in memory. ODS is read-only
// source material here: mutations live in the in-memory grid and SaveAs
// re-encodes the sheet as XLSX, the format all artifacts use.
type odsSheet struct {
	name  string
	cells [][]string // values, row-major, 0-based internally
	fills [][]string // normalized ARGB fill per cell, "" when none
}

// emptyRunLimit stops expansion of repeated empty cells/rows. ODS writers
// pad tables with number-columns-repeated runs covering the whole 16k
// column range.
const emptyRunLimit = 256

type odsContent struct {
	AutomaticStyles struct {
		Styles []struct {
			Name      string `xml:"name,attr"`
			CellProps struct {
				BackgroundColor string `xml:"background-color,attr"`
			} `xml:"table-cell-properties"`
		} `xml:"style"`
	} `xml:"automatic-styles"`
	Body struct {
		Spreadsheet struct {
			Tables []odsTable `xml:"table"`
		} `xml:"spreadsheet"`
	} `xml:"body"`
}

type odsTable struct {
	Name string   `xml:"name,attr"`
	Rows []odsRow `xml:"table-row"`
}

type odsRow struct {
	Repeated int       `xml:"number-rows-repeated,attr"`
	Cells    []odsCell `xml:"table-cell"`
}

type odsCell struct {
	Repeated  int      `xml:"number-columns-repeated,attr"`
	StyleName string   `xml:"style-name,attr"`
	ValueType string   `xml:"value-type,attr"`
	Value     string   `xml:"value,attr"`
	DateValue string   `xml:"date-value,attr"`
	Text      []string `xml:"p"`
}

// value resolves the cell content the way the formats are used in tracking
// sheets: typed values win over display text.
func (c *odsCell) value() string {
	switch {
	case c.ValueType == "date" && c.DateValue != "":
		return c.DateValue
	case c.Value != "":
		return c.Value
	default:
		return strings.Join(c.Text, "\n")
	}
}

func openODS(path, sheetName string) (Sheet, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var content *odsContent
	for _, f := range zr.File {
		if f.Name != "content.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open content.xml: %w", err)
		}
		content = &odsContent{}
		err = xml.NewDecoder(rc).Decode(content)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("parse content.xml: %w", err)
		}
		break
	}
	if content == nil {
		return nil, fmt.Errorf("malformed container: no content.xml")
	}

	// Automatic style name -> normalized fill color.
	styleFills := make(map[string]string)
	for _, st := range content.AutomaticStyles.Styles {
		if bg := st.CellProps.BackgroundColor; bg != "" && bg != "transparent" {
			styleFills[st.Name] = NormalizeARGB(bg)
		}
	}

	for _, table := range content.Body.Spreadsheet.Tables {
		if table.Name != sheetName {
			continue
		}
		sheet := &odsSheet{name: sheetName}
		sheet.expand(table, styleFills)
		return sheet, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
}

// expand materializes the repeated-run encoding into a plain grid.
func (s *odsSheet) expand(table odsTable, styleFills map[string]string) {
	for _, row := range table.Rows {
		values, fills := expandRow(row, styleFills)

		repeat := row.Repeated
		if repeat < 1 {
			repeat = 1
		}
		if len(values) == 0 && repeat > emptyRunLimit {
			// Trailing padding rows.
			continue
		}
		for i := 0; i < repeat; i++ {
			s.cells = append(s.cells, append([]string(nil), values...))
			s.fills = append(s.fills, append([]string(nil), fills...))
		}
	}

	// Drop trailing fully-empty rows.
	for len(s.cells) > 0 {
		last := s.cells[len(s.cells)-1]
		empty := true
		for _, v := range last {
			if v != "" {
				empty = false
				break
			}
		}
		if !empty {
			break
		}
		s.cells = s.cells[:len(s.cells)-1]
		s.fills = s.fills[:len(s.fills)-1]
	}
}

func expandRow(row odsRow, styleFills map[string]string) (values, fills []string) {
	for _, cell := range row.Cells {
		v := cell.value()
		fill := styleFills[cell.StyleName]

		repeat := cell.Repeated
		if repeat < 1 {
			repeat = 1
		}
		if v == "" && fill == "" && repeat > emptyRunLimit {
			// Trailing padding cells.
			continue
		}
		for i := 0; i < repeat; i++ {
			values = append(values, v)
			fills = append(fills, fill)
		}
	}

	// Trim trailing empty cells so LastRow/header scans terminate.
	for len(values) > 0 && values[len(values)-1] == "" && fills[len(fills)-1] == "" {
		values = values[:len(values)-1]
		fills = fills[:len(fills)-1]
	}
	return values, fills
}

func (s *odsSheet) Name() string { return s.name }

func (s *odsSheet) Cell(row, col int) string {
	r, c := row-1, col-1
	if r < 0 || c < 0 || r >= len(s.cells) || c >= len(s.cells[r]) {
		return ""
	}
	return s.cells[r][c]
}

func (s *odsSheet) SetCell(row, col int, value string) {
	r, c := row-1, col-1
	if r < 0 || c < 0 {
		return
	}
	for r >= len(s.cells) {
		s.cells = append(s.cells, nil)
		s.fills = append(s.fills, nil)
	}
	for c >= len(s.cells[r]) {
		s.cells[r] = append(s.cells[r], "")
		s.fills[r] = append(s.fills[r], "")
	}
	s.cells[r][c] = value
}

func (s *odsSheet) FillColor(row, col int) string {
	r, c := row-1, col-1
	if r < 0 || c < 0 || r >= len(s.fills) || c >= len(s.fills[r]) {
		return ""
	}
	return s.fills[r][c]
}

func (s *odsSheet) ColumnByHeader(name string) int { return headerColumn(s, name) }

func (s *odsSheet) TagColumns() []int { return tagColumns(s) }

func (s *odsSheet) LastRow() int { return lastRow(s) }

// SaveAs re-encodes the in-memory grid as an XLSX workbook, carrying cell
// fills over so color-categorized rows survive the conversion.
func (s *odsSheet) SaveAs(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	if s.name != defaultSheet {
		if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("create sheet: %w", err)
		}
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("drop default sheet: %w", err)
		}
	}

	// One style per distinct fill color.
	styleIDs := make(map[string]int)
	for r, row := range s.cells {
		for c, value := range row {
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if value != "" {
				if err := f.SetCellValue(s.name, axis, value); err != nil {
					return fmt.Errorf("set cell %s: %w", axis, err)
				}
			}

			fill := ""
			if r < len(s.fills) && c < len(s.fills[r]) {
				fill = s.fills[r][c]
			}
			if fill == "" {
				continue
			}
			styleID, ok := styleIDs[fill]
			if !ok {
				styleID, err = f.NewStyle(&excelize.Style{
					Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}},
				})
				if err != nil {
					return fmt.Errorf("fill style: %w", err)
				}
				styleIDs[fill] = styleID
			}
			if err := f.SetCellStyle(s.name, axis, axis, styleID); err != nil {
				return fmt.Errorf("set cell style %s: %w", axis, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
