package spreadsheet

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeFixture builds a small tracking workbook on disk.
func writeFixture(t *testing.T, sheetName string, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheetName != "Sheet1" {
		if _, err := f.NewSheet(sheetName); err != nil {
			t.Fatalf("NewSheet: %v", err)
		}
		if err := f.DeleteSheet("Sheet1"); err != nil {
			t.Fatalf("DeleteSheet: %v", err)
		}
	}

	for r, row := range rows {
		for c, value := range row {
			if value == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("CoordinatesToCellName: %v", err)
			}
			if err := f.SetCellValue(sheetName, axis, value); err != nil {
				t.Fatalf("SetCellValue: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	return path
}

func TestOpenXLSX(t *testing.T) {
	path := writeFixture(t, "Vault", [][]string{
		{"Name", "Link", "Duration", "Tag 1", "Tag 2"},
		{"first", "https://youtu.be/abc123def45", "4.2", "music", "live"},
		{"second", "https://youtu.be/xyz987uvw65", ".", "talk", "."},
	})

	sheet, err := Open(path, "Vault")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if sheet.Name() != "Vault" {
		t.Errorf("Name() = %q, want Vault", sheet.Name())
	}
	if got := sheet.Cell(1, 1); got != "Name" {
		t.Errorf("Cell(1,1) = %q, want Name", got)
	}
	if got := sheet.Cell(2, 2); got != "https://youtu.be/abc123def45" {
		t.Errorf("Cell(2,2) = %q", got)
	}
	if got := sheet.Cell(3, 3); got != Placeholder {
		t.Errorf("Cell(3,3) = %q, want placeholder", got)
	}
	if got := sheet.Cell(10, 10); got != "" {
		t.Errorf("empty cell = %q, want \"\"", got)
	}
}

func TestOpenErrors(t *testing.T) {
	path := writeFixture(t, "Vault", [][]string{{"Name"}})

	t.Run("missing file", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "missing.xlsx"), "Vault")
		if err == nil {
			t.Fatal("Open should fail")
		}
		var openErr *OpenError
		if !errors.As(err, &openErr) {
			t.Errorf("error = %T, want *OpenError", err)
		}
	})

	t.Run("missing sheet", func(t *testing.T) {
		_, err := Open(path, "Nope")
		if !errors.Is(err, ErrSheetNotFound) {
			t.Errorf("error = %v, want ErrSheetNotFound", err)
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := Open("records.csv", "Vault")
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("error = %v, want ErrUnsupportedFormat", err)
		}
	})
}

func TestColumnByHeader(t *testing.T) {
	path := writeFixture(t, "Vault", [][]string{
		{"Name", "Link", "Duration", "Published", "Author", "Exist"},
	})
	sheet, err := Open(path, "Vault")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if got := sheet.ColumnByHeader("Duration"); got != 3 {
		t.Errorf("ColumnByHeader(Duration) = %d, want 3", got)
	}
	if got := sheet.ColumnByHeader("Exist"); got != 6 {
		t.Errorf("ColumnByHeader(Exist) = %d, want 6", got)
	}
	if got := sheet.ColumnByHeader("Missing"); got != 0 {
		t.Errorf("ColumnByHeader(Missing) = %d, want 0", got)
	}
}

func TestTagColumns(t *testing.T) {
	path := writeFixture(t, "Vault", [][]string{
		{"Name", "Link", "Tag 1", "Duration", "Tag 2", "Tag 3"},
	})
	sheet, err := Open(path, "Vault")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	got := sheet.TagColumns()
	want := []int{3, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("TagColumns() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TagColumns()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestLastRow(t *testing.T) {
	path := writeFixture(t, "Vault", [][]string{
		{"Name", "Link"},
		{"first", "l1"},
		{"second", "l2"},
		{"third", "l3"},
	})
	sheet, err := Open(path, "Vault")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if got := sheet.LastRow(); got != 4 {
		t.Errorf("LastRow() = %d, want 4", got)
	}
}

func TestSetCellAndSaveAs(t *testing.T) {
	path := writeFixture(t, "Vault", [][]string{
		{"Name", "Link", "Duration"},
		{"first", "l1", "."},
	})
	sheet, err := Open(path, "Vault")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	sheet.SetCell(2, 3, "4.2")

	out := filepath.Join(t.TempDir(), "out", "output.xlsx")
	if err := sheet.SaveAs(out); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}

	// Source must be untouched, artifact must carry the mutation.
	source, err := Open(path, "Vault")
	if err != nil {
		t.Fatalf("reopen source: %v", err)
	}
	if got := source.Cell(2, 3); got != Placeholder {
		t.Errorf("source Cell(2,3) = %q, want untouched placeholder", got)
	}

	artifact, err := Open(out, "Vault")
	if err != nil {
		t.Fatalf("open artifact: %v", err)
	}
	if got := artifact.Cell(2, 3); got != "4.2" {
		t.Errorf("artifact Cell(2,3) = %q, want 4.2", got)
	}
}

func TestXLSXFillColor(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetCellValue("Sheet1", "A1", "12.5"); err != nil {
		t.Fatalf("SetCellValue: %v", err)
	}
	styleID, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FF0000"}},
	})
	if err != nil {
		t.Fatalf("NewStyle: %v", err)
	}
	if err := f.SetCellStyle("Sheet1", "A1", "A1", styleID); err != nil {
		t.Fatalf("SetCellStyle: %v", err)
	}

	path := filepath.Join(t.TempDir(), "colors.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	sheet, err := Open(path, "Sheet1")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if got := sheet.FillColor(1, 1); got != "FFFF0000" {
		t.Errorf("FillColor(1,1) = %q, want FFFF0000", got)
	}
	if got := sheet.FillColor(5, 5); got != "" {
		t.Errorf("FillColor(unstyled) = %q, want \"\"", got)
	}
}

func TestNormalizeARGB(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#ff0000", "FFFF0000"},
		{"FF0000", "FFFF0000"},
		{"FFFF0000", "FFFF0000"},
		{"#FFFF00", "FFFFFF00"},
		{"", ""},
		{"red", ""},
	}
	for _, tt := range tests {
		if got := NormalizeARGB(tt.in); got != tt.want {
			t.Errorf("NormalizeARGB(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
