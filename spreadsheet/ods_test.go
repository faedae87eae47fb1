package spreadsheet

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const odsFixtureContent = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content
  xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
  xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0"
  xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0"
  xmlns:style="urn:oasis:names:tc:opendocument:xmlns:style:1.0"
  xmlns:fo="urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0">
  <office:automatic-styles>
    <style:style style:name="ce1" style:family="table-cell">
      <style:table-cell-properties fo:background-color="#00ff00"/>
    </style:style>
  </office:automatic-styles>
  <office:body>
    <office:spreadsheet>
      <table:table table:name="Vault">
        <table:table-row>
          <table:table-cell office:value-type="string"><text:p>Name</text:p></table:table-cell>
          <table:table-cell office:value-type="string"><text:p>Link</text:p></table:table-cell>
          <table:table-cell office:value-type="string"><text:p>Date</text:p></table:table-cell>
          <table:table-cell office:value-type="string"><text:p>Duration</text:p></table:table-cell>
          <table:table-cell table:number-columns-repeated="16380"/>
        </table:table-row>
        <table:table-row>
          <table:table-cell office:value-type="string"><text:p>first</text:p></table:table-cell>
          <table:table-cell office:value-type="string"><text:p>https://youtu.be/abc123def45</text:p></table:table-cell>
          <table:table-cell office:value-type="date" office:date-value="2026-08-30"><text:p>30.08.26</text:p></table:table-cell>
          <table:table-cell table:style-name="ce1" office:value-type="float" office:value="12.5"><text:p>12.5</text:p></table:table-cell>
        </table:table-row>
        <table:table-row>
          <table:table-cell office:value-type="string"><text:p>second</text:p></table:table-cell>
          <table:table-cell table:number-columns-repeated="2" office:value-type="string"><text:p>.</text:p></table:table-cell>
        </table:table-row>
        <table:table-row table:number-rows-repeated="1048000"/>
      </table:table>
    </office:spreadsheet>
  </office:body>
</office:document-content>`

// writeODSFixture assembles a minimal ODS container.
func writeODSFixture(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.ods")
	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	mime, err := zw.Create("mimetype")
	if err != nil {
		t.Fatalf("create mimetype: %v", err)
	}
	mime.Write([]byte("application/vnd.oasis.opendocument.spreadsheet"))

	cw, err := zw.Create("content.xml")
	if err != nil {
		t.Fatalf("create content.xml: %v", err)
	}
	if _, err := cw.Write([]byte(content)); err != nil {
		t.Fatalf("write content.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return path
}

func TestOpenODS(t *testing.T) {
	path := writeODSFixture(t, odsFixtureContent)

	sheet, err := Open(path, "Vault")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if got := sheet.Cell(1, 1); got != "Name" {
		t.Errorf("Cell(1,1) = %q, want Name", got)
	}
	if got := sheet.Cell(2, 2); got != "https://youtu.be/abc123def45" {
		t.Errorf("Cell(2,2) = %q", got)
	}
	// Typed values win over display text.
	if got := sheet.Cell(2, 3); got != "2026-08-30" {
		t.Errorf("date cell = %q, want 2026-08-30", got)
	}
	if got := sheet.Cell(2, 4); got != "12.5" {
		t.Errorf("float cell = %q, want 12.5", got)
	}
	// number-columns-repeated expands.
	if got := sheet.Cell(3, 2); got != Placeholder {
		t.Errorf("repeated cell col 2 = %q, want placeholder", got)
	}
	if got := sheet.Cell(3, 3); got != Placeholder {
		t.Errorf("repeated cell col 3 = %q, want placeholder", got)
	}
	// Padding runs are dropped.
	if got := sheet.LastRow(); got != 3 {
		t.Errorf("LastRow() = %d, want 3", got)
	}
}

func TestODSFillColor(t *testing.T) {
	path := writeODSFixture(t, odsFixtureContent)

	sheet, err := Open(path, "Vault")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if got := sheet.FillColor(2, 4); got != "FF00FF00" {
		t.Errorf("FillColor(2,4) = %q, want FF00FF00", got)
	}
	if got := sheet.FillColor(2, 1); got != "" {
		t.Errorf("FillColor(unstyled) = %q, want \"\"", got)
	}
}

func TestODSSheetNotFound(t *testing.T) {
	path := writeODSFixture(t, odsFixtureContent)

	_, err := Open(path, "Nope")
	if !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("error = %v, want ErrSheetNotFound", err)
	}
}

func TestODSMalformedContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.ods")
	if err := os.WriteFile(path, []byte("not a zip"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Open(path, "Vault"); err == nil {
		t.Fatal("Open should fail on a malformed container")
	}
}

func TestODSSaveAsConvertsToXLSX(t *testing.T) {
	path := writeODSFixture(t, odsFixtureContent)

	sheet, err := Open(path, "Vault")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	sheet.SetCell(3, 3, "2026-08-29")

	out := filepath.Join(t.TempDir(), "output.xlsx")
	if err := sheet.SaveAs(out); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}

	artifact, err := Open(out, "Vault")
	if err != nil {
		t.Fatalf("open artifact: %v", err)
	}
	if got := artifact.Cell(1, 2); got != "Link" {
		t.Errorf("artifact Cell(1,2) = %q, want Link", got)
	}
	if got := artifact.Cell(3, 3); got != "2026-08-29" {
		t.Errorf("artifact Cell(3,3) = %q, want mutation carried over", got)
	}
	// Fill colors survive the conversion.
	if got := artifact.FillColor(2, 4); got != "FF00FF00" {
		t.Errorf("artifact FillColor(2,4) = %q, want FF00FF00", got)
	}
}
