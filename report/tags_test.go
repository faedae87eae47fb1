package report

import (
	"context"
	"reflect"
	"testing"
)

func tagSheet() *memSheet {
	return newMemSheet([][]string{
		{"Name", "Link", "Tag 1", "Tag 2", "Tag 3"},
		{"first", "https://youtu.be/abc123def45", "zebra", ".", "alpha"},
		{"second", "https://youtu.be/def456ghi78", "music", "live", "concert"},
		{"third", "https://youtu.be/ghi789jkl01", ".", ".", "."},
	})
}

func TestOrderTags(t *testing.T) {
	sheet := tagSheet()
	r := testRunner(t, nil)

	result, err := r.Run(context.Background(), sheet, Options{
		File: "watch.xlsx", Sheet: "Watch", Mode: ModeTags,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	checks := []struct {
		row  int
		want []string
	}{
		{2, []string{"alpha", "zebra", "."}},
		{3, []string{"concert", "live", "music"}},
		{4, []string{".", ".", "."}},
	}
	for _, c := range checks {
		var got []string
		for col := 3; col <= 5; col++ {
			got = append(got, sheet.Cell(c.row, col))
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("row %d tags = %v, want %v", c.row, got, c.want)
		}
	}

	if result.WorkbookPath == "" || len(sheet.savedTo) != 1 {
		t.Error("tags run must save a workbook artifact")
	}
}

func TestOrderTagsIdempotent(t *testing.T) {
	sheet := tagSheet()
	r := testRunner(t, nil)

	if err := r.orderTags(sheet); err != nil {
		t.Fatalf("first pass failed: %v", err)
	}
	snapshot := make([][]string, len(sheet.rows))
	for i, row := range sheet.rows {
		snapshot[i] = append([]string(nil), row...)
	}

	if err := r.orderTags(sheet); err != nil {
		t.Fatalf("second pass failed: %v", err)
	}
	if !reflect.DeepEqual(sheet.rows, snapshot) {
		t.Errorf("second pass changed the sheet:\n%v\nwant\n%v", sheet.rows, snapshot)
	}
}

func TestOrderTagsNoTagColumns(t *testing.T) {
	sheet := newMemSheet([][]string{{"Name", "Link"}})
	r := testRunner(t, nil)

	if err := r.orderTags(sheet); err == nil {
		t.Fatal("orderTags should fail without tag columns")
	}
}
