package report

import (
	"fmt"
	"sort"

	"watchlog/spreadsheet"
)

// orderTags sorts each row's tag values ascending across the tag columns.
// Non-placeholder values are packed to the left and the remaining tag
// columns reset to the placeholder, so the transform is idempotent.
func (r *Runner) orderTags(sheet spreadsheet.Sheet) error {
	tagCols := sheet.TagColumns()
	if len(tagCols) == 0 {
		return fmt.Errorf("no tag columns in header row")
	}

	for row := 2; sheet.Cell(row, tagCols[0]) != ""; row++ {
		var values []string
		for _, col := range tagCols {
			if v := sheet.Cell(row, col); v != spreadsheet.Placeholder {
				values = append(values, v)
			}
		}
		sort.Strings(values)

		for i, col := range tagCols {
			if i < len(values) {
				sheet.SetCell(row, col, values[i])
			} else {
				sheet.SetCell(row, col, spreadsheet.Placeholder)
			}
		}
	}

	return nil
}
