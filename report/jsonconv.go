package report

import (
	"time"

	"watchlog/spreadsheet"
)

// dateCellLayouts are the date formats accepted in Date cells, in the
// order they are tried.
var dateCellLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	time.RFC3339,
}

// jsonDateLayout is how Date values appear in the JSON interchange form.
const jsonDateLayout = "02/01/06"

// convertToRecords serializes the sheet into the nested interchange
// structure: the first row supplies field names, the column-2 value keys
// each record, and the key column itself is dropped from the nested map.
func convertToRecords(sheet spreadsheet.Sheet) map[string]map[string]string {
	var headers []string
	for col := 1; ; col++ {
		h := sheet.Cell(1, col)
		if h == "" {
			break
		}
		headers = append(headers, h)
	}

	records := make(map[string]map[string]string)
	for row := 2; ; row++ {
		key := sheet.Cell(row, linkColumn)
		if key == "" {
			break
		}

		record := make(map[string]string, len(headers))
		for i, header := range headers {
			if i+1 == linkColumn {
				continue
			}
			value := sheet.Cell(row, i+1)
			if header == "Date" {
				value = reformatDate(value, jsonDateLayout)
			}
			record[header] = value
		}
		records[key] = record
	}

	return records
}

// reformatDate rewrites a recognizable date into layout; anything else
// passes through untouched.
func reformatDate(value, layout string) string {
	for _, l := range dateCellLayouts {
		if t, err := time.Parse(l, value); err == nil {
			return t.Format(layout)
		}
	}
	return value
}
