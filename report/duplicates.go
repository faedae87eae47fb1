package report

import "watchlog/spreadsheet"

// findDuplicates groups records by their link and reports every link that
// occurs more than once, mapped to the 0-based indices of its
// occurrences in reading order.
func findDuplicates(sheet spreadsheet.Sheet) map[string][]int {
	occurrences := make(map[string][]int)
	for row := 2; ; row++ {
		link := sheet.Cell(row, linkColumn)
		if link == "" {
			break
		}
		occurrences[link] = append(occurrences[link], row-2)
	}

	duplicates := make(map[string][]int)
	for link, indices := range occurrences {
		if len(indices) > 1 {
			duplicates[link] = indices
		}
	}
	return duplicates
}
