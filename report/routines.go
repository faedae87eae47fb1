package report

import (
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"watchlog/spreadsheet"
)

// routineCategories maps duration-cell fill colors to category names.
var routineCategories = map[string]string{
	"FFFF0000": "red",
	"FF00FF00": "green",
	"FFFFFF00": "yellow",
}

// routineDateLayout keys the routines report.
const routineDateLayout = "02-01-2006"

// extractRoutines aggregates routine durations per day and color
// category, starting at the given row and stopping at the first empty
// Date cell. Totals are rounded to 2 decimals.
func (r *Runner) extractRoutines(sheet spreadsheet.Sheet, start int) (map[string]map[string]float64, error) {
	dateCol := sheet.ColumnByHeader("Date")
	if dateCol == 0 {
		return nil, fmt.Errorf("missing Date column")
	}
	durationCol := sheet.ColumnByHeader(colDuration)
	if durationCol == 0 {
		return nil, fmt.Errorf("missing Duration column")
	}

	routines := make(map[string]map[string]float64)
	for row := start; ; row++ {
		date := sheet.Cell(row, dateCol)
		if date == "" {
			break
		}

		duration := sheet.Cell(row, durationCol)
		if duration == "" || duration == spreadsheet.Placeholder {
			continue
		}
		value, err := strconv.ParseFloat(duration, 64)
		if err != nil {
			r.Log.Warn("malformed duration cell", zap.Int("row", row), zap.String("value", duration))
			continue
		}

		category, ok := routineCategories[sheet.FillColor(row, durationCol)]
		if !ok {
			continue
		}

		day := reformatDate(date, routineDateLayout)
		if routines[day] == nil {
			routines[day] = make(map[string]float64)
		}
		routines[day][category] += value
	}

	for _, day := range routines {
		for category, total := range day {
			day[category] = math.Round(total*100) / 100
		}
	}

	return routines, nil
}
