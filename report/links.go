package report

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"watchlog/spreadsheet"
	"watchlog/youtube"
)

// linkColumn is the fixed column holding the video link in tracking
// sheets; the key column of every report.
const linkColumn = 2

// Metadata columns located by header name.
const (
	colDuration  = "Duration"
	colPublished = "Published"
	colAuthor    = "Author"
	colExist     = "Exist"
)

// publishedLayout is how publish timestamps are written into cells.
const publishedLayout = "15:04:05 02-01-2006"

// existMissing marks records whose metadata came back incomplete.
const existMissing = "non-existent"

// LinkInfo is the per-link result of a links run, keyed by the link
// itself in the report output.
type LinkInfo struct {
	Duration  float64 `json:"Duration"`
	Published string  `json:"Published"`
	Author    string  `json:"Author"`
	Exist     string  `json:"Exist,omitempty"`
}

// extractLinks walks the effective row window, looks up metadata for each
// unprocessed video link and fills its placeholder cells. A failed lookup
// is logged and the batch continues.
func (r *Runner) extractLinks(ctx context.Context, sheet spreadsheet.Sheet, opts Options) (map[string]LinkInfo, error) {
	cols, err := metadataColumns(sheet)
	if err != nil {
		return nil, err
	}

	start, end := opts.Start, opts.End
	if opts.Auto {
		start = findStartingRow(sheet, cols)
		if start == 0 {
			r.Log.Info("no unprocessed records found")
			return map[string]LinkInfo{}, nil
		}
		end = sheet.LastRow()
		r.Log.Info("autosearch window", zap.Int("start", start), zap.Int("end", end))
	}
	if opts.Chunk > 0 {
		end = start + opts.Chunk - 1
	}

	links := make(map[string]LinkInfo)
	for row := start; row <= end; row++ {
		link := sheet.Cell(row, linkColumn)
		if !youtube.IsVideoLink(link) {
			continue
		}
		if !recordIncomplete(sheet, cols, row) {
			continue
		}

		videoID, err := youtube.ExtractVideoID(link)
		if err != nil {
			r.Log.Warn("unrecognized link", zap.Int("row", row), zap.String("link", link), zap.Error(err))
			continue
		}

		details, err := r.Fetcher.VideoDetails(ctx, videoID)
		if err != nil {
			r.Log.Warn("metadata lookup failed",
				zap.Int("row", row),
				zap.String("video_id", videoID),
				zap.Error(err))
			continue
		}

		info := LinkInfo{
			Duration: details.DurationMinutes,
			Author:   details.Author,
		}
		if !details.Published.IsZero() {
			info.Published = details.Published.Format(publishedLayout)
		}
		if !details.Complete() {
			info.Exist = existMissing
		}

		fillRecord(sheet, cols, row, info)
		links[link] = info
	}

	return links, nil
}

// metadataColumns locates the metadata columns by header. A sheet missing
// any of them cannot hold link records, so the run fails.
func metadataColumns(sheet spreadsheet.Sheet) (map[string]int, error) {
	cols := make(map[string]int, 4)
	for _, name := range []string{colDuration, colPublished, colAuthor, colExist} {
		col := sheet.ColumnByHeader(name)
		if col == 0 {
			return nil, fmt.Errorf("missing %s column", name)
		}
		cols[name] = col
	}
	return cols, nil
}

// recordIncomplete reports whether the row still awaits metadata: the
// Exist cell holds the placeholder while at least one metadata field does
// too.
func recordIncomplete(sheet spreadsheet.Sheet, cols map[string]int, row int) bool {
	if sheet.Cell(row, cols[colExist]) != spreadsheet.Placeholder {
		return false
	}
	for _, name := range []string{colDuration, colPublished, colAuthor} {
		if sheet.Cell(row, cols[name]) == spreadsheet.Placeholder {
			return true
		}
	}
	return false
}

// findStartingRow returns the first row with an unprocessed video link,
// 0 when every record is complete.
func findStartingRow(sheet spreadsheet.Sheet, cols map[string]int) int {
	for row := 2; sheet.Cell(row, linkColumn) != ""; row++ {
		if youtube.IsVideoLink(sheet.Cell(row, linkColumn)) && recordIncomplete(sheet, cols, row) {
			return row
		}
	}
	return 0
}

// fillRecord writes fetched fields into the row's placeholder cells.
// Cells already holding a value are left alone.
func fillRecord(sheet spreadsheet.Sheet, cols map[string]int, row int, info LinkInfo) {
	set := func(name, value string) {
		if value == "" {
			return
		}
		if col := cols[name]; col > 0 && sheet.Cell(row, col) == spreadsheet.Placeholder {
			sheet.SetCell(row, col, value)
		}
	}

	if info.Duration > 0 {
		set(colDuration, strconv.FormatFloat(info.Duration, 'f', -1, 64))
	}
	set(colPublished, info.Published)
	set(colAuthor, info.Author)
	set(colExist, info.Exist)
}
