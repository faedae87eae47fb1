// Package report implements the five batch reports over a spreadsheet
// sheet: link metadata extraction, tag ordering, JSON conversion,
// duplicate detection and routine aggregation.
//
// Each report is a single deterministic pass over the sheet. The source
// file is never written in place: modified workbooks and JSON results go
// to fresh artifacts under the output directory.
package report

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"watchlog/spreadsheet"
	"watchlog/youtube"
)

// Mode selects which report a run produces. Exactly one per run.
type Mode string

// Report modes.
const (
	ModeLinks      Mode = "links"
	ModeRoutines   Mode = "routines"
	ModeTags       Mode = "tags"
	ModeJSON       Mode = "json"
	ModeDuplicates Mode = "duplicates"
)

// ErrInvalidOptions indicates an invalid flag combination. Option errors
// are fatal before any file is opened.
var ErrInvalidOptions = errors.New("invalid options")

// Options carries one run's arguments. Zero values mean "not given".
type Options struct {
	// File is the source spreadsheet name, resolved against the input dir.
	File string
	// Sheet is the worksheet name inside the workbook.
	Sheet string
	// Mode is the single report to produce.
	Mode Mode

	// Start and End bound the processed row range, both inclusive.
	Start int
	End   int
	// Chunk processes at most Chunk rows from Start (links mode).
	Chunk int
	// Auto searches for the next unprocessed window (links mode).
	Auto bool

	// Output writes the report result as a JSON artifact.
	Output bool
	// CustomName overrides the timestamp suffix of artifact names.
	CustomName string
}

// Validate checks the argument contract. Rules per mode:
//
//   - links: one of --start/--end, --start/--chunk, --auto/--chunk, --auto
//   - duplicates: requires --output, no range flags
//   - routines: requires --start, no --end/--chunk/--auto
//   - tags, json: no range flags
func (o *Options) Validate() error {
	if o.File == "" {
		return fmt.Errorf("%w: --file is required", ErrInvalidOptions)
	}
	if o.Sheet == "" {
		return fmt.Errorf("%w: --sheet is required", ErrInvalidOptions)
	}

	if o.Start < 0 || o.End < 0 || o.Chunk < 0 {
		return fmt.Errorf("%w: --start, --end and --chunk must be non-negative", ErrInvalidOptions)
	}
	if o.End > 0 {
		if o.Start == 0 {
			return fmt.Errorf("%w: --end requires --start", ErrInvalidOptions)
		}
		if o.End <= o.Start {
			return fmt.Errorf("%w: --end must be greater than --start", ErrInvalidOptions)
		}
	}

	hasRange := o.Start > 0 || o.End > 0 || o.Chunk > 0 || o.Auto

	switch o.Mode {
	case ModeLinks:
		valid := (o.Start > 0 && o.End > 0) ||
			(o.Start > 0 && o.Chunk > 0) ||
			o.Auto
		if !valid {
			return fmt.Errorf("%w: --links needs --start with --end, --start with --chunk, --auto with --chunk, or --auto alone", ErrInvalidOptions)
		}
	case ModeDuplicates:
		if !o.Output {
			return fmt.Errorf("%w: --duplicates requires --output", ErrInvalidOptions)
		}
		if hasRange {
			return fmt.Errorf("%w: --duplicates cannot be used with --start, --end, --chunk, or --auto", ErrInvalidOptions)
		}
	case ModeRoutines:
		if o.Start == 0 {
			return fmt.Errorf("%w: --routines requires --start", ErrInvalidOptions)
		}
		if o.End > 0 || o.Chunk > 0 || o.Auto {
			return fmt.Errorf("%w: --routines cannot be used with --end, --chunk, or --auto", ErrInvalidOptions)
		}
	case ModeTags, ModeJSON:
		if hasRange {
			return fmt.Errorf("%w: --%s cannot be used with --start, --end, --chunk, or --auto", ErrInvalidOptions, o.Mode)
		}
	case "":
		return fmt.Errorf("%w: no report selected, use one of --links, --routines, --tags, --json, --duplicates", ErrInvalidOptions)
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidOptions, o.Mode)
	}

	return nil
}

// MetadataFetcher looks up video metadata by ID. *youtube.Client
// implements it; tests substitute fakes.
type MetadataFetcher interface {
	VideoDetails(ctx context.Context, videoID string) (*youtube.VideoDetails, error)
}

// Result holds the outcome of one run. At most one payload field is set,
// matching the run's mode.
type Result struct {
	Links      map[string]LinkInfo
	Records    map[string]map[string]string
	Duplicates map[string][]int
	Routines   map[string]map[string]float64

	// WorkbookPath is set when a modified workbook was written.
	WorkbookPath string
	// ArtifactPath is set when a JSON result artifact was written.
	ArtifactPath string
}

// payload returns the mode-specific result for serialization, nil when
// there is nothing to write.
func (r *Result) payload() any {
	switch {
	case len(r.Links) > 0:
		return r.Links
	case len(r.Records) > 0:
		return r.Records
	case len(r.Duplicates) > 0:
		return r.Duplicates
	case len(r.Routines) > 0:
		return r.Routines
	default:
		return nil
	}
}

// Runner executes one report over an opened sheet.
type Runner struct {
	// Fetcher is required for links mode only.
	Fetcher MetadataFetcher
	// Writer produces output artifacts.
	Writer *ArtifactWriter
	// Log receives progress and per-record failures.
	Log *zap.Logger
}

// Run validates opts, executes the selected report and writes artifacts.
// links and tags save the modified workbook; JSON results are written
// when opts.Output is set and the result is non-empty.
func (r *Runner) Run(ctx context.Context, sheet spreadsheet.Sheet, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result := &Result{}
	modified := false
	var err error

	switch opts.Mode {
	case ModeLinks:
		if r.Fetcher == nil {
			return nil, fmt.Errorf("links mode requires a metadata fetcher")
		}
		result.Links, err = r.extractLinks(ctx, sheet, opts)
		modified = true
	case ModeTags:
		err = r.orderTags(sheet)
		modified = true
	case ModeJSON:
		result.Records = convertToRecords(sheet)
	case ModeDuplicates:
		result.Duplicates = findDuplicates(sheet)
	case ModeRoutines:
		result.Routines, err = r.extractRoutines(sheet, opts.Start)
	}
	if err != nil {
		return nil, err
	}

	suffix := r.Writer.Suffix(opts.CustomName)

	if modified {
		path := r.Writer.WorkbookPath(suffix)
		if err := sheet.SaveAs(path); err != nil {
			return nil, fmt.Errorf("save workbook artifact: %w", err)
		}
		result.WorkbookPath = path
		r.Log.Info("workbook artifact saved", zap.String("path", path))
	}

	if opts.Output {
		if payload := result.payload(); payload != nil {
			path, err := r.Writer.WriteJSON(suffix, payload)
			if err != nil {
				return nil, err
			}
			result.ArtifactPath = path
			r.Log.Info("result artifact saved", zap.String("path", path))
		}
	}

	return result, nil
}
