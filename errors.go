package watchlog

import (
	"watchlog/report"
	"watchlog/spreadsheet"
	"watchlog/youtube"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, watchlog.ErrVideoNotFound) {
//		fmt.Println("Video not found")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var openErr *watchlog.OpenError
//	if errors.As(err, &openErr) {
//		fmt.Printf("Opening %s failed: %v\n", openErr.Path, openErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// OpenError wraps failures to open a workbook or select a sheet.
	OpenError = spreadsheet.OpenError
	// LookupError wraps a failed metadata lookup for one video.
	LookupError = youtube.LookupError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrUnsupportedFormat indicates the file extension maps to no adapter.
	ErrUnsupportedFormat = spreadsheet.ErrUnsupportedFormat
	// ErrSheetNotFound indicates the workbook has no sheet with the given name.
	ErrSheetNotFound = spreadsheet.ErrSheetNotFound

	// ErrVideoNotFound indicates the API returned no items for a video ID.
	ErrVideoNotFound = youtube.ErrVideoNotFound
	// ErrInvalidLink indicates no video ID could be extracted from a link.
	ErrInvalidLink = youtube.ErrInvalidLink

	// ErrInvalidOptions indicates an invalid CLI flag combination.
	ErrInvalidOptions = report.ErrInvalidOptions
)
