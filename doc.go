// Package watchlog provides batch reports over media-tracking
// spreadsheets.
//
// It reads XLSX and ODS workbooks of watched-video and routine records
// and produces one of five reports per run: link metadata extraction via
// the YouTube Data API, tag ordering, JSON conversion, duplicate
// detection, or routine aggregation.
//
// Quick Start
//
// Open a sheet and run a report:
//
//	sheet, err := spreadsheet.Open("inputs/Vault.xlsx", "Vault")
//	if err != nil {
//		log.Fatal(err)
//	}
//	runner := &report.Runner{
//		Writer: &report.ArtifactWriter{Dir: "outputs"},
//		Log:    logger,
//	}
//	result, err := runner.Run(ctx, sheet, report.Options{
//		File:  "Vault.xlsx",
//		Sheet: "Vault",
//		Mode:  report.ModeDuplicates,
//		Output: true,
//	})
//
// Look up video metadata directly:
//
//	client, err := youtube.NewClient(ctx, apiKey, 2.5)
//	if err != nil {
//		log.Fatal(err)
//	}
//	details, err := client.VideoDetails(ctx, "dQw4w9WgXcQ")
//
// Configuration
//
// watchlog loads settings from multiple sources:
//
//   1. Environment variables (highest priority)
//   2. Config file (watchlog.yaml or ~/.config/watchlog/watchlog.yaml)
//   3. Default values (lowest priority)
//
// Environment variables:
//
//   - WATCHLOG_API_KEY (or API_KEY): YouTube Data API v3 key
//   - WATCHLOG_INPUT_DIR: Directory source spreadsheets are read from
//   - WATCHLOG_OUTPUT_DIR: Directory artifacts are written to
//   - WATCHLOG_LOOKUP_TIMEOUT: Timeout for a single metadata lookup
//   - WATCHLOG_LOOKUP_RPS: Metadata lookups per second
//
// Error Handling
//
// All operations return errors that implement standard Go error handling:
//
//	if errors.Is(err, watchlog.ErrSheetNotFound) {
//		fmt.Println("Sheet not found")
//	}
//
//	var lookupErr *watchlog.LookupError
//	if errors.As(err, &lookupErr) {
//		fmt.Printf("Lookup for %s failed: %v\n", lookupErr.VideoID, lookupErr.Err)
//	}
//
// Sub-packages:
//
//   - spreadsheet: XLSX/ODS adapters over a common Sheet interface
//   - youtube: rate-limited video metadata lookups
//   - report: the five report passes and artifact writing
//   - config: configuration management
//
// The source spreadsheet is never modified in place; every run writes its
// results to new artifacts under the output directory.
package watchlog
