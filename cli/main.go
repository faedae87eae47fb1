package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"watchlog/config"
	"watchlog/report"
	"watchlog/spreadsheet"
	"watchlog/youtube"
)

func main() {
	fs := flag.NewFlagSet("watchlog", flag.ExitOnError)

	file := fs.String("file", "", "Spreadsheet file to process (XLSX/ODS), resolved against the input directory. Required.")
	sheetName := fs.String("sheet", "", "Sheet name of the given document. Required.")
	start := fs.Int("start", 0, "Starting row.")
	end := fs.Int("end", 0, "Ending row (inclusive).")
	chunk := fs.Int("chunk", 0, "Process only the given number of records. Used with --links.")
	auto := fs.Bool("auto", false, "Autosearch of non-processed records. Used with --links.")
	output := fs.Bool("output", false, "Write the result as a JSON artifact.")
	customName := fs.String("custom_name", "", "Custom name of the output artifact.")

	links := fs.Bool("links", false, "Extract links and fetch video metadata.")
	routines := fs.Bool("routines", false, "Group routines by day and category.")
	tags := fs.Bool("tags", false, "Order tags.")
	jsonMode := fs.Bool("json", false, "Convert the sheet to JSON.")
	duplicates := fs.Bool("duplicates", false, "Detect duplicate links.")
	merge := fs.Bool("merge", false, "Merge all JSON artifacts in the output directory into one file.")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `watchlog - batch reports over media-tracking spreadsheets

Usage:
  watchlog --file <name> --sheet <name> (--links|--routines|--tags|--json|--duplicates) [flags]

Examples:
  watchlog --file Vault.xlsx --sheet Vault --links --auto
  watchlog --file Vault.ods --sheet Vault --links --start 41688 --end 42000 --output
  watchlog --file Vault.xlsx --sheet Vault --duplicates --output
  watchlog --file Vault.xlsx --sheet Routines --routines --start 2
  watchlog --merge

Flags:
`)
		fs.PrintDefaults()
	}
	fs.Parse(os.Args[1:])

	if *merge {
		if *links || *routines || *tags || *jsonMode || *duplicates {
			fmt.Fprintln(os.Stderr, "Error: --merge cannot be combined with report modes")
			os.Exit(1)
		}
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		writer := &report.ArtifactWriter{Dir: cfg.OutputDir}
		path, err := writer.MergeOutputs()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Merged: %s\n", path)
		return
	}

	mode, err := selectMode(map[report.Mode]bool{
		report.ModeLinks:      *links,
		report.ModeRoutines:   *routines,
		report.ModeTags:       *tags,
		report.ModeJSON:       *jsonMode,
		report.ModeDuplicates: *duplicates,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fs.Usage()
		os.Exit(1)
	}

	opts := report.Options{
		File:       *file,
		Sheet:      *sheetName,
		Mode:       mode,
		Start:      *start,
		End:        *end,
		Chunk:      *chunk,
		Auto:       *auto,
		Output:     *output,
		CustomName: *customName,
	}

	// Argument errors are fatal before any file is opened.
	if err := opts.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	runner := &report.Runner{
		Writer: &report.ArtifactWriter{Dir: cfg.OutputDir},
		Log:    logger,
	}
	if mode == report.ModeLinks {
		client, err := youtube.NewClient(ctx, cfg.APIKey, cfg.LookupRPS)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating metadata client: %v\n", err)
			os.Exit(1)
		}
		client.Timeout = cfg.LookupTimeout
		runner.Fetcher = client
	}

	sheet, err := spreadsheet.Open(cfg.ResolveInput(opts.File), opts.Sheet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result, err := runner.Run(ctx, sheet, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printSummary(result, opts)
}

// selectMode enforces the mutually exclusive mode flags.
func selectMode(flags map[report.Mode]bool) (report.Mode, error) {
	var selected report.Mode
	for mode, set := range flags {
		if !set {
			continue
		}
		if selected != "" {
			return "", fmt.Errorf("--links, --routines, --tags, --json and --duplicates are mutually exclusive")
		}
		selected = mode
	}
	if selected == "" {
		return "", fmt.Errorf("no report selected, use one of --links, --routines, --tags, --json, --duplicates")
	}
	return selected, nil
}

// printSummary reports what the run produced. Result payloads go to
// stdout when they were not already written as an artifact.
func printSummary(result *report.Result, opts report.Options) {
	switch opts.Mode {
	case report.ModeLinks:
		fmt.Fprintf(os.Stderr, "Processed %d links\n", len(result.Links))
	case report.ModeTags:
		fmt.Fprintf(os.Stderr, "Tags ordered\n")
	case report.ModeJSON:
		fmt.Fprintf(os.Stderr, "Converted %d records\n", len(result.Records))
	case report.ModeDuplicates:
		fmt.Fprintf(os.Stderr, "Found %d duplicate links\n", len(result.Duplicates))
	case report.ModeRoutines:
		fmt.Fprintf(os.Stderr, "Aggregated routines for %d days\n", len(result.Routines))
	}

	if result.WorkbookPath != "" {
		fmt.Fprintf(os.Stderr, "Workbook: %s\n", result.WorkbookPath)
	}
	if result.ArtifactPath != "" {
		fmt.Fprintf(os.Stderr, "Result: %s\n", result.ArtifactPath)
		return
	}

	// No artifact requested: print the payload for piping.
	var payload any
	switch {
	case len(result.Records) > 0:
		payload = result.Records
	case len(result.Routines) > 0:
		payload = result.Routines
	case len(result.Links) > 0:
		payload = result.Links
	}
	if payload != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(payload)
	}
}
