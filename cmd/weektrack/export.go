// Package main is the entry point for the weektrack application.
// This file contains the export subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"weektrack/internal/config"
	"weektrack/internal/export"
	"weektrack/internal/storage"
	"weektrack/internal/tracker"
)

// exportHelpText is the help message for the export subcommand.
const exportHelpText = `weektrack export - Write a week to a spreadsheet

USAGE:
    weektrack export [OPTIONS] [DATE]

OPTIONS:
    -o, --output FILE  Output path (default: weektrack-<week-start>.xlsx)
    -h, --help         Show this help message

ARGUMENTS:
    DATE               Any day of the week to export (YYYY-MM-DD).
                       Defaults to today; the week starts on Monday.

DESCRIPTION:
    Writes the selected week to an .xlsx workbook with two sheets:
    Habits (the week grid with per-habit completion rates) and Tasks
    (per-day task lists with completion summaries).

EXAMPLES:
    # Export the current week
    weektrack export

    # Export the week containing a specific date
    weektrack export 2026-03-11

    # Choose the output path
    weektrack export --output ~/reports/week.xlsx
`

// runExport handles the "weektrack export" subcommand.
func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	outputFlag := fs.String("output", "", "output path")
	fs.StringVar(outputFlag, "o", "", "output path (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, exportHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(exportHelpText)
		os.Exit(0)
	}

	date := parseDateArg(fs)
	tr := loadTracker(date)

	outPath := *outputFlag
	if outPath == "" {
		outPath = fmt.Sprintf("weektrack-%s.xlsx", tr.WeekDates()[0])
	}

	if err := export.WriteWorkbook(tr, outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing workbook: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Week %s exported to %s\n", tr.WeekDates()[0], outPath)
}

// parseDateArg reads the optional DATE positional argument, defaulting
// to today.
func parseDateArg(fs *flag.FlagSet) time.Time {
	if fs.NArg() == 0 {
		return time.Now()
	}
	parsed, err := time.ParseInLocation(tracker.DateFormat, fs.Arg(0), time.Local)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid date %q. Use YYYY-MM-DD format.\n", fs.Arg(0))
		os.Exit(1)
	}
	return parsed
}

// loadTracker loads the document from disk and wraps it in a tracker
// anchored on the week containing date. Recovery warnings go to stderr;
// the recovered document is still usable.
func loadTracker(date time.Time) *tracker.Tracker {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.New(cfg.GetDataDir(), seedsFromConfig(cfg), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	doc, err := store.Load()
	if err != nil {
		if doc == nil {
			fmt.Fprintf(os.Stderr, "Error loading data: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	return tracker.New(doc, date, nil)
}
