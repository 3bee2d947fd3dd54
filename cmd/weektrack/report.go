// Package main is the entry point for the weektrack application.
// This file contains the report subcommand handler.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"weektrack/internal/fsutil"
	"weektrack/internal/reports"
)

// reportHelpText is the help message for the report subcommand.
const reportHelpText = `weektrack report - Generate a weekly report

USAGE:
    weektrack report [OPTIONS] [DATE]

OPTIONS:
    -f, --format FMT   Output format: markdown (default) or json
    -o, --output FILE  Write to file instead of stdout
    -h, --help         Show this help message

ARGUMENTS:
    DATE               Any day of the week to report on (YYYY-MM-DD).
                       Defaults to today; the week starts on Monday.

DESCRIPTION:
    Summarizes the week's tasks and habits: per-day completion counts
    and rates, per-habit week grids, and the weekly aggregate. Output
    is Markdown (human-readable) or JSON (machine-readable).

EXAMPLES:
    # This week's report in Markdown
    weektrack report

    # The week containing a specific date
    weektrack report 2026-03-11

    # JSON format
    weektrack report --format json

    # Save to file
    weektrack report --output week.md
`

// runReport handles the "weektrack report" subcommand.
func runReport(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)

	formatFlag := fs.String("format", "markdown", "output format: markdown or json")
	fs.StringVar(formatFlag, "f", "markdown", "output format (shorthand)")

	outputFlag := fs.String("output", "", "write to file instead of stdout")
	fs.StringVar(outputFlag, "o", "", "write to file (shorthand)")

	helpFlag := fs.Bool("help", false, "show help message")
	fs.BoolVar(helpFlag, "h", false, "show help message (shorthand)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, reportHelpText)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *helpFlag {
		fmt.Print(reportHelpText)
		os.Exit(0)
	}

	// Validate format
	format := *formatFlag
	if format != "markdown" && format != "json" && format != "md" {
		fmt.Fprintf(os.Stderr, "Error: invalid format %q. Use 'markdown' or 'json'.\n", format)
		os.Exit(1)
	}
	if format == "md" {
		format = "markdown"
	}

	date := parseDateArg(fs)
	tr := loadTracker(date)

	report := reports.NewGenerator(tr).GenerateWeekly()

	var output string
	if format == "json" {
		data, err := reports.FormatWeeklyJSON(report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting JSON: %v\n", err)
			os.Exit(1)
		}
		output = string(data)
	} else {
		output = reports.FormatWeeklyMarkdown(report)
	}

	// Write output
	if *outputFlag != "" {
		if dir := filepath.Dir(*outputFlag); dir != "." {
			if err := os.MkdirAll(dir, 0700); err != nil {
				fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
				os.Exit(1)
			}
		}
		if err := fsutil.WriteFileAtomic(*outputFlag, []byte(output), 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Report written to %s\n", *outputFlag)
	} else {
		fmt.Print(output)
	}
}
