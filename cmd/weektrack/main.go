// Package main is the entry point for the weektrack application.
// It loads configuration, initializes storage, and starts the TUI.
package main

import (
	"flag"
	"fmt"
	"os"

	"weektrack/internal/config"
	"weektrack/internal/logging"
	"weektrack/internal/storage"
	"weektrack/internal/ui"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const helpText = `weektrack - A weekly habit and task tracker for your terminal

USAGE:
    weektrack [OPTIONS]
    weektrack <command> [ARGS]

COMMANDS:
    backup           Create a backup of the data file
    backup --list    List available backups
    backup --prune N Keep only the N most recent backups
    restore NAME     Restore from a specific backup
    restore --latest Restore from the most recent backup
    export           Write the current week to a spreadsheet (.xlsx)
    report           Generate a weekly report (Markdown)
    report -f json   Output the report as JSON

OPTIONS:
    -h, --help       Show this help message
    -v, --version    Show version information

DESCRIPTION:
    weektrack is a terminal-based tracker built around a Monday-anchored
    week. Habits are checked per day across the whole week; tasks live on
    individual days, with templates that repeat on every day.

KEYBINDINGS:
    Global:
        Tab          Switch between panes
        1, 2, 3      Jump to specific pane
        Ctrl+S       Save
        e            Export the week to a spreadsheet
        ?            Show help overlay
        q            Quit

    Habits Pane:
        h/j/k/l, arrows   Move over the week grid
        a            Add habit
        d/Space      Toggle the selected day
        r            Rename habit
        x            Delete habit

    Tasks Pane:
        h/l, ←/→     Switch day
        j/k, ↓/↑     Navigate tasks
        a            Add task to the selected day
        A            Add task to every day of the week
        d/Space      Toggle done
        r            Rename task
        x            Delete task

DATA STORAGE:
    All data is stored in ~/.weektrack/ as a single JSON file:
        tracker.json - Habits, tasks, and per-day completion state

CONFIGURATION:
    Optional config file: ~/.config/weektrack/config.yaml
    See documentation for configuration options.

EXAMPLES:
    # Start the app
    weektrack

    # Create a backup
    weektrack backup

    # Restore from a backup
    weektrack restore --latest

    # Export this week to weektrack-<week>.xlsx
    weektrack export

    # Weekly report as JSON
    weektrack report --format json

    # Show version
    weektrack --version

    # Show this help
    weektrack --help
`

func main() {
	// Check for subcommands first (before flag parsing)
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "backup":
			runBackup(os.Args[2:])
			return
		case "restore":
			runRestore(os.Args[2:])
			return
		case "export":
			runExport(os.Args[2:])
			return
		case "report":
			runReport(os.Args[2:])
			return
		}
	}

	// Define flags
	showVersion := flag.Bool("version", false, "show version information")
	flag.BoolVar(showVersion, "v", false, "show version information (shorthand)")

	showHelp := flag.Bool("help", false, "show help message")
	flag.BoolVar(showHelp, "h", false, "show help message (shorthand)")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, helpText)
	}

	flag.Parse()

	// Handle version flag
	if *showVersion {
		fmt.Printf("weektrack version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
		os.Exit(0)
	}

	// Handle help flag
	if *showHelp {
		fmt.Print(helpText)
		os.Exit(0)
	}

	// Reject unknown arguments
	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown arguments: %v\n\n", flag.Args())
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration (from ~/.config/weektrack/config.yaml or defaults)
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The log file lives next to the data; stdout belongs to the TUI.
	log, logCloser := logging.Open(cfg.GetDataDir())
	defer logCloser.Close()

	// Initialize storage with configured data directory
	store, err := storage.New(cfg.GetDataDir(), seedsFromConfig(cfg), log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing storage: %v\n", err)
		os.Exit(1)
	}

	// Create styles from theme config
	styles := ui.NewStylesFromTheme(&cfg.Theme)

	// Create app config with keys and UX settings
	appCfg := &ui.AppConfig{
		Keys:                  &cfg.Keys,
		ConfirmDeletions:      cfg.UX.ConfirmDeletions,
		ConfirmQuitUnsaved:    cfg.UX.ConfirmQuitUnsaved,
		NarrowLayoutThreshold: cfg.UX.NarrowLayoutThreshold,
	}

	log.WithField("version", version).Info("starting")

	if err := ui.Run(store, styles, appCfg, log); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// seedsFromConfig resolves the first-run habit and template lists:
// config-provided lists win, built-ins fill the gaps.
func seedsFromConfig(cfg *config.Config) storage.Seeds {
	seeds := storage.DefaultSeeds()
	if cfg.Defaults.Habits != nil {
		seeds.Habits = cfg.Defaults.Habits
	}
	if cfg.Defaults.TaskTemplates != nil {
		seeds.TaskTemplates = cfg.Defaults.TaskTemplates
	}
	return seeds
}
