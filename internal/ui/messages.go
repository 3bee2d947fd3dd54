// Package ui provides terminal user interface components for the weektrack app.
// This file defines message types for async I/O operations using the Bubble Tea
// command pattern. Disk operations (load, save, export) return these messages
// to keep the event loop non-blocking; tracker mutations themselves are
// synchronous and in-memory.
package ui

import (
	"weektrack/internal/tracker"
)

// statusMsg carries a transient message for the status bar.
type statusMsg struct {
	text  string
	isErr bool
}

// documentLoadedMsg is sent when the tracker document is loaded from storage.
// doc may be non-nil together with a non-nil err when the file was recovered
// from a backup or reset to defaults.
type documentLoadedMsg struct {
	doc *tracker.Document
	err error
}

// documentSavedMsg is sent when the tracker document has been written to disk.
type documentSavedMsg struct {
	err error
}

// workbookExportedMsg is sent when the week has been exported to a spreadsheet.
type workbookExportedMsg struct {
	path string
	err  error
}
