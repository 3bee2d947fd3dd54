// Package ui provides terminal user interface components for the weektrack app.
// This file contains tea.Cmd factories that wrap disk operations. These
// commands run I/O asynchronously to keep the Bubble Tea event loop
// responsive. Each command returns a corresponding message type defined
// in messages.go.
package ui

import (
	"weektrack/internal/export"
	"weektrack/internal/storage"
	"weektrack/internal/tracker"

	tea "github.com/charmbracelet/bubbletea"
)

// loadDocumentCmd returns a command that loads the tracker document.
func loadDocumentCmd(store *storage.Storage) tea.Cmd {
	return func() tea.Msg {
		doc, err := store.Load()
		return documentLoadedMsg{doc: doc, err: err}
	}
}

// saveDocumentCmd returns a command that writes the document to disk.
func saveDocumentCmd(store *storage.Storage, doc *tracker.Document) tea.Cmd {
	return func() tea.Msg {
		err := store.Save(doc)
		return documentSavedMsg{err: err}
	}
}

// exportWorkbookCmd returns a command that writes the current week to an
// .xlsx workbook at path.
func exportWorkbookCmd(tr *tracker.Tracker, path string) tea.Cmd {
	return func() tea.Msg {
		err := export.WriteWorkbook(tr, path)
		return workbookExportedMsg{path: path, err: err}
	}
}

// statusCmd returns a command that posts a status bar message.
func statusCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}
