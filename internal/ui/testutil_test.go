package ui

import (
	"testing"
	"time"

	"weektrack/internal/config"
	"weektrack/internal/storage"
	"weektrack/internal/tracker"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// testMonday anchors tests to a fixed week (Monday 2024-06-03).
var testMonday = time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)

// setupTest prepares the test environment for deterministic rendering.
// It disables colors to ensure consistent output across environments.
func setupTest(t *testing.T) {
	t.Helper()
	// Use ASCII profile to disable all color codes in output
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStorage creates a Storage instance with a temporary directory.
func createTestStorage(t *testing.T) *storage.Storage {
	t.Helper()
	store, err := storage.New(t.TempDir(), storage.Seeds{}, nil)
	if err != nil {
		t.Fatalf("failed to create test storage: %v", err)
	}
	return store
}

// createTestTracker creates a tracker over a fresh document, anchored to
// the fixed test week.
func createTestTracker(t *testing.T) *tracker.Tracker {
	t.Helper()
	return tracker.New(tracker.NewDocument(), testMonday, nil)
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}

// createTestApp builds an app with an attached empty tracker, sized wide.
func createTestApp(t *testing.T) *App {
	t.Helper()
	setupTest(t)

	app := NewApp(createTestStorage(t), createTestStyles(), &AppConfig{
		Keys:                  &config.KeysConfig{},
		ConfirmDeletions:      true,
		ConfirmQuitUnsaved:    true,
		NarrowLayoutThreshold: 100,
	}, nil)
	app.SetNowFunc(func() time.Time { return testMonday })
	app.attachDocument(tracker.NewDocument())
	return app
}
