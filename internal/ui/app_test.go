// Package ui provides terminal user interface components for the weektrack app.
// This file contains tests for the main App model, including layout behavior
// and the confirmation overlays.
package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"weektrack/internal/config"

	tea "github.com/charmbracelet/bubbletea"
)

func keyRunes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// TestApp_LayoutModeTransitions verifies layout mode changes based on width.
func TestApp_LayoutModeTransitions(t *testing.T) {
	app := createTestApp(t)

	tests := []struct {
		name         string
		width        int
		expectedMode LayoutMode
	}{
		{"Very narrow (40)", 40, LayoutNarrow},
		{"Narrow (60)", 60, LayoutNarrow},
		{"At threshold (99)", 99, LayoutNarrow},
		{"At threshold (100)", 100, LayoutWide},
		{"Wide (140)", 140, LayoutWide},
		{"Very wide (200)", 200, LayoutWide},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app.Update(tea.WindowSizeMsg{Width: tc.width, Height: 30})

			if app.layoutMode != tc.expectedMode {
				t.Errorf("Width %d: expected layout mode %v, got %v",
					tc.width, tc.expectedMode, app.layoutMode)
			}
		})
	}
}

// TestApp_NarrowLayoutShowsTabBar verifies the tab bar in narrow mode.
func TestApp_NarrowLayoutShowsTabBar(t *testing.T) {
	app := createTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 60, Height: 30})

	if app.activePane != PaneHabits {
		t.Errorf("Expected default active pane to be Habits")
	}

	view := app.View()

	if !strings.Contains(view, "[Habits]") {
		t.Error("Expected to see [Habits] tab highlighted in narrow mode")
	}
	if !strings.Contains(view, "Tasks") {
		t.Error("Expected to see Tasks tab in narrow mode")
	}
	if !strings.Contains(view, "Stats") {
		t.Error("Expected to see Stats tab in narrow mode")
	}
}

// TestApp_WideLayoutShowsAllPanes verifies all panes are shown in wide mode.
func TestApp_WideLayoutShowsAllPanes(t *testing.T) {
	app := createTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 140, Height: 30})

	if app.layoutMode != LayoutWide {
		t.Errorf("Expected LayoutWide at width 140, got %v", app.layoutMode)
	}

	view := app.View()

	for _, want := range []string{"HABITS", "TASKS", "STATS"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected to see %s pane in wide mode", want)
		}
	}
}

// TestApp_CustomThreshold verifies custom threshold configuration.
func TestApp_CustomThreshold(t *testing.T) {
	setupTest(t)
	app := NewApp(createTestStorage(t), createTestStyles(), &AppConfig{
		Keys:                  &config.KeysConfig{},
		NarrowLayoutThreshold: 120,
	}, nil)

	app.Update(tea.WindowSizeMsg{Width: 110, Height: 30})
	if app.layoutMode != LayoutNarrow {
		t.Errorf("Expected LayoutNarrow at width 110 with threshold 120, got %v", app.layoutMode)
	}

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	if app.layoutMode != LayoutWide {
		t.Errorf("Expected LayoutWide at width 120 with threshold 120, got %v", app.layoutMode)
	}
}

// TestApp_PaneSwitching verifies pane cycling and direct jumps.
func TestApp_PaneSwitching(t *testing.T) {
	app := createTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 60, Height: 30})

	app.switchPane()
	if app.activePane != PaneTasks {
		t.Errorf("Expected Tasks after first switch, got %v", app.activePane)
	}

	view := app.View()
	if !strings.Contains(view, "[Tasks]") {
		t.Error("Expected [Tasks] tab to be highlighted after switch")
	}

	app.switchPane()
	if app.activePane != PaneStats {
		t.Errorf("Expected Stats after second switch, got %v", app.activePane)
	}

	app.switchPane()
	if app.activePane != PaneHabits {
		t.Errorf("Expected pane to cycle back to Habits, got %v", app.activePane)
	}

	// Direct jump with number keys
	app.Update(keyRunes('2'))
	if app.activePane != PaneTasks {
		t.Errorf("Expected Tasks after pressing 2, got %v", app.activePane)
	}
}

// TestApp_DeleteHabitShowsConfirmation verifies the delete overlay flow.
func TestApp_DeleteHabitShowsConfirmation(t *testing.T) {
	app := createTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 140, Height: 30})

	if err := app.tracker.AddHabit("Exercise"); err != nil {
		t.Fatal(err)
	}

	app.Update(keyRunes('x'))

	if app.confirm == nil {
		t.Fatal("Expected confirmation overlay after delete key")
	}

	view := app.View()
	if !strings.Contains(view, "Delete habit?") {
		t.Error("Expected delete prompt in overlay")
	}
	if !strings.Contains(view, "Exercise") {
		t.Error("Expected habit name in overlay body")
	}

	// Cancel keeps the habit
	app.Update(keyRunes('n'))
	if app.confirm != nil {
		t.Error("Expected overlay dismissed after cancel")
	}
	if len(app.tracker.Document().Habits) != 1 {
		t.Error("Expected habit to survive canceled deletion")
	}

	// Confirm deletes
	app.Update(keyRunes('x'))
	app.Update(keyRunes('y'))
	if len(app.tracker.Document().Habits) != 0 {
		t.Error("Expected habit removed after confirmed deletion")
	}
}

// TestApp_DeleteWithoutConfirmation verifies direct deletion when the
// confirmation setting is off.
func TestApp_DeleteWithoutConfirmation(t *testing.T) {
	app := createTestApp(t)
	app.config.ConfirmDeletions = false
	app.Update(tea.WindowSizeMsg{Width: 140, Height: 30})

	if err := app.tracker.AddHabit("Exercise"); err != nil {
		t.Fatal(err)
	}

	app.Update(keyRunes('x'))

	if app.confirm != nil {
		t.Error("Expected no overlay with confirmations disabled")
	}
	if len(app.tracker.Document().Habits) != 0 {
		t.Error("Expected habit removed immediately")
	}
}

// TestApp_QuitUnsavedPrompts verifies the unsaved-changes quit prompt.
func TestApp_QuitUnsavedPrompts(t *testing.T) {
	app := createTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 140, Height: 30})

	// Fresh week materialization leaves the tracker dirty.
	if !app.tracker.Dirty() {
		t.Fatal("Expected tracker dirty after first week init")
	}

	app.Update(keyRunes('q'))
	if app.confirm == nil {
		t.Fatal("Expected quit confirmation with unsaved changes")
	}
	if !strings.Contains(app.View(), "Quit without saving?") {
		t.Error("Expected quit prompt in overlay")
	}

	// Cancel returns to the app
	app.Update(keyRunes('n'))
	if app.quitting {
		t.Error("Expected app still running after cancel")
	}

	// After a save, quit goes through without a prompt.
	app.tracker.MarkSaved()
	app.Update(keyRunes('q'))
	if app.confirm != nil {
		t.Error("Expected no prompt when there are no unsaved changes")
	}
	if !app.quitting {
		t.Error("Expected app to quit")
	}
}

// TestApp_SaveMarksClean verifies the save flow clears the dirty flag.
func TestApp_SaveMarksClean(t *testing.T) {
	app := createTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 140, Height: 30})

	if !app.tracker.Dirty() {
		t.Fatal("Expected dirty tracker")
	}

	app.Update(documentSavedMsg{})

	if app.tracker.Dirty() {
		t.Error("Expected tracker clean after save")
	}
	if !strings.Contains(app.View(), "Saved") {
		t.Error("Expected saved status message")
	}
}

// TestApp_StatusMessages verifies status routing and error styling.
func TestApp_StatusMessages(t *testing.T) {
	app := createTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 140, Height: 30})

	app.Update(statusMsg{text: "Added habit: Reading", isErr: false})
	if !strings.Contains(app.View(), "Added habit: Reading") {
		t.Error("Expected status message in view")
	}

	app.Update(statusMsg{text: "Add habit: habit already exists", isErr: true})
	if !app.statusErr {
		t.Error("Expected error status flagged")
	}
}

// TestApp_TitleBarShowsWeekAndDirty verifies the title bar content.
func TestApp_TitleBarShowsWeekAndDirty(t *testing.T) {
	app := createTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 140, Height: 30})

	view := app.View()
	if !strings.Contains(view, "2024-06-03 - 2024-06-09") {
		t.Error("Expected week range in title bar")
	}
	if !strings.Contains(view, "*") {
		t.Error("Expected dirty marker with unsaved changes")
	}

	app.tracker.MarkSaved()
	if strings.Contains(app.renderTitleBar(), "*") {
		t.Error("Expected no dirty marker after save")
	}
}

// TestApp_HelpOverlay verifies the help overlay opens and closes.
func TestApp_HelpOverlay(t *testing.T) {
	app := createTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 140, Height: 30})

	app.Update(keyRunes('?'))
	if !app.showHelp {
		t.Fatal("Expected help overlay open")
	}
	if !strings.Contains(app.View(), "Keyboard Shortcuts") {
		t.Error("Expected shortcut listing in help overlay")
	}

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if app.showHelp {
		t.Error("Expected help overlay closed after esc")
	}
}

// TestApp_LoadErrorSurfacesStatus verifies recovery warnings reach the
// status bar while the document still attaches.
func TestApp_LoadErrorSurfacesStatus(t *testing.T) {
	setupTest(t)
	app := NewApp(createTestStorage(t), createTestStyles(), nil, nil)
	app.SetNowFunc(func() time.Time { return testMonday })
	app.Update(tea.WindowSizeMsg{Width: 140, Height: 30})

	doc := createTestTracker(t).Document()
	app.Update(documentLoadedMsg{doc: doc, err: errors.New("recovered from tracker.json.bak")})

	if app.tracker == nil {
		t.Fatal("Expected tracker attached despite recovery warning")
	}
	if !strings.Contains(app.View(), "recovered") {
		t.Error("Expected recovery warning in status bar")
	}
}
