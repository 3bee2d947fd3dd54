package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestHabitsPane(t *testing.T) *HabitsPane {
	t.Helper()
	setupTest(t)
	pane := NewHabitsPane(createTestStyles())
	pane.SetTracker(createTestTracker(t))
	pane.SetSize(60, 20)
	pane.SetFocused(true)
	return pane
}

// TestHabitsPane_EmptyState verifies the empty state message.
func TestHabitsPane_EmptyState(t *testing.T) {
	pane := newTestHabitsPane(t)

	view := pane.View()
	if !strings.Contains(view, "No habits yet.") {
		t.Error("Expected empty state message")
	}
	if !strings.Contains(view, "HABITS") {
		t.Error("Expected pane title")
	}
}

// TestHabitsPane_GridNavigation verifies cursor movement over the week grid.
func TestHabitsPane_GridNavigation(t *testing.T) {
	pane := newTestHabitsPane(t)
	for _, h := range []string{"Exercise", "Reading", "Meditate"} {
		if err := pane.tracker.AddHabit(h); err != nil {
			t.Fatal(err)
		}
	}

	if pane.row != 0 || pane.col != 0 {
		t.Fatalf("Expected cursor at origin, got (%d,%d)", pane.row, pane.col)
	}

	pane.Update(keyRunes('j'))
	pane.Update(keyRunes('j'))
	if pane.row != 2 {
		t.Errorf("Expected row 2 after two downs, got %d", pane.row)
	}

	pane.Update(keyRunes('j'))
	if pane.row != 2 {
		t.Errorf("Expected row clamped at 2, got %d", pane.row)
	}

	pane.Update(keyRunes('l'))
	pane.Update(keyRunes('l'))
	if pane.col != 2 {
		t.Errorf("Expected col 2 after two rights, got %d", pane.col)
	}

	for i := 0; i < 10; i++ {
		pane.Update(keyRunes('l'))
	}
	if pane.col != 6 {
		t.Errorf("Expected col clamped at 6, got %d", pane.col)
	}

	pane.Update(keyRunes('k'))
	pane.Update(keyRunes('h'))
	if pane.row != 1 || pane.col != 5 {
		t.Errorf("Expected (1,5), got (%d,%d)", pane.row, pane.col)
	}
}

// TestHabitsPane_ToggleCell verifies toggling the cell under the cursor.
func TestHabitsPane_ToggleCell(t *testing.T) {
	pane := newTestHabitsPane(t)
	if err := pane.tracker.AddHabit("Exercise"); err != nil {
		t.Fatal(err)
	}

	pane.Update(keyRunes('l')) // Tuesday
	pane.Update(keyRunes('d'))

	tuesday := pane.tracker.WeekDates()[1]
	rec := pane.tracker.Document().Day(tuesday)
	if !rec.Habits["Exercise"] {
		t.Error("Expected Exercise done on Tuesday after toggle")
	}

	pane.Update(keyRunes('d'))
	if rec.Habits["Exercise"] {
		t.Error("Expected Exercise undone after second toggle")
	}
}

// TestHabitsPane_AddHabitFlow verifies the add input flow.
func TestHabitsPane_AddHabitFlow(t *testing.T) {
	pane := newTestHabitsPane(t)

	pane.Update(keyRunes('a'))
	if !pane.IsEditing() {
		t.Fatal("Expected input mode after add key")
	}

	for _, r := range "Journal" {
		pane.Update(keyRunes(r))
	}
	cmd := pane.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if pane.IsEditing() {
		t.Error("Expected input mode exited after confirm")
	}
	habits := pane.tracker.Document().Habits
	if len(habits) != 1 || habits[0] != "Journal" {
		t.Errorf("Expected [Journal], got %v", habits)
	}
	if cmd == nil {
		t.Fatal("Expected status command after add")
	}
	if msg, ok := cmd().(statusMsg); !ok || !strings.Contains(msg.text, "Journal") {
		t.Errorf("Expected status naming the habit, got %v", msg)
	}
}

// TestHabitsPane_AddDuplicateReportsError verifies duplicate names surface
// an error status and leave the list unchanged.
func TestHabitsPane_AddDuplicateReportsError(t *testing.T) {
	pane := newTestHabitsPane(t)
	if err := pane.tracker.AddHabit("Exercise"); err != nil {
		t.Fatal(err)
	}

	pane.Update(keyRunes('a'))
	for _, r := range "Exercise" {
		pane.Update(keyRunes(r))
	}
	cmd := pane.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("Expected status command for duplicate")
	}
	msg, ok := cmd().(statusMsg)
	if !ok || !msg.isErr {
		t.Errorf("Expected error status for duplicate, got %v", msg)
	}
	if len(pane.tracker.Document().Habits) != 1 {
		t.Error("Expected habit list unchanged after duplicate add")
	}
}

// TestHabitsPane_RenameFlow verifies the rename input flow keeps position.
func TestHabitsPane_RenameFlow(t *testing.T) {
	pane := newTestHabitsPane(t)
	for _, h := range []string{"Exercise", "Reading"} {
		if err := pane.tracker.AddHabit(h); err != nil {
			t.Fatal(err)
		}
	}

	pane.row = 0
	pane.Update(keyRunes('r'))
	if !pane.IsEditing() {
		t.Fatal("Expected input mode after rename key")
	}
	if pane.input.Value() != "Exercise" {
		t.Errorf("Expected input prefilled with current name, got %q", pane.input.Value())
	}

	pane.input.SetValue("Morning run")
	pane.Update(tea.KeyMsg{Type: tea.KeyEnter})

	habits := pane.tracker.Document().Habits
	if habits[0] != "Morning run" || habits[1] != "Reading" {
		t.Errorf("Expected rename in place, got %v", habits)
	}
}

// TestHabitsPane_CancelInput verifies esc leaves input mode untouched.
func TestHabitsPane_CancelInput(t *testing.T) {
	pane := newTestHabitsPane(t)

	pane.Update(keyRunes('a'))
	for _, r := range "Half" {
		pane.Update(keyRunes(r))
	}
	pane.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if pane.IsEditing() {
		t.Error("Expected input mode exited after cancel")
	}
	if len(pane.tracker.Document().Habits) != 0 {
		t.Error("Expected no habit added after cancel")
	}
}

// TestHabitsPane_ViewShowsGridAndRates verifies grid rendering.
func TestHabitsPane_ViewShowsGridAndRates(t *testing.T) {
	pane := newTestHabitsPane(t)
	if err := pane.tracker.AddHabit("Exercise"); err != nil {
		t.Fatal(err)
	}
	dates := pane.tracker.WeekDates()
	pane.tracker.SetHabitDone("Exercise", dates[0], true)
	pane.tracker.SetHabitDone("Exercise", dates[1], true)
	pane.tracker.SetHabitDone("Exercise", dates[2], true)

	view := pane.View()

	if !strings.Contains(view, "Exercise") {
		t.Error("Expected habit name in grid")
	}
	// 3 of 7 days: truncated 42%.
	if !strings.Contains(view, "42%") {
		t.Errorf("Expected weekly rate 42%% in view:\n%s", view)
	}
	// Cursor cell is bracketed.
	if !strings.Contains(view, "[") {
		t.Error("Expected bracketed cursor cell")
	}
}

// TestHabitsPane_DeleteSelectedClampsCursor verifies cursor stays in bounds.
func TestHabitsPane_DeleteSelectedClampsCursor(t *testing.T) {
	pane := newTestHabitsPane(t)
	for _, h := range []string{"A", "B"} {
		if err := pane.tracker.AddHabit(h); err != nil {
			t.Fatal(err)
		}
	}

	pane.row = 1
	pane.DeleteSelected()

	if pane.row != 0 {
		t.Errorf("Expected cursor clamped to 0, got %d", pane.row)
	}
	if len(pane.tracker.Document().Habits) != 1 {
		t.Error("Expected one habit left")
	}
}

// TestHabitsPane_WheelScroll verifies mouse wheel moves the row cursor.
func TestHabitsPane_WheelScroll(t *testing.T) {
	pane := newTestHabitsPane(t)
	for _, h := range []string{"A", "B", "C"} {
		if err := pane.tracker.AddHabit(h); err != nil {
			t.Fatal(err)
		}
	}

	pane.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	pane.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if pane.row != 2 {
		t.Errorf("Expected row 2 after two wheel downs, got %d", pane.row)
	}

	pane.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if pane.row != 1 {
		t.Errorf("Expected row 1 after wheel up, got %d", pane.row)
	}
}
