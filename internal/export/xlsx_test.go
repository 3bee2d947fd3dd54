package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"weektrack/internal/tracker"
)

// monday3 anchors tests on the week of 2024-06-03.
var monday3 = time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)

func exportedWorkbook(t *testing.T, tr *tracker.Tracker) *excelize.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "week.xlsx")
	if err := WriteWorkbook(tr, path); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open exported workbook: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func cellValue(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, cell)
	if err != nil {
		t.Fatalf("GetCellValue(%s!%s): %v", sheet, cell, err)
	}
	return v
}

func TestWriteWorkbook_Sheets(t *testing.T) {
	tr := tracker.New(tracker.NewDocument(), monday3, nil)
	f := exportedWorkbook(t, tr)

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Habits" || sheets[1] != "Tasks" {
		t.Errorf("sheets = %v, want [Habits Tasks]", sheets)
	}
}

func TestWriteWorkbook_DayHeaders(t *testing.T) {
	tr := tracker.New(tracker.NewDocument(), monday3, nil)
	f := exportedWorkbook(t, tr)

	if got := cellValue(t, f, "Habits", "B1"); got != "Monday (2024-06-03)" {
		t.Errorf("first day header = %q, want %q", got, "Monday (2024-06-03)")
	}
	if got := cellValue(t, f, "Habits", "H1"); got != "Sunday (2024-06-09)" {
		t.Errorf("last day header = %q, want %q", got, "Sunday (2024-06-09)")
	}
}

func TestWriteWorkbook_HabitCells(t *testing.T) {
	tr := tracker.New(tracker.NewDocument(), monday3, nil)
	if err := tr.AddHabit("Sleep"); err != nil {
		t.Fatal(err)
	}
	tr.SetHabitDone("Sleep", "2024-06-03", true)

	f := exportedWorkbook(t, tr)

	if got := cellValue(t, f, "Habits", "A2"); got != "Sleep" {
		t.Errorf("habit name cell = %q, want Sleep", got)
	}
	if got := cellValue(t, f, "Habits", "B2"); got != "Done: Sleep" {
		t.Errorf("Monday cell = %q, want %q", got, "Done: Sleep")
	}
	if got := cellValue(t, f, "Habits", "C2"); got != "Not done: Sleep" {
		t.Errorf("Tuesday cell = %q, want %q", got, "Not done: Sleep")
	}
}

func TestWriteWorkbook_TaskUnionAndPlaceholders(t *testing.T) {
	tr := tracker.New(tracker.NewDocument(), monday3, nil)
	if err := tr.AddTaskTemplate("Plan"); err != nil {
		t.Fatal(err)
	}
	// Day-specific task only on Tuesday.
	if err := tr.AddDayTask("2024-06-04", "Dentist"); err != nil {
		t.Fatal(err)
	}
	tr.SetTaskDone("Dentist", "2024-06-04", true)

	f := exportedWorkbook(t, tr)

	// Template first, day extra second.
	if got := cellValue(t, f, "Tasks", "A2"); got != "Plan" {
		t.Errorf("first task row = %q, want Plan", got)
	}
	if got := cellValue(t, f, "Tasks", "A3"); got != "Dentist" {
		t.Errorf("second task row = %q, want Dentist", got)
	}

	// Dentist applies only to Tuesday; other days carry the placeholder.
	if got := cellValue(t, f, "Tasks", "B3"); got != "-" {
		t.Errorf("Monday Dentist cell = %q, want -", got)
	}
	if got := cellValue(t, f, "Tasks", "C3"); got != "Done: Dentist" {
		t.Errorf("Tuesday Dentist cell = %q, want %q", got, "Done: Dentist")
	}
}
