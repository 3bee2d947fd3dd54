package tracker

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

// monday3 is a Monday; tests anchor the week here for determinism.
var monday3 = time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	return New(NewDocument(), monday3, nil)
}

func TestInitializeWeek_WeekStartIsMonday(t *testing.T) {
	tests := []struct {
		name  string
		today time.Time
		want  string
	}{
		{"Monday maps to itself", time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC), "2024-06-03"},
		{"Wednesday", time.Date(2024, 6, 5, 8, 0, 0, 0, time.UTC), "2024-06-03"},
		{"Sunday maps back six days", time.Date(2024, 6, 9, 23, 0, 0, 0, time.UTC), "2024-06-03"},
		{"Next Monday starts a new week", time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), "2024-06-10"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr := New(NewDocument(), tc.today, nil)
			if got := tr.WeekStart().Format(DateFormat); got != tc.want {
				t.Errorf("week start = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestInitializeWeek_MaterializesSevenDays(t *testing.T) {
	doc := NewDocument()
	doc.Habits = []string{"Sleep", "Read"}
	doc.TaskTemplates = []string{"A", "B"}

	tr := New(doc, monday3, nil)

	dates := tr.WeekDates()
	if len(dates) != 7 {
		t.Fatalf("expected 7 week dates, got %d", len(dates))
	}
	if dates[0] != "2024-06-03" || dates[6] != "2024-06-09" {
		t.Errorf("unexpected week range %s..%s", dates[0], dates[6])
	}

	for _, date := range dates {
		rec := doc.Day(date)
		if rec == nil {
			t.Fatalf("no record materialized for %s", date)
		}
		if len(rec.Tasks) != 2 {
			t.Errorf("%s: expected 2 tasks, got %d", date, len(rec.Tasks))
		}
		for _, h := range doc.Habits {
			if done, ok := rec.Habits[h]; !ok || done {
				t.Errorf("%s: habit %q should exist unchecked", date, h)
			}
		}
	}
}

func TestInitializeWeek_ReconcilesExistingDays(t *testing.T) {
	doc := NewDocument()
	doc.Habits = []string{"Sleep", "Read"}
	// A pre-existing day missing "Read" but carrying an orphan.
	doc.DailyData["2024-06-04"] = &DayRecord{
		Tasks:      []string{},
		TaskStatus: map[string]bool{},
		Habits:     map[string]bool{"Sleep": true, "Ghost": true},
	}

	tr := New(doc, monday3, nil)

	rec := tr.Document().Day("2024-06-04")
	if done, ok := rec.Habits["Read"]; !ok || done {
		t.Error("missing habit should be inserted as false")
	}
	if !rec.Habits["Sleep"] {
		t.Error("existing habit value must be preserved")
	}
	if _, ok := rec.Habits["Ghost"]; !ok {
		t.Error("orphaned habit keys must not be pruned")
	}
}

func TestAddHabit(t *testing.T) {
	tr := newTestTracker(t)

	if err := tr.AddHabit("  Sleep  "); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	if got := tr.Document().Habits; len(got) != 1 || got[0] != "Sleep" {
		t.Fatalf("habits = %v, want [Sleep]", got)
	}
	for _, date := range tr.WeekDates() {
		if done, ok := tr.Document().Day(date).Habits["Sleep"]; !ok || done {
			t.Errorf("%s: habit should exist unchecked", date)
		}
	}

	// Duplicate add is rejected and leaves exactly one occurrence.
	err := tr.AddHabit("Sleep")
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if got := tr.Document().Habits; len(got) != 1 {
		t.Errorf("habits = %v after duplicate add", got)
	}
}

func TestAddHabit_Validation(t *testing.T) {
	tr := newTestTracker(t)

	if err := tr.AddHabit("   "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("blank name: expected ErrEmptyName, got %v", err)
	}
	long := make([]byte, maxNameLen+1)
	for i := range long {
		long[i] = 'x'
	}
	if err := tr.AddHabit(string(long)); !errors.Is(err, ErrNameTooLong) {
		t.Errorf("long name: expected ErrNameTooLong, got %v", err)
	}
}

func TestRenameHabit_RoundTripRestoresState(t *testing.T) {
	tr := newTestTracker(t)
	for _, h := range []string{"Sleep", "Read", "Walk"} {
		if err := tr.AddHabit(h); err != nil {
			t.Fatal(err)
		}
	}
	tr.SetHabitDone("Read", "2024-06-05", true)

	if err := tr.RenameHabit("Read", "Study"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if got := tr.Document().Habits[1]; got != "Study" {
		t.Errorf("rename must preserve list position, habits = %v", tr.Document().Habits)
	}
	if !tr.Document().Day("2024-06-05").Habits["Study"] {
		t.Error("rename must carry the per-day value")
	}
	if _, ok := tr.Document().Day("2024-06-05").Habits["Read"]; ok {
		t.Error("old key must be removed")
	}

	if err := tr.RenameHabit("Study", "Read"); err != nil {
		t.Fatalf("rename back: %v", err)
	}
	want := []string{"Sleep", "Read", "Walk"}
	for i, h := range tr.Document().Habits {
		if h != want[i] {
			t.Fatalf("habits = %v, want %v", tr.Document().Habits, want)
		}
	}
	if !tr.Document().Day("2024-06-05").Habits["Read"] {
		t.Error("round-trip rename must restore the original value")
	}
}

func TestRenameHabit_Collisions(t *testing.T) {
	tr := newTestTracker(t)
	tr.AddHabit("Sleep")
	tr.AddHabit("Read")

	if err := tr.RenameHabit("Sleep", "Read"); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
	if err := tr.RenameHabit("Sleep", "Sleep"); err != nil {
		t.Errorf("rename to same name should be a silent no-op, got %v", err)
	}
}

func TestDeleteHabit_RemovesEverywhere(t *testing.T) {
	tr := newTestTracker(t)
	tr.AddHabit("Sleep")
	tr.AddHabit("Read")
	// A historical day outside the displayed week.
	tr.Document().DailyData["2024-01-01"] = &DayRecord{
		Tasks:      []string{},
		TaskStatus: map[string]bool{},
		Habits:     map[string]bool{"Read": true},
	}

	tr.DeleteHabit("Read")

	if contains(tr.Document().Habits, "Read") {
		t.Error("habit still in global list")
	}
	for date, rec := range tr.Document().DailyData {
		if _, ok := rec.Habits["Read"]; ok {
			t.Errorf("%s: habit key survived deletion", date)
		}
	}
}

func TestDeleteHabit_AbsentIsCleanNoOp(t *testing.T) {
	tr := newTestTracker(t)
	tr.AddHabit("Sleep")
	tr.MarkSaved()

	tr.DeleteHabit("Ghost")

	if tr.Dirty() {
		t.Error("deleting an absent habit must not dirty the document")
	}
	if got := tr.Document().Habits; len(got) != 1 || got[0] != "Sleep" {
		t.Errorf("habits = %v, want [Sleep]", got)
	}
}

func TestNormalize_ReplacesNullDayRecords(t *testing.T) {
	// Hand-edited files can carry explicit nulls for a date key.
	raw := []byte(`{"daily_data":{"2024-01-01":null},"habits":["Sleep"],"task_templates":["Plan"]}`)
	doc := NewDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	tr := New(doc, monday3, nil)

	rec := tr.Document().Day("2024-01-01")
	if rec == nil {
		t.Fatal("null day record should be replaced, not dropped")
	}
	if rec.Tasks == nil || rec.TaskStatus == nil || rec.Habits == nil {
		t.Fatal("replaced record must have every container allocated")
	}

	// Whole-store mutations walk every day record, the recovered one included.
	if err := tr.AddHabit("Read"); err != nil {
		t.Fatalf("AddHabit: %v", err)
	}
	if done, ok := rec.Habits["Read"]; !ok || done {
		t.Error("new habit should be inserted unchecked into the recovered day")
	}
	if err := tr.AddTaskTemplate("Review"); err != nil {
		t.Fatalf("AddTaskTemplate: %v", err)
	}
	if !rec.hasTask("Review") {
		t.Error("new template should reach the recovered day")
	}
	tr.DeleteHabit("Sleep")
	tr.ClearAllTasks()
}

func TestToggleTask_PairReturnsToOriginal(t *testing.T) {
	tr := newTestTracker(t)
	tr.AddTaskTemplate("A")
	date := "2024-06-03"

	before := len(tr.Document().Day(date).Tasks)
	first := tr.ToggleTask("A", date)
	second := tr.ToggleTask("A", date)

	if !first || second {
		t.Errorf("toggle pair = (%v, %v), want (true, false)", first, second)
	}
	if got := len(tr.Document().Day(date).Tasks); got != before {
		t.Errorf("toggling must not change the task list (%d -> %d)", before, got)
	}
}

func TestToggle_MissingDateIsLoggedNoOp(t *testing.T) {
	tr := newTestTracker(t)
	tr.AddHabit("Sleep")

	tr.SetHabitDone("Sleep", "1999-01-01", true)
	tr.SetTaskDone("A", "1999-01-01", true)

	if _, ok := tr.Document().DailyData["1999-01-01"]; ok {
		t.Error("toggling a missing date must not create a record")
	}
}

func TestAddTaskTemplate_PropagatesToAllDays(t *testing.T) {
	tr := newTestTracker(t)
	tr.Document().DailyData["2024-01-01"] = &DayRecord{
		Tasks:      []string{},
		TaskStatus: map[string]bool{},
		Habits:     map[string]bool{},
	}

	if err := tr.AddTaskTemplate("Plan"); err != nil {
		t.Fatal(err)
	}

	for date, rec := range tr.Document().DailyData {
		if !rec.hasTask("Plan") {
			t.Errorf("%s: template not pushed into day", date)
		}
		if done := rec.TaskStatus["Plan"]; done {
			t.Errorf("%s: new task should start unchecked", date)
		}
	}

	if err := tr.AddTaskTemplate("Plan"); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestDayTasks_AreIndependentOfTemplates(t *testing.T) {
	tr := newTestTracker(t)
	tr.AddTaskTemplate("Plan")
	date := "2024-06-04"

	if err := tr.AddDayTask(date, "Dentist"); err != nil {
		t.Fatal(err)
	}
	if contains(tr.Document().TaskTemplates, "Dentist") {
		t.Error("day task must not join the template list")
	}
	other := tr.Document().Day("2024-06-05")
	if other.hasTask("Dentist") {
		t.Error("day task must not leak into other days")
	}

	// Duplicate within the same day is rejected.
	if err := tr.AddDayTask(date, "Dentist"); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}

	// Renaming a day's copy leaves the template list alone.
	tr.SetTaskDone("Plan", date, true)
	if err := tr.RenameTask(date, "Plan", "Plan v2"); err != nil {
		t.Fatal(err)
	}
	rec := tr.Document().Day(date)
	if rec.Tasks[0] != "Plan v2" {
		t.Errorf("rename must preserve position, tasks = %v", rec.Tasks)
	}
	if !rec.TaskStatus["Plan v2"] {
		t.Error("rename must carry the completion flag")
	}
	if !contains(tr.Document().TaskTemplates, "Plan") {
		t.Error("template list must be untouched by a day rename")
	}

	// Deleting a day's copy leaves the template and other days alone.
	tr.DeleteTask(date, "Plan v2")
	if rec.hasTask("Plan v2") {
		t.Error("task still in day list after delete")
	}
	if _, ok := rec.TaskStatus["Plan v2"]; ok {
		t.Error("status key survived delete")
	}
	if !tr.Document().Day("2024-06-05").hasTask("Plan") {
		t.Error("other days must keep their copies")
	}
}

func TestClearAll(t *testing.T) {
	tr := newTestTracker(t)
	tr.AddHabit("Sleep")
	tr.AddTaskTemplate("Plan")
	tr.AddDayTask("2024-06-04", "Dentist")

	tr.ClearAllHabits()
	tr.ClearAllTasks()

	if len(tr.Document().Habits) != 0 || len(tr.Document().TaskTemplates) != 0 {
		t.Error("global lists not emptied")
	}
	for date, rec := range tr.Document().DailyData {
		if len(rec.Habits) != 0 || len(rec.Tasks) != 0 || len(rec.TaskStatus) != 0 {
			t.Errorf("%s: per-day state not emptied", date)
		}
	}
}

func TestDirtyTracking(t *testing.T) {
	tr := New(NewDocument(), monday3, nil)
	if !tr.Dirty() {
		t.Error("materializing a fresh week should mark the document dirty")
	}
	tr.MarkSaved()
	if tr.Dirty() {
		t.Error("MarkSaved should clear the dirty flag")
	}
	tr.AddHabit("Sleep")
	if !tr.Dirty() {
		t.Error("mutations should mark the document dirty")
	}

	// Re-initializing an already materialized, reconciled week is clean.
	tr.MarkSaved()
	tr.InitializeWeek(monday3)
	if tr.Dirty() {
		t.Error("re-initializing a settled week should not dirty the document")
	}
}
