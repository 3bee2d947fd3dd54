// Package tracker implements the weekly habit-and-task data model: a flat
// date-keyed store of day records, the global habit and task-template
// lists, and the derived completion metrics. All operations are in-memory
// and synchronous; persistence lives in the storage package.
package tracker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const maxNameLen = 60

var (
	// ErrEmptyName is returned when an add or rename receives a blank name.
	ErrEmptyName = errors.New("name is required")

	// ErrDuplicateName is returned when an add or rename would collide with
	// an existing name in the same scope. The store is left unchanged.
	ErrDuplicateName = errors.New("name already exists")

	// ErrNameTooLong is returned when a name exceeds the display limit.
	ErrNameTooLong = fmt.Errorf("name too long (max %d)", maxNameLen)
)

// Tracker owns a document and the week window derived from "today".
// It is not safe for concurrent use; there is exactly one mutator.
type Tracker struct {
	doc       *Document
	weekStart time.Time
	dirty     bool
	log       logrus.FieldLogger
}

// New creates a tracker over doc anchored on the Monday on or before
// today, and materializes the 7 day records of that week. A nil logger
// discards internal-consistency warnings.
func New(doc *Document, today time.Time, log logrus.FieldLogger) *Tracker {
	if doc == nil {
		doc = NewDocument()
	}
	doc.Normalize()
	if log == nil {
		logger := logrus.New()
		logger.SetOutput(nopWriter{})
		log = logger
	}
	t := &Tracker{doc: doc, log: log}
	t.InitializeWeek(today)
	return t
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

// Document exposes the underlying store for read-only consumers
// (reports, export). Mutations must go through tracker operations.
func (t *Tracker) Document() *Document {
	return t.doc
}

// WeekStart returns the Monday anchoring the displayed week.
func (t *Tracker) WeekStart() time.Time {
	return t.weekStart
}

// WeekDates returns the 7 YYYY-MM-DD dates of the displayed week in order.
func (t *Tracker) WeekDates() []string {
	dates := make([]string, 7)
	for i := 0; i < 7; i++ {
		dates[i] = t.weekStart.AddDate(0, 0, i).Format(DateFormat)
	}
	return dates
}

// Dirty reports whether the document has unsaved changes.
func (t *Tracker) Dirty() bool {
	return t.dirty
}

// MarkSaved clears the dirty flag after a successful save.
func (t *Tracker) MarkSaved() {
	t.dirty = false
}

// InitializeWeek computes the week start (the Monday on or before today)
// and materializes a day record for each of the 7 dates. Existing records
// are reconciled: habits missing from a day's map are inserted as false.
// Stale keys for deleted habits are never pruned here; metric readers
// tolerate orphaned entries instead.
func (t *Tracker) InitializeWeek(today time.Time) {
	y, m, d := today.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	t.weekStart = day.AddDate(0, 0, -((int(day.Weekday()) + 6) % 7))

	for _, date := range t.WeekDates() {
		rec := t.doc.Day(date)
		if rec == nil {
			t.doc.DailyData[date] = newDayRecord(t.doc.TaskTemplates, t.doc.Habits)
			t.dirty = true
			continue
		}
		for _, h := range t.doc.Habits {
			if _, ok := rec.Habits[h]; !ok {
				rec.Habits[h] = false
				t.dirty = true
			}
		}
	}
}

// ============================================================================
// Habits
// ============================================================================

// SetHabitDone sets a habit's flag for a date. A missing date is an
// internal-consistency error: it is logged and ignored, since every date
// the UI shows was materialized by InitializeWeek.
func (t *Tracker) SetHabitDone(name, date string, done bool) {
	rec := t.doc.Day(date)
	if rec == nil {
		t.log.WithFields(logrus.Fields{"habit": name, "date": date}).
			Warn("toggle habit: no record for date")
		return
	}
	rec.Habits[name] = done
	t.dirty = true
}

// ToggleHabit flips a habit's flag for a date and returns the new value.
func (t *Tracker) ToggleHabit(name, date string) bool {
	rec := t.doc.Day(date)
	if rec == nil {
		t.log.WithFields(logrus.Fields{"habit": name, "date": date}).
			Warn("toggle habit: no record for date")
		return false
	}
	rec.Habits[name] = !rec.Habits[name]
	t.dirty = true
	return rec.Habits[name]
}

// AddHabit appends a habit to the global list and inserts an unchecked
// entry into every day record, past weeks included.
func (t *Tracker) AddHabit(name string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	if contains(t.doc.Habits, name) {
		t.log.WithField("habit", name).Warn("add habit: duplicate name")
		return fmt.Errorf("habit %q: %w", name, ErrDuplicateName)
	}

	t.doc.Habits = append(t.doc.Habits, name)
	for _, rec := range t.doc.DailyData {
		rec.Habits[name] = false
	}
	t.dirty = true
	return nil
}

// RenameHabit replaces oldName with newName at its original list position
// and moves the per-day flags, preserving their values. Renaming to the
// same name is a no-op.
func (t *Tracker) RenameHabit(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if err := validateName(newName); err != nil {
		return err
	}
	if newName == oldName {
		return nil
	}
	if contains(t.doc.Habits, newName) {
		t.log.WithFields(logrus.Fields{"from": oldName, "to": newName}).
			Warn("rename habit: duplicate name")
		return fmt.Errorf("habit %q: %w", newName, ErrDuplicateName)
	}

	for i, h := range t.doc.Habits {
		if h == oldName {
			t.doc.Habits[i] = newName
			break
		}
	}
	for _, rec := range t.doc.DailyData {
		done := rec.Habits[oldName]
		delete(rec.Habits, oldName)
		rec.Habits[newName] = done
	}
	t.dirty = true
	return nil
}

// DeleteHabit removes a habit from the global list and from every day
// record's map. Absence in a given record is ignored.
func (t *Tracker) DeleteHabit(name string) {
	removed := false
	for i, h := range t.doc.Habits {
		if h == name {
			t.doc.Habits = append(t.doc.Habits[:i], t.doc.Habits[i+1:]...)
			removed = true
			break
		}
	}
	for _, rec := range t.doc.DailyData {
		if _, ok := rec.Habits[name]; ok {
			delete(rec.Habits, name)
			removed = true
		}
	}
	if removed {
		t.dirty = true
	}
}

// ClearAllHabits empties the global habit list and every day's habit map.
func (t *Tracker) ClearAllHabits() {
	t.doc.Habits = []string{}
	for _, rec := range t.doc.DailyData {
		rec.Habits = make(map[string]bool)
	}
	t.dirty = true
}

// ============================================================================
// Tasks
// ============================================================================

// SetTaskDone sets a task's completion flag for a date. The status map may
// carry keys for tasks no longer in the day's list; writers do not care,
// and metric readers exclude such orphans from denominators.
func (t *Tracker) SetTaskDone(name, date string, done bool) {
	rec := t.doc.Day(date)
	if rec == nil {
		t.log.WithFields(logrus.Fields{"task": name, "date": date}).
			Warn("toggle task: no record for date")
		return
	}
	rec.TaskStatus[name] = done
	t.dirty = true
}

// ToggleTask flips a task's flag for a date and returns the new value.
func (t *Tracker) ToggleTask(name, date string) bool {
	rec := t.doc.Day(date)
	if rec == nil {
		t.log.WithFields(logrus.Fields{"task": name, "date": date}).
			Warn("toggle task: no record for date")
		return false
	}
	rec.TaskStatus[name] = !rec.TaskStatus[name]
	t.dirty = true
	return rec.TaskStatus[name]
}

// AddTaskTemplate appends a task to the global template list and pushes it
// into every day record's task list and status map. Days that already
// carry a task with that name keep their copy untouched.
func (t *Tracker) AddTaskTemplate(name string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	if contains(t.doc.TaskTemplates, name) {
		t.log.WithField("task", name).Warn("add template: duplicate name")
		return fmt.Errorf("task %q: %w", name, ErrDuplicateName)
	}

	t.doc.TaskTemplates = append(t.doc.TaskTemplates, name)
	for _, rec := range t.doc.DailyData {
		if rec.hasTask(name) {
			continue
		}
		rec.Tasks = append(rec.Tasks, name)
		rec.TaskStatus[name] = false
	}
	t.dirty = true
	return nil
}

// AddDayTask appends a task to a single day's list, leaving the template
// list and all other days alone.
func (t *Tracker) AddDayTask(date, name string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	rec := t.doc.Day(date)
	if rec == nil {
		t.log.WithFields(logrus.Fields{"task": name, "date": date}).
			Warn("add day task: no record for date")
		return nil
	}
	if rec.hasTask(name) {
		t.log.WithFields(logrus.Fields{"task": name, "date": date}).
			Warn("add day task: duplicate name")
		return fmt.Errorf("task %q: %w", name, ErrDuplicateName)
	}

	rec.Tasks = append(rec.Tasks, name)
	rec.TaskStatus[name] = false
	t.dirty = true
	return nil
}

// RenameTask renames a task within a single day, preserving its list
// position and completion flag. The template list is untouched: a day's
// copy is independent of the template after creation.
func (t *Tracker) RenameTask(date, oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if err := validateName(newName); err != nil {
		return err
	}
	if newName == oldName {
		return nil
	}
	rec := t.doc.Day(date)
	if rec == nil {
		t.log.WithFields(logrus.Fields{"task": oldName, "date": date}).
			Warn("rename task: no record for date")
		return nil
	}
	if rec.hasTask(newName) {
		t.log.WithFields(logrus.Fields{"from": oldName, "to": newName, "date": date}).
			Warn("rename task: duplicate name")
		return fmt.Errorf("task %q: %w", newName, ErrDuplicateName)
	}

	for i, task := range rec.Tasks {
		if task == oldName {
			rec.Tasks[i] = newName
			break
		}
	}
	done := rec.TaskStatus[oldName]
	delete(rec.TaskStatus, oldName)
	rec.TaskStatus[newName] = done
	t.dirty = true
	return nil
}

// DeleteTask removes a task from a single day's list and status map.
func (t *Tracker) DeleteTask(date, name string) {
	rec := t.doc.Day(date)
	if rec == nil {
		t.log.WithFields(logrus.Fields{"task": name, "date": date}).
			Warn("delete task: no record for date")
		return
	}
	for i, task := range rec.Tasks {
		if task == name {
			rec.Tasks = append(rec.Tasks[:i], rec.Tasks[i+1:]...)
			break
		}
	}
	delete(rec.TaskStatus, name)
	t.dirty = true
}

// ClearAllTasks empties the global template list and every day's task
// list and status map.
func (t *Tracker) ClearAllTasks() {
	t.doc.TaskTemplates = []string{}
	for _, rec := range t.doc.DailyData {
		rec.Tasks = []string{}
		rec.TaskStatus = make(map[string]bool)
	}
	t.dirty = true
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > maxNameLen {
		return ErrNameTooLong
	}
	return nil
}
