// Package export writes the current week as a two-sheet spreadsheet:
// habits by day and tasks by day. Export is one-way; the workbook is a
// snapshot, never read back.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"weektrack/internal/tracker"
)

const (
	habitsSheet = "Habits"
	tasksSheet  = "Tasks"

	// placeholder marks a task that does not apply to a given day.
	placeholder = "-"
)

// WriteWorkbook renders the tracker's displayed week into an .xlsx file
// at path. The tracker is only read; a failed export leaves it untouched.
func WriteWorkbook(tr *tracker.Tracker, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	headers := dayHeaders(tr.WeekDates())

	if err := f.SetSheetName("Sheet1", habitsSheet); err != nil {
		return fmt.Errorf("create %s sheet: %w", habitsSheet, err)
	}
	if err := fillSheet(f, habitsSheet, "Habit", headers, habitRows(tr)); err != nil {
		return err
	}

	if _, err := f.NewSheet(tasksSheet); err != nil {
		return fmt.Errorf("create %s sheet: %w", tasksSheet, err)
	}
	if err := fillSheet(f, tasksSheet, "Task", headers, taskRows(tr)); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// dayHeaders renders the 7 column headers, "Monday (2024-06-03)" style.
func dayHeaders(dates []string) []string {
	headers := make([]string, len(dates))
	for i, date := range dates {
		headers[i] = date
		if d, err := time.Parse(tracker.DateFormat, date); err == nil {
			headers[i] = fmt.Sprintf("%s (%s)", d.Weekday(), date)
		}
	}
	return headers
}

// habitRows builds one row per habit: name, then a done/not-done cell per day.
func habitRows(tr *tracker.Tracker) [][]string {
	doc := tr.Document()
	dates := tr.WeekDates()

	rows := make([][]string, 0, len(doc.Habits))
	for _, habit := range doc.Habits {
		row := make([]string, 0, len(dates)+1)
		row = append(row, habit)
		for _, date := range dates {
			done := false
			if rec := doc.Day(date); rec != nil {
				done = rec.Habits[habit]
			}
			row = append(row, statusCell(habit, done))
		}
		rows = append(rows, row)
	}
	return rows
}

// taskRows builds one row per task in the union of the week's task lists:
// template order first, then day-specific extras in first-seen order.
// Days where the task does not apply get the placeholder.
func taskRows(tr *tracker.Tracker) [][]string {
	doc := tr.Document()
	dates := tr.WeekDates()

	seen := make(map[string]bool, len(doc.TaskTemplates))
	union := make([]string, 0, len(doc.TaskTemplates))
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			union = append(union, name)
		}
	}
	for _, t := range doc.TaskTemplates {
		add(t)
	}
	for _, date := range dates {
		if rec := doc.Day(date); rec != nil {
			for _, t := range rec.Tasks {
				add(t)
			}
		}
	}

	rows := make([][]string, 0, len(union))
	for _, task := range union {
		row := make([]string, 0, len(dates)+1)
		row = append(row, task)
		for _, date := range dates {
			rec := doc.Day(date)
			if rec == nil || !taskInList(rec.Tasks, task) {
				row = append(row, placeholder)
				continue
			}
			row = append(row, statusCell(task, rec.TaskStatus[task]))
		}
		rows = append(rows, row)
	}
	return rows
}

func taskInList(tasks []string, name string) bool {
	for _, t := range tasks {
		if t == name {
			return true
		}
	}
	return false
}

func statusCell(name string, done bool) string {
	if done {
		return "Done: " + name
	}
	return "Not done: " + name
}

// fillSheet writes a header row plus data rows, then sizes every column
// to its longest cell.
func fillSheet(f *excelize.File, sheet, corner string, headers []string, rows [][]string) error {
	widths := make([]int, len(headers)+1)

	setCell := func(col, row int, value string) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if len(value) > widths[col-1] {
			widths[col-1] = len(value)
		}
		return f.SetCellValue(sheet, cell, value)
	}

	if err := setCell(1, 1, corner); err != nil {
		return fmt.Errorf("write %s sheet: %w", sheet, err)
	}
	for i, h := range headers {
		if err := setCell(i+2, 1, h); err != nil {
			return fmt.Errorf("write %s sheet: %w", sheet, err)
		}
	}
	for r, row := range rows {
		for c, value := range row {
			if err := setCell(c+1, r+2, value); err != nil {
				return fmt.Errorf("write %s sheet: %w", sheet, err)
			}
		}
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(w+2)); err != nil {
			return fmt.Errorf("size %s columns: %w", sheet, err)
		}
	}
	return nil
}
