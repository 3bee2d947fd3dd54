// Package ui provides terminal user interface components for the weektrack app.
package ui

import (
	"fmt"
	"strings"
	"time"

	"weektrack/internal/config"
	"weektrack/internal/tracker"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// TasksPane shows the task list for one weekday, with a selector to move
// between the days of the displayed week.
type TasksPane struct {
	tracker *tracker.Tracker
	dayIdx  int // weekday index, 0 = Monday
	cursor  int
	focused bool
	width   int
	height  int
	mode    inputMode
	input   textinput.Model
	styles  *Styles

	// Key bindings
	keys      TaskKeyMap
	inputKeys InputKeyMap
}

// NewTasksPane creates a new tasks pane.
func NewTasksPane(styles *Styles) *TasksPane {
	return NewTasksPaneWithKeys(styles, &config.KeysConfig{})
}

// NewTasksPaneWithKeys creates a new tasks pane with custom key bindings.
func NewTasksPaneWithKeys(styles *Styles, keyCfg *config.KeysConfig) *TasksPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 60
	ti.Width = 40

	return &TasksPane{
		input:     ti,
		styles:    styles,
		keys:      NewTaskKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
}

// SetTracker attaches the tracker.
func (p *TasksPane) SetTracker(tr *tracker.Tracker) {
	p.tracker = tr
	p.clampCursor()
}

// SetDay selects a weekday by index (0 = Monday).
func (p *TasksPane) SetDay(idx int) {
	if idx < 0 {
		idx = 0
	}
	if idx > 6 {
		idx = 6
	}
	p.dayIdx = idx
	p.clampCursor()
}

// SetSize sets the pane dimensions.
func (p *TasksPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-4)
}

// SetFocused sets whether this pane is focused.
func (p *TasksPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *TasksPane) IsFocused() bool {
	return p.focused
}

// IsEditing returns whether the pane is showing a text input.
func (p *TasksPane) IsEditing() bool {
	return p.mode != inputNone
}

// SelectedDate returns the date of the selected weekday.
func (p *TasksPane) SelectedDate() string {
	if p.tracker == nil {
		return ""
	}
	return p.tracker.WeekDates()[p.dayIdx]
}

// SelectedTask returns the task under the cursor.
func (p *TasksPane) SelectedTask() (string, bool) {
	tasks := p.dayTasks()
	if p.cursor < 0 || p.cursor >= len(tasks) {
		return "", false
	}
	return tasks[p.cursor], true
}

// DeleteSelected removes the task under the cursor from the selected day.
func (p *TasksPane) DeleteSelected() tea.Cmd {
	name, ok := p.SelectedTask()
	if !ok {
		return statusCmd("No task selected", true)
	}
	p.tracker.DeleteTask(p.SelectedDate(), name)
	p.clampCursor()
	return statusCmd("Deleted task: "+name, false)
}

// ClearAll removes every task and template.
func (p *TasksPane) ClearAll() tea.Cmd {
	if p.tracker == nil {
		return nil
	}
	p.tracker.ClearAllTasks()
	p.clampCursor()
	return statusCmd("Cleared all tasks", false)
}

// dayTasks returns the task list for the selected day.
func (p *TasksPane) dayTasks() []string {
	if p.tracker == nil {
		return nil
	}
	rec := p.tracker.Document().Day(p.SelectedDate())
	if rec == nil {
		return nil
	}
	return rec.Tasks
}

func (p *TasksPane) clampCursor() {
	n := len(p.dayTasks())
	if p.cursor >= n {
		p.cursor = max(0, n-1)
	}
}

// Update handles messages for the tasks pane.
func (p *TasksPane) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	if p.mode != inputNone {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch {
			case key.Matches(msg, p.inputKeys.Confirm):
				return p.commitInput()

			case key.Matches(msg, p.inputKeys.Cancel):
				p.resetInput()
				return nil
			}
		}

		p.input, cmd = p.input.Update(msg)
		return cmd
	}

	if !p.focused || p.tracker == nil {
		return nil
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return p.handleMouse(msg)

	case tea.KeyMsg:
		tasks := p.dayTasks()

		switch {
		case key.Matches(msg, p.keys.Down):
			if len(tasks) > 0 {
				p.cursor = min(p.cursor+1, len(tasks)-1)
			}

		case key.Matches(msg, p.keys.Up):
			if len(tasks) > 0 {
				p.cursor = max(p.cursor-1, 0)
			}

		case key.Matches(msg, p.keys.Left):
			p.SetDay(p.dayIdx - 1)

		case key.Matches(msg, p.keys.Right):
			p.SetDay(p.dayIdx + 1)

		case key.Matches(msg, p.keys.Top):
			p.cursor = 0

		case key.Matches(msg, p.keys.Bottom):
			if len(tasks) > 0 {
				p.cursor = len(tasks) - 1
			}

		case key.Matches(msg, p.keys.Add):
			p.mode = inputAdd
			p.input.Placeholder = "Task for this day"
			p.input.Focus()
			return textinput.Blink

		case key.Matches(msg, p.keys.AddTemplate):
			p.mode = inputAddTemplate
			p.input.Placeholder = "Task for every day this week"
			p.input.Focus()
			return textinput.Blink

		case key.Matches(msg, p.keys.Rename):
			if name, ok := p.SelectedTask(); ok {
				p.mode = inputRename
				p.input.SetValue(name)
				p.input.CursorEnd()
				p.input.Focus()
				return textinput.Blink
			}

		case key.Matches(msg, p.keys.Toggle):
			if name, ok := p.SelectedTask(); ok {
				p.tracker.ToggleTask(name, p.SelectedDate())
			}

		case key.Matches(msg, p.keys.Delete):
			// Reached only when confirmations are disabled; otherwise
			// the app intercepts this key and shows an overlay.
			if len(tasks) > 0 {
				return p.DeleteSelected()
			}
		}
	}

	return nil
}

// commitInput applies the pending add, add-template, or rename.
func (p *TasksPane) commitInput() tea.Cmd {
	name := strings.TrimSpace(p.input.Value())
	mode := p.mode
	p.resetInput()

	if name == "" {
		return nil
	}

	switch mode {
	case inputAdd:
		if err := p.tracker.AddDayTask(p.SelectedDate(), name); err != nil {
			return statusCmd("Add task: "+err.Error(), true)
		}
		p.cursor = len(p.dayTasks()) - 1
		return statusCmd("Added task: "+name, false)

	case inputAddTemplate:
		if err := p.tracker.AddTaskTemplate(name); err != nil {
			return statusCmd("Add to all days: "+err.Error(), true)
		}
		return statusCmd("Added to every day: "+name, false)

	case inputRename:
		old, ok := p.SelectedTask()
		if !ok {
			return nil
		}
		if err := p.tracker.RenameTask(p.SelectedDate(), old, name); err != nil {
			return statusCmd("Rename task: "+err.Error(), true)
		}
		return statusCmd("Renamed task to: "+name, false)
	}

	return nil
}

// resetInput leaves input mode.
func (p *TasksPane) resetInput() {
	p.mode = inputNone
	p.input.Reset()
	p.input.Blur()
}

// handleMouse processes mouse events for the tasks pane.
func (p *TasksPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	tasks := p.dayTasks()
	if len(tasks) == 0 {
		return nil
	}

	// Rows above the list: title (1) + separator (1) + day selector (1) + blank (1).
	const headerRows = 4

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.cursor = max(p.cursor-1, 0)
		return nil

	case tea.MouseButtonWheelDown:
		p.cursor = min(p.cursor+1, len(tasks)-1)
		return nil

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		taskRow := msg.Y - headerRows
		if taskRow >= 0 && taskRow < len(tasks) {
			p.cursor = taskRow
		}
	}

	return nil
}

// View renders the tasks pane.
func (p *TasksPane) View() string {
	var b strings.Builder

	b.WriteString(p.styles.PaneTitleStyle.Render("TASKS"))
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(p.styles.StatLabelStyle.Render(strings.Repeat("─", sepWidth)))
	b.WriteString("\n")

	if p.tracker == nil {
		b.WriteString(p.styles.StatLabelStyle.Render("  Loading..."))
		b.WriteString("\n")
		return p.framed(b.String())
	}

	b.WriteString(p.renderDaySelector())
	b.WriteString("\n\n")

	tasks := p.dayTasks()
	date := p.SelectedDate()

	if len(tasks) == 0 && p.mode == inputNone {
		b.WriteString(p.styles.StatLabelStyle.Render("  No tasks for this day. Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		rec := p.tracker.Document().Day(date)
		for i, task := range tasks {
			done := rec != nil && rec.TaskStatus[task]

			checkbox := p.styles.TaskCheckboxPending
			if done {
				checkbox = p.styles.TaskCheckboxDone
			}

			textWidth := p.width - 4 - 7
			if textWidth < 5 {
				textWidth = 5
			}
			text := runewidth.Truncate(task, textWidth, "..")

			var line string
			if i == p.cursor && p.focused && p.mode == inputNone {
				line = p.styles.TaskSelectedStyle.Render(" " + checkbox + " " + text + " ")
				line = "▶" + line
			} else {
				styled := p.styles.TaskPendingStyle.Render(text)
				if done {
					styled = p.styles.TaskDoneStyle.Render(text)
				}
				line = "  " + checkbox + " " + styled
			}

			b.WriteString(line)
			b.WriteString("\n")
		}

		// Day stats
		completed, total := p.tracker.DayTaskCounts(date)
		b.WriteString("\n")
		stats := fmt.Sprintf("%d/%d complete (%d%%)", completed, total, p.tracker.DayCompletionRate(date))
		b.WriteString("  " + p.styles.StatLabelStyle.Render(stats))
		b.WriteString("\n")
	}

	// Input field when adding or renaming
	if p.mode != inputNone {
		b.WriteString("\n")
		prompt := "+ "
		switch p.mode {
		case inputAddTemplate:
			prompt = "All days: "
		case inputRename:
			prompt = "Rename: "
		}
		b.WriteString("  " + p.styles.InputPromptStyle.Render(prompt) + p.input.View())
		b.WriteString("\n")
	}

	return p.framed(b.String())
}

// renderDaySelector renders the weekday row with the selected day bracketed.
func (p *TasksPane) renderDaySelector() string {
	var parts []string
	for i, date := range p.tracker.WeekDates() {
		label := "?"
		if d, err := time.Parse(tracker.DateFormat, date); err == nil {
			label = d.Format("Mon")
		}
		if i == p.dayIdx {
			parts = append(parts, p.styles.DaySelectedStyle.Render("["+label+"]"))
		} else {
			parts = append(parts, p.styles.DayStyle.Render(" "+label+" "))
		}
	}
	selector := strings.Join(parts, "")
	return " " + selector + "\n " + p.styles.DateStyle.Render(p.SelectedDate())
}

// framed applies the pane border style.
func (p *TasksPane) framed(content string) string {
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(content)
}
