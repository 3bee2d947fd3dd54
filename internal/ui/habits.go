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

// inputMode tracks which text input, if any, a pane is showing.
type inputMode int

const (
	inputNone inputMode = iota
	inputAdd
	inputAddTemplate
	inputRename
)

// HabitsPane shows the week grid of habits: one row per habit, one column
// per weekday, with a cursor over individual (habit, day) cells.
type HabitsPane struct {
	tracker *tracker.Tracker
	row     int // habit index
	col     int // weekday index, 0 = Monday
	focused bool
	width   int
	height  int
	mode    inputMode
	input   textinput.Model
	styles  *Styles

	// Key bindings
	keys      HabitKeyMap
	inputKeys InputKeyMap
}

// NewHabitsPane creates a new habits pane.
func NewHabitsPane(styles *Styles) *HabitsPane {
	return NewHabitsPaneWithKeys(styles, &config.KeysConfig{})
}

// NewHabitsPaneWithKeys creates a new habits pane with custom key bindings.
func NewHabitsPaneWithKeys(styles *Styles, keyCfg *config.KeysConfig) *HabitsPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	ti := textinput.New()
	ti.Placeholder = "Habit name (e.g., Exercise)"
	ti.CharLimit = 60
	ti.Width = 30

	return &HabitsPane{
		input:     ti,
		styles:    styles,
		keys:      NewHabitKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
}

// SetTracker attaches the tracker and resets the cursor into bounds.
func (p *HabitsPane) SetTracker(tr *tracker.Tracker) {
	p.tracker = tr
	p.clampCursor()
}

// SetSize sets the pane dimensions.
func (p *HabitsPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(10, width-6)
}

// SetFocused sets whether this pane is focused.
func (p *HabitsPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *HabitsPane) IsFocused() bool {
	return p.focused
}

// IsEditing returns whether the pane is showing a text input.
func (p *HabitsPane) IsEditing() bool {
	return p.mode != inputNone
}

// SelectedHabit returns the habit under the cursor.
func (p *HabitsPane) SelectedHabit() (string, bool) {
	if p.tracker == nil {
		return "", false
	}
	habits := p.tracker.Document().Habits
	if p.row < 0 || p.row >= len(habits) {
		return "", false
	}
	return habits[p.row], true
}

// SelectedDate returns the date under the cursor column.
func (p *HabitsPane) SelectedDate() string {
	if p.tracker == nil {
		return ""
	}
	return p.tracker.WeekDates()[p.col]
}

// DeleteSelected removes the habit under the cursor. The app calls this
// directly after confirmation, or the pane calls it itself when
// confirmations are disabled.
func (p *HabitsPane) DeleteSelected() tea.Cmd {
	name, ok := p.SelectedHabit()
	if !ok {
		return statusCmd("No habit selected", true)
	}
	p.tracker.DeleteHabit(name)
	p.clampCursor()
	return statusCmd("Deleted habit: "+name, false)
}

// ClearAll removes every habit.
func (p *HabitsPane) ClearAll() tea.Cmd {
	if p.tracker == nil {
		return nil
	}
	p.tracker.ClearAllHabits()
	p.clampCursor()
	return statusCmd("Cleared all habits", false)
}

func (p *HabitsPane) clampCursor() {
	if p.tracker == nil {
		p.row = 0
		return
	}
	n := len(p.tracker.Document().Habits)
	if p.row >= n {
		p.row = max(0, n-1)
	}
	if p.col < 0 || p.col > 6 {
		p.col = 0
	}
}

// Update handles messages for the habits pane.
func (p *HabitsPane) Update(msg tea.Msg) tea.Cmd {
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
		habits := p.tracker.Document().Habits

		switch {
		case key.Matches(msg, p.keys.Down):
			if len(habits) > 0 {
				p.row = min(p.row+1, len(habits)-1)
			}

		case key.Matches(msg, p.keys.Up):
			if len(habits) > 0 {
				p.row = max(p.row-1, 0)
			}

		case key.Matches(msg, p.keys.Left):
			p.col = max(p.col-1, 0)

		case key.Matches(msg, p.keys.Right):
			p.col = min(p.col+1, 6)

		case key.Matches(msg, p.keys.Top):
			p.row = 0

		case key.Matches(msg, p.keys.Bottom):
			if len(habits) > 0 {
				p.row = len(habits) - 1
			}

		case key.Matches(msg, p.keys.Add):
			p.mode = inputAdd
			p.input.Placeholder = "Habit name (e.g., Exercise)"
			p.input.Focus()
			return textinput.Blink

		case key.Matches(msg, p.keys.Rename):
			if name, ok := p.SelectedHabit(); ok {
				p.mode = inputRename
				p.input.SetValue(name)
				p.input.CursorEnd()
				p.input.Focus()
				return textinput.Blink
			}

		case key.Matches(msg, p.keys.Toggle):
			if name, ok := p.SelectedHabit(); ok {
				p.tracker.ToggleHabit(name, p.SelectedDate())
			}

		case key.Matches(msg, p.keys.Delete):
			// Reached only when confirmations are disabled; otherwise
			// the app intercepts this key and shows an overlay.
			if len(habits) > 0 {
				return p.DeleteSelected()
			}
		}
	}

	return nil
}

// commitInput applies the pending add or rename.
func (p *HabitsPane) commitInput() tea.Cmd {
	name := strings.TrimSpace(p.input.Value())
	mode := p.mode
	p.resetInput()

	if name == "" {
		return nil
	}

	switch mode {
	case inputAdd:
		if err := p.tracker.AddHabit(name); err != nil {
			return statusCmd("Add habit: "+err.Error(), true)
		}
		// Move the cursor to the new habit.
		p.row = len(p.tracker.Document().Habits) - 1
		return statusCmd("Added habit: "+name, false)

	case inputRename:
		old, ok := p.SelectedHabit()
		if !ok {
			return nil
		}
		if err := p.tracker.RenameHabit(old, name); err != nil {
			return statusCmd("Rename habit: "+err.Error(), true)
		}
		return statusCmd("Renamed habit to: "+name, false)
	}

	return nil
}

// resetInput leaves input mode.
func (p *HabitsPane) resetInput() {
	p.mode = inputNone
	p.input.Reset()
	p.input.Blur()
}

// handleMouse processes mouse events for the habits pane.
func (p *HabitsPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	habits := p.tracker.Document().Habits
	if len(habits) == 0 {
		return nil
	}

	// Rows above the grid: title (1) + separator (1) + day header (1).
	const headerRows = 3

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.row = max(p.row-1, 0)
		return nil

	case tea.MouseButtonWheelDown:
		p.row = min(p.row+1, len(habits)-1)
		return nil

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		habitRow := msg.Y - headerRows
		if habitRow >= 0 && habitRow < len(habits) {
			p.row = habitRow
		}
	}

	return nil
}

// View renders the habits pane.
func (p *HabitsPane) View() string {
	var b strings.Builder

	b.WriteString(p.styles.PaneTitleStyle.Render("HABITS"))
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

	habits := p.tracker.Document().Habits
	nameWidth := p.nameColumnWidth()

	// Day header aligned over the grid cells.
	b.WriteString("  " + strings.Repeat(" ", nameWidth) + " " + p.styles.StatLabelStyle.Render(dayInitials(p.tracker.WeekDates())))
	b.WriteString("\n")

	if len(habits) == 0 && p.mode == inputNone {
		b.WriteString("\n")
		b.WriteString(p.styles.StatLabelStyle.Render("  No habits yet."))
		b.WriteString("\n")
		b.WriteString(p.styles.StatLabelStyle.Render("  Press 'a' to add one."))
		b.WriteString("\n")
	}

	dates := p.tracker.WeekDates()
	for i, habit := range habits {
		prefix := "  "
		if i == p.row && p.focused && p.mode == inputNone {
			prefix = "▶ "
		}

		name := runewidth.Truncate(habit, nameWidth, "..")
		name = runewidth.FillRight(name, nameWidth)

		var cells strings.Builder
		for d, date := range dates {
			done := false
			if rec := p.tracker.Document().Day(date); rec != nil {
				done = rec.Habits[habit]
			}
			icon := p.styles.HabitUndoneIcon
			if done {
				icon = p.styles.HabitDoneIcon
			}
			if i == p.row && d == p.col && p.focused && p.mode == inputNone {
				cells.WriteString("[" + icon + "]")
			} else {
				cells.WriteString(" " + icon + " ")
			}
		}

		rate := p.styles.RateStyle.Render(fmt.Sprintf("%3d%%", p.tracker.HabitWeeklyRate(habit)))

		b.WriteString(prefix + name + " " + cells.String() + " " + rate)
		b.WriteString("\n")
	}

	// Input field when adding or renaming
	if p.mode != inputNone {
		b.WriteString("\n")
		prompt := "Name: "
		if p.mode == inputRename {
			prompt = "Rename: "
		}
		b.WriteString("  " + p.styles.InputPromptStyle.Render(prompt) + p.input.View())
		b.WriteString("\n")
	}

	return p.framed(b.String())
}

// framed applies the pane border style.
func (p *HabitsPane) framed(content string) string {
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(content)
}

// nameColumnWidth returns the width reserved for habit names.
func (p *HabitsPane) nameColumnWidth() int {
	// Grid cells take 3 columns per day plus the rate column.
	w := p.width - 4 - 7*3 - 6
	if w < 8 {
		w = 8
	}
	if w > 24 {
		w = 24
	}
	return w
}

// dayInitials renders one letter per weekday, aligned with the grid cells.
func dayInitials(dates []string) string {
	var b strings.Builder
	for _, date := range dates {
		initial := "?"
		if d, err := time.Parse(tracker.DateFormat, date); err == nil {
			initial = d.Format("Mon")[:1]
		}
		b.WriteString(" " + initial + " ")
	}
	return strings.TrimSuffix(b.String(), " ")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
