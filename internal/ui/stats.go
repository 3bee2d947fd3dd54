// Package ui provides terminal user interface components for the weektrack app.
package ui

import (
	"fmt"
	"strings"
	"time"

	"weektrack/internal/tracker"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
)

// statsBarWidth is the width of the per-day completion bars.
const statsBarWidth = 10

// StatsPane shows read-only completion metrics for the displayed week:
// per-day task completion bars, per-habit weekly rates, and the overall
// weekly task rate.
type StatsPane struct {
	tracker *tracker.Tracker
	focused bool
	width   int
	height  int
	styles  *Styles
}

// NewStatsPane creates a new stats pane.
func NewStatsPane(styles *Styles) *StatsPane {
	return &StatsPane{styles: styles}
}

// SetTracker attaches the tracker.
func (p *StatsPane) SetTracker(tr *tracker.Tracker) {
	p.tracker = tr
}

// SetSize sets the pane dimensions.
func (p *StatsPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this pane is focused.
func (p *StatsPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *StatsPane) IsFocused() bool {
	return p.focused
}

// Update handles messages for the stats pane. The pane is read-only, so
// nothing reacts to input.
func (p *StatsPane) Update(msg tea.Msg) tea.Cmd {
	return nil
}

// View renders the stats pane.
func (p *StatsPane) View() string {
	var b strings.Builder

	b.WriteString(p.styles.PaneTitleStyle.Render("STATS"))
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

	// Per-day task completion
	for _, date := range p.tracker.WeekDates() {
		label := "?"
		if d, err := time.Parse(tracker.DateFormat, date); err == nil {
			label = d.Format("Mon")
		}
		completed, total := p.tracker.DayTaskCounts(date)
		rate := p.tracker.DayCompletionRate(date)

		line := fmt.Sprintf("  %s %s %3d%%  %d/%d", label, p.renderBar(rate), rate, completed, total)
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Weekly aggregate
	b.WriteString("\n")
	b.WriteString("  " + p.styles.StatLabelStyle.Render("Week: ") +
		p.styles.StatValueStyle.Render(fmt.Sprintf("%d%%", p.tracker.WeeklyTaskRate())))
	b.WriteString("\n")

	// Per-habit weekly rates
	habits := p.tracker.Document().Habits
	if len(habits) > 0 {
		b.WriteString("\n")
		b.WriteString("  " + p.styles.StatLabelStyle.Render("Habits"))
		b.WriteString("\n")

		nameWidth := max(8, min(20, p.width-4-18))
		for _, habit := range habits {
			name := runewidth.FillRight(runewidth.Truncate(habit, nameWidth, ".."), nameWidth)
			rate := p.tracker.HabitWeeklyRate(habit)
			b.WriteString(fmt.Sprintf("  %s %s %3d%%", name, p.renderBar(rate), rate))
			b.WriteString("\n")
		}
	}

	return p.framed(b.String())
}

// renderBar renders a fixed-width completion bar for a 0..100 rate.
func (p *StatsPane) renderBar(rate int) string {
	filled := rate * statsBarWidth / 100
	if filled > statsBarWidth {
		filled = statsBarWidth
	}
	return p.styles.BarFilledStyle.Render(strings.Repeat("█", filled)) +
		p.styles.BarEmptyStyle.Render(strings.Repeat("░", statsBarWidth-filled))
}

// framed applies the pane border style.
func (p *StatsPane) framed(content string) string {
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}
	return style.Width(p.width).Height(p.height).Render(content)
}
