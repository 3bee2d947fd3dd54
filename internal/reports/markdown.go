package reports

import (
	"fmt"
	"strings"
)

// FormatWeeklyMarkdown formats a weekly report as a markdown document.
func FormatWeeklyMarkdown(report *WeeklyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Week %s - %s\n\n", report.WeekStart, report.WeekEnd)
	fmt.Fprintf(&b, "Overall task completion: **%d%%** (%d/%d)\n\n",
		report.Tasks.WeeklyRate, report.Tasks.TotalCompleted, report.Tasks.TotalCount)

	b.WriteString("## Days\n\n")
	b.WriteString("| Day | Date | Tasks | Rate | Habits |\n")
	b.WriteString("|-----|------|-------|------|--------|\n")
	for _, d := range report.Days {
		fmt.Fprintf(&b, "| %s | %s | %d/%d | %d%% | %d/%d |\n",
			d.DayOfWeek, d.Date, d.TasksCompleted, d.TasksTotal,
			d.CompletionRate, d.HabitsDone, d.HabitsTotal)
	}
	b.WriteString("\n")

	b.WriteString("## Habits\n\n")
	if len(report.Habits) == 0 {
		b.WriteString("No habits tracked this week.\n")
		return b.String()
	}
	b.WriteString("| Habit | Mon | Tue | Wed | Thu | Fri | Sat | Sun | Rate |\n")
	b.WriteString("|-------|-----|-----|-----|-----|-----|-----|-----|------|\n")
	for _, h := range report.Habits {
		fmt.Fprintf(&b, "| %s |", h.Name)
		for _, done := range h.DaysDone {
			if done {
				b.WriteString(" x |")
			} else {
				b.WriteString(" . |")
			}
		}
		fmt.Fprintf(&b, " %d%% |\n", h.WeeklyRate)
	}

	return b.String()
}
