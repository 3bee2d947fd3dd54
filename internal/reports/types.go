// Package reports provides weekly report generation for weektrack.
// Reports aggregate the displayed week's day records into per-day,
// per-habit, and whole-week summaries.
package reports

import "time"

// WeeklyReport contains aggregated data for the displayed week.
type WeeklyReport struct {
	WeekStart   string       `json:"week_start"`
	WeekEnd     string       `json:"week_end"`
	Days        []DaySummary `json:"days"`
	Habits      []HabitWeek  `json:"habits"`
	Tasks       WeekTasks    `json:"tasks"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// DaySummary provides a quick overview of one day of the week.
type DaySummary struct {
	Date           string `json:"date"`
	DayOfWeek      string `json:"day_of_week"`
	TasksCompleted int    `json:"tasks_completed"`
	TasksTotal     int    `json:"tasks_total"`
	CompletionRate int    `json:"completion_rate"`
	HabitsDone     int    `json:"habits_done"`
	HabitsTotal    int    `json:"habits_total"`
}

// HabitWeek represents a habit's completion across the week's 7 days.
type HabitWeek struct {
	Name       string `json:"name"`
	DaysDone   []bool `json:"days_done"` // Monday first
	DoneCount  int    `json:"done_count"`
	WeeklyRate int    `json:"weekly_rate"`
}

// WeekTasks aggregates task completion over the whole week.
type WeekTasks struct {
	TotalCompleted int `json:"total_completed"`
	TotalCount     int `json:"total_count"`
	WeeklyRate     int `json:"weekly_rate"`
}
