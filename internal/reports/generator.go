package reports

import (
	"time"

	"weektrack/internal/tracker"
)

// Generator creates reports from tracker data.
type Generator struct {
	tr  *tracker.Tracker
	now func() time.Time
}

// NewGenerator creates a report generator over tr.
func NewGenerator(tr *tracker.Tracker) *Generator {
	return &Generator{tr: tr, now: time.Now}
}

// SetNowFunc overrides the clock stamped into generated reports.
// Passing nil resets it to time.Now.
func (g *Generator) SetNowFunc(now func() time.Time) {
	if now == nil {
		g.now = time.Now
		return
	}
	g.now = now
}

// GenerateWeekly builds the report for the tracker's displayed week.
func (g *Generator) GenerateWeekly() *WeeklyReport {
	dates := g.tr.WeekDates()
	doc := g.tr.Document()

	days := make([]DaySummary, 0, len(dates))
	for _, date := range dates {
		completed, total := g.tr.DayTaskCounts(date)

		habitsDone := 0
		if rec := doc.Day(date); rec != nil {
			for _, h := range doc.Habits {
				if rec.Habits[h] {
					habitsDone++
				}
			}
		}

		dayOfWeek := ""
		if d, err := time.Parse(tracker.DateFormat, date); err == nil {
			dayOfWeek = d.Format("Mon")
		}

		days = append(days, DaySummary{
			Date:           date,
			DayOfWeek:      dayOfWeek,
			TasksCompleted: completed,
			TasksTotal:     total,
			CompletionRate: g.tr.DayCompletionRate(date),
			HabitsDone:     habitsDone,
			HabitsTotal:    len(doc.Habits),
		})
	}

	habits := make([]HabitWeek, 0, len(doc.Habits))
	for _, h := range doc.Habits {
		daysDone := make([]bool, len(dates))
		doneCount := 0
		for i, date := range dates {
			if rec := doc.Day(date); rec != nil && rec.Habits[h] {
				daysDone[i] = true
				doneCount++
			}
		}
		habits = append(habits, HabitWeek{
			Name:       h,
			DaysDone:   daysDone,
			DoneCount:  doneCount,
			WeeklyRate: g.tr.HabitWeeklyRate(h),
		})
	}

	var totalCompleted, totalCount int
	for _, d := range days {
		totalCompleted += d.TasksCompleted
		totalCount += d.TasksTotal
	}

	return &WeeklyReport{
		WeekStart: dates[0],
		WeekEnd:   dates[len(dates)-1],
		Days:      days,
		Habits:    habits,
		Tasks: WeekTasks{
			TotalCompleted: totalCompleted,
			TotalCount:     totalCount,
			WeeklyRate:     g.tr.WeeklyTaskRate(),
		},
		GeneratedAt: g.now(),
	}
}
