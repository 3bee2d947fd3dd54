package tracker

// Derived metrics are recomputed on demand as pure functions over the
// document. The data volume (7 days, a handful of names) makes caching
// pointless. Percentages are truncated integers, matching the integer
// division below; 66 for 2/3, 42 for 3/7.

// DayTaskCounts returns (completed, total) for a date. The denominator is
// the day's task list, not the status map, so orphaned status keys never
// count. A missing date counts as (0, 0).
func (t *Tracker) DayTaskCounts(date string) (completed, total int) {
	rec := t.doc.Day(date)
	if rec == nil {
		return 0, 0
	}
	total = len(rec.Tasks)
	for _, task := range rec.Tasks {
		if rec.TaskStatus[task] {
			completed++
		}
	}
	return completed, total
}

// DayCompletionRate returns the day's completed/total task percentage,
// 0 when the day has no tasks.
func (t *Tracker) DayCompletionRate(date string) int {
	completed, total := t.DayTaskCounts(date)
	if total == 0 {
		return 0
	}
	return completed * 100 / total
}

// HabitWeeklyRate returns the percentage of the displayed week's 7 days
// on which the habit is done.
func (t *Tracker) HabitWeeklyRate(name string) int {
	done := 0
	for _, date := range t.WeekDates() {
		rec := t.doc.Day(date)
		if rec != nil && rec.Habits[name] {
			done++
		}
	}
	return done * 100 / 7
}

// WeeklyTaskRate aggregates completed/total over the week's 7 days as a
// percentage, 0 when no day has any tasks.
func (t *Tracker) WeeklyTaskRate() int {
	var completed, total int
	for _, date := range t.WeekDates() {
		c, n := t.DayTaskCounts(date)
		completed += c
		total += n
	}
	if total == 0 {
		return 0
	}
	return completed * 100 / total
}
