package tracker

// DateFormat is the layout for the date keys of the daily data map.
const DateFormat = "2006-01-02"

// DayRecord holds one calendar day's tasks and habit flags.
type DayRecord struct {
	Tasks      []string        `json:"tasks"`
	TaskStatus map[string]bool `json:"task_status"`
	Habits     map[string]bool `json:"habits"`
}

// newDayRecord materializes a fresh day from the template and habit lists.
func newDayRecord(templates, habits []string) *DayRecord {
	rec := &DayRecord{
		Tasks:      make([]string, len(templates)),
		TaskStatus: make(map[string]bool, len(templates)),
		Habits:     make(map[string]bool, len(habits)),
	}
	copy(rec.Tasks, templates)
	for _, t := range templates {
		rec.TaskStatus[t] = false
	}
	for _, h := range habits {
		rec.Habits[h] = false
	}
	return rec
}

// hasTask reports whether name is in the day's task list (not just the
// status map, which may carry orphaned keys).
func (r *DayRecord) hasTask(name string) bool {
	for _, t := range r.Tasks {
		if t == name {
			return true
		}
	}
	return false
}

// Document is the full persisted store: a flat date-keyed map of day
// records plus the global habit and task-template lists.
type Document struct {
	DailyData     map[string]*DayRecord `json:"daily_data"`
	Habits        []string              `json:"habits"`
	TaskTemplates []string              `json:"task_templates"`
}

// NewDocument returns an empty document with all containers allocated.
func NewDocument() *Document {
	return &Document{
		DailyData:     make(map[string]*DayRecord),
		Habits:        []string{},
		TaskTemplates: []string{},
	}
}

// Normalize replaces nil containers with empty ones. Documents decoded
// from hand-edited or partial JSON may be missing any of them.
func (d *Document) Normalize() {
	if d.DailyData == nil {
		d.DailyData = make(map[string]*DayRecord)
	}
	if d.Habits == nil {
		d.Habits = []string{}
	}
	if d.TaskTemplates == nil {
		d.TaskTemplates = []string{}
	}
	for date, rec := range d.DailyData {
		if rec == nil {
			rec = &DayRecord{}
			d.DailyData[date] = rec
		}
		if rec.Tasks == nil {
			rec.Tasks = []string{}
		}
		if rec.TaskStatus == nil {
			rec.TaskStatus = make(map[string]bool)
		}
		if rec.Habits == nil {
			rec.Habits = make(map[string]bool)
		}
	}
}

// Day returns the record for a YYYY-MM-DD date, or nil if absent.
func (d *Document) Day(date string) *DayRecord {
	return d.DailyData[date]
}

func contains(list []string, name string) bool {
	for _, item := range list {
		if item == name {
			return true
		}
	}
	return false
}
