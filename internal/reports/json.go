package reports

import (
	"encoding/json"
)

// FormatWeeklyJSON formats a weekly report as indented JSON.
func FormatWeeklyJSON(report *WeeklyReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
