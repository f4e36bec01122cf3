package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Session is one recorded learning activity. Times are clock strings of the
// form "H:MM" or "H.MM" as stored by the backend; an empty string means the
// value was never recorded (e.g. a session that was not ended).
type Session struct {
	SessionID   int    `json:"sessionID"`
	UserID      int    `json:"userID"`
	ModuleID    int    `json:"moduleID"`
	QuestionID  int    `json:"questionID,omitempty"`
	SessionDate string `json:"sessionDate"`
	PlayerScore int    `json:"playerScore"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Platform    string `json:"platform"`
	Mode        string `json:"mode,omitempty"`
	ModuleName  string `json:"moduleName,omitempty"`
}

// NoDuration is rendered when a session is missing a start or end time.
const NoDuration = "invalid values"

// clockToDecimal converts an "H:MM" / "H.MM" clock string to decimal hours.
// Unparseable components count as zero so a malformed record still renders.
func clockToDecimal(clock string) float64 {
	parts := strings.FieldsFunc(clock, func(r rune) bool {
		return r == ':' || r == '.'
	})
	if len(parts) == 0 {
		return 0
	}
	hours, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
	minutes := 0
	if len(parts) > 1 {
		minutes, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return float64(hours) + float64(minutes)/60
}

// FormatDuration renders the elapsed time between two clock strings as
// "H.HH hrs". A session crossing midnight yields a negative difference and is
// corrected by a day. Either time missing yields NoDuration.
func FormatDuration(start, end string) string {
	if start == "" || end == "" {
		return NoDuration
	}
	diff := clockToDecimal(end) - clockToDecimal(start)
	if diff < 0 {
		diff += 24
	}
	return fmt.Sprintf("%.2f hrs", diff)
}

// Duration renders the session's elapsed time.
func (s Session) Duration() string {
	return FormatDuration(s.StartTime, s.EndTime)
}

// PlatformName expands the backend's platform tag for display.
func PlatformName(tag string) string {
	switch tag {
	case "cp", "pc":
		return "PC"
	case "mb":
		return "Mobile"
	case "vr":
		return "Virtual Reality"
	}
	return tag
}
