package booking

import (
	"strings"
	"time"
)

const (
	// DateLayout is the wire format of a schedule date
	DateLayout = "2006-01-02"
	// TimeLayout is the wire format of a schedule time
	TimeLayout = "15:04"
	// MealBreakTime is the pickup slot offered as a one-tap shortcut
	MealBreakTime = "17:45"
)

// Schedule is the pickup date and wall-clock time chosen by the customer
type Schedule struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// At resolves the schedule to an instant in loc
func (s Schedule) At(loc *time.Location) (time.Time, error) {
	at, err := time.ParseInLocation(DateLayout+" "+TimeLayout, strings.TrimSpace(s.Date)+" "+normalizeClock(s.Time), loc)
	if err != nil {
		return time.Time{}, validationError("INVALID_SCHEDULE", "schedule", "Date must be YYYY-MM-DD and time HH:MM")
	}
	return at, nil
}

// ScheduleIsComplete reports whether both date and time were given
func ScheduleIsComplete(s Schedule) bool {
	return strings.TrimSpace(s.Date) != "" && strings.TrimSpace(s.Time) != ""
}

// ScheduleNotInPast reports whether the schedule is at or after now. The
// schedule is read in now's location.
func ScheduleNotInPast(s Schedule, now time.Time) (bool, error) {
	at, err := s.At(now.Location())
	if err != nil {
		return false, err
	}
	return !at.Before(now), nil
}

// normalizeClock accepts "HH:MM" and "HH:MM:SS" from time pickers
func normalizeClock(t string) string {
	t = strings.TrimSpace(t)
	if len(t) == len("15:04:05") && strings.Count(t, ":") == 2 {
		return t[:5]
	}
	return t
}
