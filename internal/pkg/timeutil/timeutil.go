package timeutil

import (
	"fmt"
	"regexp"
	"time"
)

// ClassDuration is the fixed length of a class session. End times are
// always derived from start times, never set directly.
const ClassDuration = 2 * time.Hour

var clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// IsClockTime reports whether s is a zero-padded 24h "HH:mm" string.
func IsClockTime(s string) bool {
	return clockRe.MatchString(s)
}

// CalculateEndTime adds the class duration to a "HH:mm" start time,
// wrapping across midnight ("23:30" -> "01:30"). Inputs that are not
// zero-padded 24h clock strings are rejected; time.Parse alone would
// let values like "7:00" through.
func CalculateEndTime(startTime string) (string, error) {
	if !IsClockTime(startTime) {
		return "", fmt.Errorf("invalid start time %q", startTime)
	}
	t, err := time.Parse("15:04", startTime)
	if err != nil {
		return "", fmt.Errorf("invalid start time %q: %w", startTime, err)
	}
	end := t.Add(ClassDuration)
	return end.Format("15:04"), nil
}

// DayBounds returns the inclusive [00:00:00, 23:59:59.999999999]
// window of the calendar day containing t, in t's location.
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}

// StartOfToday is the lower bound used when listing upcoming classes.
func StartOfToday() time.Time {
	start, _ := DayBounds(time.Now())
	return start
}

// ParseClassDate accepts the wire formats clients send for class
// dates: a bare ISO date or a full RFC3339 timestamp.
func ParseClassDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid class date %q", s)
	}
	return t, nil
}
