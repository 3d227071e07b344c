package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseClock converts "HH:MM" (or "H:MM") to minutes from midnight.
func ParseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes from midnight as zero-padded "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseDate parses a "YYYY-MM-DD" string in the local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// DayBounds returns [startOfDay, startOfNextDay) for a "YYYY-MM-DD" string.
func DayBounds(dateStr string) (time.Time, time.Time, error) {
	day, err := ParseDate(dateStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return day, day.AddDate(0, 0, 1), nil
}

// DateString formats an instant as its local "YYYY-MM-DD" day.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// CombineDateAndClock builds the local instant for a day plus "HH:MM" slot.
func CombineDateAndClock(dateStr, clock string) (time.Time, error) {
	day, err := ParseDate(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(minutes) * time.Minute), nil
}
