package calendar

import (
	"errors"
	"time"
)

const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

var ErrDateRequired = errors.New("date is required")

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	year, month, day := value.In(location).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func ParseDay(raw string, location *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Time{}, ErrDateRequired
	}
	if location == nil {
		location = time.UTC
	}
	parsed, err := time.ParseInLocation(DayLayout, raw, location)
	if err != nil {
		return time.Time{}, err
	}
	return DateAtLocation(parsed, location), nil
}

// ParseMonth resolves "2006-01" to the first day of that month. An empty value
// means the month containing now.
func ParseMonth(raw string, now time.Time, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	if raw == "" {
		current := DateAtLocation(now, location)
		return time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, location), nil
	}
	parsed, err := time.ParseInLocation(MonthLayout, raw, location)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, location), nil
}

func FormatDay(value *time.Time) string {
	if value == nil || value.IsZero() {
		return ""
	}
	return value.Format(DayLayout)
}
