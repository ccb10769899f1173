// Package calendar wraps a date library behind the fixed set of day-granularity
// operations the picker needs. Values are plain time.Time; every comparison
// ignores the sub-day components in the adapter's location.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidWeekStart = errors.New("invalid week start")

// Adapter is the capability surface consumed by the grid builder and the
// selection state machine. Implementations must be pure.
type Adapter interface {
	DaysInMonth(d time.Time) int
	// FirstWeekdayOfMonth returns the column (0..6) of the first day of d's
	// month, counted from the configured week start.
	FirstWeekdayOfMonth(d time.Time) int
	WeekdayLabel(d time.Time, index int) string
	MonthLabel(d time.Time) string

	AddMonths(d time.Time, n int) time.Time
	SubtractMonths(d time.Time, n int) time.Time
	SetDayOfMonth(d time.Time, day int) time.Time

	IsBeforeDay(a, b time.Time) bool
	IsAfterDay(a, b time.Time) bool
	IsSameDay(a, b time.Time) bool
	IsBetweenInclusiveDay(d, lo, hi time.Time) bool

	StartOfWeek() time.Time
	EndOfWeek() time.Time
	StartOfMonth() time.Time
	EndOfMonth() time.Time
	Now() time.Time
}

// Formatter supplies localized names. Localization itself lives with the host.
type Formatter interface {
	MonthName(month time.Month) string
	WeekdayShort(weekday time.Weekday) string
}

type Options struct {
	WeekStart time.Weekday
	Location  *time.Location
	Formatter Formatter
	Clock     func() time.Time
}

func (opts Options) withDefaults() (Options, error) {
	if opts.WeekStart < time.Sunday || opts.WeekStart > time.Saturday {
		return Options{}, fmt.Errorf("%w: %d", ErrInvalidWeekStart, opts.WeekStart)
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Formatter == nil {
		opts.Formatter = EnglishFormatter{}
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return opts, nil
}

// ParseWeekStart accepts a weekday name ("monday", "Mon") or its number (0 = Sunday).
func ParseWeekStart(raw string) (time.Weekday, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return time.Sunday, nil
	}
	if len(value) == 1 && value[0] >= '0' && value[0] <= '6' {
		return time.Weekday(value[0] - '0'), nil
	}
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		name := strings.ToLower(weekday.String())
		if len(value) >= 3 && strings.HasPrefix(name, value) {
			return weekday, nil
		}
	}
	return time.Sunday, fmt.Errorf("%w: %q", ErrInvalidWeekStart, raw)
}

// EnglishFormatter is the default formatter: full month names and two-letter
// weekday abbreviations.
type EnglishFormatter struct{}

func (EnglishFormatter) MonthName(month time.Month) string {
	return month.String()
}

func (EnglishFormatter) WeekdayShort(weekday time.Weekday) string {
	return weekday.String()[:2]
}

func weekdayColumn(weekday time.Weekday, weekStart time.Weekday) int {
	return (int(weekday) - int(weekStart) + 7) % 7
}

func weekdayAtColumn(index int, weekStart time.Weekday) time.Weekday {
	return time.Weekday(((int(weekStart)+index)%7 + 7) % 7)
}

func monthLabel(formatter Formatter, value time.Time) string {
	return fmt.Sprintf("%s %d", formatter.MonthName(value.Month()), value.Year())
}

func clampDay(day int, daysInMonth int) int {
	if day < 1 {
		return 1
	}
	if day > daysInMonth {
		return daysInMonth
	}
	return day
}
