package services

import (
	"fmt"
	"strings"
	"time"

	"cloudeng.io/errors"
	"github.com/terraincognita07/datepick/internal/calendar"
	"github.com/terraincognita07/datepick/internal/models"
	"github.com/terraincognita07/datepick/internal/picker"
)

var (
	ErrInvalidSessionInput  = errors.New("invalid picker session input")
	ErrPickerDateInvalid    = errors.New("invalid picker date")
	ErrPickerTimezone       = errors.New("unknown picker timezone")
	ErrPickerRangeOrder     = errors.New("start date is after end date")
	ErrPickerBoundsOrder    = errors.New("min date is after max date")
	ErrPickerModeFieldMixup = errors.New("selection fields do not match picker mode")
)

// PickerDefaults fill in whatever a create request leaves blank.
type PickerDefaults struct {
	WeekStart   time.Weekday
	Location    *time.Location
	Language    string
	DateAdapter string
}

// CreatePickerInput is the raw create request. Dates are "2006-01-02";
// DisplayedDate also accepts "2006-01". A non-nil Open makes the session
// host-controlled.
type CreatePickerInput struct {
	Mode          string
	WeekStart     string
	Timezone      string
	Language      string
	DateAdapter   string
	DisplayedDate string
	Date          string
	StartDate     string
	EndDate       string
	MinDate       string
	MaxDate       string
	Open          *bool
	InitiallyOpen bool
}

// BuildPickerSession validates input and returns the session to persist. All
// problems are reported together, wrapped in ErrInvalidSessionInput.
func BuildPickerSession(input CreatePickerInput, defaults PickerDefaults, now time.Time) (models.PickerSession, error) {
	errs := errors.M{}

	mode, err := picker.ParseMode(input.Mode)
	errs.Append(err)

	weekStart := defaults.WeekStart
	if strings.TrimSpace(input.WeekStart) != "" {
		weekStart, err = calendar.ParseWeekStart(input.WeekStart)
		errs.Append(err)
	}

	location := defaults.Location
	if location == nil {
		location = time.UTC
	}
	if raw := strings.TrimSpace(input.Timezone); raw != "" {
		loaded, err := time.LoadLocation(raw)
		if err != nil {
			errs.Append(fmt.Errorf("%w: %q", ErrPickerTimezone, raw))
		} else {
			location = loaded
		}
	}

	adapterKind := input.DateAdapter
	if strings.TrimSpace(adapterKind) == "" {
		adapterKind = defaults.DateAdapter
	}
	adapterKind, err = NormalizeDateAdapter(adapterKind)
	errs.Append(err)

	language := strings.TrimSpace(input.Language)
	if language == "" {
		language = defaults.Language
	}

	parse := func(name string, raw string) *time.Time {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		value, err := calendar.ParseDay(raw, location)
		if err != nil {
			errs.Append(fmt.Errorf("%w: %s=%q", ErrPickerDateInvalid, name, raw))
			return nil
		}
		return &value
	}

	date := parse("date", input.Date)
	start := parse("start_date", input.StartDate)
	end := parse("end_date", input.EndDate)
	minDate := parse("min_date", input.MinDate)
	maxDate := parse("max_date", input.MaxDate)

	if mode == picker.ModeSingle && (start != nil || end != nil) {
		errs.Append(fmt.Errorf("%w: single mode takes date only", ErrPickerModeFieldMixup))
	}
	if mode == picker.ModeRange && date != nil {
		errs.Append(fmt.Errorf("%w: range mode takes start_date and end_date", ErrPickerModeFieldMixup))
	}
	if start != nil && end != nil && start.After(*end) {
		errs.Append(ErrPickerRangeOrder)
	}
	if minDate != nil && maxDate != nil && minDate.After(*maxDate) {
		errs.Append(ErrPickerBoundsOrder)
	}

	displayed, err := resolveDisplayedDate(input.DisplayedDate, now, location, date, start)
	errs.Append(err)

	if err := errs.Err(); err != nil {
		return models.PickerSession{}, fmt.Errorf("%w: %w", ErrInvalidSessionInput, err)
	}

	session := models.PickerSession{
		Mode:          mode.String(),
		WeekStart:     int(weekStart),
		Timezone:      location.String(),
		Language:      language,
		DateAdapter:   adapterKind,
		DisplayedDate: displayed,
		Date:          date,
		StartDate:     start,
		EndDate:       end,
		MinDate:       minDate,
		MaxDate:       maxDate,
		Open:          input.InitiallyOpen,
	}
	if input.Open != nil {
		session.Controlled = true
		session.Open = *input.Open
	}
	return session, nil
}

// resolveDisplayedDate falls back to the selection and then to today.
func resolveDisplayedDate(raw string, now time.Time, location *time.Location, anchors ...*time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		if len(raw) == len(calendar.MonthLayout) {
			month, err := calendar.ParseMonth(raw, now, location)
			if err != nil {
				return time.Time{}, fmt.Errorf("%w: displayed_date=%q", ErrPickerDateInvalid, raw)
			}
			return month, nil
		}
		day, err := calendar.ParseDay(raw, location)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: displayed_date=%q", ErrPickerDateInvalid, raw)
		}
		return day, nil
	}
	for _, anchor := range anchors {
		if anchor != nil {
			return *anchor, nil
		}
	}
	return calendar.DateAtLocation(now, location), nil
}
