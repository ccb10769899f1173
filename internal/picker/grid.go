package picker

import (
	"time"

	"github.com/terraincognita07/datepick/internal/calendar"
)

// BuildGrid lays out the displayed month as week rows of seven cells, with
// empty padding before the first day and after the last one. It is a pure
// function of its inputs.
func BuildGrid(adapter calendar.Adapter, displayed time.Time, mode Mode, selection Selection, bounds Bounds) Grid {
	grid := Grid{MonthLabel: adapter.MonthLabel(displayed)}
	for index := range grid.Headers {
		grid.Headers[index] = adapter.WeekdayLabel(displayed, index)
	}

	daysInMonth := adapter.DaysInMonth(displayed)
	offset := adapter.FirstWeekdayOfMonth(displayed)

	grid.Weeks = make([]WeekRow, 0, (daysInMonth+offset+6)/7)
	var week WeekRow
	column := offset
	for dayOfMonth := 1; dayOfMonth <= daysInMonth; dayOfMonth++ {
		current := adapter.SetDayOfMonth(displayed, dayOfMonth)
		week[column] = DayCell{
			Day:      dayOfMonth,
			Selected: classifySelected(adapter, current, mode, selection),
			Disabled: classifyDisabled(adapter, current, bounds),
		}
		column++

		if column == len(week) || dayOfMonth == daysInMonth {
			grid.Weeks = append(grid.Weeks, week)
			week = WeekRow{}
			column = 0
		}
	}
	return grid
}

func classifySelected(adapter calendar.Adapter, value time.Time, mode Mode, selection Selection) bool {
	if mode == ModeRange {
		switch {
		case selection.StartDate != nil && selection.EndDate != nil:
			return adapter.IsBetweenInclusiveDay(value, *selection.StartDate, *selection.EndDate)
		case selection.StartDate != nil:
			return adapter.IsSameDay(value, *selection.StartDate)
		default:
			return false
		}
	}
	return selection.Date != nil && adapter.IsSameDay(value, *selection.Date)
}

func classifyDisabled(adapter calendar.Adapter, value time.Time, bounds Bounds) bool {
	return (bounds.Min != nil && adapter.IsBeforeDay(value, *bounds.Min)) ||
		(bounds.Max != nil && adapter.IsAfterDay(value, *bounds.Max))
}
