// Package picker builds the day grid for a displayed month and runs the
// single-date and two-click range selection protocol on top of an injected
// calendar.Adapter.
package picker

import (
	"fmt"
	"strings"
	"time"

	"cloudeng.io/errors"
)

type Mode int

const (
	ModeSingle Mode = iota
	ModeRange
)

var ErrUnknownMode = errors.New("unknown picker mode")

func (mode Mode) String() string {
	if mode == ModeRange {
		return "range"
	}
	return "single"
}

func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "single":
		return ModeSingle, nil
	case "range":
		return ModeRange, nil
	default:
		return ModeSingle, fmt.Errorf("%w: %q", ErrUnknownMode, raw)
	}
}

// Selection holds the host-owned selection. Date is used in single mode,
// StartDate and EndDate in range mode.
type Selection struct {
	Date      *time.Time
	StartDate *time.Time
	EndDate   *time.Time
}

// Bounds are inclusive: a day is disabled only when strictly outside them.
type Bounds struct {
	Min *time.Time
	Max *time.Time
}

type CellState int

const (
	CellEmpty CellState = iota
	CellNormal
	CellSelected
	CellDisabled
)

// DayCell is one grid position. Day is zero for padding cells.
type DayCell struct {
	Day      int
	Selected bool
	Disabled bool
}

func (cell DayCell) Empty() bool {
	return cell.Day == 0
}

// State resolves the cell's flags for rendering. Disabled takes precedence
// over selected.
func (cell DayCell) State() CellState {
	switch {
	case cell.Empty():
		return CellEmpty
	case cell.Disabled:
		return CellDisabled
	case cell.Selected:
		return CellSelected
	default:
		return CellNormal
	}
}

func (cell DayCell) Pickable() bool {
	return !cell.Empty() && !cell.Disabled
}

type WeekRow [7]DayCell

type Grid struct {
	MonthLabel string
	Headers    [7]string
	Weeks      []WeekRow
}

// Cell returns the cell for a day of the displayed month.
func (grid Grid) Cell(day int) (DayCell, bool) {
	if day < 1 {
		return DayCell{}, false
	}
	for _, week := range grid.Weeks {
		for _, cell := range week {
			if cell.Day == day {
				return cell, true
			}
		}
	}
	return DayCell{}, false
}

func datePtr(value time.Time) *time.Time {
	return &value
}

func boolPtr(value bool) *bool {
	return &value
}
