package picker

import (
	"time"

	"github.com/terraincognita07/datepick/internal/calendar"
)

// Selector is the range-selection state machine. It is Idle until the first
// pick of a range and Picking until the pick that completes it.
type Selector struct {
	adapter calendar.Adapter
	mode    Mode
	picking bool
}

func NewSelector(adapter calendar.Adapter, mode Mode, picking bool) *Selector {
	return &Selector{
		adapter: adapter,
		mode:    mode,
		picking: picking && mode == ModeRange,
	}
}

func (selector *Selector) Picking() bool {
	return selector.picking
}

func (selector *Selector) Reset() {
	selector.picking = false
}

// PickDay handles a pick of a day of the displayed month. Every patch carries
// the selecting state it leaves behind. Days outside the month produce no patch. Disabled days must be filtered by the caller.
func (selector *Selector) PickDay(displayed time.Time, selection Selection, day int) (Patch, bool) {
	if day < 1 || day > selector.adapter.DaysInMonth(displayed) {
		return Patch{}, false
	}
	chosen := selector.adapter.SetDayOfMonth(displayed, day)

	if selector.mode != ModeRange {
		return Patch{Date: setTo(chosen), StartDate: cleared(), EndDate: cleared(), Selecting: boolPtr(false)}, true
	}

	if !selector.picking || selection.StartDate == nil {
		selector.picking = true
		return Patch{Date: cleared(), StartDate: setTo(chosen), EndDate: cleared(), Selecting: boolPtr(true)}, true
	}

	if selector.adapter.IsBeforeDay(chosen, *selection.StartDate) {
		return Patch{StartDate: setTo(chosen), Selecting: boolPtr(true)}, true
	}

	selector.picking = false
	return Patch{EndDate: setTo(chosen), Selecting: boolPtr(false)}, true
}

// Close ends any in-progress pick. A range with a start and no end collapses
// into a single-day range.
func (selector *Selector) Close(selection Selection) (Patch, bool) {
	selector.picking = false
	if selection.StartDate != nil && selection.EndDate == nil {
		return Patch{EndDate: setTo(*selection.StartDate), Selecting: boolPtr(false)}, true
	}
	return Patch{}, false
}
