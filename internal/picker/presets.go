package picker

import (
	"fmt"
	"strings"
	"time"

	"cloudeng.io/errors"
	"github.com/terraincognita07/datepick/internal/calendar"
)

type Preset string

const (
	PresetToday     Preset = "today"
	PresetThisWeek  Preset = "this-week"
	PresetThisMonth Preset = "this-month"
)

var ErrUnknownPreset = errors.New("unknown preset")

func Presets() []Preset {
	return []Preset{PresetToday, PresetThisWeek, PresetThisMonth}
}

func ParsePreset(raw string) (Preset, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "_", "-")
	for _, preset := range Presets() {
		if string(preset) == normalized {
			return preset, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPreset, raw)
}

// presetPatch returns the full patch for a preset and whether the selector
// should be left in the picking state.
func presetPatch(adapter calendar.Adapter, mode Mode, preset Preset) (Patch, bool, error) {
	switch preset {
	case PresetToday:
		patch, picking := todayPatch(adapter, mode)
		return patch, picking, nil
	case PresetThisWeek:
		return periodPatch(adapter, mode, adapter.StartOfWeek(), adapter.EndOfWeek()), false, nil
	case PresetThisMonth:
		return periodPatch(adapter, mode, adapter.StartOfMonth(), adapter.EndOfMonth()), false, nil
	default:
		return Patch{}, false, fmt.Errorf("%w: %q", ErrUnknownPreset, preset)
	}
}

// todayPatch selects today. In range mode it re-enters picking with the start
// set and the end left open.
func todayPatch(adapter calendar.Adapter, mode Mode) (Patch, bool) {
	today := adapter.Now()
	if mode != ModeRange {
		return periodPatch(adapter, mode, today, today), false
	}
	picking := true
	return Patch{
		DisplayedDate: datePtr(today),
		Date:          cleared(),
		StartDate:     setTo(today),
		EndDate:       cleared(),
		Selecting:     &picking,
	}, true
}

// periodPatch selects start..end (or start alone in single mode) and shows
// the month of today.
func periodPatch(adapter calendar.Adapter, mode Mode, start, end time.Time) Patch {
	patch := Patch{DisplayedDate: datePtr(adapter.Now()), Selecting: boolPtr(false)}
	if mode != ModeRange {
		patch.Date, patch.StartDate, patch.EndDate = setTo(start), cleared(), cleared()
		return patch
	}
	patch.Date, patch.StartDate, patch.EndDate = cleared(), setTo(start), setTo(end)
	return patch
}
