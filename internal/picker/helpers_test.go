package picker

import (
	"testing"
	"time"

	"github.com/terraincognita07/datepick/internal/calendar"
)

var testNow = time.Date(2026, time.October, 21, 9, 30, 0, 0, time.UTC)

func utcDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dayPtr(year int, month time.Month, day int) *time.Time {
	value := utcDay(year, month, day)
	return &value
}

func newTestAdapter(t *testing.T, weekStart time.Weekday) calendar.Adapter {
	t.Helper()
	adapter, err := calendar.NewTimeAdapter(calendar.Options{
		WeekStart: weekStart,
		Clock:     func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("init adapter: %v", err)
	}
	return adapter
}

func newTestCivilAdapter(t *testing.T, weekStart time.Weekday) calendar.Adapter {
	t.Helper()
	adapter, err := calendar.NewCivilAdapter(calendar.Options{
		WeekStart: weekStart,
		Clock:     func() time.Time { return testNow },
	})
	if err != nil {
		t.Fatalf("init civil adapter: %v", err)
	}
	return adapter
}

// testHost plays the host: it records every patch, merges it into its own
// props and feeds them back, as a real host re-renders with new props.
type testHost struct {
	t          *testing.T
	controller *Controller
	props      Props
	patches    []Patch
}

func newTestHost(t *testing.T, adapter calendar.Adapter, props Props, visibility Visibility) *testHost {
	t.Helper()
	host := &testHost{t: t, props: props}
	controller, err := NewController(Config{
		Props:      props,
		Adapter:    adapter,
		Visibility: visibility,
		OnChange:   host.onChange,
	})
	if err != nil {
		t.Fatalf("init controller: %v", err)
	}
	host.controller = controller
	return host
}

func (host *testHost) onChange(patch Patch) {
	host.patches = append(host.patches, patch)
	host.props = patch.Apply(host.props)
	if err := host.controller.SetProps(host.props); err != nil {
		host.t.Fatalf("feed props back: %v", err)
	}
}

func (host *testHost) lastPatch() Patch {
	host.t.Helper()
	if len(host.patches) == 0 {
		host.t.Fatal("expected at least one patch")
	}
	return host.patches[len(host.patches)-1]
}

func assertDateChange(t *testing.T, name string, change DateChange, expected *time.Time) {
	t.Helper()
	if !change.Set {
		t.Fatalf("expected %s to be present in patch", name)
	}
	if expected == nil {
		if change.Value != nil {
			t.Fatalf("expected %s to be cleared, got %s", name, change.Value.Format(calendar.DayLayout))
		}
		return
	}
	if change.Value == nil {
		t.Fatalf("expected %s=%s, got null", name, expected.Format(calendar.DayLayout))
	}
	if change.Value.Format(calendar.DayLayout) != expected.Format(calendar.DayLayout) {
		t.Fatalf("expected %s=%s, got %s", name, expected.Format(calendar.DayLayout), change.Value.Format(calendar.DayLayout))
	}
}

func assertKeys(t *testing.T, patch Patch, expected ...string) {
	t.Helper()
	keys := patch.Keys()
	if len(keys) != len(expected) {
		t.Fatalf("expected patch keys %v, got %v", expected, keys)
	}
	for index := range keys {
		if keys[index] != expected[index] {
			t.Fatalf("expected patch keys %v, got %v", expected, keys)
		}
	}
}

func assertSelecting(t *testing.T, patch Patch, expected bool) {
	t.Helper()
	if patch.Selecting == nil {
		t.Fatalf("expected selecting=%t in patch, got none", expected)
	}
	if *patch.Selecting != expected {
		t.Fatalf("expected selecting=%t in patch, got %t", expected, *patch.Selecting)
	}
}
