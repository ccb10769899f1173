package calendar

import (
	"time"

	"github.com/jinzhu/now"
)

// TimeAdapter implements Adapter on time.Time, using jinzhu/now for week and
// month boundaries.
type TimeAdapter struct {
	opts   Options
	config *now.Config
}

func NewTimeAdapter(opts Options) (*TimeAdapter, error) {
	resolved, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	return &TimeAdapter{
		opts: resolved,
		config: &now.Config{
			WeekStartDay: resolved.WeekStart,
			TimeLocation: resolved.Location,
		},
	}, nil
}

// at moves value into the adapter's location before any boundary is taken;
// now.Config.With keeps the value's own location.
func (adapter *TimeAdapter) at(value time.Time) *now.Now {
	return adapter.config.With(value.In(adapter.opts.Location))
}

func (adapter *TimeAdapter) day(value time.Time) time.Time {
	return adapter.at(value).BeginningOfDay()
}

func (adapter *TimeAdapter) monthStart(value time.Time) time.Time {
	return adapter.at(value).BeginningOfMonth()
}

func (adapter *TimeAdapter) DaysInMonth(d time.Time) int {
	return adapter.at(d).EndOfMonth().Day()
}

func (adapter *TimeAdapter) FirstWeekdayOfMonth(d time.Time) int {
	return weekdayColumn(adapter.monthStart(d).Weekday(), adapter.opts.WeekStart)
}

func (adapter *TimeAdapter) WeekdayLabel(_ time.Time, index int) string {
	return adapter.opts.Formatter.WeekdayShort(weekdayAtColumn(index, adapter.opts.WeekStart))
}

func (adapter *TimeAdapter) MonthLabel(d time.Time) string {
	return monthLabel(adapter.opts.Formatter, adapter.day(d))
}

func (adapter *TimeAdapter) AddMonths(d time.Time, n int) time.Time {
	target := adapter.monthStart(d).AddDate(0, n, 0)
	day := clampDay(adapter.day(d).Day(), adapter.DaysInMonth(target))
	return target.AddDate(0, 0, day-1)
}

func (adapter *TimeAdapter) SubtractMonths(d time.Time, n int) time.Time {
	return adapter.AddMonths(d, -n)
}

func (adapter *TimeAdapter) SetDayOfMonth(d time.Time, day int) time.Time {
	start := adapter.monthStart(d)
	return start.AddDate(0, 0, clampDay(day, adapter.DaysInMonth(start))-1)
}

func (adapter *TimeAdapter) IsBeforeDay(a, b time.Time) bool {
	return adapter.day(a).Before(adapter.day(b))
}

func (adapter *TimeAdapter) IsAfterDay(a, b time.Time) bool {
	return adapter.day(a).After(adapter.day(b))
}

func (adapter *TimeAdapter) IsSameDay(a, b time.Time) bool {
	return adapter.day(a).Equal(adapter.day(b))
}

func (adapter *TimeAdapter) IsBetweenInclusiveDay(d, lo, hi time.Time) bool {
	return !adapter.IsBeforeDay(d, lo) && !adapter.IsAfterDay(d, hi)
}

func (adapter *TimeAdapter) Now() time.Time {
	return adapter.day(adapter.opts.Clock())
}

func (adapter *TimeAdapter) StartOfWeek() time.Time {
	return adapter.at(adapter.opts.Clock()).BeginningOfWeek()
}

func (adapter *TimeAdapter) EndOfWeek() time.Time {
	return adapter.day(adapter.at(adapter.opts.Clock()).EndOfWeek())
}

func (adapter *TimeAdapter) StartOfMonth() time.Time {
	return adapter.monthStart(adapter.opts.Clock())
}

func (adapter *TimeAdapter) EndOfMonth() time.Time {
	return adapter.day(adapter.at(adapter.opts.Clock()).EndOfMonth())
}
