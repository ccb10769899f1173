package calendar

import (
	"cmp"
	"time"

	"cloudeng.io/datetime"
)

// CivilAdapter implements Adapter on civil dates (year, month, day) using
// cloudeng.io/datetime. Times are converted into the adapter's location once
// and never carry a clock component afterwards.
type CivilAdapter struct {
	opts Options
}

func NewCivilAdapter(opts Options) (*CivilAdapter, error) {
	resolved, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	return &CivilAdapter{opts: resolved}, nil
}

func (adapter *CivilAdapter) civil(value time.Time) datetime.CalendarDate {
	year, month, day := value.In(adapter.opts.Location).Date()
	return datetime.CalendarDate{Year: year, Month: datetime.Month(month), Day: day}
}

func (adapter *CivilAdapter) toTime(date datetime.CalendarDate) time.Time {
	return time.Date(date.Year, time.Month(date.Month), date.Day, 0, 0, 0, 0, adapter.opts.Location)
}

func compareCivil(a, b datetime.CalendarDate) int {
	if c := cmp.Compare(a.Year, b.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Month, b.Month); c != 0 {
		return c
	}
	return cmp.Compare(a.Day, b.Day)
}

func (adapter *CivilAdapter) DaysInMonth(d time.Time) int {
	date := adapter.civil(d)
	return datetime.DaysInMonth(date.Year, date.Month)
}

func (adapter *CivilAdapter) FirstWeekdayOfMonth(d time.Time) int {
	date := adapter.civil(d)
	date.Day = 1
	return weekdayColumn(adapter.toTime(date).Weekday(), adapter.opts.WeekStart)
}

func (adapter *CivilAdapter) WeekdayLabel(_ time.Time, index int) string {
	return adapter.opts.Formatter.WeekdayShort(weekdayAtColumn(index, adapter.opts.WeekStart))
}

func (adapter *CivilAdapter) MonthLabel(d time.Time) string {
	return monthLabel(adapter.opts.Formatter, adapter.toTime(adapter.civil(d)))
}

func (adapter *CivilAdapter) AddMonths(d time.Time, n int) time.Time {
	date := adapter.civil(d)
	index := date.Year*12 + int(date.Month-1) + n
	year, month := index/12, index%12
	if month < 0 {
		month += 12
		year--
	}
	shifted := datetime.CalendarDate{Year: year, Month: datetime.Month(month + 1)}
	shifted.Day = clampDay(date.Day, datetime.DaysInMonth(shifted.Year, shifted.Month))
	return adapter.toTime(shifted)
}

func (adapter *CivilAdapter) SubtractMonths(d time.Time, n int) time.Time {
	return adapter.AddMonths(d, -n)
}

func (adapter *CivilAdapter) SetDayOfMonth(d time.Time, day int) time.Time {
	date := adapter.civil(d)
	date.Day = clampDay(day, datetime.DaysInMonth(date.Year, date.Month))
	return adapter.toTime(date)
}

func (adapter *CivilAdapter) IsBeforeDay(a, b time.Time) bool {
	return compareCivil(adapter.civil(a), adapter.civil(b)) < 0
}

func (adapter *CivilAdapter) IsAfterDay(a, b time.Time) bool {
	return compareCivil(adapter.civil(a), adapter.civil(b)) > 0
}

func (adapter *CivilAdapter) IsSameDay(a, b time.Time) bool {
	return adapter.civil(a) == adapter.civil(b)
}

func (adapter *CivilAdapter) IsBetweenInclusiveDay(d, lo, hi time.Time) bool {
	date := adapter.civil(d)
	return compareCivil(date, adapter.civil(lo)) >= 0 && compareCivil(date, adapter.civil(hi)) <= 0
}

func (adapter *CivilAdapter) today() datetime.CalendarDate {
	return adapter.civil(adapter.opts.Clock())
}

func (adapter *CivilAdapter) Now() time.Time {
	return adapter.toTime(adapter.today())
}

func (adapter *CivilAdapter) StartOfWeek() time.Time {
	today := adapter.toTime(adapter.today())
	return today.AddDate(0, 0, -weekdayColumn(today.Weekday(), adapter.opts.WeekStart))
}

func (adapter *CivilAdapter) EndOfWeek() time.Time {
	return adapter.StartOfWeek().AddDate(0, 0, 6)
}

func (adapter *CivilAdapter) StartOfMonth() time.Time {
	date := adapter.today()
	date.Day = 1
	return adapter.toTime(date)
}

func (adapter *CivilAdapter) EndOfMonth() time.Time {
	date := adapter.today()
	date.Day = datetime.DaysInMonth(date.Year, date.Month)
	return adapter.toTime(date)
}
