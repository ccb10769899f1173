package i18n

import (
	"strconv"
	"time"
)

// Formatter resolves calendar names from a locale. It satisfies
// calendar.Formatter.
type Formatter struct {
	manager  *Manager
	language string
}

func (manager *Manager) Formatter(lang string) Formatter {
	return Formatter{manager: manager, language: manager.NormalizeLanguage(lang)}
}

func (formatter Formatter) Language() string {
	return formatter.language
}

func (formatter Formatter) MonthName(month time.Month) string {
	key := "month." + strconv.Itoa(int(month))
	if value, ok := formatter.lookup(key); ok {
		return value
	}
	return month.String()
}

func (formatter Formatter) WeekdayShort(weekday time.Weekday) string {
	key := "weekday.short." + strconv.Itoa(int(weekday))
	if value, ok := formatter.lookup(key); ok {
		return value
	}
	return weekday.String()[:2]
}

func (formatter Formatter) lookup(key string) (string, bool) {
	if value, ok := formatter.manager.lookup(formatter.language, key); ok {
		return value, true
	}
	return formatter.manager.lookup(formatter.manager.defaultLanguage, key)
}
