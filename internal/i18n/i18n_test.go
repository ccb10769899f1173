package i18n

import (
	"testing"
	"testing/fstest"
	"time"
)

func newTestManager(t *testing.T, defaultLanguage string) *Manager {
	t.Helper()
	manager, err := NewEmbeddedManager(defaultLanguage)
	if err != nil {
		t.Fatalf("init i18n manager: %v", err)
	}
	return manager
}

func TestNewEmbeddedManagerLoadsAllLocales(t *testing.T) {
	manager := newTestManager(t, "")

	supported := manager.SupportedLanguages()
	expected := []string{LangDE, LangEN, LangRU}
	if len(supported) != len(expected) {
		t.Fatalf("expected languages %v, got %v", expected, supported)
	}
	for index := range expected {
		if supported[index] != expected[index] {
			t.Fatalf("expected languages %v, got %v", expected, supported)
		}
	}
	if manager.DefaultLanguage() != LangEN {
		t.Fatalf("expected default language en, got %q", manager.DefaultLanguage())
	}
}

func TestNewManagerRejectsMissingEnglish(t *testing.T) {
	locales := fstest.MapFS{
		"ru.json": {Data: []byte(`{"month.1":"Январь"}`)},
	}
	if _, err := NewManager("ru", locales); err == nil {
		t.Fatal("expected error when en locale is missing")
	}
}

func TestNewManagerRejectsEmptyLocale(t *testing.T) {
	locales := fstest.MapFS{
		"en.json": {Data: []byte(`{}`)},
	}
	if _, err := NewManager("en", locales); err == nil {
		t.Fatal("expected error for an empty locale")
	}
}

func TestNormalizeLanguage(t *testing.T) {
	manager := newTestManager(t, "ru")

	cases := map[string]string{
		"":      LangRU,
		"EN":    LangEN,
		"de_AT": LangDE,
		"ru-RU": LangRU,
		"fr":    LangRU,
	}
	for raw, expected := range cases {
		if got := manager.NormalizeLanguage(raw); got != expected {
			t.Fatalf("NormalizeLanguage(%q): expected %q, got %q", raw, expected, got)
		}
	}
}

func TestDetectFromAcceptLanguage(t *testing.T) {
	manager := newTestManager(t, "en")

	cases := []struct {
		header   string
		expected string
	}{
		{"", LangEN},
		{"ru-RU,ru;q=0.9,en;q=0.8", LangRU},
		{"de;q=0.5, ru;q=0.9", LangRU},
		{"de-CH", LangDE},
		{"fr-FR", LangEN},
		{";;;", LangEN},
	}
	for _, tc := range cases {
		if got := manager.DetectFromAcceptLanguage(tc.header); got != tc.expected {
			t.Fatalf("DetectFromAcceptLanguage(%q): expected %q, got %q", tc.header, tc.expected, got)
		}
	}
}

func TestTranslateFallsBackToDefaultThenKey(t *testing.T) {
	locales := fstest.MapFS{
		"en.json": {Data: []byte(`{"preset.today":"Today","nav.next":"Next month"}`)},
		"ru.json": {Data: []byte(`{"preset.today":"Сегодня","nav.next":" "}`)},
	}
	manager, err := NewManager("en", locales)
	if err != nil {
		t.Fatalf("init manager: %v", err)
	}

	if got := manager.Translate("ru", "preset.today"); got != "Сегодня" {
		t.Fatalf("expected ru translation, got %q", got)
	}
	if got := manager.Translate("ru", "nav.next"); got != "Next month" {
		t.Fatalf("expected blank ru value to fall back to en, got %q", got)
	}
	if got := manager.Translate("ru", "missing.key"); got != "missing.key" {
		t.Fatalf("expected key fallback, got %q", got)
	}
	if got := manager.Messages("ru")["nav.next"]; got != " " {
		t.Fatalf("expected merged messages to keep the ru override, got %q", got)
	}
}

func TestFormatterUsesLocaleNames(t *testing.T) {
	manager := newTestManager(t, "en")

	ru := manager.Formatter("ru-RU")
	if ru.Language() != LangRU {
		t.Fatalf("expected ru formatter, got %q", ru.Language())
	}
	if got := ru.MonthName(time.March); got != "Март" {
		t.Fatalf("expected Март, got %q", got)
	}
	if got := ru.WeekdayShort(time.Monday); got != "Пн" {
		t.Fatalf("expected Пн, got %q", got)
	}

	de := manager.Formatter("de")
	if got := de.MonthName(time.March); got != "März" {
		t.Fatalf("expected März, got %q", got)
	}
	if got := manager.Formatter("xx").WeekdayShort(time.Sunday); got != "Su" {
		t.Fatalf("expected default-language weekday, got %q", got)
	}
}

func TestFormatterFallsBackToEnglishNames(t *testing.T) {
	locales := fstest.MapFS{
		"en.json": {Data: []byte(`{"preset.today":"Today"}`)},
	}
	manager, err := NewManager("en", locales)
	if err != nil {
		t.Fatalf("init manager: %v", err)
	}

	formatter := manager.Formatter("en")
	if got := formatter.MonthName(time.December); got != "December" {
		t.Fatalf("expected December, got %q", got)
	}
	if got := formatter.WeekdayShort(time.Thursday); got != "Th" {
		t.Fatalf("expected Th, got %q", got)
	}
}
