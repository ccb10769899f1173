package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/datepick/internal/calendar"
	"github.com/terraincognita07/datepick/internal/models"
)

var ErrUnknownDateAdapter = errors.New("unknown date adapter")

func NormalizeDateAdapter(raw string) (string, error) {
	switch kind := strings.ToLower(strings.TrimSpace(raw)); kind {
	case "", models.AdapterTime:
		return models.AdapterTime, nil
	case models.AdapterCivil:
		return models.AdapterCivil, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDateAdapter, raw)
	}
}

// NewDateAdapter builds the calendar adapter named by kind.
func NewDateAdapter(kind string, options calendar.Options) (calendar.Adapter, error) {
	normalized, err := NormalizeDateAdapter(kind)
	if err != nil {
		return nil, err
	}
	if normalized == models.AdapterCivil {
		adapter, err := calendar.NewCivilAdapter(options)
		if err != nil {
			return nil, err
		}
		return adapter, nil
	}
	adapter, err := calendar.NewTimeAdapter(options)
	if err != nil {
		return nil, err
	}
	return adapter, nil
}
