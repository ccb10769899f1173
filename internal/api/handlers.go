package api

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/datepick/internal/db"
	"github.com/terraincognita07/datepick/internal/i18n"
	"github.com/terraincognita07/datepick/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	db            *gorm.DB
	repositories  *db.Repositories
	pickers       *services.PickerService
	i18n          *i18n.Manager
	tokens        *pickerTokenCodec
	tokenFailures *attemptLimiter
	defaults      services.PickerDefaults
	cookieSecure  bool
	now           func() time.Time
}

func NewHandler(database *gorm.DB, secret string, i18nManager *i18n.Manager, defaults services.PickerDefaults, cookieSecure bool) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if defaults.Location == nil {
		defaults.Location = time.UTC
	}
	if strings.TrimSpace(defaults.Language) == "" {
		defaults.Language = i18nManager.DefaultLanguage()
	}

	tokens, err := newPickerTokenCodec([]byte(secret))
	if err != nil {
		return nil, err
	}

	handler := &Handler{
		db:            database,
		i18n:          i18nManager,
		tokens:        tokens,
		tokenFailures: newAttemptLimiter(tokenFailureLimit, tokenFailureWindow),
		defaults:      defaults,
		cookieSecure:  cookieSecure,
		now:           time.Now,
	}
	return handler.withDependencies(database), nil
}

// WithClock pins "now" for tokens, presets and new sessions.
func (handler *Handler) WithClock(clock func() time.Time) *Handler {
	if clock == nil {
		return handler
	}
	handler.now = clock
	handler.tokens.now = clock
	handler.pickers.WithClock(clock)
	return handler
}
