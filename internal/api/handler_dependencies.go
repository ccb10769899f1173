package api

import (
	"github.com/terraincognita07/datepick/internal/calendar"
	"github.com/terraincognita07/datepick/internal/db"
	"github.com/terraincognita07/datepick/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.pickers = services.NewPickerService(handler.repositories.Sessions, handler.formatterFor, handler.defaults)
	return handler
}

func (handler *Handler) formatterFor(language string) calendar.Formatter {
	return handler.i18n.Formatter(language)
}
