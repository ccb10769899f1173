package api

import (
	"time"

	"github.com/terraincognita07/datepick/internal/calendar"
	"github.com/terraincognita07/datepick/internal/i18n"
	"github.com/terraincognita07/datepick/internal/models"
	"github.com/terraincognita07/datepick/internal/picker"
	"github.com/terraincognita07/datepick/internal/services"
)

type pickerCellJSON struct {
	Day      int    `json:"day"`
	Empty    bool   `json:"empty"`
	Selected bool   `json:"selected"`
	Disabled bool   `json:"disabled"`
	State    string `json:"state"`
}

type pickerPresetJSON struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type pickerViewJSON struct {
	ID             string              `json:"id"`
	Language       string              `json:"language"`
	Mode           string              `json:"mode"`
	MonthLabel     string              `json:"month_label"`
	DisplayedMonth string              `json:"displayed_month"`
	Headers        [7]string           `json:"headers"`
	Weeks          [][7]pickerCellJSON `json:"weeks"`
	Open           bool                `json:"open"`
	Controlled     bool                `json:"controlled"`
	Selecting      bool                `json:"selecting"`
	Date           string              `json:"date,omitempty"`
	StartDate      string              `json:"start_date,omitempty"`
	EndDate        string              `json:"end_date,omitempty"`
	MinDate        string              `json:"min_date,omitempty"`
	MaxDate        string              `json:"max_date,omitempty"`
	Presets        []pickerPresetJSON  `json:"presets"`
	Changes        []map[string]any    `json:"changes,omitempty"`
}

var cellStateNames = map[picker.CellState]string{
	picker.CellEmpty:    "empty",
	picker.CellNormal:   "normal",
	picker.CellSelected: "selected",
	picker.CellDisabled: "disabled",
}

func buildPickerViewJSON(result services.PickerResult, language string, manager *i18n.Manager) pickerViewJSON {
	session := result.Session
	view := result.View
	location := sessionLocation(session)

	weeks := make([][7]pickerCellJSON, 0, len(view.Weeks))
	for _, week := range view.Weeks {
		var row [7]pickerCellJSON
		for index, cell := range week {
			row[index] = pickerCellJSON{
				Day:      cell.Day,
				Empty:    cell.Empty(),
				Selected: cell.Selected,
				Disabled: cell.Disabled,
				State:    cellStateNames[cell.State()],
			}
		}
		weeks = append(weeks, row)
	}

	presets := make([]pickerPresetJSON, 0, len(picker.Presets()))
	for _, preset := range picker.Presets() {
		presets = append(presets, pickerPresetJSON{
			ID:    string(preset),
			Label: manager.Translate(language, "preset."+string(preset)),
		})
	}

	changes := make([]map[string]any, 0, len(result.Changes))
	for _, patch := range result.Changes {
		changes = append(changes, patchJSON(patch))
	}

	return pickerViewJSON{
		ID:             session.ID,
		Language:       language,
		Mode:           view.Mode.String(),
		MonthLabel:     view.MonthLabel,
		DisplayedMonth: session.DisplayedDate.In(location).Format(calendar.MonthLayout),
		Headers:        view.Headers,
		Weeks:          weeks,
		Open:           view.Open,
		Controlled:     session.Controlled,
		Selecting:      view.Selecting,
		Date:           formatSessionDay(session.Date, location),
		StartDate:      formatSessionDay(session.StartDate, location),
		EndDate:        formatSessionDay(session.EndDate, location),
		MinDate:        formatSessionDay(session.MinDate, location),
		MaxDate:        formatSessionDay(session.MaxDate, location),
		Presets:        presets,
		Changes:        changes,
	}
}

func sessionLocation(session models.PickerSession) *time.Location {
	location, err := time.LoadLocation(session.Timezone)
	if err != nil {
		return time.UTC
	}
	return location
}

// formatSessionDay formats a stored date in the session's own timezone.
func formatSessionDay(value *time.Time, location *time.Location) string {
	if value == nil {
		return ""
	}
	day := calendar.DateAtLocation(*value, location)
	return calendar.FormatDay(&day)
}

// patchJSON renders only the keys present in patch; cleared dates are null.
func patchJSON(patch picker.Patch) map[string]any {
	payload := make(map[string]any, len(patch.Keys()))
	dateChange := func(key string, change picker.DateChange) {
		if !change.Set {
			return
		}
		if change.Value == nil {
			payload[key] = nil
			return
		}
		payload[key] = change.Value.Format(calendar.DayLayout)
	}
	dateChange("date", patch.Date)
	dateChange("start_date", patch.StartDate)
	dateChange("end_date", patch.EndDate)
	if patch.DisplayedDate != nil {
		payload["displayed_date"] = patch.DisplayedDate.Format(calendar.DayLayout)
	}
	if patch.Selecting != nil {
		payload["selecting"] = *patch.Selecting
	}
	return payload
}
