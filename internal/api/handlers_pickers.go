package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/datepick/internal/picker"
	"github.com/terraincognita07/datepick/internal/services"
)

type createPickerPayload struct {
	Mode          string `json:"mode"`
	WeekStart     string `json:"week_start"`
	Timezone      string `json:"timezone"`
	Language      string `json:"language"`
	DateAdapter   string `json:"date_adapter"`
	DisplayedDate string `json:"displayed_date"`
	Date          string `json:"date"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	MinDate       string `json:"min_date"`
	MaxDate       string `json:"max_date"`
	// Open, when present, hands visibility to the caller.
	Open          *bool `json:"open"`
	InitiallyOpen bool  `json:"initially_open"`
}

type visibilityPayload struct {
	Open *bool `json:"open"`
}

func (handler *Handler) CreatePicker(c *fiber.Ctx) error {
	payload := createPickerPayload{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return apiError(c, fiber.StatusBadRequest, "error.invalid_input")
		}
	}

	language := handler.i18n.NormalizeLanguage(payload.Language)
	if strings.TrimSpace(payload.Language) == "" {
		language = currentLanguage(c)
	}

	result, err := handler.pickers.Create(services.CreatePickerInput{
		Mode:          payload.Mode,
		WeekStart:     payload.WeekStart,
		Timezone:      payload.Timezone,
		Language:      language,
		DateAdapter:   payload.DateAdapter,
		DisplayedDate: payload.DisplayedDate,
		Date:          payload.Date,
		StartDate:     payload.StartDate,
		EndDate:       payload.EndDate,
		MinDate:       payload.MinDate,
		MaxDate:       payload.MaxDate,
		Open:          payload.Open,
		InitiallyOpen: payload.InitiallyOpen,
	})
	if err != nil {
		return respondPickerError(c, err)
	}

	token, err := handler.tokens.issue(result.Session.ID)
	if err != nil {
		return respondPickerError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":  token,
		"picker": buildPickerViewJSON(result, language, handler.i18n),
	})
}

func (handler *Handler) GetPicker(c *fiber.Ctx) error {
	result, err := handler.pickers.Get(currentSessionID(c), requestedLanguage(c))
	if err != nil {
		return respondPickerError(c, err)
	}
	return handler.respondPicker(c, result)
}

func (handler *Handler) OpenPicker(c *fiber.Ctx) error {
	return handler.execute(c, services.Command{Kind: services.CommandOpen})
}

func (handler *Handler) ClosePicker(c *fiber.Ctx) error {
	return handler.execute(c, services.Command{Kind: services.CommandClose})
}

func (handler *Handler) PickDay(c *fiber.Ctx) error {
	day, err := strconv.Atoi(strings.TrimSpace(c.Params("day")))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "error.invalid_day")
	}
	return handler.execute(c, services.PickDay(day))
}

func (handler *Handler) NavigateMonth(c *fiber.Ctx) error {
	switch strings.ToLower(strings.TrimSpace(c.Params("direction"))) {
	case "previous", "prev":
		return handler.execute(c, services.Command{Kind: services.CommandPreviousMonth})
	case "next":
		return handler.execute(c, services.Command{Kind: services.CommandNextMonth})
	default:
		return apiError(c, fiber.StatusNotFound, "error.invalid_input")
	}
}

func (handler *Handler) ApplyPreset(c *fiber.Ctx) error {
	preset, err := picker.ParsePreset(c.Params("preset"))
	if err != nil {
		return respondPickerError(c, err)
	}
	return handler.execute(c, services.ApplyPreset(preset))
}

func (handler *Handler) SetVisibility(c *fiber.Ctx) error {
	payload := visibilityPayload{}
	if err := c.BodyParser(&payload); err != nil || payload.Open == nil {
		return apiError(c, fiber.StatusBadRequest, "error.invalid_input")
	}
	return handler.execute(c, services.SetVisibility(*payload.Open))
}

func (handler *Handler) execute(c *fiber.Ctx, command services.Command) error {
	result, err := handler.pickers.Execute(currentSessionID(c), command, requestedLanguage(c))
	if err != nil {
		return respondPickerError(c, err)
	}
	return handler.respondPicker(c, result)
}

func (handler *Handler) respondPicker(c *fiber.Ctx, result services.PickerResult) error {
	language := requestedLanguage(c)
	if language == "" {
		language = handler.i18n.NormalizeLanguage(result.Session.Language)
	}
	return c.JSON(buildPickerViewJSON(result, language, handler.i18n))
}
