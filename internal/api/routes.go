package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api", handler.LanguageMiddleware)

	pickers := api.Group("/pickers")
	pickers.Post("", handler.CreatePicker)
	pickers.Get("/:id", handler.PickerTokenRequired, handler.GetPicker)
	pickers.Post("/:id/open", handler.PickerTokenRequired, handler.OpenPicker)
	pickers.Post("/:id/close", handler.PickerTokenRequired, handler.ClosePicker)
	pickers.Post("/:id/days/:day", handler.PickerTokenRequired, handler.PickDay)
	pickers.Post("/:id/months/:direction", handler.PickerTokenRequired, handler.NavigateMonth)
	pickers.Post("/:id/presets/:preset", handler.PickerTokenRequired, handler.ApplyPreset)
	pickers.Put("/:id/visibility", handler.PickerTokenRequired, handler.SetVisibility)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
