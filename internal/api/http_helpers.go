package api

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/datepick/internal/picker"
	"github.com/terraincognita07/datepick/internal/services"
)

// apiError writes {"error": message}, translating message when it is a
// locale key.
func apiError(c *fiber.Ctx, status int, key string) error {
	return c.Status(status).JSON(fiber.Map{"error": translateMessage(currentMessages(c), key)})
}

func translateMessage(messages map[string]string, key string) string {
	if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
		return value
	}
	return key
}

// respondPickerError maps service and core errors to HTTP responses.
func respondPickerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return apiError(c, fiber.StatusNotFound, "error.not_found")
	case errors.Is(err, services.ErrInvalidSessionInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   translateMessage(currentMessages(c), "error.invalid_input"),
			"details": validationDetails(err),
		})
	case errors.Is(err, picker.ErrUnknownPreset):
		return apiError(c, fiber.StatusNotFound, "error.unknown_preset")
	case errors.Is(err, services.ErrUnknownCommand):
		return apiError(c, fiber.StatusNotFound, "error.invalid_input")
	case errors.Is(err, services.ErrSessionNotControlled):
		return apiError(c, fiber.StatusConflict, "error.not_controlled")
	default:
		log.Printf("api: picker request %s %s failed: %v", c.Method(), c.Path(), err)
		return apiError(c, fiber.StatusInternalServerError, "error.internal")
	}
}

// validationDetails flattens the joined validation errors into one line per
// problem.
func validationDetails(err error) []string {
	details := make([]string, 0)
	var walk func(error)
	walk = func(err error) {
		if err == nil || err == services.ErrInvalidSessionInput {
			return
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				walk(inner)
			}
			return
		}
		details = append(details, err.Error())
	}
	walk(err)
	return details
}
