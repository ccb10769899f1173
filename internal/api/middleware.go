package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	languageCookieName = "datepick_lang"
	contextLanguageKey = "current_language"
	contextMessagesKey = "current_messages"
	contextSessionKey  = "picker_session_id"
	contextExplicitKey = "language_explicit"
)

// LanguageMiddleware resolves the request language: ?lang= wins over the
// language cookie, which wins over Accept-Language.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	acceptLanguage := strings.TrimSpace(c.Get(fiber.HeaderAcceptLanguage))
	explicit := acceptLanguage != ""
	language := handler.i18n.DetectFromAcceptLanguage(acceptLanguage)
	if cookieLanguage := strings.TrimSpace(c.Cookies(languageCookieName)); cookieLanguage != "" {
		language = handler.i18n.NormalizeLanguage(cookieLanguage)
		explicit = true
	}
	if queryLanguage := strings.TrimSpace(c.Query("lang")); queryLanguage != "" {
		language = handler.i18n.NormalizeLanguage(queryLanguage)
		handler.setLanguageCookie(c, language)
		explicit = true
	}

	c.Locals(contextLanguageKey, language)
	c.Locals(contextExplicitKey, explicit)
	c.Locals(contextMessagesKey, handler.i18n.Messages(language))
	return c.Next()
}

func (handler *Handler) setLanguageCookie(c *fiber.Ctx, language string) {
	c.Cookie(&fiber.Cookie{
		Name:     languageCookieName,
		Value:    handler.i18n.NormalizeLanguage(language),
		Path:     "/",
		HTTPOnly: false,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  handler.now().AddDate(1, 0, 0),
	})
}

// PickerTokenRequired admits requests whose bearer token was issued for the
// picker named in the path. Repeated failures from one client are throttled.
func (handler *Handler) PickerTokenRequired(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := handler.now()
	if handler.tokenFailures.blocked(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "error.too_many_attempts")
	}

	claims, err := handler.tokens.verify(bearerToken(c))
	if err != nil {
		handler.tokenFailures.recordFailure(limiterKey, now)
		return apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}
	if claims.SessionID != c.Params("id") {
		handler.tokenFailures.recordFailure(limiterKey, now)
		return apiError(c, fiber.StatusForbidden, "error.forbidden")
	}

	c.Locals(contextSessionKey, claims.SessionID)
	return c.Next()
}

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func currentLanguage(c *fiber.Ctx) string {
	language, _ := c.Locals(contextLanguageKey).(string)
	return language
}

// requestedLanguage is the language the client asked for, or "" when the
// request carried no preference and the picker's own language applies.
func requestedLanguage(c *fiber.Ctx) string {
	if explicit, _ := c.Locals(contextExplicitKey).(bool); !explicit {
		return ""
	}
	return currentLanguage(c)
}

func currentMessages(c *fiber.Ctx) map[string]string {
	messages, _ := c.Locals(contextMessagesKey).(map[string]string)
	return messages
}

func currentSessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(contextSessionKey).(string)
	return id
}

