package middleware

import (
	"time"

	"github.com/abstravel/site/internal/i18n"
	"github.com/gofiber/fiber/v2"
)

const localizerKey = "localizer"

// LangCookie remembers the visitor's language choice.
const LangCookie = "abs_lang"

// LanguageConfig configures per-request language resolution.
type LanguageConfig struct {
	Default i18n.Lang
	Secure  bool
}

// Language resolves the request language from ?lang=, then the cookie, then
// Accept-Language, then the default. An explicit ?lang= is remembered.
func Language(cfg LanguageConfig) fiber.Handler {
	if cfg.Default == "" {
		cfg.Default = i18n.Default
	}

	return func(c *fiber.Ctx) error {
		lang, ok := i18n.Parse(c.Query("lang"))
		if ok {
			SetLanguage(c, lang, cfg.Secure)
		} else if lang, ok = i18n.Parse(c.Cookies(LangCookie)); !ok {
			lang = i18n.Negotiate(c.Get(fiber.HeaderAcceptLanguage), cfg.Default)
		}

		c.Locals(localizerKey, i18n.Localizer{Lang: lang})
		return c.Next()
	}
}

// SetLanguage stores the choice for later requests and for the rest of this
// one.
func SetLanguage(c *fiber.Ctx, lang i18n.Lang, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     LangCookie,
		Value:    string(lang),
		Path:     "/",
		Expires:  time.Now().AddDate(1, 0, 0),
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	c.Locals(localizerKey, i18n.Localizer{Lang: lang})
}

// Localizer returns the request's localizer, or the default language when
// Language did not run.
func Localizer(c *fiber.Ctx) i18n.Localizer {
	if l, ok := c.Locals(localizerKey).(i18n.Localizer); ok {
		return l
	}
	return i18n.Localizer{Lang: i18n.Default}
}
