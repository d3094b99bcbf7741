package middleware

import (
	"net/http"
	"strings"
	"time"

	"lexdesk/config"
	"lexdesk/logger"
	"lexdesk/services/i18n"

	"github.com/labstack/echo/v4"
)

// Locale middleware picks the response language.
// Priority:
// 1. Query param "lang" (sets cookie)
// 2. Cookie "lang"
// 3. Accept-Language header
// 4. Default ("es")
func Locale(cfg *config.Config) echo.MiddlewareFunc {
	if err := i18n.EnsureLoaded(); err != nil {
		logger.L().Errorw("failed to load translations", "error", err)
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := strings.ToLower(c.QueryParam("lang"))
			if lang != "" {
				if !i18n.IsSupported(lang) {
					lang = i18n.DefaultLanguage
				}
				setLanguageCookie(c, lang, cfg != nil && cfg.IsProduction())
			} else if cookie, err := c.Cookie("lang"); err == nil && i18n.IsSupported(cookie.Value) {
				lang = cookie.Value
			}

			if lang == "" {
				lang = fromAcceptLanguage(c.Request().Header.Get("Accept-Language"))
			}

			c.Set("locale", lang)
			c.SetRequest(c.Request().WithContext(i18n.WithLocale(c.Request().Context(), lang)))
			return next(c)
		}
	}
}

// fromAcceptLanguage returns the first supported primary tag of the header
func fromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		primary, _, _ := strings.Cut(tag, "-")
		primary = strings.ToLower(primary)
		if i18n.IsSupported(primary) {
			return primary
		}
	}
	return i18n.DefaultLanguage
}

func setLanguageCookie(c echo.Context, lang string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     "lang",
		Value:    lang,
		Expires:  time.Now().Add(24 * 365 * time.Hour), // 1 year
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetLocale returns the current locale from context
func GetLocale(c echo.Context) string {
	if lang, ok := c.Get("locale").(string); ok {
		return lang
	}
	return i18n.DefaultLanguage
}
