package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"lexdesk/config"
	"lexdesk/services/i18n"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestLocale(t *testing.T) {
	e := echo.New()
	cfg := &config.Config{Environment: "development"}

	run := func(req *http.Request) (echo.Context, *httptest.ResponseRecorder, string) {
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		var fromCtx string
		handler := Locale(cfg)(func(c echo.Context) error {
			fromCtx = i18n.GetLocale(c.Request().Context())
			return c.NoContent(http.StatusOK)
		})
		assert.NoError(t, handler(c))
		return c, rec, fromCtx
	}

	t.Run("PriorityQueryParam", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?lang=en", nil)
		req.Header.Set("Accept-Language", "es-AR")
		c, rec, fromCtx := run(req)

		assert.Equal(t, "en", c.Get("locale"))
		assert.Equal(t, "en", fromCtx)
		found := false
		for _, cookie := range rec.Result().Cookies() {
			if cookie.Name == "lang" {
				assert.Equal(t, "en", cookie.Value)
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("UnsupportedQueryParam", func(t *testing.T) {
		c, _, _ := run(httptest.NewRequest(http.MethodGet, "/?lang=fr", nil))
		assert.Equal(t, "es", c.Get("locale"))
	})

	t.Run("PriorityCookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "lang", Value: "en"})
		req.Header.Set("Accept-Language", "es-AR")
		c, _, _ := run(req)
		assert.Equal(t, "en", c.Get("locale"))
	})

	t.Run("PriorityHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", "fr-FR,en-US;q=0.8,es;q=0.5")
		c, _, fromCtx := run(req)
		assert.Equal(t, "en", c.Get("locale"))
		assert.Equal(t, "en", fromCtx)
	})

	t.Run("DefaultLanguage", func(t *testing.T) {
		c, _, fromCtx := run(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "es", c.Get("locale"))
		assert.Equal(t, "es", fromCtx)
	})
}

func TestGetLocale(t *testing.T) {
	e := echo.New()
	t.Run("WithLocale", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		c.Set("locale", "en")
		assert.Equal(t, "en", GetLocale(c))
	})

	t.Run("WithoutLocale", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		assert.Equal(t, "es", GetLocale(c))
	})
}
