package middleware

import (
	"net/http"
	"strings"
	"time"

	"lexdesk/config"
	"lexdesk/logger"
	"lexdesk/models"
	"lexdesk/services"

	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "lexdesk_session"
	// ContextKeyUser is the context key for the authenticated user
	ContextKeyUser = "user"
	// ContextKeySession is the context key for the session
	ContextKeySession = "session"
	// ContextKeyToken is the context key for the session token
	ContextKeyToken = "session_token"
)

// RequireAuth resolves the session from an "Authorization: Bearer" header or
// the session cookie and rejects the request when there is none
func RequireAuth(store *services.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := sessionToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}

			sess, ok := store.Get(token)
			if !ok {
				clearSessionCookie(c)
				logger.Security().Infow("rejected unknown or expired session",
					"ip", c.RealIP(), "path", c.Request().URL.Path)
				return echo.NewHTTPError(http.StatusUnauthorized, "Session expired")
			}

			user := sess.Current()
			if user == nil || !user.Active {
				store.End(token)
				clearSessionCookie(c)
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}

			c.Set(ContextKeyUser, user)
			c.Set(ContextKeySession, sess)
			c.Set(ContextKeyToken, token)
			return next(c)
		}
	}
}

func sessionToken(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// RequireRole is middleware that requires specific roles
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := GetSession(c)
			if sess == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}
			if !sess.HasRole(roles...) {
				logger.Security().Warnw("role check failed",
					"user_id", sess.UserID(), "path", c.Request().URL.Path, "required", roles)
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}

// GetSession retrieves the current session from context
func GetSession(c echo.Context) *services.Session {
	sess, ok := c.Get(ContextKeySession).(*services.Session)
	if !ok {
		return nil
	}
	return sess
}

// GetCurrentUser retrieves the current user from context
func GetCurrentUser(c echo.Context) *models.User {
	user, ok := c.Get(ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

func GetToken(c echo.Context) string {
	token, _ := c.Get(ContextKeyToken).(string)
	return token
}

// SetSessionCookie stores the token for browser clients
func SetSessionCookie(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   isProduction(c),
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie clears the session cookie
func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isProduction(c),
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie is clearSessionCookie for logout handlers
func ClearSessionCookie(c echo.Context) {
	clearSessionCookie(c)
}

func isProduction(c echo.Context) bool {
	cfg, ok := c.Get("config").(*config.Config)
	return ok && cfg.IsProduction()
}
