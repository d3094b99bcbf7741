package middleware

import (
	"time"

	"lexdesk/logger"

	"github.com/labstack/echo/v4"
)

// RequestLog logs one line per request with the authenticated user, if any.
// Denied requests also go to the security logger.
func RequestLog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			status := c.Response().Status
			fields := []interface{}{
				"method", req.Method,
				"path", req.URL.Path,
				"status", status,
				"latency_ms", time.Since(start).Milliseconds(),
				"ip", c.RealIP(),
			}
			if sess := GetSession(c); sess != nil {
				fields = append(fields, "user_id", sess.UserID())
			}

			switch {
			case status >= 500:
				logger.L().Errorw("request failed", fields...)
			case status == 401 || status == 403:
				logger.Security().Warnw("request denied", fields...)
			default:
				logger.L().Infow("request", fields...)
			}
			return nil
		}
	}
}
