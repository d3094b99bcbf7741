package middleware

import (
	"net/http"
	"strconv"
	"time"

	"lexdesk/logger"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"
)

// RateLimitConfig defines the configuration for rate limiting
type RateLimitConfig struct {
	// Requests is the maximum number of requests allowed within the window
	Requests int
	// Window is the time window for rate limiting
	Window time.Duration
	// KeyFunc is a function that returns a unique key for rate limiting (defaults to IP)
	KeyFunc func(c echo.Context) string
	// Message is the error message returned when rate limit is exceeded
	Message string
}

// RateLimiter is a fixed-window limiter. Counters expire with their window.
type RateLimiter struct {
	config RateLimitConfig
	store  *cache.Cache
}

// NewRateLimiter creates a new rate limiter with the given configuration
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c echo.Context) string {
			return c.RealIP()
		}
	}
	if config.Message == "" {
		config.Message = "Too many requests. Please try again later."
	}
	return &RateLimiter{
		config: config,
		store:  cache.New(config.Window, time.Minute),
	}
}

// hit counts one request for key and returns the count within the window
func (rl *RateLimiter) hit(key string) int {
	if err := rl.store.Add(key, 1, rl.config.Window); err == nil {
		return 1
	}
	n, err := rl.store.IncrementInt(key, 1)
	if err != nil {
		rl.store.Set(key, 1, rl.config.Window)
		return 1
	}
	return n
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := rl.config.KeyFunc(c)
			if rl.hit(key) > rl.config.Requests {
				logger.Security().Warnw("rate limit exceeded", "key", key, "path", c.Request().URL.Path)
				c.Response().Header().Set("Retry-After", retryAfter(rl.config.Window))
				return echo.NewHTTPError(http.StatusTooManyRequests, rl.config.Message)
			}
			return next(c)
		}
	}
}

func retryAfter(window time.Duration) string {
	secs := int(window.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// LoginRateLimiter limits login requests to 10 per minute per IP. Per-user
// lockout is handled by the login throttle.
func LoginRateLimiter() *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		Requests: 10,
		Window:   time.Minute,
		Message:  "Too many login attempts. Please wait a minute before trying again.",
	})
}

// APIRateLimiter limits general API requests to 120 per minute per IP
func APIRateLimiter() *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		Requests: 120,
		Window:   time.Minute,
		Message:  "Rate limit exceeded. Please slow down your requests.",
	})
}
