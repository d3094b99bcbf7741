package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lexdesk/config"
	"lexdesk/logger"
	"lexdesk/middleware"
	"lexdesk/repository"
	"lexdesk/services"

	"github.com/labstack/echo/v4"
)

// API serves the service layer over JSON. Handlers hold no business rules.
type API struct {
	svc      *services.Services
	sessions *services.SessionStore
	cfg      *config.Config
}

func NewAPI(svc *services.Services, sessions *services.SessionStore, cfg *config.Config) *API {
	return &API{svc: svc, sessions: sessions, cfg: cfg}
}

// errorBody is the JSON shape of every error response
type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// apiError maps a service error onto an HTTP error
func apiError(err error) *echo.HTTPError {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		code := http.StatusBadRequest
		if verr.Duplicate {
			code = http.StatusConflict
		}
		return echo.NewHTTPError(code, errorBody{Error: verr.Message, Field: verr.Field})
	case errors.Is(err, services.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, errorBody{Error: "not found"})
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, errorBody{Error: "insufficient permissions"})
	case errors.Is(err, services.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, errorBody{Error: "invalid username or password"})
	case errors.Is(err, services.ErrLoginThrottled):
		return echo.NewHTTPError(http.StatusTooManyRequests, errorBody{Error: "too many failed attempts, try again later"})
	case errors.Is(err, services.ErrFileTooLarge):
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, errorBody{Error: "file too large"})
	}
	logger.L().Errorw("request failed", "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, errorBody{Error: "internal error"})
}

// ErrorHandler renders every error as errorBody JSON
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		he = apiError(err)
	}
	body, ok := he.Message.(errorBody)
	if !ok {
		body = errorBody{Error: strings.ToLower(http.StatusText(he.Code))}
		if msg, isString := he.Message.(string); isString && msg != "" {
			body.Error = msg
		}
	}
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(he.Code)
	} else {
		err = c.JSON(he.Code, body)
	}
	if err != nil {
		logger.L().Errorw("failed to write error response", "error", err)
	}
}

// timeNow stamps export file names
var timeNow = time.Now

func sessionOf(c echo.Context) *services.Session {
	return middleware.GetSession(c)
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errorBody{Error: "invalid id", Field: name})
	}
	return uint(id), nil
}

func queryString(c echo.Context, name string) *string {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return nil
	}
	return &v
}

func queryUint(c echo.Context, name string) (*uint, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errorBody{Error: "must be a number", Field: name})
	}
	id := uint(n)
	return &id, nil
}

func queryBool(c echo.Context, name string) bool {
	v, _ := strconv.ParseBool(c.QueryParam(name))
	return v
}

// queryDate parses a yyyy-mm-dd or dd/mm/yyyy query parameter
func queryDate(c echo.Context, name string) (time.Time, bool, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return time.Time{}, false, nil
	}
	d, err := services.ParseDate(v)
	if err != nil {
		return time.Time{}, false, echo.NewHTTPError(http.StatusBadRequest, errorBody{Error: "expected yyyy-mm-dd or dd/mm/yyyy", Field: name})
	}
	return d, true, nil
}

func bind(c echo.Context, dst interface{}) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errorBody{Error: "malformed request body"})
	}
	return nil
}
