package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DashboardHandler returns the home screen summary. Money totals are left
// out for roles that may not see them.
func (a *API) DashboardHandler(c echo.Context) error {
	sum, err := a.svc.Dashboard.Summary(c.Request().Context(), sessionOf(c))
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, sum)
}

// SendRemindersHandler runs one reminder pass
func (a *API) SendRemindersHandler(c echo.Context) error {
	res, err := a.svc.Reminders.SendDue(c.Request().Context())
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, res)
}
