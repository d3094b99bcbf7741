package handlers

import (
	"net/http"

	"lexdesk/models"
	"lexdesk/repository"

	"github.com/labstack/echo/v4"
)

// ListCasesHandler lists or searches case files. ?open=true hides archived and
// finished cases.
func (a *API) ListCasesHandler(c echo.Context) error {
	ctx := c.Request().Context()
	clientID, err := queryUint(c, "client_id")
	if err != nil {
		return err
	}
	q := c.QueryParam("q")
	filter := repository.CaseFilter{
		Status:       queryString(c, "status"),
		ClientID:     clientID,
		Jurisdiction: queryString(c, "jurisdiction"),
		OpenOnly:     queryBool(c, "open"),
	}

	var cases []models.Case
	if q == "" && filter.Status == nil && filter.ClientID == nil && filter.Jurisdiction == nil {
		cases, err = a.svc.Cases.List(ctx, filter.OpenOnly)
	} else {
		cases, err = a.svc.Cases.Search(ctx, q, filter)
	}
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, cases)
}

func (a *API) GetCaseHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	kase, err := a.svc.Cases.Get(c.Request().Context(), id)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, kase)
}

func (a *API) CreateCaseHandler(c echo.Context) error {
	var kase models.Case
	if err := bind(c, &kase); err != nil {
		return err
	}
	if err := a.svc.Cases.Create(c.Request().Context(), sessionOf(c), &kase); err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusCreated, kase)
}

func (a *API) UpdateCaseHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	kase, err := a.svc.Cases.Get(ctx, id)
	if err != nil {
		return apiError(err)
	}
	if err := bind(c, kase); err != nil {
		return err
	}
	kase.ID = id
	if err := a.svc.Cases.Update(ctx, sessionOf(c), kase); err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, kase)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (a *API) ChangeCaseStatusHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req statusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := a.svc.Cases.ChangeStatus(c.Request().Context(), sessionOf(c), id, req.Status); err != nil {
		return apiError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (a *API) DeleteCaseHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := a.svc.Cases.Delete(c.Request().Context(), sessionOf(c), id); err != nil {
		return apiError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListMovementsHandler lists the docket of a case, newest first
func (a *API) ListMovementsHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	var movements []models.Movement
	if q, typ := c.QueryParam("q"), queryString(c, "type"); q != "" || typ != nil {
		movements, err = a.svc.Movements.Search(ctx, q, &id, typ)
	} else {
		movements, err = a.svc.Movements.ListByCase(ctx, id)
	}
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, movements)
}

func (a *API) CreateMovementHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var m models.Movement
	if err := bind(c, &m); err != nil {
		return err
	}
	m.CaseID = id
	if err := a.svc.Movements.Create(c.Request().Context(), sessionOf(c), &m); err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (a *API) UpdateMovementHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	m, err := a.svc.Movements.Get(ctx, id)
	if err != nil {
		return apiError(err)
	}
	if err := bind(c, m); err != nil {
		return err
	}
	m.ID = id
	if err := a.svc.Movements.Update(ctx, sessionOf(c), m); err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, m)
}

func (a *API) DeleteMovementHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := a.svc.Movements.Delete(c.Request().Context(), sessionOf(c), id); err != nil {
		return apiError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
