package handlers

import (
	"net/http"

	"lexdesk/models"
	"lexdesk/repository"

	"github.com/labstack/echo/v4"
)

// ListClientsHandler lists or searches clients. ?q= matches name, DNI, CUIT,
// e-mail and phones; ?active=true keeps active ones only.
func (a *API) ListClientsHandler(c echo.Context) error {
	ctx := c.Request().Context()
	q := c.QueryParam("q")
	filter := repository.ClientFilter{
		ActiveOnly: queryBool(c, "active"),
		City:       queryString(c, "city"),
		Province:   queryString(c, "province"),
	}

	var clients []models.Client
	var err error
	if q == "" && filter.City == nil && filter.Province == nil {
		clients, err = a.svc.Clients.List(ctx, filter.ActiveOnly)
	} else {
		clients, err = a.svc.Clients.Search(ctx, q, filter)
	}
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, clients)
}

func (a *API) GetClientHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	client, err := a.svc.Clients.Get(c.Request().Context(), id)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, client)
}

func (a *API) CreateClientHandler(c echo.Context) error {
	var client models.Client
	if err := bind(c, &client); err != nil {
		return err
	}
	if err := a.svc.Clients.Create(c.Request().Context(), sessionOf(c), &client); err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusCreated, client)
}

// UpdateClientHandler applies the fields present in the body over the stored client
func (a *API) UpdateClientHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	client, err := a.svc.Clients.Get(ctx, id)
	if err != nil {
		return apiError(err)
	}
	if err := bind(c, client); err != nil {
		return err
	}
	client.ID = id
	if err := a.svc.Clients.Update(ctx, sessionOf(c), client); err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, client)
}

func (a *API) SetClientActiveHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req activeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := a.svc.Clients.SetActive(c.Request().Context(), sessionOf(c), id, req.Active); err != nil {
		return apiError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (a *API) DeleteClientHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := a.svc.Clients.Delete(c.Request().Context(), sessionOf(c), id); err != nil {
		return apiError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (a *API) ListClientCasesHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	cases, err := a.svc.Cases.ListByClient(c.Request().Context(), id)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, cases)
}

func (a *API) ListClientPaymentsHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	payments, err := a.svc.Payments.ListByClient(c.Request().Context(), sessionOf(c), id)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, payments)
}
