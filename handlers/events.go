package handlers

import (
	"net/http"
	"strconv"
	"time"

	"lexdesk/repository"
	"lexdesk/services"

	"github.com/labstack/echo/v4"
)

type eventRequest struct {
	Title           string    `json:"title"`
	Description     *string   `json:"description"`
	StartsAt        time.Time `json:"starts_at"`
	DurationMinutes *int      `json:"duration_minutes"`
	Type            string    `json:"type"`
	CaseID          *uint     `json:"case_id"`
	Location        *string   `json:"location"`
	ReminderMinutes *int      `json:"reminder_minutes"`
	Color           *string   `json:"color"`
	OwnerID         uint      `json:"owner_id"`
}

// ListEventsHandler returns the agenda. With ?from=&to= (yyyy-mm-dd, inclusive)
// it lists a range; ?upcoming=N lists the next N pending events; otherwise it
// searches with ?q=, ?case_id=, ?owner_id=, ?type= and ?status=.
func (a *API) ListEventsHandler(c echo.Context) error {
	ctx := c.Request().Context()

	if n := c.QueryParam("upcoming"); n != "" {
		limit, err := strconv.Atoi(n)
		if err != nil || limit <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, errorBody{Error: "must be a positive number", Field: "upcoming"})
		}
		events, err := a.svc.Events.ListUpcoming(ctx, limit)
		if err != nil {
			return apiError(err)
		}
		return c.JSON(http.StatusOK, events)
	}

	from, hasFrom, err := queryDate(c, "from")
	if err != nil {
		return err
	}
	to, hasTo, err := queryDate(c, "to")
	if err != nil {
		return err
	}
	if hasFrom || hasTo {
		if !hasFrom || !hasTo {
			return echo.NewHTTPError(http.StatusBadRequest, errorBody{Error: "from and to go together", Field: "to"})
		}
		events, err := a.svc.Events.ListRange(ctx, from, to.Add(24*time.Hour-time.Nanosecond))
		if err != nil {
			return apiError(err)
		}
		return c.JSON(http.StatusOK, events)
	}

	caseID, err := queryUint(c, "case_id")
	if err != nil {
		return err
	}
	ownerID, err := queryUint(c, "owner_id")
	if err != nil {
		return err
	}
	events, err := a.svc.Events.Search(ctx, c.QueryParam("q"), repository.EventFilter{
		OwnerID: ownerID,
		CaseID:  caseID,
		Type:    queryString(c, "type"),
		Status:  queryString(c, "status"),
	})
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, events)
}

func (a *API) GetEventHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ev, err := a.svc.Events.Get(c.Request().Context(), id)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, ev)
}

func (a *API) CreateEventHandler(c echo.Context) error {
	var req eventRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ev, err := a.svc.Events.Create(c.Request().Context(), sessionOf(c), services.NewEvent{
		Title:           req.Title,
		Description:     req.Description,
		StartsAt:        req.StartsAt,
		DurationMinutes: req.DurationMinutes,
		Type:            req.Type,
		CaseID:          req.CaseID,
		Location:        req.Location,
		ReminderMinutes: req.ReminderMinutes,
		Color:           req.Color,
		OwnerID:         req.OwnerID,
	})
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusCreated, ev)
}

func (a *API) UpdateEventHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	ev, err := a.svc.Events.Get(ctx, id)
	if err != nil {
		return apiError(err)
	}
	if err := bind(c, ev); err != nil {
		return err
	}
	ev.ID = id
	if err := a.svc.Events.Update(ctx, sessionOf(c), ev); err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, ev)
}

// EventStatusHandler applies one of the transitions complete, cancel or reopen
func (a *API) EventStatusHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ctx, sess := c.Request().Context(), sessionOf(c)
	switch c.Param("action") {
	case "complete":
		err = a.svc.Events.Complete(ctx, sess, id)
	case "cancel":
		err = a.svc.Events.Cancel(ctx, sess, id)
	case "reopen":
		err = a.svc.Events.Reopen(ctx, sess, id)
	default:
		return echo.NewHTTPError(http.StatusNotFound, errorBody{Error: "unknown action"})
	}
	if err != nil {
		return apiError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (a *API) DeleteEventHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := a.svc.Events.Delete(c.Request().Context(), sessionOf(c), id); err != nil {
		return apiError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (a *API) ListCaseEventsHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	events, err := a.svc.Events.ListByCase(c.Request().Context(), id)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, events)
}
