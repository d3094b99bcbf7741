package handlers

import (
	"net/http"

	"lexdesk/models"

	"github.com/labstack/echo/v4"
)

// caseTotal is the body of the per-case total endpoints
type caseTotal struct {
	CaseID uint    `json:"case_id"`
	Total  float64 `json:"total"`
}

// Expenses

func (a *API) ListExpensesHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ctx, sess := c.Request().Context(), sessionOf(c)
	var expenses []models.Expense
	if q, category := c.QueryParam("q"), queryString(c, "category"); q != "" || category != nil {
		expenses, err = a.svc.Expenses.Search(ctx, sess, q, &id, category)
	} else {
		expenses, err = a.svc.Expenses.ListByCase(ctx, sess, id)
	}
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, expenses)
}

func (a *API) ExpenseTotalHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	total, err := a.svc.Expenses.TotalByCase(c.Request().Context(), sessionOf(c), id)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, caseTotal{CaseID: id, Total: total})
}

func (a *API) CreateExpenseHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var e models.Expense
	if err := bind(c, &e); err != nil {
		return err
	}
	e.CaseID = id
	if err := a.svc.Expenses.Create(c.Request().Context(), sessionOf(c), &e); err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusCreated, e)
}

func (a *API) UpdateExpenseHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ctx, sess := c.Request().Context(), sessionOf(c)
	e, err := a.svc.Expenses.Get(ctx, sess, id)
	if err != nil {
		return apiError(err)
	}
	if err := bind(c, e); err != nil {
		return err
	}
	e.ID = id
	if err := a.svc.Expenses.Update(ctx, sess, e); err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, e)
}

func (a *API) DeleteExpenseHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := a.svc.Expenses.Delete(c.Request().Context(), sessionOf(c), id); err != nil {
		return apiError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Fees

// ListFeesHandler lists the fees of a case
func (a *API) ListFeesHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	fees, err := a.svc.Fees.ListByCase(c.Request().Context(), sessionOf(c), id)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, fees)
}

// ListFeesByStatusHandler lists every fee in ?status= across cases
func (a *API) ListFeesByStatusHandler(c echo.Context) error {
	status := c.QueryParam("status")
	if status == "" {
		status = models.FeeStatusPending
	}
	fees, err := a.svc.Fees.ListByStatus(c.Request().Context(), sessionOf(c), status)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, fees)
}

func (a *API) CreateFeeHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var f models.Fee
	if err := bind(c, &f); err != nil {
		return err
	}
	f.CaseID = id
	if err := a.svc.Fees.Create(c.Request().Context(), sessionOf(c), &f); err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusCreated, f)
}

func (a *API) UpdateFeeHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ctx, sess := c.Request().Context(), sessionOf(c)
	f, err := a.svc.Fees.Get(ctx, sess, id)
	if err != nil {
		return apiError(err)
	}
	if err := bind(c, f); err != nil {
		return err
	}
	f.ID = id
	if err := a.svc.Fees.Update(ctx, sess, f); err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, f)
}

func (a *API) SetFeeStatusHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req statusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := a.svc.Fees.SetStatus(c.Request().Context(), sessionOf(c), id, req.Status); err != nil {
		return apiError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (a *API) DeleteFeeHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := a.svc.Fees.Delete(c.Request().Context(), sessionOf(c), id); err != nil {
		return apiError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Payments

func (a *API) ListPaymentsHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ctx, sess := c.Request().Context(), sessionOf(c)
	var payments []models.Payment
	if q, method := c.QueryParam("q"), queryString(c, "method"); q != "" || method != nil {
		payments, err = a.svc.Payments.Search(ctx, sess, q, &id, method)
	} else {
		payments, err = a.svc.Payments.ListByCase(ctx, sess, id)
	}
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, payments)
}

func (a *API) PaymentTotalHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	total, err := a.svc.Payments.TotalByCase(c.Request().Context(), sessionOf(c), id)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, caseTotal{CaseID: id, Total: total})
}

func (a *API) CreatePaymentHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var p models.Payment
	if err := bind(c, &p); err != nil {
		return err
	}
	p.CaseID = id
	if err := a.svc.Payments.Create(c.Request().Context(), sessionOf(c), &p); err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (a *API) UpdatePaymentHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ctx, sess := c.Request().Context(), sessionOf(c)
	p, err := a.svc.Payments.Get(ctx, sess, id)
	if err != nil {
		return apiError(err)
	}
	if err := bind(c, p); err != nil {
		return err
	}
	p.ID = id
	if err := a.svc.Payments.Update(ctx, sess, p); err != nil {
		return apiError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (a *API) DeletePaymentHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := a.svc.Payments.Delete(c.Request().Context(), sessionOf(c), id); err != nil {
		return apiError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
