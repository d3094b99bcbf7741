package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"lexdesk/services"

	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func attachment(c echo.Context, name, contentType string, body []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, contentType, body)
}

func (a *API) ExportCasesHandler(c echo.Context) error {
	buf, err := a.svc.Exports.ExportCases(c.Request().Context(), sessionOf(c))
	if err != nil {
		return apiError(err)
	}
	return attachment(c, services.ExportFileName("expedientes", timeNow()), xlsxContentType, buf.Bytes())
}

func (a *API) ExportClientsHandler(c echo.Context) error {
	buf, err := a.svc.Exports.ExportClients(c.Request().Context(), sessionOf(c))
	if err != nil {
		return apiError(err)
	}
	return attachment(c, services.ExportFileName("clientes", timeNow()), xlsxContentType, buf.Bytes())
}

func (a *API) ExportLedgerHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var buf *bytes.Buffer
	if buf, err = a.svc.Exports.ExportCaseLedger(c.Request().Context(), sessionOf(c), id); err != nil {
		return apiError(err)
	}
	return attachment(c, services.ExportFileName(fmt.Sprintf("cuenta_%d", id), timeNow()), xlsxContentType, buf.Bytes())
}

// CaseReportHandler renders the case report; ?format=pdf goes through headless Chrome
func (a *API) CaseReportHandler(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	ctx, sess := c.Request().Context(), sessionOf(c)

	if c.QueryParam("format") == "pdf" {
		pdf, err := a.svc.Reports.RenderCaseReportPDF(ctx, sess, id)
		if err != nil {
			return apiError(err)
		}
		return attachment(c, fmt.Sprintf("expediente_%d.pdf", id), "application/pdf", pdf)
	}

	html, err := a.svc.Reports.RenderCaseReportHTML(ctx, sess, id)
	if err != nil {
		return apiError(err)
	}
	return c.HTML(http.StatusOK, html)
}
