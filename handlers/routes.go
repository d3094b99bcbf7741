package handlers

import (
	"fmt"

	"lexdesk/middleware"
	"lexdesk/models"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// NewServer builds the echo instance with every API route registered
func NewServer(a *API) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler

	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestLog())
	// Multipart overhead on top of the document limit
	e.Use(echomiddleware.BodyLimit(fmt.Sprintf("%dK", a.svc.Documents.MaxSize()/1024+512)))
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", a.cfg)
			return next(c)
		}
	})
	e.Use(middleware.Locale(a.cfg))

	Register(e, a)
	return e
}

// Register mounts the API under /api
func Register(e *echo.Echo, a *API) {
	api := e.Group("/api")
	api.POST("/auth/login", a.LoginHandler, middleware.LoginRateLimiter().Middleware())

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(a.sessions))
	protected.Use(middleware.APIRateLimiter().Middleware())
	{
		protected.POST("/auth/logout", a.LogoutHandler)
		protected.GET("/auth/me", a.MeHandler)
		protected.PUT("/users/:id/password", a.ChangePasswordHandler)

		protected.GET("/dashboard", a.DashboardHandler)

		protected.GET("/clients", a.ListClientsHandler)
		protected.POST("/clients", a.CreateClientHandler)
		protected.GET("/clients/:id", a.GetClientHandler)
		protected.PUT("/clients/:id", a.UpdateClientHandler)
		protected.PUT("/clients/:id/active", a.SetClientActiveHandler)
		protected.GET("/clients/:id/cases", a.ListClientCasesHandler)
		protected.GET("/clients/:id/documents", a.ListDocumentsHandler)
		protected.POST("/clients/:id/documents", a.UploadDocumentHandler)

		protected.GET("/documents/:id", a.DownloadDocumentHandler)
		protected.PUT("/documents/:id", a.UpdateDocumentHandler)
		protected.DELETE("/documents/:id", a.DeleteDocumentHandler)

		protected.GET("/cases", a.ListCasesHandler)
		protected.POST("/cases", a.CreateCaseHandler)
		protected.GET("/cases/:id", a.GetCaseHandler)
		protected.PUT("/cases/:id", a.UpdateCaseHandler)
		protected.PUT("/cases/:id/status", a.ChangeCaseStatusHandler)
		protected.GET("/cases/:id/report", a.CaseReportHandler)
		protected.GET("/cases/:id/events", a.ListCaseEventsHandler)
		protected.GET("/cases/:id/movements", a.ListMovementsHandler)
		protected.POST("/cases/:id/movements", a.CreateMovementHandler)
		protected.PUT("/movements/:id", a.UpdateMovementHandler)
		protected.DELETE("/movements/:id", a.DeleteMovementHandler)

		protected.GET("/events", a.ListEventsHandler)
		protected.POST("/events", a.CreateEventHandler)
		protected.GET("/events/:id", a.GetEventHandler)
		protected.PUT("/events/:id", a.UpdateEventHandler)
		protected.POST("/events/:id/:action", a.EventStatusHandler)
		protected.DELETE("/events/:id", a.DeleteEventHandler)

		// Money and deletes: admin and lawyer only
		financial := protected.Group("")
		financial.Use(middleware.RequireRole(models.RoleAdmin, models.RoleLawyer))
		{
			financial.DELETE("/clients/:id", a.DeleteClientHandler)
			financial.DELETE("/cases/:id", a.DeleteCaseHandler)
			financial.GET("/clients/:id/payments", a.ListClientPaymentsHandler)

			financial.GET("/cases/:id/expenses", a.ListExpensesHandler)
			financial.GET("/cases/:id/expenses/total", a.ExpenseTotalHandler)
			financial.POST("/cases/:id/expenses", a.CreateExpenseHandler)
			financial.PUT("/expenses/:id", a.UpdateExpenseHandler)
			financial.DELETE("/expenses/:id", a.DeleteExpenseHandler)

			financial.GET("/fees", a.ListFeesByStatusHandler)
			financial.GET("/cases/:id/fees", a.ListFeesHandler)
			financial.POST("/cases/:id/fees", a.CreateFeeHandler)
			financial.PUT("/fees/:id", a.UpdateFeeHandler)
			financial.PUT("/fees/:id/status", a.SetFeeStatusHandler)
			financial.DELETE("/fees/:id", a.DeleteFeeHandler)

			financial.GET("/cases/:id/payments", a.ListPaymentsHandler)
			financial.GET("/cases/:id/payments/total", a.PaymentTotalHandler)
			financial.POST("/cases/:id/payments", a.CreatePaymentHandler)
			financial.PUT("/payments/:id", a.UpdatePaymentHandler)
			financial.DELETE("/payments/:id", a.DeletePaymentHandler)

			financial.GET("/exports/cases", a.ExportCasesHandler)
			financial.GET("/exports/clients", a.ExportClientsHandler)
			financial.GET("/cases/:id/ledger", a.ExportLedgerHandler)
		}

		admin := protected.Group("")
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/users", a.ListUsersHandler)
			admin.POST("/users", a.CreateUserHandler)
			admin.PUT("/users/:id/active", a.SetUserActiveHandler)
			admin.POST("/reminders/send", a.SendRemindersHandler)
		}
	}
}
