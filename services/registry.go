package services

import (
	"lexdesk/db"
	"lexdesk/repository"
)

// Repositories bundles one data access component per entity over one gateway
type Repositories struct {
	Users     *repository.UserRepository
	Clients   *repository.ClientRepository
	Cases     *repository.CaseRepository
	Movements *repository.MovementRepository
	Events    *repository.EventRepository
	Expenses  *repository.ExpenseRepository
	Fees      *repository.FeeRepository
	Payments  *repository.PaymentRepository
	Documents *repository.DocumentRepository
}

func NewRepositories(gw *db.Gateway) *Repositories {
	return &Repositories{
		Users:     repository.NewUserRepository(gw),
		Clients:   repository.NewClientRepository(gw),
		Cases:     repository.NewCaseRepository(gw),
		Movements: repository.NewMovementRepository(gw),
		Events:    repository.NewEventRepository(gw),
		Expenses:  repository.NewExpenseRepository(gw),
		Fees:      repository.NewFeeRepository(gw),
		Payments:  repository.NewPaymentRepository(gw),
		Documents: repository.NewDocumentRepository(gw),
	}
}

// Services wires every service component for one process
type Services struct {
	Repos     *Repositories
	Auth      *AuthService
	Users     *UserService
	Clients   *ClientService
	Cases     *CaseService
	Movements *MovementService
	Events    *EventService
	Expenses  *ExpenseService
	Fees      *FeeService
	Payments  *PaymentService
	Documents *DocumentService
	Dashboard *DashboardService
	Exports   *ExportService
	Reports   *ReportService
	Reminders *ReminderService
}

// Options configure the parts of the service layer that touch the outside world
type Options struct {
	Storage       StorageProvider
	MaxUploadSize int64
	Throttle      *LoginThrottle
	Clock         Clock
	PDF           PDFOptions
	// Mailer delivers event reminders; nil logs them instead
	Mailer Mailer
}

func New(gw *db.Gateway, opts Options) *Services {
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock
	}
	if opts.PDF.PageSize == "" {
		chrome := opts.PDF.ChromePath
		opts.PDF = DefaultPDFOptions()
		opts.PDF.ChromePath = chrome
	}
	if opts.Mailer == nil {
		opts.Mailer = &LogMailer{}
	}
	r := NewRepositories(gw)
	return &Services{
		Repos:     r,
		Auth:      NewAuthService(r.Users, opts.Throttle, clock),
		Users:     NewUserService(r.Users),
		Clients:   NewClientService(r.Clients, clock),
		Cases:     NewCaseService(r.Cases, r.Clients),
		Movements: NewMovementService(r.Movements, r.Cases, clock),
		Events:    NewEventService(r.Events, r.Cases, r.Users, clock),
		Expenses:  NewExpenseService(r.Expenses, r.Cases, clock),
		Fees:      NewFeeService(r.Fees, r.Cases),
		Payments:  NewPaymentService(r.Payments, r.Cases, clock),
		Documents: NewDocumentService(gw, r.Documents, r.Clients, opts.Storage, opts.MaxUploadSize, clock),
		Dashboard: NewDashboardService(r, clock),
		Exports:   NewExportService(r),
		Reports:   NewReportService(r, clock, opts.PDF),
		Reminders: NewReminderService(r, opts.Mailer, clock),
	}
}
