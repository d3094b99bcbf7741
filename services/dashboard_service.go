package services

import (
	"context"
	"time"

	"lexdesk/models"
	"lexdesk/repository"
)

// DashboardSummary is the set of counts and totals shown on the home screen
type DashboardSummary struct {
	ActiveClients  int64            `json:"active_clients"`
	TotalCases     int64            `json:"total_cases"`
	CasesByStatus  map[string]int64 `json:"cases_by_status"`
	PendingEvents  int64            `json:"pending_events"`
	UpcomingEvents []models.Event   `json:"upcoming_events"`

	// Financial totals are only filled for roles allowed to see them
	FeesPending       *float64 `json:"fees_pending,omitempty"`
	PaymentsThisMonth *float64 `json:"payments_this_month,omitempty"`
	ExpensesThisMonth *float64 `json:"expenses_this_month,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// DashboardService aggregates the summary. Consumers refresh it after case
// and client changes.
type DashboardService struct {
	clients  *repository.ClientRepository
	cases    *repository.CaseRepository
	events   *repository.EventRepository
	fees     *repository.FeeRepository
	payments *repository.PaymentRepository
	expenses *repository.ExpenseRepository
	clock    Clock
}

// UpcomingEventsLimit caps the agenda preview of the summary
const UpcomingEventsLimit = 5

func NewDashboardService(r *Repositories, clock Clock) *DashboardService {
	if clock == nil {
		clock = SystemClock
	}
	return &DashboardService{
		clients:  r.Clients,
		cases:    r.Cases,
		events:   r.Events,
		fees:     r.Fees,
		payments: r.Payments,
		expenses: r.Expenses,
		clock:    clock,
	}
}

// Summary computes the dashboard for sess
func (s *DashboardService) Summary(ctx context.Context, sess *Session) (*DashboardSummary, error) {
	if err := sess.Require(); err != nil {
		return nil, err
	}
	now := s.clock()
	sum := &DashboardSummary{GeneratedAt: now.UTC()}

	var err error
	if sum.ActiveClients, err = s.clients.CountActive(ctx); err != nil {
		return nil, err
	}
	if sum.TotalCases, err = s.cases.Count(ctx); err != nil {
		return nil, err
	}
	if sum.CasesByStatus, err = s.cases.CountByStatus(ctx); err != nil {
		return nil, err
	}
	if sum.PendingEvents, err = s.events.CountPending(ctx); err != nil {
		return nil, err
	}
	if sum.UpcomingEvents, err = s.events.ListUpcoming(ctx, now.UTC(), UpcomingEventsLimit); err != nil {
		return nil, err
	}

	if requireFinancial(sess) != nil {
		return sum, nil
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	pending, err := s.fees.SumPending(ctx)
	if err != nil {
		return nil, err
	}
	paid, err := s.payments.SumByDateRange(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	spent, err := s.expenses.SumByDateRange(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	sum.FeesPending = &pending
	sum.PaymentsThisMonth = &paid
	sum.ExpensesThisMonth = &spent
	return sum, nil
}
