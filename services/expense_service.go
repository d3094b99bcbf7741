package services

import (
	"context"
	"fmt"
	"time"

	"lexdesk/models"
	"lexdesk/repository"
)

// ExpenseService validates case expenses. Financial records are hidden from secretaries.
type ExpenseService struct {
	expenses *repository.ExpenseRepository
	cases    *repository.CaseRepository
	clock    Clock
}

func NewExpenseService(expenses *repository.ExpenseRepository, cases *repository.CaseRepository, clock Clock) *ExpenseService {
	if clock == nil {
		clock = SystemClock
	}
	return &ExpenseService{expenses: expenses, cases: cases, clock: clock}
}

func (s *ExpenseService) Create(ctx context.Context, sess *Session, e *models.Expense) error {
	if err := requireFinancial(sess); err != nil {
		return err
	}
	e.ID = 0
	if err := s.validate(ctx, e); err != nil {
		return err
	}
	return s.expenses.Save(ctx, e)
}

func (s *ExpenseService) Update(ctx context.Context, sess *Session, e *models.Expense) error {
	if err := requireFinancial(sess); err != nil {
		return err
	}
	existing, err := s.expenses.FindByID(ctx, e.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound("expense", e.ID)
	}
	if err := s.validate(ctx, e); err != nil {
		return err
	}
	e.CreatedAt = existing.CreatedAt
	return s.expenses.Update(ctx, e)
}

func (s *ExpenseService) validate(ctx context.Context, e *models.Expense) error {
	if err := requireCase(ctx, s.cases, e.CaseID); err != nil {
		return err
	}
	if err := validateMoneyEntry(e.Amount, &e.Date, s.clock); err != nil {
		return err
	}
	if !models.IsValidExpenseCategory(e.Category) {
		return invalid("category", fmt.Sprintf("unknown category %q", e.Category))
	}
	e.Description = cleanOptional(e.Description)
	e.Receipt = cleanOptional(e.Receipt)
	return nil
}

// validateMoneyEntry checks the shared amount and date rules of expenses and payments
func validateMoneyEntry(amount float64, date *time.Time, clock Clock) error {
	if amount <= 0 {
		return invalid("amount", "must be greater than zero")
	}
	d, err := requireDate("date", *date)
	if err != nil {
		return err
	}
	if err := notInFuture("date", d, clock()); err != nil {
		return err
	}
	*date = d
	return nil
}

func (s *ExpenseService) Get(ctx context.Context, sess *Session, id uint) (*models.Expense, error) {
	if err := requireFinancial(sess); err != nil {
		return nil, err
	}
	e, err := s.expenses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, notFound("expense", id)
	}
	return e, nil
}

func (s *ExpenseService) ListByCase(ctx context.Context, sess *Session, caseID uint) ([]models.Expense, error) {
	if err := requireFinancial(sess); err != nil {
		return nil, err
	}
	return s.expenses.ListByCase(ctx, caseID)
}

func (s *ExpenseService) Search(ctx context.Context, sess *Session, text string, caseID *uint, category *string) ([]models.Expense, error) {
	if err := requireFinancial(sess); err != nil {
		return nil, err
	}
	return s.expenses.Search(ctx, text, caseID, category)
}

func (s *ExpenseService) TotalByCase(ctx context.Context, sess *Session, caseID uint) (float64, error) {
	if err := requireFinancial(sess); err != nil {
		return 0, err
	}
	return s.expenses.SumByCase(ctx, caseID)
}

func (s *ExpenseService) Delete(ctx context.Context, sess *Session, id uint) error {
	if err := requireFinancial(sess); err != nil {
		return err
	}
	return s.expenses.Delete(ctx, id)
}
