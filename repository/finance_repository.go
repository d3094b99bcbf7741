package repository

import (
	"context"
	"time"

	"lexdesk/db"
	"lexdesk/models"
)

// ExpenseRepository is the data access component for case expenses
type ExpenseRepository struct {
	t table[models.Expense]
}

func NewExpenseRepository(gw *db.Gateway) *ExpenseRepository {
	return &ExpenseRepository{t: table[models.Expense]{gw: gw, entity: "expense", order: "date DESC, id DESC"}}
}

func (r *ExpenseRepository) Save(ctx context.Context, e *models.Expense) error {
	return r.t.save(ctx, e)
}

func (r *ExpenseRepository) FindByID(ctx context.Context, id uint) (*models.Expense, error) {
	return r.t.findByID(ctx, id)
}

func (r *ExpenseRepository) ListByCase(ctx context.Context, caseID uint) ([]models.Expense, error) {
	return r.t.list(ctx, NewCriteria().Eq("case_id", caseID))
}

func (r *ExpenseRepository) ListByCategory(ctx context.Context, caseID uint, category string) ([]models.Expense, error) {
	return r.t.list(ctx, NewCriteria().Eq("case_id", caseID).Eq("category", category))
}

func (r *ExpenseRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Expense, error) {
	return r.t.list(ctx, NewCriteria().Where("date", OpGte, from).Where("date", OpLte, to))
}

func (r *ExpenseRepository) Search(ctx context.Context, text string, caseID *uint, category *string) ([]models.Expense, error) {
	return r.t.list(ctx, NewCriteria().
		Eq("case_id", caseID).
		Eq("category", category).
		Text(text, "description", "receipt"))
}

func (r *ExpenseRepository) Update(ctx context.Context, e *models.Expense) error {
	return r.t.update(ctx, e.ID, e)
}

func (r *ExpenseRepository) Delete(ctx context.Context, id uint) error {
	return r.t.delete(ctx, id)
}

func (r *ExpenseRepository) CountByCase(ctx context.Context, caseID uint) (int64, error) {
	return r.t.count(ctx, NewCriteria().Eq("case_id", caseID))
}

func (r *ExpenseRepository) SumByCase(ctx context.Context, caseID uint) (float64, error) {
	return r.t.sum(ctx, "amount", NewCriteria().Eq("case_id", caseID))
}

func (r *ExpenseRepository) SumByDateRange(ctx context.Context, from, to time.Time) (float64, error) {
	return r.t.sum(ctx, "amount", NewCriteria().Where("date", OpGte, from).Where("date", OpLte, to))
}

// FeeRepository is the data access component for fees (honorarios)
type FeeRepository struct {
	t table[models.Fee]
}

func NewFeeRepository(gw *db.Gateway) *FeeRepository {
	return &FeeRepository{t: table[models.Fee]{gw: gw, entity: "fee", order: "date DESC, id DESC"}}
}

func (r *FeeRepository) Save(ctx context.Context, f *models.Fee) error {
	return r.t.save(ctx, f)
}

func (r *FeeRepository) FindByID(ctx context.Context, id uint) (*models.Fee, error) {
	return r.t.findByID(ctx, id)
}

func (r *FeeRepository) ListByCase(ctx context.Context, caseID uint) ([]models.Fee, error) {
	return r.t.list(ctx, NewCriteria().Eq("case_id", caseID))
}

func (r *FeeRepository) ListByType(ctx context.Context, caseID uint, feeType string) ([]models.Fee, error) {
	return r.t.list(ctx, NewCriteria().Eq("case_id", caseID).Eq("type", feeType))
}

func (r *FeeRepository) ListByStatus(ctx context.Context, status string) ([]models.Fee, error) {
	return r.t.list(ctx, NewCriteria().Eq("status", status))
}

func (r *FeeRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Fee, error) {
	return r.t.list(ctx, NewCriteria().Where("date", OpGte, from).Where("date", OpLte, to))
}

func (r *FeeRepository) Update(ctx context.Context, f *models.Fee) error {
	return r.t.update(ctx, f.ID, f)
}

func (r *FeeRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.t.updateColumns(ctx, id, map[string]interface{}{"status": status})
}

func (r *FeeRepository) Delete(ctx context.Context, id uint) error {
	return r.t.delete(ctx, id)
}

func (r *FeeRepository) CountByCase(ctx context.Context, caseID uint) (int64, error) {
	return r.t.count(ctx, NewCriteria().Eq("case_id", caseID))
}

func (r *FeeRepository) SumComputedByCase(ctx context.Context, caseID uint) (float64, error) {
	return r.t.sum(ctx, "computed_amount", NewCriteria().Eq("case_id", caseID))
}

// SumPendingByCase totals the computed amount of the fees of a case not yet paid
func (r *FeeRepository) SumPendingByCase(ctx context.Context, caseID uint) (float64, error) {
	return r.t.sum(ctx, "computed_amount", NewCriteria().
		Eq("case_id", caseID).
		Where("status", OpNe, models.FeeStatusPaid))
}

// SumPending totals the computed amount of every fee not yet paid
func (r *FeeRepository) SumPending(ctx context.Context) (float64, error) {
	return r.t.sum(ctx, "computed_amount", NewCriteria().Where("status", OpNe, models.FeeStatusPaid))
}

// PaymentRepository is the data access component for payments received
type PaymentRepository struct {
	t table[models.Payment]
}

func NewPaymentRepository(gw *db.Gateway) *PaymentRepository {
	return &PaymentRepository{t: table[models.Payment]{gw: gw, entity: "payment", order: "date DESC, id DESC"}}
}

func (r *PaymentRepository) Save(ctx context.Context, p *models.Payment) error {
	return r.t.save(ctx, p)
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	return r.t.findByID(ctx, id)
}

func (r *PaymentRepository) ListByCase(ctx context.Context, caseID uint) ([]models.Payment, error) {
	return r.t.list(ctx, NewCriteria().Eq("case_id", caseID))
}

func (r *PaymentRepository) ListByClient(ctx context.Context, clientID uint) ([]models.Payment, error) {
	return r.t.list(ctx, NewCriteria().Eq("client_id", clientID))
}

func (r *PaymentRepository) ListByMethod(ctx context.Context, caseID uint, method string) ([]models.Payment, error) {
	return r.t.list(ctx, NewCriteria().Eq("case_id", caseID).Eq("method", method))
}

func (r *PaymentRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Payment, error) {
	return r.t.list(ctx, NewCriteria().Where("date", OpGte, from).Where("date", OpLte, to))
}

func (r *PaymentRepository) Search(ctx context.Context, text string, caseID *uint, method *string) ([]models.Payment, error) {
	return r.t.list(ctx, NewCriteria().
		Eq("case_id", caseID).
		Eq("method", method).
		Text(text, "concept", "receipt"))
}

func (r *PaymentRepository) Update(ctx context.Context, p *models.Payment) error {
	return r.t.update(ctx, p.ID, p)
}

func (r *PaymentRepository) Delete(ctx context.Context, id uint) error {
	return r.t.delete(ctx, id)
}

func (r *PaymentRepository) CountByCase(ctx context.Context, caseID uint) (int64, error) {
	return r.t.count(ctx, NewCriteria().Eq("case_id", caseID))
}

func (r *PaymentRepository) SumByCase(ctx context.Context, caseID uint) (float64, error) {
	return r.t.sum(ctx, "amount", NewCriteria().Eq("case_id", caseID))
}

func (r *PaymentRepository) SumByDateRange(ctx context.Context, from, to time.Time) (float64, error) {
	return r.t.sum(ctx, "amount", NewCriteria().Where("date", OpGte, from).Where("date", OpLte, to))
}
