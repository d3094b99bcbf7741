package repository

import (
	"context"
	"time"

	"lexdesk/db"
	"lexdesk/models"

	"gorm.io/gorm"
)

// CaseFilter holds the optional equality filters of a case search
type CaseFilter struct {
	Status       *string
	ClientID     *uint
	Jurisdiction *string
	OpenOnly     bool
}

// CaseRepository is the data access component for case files. Reads join
// users to fill CreatedByName.
type CaseRepository struct {
	t table[models.Case]
}

func NewCaseRepository(gw *db.Gateway) *CaseRepository {
	return &CaseRepository{t: table[models.Case]{
		gw:      gw,
		entity:  "case",
		order:   "cases.start_date DESC, cases.id DESC",
		scope:   withCreatorName,
		qualify: "cases.",
	}}
}

func withCreatorName(q *gorm.DB) *gorm.DB {
	return q.Select("cases.*, COALESCE(users.full_name, '') AS created_by_name").
		Joins("LEFT JOIN users ON users.id = cases.created_by_id")
}

var openCaseStatuses = []string{models.CaseStatusActive, models.CaseStatusInProgress, models.CaseStatusSuspended}

func (r *CaseRepository) Save(ctx context.Context, c *models.Case) error {
	return r.t.save(ctx, c)
}

func (r *CaseRepository) FindByID(ctx context.Context, id uint) (*models.Case, error) {
	return r.t.findByID(ctx, id)
}

func (r *CaseRepository) FindByNumber(ctx context.Context, number string) (*models.Case, error) {
	return r.t.first(ctx, NewCriteria().Eq("cases.number", number))
}

func (r *CaseRepository) ListAll(ctx context.Context) ([]models.Case, error) {
	return r.t.list(ctx, nil)
}

// ListActive returns the cases still being worked on (not archived or finished)
func (r *CaseRepository) ListActive(ctx context.Context) ([]models.Case, error) {
	return r.t.list(ctx, NewCriteria().Where("cases.status", OpIn, openCaseStatuses))
}

func (r *CaseRepository) ListByStatus(ctx context.Context, status string) ([]models.Case, error) {
	return r.t.list(ctx, NewCriteria().Eq("cases.status", status))
}

func (r *CaseRepository) ListByClient(ctx context.Context, clientID uint) ([]models.Case, error) {
	return r.t.list(ctx, NewCriteria().Eq("cases.client_id", clientID))
}

func (r *CaseRepository) ListByClientName(ctx context.Context, name string) ([]models.Case, error) {
	return r.t.list(ctx, NewCriteria().Eq("cases.client_name", name))
}

// ListByDateRange returns cases started within [from, to]
func (r *CaseRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Case, error) {
	return r.t.list(ctx, NewCriteria().
		Where("cases.start_date", OpGte, from).
		Where("cases.start_date", OpLte, to))
}

// Search matches text against number, title, client, opposing party and court
func (r *CaseRepository) Search(ctx context.Context, text string, f CaseFilter) ([]models.Case, error) {
	crit := NewCriteria().
		Text(text, "cases.number", "cases.title", "cases.client_name", "cases.opposing_party", "cases.court").
		Eq("cases.status", f.Status).
		Eq("cases.client_id", f.ClientID).
		Eq("cases.jurisdiction", f.Jurisdiction)
	if f.OpenOnly {
		crit.Where("cases.status", OpIn, openCaseStatuses)
	}
	return r.t.list(ctx, crit)
}

func (r *CaseRepository) Update(ctx context.Context, c *models.Case) error {
	return r.t.update(ctx, c.ID, c)
}

func (r *CaseRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.t.updateColumns(ctx, id, map[string]interface{}{"status": status})
}

func (r *CaseRepository) Delete(ctx context.Context, id uint) error {
	return r.t.delete(ctx, id)
}

func (r *CaseRepository) Count(ctx context.Context) (int64, error) {
	return r.t.count(ctx, nil)
}

func (r *CaseRepository) CountActive(ctx context.Context) (int64, error) {
	return r.t.count(ctx, NewCriteria().Where("status", OpIn, openCaseStatuses))
}

// CountByStatus returns the number of cases per status; every status is present
func (r *CaseRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		Total  int64
	}
	var rows []row
	err := r.t.gw.Acquire(ctx, func(conn *gorm.DB) error {
		return conn.Model(&models.Case{}).
			Select("status, COUNT(*) AS total").
			Group("status").
			Scan(&rows).Error
	})
	if err != nil {
		return nil, persistence("count cases by status", err)
	}

	counts := make(map[string]int64, len(models.CaseStatuses))
	for _, s := range models.CaseStatuses {
		counts[s] = 0
	}
	for _, rw := range rows {
		counts[rw.Status] = rw.Total
	}
	return counts, nil
}

// SumEstimatedAmount totals the estimated amount of the open cases
func (r *CaseRepository) SumEstimatedAmount(ctx context.Context) (float64, error) {
	return r.t.sum(ctx, "estimated_amount", NewCriteria().Where("status", OpIn, openCaseStatuses))
}

// CountDependents counts the movements, events, expenses, fees and payments of a case
func (r *CaseRepository) CountDependents(ctx context.Context, caseID uint) (int64, error) {
	var total int64
	err := r.t.gw.Acquire(ctx, func(conn *gorm.DB) error {
		children := []interface{}{
			&models.Movement{}, &models.Event{}, &models.Expense{}, &models.Fee{}, &models.Payment{},
		}
		for _, m := range children {
			var n int64
			if err := conn.Model(m).Where("case_id = ?", caseID).Count(&n).Error; err != nil {
				return err
			}
			total += n
		}
		return nil
	})
	if err != nil {
		return 0, persistence("count case dependents", err)
	}
	return total, nil
}
