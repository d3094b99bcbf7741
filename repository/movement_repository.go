package repository

import (
	"context"
	"time"

	"lexdesk/db"
	"lexdesk/models"
)

// MovementRepository is the data access component for docket movements
type MovementRepository struct {
	t table[models.Movement]
}

func NewMovementRepository(gw *db.Gateway) *MovementRepository {
	return &MovementRepository{t: table[models.Movement]{gw: gw, entity: "movement", order: "date DESC, id DESC"}}
}

func (r *MovementRepository) Save(ctx context.Context, m *models.Movement) error {
	return r.t.save(ctx, m)
}

func (r *MovementRepository) FindByID(ctx context.Context, id uint) (*models.Movement, error) {
	return r.t.findByID(ctx, id)
}

func (r *MovementRepository) ListByCase(ctx context.Context, caseID uint) ([]models.Movement, error) {
	return r.t.list(ctx, NewCriteria().Eq("case_id", caseID))
}

func (r *MovementRepository) ListByType(ctx context.Context, caseID uint, movementType string) ([]models.Movement, error) {
	return r.t.list(ctx, NewCriteria().Eq("case_id", caseID).Eq("type", movementType))
}

func (r *MovementRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Movement, error) {
	return r.t.list(ctx, NewCriteria().Where("date", OpGte, from).Where("date", OpLte, to))
}

// Search matches text against description, notebook and folio; caseID is optional
func (r *MovementRepository) Search(ctx context.Context, text string, caseID *uint, movementType *string) ([]models.Movement, error) {
	crit := NewCriteria().
		Eq("case_id", caseID).
		Eq("type", movementType).
		Text(text, "description", "notebook", "folio")
	return r.t.list(ctx, crit)
}

func (r *MovementRepository) Update(ctx context.Context, m *models.Movement) error {
	return r.t.update(ctx, m.ID, m)
}

func (r *MovementRepository) Delete(ctx context.Context, id uint) error {
	return r.t.delete(ctx, id)
}

func (r *MovementRepository) CountByCase(ctx context.Context, caseID uint) (int64, error) {
	return r.t.count(ctx, NewCriteria().Eq("case_id", caseID))
}
