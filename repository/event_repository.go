package repository

import (
	"context"
	"time"

	"lexdesk/db"
	"lexdesk/models"
)

// EventFilter holds the optional equality filters of an agenda search
type EventFilter struct {
	OwnerID *uint
	CaseID  *uint
	Type    *string
	Status  *string
	From    *time.Time
	To      *time.Time
}

// EventRepository is the data access component for agenda events
type EventRepository struct {
	t table[models.Event]
}

func NewEventRepository(gw *db.Gateway) *EventRepository {
	return &EventRepository{t: table[models.Event]{gw: gw, entity: "event", order: "starts_at ASC, id ASC"}}
}

func (r *EventRepository) Save(ctx context.Context, e *models.Event) error {
	return r.t.save(ctx, e)
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	return r.t.findByID(ctx, id)
}

func (r *EventRepository) ListAll(ctx context.Context) ([]models.Event, error) {
	return r.t.list(ctx, nil)
}

func (r *EventRepository) ListByCase(ctx context.Context, caseID uint) ([]models.Event, error) {
	return r.t.list(ctx, NewCriteria().Eq("case_id", caseID))
}

func (r *EventRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Event, error) {
	return r.t.list(ctx, NewCriteria().Eq("owner_id", ownerID))
}

// ListByDateRange returns events starting within [from, to]
func (r *EventRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Event, error) {
	return r.t.list(ctx, NewCriteria().Where("starts_at", OpGte, from).Where("starts_at", OpLte, to))
}

func (r *EventRepository) ListByType(ctx context.Context, eventType string) ([]models.Event, error) {
	return r.t.list(ctx, NewCriteria().Eq("type", eventType))
}

func (r *EventRepository) ListPending(ctx context.Context) ([]models.Event, error) {
	return r.t.list(ctx, NewCriteria().Eq("status", models.EventStatusPending))
}

// ListUpcoming returns up to limit pending events starting at or after from
func (r *EventRepository) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]models.Event, error) {
	return r.t.listLimit(ctx, NewCriteria().
		Eq("status", models.EventStatusPending).
		Where("starts_at", OpGte, from), limit)
}

// ListDueReminders returns pending events not yet reminded whose reminder
// moment (starts_at minus the lead time) has been reached and that have not started
func (r *EventRepository) ListDueReminders(ctx context.Context, now time.Time) ([]models.Event, error) {
	now = now.UTC()
	candidates, err := r.t.list(ctx, NewCriteria().
		Eq("status", models.EventStatusPending).
		Where("reminder_sent_at", OpIsNull, nil).
		Where("starts_at", OpGte, now))
	if err != nil {
		return nil, err
	}

	due := make([]models.Event, 0, len(candidates))
	for _, e := range candidates {
		if !e.RemindAt().After(now) {
			due = append(due, e)
		}
	}
	return due, nil
}

// Search matches text against title, description and location
func (r *EventRepository) Search(ctx context.Context, text string, f EventFilter) ([]models.Event, error) {
	crit := NewCriteria().
		Eq("owner_id", f.OwnerID).
		Eq("case_id", f.CaseID).
		Eq("type", f.Type).
		Eq("status", f.Status).
		Where("starts_at", OpGte, f.From).
		Where("starts_at", OpLte, f.To).
		Text(text, "title", "description", "location")
	return r.t.list(ctx, crit)
}

func (r *EventRepository) Update(ctx context.Context, e *models.Event) error {
	return r.t.update(ctx, e.ID, e)
}

func (r *EventRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.t.updateColumns(ctx, id, map[string]interface{}{"status": status})
}

func (r *EventRepository) MarkReminderSent(ctx context.Context, id uint, at time.Time) error {
	return r.t.updateColumns(ctx, id, map[string]interface{}{"reminder_sent_at": at.UTC()})
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	return r.t.delete(ctx, id)
}

func (r *EventRepository) Count(ctx context.Context) (int64, error) {
	return r.t.count(ctx, nil)
}

func (r *EventRepository) CountPending(ctx context.Context) (int64, error) {
	return r.t.count(ctx, NewCriteria().Eq("status", models.EventStatusPending))
}

func (r *EventRepository) CountByCase(ctx context.Context, caseID uint) (int64, error) {
	return r.t.count(ctx, NewCriteria().Eq("case_id", caseID))
}
