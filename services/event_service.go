package services

import (
	"context"
	"fmt"
	"time"

	"lexdesk/models"
	"lexdesk/repository"
)

// EventService validates agenda events and applies their defaults
type EventService struct {
	events *repository.EventRepository
	cases  *repository.CaseRepository
	users  *repository.UserRepository
	clock  Clock
}

func NewEventService(events *repository.EventRepository, cases *repository.CaseRepository, users *repository.UserRepository, clock Clock) *EventService {
	if clock == nil {
		clock = SystemClock
	}
	return &EventService{events: events, cases: cases, users: users, clock: clock}
}

// NewEvent holds the input of an agenda entry. Nil optional values take the defaults.
type NewEvent struct {
	Title           string
	Description     *string
	StartsAt        time.Time
	DurationMinutes *int
	Type            string
	CaseID          *uint
	Location        *string
	ReminderMinutes *int
	Color           *string
	// OwnerID defaults to the session user
	OwnerID uint
}

// Create applies the defaults (60 minutes, 24h reminder, pending, type color) and stores the event
func (s *EventService) Create(ctx context.Context, sess *Session, in NewEvent) (*models.Event, error) {
	if err := sess.Require(); err != nil {
		return nil, err
	}
	e := &models.Event{
		Title:           in.Title,
		Description:     in.Description,
		StartsAt:        in.StartsAt,
		DurationMinutes: models.DefaultEventDurationMinutes,
		Type:            in.Type,
		CaseID:          in.CaseID,
		Location:        in.Location,
		Status:          models.EventStatusPending,
		ReminderMinutes: models.DefaultEventReminderMinutes,
		OwnerID:         in.OwnerID,
	}
	if in.DurationMinutes != nil {
		e.DurationMinutes = *in.DurationMinutes
	}
	if in.ReminderMinutes != nil {
		e.ReminderMinutes = *in.ReminderMinutes
	}
	if in.Color != nil {
		e.Color = *in.Color
	}
	if e.OwnerID == 0 {
		e.OwnerID = sess.UserID()
	}

	if err := s.validate(ctx, e); err != nil {
		return nil, err
	}
	if err := s.events.Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Update rewrites every mutable field of an existing event
func (s *EventService) Update(ctx context.Context, sess *Session, e *models.Event) error {
	if err := sess.Require(); err != nil {
		return err
	}
	existing, err := s.events.FindByID(ctx, e.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound("event", e.ID)
	}
	if e.Status == "" {
		e.Status = existing.Status
	}
	if e.OwnerID == 0 {
		e.OwnerID = existing.OwnerID
	}
	if err := s.validate(ctx, e); err != nil {
		return err
	}
	e.CreatedAt = existing.CreatedAt
	// A moved event gets a fresh reminder
	if existing.StartsAt.Equal(e.StartsAt) && existing.ReminderMinutes == e.ReminderMinutes {
		e.ReminderSentAt = existing.ReminderSentAt
	} else {
		e.ReminderSentAt = nil
	}
	return s.events.Update(ctx, e)
}

func (s *EventService) validate(ctx context.Context, e *models.Event) error {
	var err error
	if e.Title, err = requireText("title", e.Title); err != nil {
		return err
	}
	if e.StartsAt.IsZero() {
		return invalid("starts_at", "is required")
	}
	e.StartsAt = e.StartsAt.UTC().Truncate(time.Minute)
	if e.Type == "" {
		return invalid("type", "is required")
	}
	if !models.IsValidEventType(e.Type) {
		return invalid("type", fmt.Sprintf("unknown event type %q", e.Type))
	}
	if !models.IsValidEventStatus(e.Status) {
		return invalid("status", fmt.Sprintf("unknown status %q", e.Status))
	}
	if e.DurationMinutes < 0 {
		return invalid("duration_minutes", "cannot be negative")
	}
	if e.ReminderMinutes < 0 {
		return invalid("reminder_minutes", "cannot be negative")
	}
	if e.Color == "" {
		e.Color = models.EventTypeColor(e.Type)
	}
	if !IsValidColor(e.Color) {
		return invalid("color", "must look like #RRGGBB")
	}
	if e.OwnerID == 0 {
		return invalid("owner_id", "is required")
	}
	owner, err := s.users.FindByID(ctx, e.OwnerID)
	if err != nil {
		return err
	}
	if owner == nil {
		return invalid("owner_id", "user does not exist")
	}
	if e.CaseID != nil {
		if err := requireCase(ctx, s.cases, *e.CaseID); err != nil {
			return err
		}
	}
	e.Description = cleanOptional(e.Description)
	e.Location = cleanOptional(e.Location)
	return nil
}

func (s *EventService) Get(ctx context.Context, id uint) (*models.Event, error) {
	e, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, notFound("event", id)
	}
	return e, nil
}

func (s *EventService) Search(ctx context.Context, text string, f repository.EventFilter) ([]models.Event, error) {
	return s.events.Search(ctx, text, f)
}

func (s *EventService) ListByCase(ctx context.Context, caseID uint) ([]models.Event, error) {
	return s.events.ListByCase(ctx, caseID)
}

// ListRange returns the agenda between from and to
func (s *EventService) ListRange(ctx context.Context, from, to time.Time) ([]models.Event, error) {
	if to.Before(from) {
		return nil, invalid("to", "must not be before from")
	}
	return s.events.ListByDateRange(ctx, from.UTC(), to.UTC())
}

// ListUpcoming returns the next pending events from now on
func (s *EventService) ListUpcoming(ctx context.Context, limit int) ([]models.Event, error) {
	return s.events.ListUpcoming(ctx, s.clock().UTC(), limit)
}

// Complete marks an event done
func (s *EventService) Complete(ctx context.Context, sess *Session, id uint) error {
	return s.setStatus(ctx, sess, id, models.EventStatusCompleted)
}

// Cancel marks an event canceled
func (s *EventService) Cancel(ctx context.Context, sess *Session, id uint) error {
	return s.setStatus(ctx, sess, id, models.EventStatusCanceled)
}

// Reopen puts any event back to pending
func (s *EventService) Reopen(ctx context.Context, sess *Session, id uint) error {
	return s.setStatus(ctx, sess, id, models.EventStatusPending)
}

func (s *EventService) setStatus(ctx context.Context, sess *Session, id uint, status string) error {
	if err := sess.Require(); err != nil {
		return err
	}
	return s.events.UpdateStatus(ctx, id, status)
}

func (s *EventService) Delete(ctx context.Context, sess *Session, id uint) error {
	if err := sess.Require(); err != nil {
		return err
	}
	return s.events.Delete(ctx, id)
}
