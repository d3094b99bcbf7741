package services

import (
	"context"
	"fmt"

	"lexdesk/models"
	"lexdesk/repository"
)

// MovementService validates docket movements
type MovementService struct {
	movements *repository.MovementRepository
	cases     *repository.CaseRepository
	clock     Clock
}

func NewMovementService(movements *repository.MovementRepository, cases *repository.CaseRepository, clock Clock) *MovementService {
	if clock == nil {
		clock = SystemClock
	}
	return &MovementService{movements: movements, cases: cases, clock: clock}
}

func (s *MovementService) Create(ctx context.Context, sess *Session, m *models.Movement) error {
	if err := sess.Require(); err != nil {
		return err
	}
	m.ID = 0
	if err := s.validate(ctx, m); err != nil {
		return err
	}
	m.CreatedByID = sess.creatorID()
	return s.movements.Save(ctx, m)
}

func (s *MovementService) Update(ctx context.Context, sess *Session, m *models.Movement) error {
	if err := sess.Require(); err != nil {
		return err
	}
	existing, err := s.movements.FindByID(ctx, m.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound("movement", m.ID)
	}
	if err := s.validate(ctx, m); err != nil {
		return err
	}
	m.CreatedAt = existing.CreatedAt
	m.CreatedByID = existing.CreatedByID
	return s.movements.Update(ctx, m)
}

func (s *MovementService) validate(ctx context.Context, m *models.Movement) error {
	if err := requireCase(ctx, s.cases, m.CaseID); err != nil {
		return err
	}
	var err error
	if m.Date, err = requireDate("date", m.Date); err != nil {
		return err
	}
	if err := notInFuture("date", m.Date, s.clock()); err != nil {
		return err
	}
	if !models.IsValidMovementType(m.Type) {
		return invalid("type", fmt.Sprintf("unknown movement type %q", m.Type))
	}
	if m.Description, err = requireText("description", m.Description); err != nil {
		return err
	}
	m.Notebook = cleanOptional(m.Notebook)
	m.Folio = cleanOptional(m.Folio)
	return nil
}

func (s *MovementService) Get(ctx context.Context, id uint) (*models.Movement, error) {
	m, err := s.movements.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, notFound("movement", id)
	}
	return m, nil
}

func (s *MovementService) ListByCase(ctx context.Context, caseID uint) ([]models.Movement, error) {
	return s.movements.ListByCase(ctx, caseID)
}

func (s *MovementService) Search(ctx context.Context, text string, caseID *uint, movementType *string) ([]models.Movement, error) {
	return s.movements.Search(ctx, text, caseID, movementType)
}

func (s *MovementService) Delete(ctx context.Context, sess *Session, id uint) error {
	if err := sess.Require(); err != nil {
		return err
	}
	return s.movements.Delete(ctx, id)
}

// requireCase checks that a parent case reference is set and exists
func requireCase(ctx context.Context, cases *repository.CaseRepository, caseID uint) error {
	if caseID == 0 {
		return invalid("case_id", "is required")
	}
	c, err := cases.FindByID(ctx, caseID)
	if err != nil {
		return err
	}
	if c == nil {
		return invalid("case_id", "case does not exist")
	}
	return nil
}
