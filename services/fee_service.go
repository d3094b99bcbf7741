package services

import (
	"context"
	"fmt"

	"lexdesk/models"
	"lexdesk/repository"
)

// FeeService validates fees and keeps the computed amount of fixed fees in step
type FeeService struct {
	fees  *repository.FeeRepository
	cases *repository.CaseRepository
}

func NewFeeService(fees *repository.FeeRepository, cases *repository.CaseRepository) *FeeService {
	return &FeeService{fees: fees, cases: cases}
}

func (s *FeeService) Create(ctx context.Context, sess *Session, f *models.Fee) error {
	if err := requireFinancial(sess); err != nil {
		return err
	}
	f.ID = 0
	if f.Status == "" {
		f.Status = models.FeeStatusPending
	}
	if err := s.validate(ctx, f); err != nil {
		return err
	}
	return s.fees.Save(ctx, f)
}

func (s *FeeService) Update(ctx context.Context, sess *Session, f *models.Fee) error {
	if err := requireFinancial(sess); err != nil {
		return err
	}
	existing, err := s.fees.FindByID(ctx, f.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound("fee", f.ID)
	}
	if f.Status == "" {
		f.Status = existing.Status
	}
	if err := s.validate(ctx, f); err != nil {
		return err
	}
	f.CreatedAt = existing.CreatedAt
	return s.fees.Update(ctx, f)
}

func (s *FeeService) validate(ctx context.Context, f *models.Fee) error {
	if err := requireCase(ctx, s.cases, f.CaseID); err != nil {
		return err
	}
	if f.Type == "" {
		return invalid("type", "is required")
	}
	if !models.IsValidFeeType(f.Type) {
		return invalid("type", fmt.Sprintf("unknown fee type %q", f.Type))
	}
	if !models.IsValidFeeStatus(f.Status) {
		return invalid("status", fmt.Sprintf("unknown status %q", f.Status))
	}

	if f.Percentage != nil && (*f.Percentage < 0 || *f.Percentage > 100) {
		return invalid("percentage", "must be between 0 and 100")
	}
	switch f.Type {
	case models.FeeTypePercentage:
		if f.Percentage == nil {
			return invalid("percentage", "is required for percentage fees")
		}
	case models.FeeTypeFixed:
		if f.FixedAmount == nil {
			return invalid("fixed_amount", "is required for fixed fees")
		}
		if *f.FixedAmount < 0 {
			return invalid("fixed_amount", "cannot be negative")
		}
		computed := *f.FixedAmount
		f.ComputedAmount = &computed
	}
	if f.ComputedAmount != nil && *f.ComputedAmount < 0 {
		return invalid("computed_amount", "cannot be negative")
	}

	var err error
	if f.Date, err = requireDate("date", f.Date); err != nil {
		return err
	}
	f.Description = cleanOptional(f.Description)
	return nil
}

func (s *FeeService) Get(ctx context.Context, sess *Session, id uint) (*models.Fee, error) {
	if err := requireFinancial(sess); err != nil {
		return nil, err
	}
	f, err := s.fees.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, notFound("fee", id)
	}
	return f, nil
}

func (s *FeeService) ListByCase(ctx context.Context, sess *Session, caseID uint) ([]models.Fee, error) {
	if err := requireFinancial(sess); err != nil {
		return nil, err
	}
	return s.fees.ListByCase(ctx, caseID)
}

func (s *FeeService) ListByStatus(ctx context.Context, sess *Session, status string) ([]models.Fee, error) {
	if err := requireFinancial(sess); err != nil {
		return nil, err
	}
	return s.fees.ListByStatus(ctx, status)
}

// SetStatus moves a fee between pending, partial and paid
func (s *FeeService) SetStatus(ctx context.Context, sess *Session, id uint, status string) error {
	if err := requireFinancial(sess); err != nil {
		return err
	}
	if !models.IsValidFeeStatus(status) {
		return invalid("status", fmt.Sprintf("unknown status %q", status))
	}
	return s.fees.UpdateStatus(ctx, id, status)
}

func (s *FeeService) Delete(ctx context.Context, sess *Session, id uint) error {
	if err := requireFinancial(sess); err != nil {
		return err
	}
	return s.fees.Delete(ctx, id)
}
