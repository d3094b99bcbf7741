package services

import (
	"context"
	"fmt"

	"lexdesk/models"
	"lexdesk/repository"
)

// PaymentService validates payments received
type PaymentService struct {
	payments *repository.PaymentRepository
	cases    *repository.CaseRepository
	clock    Clock
}

func NewPaymentService(payments *repository.PaymentRepository, cases *repository.CaseRepository, clock Clock) *PaymentService {
	if clock == nil {
		clock = SystemClock
	}
	return &PaymentService{payments: payments, cases: cases, clock: clock}
}

func (s *PaymentService) Create(ctx context.Context, sess *Session, p *models.Payment) error {
	if err := requireFinancial(sess); err != nil {
		return err
	}
	p.ID = 0
	if err := s.validate(ctx, p); err != nil {
		return err
	}
	return s.payments.Save(ctx, p)
}

func (s *PaymentService) Update(ctx context.Context, sess *Session, p *models.Payment) error {
	if err := requireFinancial(sess); err != nil {
		return err
	}
	existing, err := s.payments.FindByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound("payment", p.ID)
	}
	if err := s.validate(ctx, p); err != nil {
		return err
	}
	p.CreatedAt = existing.CreatedAt
	return s.payments.Update(ctx, p)
}

func (s *PaymentService) validate(ctx context.Context, p *models.Payment) error {
	if p.CaseID == 0 {
		return invalid("case_id", "is required")
	}
	c, err := s.cases.FindByID(ctx, p.CaseID)
	if err != nil {
		return err
	}
	if c == nil {
		return invalid("case_id", "case does not exist")
	}
	if err := validateMoneyEntry(p.Amount, &p.Date, s.clock); err != nil {
		return err
	}
	if !models.IsValidPaymentMethod(p.Method) {
		return invalid("method", fmt.Sprintf("unknown payment method %q", p.Method))
	}
	// The payer defaults to the case's client when known
	if p.ClientID == nil {
		p.ClientID = c.ClientID
	}
	p.Concept = cleanOptional(p.Concept)
	p.Receipt = cleanOptional(p.Receipt)
	return nil
}

func (s *PaymentService) Get(ctx context.Context, sess *Session, id uint) (*models.Payment, error) {
	if err := requireFinancial(sess); err != nil {
		return nil, err
	}
	p, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, notFound("payment", id)
	}
	return p, nil
}

func (s *PaymentService) ListByCase(ctx context.Context, sess *Session, caseID uint) ([]models.Payment, error) {
	if err := requireFinancial(sess); err != nil {
		return nil, err
	}
	return s.payments.ListByCase(ctx, caseID)
}

func (s *PaymentService) ListByClient(ctx context.Context, sess *Session, clientID uint) ([]models.Payment, error) {
	if err := requireFinancial(sess); err != nil {
		return nil, err
	}
	return s.payments.ListByClient(ctx, clientID)
}

func (s *PaymentService) Search(ctx context.Context, sess *Session, text string, caseID *uint, method *string) ([]models.Payment, error) {
	if err := requireFinancial(sess); err != nil {
		return nil, err
	}
	return s.payments.Search(ctx, text, caseID, method)
}

func (s *PaymentService) TotalByCase(ctx context.Context, sess *Session, caseID uint) (float64, error) {
	if err := requireFinancial(sess); err != nil {
		return 0, err
	}
	return s.payments.SumByCase(ctx, caseID)
}

func (s *PaymentService) Delete(ctx context.Context, sess *Session, id uint) error {
	if err := requireFinancial(sess); err != nil {
		return err
	}
	return s.payments.Delete(ctx, id)
}
