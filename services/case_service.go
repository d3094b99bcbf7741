package services

import (
	"context"
	"fmt"
	"strings"

	"lexdesk/logger"
	"lexdesk/models"
	"lexdesk/repository"
)

// CaseService validates case files before handing them to the repository
type CaseService struct {
	cases   *repository.CaseRepository
	clients *repository.ClientRepository
}

func NewCaseService(cases *repository.CaseRepository, clients *repository.ClientRepository) *CaseService {
	return &CaseService{cases: cases, clients: clients}
}

// NormalizeCaseNumber trims and upper-cases a case number
func NormalizeCaseNumber(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}

func (s *CaseService) Create(ctx context.Context, sess *Session, c *models.Case) error {
	if err := sess.Require(); err != nil {
		return err
	}
	c.ID = 0
	if c.Status == "" {
		c.Status = models.CaseStatusActive
	}
	if err := s.validate(ctx, c); err != nil {
		return err
	}
	c.CreatedByID = sess.creatorID()

	if err := s.cases.Save(ctx, c); err != nil {
		return err
	}
	logger.L().Infow("case created", "case_id", c.ID, "number", c.Number, "user_id", sess.UserID())
	return nil
}

func (s *CaseService) Update(ctx context.Context, sess *Session, c *models.Case) error {
	if err := sess.Require(); err != nil {
		return err
	}
	existing, err := s.cases.FindByID(ctx, c.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound("case", c.ID)
	}
	if c.Status == "" {
		c.Status = existing.Status
	}
	if err := s.validate(ctx, c); err != nil {
		return err
	}
	c.CreatedAt = existing.CreatedAt
	c.CreatedByID = existing.CreatedByID
	return s.cases.Update(ctx, c)
}

func (s *CaseService) validate(ctx context.Context, c *models.Case) error {
	c.Number = NormalizeCaseNumber(cleanText(c.Number))
	if c.Number == "" {
		return invalid("number", "is required")
	}
	title, err := requireText("title", c.Title)
	if err != nil {
		return err
	}
	c.Title = title

	if c.ClientID != nil {
		client, err := s.clients.FindByID(ctx, *c.ClientID)
		if err != nil {
			return err
		}
		if client == nil {
			return invalid("client_id", "client does not exist")
		}
		if strings.TrimSpace(c.ClientName) == "" {
			c.ClientName = client.FullName
		}
	}
	clientName, err := requireText("client_name", c.ClientName)
	if err != nil {
		return err
	}
	c.ClientName = clientName

	if c.StartDate, err = requireDate("start_date", c.StartDate); err != nil {
		return err
	}
	if !models.IsValidCaseStatus(c.Status) {
		return invalid("status", fmt.Sprintf("unknown status %q", c.Status))
	}
	if c.EstimatedAmount != nil && *c.EstimatedAmount < 0 {
		return invalid("estimated_amount", "cannot be negative")
	}

	c.OpposingParty = cleanOptional(c.OpposingParty)
	c.Jurisdiction = cleanOptional(c.Jurisdiction)
	c.Court = cleanOptional(c.Court)
	c.Clerk = cleanOptional(c.Clerk)
	c.Notes = cleanOptional(c.Notes)

	other, err := s.cases.FindByNumber(ctx, c.Number)
	if err != nil {
		return err
	}
	if other != nil && other.ID != c.ID {
		return duplicate("number", fmt.Sprintf("case %s already exists", c.Number))
	}
	return nil
}

func (s *CaseService) Get(ctx context.Context, id uint) (*models.Case, error) {
	c, err := s.cases.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFound("case", id)
	}
	return c, nil
}

// GetByNumber looks a case up by its normalised number
func (s *CaseService) GetByNumber(ctx context.Context, number string) (*models.Case, error) {
	return s.cases.FindByNumber(ctx, NormalizeCaseNumber(number))
}

func (s *CaseService) List(ctx context.Context, openOnly bool) ([]models.Case, error) {
	if openOnly {
		return s.cases.ListActive(ctx)
	}
	return s.cases.ListAll(ctx)
}

func (s *CaseService) Search(ctx context.Context, text string, f repository.CaseFilter) ([]models.Case, error) {
	return s.cases.Search(ctx, text, f)
}

func (s *CaseService) ListByClient(ctx context.Context, clientID uint) ([]models.Case, error) {
	return s.cases.ListByClient(ctx, clientID)
}

// ChangeStatus reassigns the status; any transition is allowed
func (s *CaseService) ChangeStatus(ctx context.Context, sess *Session, id uint, status string) error {
	if err := sess.Require(); err != nil {
		return err
	}
	if !models.IsValidCaseStatus(status) {
		return invalid("status", fmt.Sprintf("unknown status %q", status))
	}
	return s.cases.UpdateStatus(ctx, id, status)
}

// Delete hard-deletes a case with no movements, events, expenses, fees or payments
func (s *CaseService) Delete(ctx context.Context, sess *Session, id uint) error {
	if err := sess.Require(models.RoleAdmin, models.RoleLawyer); err != nil {
		return err
	}
	c, err := s.cases.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return notFound("case", id)
	}
	deps, err := s.cases.CountDependents(ctx, id)
	if err != nil {
		return err
	}
	if deps > 0 {
		return invalid("case", fmt.Sprintf("has %d related records; archive it instead", deps))
	}
	if err := s.cases.Delete(ctx, id); err != nil {
		return err
	}
	logger.L().Infow("case deleted", "case_id", id, "number", c.Number, "user_id", sess.UserID())
	return nil
}
