package services

import (
	"context"
	"fmt"

	"lexdesk/logger"
	"lexdesk/models"
	"lexdesk/repository"
)

// ClientService validates clients before handing them to the repository
type ClientService struct {
	clients *repository.ClientRepository
	clock   Clock
}

func NewClientService(clients *repository.ClientRepository, clock Clock) *ClientService {
	if clock == nil {
		clock = SystemClock
	}
	return &ClientService{clients: clients, clock: clock}
}

// Create validates c, stores it active and fills its ID
func (s *ClientService) Create(ctx context.Context, sess *Session, c *models.Client) error {
	if err := sess.Require(); err != nil {
		return err
	}
	c.ID = 0
	if err := s.validate(ctx, c); err != nil {
		return err
	}
	c.Active = true
	c.CreatedByID = sess.creatorID()

	if err := s.clients.Save(ctx, c); err != nil {
		return err
	}
	logger.L().Infow("client created", "client_id", c.ID, "user_id", sess.UserID())
	return nil
}

// Update re-fetches the client and rewrites its mutable fields
func (s *ClientService) Update(ctx context.Context, sess *Session, c *models.Client) error {
	if err := sess.Require(); err != nil {
		return err
	}
	existing, err := s.clients.FindByID(ctx, c.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return notFound("client", c.ID)
	}
	if err := s.validate(ctx, c); err != nil {
		return err
	}
	c.CreatedAt = existing.CreatedAt
	c.CreatedByID = existing.CreatedByID
	c.Active = existing.Active
	return s.clients.Update(ctx, c)
}

// validate normalises c in place and checks every rule
func (s *ClientService) validate(ctx context.Context, c *models.Client) error {
	name, err := requireText("full_name", c.FullName)
	if err != nil {
		return err
	}
	c.FullName = name

	c.Email = cleanOptional(c.Email)
	if c.Email != nil && !IsValidEmail(*c.Email) {
		return invalid("email", "is not a valid address")
	}

	if c.DNI = cleanOptional(c.DNI); c.DNI != nil {
		dni := digitsOnly(*c.DNI)
		if len(dni) < 7 || len(dni) > 8 {
			return invalid("dni", "must have 7 or 8 digits")
		}
		c.DNI = &dni
		other, err := s.clients.FindByDNI(ctx, dni)
		if err != nil {
			return err
		}
		if other != nil && other.ID != c.ID {
			return duplicate("dni", fmt.Sprintf("already registered for %s", other.FullName))
		}
	}

	if c.CUIT = cleanOptional(c.CUIT); c.CUIT != nil {
		cuit := digitsOnly(*c.CUIT)
		if len(cuit) != 11 {
			return invalid("cuit", "must have exactly 11 digits")
		}
		c.CUIT = &cuit
		other, err := s.clients.FindByCUIT(ctx, cuit)
		if err != nil {
			return err
		}
		if other != nil && other.ID != c.ID {
			return duplicate("cuit", fmt.Sprintf("already registered for %s", other.FullName))
		}
	}

	if c.BirthDate != nil {
		d := dateOnly(*c.BirthDate)
		if err := notInFuture("birth_date", d, s.clock()); err != nil {
			return err
		}
		c.BirthDate = &d
	}

	c.Phone = cleanOptional(c.Phone)
	c.Mobile = cleanOptional(c.Mobile)
	c.Address = cleanOptional(c.Address)
	c.City = cleanOptional(c.City)
	c.Province = cleanOptional(c.Province)
	c.PostalCode = cleanOptional(c.PostalCode)
	c.Notes = cleanOptional(c.Notes)
	return nil
}

// Get returns the client or a not-found error
func (s *ClientService) Get(ctx context.Context, id uint) (*models.Client, error) {
	c, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFound("client", id)
	}
	return c, nil
}

func (s *ClientService) List(ctx context.Context, activeOnly bool) ([]models.Client, error) {
	if activeOnly {
		return s.clients.ListActive(ctx)
	}
	return s.clients.ListAll(ctx)
}

func (s *ClientService) Search(ctx context.Context, text string, f repository.ClientFilter) ([]models.Client, error) {
	return s.clients.Search(ctx, text, f)
}

// SetActive is the soft delete (and its undo)
func (s *ClientService) SetActive(ctx context.Context, sess *Session, id uint, active bool) error {
	if err := sess.Require(); err != nil {
		return err
	}
	return s.clients.SetActive(ctx, id, active)
}

// Delete hard-deletes a client nothing references. Referenced clients must be
// deactivated instead.
func (s *ClientService) Delete(ctx context.Context, sess *Session, id uint) error {
	if err := sess.Require(models.RoleAdmin, models.RoleLawyer); err != nil {
		return err
	}
	c, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return notFound("client", id)
	}
	refs, err := s.clients.CountReferences(ctx, c.ID, c.FullName)
	if err != nil {
		return err
	}
	if refs > 0 {
		return invalid("client", fmt.Sprintf("has %d related cases, documents or payments; deactivate it instead", refs))
	}
	if err := s.clients.Delete(ctx, id); err != nil {
		return err
	}
	logger.L().Infow("client deleted", "client_id", id, "user_id", sess.UserID())
	return nil
}
