package repository

import (
	"context"

	"lexdesk/db"
	"lexdesk/models"

	"gorm.io/gorm"
)

// ClientFilter holds the optional equality filters of a client search
type ClientFilter struct {
	ActiveOnly bool
	City       *string
	Province   *string
}

// ClientRepository is the data access component for clients
type ClientRepository struct {
	t table[models.Client]
}

func NewClientRepository(gw *db.Gateway) *ClientRepository {
	return &ClientRepository{t: table[models.Client]{gw: gw, entity: "client", order: "full_name ASC, id ASC"}}
}

func (r *ClientRepository) Save(ctx context.Context, c *models.Client) error {
	return r.t.save(ctx, c)
}

func (r *ClientRepository) FindByID(ctx context.Context, id uint) (*models.Client, error) {
	return r.t.findByID(ctx, id)
}

// FindByDNI looks the national ID up among active and inactive clients
func (r *ClientRepository) FindByDNI(ctx context.Context, dni string) (*models.Client, error) {
	return r.t.first(ctx, NewCriteria().Eq("dni", dni))
}

func (r *ClientRepository) FindByCUIT(ctx context.Context, cuit string) (*models.Client, error) {
	return r.t.first(ctx, NewCriteria().Eq("cuit", cuit))
}

func (r *ClientRepository) ListAll(ctx context.Context) ([]models.Client, error) {
	return r.t.list(ctx, nil)
}

func (r *ClientRepository) ListActive(ctx context.Context) ([]models.Client, error) {
	return r.t.list(ctx, NewCriteria().Eq("active", true))
}

// Search matches text against name, IDs and contact columns. With no text and
// no filters it is ListAll (or ListActive when ActiveOnly is set).
func (r *ClientRepository) Search(ctx context.Context, text string, f ClientFilter) ([]models.Client, error) {
	crit := NewCriteria().
		Text(text, "full_name", "dni", "cuit", "email", "phone", "mobile").
		Eq("city", f.City).
		Eq("province", f.Province)
	if f.ActiveOnly {
		crit.Eq("active", true)
	}
	return r.t.list(ctx, crit)
}

func (r *ClientRepository) Update(ctx context.Context, c *models.Client) error {
	return r.t.update(ctx, c.ID, c)
}

// SetActive flips the soft-delete flag
func (r *ClientRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return r.t.updateColumns(ctx, id, map[string]interface{}{"active": active})
}

func (r *ClientRepository) Delete(ctx context.Context, id uint) error {
	return r.t.delete(ctx, id)
}

func (r *ClientRepository) Count(ctx context.Context) (int64, error) {
	return r.t.count(ctx, nil)
}

func (r *ClientRepository) CountActive(ctx context.Context) (int64, error) {
	return r.t.count(ctx, NewCriteria().Eq("active", true))
}

// CountReferences counts the cases (by id or by name), documents and payments
// that point at a client
func (r *ClientRepository) CountReferences(ctx context.Context, id uint, fullName string) (int64, error) {
	var total int64
	err := r.t.gw.Acquire(ctx, func(conn *gorm.DB) error {
		var n int64
		if err := conn.Model(&models.Case{}).Where("client_id = ? OR client_name = ?", id, fullName).Count(&n).Error; err != nil {
			return err
		}
		total += n
		for _, m := range []interface{}{&models.Document{}, &models.Payment{}} {
			if err := conn.Model(m).Where("client_id = ?", id).Count(&n).Error; err != nil {
				return err
			}
			total += n
		}
		return nil
	})
	if err != nil {
		return 0, persistence("count client references", err)
	}
	return total, nil
}
