package repository

import (
	"context"
	"time"

	"lexdesk/db"
	"lexdesk/models"
)

// UserRepository is the data access component for users
type UserRepository struct {
	t table[models.User]
}

func NewUserRepository(gw *db.Gateway) *UserRepository {
	return &UserRepository{t: table[models.User]{gw: gw, entity: "user", order: "username ASC"}}
}

func (r *UserRepository) Save(ctx context.Context, u *models.User) error {
	return r.t.save(ctx, u)
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return r.t.findByID(ctx, id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.t.first(ctx, NewCriteria().Eq("username", username))
}

// FindActiveByUsername only returns users whose active flag is set
func (r *UserRepository) FindActiveByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.t.first(ctx, NewCriteria().Eq("username", username).Eq("active", true))
}

func (r *UserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	return r.t.list(ctx, nil)
}

func (r *UserRepository) ListActive(ctx context.Context) ([]models.User, error) {
	return r.t.list(ctx, NewCriteria().Eq("active", true))
}

// Search matches text against username, full name and email; role is optional
func (r *UserRepository) Search(ctx context.Context, text string, role *string, activeOnly bool) ([]models.User, error) {
	crit := NewCriteria().Eq("role", role).Text(text, "username", "full_name", "email")
	if activeOnly {
		crit.Eq("active", true)
	}
	return r.t.list(ctx, crit)
}

func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	return r.t.update(ctx, u.ID, u)
}

func (r *UserRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return r.t.updateColumns(ctx, id, map[string]interface{}{"active": active})
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return r.t.updateColumns(ctx, id, map[string]interface{}{"password_hash": hash})
}

// TouchLastLogin records a successful login
func (r *UserRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	return r.t.updateColumns(ctx, id, map[string]interface{}{"last_login_at": at})
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return r.t.delete(ctx, id)
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.t.count(ctx, nil)
}

func (r *UserRepository) CountActive(ctx context.Context) (int64, error) {
	return r.t.count(ctx, NewCriteria().Eq("active", true))
}
