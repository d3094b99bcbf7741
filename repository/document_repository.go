package repository

import (
	"context"

	"lexdesk/db"
	"lexdesk/models"

	"gorm.io/gorm"
)

// DocumentRepository is the data access component for client attachments
type DocumentRepository struct {
	t table[models.Document]
}

func NewDocumentRepository(gw *db.Gateway) *DocumentRepository {
	return &DocumentRepository{t: table[models.Document]{gw: gw, entity: "document", order: "created_at DESC, id DESC"}}
}

func (r *DocumentRepository) Save(ctx context.Context, d *models.Document) error {
	return r.t.save(ctx, d)
}

// SaveWith inserts on a connection the caller already holds (e.g. a transaction)
func (r *DocumentRepository) SaveWith(conn *gorm.DB, d *models.Document) error {
	return insert(conn, r.t.entity, d)
}

func (r *DocumentRepository) FindByID(ctx context.Context, id uint) (*models.Document, error) {
	return r.t.findByID(ctx, id)
}

func (r *DocumentRepository) FindByStoredName(ctx context.Context, storedName string) (*models.Document, error) {
	return r.t.first(ctx, NewCriteria().Eq("stored_name", storedName))
}

func (r *DocumentRepository) ListByClient(ctx context.Context, clientID uint) ([]models.Document, error) {
	return r.t.list(ctx, NewCriteria().Eq("client_id", clientID))
}

func (r *DocumentRepository) ListByType(ctx context.Context, clientID uint, docType string) ([]models.Document, error) {
	return r.t.list(ctx, NewCriteria().Eq("client_id", clientID).Eq("type", docType))
}

func (r *DocumentRepository) Search(ctx context.Context, text string, clientID *uint) ([]models.Document, error) {
	return r.t.list(ctx, NewCriteria().
		Eq("client_id", clientID).
		Text(text, "original_name", "description"))
}

// UpdateDetails changes the type and description; the file itself is immutable
func (r *DocumentRepository) UpdateDetails(ctx context.Context, id uint, docType string, description *string) error {
	return r.t.updateColumns(ctx, id, map[string]interface{}{"type": docType, "description": description})
}

func (r *DocumentRepository) Delete(ctx context.Context, id uint) error {
	return r.t.delete(ctx, id)
}

// DeleteWith deletes on a connection the caller already holds (e.g. a transaction)
func (r *DocumentRepository) DeleteWith(conn *gorm.DB, id uint) error {
	return deleteByID[models.Document](conn, r.t.entity, id)
}

func (r *DocumentRepository) CountByClient(ctx context.Context, clientID uint) (int64, error) {
	return r.t.count(ctx, NewCriteria().Eq("client_id", clientID))
}
