package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"lexdesk/db"
	"lexdesk/logger"
	"lexdesk/models"
	"lexdesk/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultMaxUploadSize is the document size limit when none is configured
const DefaultMaxUploadSize = 10 * 1024 * 1024 // 10MB

// UploadInput describes a file to attach to a client
type UploadInput struct {
	ClientID   uint
	SourcePath string
	// OriginalName overrides the base name of SourcePath (e.g. for API uploads
	// staged in a temporary file)
	OriginalName string
	Type         string
	Description  *string
}

// DocumentService attaches files to clients. The row lives in the database,
// the bytes in a StorageProvider.
type DocumentService struct {
	gw      *db.Gateway
	docs    *repository.DocumentRepository
	clients *repository.ClientRepository
	storage StorageProvider
	maxSize int64
	clock   Clock
}

func NewDocumentService(gw *db.Gateway, docs *repository.DocumentRepository, clients *repository.ClientRepository, storage StorageProvider, maxSize int64, clock Clock) *DocumentService {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}
	if clock == nil {
		clock = SystemClock
	}
	return &DocumentService{gw: gw, docs: docs, clients: clients, storage: storage, maxSize: maxSize, clock: clock}
}

// MaxSize returns the upload limit in bytes
func (s *DocumentService) MaxSize() int64 {
	return s.maxSize
}

// GenerateStoredName builds "yyyyMMdd_HHmmss_<8 hex>.<ext>" for an original file name
func (s *DocumentService) GenerateStoredName(originalName string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	name := s.clock().Format("20060102_150405") + "_" + suffix
	if ext := extensionOf(originalName); ext != "" {
		name += "." + ext
	}
	return name
}

func extensionOf(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// Upload validates the source, copies it into storage and records it. Every
// check runs before any copy or insert; a failed insert removes the copy.
func (s *DocumentService) Upload(ctx context.Context, sess *Session, in UploadInput) (*models.Document, error) {
	if err := sess.Require(); err != nil {
		return nil, err
	}
	if in.Type == "" {
		in.Type = models.DocumentTypeOther
	}
	if !models.IsValidDocumentType(in.Type) {
		return nil, invalid("type", fmt.Sprintf("unknown document type %q", in.Type))
	}
	if in.ClientID == 0 {
		return nil, invalid("client_id", "is required")
	}
	client, err := s.clients.FindByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, invalid("client_id", "client does not exist")
	}

	info, err := os.Stat(in.SourcePath)
	if err != nil {
		return nil, storageError("source file is not accessible", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: source is not a regular file", ErrStorage)
	}
	if info.Size() > s.maxSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte limit", ErrFileTooLarge, info.Size(), s.maxSize)
	}

	original := in.OriginalName
	if original == "" {
		original = filepath.Base(in.SourcePath)
	}
	original = cleanText(filepath.Base(original))
	if original == "" {
		return nil, invalid("original_name", "is required")
	}

	doc := &models.Document{
		ClientID:     in.ClientID,
		StoredName:   s.GenerateStoredName(original),
		OriginalName: original,
		Type:         in.Type,
		Description:  cleanOptional(in.Description),
		Size:         info.Size(),
		Extension:    extensionOf(original),
		UploadedByID: sess.creatorID(),
	}
	key := doc.StorageKey()

	src, err := os.Open(in.SourcePath)
	if err != nil {
		return nil, storageError("failed to open source file", err)
	}
	defer src.Close()

	if err := s.storage.Save(ctx, key, src, info.Size()); err != nil {
		return nil, storageError("failed to copy document", err)
	}

	if err := s.docs.Save(ctx, doc); err != nil {
		if rmErr := s.storage.Delete(ctx, key); rmErr != nil {
			logger.L().Errorw("failed to remove copied document after insert failure",
				"key", key, "error", rmErr)
		}
		return nil, err
	}

	logger.L().Infow("document uploaded", "document_id", doc.ID, "client_id", doc.ClientID,
		"size", doc.Size, "user_id", sess.UserID())
	return doc, nil
}

// Delete removes the row and the file together. The row delete is rolled back
// when the file cannot be removed; a file that is already gone is fine.
func (s *DocumentService) Delete(ctx context.Context, sess *Session, id uint) error {
	if err := sess.Require(); err != nil {
		return err
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return notFound("document", id)
	}

	key := doc.StorageKey()
	err = s.gw.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.docs.DeleteWith(tx, id); err != nil {
			return err
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			return storageError("failed to delete document file", err)
		}
		return nil
	})
	if err != nil {
		logger.L().Warnw("document delete failed", "document_id", id, "key", key, "error", err)
		return err
	}

	logger.L().Infow("document deleted", "document_id", id, "user_id", sess.UserID())
	return nil
}

// Open returns the document's bytes and metadata. The caller closes the reader.
func (s *DocumentService) Open(ctx context.Context, id uint) (io.ReadCloser, *models.Document, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, notFound("document", id)
	}
	rc, err := s.storage.Open(ctx, doc.StorageKey())
	if err != nil {
		return nil, nil, storageError("failed to open document", err)
	}
	return rc, doc, nil
}

func (s *DocumentService) Get(ctx context.Context, id uint) (*models.Document, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, notFound("document", id)
	}
	return doc, nil
}

func (s *DocumentService) ListByClient(ctx context.Context, clientID uint) ([]models.Document, error) {
	return s.docs.ListByClient(ctx, clientID)
}

// UpdateDetails changes a document's type and description
func (s *DocumentService) UpdateDetails(ctx context.Context, sess *Session, id uint, docType string, description *string) error {
	if err := sess.Require(); err != nil {
		return err
	}
	if !models.IsValidDocumentType(docType) {
		return invalid("type", fmt.Sprintf("unknown document type %q", docType))
	}
	return s.docs.UpdateDetails(ctx, id, docType, cleanOptional(description))
}
