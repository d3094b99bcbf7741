package models

import (
	"fmt"
	"path"
	"time"
)

// Document type constants
const (
	DocumentTypeID       = "DNI"
	DocumentTypeContract = "CONTRATO"
	DocumentTypePower    = "PODER"
	DocumentTypeReceipt  = "RECIBO"
	DocumentTypeFiling   = "ESCRITO"
	DocumentTypeOther    = "OTRO"
)

var DocumentTypes = []string{
	DocumentTypeID,
	DocumentTypeContract,
	DocumentTypePower,
	DocumentTypeReceipt,
	DocumentTypeFiling,
	DocumentTypeOther,
}

// Document is a file attached to a client. The bytes live in document storage.
type Document struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClientID     uint    `gorm:"not null;index" json:"client_id"`
	StoredName   string  `gorm:"size:255;uniqueIndex;not null" json:"stored_name"`
	OriginalName string  `gorm:"size:255;not null" json:"original_name"`
	Type         string  `gorm:"size:20;not null" json:"type"`
	Description  *string `gorm:"type:text" json:"description,omitempty"`
	Size         int64   `gorm:"not null" json:"size"`
	Extension    string  `gorm:"size:20" json:"extension"`
	UploadedByID *uint   `json:"uploaded_by_id,omitempty"`
}

// TableName specifies the table name for Document model
func (Document) TableName() string {
	return "documents"
}

// StorageKey returns the storage key: one directory per client
func (d *Document) StorageKey() string {
	return DocumentStorageKey(d.ClientID, d.StoredName)
}

// DocumentStorageKey builds the storage key for a client's stored file name
func DocumentStorageKey(clientID uint, storedName string) string {
	return path.Join(fmt.Sprintf("%d", clientID), storedName)
}

// IsValidDocumentType checks if the type is valid
func IsValidDocumentType(t string) bool {
	return contains(DocumentTypes, t)
}
