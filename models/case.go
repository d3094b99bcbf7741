package models

import (
	"time"
)

// Case status constants
const (
	CaseStatusActive     = "ACTIVO"
	CaseStatusInProgress = "EN_TRAMITE"
	CaseStatusSuspended  = "SUSPENDIDO"
	CaseStatusArchived   = "ARCHIVADO"
	CaseStatusFinished   = "FINALIZADO"
)

// CaseStatuses lists every case status in display order
var CaseStatuses = []string{
	CaseStatusActive,
	CaseStatusInProgress,
	CaseStatusSuspended,
	CaseStatusArchived,
	CaseStatusFinished,
}

// Case represents a legal case file (expediente)
type Case struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Case identification, stored upper-cased
	Number string `gorm:"size:100;uniqueIndex;not null" json:"number"`
	// Title is the carátula, e.g. "Pérez c/ Gómez s/ daños"
	Title string `gorm:"size:500;not null" json:"title"`

	// The client is referenced loosely by name; ClientID is filled when known
	ClientName    string  `gorm:"size:200;not null;index" json:"client_name"`
	ClientID      *uint   `gorm:"index" json:"client_id,omitempty"`
	OpposingParty *string `gorm:"size:200" json:"opposing_party,omitempty"`

	// Fuero / Juzgado / Secretaría
	Jurisdiction *string `gorm:"size:100" json:"jurisdiction,omitempty"`
	Court        *string `gorm:"size:200" json:"court,omitempty"`
	Clerk        *string `gorm:"size:100" json:"clerk,omitempty"`

	Status          string    `gorm:"size:20;not null;default:ACTIVO;index" json:"status"`
	StartDate       time.Time `gorm:"not null;index" json:"start_date"`
	EstimatedAmount *float64  `json:"estimated_amount,omitempty"`
	Notes           *string   `gorm:"type:text" json:"notes,omitempty"`

	CreatedByID *uint `gorm:"index" json:"created_by_id,omitempty"`
	// CreatedByName is filled from the users join on listings; never written
	CreatedByName string `gorm:"->;-:migration" json:"created_by_name,omitempty"`
}

// TableName specifies the table name for Case model
func (Case) TableName() string {
	return "cases"
}

// IsOpen checks if the case is still being worked on
func (c *Case) IsOpen() bool {
	return c.Status == CaseStatusActive || c.Status == CaseStatusInProgress || c.Status == CaseStatusSuspended
}

// IsValidCaseStatus checks if the status is valid
func IsValidCaseStatus(status string) bool {
	return contains(CaseStatuses, status)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
