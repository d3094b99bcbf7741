package models

import (
	"time"
)

// Movement type constants
const (
	MovementTypeFiling       = "ESCRITO"
	MovementTypeHearing      = "AUDIENCIA"
	MovementTypeRuling       = "RESOLUCION"
	MovementTypeNotice       = "NOTIFICACION"
	MovementTypeExpertReport = "PERITAJE"
	MovementTypeOther        = "OTRO"
)

var MovementTypes = []string{
	MovementTypeFiling,
	MovementTypeHearing,
	MovementTypeRuling,
	MovementTypeNotice,
	MovementTypeExpertReport,
	MovementTypeOther,
}

// Movement is a docket entry logged against a case
type Movement struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CaseID      uint      `gorm:"not null;index" json:"case_id"`
	Date        time.Time `gorm:"not null" json:"date"`
	Type        string    `gorm:"size:20;not null" json:"type"`
	Description string    `gorm:"type:text;not null" json:"description"`
	// Cuaderno and foja references
	Notebook    *string `gorm:"size:50" json:"notebook,omitempty"`
	Folio       *string `gorm:"size:50" json:"folio,omitempty"`
	CreatedByID *uint   `json:"created_by_id,omitempty"`
}

// TableName specifies the table name for Movement model
func (Movement) TableName() string {
	return "movements"
}

// IsValidMovementType checks if the type is valid
func IsValidMovementType(t string) bool {
	return contains(MovementTypes, t)
}
