package models

import (
	"time"
)

// Client is a person or company represented by the practice
type Client struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FullName string `gorm:"size:200;not null;index" json:"full_name"`
	// National ID (DNI) and tax ID (CUIT), stored digits-only
	DNI       *string    `gorm:"column:dni;size:8;index" json:"dni,omitempty"`
	CUIT      *string    `gorm:"column:cuit;size:11;index" json:"cuit,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`

	// Contact
	Email  *string `gorm:"size:255" json:"email,omitempty"`
	Phone  *string `gorm:"size:50" json:"phone,omitempty"`
	Mobile *string `gorm:"size:50" json:"mobile,omitempty"`

	// Address
	Address    *string `gorm:"size:255" json:"address,omitempty"`
	City       *string `gorm:"size:100" json:"city,omitempty"`
	Province   *string `gorm:"size:100" json:"province,omitempty"`
	PostalCode *string `gorm:"size:20" json:"postal_code,omitempty"`

	Notes       *string `gorm:"type:text" json:"notes,omitempty"`
	Active      bool    `gorm:"not null;index" json:"active"`
	CreatedByID *uint   `gorm:"index" json:"created_by_id,omitempty"`
}

// TableName specifies the table name for Client model
func (Client) TableName() string {
	return "clients"
}
