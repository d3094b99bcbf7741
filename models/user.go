package models

import (
	"time"
)

// User roles
const (
	RoleAdmin     = "admin"
	RoleLawyer    = "lawyer"
	RoleSecretary = "secretary"
)

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username     string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"not null" json:"-"`
	FullName     string     `gorm:"size:200;not null" json:"full_name"`
	Email        *string    `gorm:"size:255" json:"email,omitempty"`
	Role         string     `gorm:"size:20;not null;default:lawyer" json:"role"`
	Active       bool       `gorm:"not null" json:"active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// IsAdmin checks if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanViewFinancials reports whether the role may see fees, payments and expenses
func (u *User) CanViewFinancials() bool {
	return u.Role == RoleAdmin || u.Role == RoleLawyer
}

// CanDeleteRecords reports whether the role may hard-delete cases and clients
func (u *User) CanDeleteRecords() bool {
	return u.Role == RoleAdmin || u.Role == RoleLawyer
}

// IsValidRole checks if the role is valid
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleLawyer, RoleSecretary:
		return true
	}
	return false
}
