package services

import (
	"errors"
	"fmt"

	"lexdesk/repository"
)

var (
	// ErrValidation marks user-correctable input problems, raised before any write
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate is a validation failure on a unique key
	ErrDuplicate = fmt.Errorf("%w: duplicate key", ErrValidation)

	// ErrStorage marks document I/O failures
	ErrStorage = errors.New("document storage failure")
	// ErrFileTooLarge is returned when a document exceeds the upload limit
	ErrFileTooLarge = fmt.Errorf("%w: file too large", ErrStorage)

	// ErrInvalidCredentials is the single outcome of every rejected login
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrLoginThrottled is returned while a username+source is locked out
	ErrLoginThrottled = errors.New("too many failed login attempts")
	// ErrForbidden is returned when the session may not perform an action
	ErrForbidden = errors.New("forbidden")
)

// ValidationError names the offending field
type ValidationError struct {
	Field     string
	Message   string
	Duplicate bool
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	if e.Duplicate {
		return ErrDuplicate
	}
	return ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func duplicate(field, message string) error {
	return &ValidationError{Field: field, Message: message, Duplicate: true}
}

// notFound reports a missing record with the data layer's sentinel
func notFound(entity string, id uint) error {
	return fmt.Errorf("%w: %s %d", repository.ErrNotFound, entity, id)
}

func storageError(action string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, action, err)
}
