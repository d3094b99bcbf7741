package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrPersistence marks every failure raised by the data access layer
	ErrPersistence = errors.New("persistence failure")
	// ErrNotFound is returned when an update or delete matched no row
	ErrNotFound = fmt.Errorf("%w: record not found", ErrPersistence)
)

// persistence wraps a driver or connection error with ErrPersistence
func persistence(action string, err error) error {
	if errors.Is(err, ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: failed to %s: %w", ErrPersistence, action, err)
}

func notFound(entity string, id uint) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, entity, id)
}
