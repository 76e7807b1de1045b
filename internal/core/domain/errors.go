package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicate          = errors.New("duplicate value")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
)

// NotFoundError reports that no Entity with the given ID exists.
// errors.Is(err, ErrNotFound) holds for every NotFoundError.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d doesn't exist.", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound returns a *NotFoundError for entity/id.
func NewNotFound(entity string, id uint) error {
	return &NotFoundError{Entity: entity, ID: id}
}
