package services

import (
	"errors"
	"fmt"

	"comercio/internal/repositories"
)

var (
	// ErrNotFound is returned when no record has the requested ID.
	ErrNotFound = repositories.ErrNotFound
	// ErrDuplicate is returned when an email or tax id is already registered.
	ErrDuplicate = repositories.ErrDuplicate
)

// ValidationError reports input rejected before anything was written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
