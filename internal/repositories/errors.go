package repositories

import (
	"errors"
	"fmt"
	"strings"

	"comercio/internal/database"
)

var (
	// ErrNotFound is returned when no record has the requested ID.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a write collides with a unique column.
	ErrDuplicate = errors.New("value already in use")
)

// writeError wraps a failed write, classifying unique violations as ErrDuplicate.
func writeError(op string, err error) error {
	if database.IsDuplicate(err) {
		return fmt.Errorf("failed to %s: %w", op, ErrDuplicate)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// likePattern builds a case-insensitive substring pattern.
func likePattern(term string) string {
	return "%" + strings.ToLower(term) + "%"
}
