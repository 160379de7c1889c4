package models

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a referenced record does not exist
var ErrNotFound = errors.New("record not found")

// ErrDuplicateTaxID is returned when a creditor with the same tax id already exists
var ErrDuplicateTaxID = errors.New("a creditor with this tax id already exists")

// ErrDuplicateOrderNumber is returned when a payment order with the same number already exists
var ErrDuplicateOrderNumber = errors.New("a payment order with this number already exists")

// ValidationError carries the complete list of violated rules for an entity
// or an attached file. The list is never partial: every rule is evaluated
// before the error is built.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// NewValidationError wraps a non-empty violation list; it returns nil for an
// empty list so callers can write `if err := ...; err != nil`.
func NewValidationError(violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

// AsValidationError unwraps a ValidationError from err, if present
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
