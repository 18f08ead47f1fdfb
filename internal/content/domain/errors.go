package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("entity not found")
	ErrConflict = errors.New("entity already exists")
)

// ValidationError reports the first field of a payload that failed validation.
type ValidationError struct {
	Index  int // position in a batch, -1 for single entities
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("item %d: field %q %s", e.Index, e.Field, e.Reason)
	}
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("field %q %s", e.Field, e.Reason)
}

// Invalid builds a ValidationError for a single entity.
func Invalid(field, reason string) *ValidationError {
	return &ValidationError{Index: -1, Field: field, Reason: reason}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
