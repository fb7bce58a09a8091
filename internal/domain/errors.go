package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPrice         = errors.New("price must be a non-negative decimal")
	ErrInvalidCategoryRef   = errors.New("category reference is invalid")
	ErrAttachmentUnreadable = errors.New("staged attachment could not be read")
)

// FieldError reports a required form field that is missing or blank.
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("required field %q is missing or blank", e.Field)
}

// StoreError is a failure reported by the remote persistence service. It is
// surfaced verbatim to the caller; the core never retries.
type StoreError struct {
	Op     string
	Status int // HTTP status returned by the collaborator, 0 if unreachable
	Err    error
}

func (e *StoreError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: persistence service returned status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: persistence service unreachable: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
