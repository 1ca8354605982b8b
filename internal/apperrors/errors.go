package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure kinds the service distinguishes.
// Wrap them with fmt.Errorf("...: %w", ...) so callers can use errors.Is.
var (
	// ErrNotFound indicates the targeted product does not exist.
	ErrNotFound = errors.New("product not found")

	// ErrInvalidArgument indicates a non-numeric or non-positive identifier
	// where a valid one is required.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ValidationError reports a malformed or missing request field. It is
// returned before any side effect takes place.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on field '%s': %s", e.Field, e.Reason)
}

// UploadError wraps a failed object-store upload. The enclosing operation
// aborts without persisting anything.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("image upload failed: %v", e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
