package bookingfields

import (
	"errors"
	"fmt"
)

// ErrConfigurationDefect is wrapped by every error that means the catalog or
// the reconciler is broken. It is never the caller's fault and should surface
// as an internal failure.
var ErrConfigurationDefect = errors.New("booking field configuration defect")

// ErrInvalidCatalog is returned by NewCatalog for an unusable field table.
var ErrInvalidCatalog = errors.New("invalid field catalog")

// MissingSystemFieldError reports a system field absent from a field list.
type MissingSystemFieldError struct {
	Field string
}

func (e *MissingSystemFieldError) Error() string {
	return fmt.Sprintf("system field %q is missing", e.Field)
}

// Unwrap returns ErrConfigurationDefect.
func (e *MissingSystemFieldError) Unwrap() error {
	return ErrConfigurationDefect
}

// DuplicateSystemFieldError reports a system field that reconciliation
// emitted more often than the persisted input contained it.
type DuplicateSystemFieldError struct {
	Field string
	Count int
	Want  int
}

func (e *DuplicateSystemFieldError) Error() string {
	return fmt.Sprintf("system field %q appears %d times, want %d", e.Field, e.Count, e.Want)
}

// Unwrap returns ErrConfigurationDefect.
func (e *DuplicateSystemFieldError) Unwrap() error {
	return ErrConfigurationDefect
}
