/*
errors.go - Error types for the staffing operations layer

PURPOSE:
  The resolution core (schedule, staffing) never fails: every date resolves to
  something and every metric has a value. Errors only arise at the edges,
  when loading from or writing to a gateway, or when a caller hands in input
  that cannot name a date or a person.

ERROR CATEGORIES:
  1. Lookup errors - A referenced person does not exist
  2. Input errors - Malformed dates, months, person records, or day edits
  3. Store errors - Wrapped with context via fmt.Errorf("...: %w", err)

USAGE:
  The API maps errors to status codes with errors.Is:

    if operations.IsNotFound(err) {
        writeError(w, http.StatusNotFound, ...)
    }

SEE ALSO:
  - store.go: Gateway interfaces that return ErrNotFound
  - api/handlers.go: HTTP mapping
*/
package operations

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotFound is returned when a referenced person does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidDate is returned for dates or months that cannot be parsed
	// or are out of range.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidInput is returned when a person record or a day edit fails
	// validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrResetUnsupported is returned when the store cannot be cleared.
	ErrResetUnsupported = errors.New("store does not support reset")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ValidationError names the field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrInvalidInput)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
