package book

import (
	"errors"
	"fmt"
)

// ─── Sentinel Errors ────────────────────────────────────────────────────────

var (
	// ErrUnauthorized is returned when the actor's role does not permit the operation.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when a referenced member, note or record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrCapacityExceeded is returned when a loan would push a member past their cap.
	ErrCapacityExceeded = errors.New("loan capacity exceeded")

	// ErrExternalService is returned when an outside dependency such as the
	// AI advisor fails.
	ErrExternalService = errors.New("external service failure")

	// ErrClosed is returned by mutations after Close.
	ErrClosed = errors.New("book closed")
)

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}
