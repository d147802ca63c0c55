package store

import (
	"errors"
	"fmt"
	"strings"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrInvalidID is returned when an identifier cannot be parsed into the
	// store's native key type. A record addressed by such an identifier can
	// never exist, so callers usually treat this the same as not-found.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity.
	ErrDuplicate = errors.New("entity already exists")

	// ErrTaskNotFound indicates that the requested task does not exist in the store.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// InvalidIDError reports an identifier that could not be parsed.
// It carries the offending raw value so the HTTP boundary can echo it back.
type InvalidIDError struct {
	Value string
}

// Error implements the error interface for InvalidIDError.
func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid identifier: %q", e.Value)
}

// Unwrap makes InvalidIDError match ErrInvalidID under errors.Is.
func (e *InvalidIDError) Unwrap() error {
	return ErrInvalidID
}

// DuplicateError reports a uniqueness-constraint violation on a named field.
type DuplicateError struct {
	Field string
	Err   error
}

// Error implements the error interface for DuplicateError.
func (e *DuplicateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("duplicate value for field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("duplicate value for field %q", e.Field)
}

// Unwrap returns the wrapped driver error, if any.
func (e *DuplicateError) Unwrap() error {
	return e.Err
}

// Is reports whether this error matches ErrDuplicate regardless of the
// wrapped driver error.
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// ValidationError aggregates field-level violations detected at the storage
// layer (for example a constraint rejection on a partial update).
type ValidationError struct {
	Messages []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ". ")
}

// Is reports whether this error matches ErrInvalidEntity, so callers can
// treat storage validation failures uniformly with errors.Is.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidEntity
}
