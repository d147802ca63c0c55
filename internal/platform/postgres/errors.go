package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"taskapi/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"

	// invalidTextRepresentationCode is the PostgreSQL error code raised when a
	// value cannot be cast to its column type (e.g. a malformed uuid literal)
	invalidTextRepresentationCode = "22P02"
)

// MapError maps a database error to the storage-agnostic failure kinds
// defined in the store package. It wraps the original error to preserve
// context for logging. This function should be used on every database
// operation so that callers never inspect driver-specific error shapes.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrTaskNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return &store.DuplicateError{
				Field: fieldFromConstraint(pgErr.ConstraintName),
				Err:   err,
			}
		case checkViolationCode:
			return &store.ValidationError{
				Messages: []string{messageForConstraint(pgErr.ConstraintName)},
			}
		case notNullViolationCode:
			return &store.ValidationError{
				Messages: []string{fmt.Sprintf("%s is required", pgErr.ColumnName)},
			}
		case invalidTextRepresentationCode:
			return &store.InvalidIDError{Value: pgErr.Message}
		}
	}

	return err
}

// fieldFromConstraint derives a field name from a constraint name such as
// "tasks_title_key". Falls back to the raw constraint name when the
// convention does not match.
func fieldFromConstraint(constraint string) string {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(constraint, "tasks_"), "_key")
	if trimmed == "" {
		return constraint
	}
	return trimmed
}

// messageForConstraint maps the schema's named check constraints to the
// field-rule messages the domain uses.
func messageForConstraint(constraint string) string {
	switch constraint {
	case "tasks_title_length":
		return "title cannot exceed 100 characters"
	case "tasks_title_not_blank":
		return "title is required"
	case "tasks_description_not_blank":
		return "description is required"
	case "tasks_status_valid":
		return "invalid task status"
	default:
		return fmt.Sprintf("constraint violated: %s", constraint)
	}
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// CheckRowsAffected examines the number of rows affected by a database
// operation. If no rows were affected, it returns store.ErrTaskNotFound.
// This is useful for DELETE operations where the absence of affected rows
// indicates that the target record doesn't exist.
func CheckRowsAffected(result sql.Result) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}
