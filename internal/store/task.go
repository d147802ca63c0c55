package store

import (
	"context"

	"github.com/google/uuid"

	"taskapi/internal/domain"
)

// TaskUpdate describes a partial update to a task. Nil fields are left
// untouched; non-nil fields replace the stored value after re-validation
// against the task field rules.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
}

// IsEmpty reports whether the update carries no fields at all.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// The task must be valid according to domain validation rules.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Count returns the number of tasks matching the query's filter,
	// ignoring its window and sort.
	Count(ctx context.Context, query TaskQuery) (int64, error)

	// List retrieves the page of tasks described by the query: the filter
	// predicate applied, sorted, then windowed by offset/limit.
	List(ctx context.Context, query TaskQuery) ([]*domain.Task, error)

	// Update applies a partial update to an existing task in a single
	// atomic statement and returns the post-update record.
	// Returns ErrTaskNotFound if the task does not exist and a
	// ValidationError if any updated field violates the task rules.
	Update(ctx context.Context, id uuid.UUID, update TaskUpdate) (*domain.Task, error)

	// UpdateStatus updates only the status field of an existing task and
	// returns the post-update record.
	// Returns ErrTaskNotFound if the task does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) (*domain.Task, error)

	// Delete permanently removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ParseID parses a raw identifier string into the store's native key type.
// Returns an InvalidIDError carrying the raw value when parsing fails.
func ParseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &InvalidIDError{Value: raw}
	}
	return id, nil
}
