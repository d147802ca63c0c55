package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

// The three legal task states. Anything else is rejected at every layer.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// MaxTitleLength is the maximum title length in characters, not bytes.
const MaxTitleLength = 100

// Validation failures for task fields.
var (
	ErrEmptyTaskID          = errors.New("task ID cannot be empty")
	ErrEmptyTaskTitle       = errors.New("title is required")
	ErrTaskTitleTooLong     = errors.New("title cannot exceed 100 characters")
	ErrEmptyTaskDescription = errors.New("description is required")
	ErrInvalidTaskStatus    = errors.New("invalid task status")
)

// Task represents a single unit of work tracked by the system.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewTask creates a new Task with a generated ID and creation timestamp.
// Title and description are trimmed of surrounding whitespace; an empty
// status defaults to pending. Returns a validation error if any field
// violates the task rules.
func NewTask(title, description string, status TaskStatus) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}

	task := &Task{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks that the task data meets all domain rules.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}
	if err := ValidateDescription(t.Description); err != nil {
		return err
	}
	if !IsValidTaskStatus(t.Status) {
		return ErrInvalidTaskStatus
	}
	return nil
}

// ValidateTitle checks the title field rules: non-blank and at most
// MaxTitleLength characters.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTaskTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrTaskTitleTooLong
	}
	return nil
}

// ValidateDescription checks that the description is non-blank.
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return ErrEmptyTaskDescription
	}
	return nil
}

// IsValidTaskStatus reports whether s is one of the legal task states.
// Matching is exact; no case folding.
func IsValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}
