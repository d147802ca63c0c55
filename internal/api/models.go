package api

import (
	"taskapi/internal/domain"
	"taskapi/internal/store"
)

// CreateTaskRequest is the request body for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required,max=100"`
	Description string `json:"description" validate:"required"`
	Status      string `json:"status"      validate:"omitempty,oneof=pending in-progress completed"`
}

// UpdateTaskRequest is the request body for a partial task update.
// All fields are optional, but at least one must be present.
type UpdateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty"`
	Status      *string `json:"status"      validate:"omitempty,oneof=pending in-progress completed"`
}

// IsEmpty reports whether the update payload carries no fields.
func (r UpdateTaskRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Status == nil
}

// toStoreUpdate converts the request into the store's partial-update shape.
func (r UpdateTaskRequest) toStoreUpdate() store.TaskUpdate {
	update := store.TaskUpdate{
		Title:       r.Title,
		Description: r.Description,
	}
	if r.Status != nil {
		status := domain.TaskStatus(*r.Status)
		update.Status = &status
	}
	return update
}

// UpdateTaskStatusRequest is the request body for the status-only update.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress completed"`
}
