// Package service contains the task business operations: thin orchestration
// over the storage layer that wraps every storage failure into the uniform
// typed ApiError the HTTP boundary expects.
package service

import (
	"context"
	"log/slog"
	"net/http"

	"taskapi/internal/apierr"
	"taskapi/internal/domain"
	"taskapi/internal/platform/logger"
	"taskapi/internal/store"
)

// CreateTaskInput carries a validated create payload into the service.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
}

// Pagination is the metadata returned alongside a task page.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Limit int   `json:"limit"`
}

// TaskPage is the result of a list operation: one page of tasks plus the
// pagination metadata needed to iterate the full set.
type TaskPage struct {
	Tasks      []*domain.Task
	Pagination Pagination
}

// TaskService exposes the six task operations. Identifiers are accepted as
// raw strings; a malformed identifier is reported identically to an absent
// record, so callers never learn which of the two occurred.
type TaskService interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	ListTasks(ctx context.Context, filter store.TaskFilter, page store.PageParams, sort store.SortParams) (*TaskPage, error)
	GetTaskByID(ctx context.Context, id string) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, update store.TaskUpdate) (*domain.Task, error)
	UpdateTaskStatus(ctx context.Context, id string, status domain.TaskStatus) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// taskService is the default TaskService implementation. It holds no state
// across calls; the injected store owns all persisted data.
type taskService struct {
	store  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a TaskService backed by the given store.
// If logger is nil, a default logger will be used.
func NewTaskService(taskStore store.TaskStore, log *slog.Logger) TaskService {
	if taskStore == nil {
		panic("task store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &taskService{
		store:  taskStore,
		logger: log.With(slog.String("component", "task_service")),
	}
}

// CreateTask persists a new task built from the input.
// Any storage failure surfaces as ApiError(400, "Error creating Task").
func (s *taskService) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(input.Title, input.Description, input.Status)
	if err != nil {
		log.Warn("rejected task payload", slog.String("error", err.Error()))
		return nil, apierr.New(http.StatusBadRequest, "Error creating Task")
	}

	if err := s.store.Create(ctx, task); err != nil {
		log.Error("task creation failed", slog.String("error", err.Error()))
		return nil, apierr.New(http.StatusBadRequest, "Error creating Task")
	}

	return task, nil
}

// ListTasks builds the query plan, issues a count query and a page query
// against the same filter predicate, and assembles the pagination metadata.
// Any storage failure surfaces as ApiError(500, "Error fetching tasks").
func (s *taskService) ListTasks(
	ctx context.Context,
	filter store.TaskFilter,
	page store.PageParams,
	sort store.SortParams,
) (*TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := store.BuildTaskQuery(filter, page, sort)

	total, err := s.store.Count(ctx, query)
	if err != nil {
		log.Error("task count failed", slog.String("error", err.Error()))
		return nil, apierr.New(http.StatusInternalServerError, "Error fetching tasks")
	}

	tasks, err := s.store.List(ctx, query)
	if err != nil {
		log.Error("task list failed", slog.String("error", err.Error()))
		return nil, apierr.New(http.StatusInternalServerError, "Error fetching tasks")
	}

	return &TaskPage{
		Tasks: tasks,
		Pagination: Pagination{
			Total: total,
			Page:  query.Offset/query.Limit + 1,
			Pages: store.Pages(total, query.Limit),
			Limit: query.Limit,
		},
	}, nil
}

// GetTaskByID looks up a single task. A malformed identifier and an absent
// record both surface as ApiError(404, "Task not found").
func (s *taskService) GetTaskByID(ctx context.Context, id string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	taskID, err := store.ParseID(id)
	if err != nil {
		log.Debug("malformed task id", slog.String("id", id))
		return nil, apierr.New(http.StatusNotFound, "Task not found")
	}

	task, err := s.store.GetByID(ctx, taskID)
	if err != nil {
		log.Debug("task lookup failed",
			slog.String("task_id", taskID.String()),
			slog.String("error", err.Error()))
		return nil, apierr.New(http.StatusNotFound, "Task not found")
	}

	return task, nil
}

// UpdateTask applies a partial update and returns the post-update record.
// Malformed id, absent record, and storage-layer validation rejection all
// surface as ApiError(404, "Task not found").
func (s *taskService) UpdateTask(
	ctx context.Context,
	id string,
	update store.TaskUpdate,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	taskID, err := store.ParseID(id)
	if err != nil {
		log.Debug("malformed task id", slog.String("id", id))
		return nil, apierr.New(http.StatusNotFound, "Task not found")
	}

	task, err := s.store.Update(ctx, taskID, update)
	if err != nil {
		log.Debug("task update failed",
			slog.String("task_id", taskID.String()),
			slog.String("error", err.Error()))
		return nil, apierr.New(http.StatusNotFound, "Task not found")
	}

	return task, nil
}

// UpdateTaskStatus updates only the status field, with the same failure
// contract as UpdateTask.
func (s *taskService) UpdateTaskStatus(
	ctx context.Context,
	id string,
	status domain.TaskStatus,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	taskID, err := store.ParseID(id)
	if err != nil {
		log.Debug("malformed task id", slog.String("id", id))
		return nil, apierr.New(http.StatusNotFound, "Task not found")
	}

	task, err := s.store.UpdateStatus(ctx, taskID, status)
	if err != nil {
		log.Debug("task status update failed",
			slog.String("task_id", taskID.String()),
			slog.String("error", err.Error()))
		return nil, apierr.New(http.StatusNotFound, "Task not found")
	}

	return task, nil
}

// DeleteTask removes a task permanently. Deleting an absent or malformed
// identifier surfaces as ApiError(404, "Task not found"); the failure is
// idempotent, never a crash.
func (s *taskService) DeleteTask(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	taskID, err := store.ParseID(id)
	if err != nil {
		log.Debug("malformed task id", slog.String("id", id))
		return apierr.New(http.StatusNotFound, "Task not found")
	}

	if err := s.store.Delete(ctx, taskID); err != nil {
		log.Debug("task delete failed",
			slog.String("task_id", taskID.String()),
			slog.String("error", err.Error()))
		return apierr.New(http.StatusNotFound, "Task not found")
	}

	return nil
}
