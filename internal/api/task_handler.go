package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"taskapi/internal/api/shared"
	"taskapi/internal/apierr"
	"taskapi/internal/domain"
	"taskapi/internal/platform/logger"
	"taskapi/internal/service"
	"taskapi/internal/store"
)

// dateLayouts are the accepted formats for the fromDate/toDate query
// parameters, tried in order.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, log *slog.Logger) *TaskHandler {
	if taskService == nil {
		panic("task service cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      log.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /api/tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, apierr.New(http.StatusBadRequest, "Invalid request format"))
		return
	}

	if err := checkRequest(req); err != nil {
		RespondWithError(w, r, err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
	})
	if err != nil {
		RespondWithError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, task)
}

// ListTasks handles GET /api/tasks requests with optional filtering,
// pagination, and sorting query parameters.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.TaskFilter{
		Status:   q.Get("status"),
		Search:   q.Get("search"),
		FromDate: parseDate(q.Get("fromDate")),
		ToDate:   parseDate(q.Get("toDate")),
	}

	page := store.PageParams{
		Page:  store.ParsePositiveInt(q.Get("page"), store.DefaultPage),
		Limit: store.ParsePositiveInt(q.Get("limit"), store.DefaultLimit),
	}

	sort := store.SortParams{
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}

	result, err := h.taskService.ListTasks(r.Context(), filter, page, sort)
	if err != nil {
		RespondWithError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.ListResponse{
		Success:    true,
		Count:      len(result.Tasks),
		Pagination: result.Pagination,
		Data:       result.Tasks,
	})
}

// GetTaskByID handles GET /api/tasks/{id} requests
func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	task, err := h.taskService.GetTaskByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		RespondWithError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, task)
}

// UpdateTask handles PUT /api/tasks/{id} requests
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, apierr.New(http.StatusBadRequest, "Invalid request format"))
		return
	}

	// Joi's .min(1): an update with no fields at all is a validation
	// failure, not a no-op.
	if req.IsEmpty() {
		RespondWithError(w, r,
			apierr.New(http.StatusBadRequest, "update must include at least one field"))
		return
	}

	if err := checkRequest(req); err != nil {
		RespondWithError(w, r, err)
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), chi.URLParam(r, "id"), req.toStoreUpdate())
	if err != nil {
		RespondWithError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, task)
}

// UpdateTaskStatus handles PATCH /api/tasks/{id}/status requests
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateTaskStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, apierr.New(http.StatusBadRequest, "Invalid request format"))
		return
	}

	if err := checkRequest(req); err != nil {
		RespondWithError(w, r, err)
		return
	}

	task, err := h.taskService.UpdateTaskStatus(
		r.Context(),
		chi.URLParam(r, "id"),
		domain.TaskStatus(req.Status),
	)
	if err != nil {
		RespondWithError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/{id} requests
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id := chi.URLParam(r, "id")
	if err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		RespondWithError(w, r, err)
		return
	}

	log.Debug("task deleted", slog.String("task_id", id))
	shared.RespondWithData(w, r, http.StatusOK, struct{}{})
}

// parseDate parses a date query parameter. An empty or unparseable value
// yields nil, which the query builder treats as an absent bound.
func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
