package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskapi/internal/apierr"
	"taskapi/internal/domain"
	"taskapi/internal/store"
)

// mockTaskStore implements store.TaskStore with per-call function hooks so
// each test controls exactly the behavior it needs.
type mockTaskStore struct {
	createFn       func(ctx context.Context, task *domain.Task) error
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	countFn        func(ctx context.Context, query store.TaskQuery) (int64, error)
	listFn         func(ctx context.Context, query store.TaskQuery) ([]*domain.Task, error)
	updateFn       func(ctx context.Context, id uuid.UUID, update store.TaskUpdate) (*domain.Task, error)
	updateStatusFn func(ctx context.Context, id uuid.UUID, status domain.TaskStatus) (*domain.Task, error)
	deleteFn       func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, task)
}

func (m *mockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.getByIDFn == nil {
		return nil, store.ErrTaskNotFound
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockTaskStore) Count(ctx context.Context, query store.TaskQuery) (int64, error) {
	if m.countFn == nil {
		return 0, nil
	}
	return m.countFn(ctx, query)
}

func (m *mockTaskStore) List(ctx context.Context, query store.TaskQuery) ([]*domain.Task, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, query)
}

func (m *mockTaskStore) Update(ctx context.Context, id uuid.UUID, update store.TaskUpdate) (*domain.Task, error) {
	if m.updateFn == nil {
		return nil, store.ErrTaskNotFound
	}
	return m.updateFn(ctx, id, update)
}

func (m *mockTaskStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) (*domain.Task, error) {
	if m.updateStatusFn == nil {
		return nil, store.ErrTaskNotFound
	}
	return m.updateStatusFn(ctx, id, status)
}

func (m *mockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn == nil {
		return store.ErrTaskNotFound
	}
	return m.deleteFn(ctx, id)
}

// requireAPIError asserts the error is an ApiError with the given code and
// message; the status label must follow from the code.
func requireAPIError(t *testing.T, err error, wantCode int, wantMessage string) {
	t.Helper()

	var apiErr *apierr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, wantCode, apiErr.StatusCode)
	assert.Equal(t, wantMessage, apiErr.Message)
	if wantCode < http.StatusInternalServerError {
		assert.Equal(t, apierr.StatusFail, apiErr.Status)
	} else {
		assert.Equal(t, apierr.StatusError, apiErr.Status)
	}
}

func newTask(t *testing.T) *domain.Task {
	t.Helper()
	task, err := domain.NewTask("Write report", "Quarterly numbers", domain.TaskStatusPending)
	require.NoError(t, err)
	return task
}

func TestNewTaskService(t *testing.T) {
	assert.Panics(t, func() {
		NewTaskService(nil, nil)
	})
	assert.NotNil(t, NewTaskService(&mockTaskStore{}, nil))
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		var saved *domain.Task
		svc := NewTaskService(&mockTaskStore{
			createFn: func(_ context.Context, task *domain.Task) error {
				saved = task
				return nil
			},
		}, nil)

		task, err := svc.CreateTask(ctx, CreateTaskInput{
			Title:       "Write report",
			Description: "Quarterly numbers",
		})

		require.NoError(t, err)
		assert.Same(t, saved, task)
		assert.Equal(t, domain.TaskStatusPending, task.Status)
	})

	t.Run("invalid_input_is_400", func(t *testing.T) {
		svc := NewTaskService(&mockTaskStore{}, nil)

		_, err := svc.CreateTask(ctx, CreateTaskInput{Title: "", Description: "d"})

		requireAPIError(t, err, http.StatusBadRequest, "Error creating Task")
	})

	t.Run("store_failure_is_400", func(t *testing.T) {
		svc := NewTaskService(&mockTaskStore{
			createFn: func(context.Context, *domain.Task) error {
				return errors.New("connection refused")
			},
		}, nil)

		_, err := svc.CreateTask(ctx, CreateTaskInput{Title: "t", Description: "d"})

		requireAPIError(t, err, http.StatusBadRequest, "Error creating Task")
	})
}

func TestListTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles_pagination_metadata", func(t *testing.T) {
		tasks := []*domain.Task{newTask(t), newTask(t)}
		var gotCountQuery, gotListQuery store.TaskQuery

		svc := NewTaskService(&mockTaskStore{
			countFn: func(_ context.Context, query store.TaskQuery) (int64, error) {
				gotCountQuery = query
				return 25, nil
			},
			listFn: func(_ context.Context, query store.TaskQuery) ([]*domain.Task, error) {
				gotListQuery = query
				return tasks, nil
			},
		}, nil)

		page, err := svc.ListTasks(ctx,
			store.TaskFilter{Status: "pending"},
			store.PageParams{Page: 2, Limit: 10},
			store.SortParams{SortBy: "title", SortOrder: "asc"})

		require.NoError(t, err)
		assert.Equal(t, tasks, page.Tasks)
		assert.Equal(t, Pagination{Total: 25, Page: 2, Pages: 3, Limit: 10}, page.Pagination)
		// Count and List must run against the same query plan.
		assert.Equal(t, gotCountQuery, gotListQuery)
		assert.Equal(t, "pending", gotListQuery.Filter.Status)
		assert.Equal(t, store.SortColumnTitle, gotListQuery.SortColumn)
		assert.False(t, gotListQuery.Descending)
		assert.Equal(t, 10, gotListQuery.Offset)
	})

	t.Run("defaults_when_params_absent", func(t *testing.T) {
		svc := NewTaskService(&mockTaskStore{
			countFn: func(context.Context, store.TaskQuery) (int64, error) { return 0, nil },
			listFn: func(context.Context, store.TaskQuery) ([]*domain.Task, error) {
				return []*domain.Task{}, nil
			},
		}, nil)

		page, err := svc.ListTasks(ctx, store.TaskFilter{}, store.PageParams{}, store.SortParams{})

		require.NoError(t, err)
		assert.Empty(t, page.Tasks)
		assert.Equal(t, Pagination{Total: 0, Page: 1, Pages: 0, Limit: 10}, page.Pagination)
	})

	t.Run("count_failure_is_500", func(t *testing.T) {
		svc := NewTaskService(&mockTaskStore{
			countFn: func(context.Context, store.TaskQuery) (int64, error) {
				return 0, errors.New("connection refused")
			},
		}, nil)

		_, err := svc.ListTasks(ctx, store.TaskFilter{}, store.PageParams{}, store.SortParams{})

		requireAPIError(t, err, http.StatusInternalServerError, "Error fetching tasks")
	})

	t.Run("list_failure_is_500", func(t *testing.T) {
		svc := NewTaskService(&mockTaskStore{
			countFn: func(context.Context, store.TaskQuery) (int64, error) { return 3, nil },
			listFn: func(context.Context, store.TaskQuery) ([]*domain.Task, error) {
				return nil, errors.New("connection refused")
			},
		}, nil)

		_, err := svc.ListTasks(ctx, store.TaskFilter{}, store.PageParams{}, store.SortParams{})

		requireAPIError(t, err, http.StatusInternalServerError, "Error fetching tasks")
	})
}

func TestGetTaskByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		want := newTask(t)
		svc := NewTaskService(&mockTaskStore{
			getByIDFn: func(_ context.Context, id uuid.UUID) (*domain.Task, error) {
				assert.Equal(t, want.ID, id)
				return want, nil
			},
		}, nil)

		got, err := svc.GetTaskByID(ctx, want.ID.String())

		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("malformed_id_is_404", func(t *testing.T) {
		svc := NewTaskService(&mockTaskStore{}, nil)

		_, err := svc.GetTaskByID(ctx, "123")

		requireAPIError(t, err, http.StatusNotFound, "Task not found")
	})

	t.Run("absent_record_is_404", func(t *testing.T) {
		svc := NewTaskService(&mockTaskStore{
			getByIDFn: func(context.Context, uuid.UUID) (*domain.Task, error) {
				return nil, store.ErrTaskNotFound
			},
		}, nil)

		_, err := svc.GetTaskByID(ctx, uuid.NewString())

		requireAPIError(t, err, http.StatusNotFound, "Task not found")
	})
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	title := "Updated title"

	t.Run("success", func(t *testing.T) {
		want := newTask(t)
		svc := NewTaskService(&mockTaskStore{
			updateFn: func(_ context.Context, id uuid.UUID, update store.TaskUpdate) (*domain.Task, error) {
				assert.Equal(t, want.ID, id)
				require.NotNil(t, update.Title)
				assert.Equal(t, title, *update.Title)
				return want, nil
			},
		}, nil)

		got, err := svc.UpdateTask(ctx, want.ID.String(), store.TaskUpdate{Title: &title})

		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("malformed_id_is_404", func(t *testing.T) {
		svc := NewTaskService(&mockTaskStore{}, nil)

		_, err := svc.UpdateTask(ctx, "not-a-uuid", store.TaskUpdate{Title: &title})

		requireAPIError(t, err, http.StatusNotFound, "Task not found")
	})

	t.Run("store_validation_rejection_is_404", func(t *testing.T) {
		svc := NewTaskService(&mockTaskStore{
			updateFn: func(context.Context, uuid.UUID, store.TaskUpdate) (*domain.Task, error) {
				return nil, &store.ValidationError{Messages: []string{"title is required"}}
			},
		}, nil)

		_, err := svc.UpdateTask(ctx, uuid.NewString(), store.TaskUpdate{Title: &title})

		requireAPIError(t, err, http.StatusNotFound, "Task not found")
	})
}

func TestUpdateTaskStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		want := newTask(t)
		svc := NewTaskService(&mockTaskStore{
			updateStatusFn: func(_ context.Context, id uuid.UUID, status domain.TaskStatus) (*domain.Task, error) {
				assert.Equal(t, want.ID, id)
				assert.Equal(t, domain.TaskStatusCompleted, status)
				return want, nil
			},
		}, nil)

		got, err := svc.UpdateTaskStatus(ctx, want.ID.String(), domain.TaskStatusCompleted)

		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("absent_record_is_404", func(t *testing.T) {
		svc := NewTaskService(&mockTaskStore{}, nil)

		_, err := svc.UpdateTaskStatus(ctx, uuid.NewString(), domain.TaskStatusCompleted)

		requireAPIError(t, err, http.StatusNotFound, "Task not found")
	})
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deleted := false
		id := uuid.New()
		svc := NewTaskService(&mockTaskStore{
			deleteFn: func(_ context.Context, got uuid.UUID) error {
				assert.Equal(t, id, got)
				deleted = true
				return nil
			},
		}, nil)

		require.NoError(t, svc.DeleteTask(ctx, id.String()))
		assert.True(t, deleted)
	})

	t.Run("malformed_id_is_404", func(t *testing.T) {
		svc := NewTaskService(&mockTaskStore{}, nil)

		err := svc.DeleteTask(ctx, "nope")

		requireAPIError(t, err, http.StatusNotFound, "Task not found")
	})

	t.Run("absent_record_is_404", func(t *testing.T) {
		svc := NewTaskService(&mockTaskStore{
			deleteFn: func(context.Context, uuid.UUID) error {
				return store.ErrTaskNotFound
			},
		}, nil)

		err := svc.DeleteTask(ctx, uuid.NewString())

		requireAPIError(t, err, http.StatusNotFound, "Task not found")
	})
}
