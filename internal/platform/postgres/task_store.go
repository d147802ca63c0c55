package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"taskapi/internal/domain"
	"taskapi/internal/platform/logger"
	"taskapi/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// taskColumns is the column list shared by every query that scans a task row.
const taskColumns = "id, title, description, status, created_at"

// Create implements store.TaskStore.Create
// It saves a new task to the database after domain validation.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return &store.ValidationError{Messages: []string{err.Error()}}
	}

	query := `
		INSERT INTO tasks (id, title, description, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		task.Status,
		task.CreatedAt,
	)

	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = $1", taskColumns)

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	return task, nil
}

// Count implements store.TaskStore.Count
// It counts the tasks matching the query's filter predicate.
func (s *PostgresTaskStore) Count(ctx context.Context, query store.TaskQuery) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildWhere(query.Filter)

	var total int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks"+where, args...).Scan(&total)
	if err != nil {
		log.Error("failed to count tasks", slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	return total, nil
}

// List implements store.TaskStore.List
// It fetches one page of tasks described by the query plan.
func (s *PostgresTaskStore) List(ctx context.Context, query store.TaskQuery) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args := buildWhere(query.Filter)

	direction := "ASC"
	if query.Descending {
		direction = "DESC"
	}

	// The sort column comes from the builder's whitelist, never from raw
	// user input, so interpolating it here is safe.
	stmt := fmt.Sprintf(
		"SELECT %s FROM tasks%s ORDER BY %s %s OFFSET $%d LIMIT $%d",
		taskColumns, where, query.SortColumn, direction, len(args)+1, len(args)+2,
	)
	args = append(args, query.Offset, query.Limit)

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return tasks, nil
}

// Update implements store.TaskStore.Update
// It applies the partial update in a single atomic UPDATE ... RETURNING
// statement, re-validating each provided field first.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Update(
	ctx context.Context,
	id uuid.UUID,
	update store.TaskUpdate,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if update.IsEmpty() {
		return nil, &store.ValidationError{Messages: []string{"update must include at least one field"}}
	}

	set, args, err := buildSet(update)
	if err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	stmt := fmt.Sprintf(
		"UPDATE tasks SET %s WHERE id = $%d RETURNING %s",
		strings.Join(set, ", "), len(args)+1, taskColumns,
	)
	args = append(args, id)

	task, err := scanTask(s.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for update", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	log.Info("task updated", slog.String("task_id", id.String()))
	return task, nil
}

// UpdateStatus implements store.TaskStore.UpdateStatus
// Returns store.ErrTaskNotFound if the task does not exist and a
// ValidationError if the status is not one of the enumerated values.
func (s *PostgresTaskStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.TaskStatus,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !domain.IsValidTaskStatus(status) {
		return nil, &store.ValidationError{
			Messages: []string{domain.ErrInvalidTaskStatus.Error()},
		}
	}

	stmt := fmt.Sprintf(
		"UPDATE tasks SET status = $1 WHERE id = $2 RETURNING %s",
		taskColumns,
	)

	task, err := scanTask(s.db.QueryRowContext(ctx, stmt, status, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for status update", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task status",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()),
			slog.String("status", string(status)))
		return nil, MapError(err)
	}

	log.Info("task status updated",
		slog.String("task_id", id.String()),
		slog.String("status", string(status)))
	return task, nil
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result); err != nil {
		log.Debug("task not found for delete", slog.String("task_id", id.String()))
		return err
	}

	log.Info("task deleted", slog.String("task_id", id.String()))
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row into a domain.Task.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	var status string

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&status,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	return &task, nil
}

// buildWhere translates the filter portion of a task query plan into a SQL
// WHERE clause with positional arguments. Returns an empty clause when no
// predicates apply.
func buildWhere(filter store.TaskFilter) (string, []any) {
	var conditions []string
	var args []any

	next := func() int { return len(args) + 1 }

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", next()))
		args = append(args, filter.Status)
	}

	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR description ILIKE $%d)", next(), next()+1,
		))
		args = append(args, pattern, pattern)
	}

	if filter.DateRangeActive() {
		conditions = append(conditions, fmt.Sprintf(
			"created_at >= $%d AND created_at <= $%d", next(), next()+1,
		))
		args = append(args, *filter.FromDate, *filter.ToDate)
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

// escapeLike escapes the LIKE metacharacters so a search term only ever
// matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// buildSet assembles the SET clause for a partial update, trimming and
// validating each provided field. All violations are collected into a
// single store.ValidationError.
func buildSet(update store.TaskUpdate) ([]string, []any, error) {
	var set []string
	var args []any
	var violations []string

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if err := domain.ValidateTitle(title); err != nil {
			violations = append(violations, err.Error())
		} else {
			set = append(set, fmt.Sprintf("title = $%d", len(args)+1))
			args = append(args, title)
		}
	}

	if update.Description != nil {
		description := strings.TrimSpace(*update.Description)
		if err := domain.ValidateDescription(description); err != nil {
			violations = append(violations, err.Error())
		} else {
			set = append(set, fmt.Sprintf("description = $%d", len(args)+1))
			args = append(args, description)
		}
	}

	if update.Status != nil {
		if !domain.IsValidTaskStatus(*update.Status) {
			violations = append(violations, domain.ErrInvalidTaskStatus.Error())
		} else {
			set = append(set, fmt.Sprintf("status = $%d", len(args)+1))
			args = append(args, *update.Status)
		}
	}

	if len(violations) > 0 {
		return nil, nil, &store.ValidationError{Messages: violations}
	}

	return set, args, nil
}
