package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TaskStore implements the store.TaskStore interface using PostgreSQL.
type TaskStore struct {
	db store.DBTX
}

// NewTaskStore creates a new PostgreSQL implementation of store.TaskStore.
func NewTaskStore(db store.DBTX) *TaskStore {
	return &TaskStore{db: db}
}

var _ store.TaskStore = (*TaskStore)(nil)

// nullableUUID renders uuid.Nil as SQL NULL for optional foreign keys.
func nullableUUID(id uuid.UUID) any {
	if id == uuid.Nil {
		return nil
	}
	return id
}

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContext(ctx)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks (id, month_id, user_id, deliverable_id, reporter_id,
			title, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.db.ExecContext(ctx, query,
		task.ID, task.MonthID,
		nullableUUID(task.UserID), nullableUUID(task.DeliverableID), nullableUUID(task.ReporterID),
		task.Title, task.Description, task.Status,
		task.CreatedAt, task.UpdatedAt)
	if err != nil {
		log.Error("failed to insert task", "task_id", task.ID, "error", err)
		return fmt.Errorf("failed to insert task: %w", mapError(err))
	}

	return nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := taskSelect + ` WHERE id = $1`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// ListByMonth implements store.TaskStore.ListByMonth.
func (s *TaskStore) ListByMonth(ctx context.Context, monthID uuid.UUID) ([]*domain.Task, error) {
	query := taskSelect + ` WHERE month_id = $1 ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, monthID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", mapError(err))
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

// Update implements store.TaskStore.Update.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE tasks
		SET month_id = $1, user_id = $2, deliverable_id = $3, reporter_id = $4,
			title = $5, description = $6, status = $7, updated_at = $8
		WHERE id = $9
	`

	result, err := s.db.ExecContext(ctx, query,
		task.MonthID,
		nullableUUID(task.UserID), nullableUUID(task.DeliverableID), nullableUUID(task.ReporterID),
		task.Title, task.Description, task.Status, task.UpdatedAt, task.ID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", mapError(err))
	}

	return requireRowAffected(result, store.ErrTaskNotFound)
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", mapError(err))
	}
	return requireRowAffected(result, store.ErrTaskNotFound)
}

// WithTx implements store.TaskStore.WithTx.
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{db: tx}
}

const taskSelect = `
	SELECT id, month_id, user_id, deliverable_id, reporter_id,
		title, description, status, created_at, updated_at
	FROM tasks`

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask scans a task row, converting NULL foreign keys to uuid.Nil.
func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var userID, deliverableID, reporterID uuid.NullUUID
	var description sql.NullString

	err := row.Scan(&t.ID, &t.MonthID, &userID, &deliverableID, &reporterID,
		&t.Title, &description, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan task row: %w", err)
	}

	t.UserID = userID.UUID
	t.DeliverableID = deliverableID.UUID
	t.ReporterID = reporterID.UUID
	t.Description = description.String
	return &t, nil
}
