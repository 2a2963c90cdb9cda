package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// MonthStore implements the store.MonthStore interface using PostgreSQL.
type MonthStore struct {
	db store.DBTX
}

// NewMonthStore creates a new PostgreSQL implementation of store.MonthStore.
func NewMonthStore(db store.DBTX) *MonthStore {
	return &MonthStore{db: db}
}

var _ store.MonthStore = (*MonthStore)(nil)

// Create implements store.MonthStore.Create.
func (s *MonthStore) Create(ctx context.Context, month *domain.Month) error {
	if err := month.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO months (id, label, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := s.db.ExecContext(ctx, query,
		month.ID, month.Label, month.CreatedAt, month.UpdatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrMonthLabelExists
		}
		return fmt.Errorf("failed to insert month: %w", mapError(err))
	}

	return nil
}

// GetByID implements store.MonthStore.GetByID.
func (s *MonthStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Month, error) {
	query := `SELECT id, label, created_at, updated_at FROM months WHERE id = $1`
	return s.scanMonth(s.db.QueryRowContext(ctx, query, id))
}

// GetByLabel implements store.MonthStore.GetByLabel.
func (s *MonthStore) GetByLabel(ctx context.Context, label string) (*domain.Month, error) {
	query := `SELECT id, label, created_at, updated_at FROM months WHERE label = $1`
	return s.scanMonth(s.db.QueryRowContext(ctx, query, label))
}

// List implements store.MonthStore.List.
func (s *MonthStore) List(ctx context.Context) ([]*domain.Month, error) {
	query := `SELECT id, label, created_at, updated_at FROM months ORDER BY label DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query months: %w", mapError(err))
	}
	defer rows.Close()

	var months []*domain.Month
	for rows.Next() {
		var m domain.Month
		if err := rows.Scan(&m.ID, &m.Label, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan month row: %w", err)
		}
		months = append(months, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating month rows: %w", err)
	}

	return months, nil
}

// Delete implements store.MonthStore.Delete. Tasks on the board are removed
// by the schema's ON DELETE CASCADE constraint.
func (s *MonthStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM months WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete month: %w", mapError(err))
	}
	return requireRowAffected(result, store.ErrMonthNotFound)
}

func (s *MonthStore) scanMonth(row *sql.Row) (*domain.Month, error) {
	var m domain.Month
	err := row.Scan(&m.ID, &m.Label, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrMonthNotFound
		}
		return nil, fmt.Errorf("failed to scan month: %w", err)
	}
	return &m, nil
}
