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

// DeliverableStore implements store.DeliverableStore using PostgreSQL.
type DeliverableStore struct {
	db store.DBTX
}

// NewDeliverableStore creates a new PostgreSQL implementation of
// store.DeliverableStore.
func NewDeliverableStore(db store.DBTX) *DeliverableStore {
	return &DeliverableStore{db: db}
}

var _ store.DeliverableStore = (*DeliverableStore)(nil)

// Create implements store.DeliverableStore.Create.
func (s *DeliverableStore) Create(ctx context.Context, deliverable *domain.Deliverable) error {
	if err := deliverable.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO deliverables (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(ctx, query,
		deliverable.ID, deliverable.Name, deliverable.CreatedAt, deliverable.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert deliverable: %w", mapError(err))
	}
	return nil
}

// GetByID implements store.DeliverableStore.GetByID.
func (s *DeliverableStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deliverable, error) {
	query := `SELECT id, name, created_at, updated_at FROM deliverables WHERE id = $1`

	var d domain.Deliverable
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrDeliverableNotFound
		}
		return nil, fmt.Errorf("failed to scan deliverable: %w", err)
	}
	return &d, nil
}

// List implements store.DeliverableStore.List.
func (s *DeliverableStore) List(ctx context.Context) ([]*domain.Deliverable, error) {
	query := `SELECT id, name, created_at, updated_at FROM deliverables ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query deliverables: %w", mapError(err))
	}
	defer rows.Close()

	var deliverables []*domain.Deliverable
	for rows.Next() {
		var d domain.Deliverable
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan deliverable row: %w", err)
		}
		deliverables = append(deliverables, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deliverable rows: %w", err)
	}
	return deliverables, nil
}

// Update implements store.DeliverableStore.Update.
func (s *DeliverableStore) Update(ctx context.Context, deliverable *domain.Deliverable) error {
	if err := deliverable.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `UPDATE deliverables SET name = $1, updated_at = $2 WHERE id = $3`
	result, err := s.db.ExecContext(ctx, query,
		deliverable.Name, deliverable.UpdatedAt, deliverable.ID)
	if err != nil {
		return fmt.Errorf("failed to update deliverable: %w", mapError(err))
	}
	return requireRowAffected(result, store.ErrDeliverableNotFound)
}

// Delete implements store.DeliverableStore.Delete.
func (s *DeliverableStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM deliverables WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deliverable: %w", mapError(err))
	}
	return requireRowAffected(result, store.ErrDeliverableNotFound)
}

// ReporterStore implements store.ReporterStore using PostgreSQL.
type ReporterStore struct {
	db store.DBTX
}

// NewReporterStore creates a new PostgreSQL implementation of
// store.ReporterStore.
func NewReporterStore(db store.DBTX) *ReporterStore {
	return &ReporterStore{db: db}
}

var _ store.ReporterStore = (*ReporterStore)(nil)

// Create implements store.ReporterStore.Create.
func (s *ReporterStore) Create(ctx context.Context, reporter *domain.Reporter) error {
	if err := reporter.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO reporters (id, name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		reporter.ID, reporter.Name, reporter.Email, reporter.CreatedAt, reporter.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert reporter: %w", mapError(err))
	}
	return nil
}

// GetByID implements store.ReporterStore.GetByID.
func (s *ReporterStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reporter, error) {
	query := `SELECT id, name, email, created_at, updated_at FROM reporters WHERE id = $1`

	var r domain.Reporter
	var email sql.NullString
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&r.ID, &r.Name, &email, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrReporterNotFound
		}
		return nil, fmt.Errorf("failed to scan reporter: %w", err)
	}
	r.Email = email.String
	return &r, nil
}

// List implements store.ReporterStore.List.
func (s *ReporterStore) List(ctx context.Context) ([]*domain.Reporter, error) {
	query := `SELECT id, name, email, created_at, updated_at FROM reporters ORDER BY name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query reporters: %w", mapError(err))
	}
	defer rows.Close()

	var reporters []*domain.Reporter
	for rows.Next() {
		var r domain.Reporter
		var email sql.NullString
		if err := rows.Scan(&r.ID, &r.Name, &email, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reporter row: %w", err)
		}
		r.Email = email.String
		reporters = append(reporters, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reporter rows: %w", err)
	}
	return reporters, nil
}

// Update implements store.ReporterStore.Update.
func (s *ReporterStore) Update(ctx context.Context, reporter *domain.Reporter) error {
	if err := reporter.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `UPDATE reporters SET name = $1, email = $2, updated_at = $3 WHERE id = $4`
	result, err := s.db.ExecContext(ctx, query,
		reporter.Name, reporter.Email, reporter.UpdatedAt, reporter.ID)
	if err != nil {
		return fmt.Errorf("failed to update reporter: %w", mapError(err))
	}
	return requireRowAffected(result, store.ErrReporterNotFound)
}

// Delete implements store.ReporterStore.Delete.
func (s *ReporterStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reporters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reporter: %w", mapError(err))
	}
	return requireRowAffected(result, store.ErrReporterNotFound)
}
