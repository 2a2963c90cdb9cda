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

// TeamDaysOffStore implements store.TeamDaysOffStore using PostgreSQL.
type TeamDaysOffStore struct {
	db store.DBTX
}

// NewTeamDaysOffStore creates a new PostgreSQL implementation of
// store.TeamDaysOffStore.
func NewTeamDaysOffStore(db store.DBTX) *TeamDaysOffStore {
	return &TeamDaysOffStore{db: db}
}

var _ store.TeamDaysOffStore = (*TeamDaysOffStore)(nil)

// Create implements store.TeamDaysOffStore.Create.
func (s *TeamDaysOffStore) Create(ctx context.Context, daysOff *domain.TeamDaysOff) error {
	if err := daysOff.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO team_days_off (id, user_id, start_date, end_date, reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		daysOff.ID, daysOff.UserID, daysOff.StartDate, daysOff.EndDate,
		daysOff.Reason, daysOff.CreatedAt, daysOff.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert team days off: %w", mapError(err))
	}
	return nil
}

// GetByID implements store.TeamDaysOffStore.GetByID.
func (s *TeamDaysOffStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.TeamDaysOff, error) {
	query := `
		SELECT id, user_id, start_date, end_date, reason, created_at, updated_at
		FROM team_days_off
		WHERE id = $1
	`

	var d domain.TeamDaysOff
	var reason sql.NullString
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.UserID, &d.StartDate, &d.EndDate, &reason, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrDaysOffNotFound
		}
		return nil, fmt.Errorf("failed to scan team days off: %w", err)
	}
	d.Reason = reason.String
	return &d, nil
}

// List implements store.TeamDaysOffStore.List.
func (s *TeamDaysOffStore) List(ctx context.Context) ([]*domain.TeamDaysOff, error) {
	query := `
		SELECT id, user_id, start_date, end_date, reason, created_at, updated_at
		FROM team_days_off
		ORDER BY start_date ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query team days off: %w", mapError(err))
	}
	defer rows.Close()

	var entries []*domain.TeamDaysOff
	for rows.Next() {
		var d domain.TeamDaysOff
		var reason sql.NullString
		if err := rows.Scan(&d.ID, &d.UserID, &d.StartDate, &d.EndDate,
			&reason, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan team days off row: %w", err)
		}
		d.Reason = reason.String
		entries = append(entries, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team days off rows: %w", err)
	}
	return entries, nil
}

// Update implements store.TeamDaysOffStore.Update.
func (s *TeamDaysOffStore) Update(ctx context.Context, daysOff *domain.TeamDaysOff) error {
	if err := daysOff.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE team_days_off
		SET user_id = $1, start_date = $2, end_date = $3, reason = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(ctx, query,
		daysOff.UserID, daysOff.StartDate, daysOff.EndDate, daysOff.Reason,
		daysOff.UpdatedAt, daysOff.ID)
	if err != nil {
		return fmt.Errorf("failed to update team days off: %w", mapError(err))
	}
	return requireRowAffected(result, store.ErrDaysOffNotFound)
}

// Delete implements store.TeamDaysOffStore.Delete.
func (s *TeamDaysOffStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM team_days_off WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete team days off: %w", mapError(err))
	}
	return requireRowAffected(result, store.ErrDaysOffNotFound)
}
