package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// TeamDaysOffStore defines the interface for team-days-off persistence.
type TeamDaysOffStore interface {
	// Create saves a new days-off entry.
	Create(ctx context.Context, daysOff *domain.TeamDaysOff) error

	// GetByID retrieves a days-off entry by its unique ID.
	// Returns ErrDaysOffNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TeamDaysOff, error)

	// List returns every days-off entry, ordered by start date.
	List(ctx context.Context) ([]*domain.TeamDaysOff, error)

	// Update replaces an existing entry's fields.
	// Returns ErrDaysOffNotFound if it does not exist.
	Update(ctx context.Context, daysOff *domain.TeamDaysOff) error

	// Delete removes a days-off entry by its ID.
	// Returns ErrDaysOffNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
