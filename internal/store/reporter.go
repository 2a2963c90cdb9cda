package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// ReporterStore defines the interface for reporter persistence.
type ReporterStore interface {
	// Create saves a new reporter.
	Create(ctx context.Context, reporter *domain.Reporter) error

	// GetByID retrieves a reporter by its unique ID.
	// Returns ErrReporterNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reporter, error)

	// List returns every reporter, ordered by name.
	List(ctx context.Context) ([]*domain.Reporter, error)

	// Update replaces an existing reporter's fields.
	// Returns ErrReporterNotFound if it does not exist.
	Update(ctx context.Context, reporter *domain.Reporter) error

	// Delete removes a reporter by its ID.
	// Returns ErrReporterNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
