package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// DeliverableStore defines the interface for deliverable persistence.
type DeliverableStore interface {
	// Create saves a new deliverable.
	Create(ctx context.Context, deliverable *domain.Deliverable) error

	// GetByID retrieves a deliverable by its unique ID.
	// Returns ErrDeliverableNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deliverable, error)

	// List returns every deliverable, ordered by name.
	List(ctx context.Context) ([]*domain.Deliverable, error)

	// Update replaces an existing deliverable's fields.
	// Returns ErrDeliverableNotFound if it does not exist.
	Update(ctx context.Context, deliverable *domain.Deliverable) error

	// Delete removes a deliverable by its ID.
	// Returns ErrDeliverableNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
