package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// MonthStore defines the interface for month board persistence.
type MonthStore interface {
	// Create saves a new month board.
	// Returns ErrMonthLabelExists if a board with the same label exists.
	Create(ctx context.Context, month *domain.Month) error

	// GetByID retrieves a month board by its unique ID.
	// Returns ErrMonthNotFound if the board does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Month, error)

	// GetByLabel retrieves a month board by its YYYY-MM label.
	// Returns ErrMonthNotFound if the board does not exist.
	GetByLabel(ctx context.Context, label string) (*domain.Month, error)

	// List returns every month board, newest label first.
	List(ctx context.Context) ([]*domain.Month, error)

	// Delete removes a month board by its ID. Tasks on the board are removed
	// by the schema's ON DELETE CASCADE constraint.
	// Returns ErrMonthNotFound if the board does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
