package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Deliverable-specific validation errors
var (
	// ErrDeliverableIDEmpty is returned when a deliverable ID is empty or nil.
	ErrDeliverableIDEmpty = errors.New("deliverable ID cannot be empty")

	// ErrDeliverableNameEmpty is returned when a deliverable's name is empty.
	ErrDeliverableNameEmpty = errors.New("deliverable name cannot be empty")
)

// Deliverable is a named lookup entity tasks can reference. Collections of
// deliverables are presented sorted by name.
type Deliverable struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewDeliverable creates a new Deliverable with the given name.
func NewDeliverable(name string) (*Deliverable, error) {
	now := time.Now().UTC()
	deliverable := &Deliverable{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := deliverable.Validate(); err != nil {
		return nil, err
	}

	return deliverable, nil
}

// Validate checks if the Deliverable has valid data.
func (d *Deliverable) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDeliverableIDEmpty
	}

	if strings.TrimSpace(d.Name) == "" {
		return ErrDeliverableNameEmpty
	}

	return nil
}
