package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Reporter-specific validation errors
var (
	// ErrReporterIDEmpty is returned when a reporter ID is empty or nil.
	ErrReporterIDEmpty = errors.New("reporter ID cannot be empty")

	// ErrReporterNameEmpty is returned when a reporter's name is empty.
	ErrReporterNameEmpty = errors.New("reporter name cannot be empty")
)

// Reporter is the client or stakeholder a task is reported for. Like
// deliverables, reporters are a named lookup collection sorted by name.
type Reporter struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewReporter creates a new Reporter with the given name.
func NewReporter(name string) (*Reporter, error) {
	now := time.Now().UTC()
	reporter := &Reporter{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := reporter.Validate(); err != nil {
		return nil, err
	}

	return reporter, nil
}

// Validate checks if the Reporter has valid data.
func (r *Reporter) Validate() error {
	if r.ID == uuid.Nil {
		return ErrReporterIDEmpty
	}

	if strings.TrimSpace(r.Name) == "" {
		return ErrReporterNameEmpty
	}

	return nil
}
