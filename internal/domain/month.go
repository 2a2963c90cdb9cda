package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Month-specific validation errors
var (
	// ErrMonthIDEmpty is returned when a month ID is empty or nil.
	ErrMonthIDEmpty = errors.New("month ID cannot be empty")

	// ErrMonthLabelInvalid is returned when a month label is not YYYY-MM.
	ErrMonthLabelInvalid = errors.New("month label must be in YYYY-MM format")
)

// monthLabelPattern matches board labels like "2025-03".
var monthLabelPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Month represents one task board. Boards are identified to users by their
// YYYY-MM label; the label also scopes realtime channel names
// ("month:<label>").
type Month struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewMonth creates a new Month board with the given label.
func NewMonth(label string) (*Month, error) {
	now := time.Now().UTC()
	month := &Month{
		ID:        uuid.New(),
		Label:     label,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := month.Validate(); err != nil {
		return nil, err
	}

	return month, nil
}

// Validate checks if the Month has valid data.
func (m *Month) Validate() error {
	if m.ID == uuid.Nil {
		return ErrMonthIDEmpty
	}

	if !monthLabelPattern.MatchString(m.Label) {
		return ErrMonthLabelInvalid
	}

	return nil
}
