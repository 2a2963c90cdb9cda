package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TeamDaysOff-specific validation errors
var (
	// ErrDaysOffIDEmpty is returned when a team-days-off ID is empty or nil.
	ErrDaysOffIDEmpty = errors.New("team days off ID cannot be empty")

	// ErrDaysOffUserIDEmpty is returned when the user ID is empty or nil.
	ErrDaysOffUserIDEmpty = errors.New("team days off user ID cannot be empty")

	// ErrDaysOffRangeInvalid is returned when the end date precedes the start date.
	ErrDaysOffRangeInvalid = errors.New("team days off end date cannot precede start date")
)

// TeamDaysOff records a date range during which a team member is away.
type TeamDaysOff struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userUID"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewTeamDaysOff creates a new TeamDaysOff entry for the given user and range.
func NewTeamDaysOff(userID uuid.UUID, start, end time.Time) (*TeamDaysOff, error) {
	now := time.Now().UTC()
	daysOff := &TeamDaysOff{
		ID:        uuid.New(),
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := daysOff.Validate(); err != nil {
		return nil, err
	}

	return daysOff, nil
}

// Validate checks if the TeamDaysOff has valid data.
func (d *TeamDaysOff) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDaysOffIDEmpty
	}

	if d.UserID == uuid.Nil {
		return ErrDaysOffUserIDEmpty
	}

	if d.EndDate.Before(d.StartDate) {
		return ErrDaysOffRangeInvalid
	}

	return nil
}
