package api

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest is the payload for the user registration endpoint.
type RegisterRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	DisplayName string `json:"displayName" validate:"required,min=1,max=100"`
	Password    string `json:"password"    validate:"required,min=12,max=72"`
}

// LoginRequest is the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse is the successful response for authentication endpoints.
type AuthResponse struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"displayName"`
	Token       string    `json:"token"`
}

// CreateTaskRequest is the payload for creating a task on a month board.
type CreateTaskRequest struct {
	MonthID       uuid.UUID `json:"monthId"                 validate:"required"`
	Title         string    `json:"title"                   validate:"required,min=1,max=200"`
	Description   string    `json:"description,omitempty"   validate:"max=2000"`
	UserID        uuid.UUID `json:"userUID,omitempty"`
	DeliverableID uuid.UUID `json:"deliverableId,omitempty"`
	ReporterID    uuid.UUID `json:"reporterId,omitempty"`
}

// UpdateTaskRequest is the payload for updating a task. All fields are
// full replacements, not patches.
type UpdateTaskRequest struct {
	Title         string    `json:"title"                   validate:"required,min=1,max=200"`
	Description   string    `json:"description,omitempty"   validate:"max=2000"`
	Status        string    `json:"status"                  validate:"required,oneof=planned in_progress done"`
	UserID        uuid.UUID `json:"userUID,omitempty"`
	DeliverableID uuid.UUID `json:"deliverableId,omitempty"`
	ReporterID    uuid.UUID `json:"reporterId,omitempty"`
}

// CreateMonthRequest is the payload for creating a month board.
type CreateMonthRequest struct {
	Label string `json:"label" validate:"required,len=7"`
}

// NameRequest is the shared payload for the deliverable and reporter
// endpoints, which carry only a display name (plus an optional contact
// email for reporters).
type NameRequest struct {
	Name  string `json:"name"            validate:"required,min=1,max=200"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

// DaysOffRequest is the payload for creating or updating a days-off
// entry.
type DaysOffRequest struct {
	UserID    uuid.UUID `json:"userUID"          validate:"required"`
	StartDate time.Time `json:"startDate"        validate:"required"`
	EndDate   time.Time `json:"endDate"          validate:"required"`
	Reason    string    `json:"reason,omitempty" validate:"max=500"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}
