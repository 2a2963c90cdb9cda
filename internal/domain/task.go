package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task status values.
const (
	TaskStatusPlanned    = "planned"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskMonthIDEmpty is returned when a task's month ID is empty or nil.
	ErrTaskMonthIDEmpty = errors.New("task month ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task's title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskStatusInvalid is returned when a task's status is not a known value.
	ErrTaskStatusInvalid = errors.New("task status is not valid")
)

// Task represents one unit of work on a month board. A task is always
// attached to a month board; the assignee, deliverable, and reporter links
// are optional.
type Task struct {
	ID            uuid.UUID `json:"id"`
	MonthID       uuid.UUID `json:"monthId"`
	UserID        uuid.UUID `json:"userUID,omitempty"`
	DeliverableID uuid.UUID `json:"deliverableId,omitempty"`
	ReporterID    uuid.UUID `json:"reporterId,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewTask creates a new Task on the given month board.
// It generates a new UUID for the task ID and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewTask(monthID uuid.UUID, title string) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:        uuid.New(),
		MonthID:   monthID,
		Title:     strings.TrimSpace(title),
		Status:    TaskStatusPlanned,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.MonthID == uuid.Nil {
		return ErrTaskMonthIDEmpty
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrTaskTitleEmpty
	}

	switch t.Status {
	case TaskStatusPlanned, TaskStatusInProgress, TaskStatusDone:
	default:
		return ErrTaskStatusInvalid
	}

	return nil
}

// Touch updates the UpdatedAt timestamp. Stores call this before persisting
// a mutation so the timestamp always reflects the last write.
func (t *Task) Touch() {
	t.UpdatedAt = time.Now().UTC()
}
