package api

import (
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/realtime"
)

// Change event actions, re-exported so handlers read naturally.
const (
	EventCreated = realtime.EventCreated
	EventUpdated = realtime.EventUpdated
	EventDeleted = realtime.EventDeleted
)

// EventPublisher pushes change events to connected realtime clients.
// Satisfied by *realtime.Broadcaster. Delivery is best effort; handlers
// never fail a request because a broadcast found no listeners.
type EventPublisher interface {
	PublishTaskChange(event string, task *domain.Task, monthLabel string)
	PublishMonthChange(event string, month *domain.Month)
	PublishUserChange(event string, user *domain.User)
	PublishDeliverableChange(event string, deliverable *domain.Deliverable)
	PublishReporterChange(event string, reporter *domain.Reporter)
	PublishTeamDaysOffChange(event string, daysOff *domain.TeamDaysOff)
}
