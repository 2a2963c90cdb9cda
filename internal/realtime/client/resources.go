package client

import (
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/realtime"
)

// Store holds one reconciled collection per resource type. Bind attaches
// the collections to a client's dispatcher so change events keep them
// current.
type Store struct {
	Tasks        *Collection[*domain.Task]
	Months       *Collection[*domain.Month]
	Users        *Collection[*domain.User]
	Deliverables *Collection[*domain.Deliverable]
	Reporters    *Collection[*domain.Reporter]
	TeamDaysOff  *Collection[*domain.TeamDaysOff]
}

// NewStore builds empty collections with stable display orderings.
func NewStore() *Store {
	return &Store{
		Tasks: NewCollection(
			func(t *domain.Task) string { return t.ID.String() },
			func(a, b *domain.Task) bool { return a.Title < b.Title }),
		Months: NewCollection(
			func(m *domain.Month) string { return m.ID.String() },
			func(a, b *domain.Month) bool { return a.Label < b.Label }),
		Users: NewCollection(
			func(u *domain.User) string { return u.ID.String() },
			func(a, b *domain.User) bool { return a.DisplayName < b.DisplayName }),
		Deliverables: NewCollection(
			func(d *domain.Deliverable) string { return d.ID.String() },
			func(a, b *domain.Deliverable) bool { return a.Name < b.Name }),
		Reporters: NewCollection(
			func(r *domain.Reporter) string { return r.ID.String() },
			func(a, b *domain.Reporter) bool { return a.Name < b.Name }),
		TeamDaysOff: NewCollection(
			func(d *domain.TeamDaysOff) string { return d.ID.String() },
			func(a, b *domain.TeamDaysOff) bool { return a.StartDate.Before(b.StartDate) }),
	}
}

// Bind registers a reconciliation listener per resource event type.
func (s *Store) Bind(c *Client) {
	bindResource(c, realtime.TypeTaskChange, "task", s.Tasks)
	bindResource(c, realtime.TypeMonthChange, "month", s.Months)
	bindResource(c, realtime.TypeUserChange, "user", s.Users)
	bindResource(c, realtime.TypeDeliverableChange, "deliverable", s.Deliverables)
	bindResource(c, realtime.TypeReporterChange, "reporter", s.Reporters)
	bindResource(c, realtime.TypeTeamDaysOffChange, "teamDaysOff", s.TeamDaysOff)
}

func bindResource[T any](c *Client, eventType, field string, coll *Collection[*T]) {
	c.On(eventType, func(e Event) {
		entity := new(T)
		ok, err := e.Payload(field, entity)
		if err != nil || !ok {
			return
		}
		switch e.Action {
		case realtime.EventCreated:
			coll.ApplyCreated(entity)
		case realtime.EventUpdated:
			coll.ApplyUpdated(entity)
		case realtime.EventDeleted:
			coll.ApplyDeleted(coll.idOf(entity))
		}
	})
}
