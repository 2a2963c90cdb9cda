package realtime

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// Broadcaster fans domain change events out to matching connections.
// Publishing is fire-and-forget: it never blocks, never returns an error,
// and a connection that cannot take the event right now simply misses it.
// Callers in the business layer treat a publish as always succeeding.
type Broadcaster struct {
	registry *Registry
	log      *slog.Logger
}

// NewBroadcaster creates a Broadcaster over the given registry.
func NewBroadcaster(registry *Registry, log *slog.Logger) *Broadcaster {
	return &Broadcaster{
		registry: registry,
		log:      log.With(slog.String("component", "realtime_broadcaster")),
	}
}

// Publish delivers the envelope to every connection the match predicate
// accepts. A nil predicate matches every connection. Delivery failures are
// counted for debugging but never abort fan-out to the remaining sockets.
func (b *Broadcaster) Publish(env *Envelope, match func(*Conn) bool) {
	conns := b.registry.Snapshot()

	delivered, dropped := 0, 0
	for _, c := range conns {
		if match != nil && !match(c) {
			continue
		}
		if c.trySend(env.Data()) {
			delivered++
		} else {
			dropped++
		}
	}

	b.log.Debug("published event",
		"type", env.Type(),
		"event", env.Event(),
		"delivered", delivered,
		"dropped", dropped)
}

// PublishTaskChange broadcasts a task event. A connection matches when it
// wants the "tasks" channel or the task's specific month board channel.
func (b *Broadcaster) PublishTaskChange(event string, task *domain.Task, monthLabel string) {
	env, err := NewEnvelope(TypeTaskChange, event, "task", task, map[string]any{
		"monthId": monthLabel,
		"userUID": userHint(task),
	})
	if err != nil {
		b.log.Error("failed to encode task change", "error", err, "task_id", task.ID)
		return
	}

	b.Publish(env, func(c *Conn) bool {
		return c.Wants(ChannelTasks, MonthChannel(monthLabel))
	})
}

// PublishMonthChange broadcasts a month board event on the "months" channel.
func (b *Broadcaster) PublishMonthChange(event string, month *domain.Month) {
	b.publishResource(TypeMonthChange, event, "month", month, ChannelMonths)
}

// PublishUserChange broadcasts a user event on the "users" channel.
func (b *Broadcaster) PublishUserChange(event string, user *domain.User) {
	b.publishResource(TypeUserChange, event, "user", user, ChannelUsers)
}

// PublishDeliverableChange broadcasts a deliverable event on the
// "deliverables" channel.
func (b *Broadcaster) PublishDeliverableChange(event string, deliverable *domain.Deliverable) {
	b.publishResource(TypeDeliverableChange, event, "deliverable", deliverable, ChannelDeliverables)
}

// PublishReporterChange broadcasts a reporter event on the "reporters"
// channel.
func (b *Broadcaster) PublishReporterChange(event string, reporter *domain.Reporter) {
	b.publishResource(TypeReporterChange, event, "reporter", reporter, ChannelReporters)
}

// PublishTeamDaysOffChange broadcasts a team-days-off event on the
// "team_days_off" channel.
func (b *Broadcaster) PublishTeamDaysOffChange(event string, daysOff *domain.TeamDaysOff) {
	b.publishResource(TypeTeamDaysOffChange, event, "teamDaysOff", daysOff, ChannelTeamDaysOff)
}

// publishResource handles the single-fixed-channel resources.
func (b *Broadcaster) publishResource(typ, event, field string, payload any, channel string) {
	env, err := NewEnvelope(typ, event, field, payload, nil)
	if err != nil {
		b.log.Error("failed to encode envelope", "error", err, "type", typ)
		return
	}

	b.Publish(env, func(c *Conn) bool {
		return c.Wants(channel)
	})
}

func userHint(task *domain.Task) string {
	if task.UserID == uuid.Nil {
		return ""
	}
	return task.UserID.String()
}
