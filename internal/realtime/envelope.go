package realtime

import (
	"encoding/json"
	"fmt"
)

// Event actions carried in an envelope.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// Envelope types for domain change events.
const (
	TypeTaskChange        = "task_change"
	TypeMonthChange       = "month_change"
	TypeUserChange        = "user_change"
	TypeDeliverableChange = "deliverable_change"
	TypeReporterChange    = "reporter_change"
	TypeTeamDaysOffChange = "team_days_off_change"
)

// Control message types exchanged on the socket.
const (
	TypeSubscribe   = "subscribe"
	TypeUnsubscribe = "unsubscribe"
	TypePing        = "ping"
	TypeConnected   = "connected"
	TypeSubscribed  = "subscribed"
	TypePong        = "pong"
)

// Channel names connections may subscribe to. The convention is
// resource-plural lowercase, plus "month:<label>" scoped variants for
// narrowing task events to one board.
const (
	ChannelTasks        = "tasks"
	ChannelMonths       = "months"
	ChannelUsers        = "users"
	ChannelDeliverables = "deliverables"
	ChannelReporters    = "reporters"
	ChannelTeamDaysOff  = "team_days_off"

	monthChannelPrefix = "month:"
)

// MonthChannel returns the scoped channel name for one month board,
// e.g. MonthChannel("2025-03") == "month:2025-03".
func MonthChannel(label string) string {
	return monthChannelPrefix + label
}

// Envelope is one domain change event, encoded once at construction.
// Envelopes are immutable: the wire bytes and routing hints are fixed when
// the envelope is built, so fan-out can share one envelope across every
// matching socket without copying or locking.
type Envelope struct {
	typ        string
	event      string
	monthLabel string // routing hint, set for task changes only
	userID     string // routing hint, set for task changes only
	data       []byte
}

// Type returns the envelope's resource type (e.g. "task_change").
func (e *Envelope) Type() string { return e.typ }

// Event returns the envelope's action ("created", "updated", "deleted").
func (e *Envelope) Event() string { return e.event }

// MonthLabel returns the month routing hint, or "" if the envelope has none.
func (e *Envelope) MonthLabel() string { return e.monthLabel }

// UserID returns the owning-user routing hint, or "" if the envelope has none.
func (e *Envelope) UserID() string { return e.userID }

// Data returns the envelope's wire encoding. Callers must not modify the
// returned slice.
func (e *Envelope) Data() []byte { return e.data }

// NewEnvelope builds an envelope of the given type and event whose payload
// is serialized under payloadField (the resource's singular name, e.g.
// "task"). Extra top-level fields carry routing hints alongside the payload.
func NewEnvelope(typ, event, payloadField string, payload any, extra map[string]any) (*Envelope, error) {
	body := make(map[string]any, 3+len(extra))
	body["type"] = typ
	body["event"] = event
	body[payloadField] = payload
	for k, v := range extra {
		body[k] = v
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s envelope: %w", typ, err)
	}

	env := &Envelope{typ: typ, event: event, data: data}
	if s, ok := extra["monthId"].(string); ok {
		env.monthLabel = s
	}
	if s, ok := extra["userUID"].(string); ok {
		env.userID = s
	}
	return env, nil
}

// controlMessage is the decoded form of a client -> server message.
type controlMessage struct {
	Type     string   `json:"type"`
	Channels []string `json:"channels,omitempty"`
}

// encodeAck builds a server -> client control response. An encoding failure
// here would be a programming error, so it panics rather than returning an
// error nobody can act on.
func encodeAck(typ string, channels []string, extra map[string]any) []byte {
	body := make(map[string]any, 2+len(extra))
	body["type"] = typ
	if channels != nil {
		body["channels"] = channels
	}
	for k, v := range extra {
		body[k] = v
	}

	data, err := json.Marshal(body)
	if err != nil {
		// ALLOW-PANIC: all inputs are server-constructed plain values
		panic(fmt.Sprintf("failed to encode %s ack: %v", typ, err))
	}
	return data
}
