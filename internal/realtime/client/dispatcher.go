package client

import (
	"log/slog"
	"sync"
)

// Listener receives every decoded event of the type it registered for.
type Listener func(Event)

type registration struct {
	id int
	fn Listener
}

// Dispatcher fans decoded envelopes out to registered listeners, keyed by
// envelope type. Listeners for a type run in registration order. A panic
// in one listener is recovered and logged so the remaining listeners and
// the read loop keep running.
type Dispatcher struct {
	mu        sync.Mutex
	nextID    int
	listeners map[string][]registration
	log       *slog.Logger
}

func NewDispatcher(log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		listeners: make(map[string][]registration),
		log:       log,
	}
}

// On registers fn for events of the given type and returns an id usable
// with Off.
func (d *Dispatcher) On(eventType string, fn Listener) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	d.listeners[eventType] = append(d.listeners[eventType], registration{id: d.nextID, fn: fn})
	return d.nextID
}

// Off removes the listener with the given id. Unknown ids are ignored.
func (d *Dispatcher) Off(eventType string, id int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	regs := d.listeners[eventType]
	for i, reg := range regs {
		if reg.id == id {
			d.listeners[eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

func (d *Dispatcher) emit(event Event) {
	d.mu.Lock()
	regs := make([]registration, len(d.listeners[event.Type]))
	copy(regs, d.listeners[event.Type])
	d.mu.Unlock()

	for _, reg := range regs {
		d.invoke(reg, event)
	}
}

func (d *Dispatcher) invoke(reg registration, event Event) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("event listener panicked",
				"event_type", event.Type,
				"listener_id", reg.id,
				"panic", r)
		}
	}()
	reg.fn(event)
}

// reset drops every registered listener.
func (d *Dispatcher) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = make(map[string][]registration)
}
