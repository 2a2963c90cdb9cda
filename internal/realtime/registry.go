package realtime

import (
	"log/slog"
	"sync"
)

// Registry owns the set of live connections, keyed by identity ID.
// It is constructed once and passed by reference to whatever owns the
// network listener, keeping lifecycle explicit and resettable in tests.
//
// Register, Unregister, and fan-out all run concurrently from independent
// connection lifecycles; the map is guarded by a mutex and iteration always
// works on a snapshot, so closing one socket mid-broadcast cannot corrupt
// delivery to the others.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]map[*Conn]struct{}
	log   *slog.Logger
}

// NewRegistry creates an empty connection registry.
func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		conns: make(map[string]map[*Conn]struct{}),
		log:   log.With(slog.String("component", "realtime_registry")),
	}
}

// Register adds a connection under its identity, creating the identity's
// set if this is its first connection (multiple tabs/devices share one
// identity ID).
func (r *Registry) Register(c *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.conns[c.identity.ID]
	if !ok {
		set = make(map[*Conn]struct{})
		r.conns[c.identity.ID] = set
	}
	set[c] = struct{}{}

	r.log.Debug("connection registered",
		"user_id", c.identity.ID,
		"display_name", c.identity.DisplayName,
		"connections_for_user", len(set))
}

// Unregister removes a connection from its identity's set, deleting the
// identity key entirely once the set empties so churned users don't leak
// map entries.
func (r *Registry) Unregister(c *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, ok := r.conns[c.identity.ID]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(r.conns, c.identity.ID)
	}

	r.log.Debug("connection unregistered", "user_id", c.identity.ID)
}

// SendToIdentity delivers an envelope to every connection of one identity.
// Best-effort: connections that cannot accept the event are skipped.
func (r *Registry) SendToIdentity(identityID string, env *Envelope) {
	r.mu.RLock()
	set := r.conns[identityID]
	conns := make([]*Conn, 0, len(set))
	for c := range set {
		conns = append(conns, c)
	}
	r.mu.RUnlock()

	for _, c := range conns {
		c.trySend(env.Data())
	}
}

// Snapshot returns the current connections as a flat slice. Fan-out
// iterates the snapshot, never the live map.
func (r *Registry) Snapshot() []*Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make([]*Conn, 0, len(r.conns))
	for _, set := range r.conns {
		for c := range set {
			conns = append(conns, c)
		}
	}
	return conns
}

// ConnectionCount returns the number of live connections.
func (r *Registry) ConnectionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, set := range r.conns {
		n += len(set)
	}
	return n
}

// IdentityCount returns the number of identities with at least one
// connection.
func (r *Registry) IdentityCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

// CloseAll closes every connection and empties the registry. Used on
// server shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	conns := make([]*Conn, 0)
	for _, set := range r.conns {
		for c := range set {
			conns = append(conns, c)
		}
	}
	r.conns = make(map[string]map[*Conn]struct{})
	r.mu.Unlock()

	for _, c := range conns {
		c.close()
	}
}
