package realtime

import "sync"

// DefaultOpen preserves the rule that a connection with no explicit
// subscriptions receives every event. The behavior is deliberate, not an
// accident of a missing nil check: new connections see all activity until
// they narrow their interest, which is what board UIs want on first load.
const DefaultOpen = true

// DefaultMaxChannels caps the number of channels one connection may hold.
// The cap is a hardening measure bounding per-socket memory; the protocol
// itself imposes no limit.
const DefaultMaxChannels = 64

// subscriptionSet is the per-connection set of channel names. All methods
// are safe for concurrent use; the read loop mutates it while broadcasts
// test membership.
type subscriptionSet struct {
	mu       sync.RWMutex
	max      int
	channels map[string]struct{}
}

func newSubscriptionSet(max int) *subscriptionSet {
	if max <= 0 {
		max = DefaultMaxChannels
	}
	return &subscriptionSet{
		max:      max,
		channels: make(map[string]struct{}),
	}
}

// add inserts the given channel names, ignoring duplicates, and returns the
// resulting full set. Names beyond the size cap are silently dropped.
func (s *subscriptionSet) add(names []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range names {
		if name == "" {
			continue
		}
		if len(s.channels) >= s.max {
			break
		}
		s.channels[name] = struct{}{}
	}
	return s.namesLocked()
}

// remove deletes the given channel names. Removing an unknown name is a no-op.
func (s *subscriptionSet) remove(names []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, name := range names {
		delete(s.channels, name)
	}
	return s.namesLocked()
}

// wants reports whether a connection holding this set should receive an
// event routed to any of the candidate channels. An empty set matches
// everything (DefaultOpen).
func (s *subscriptionSet) wants(candidates ...string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.channels) == 0 {
		return DefaultOpen
	}
	for _, name := range candidates {
		if _, ok := s.channels[name]; ok {
			return true
		}
	}
	return false
}

// names returns a copy of the current channel set.
func (s *subscriptionSet) names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.namesLocked()
}

func (s *subscriptionSet) namesLocked() []string {
	names := make([]string, 0, len(s.channels))
	for name := range s.channels {
		names = append(names, name)
	}
	return names
}
