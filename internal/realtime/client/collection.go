package client

import (
	"sort"
	"sync"
)

// Collection is an id-keyed cache of one resource type, reconciled from
// change events. Snapshot always returns a fresh slice, so callers can
// hold a snapshot across further mutations without seeing them.
//
// Reconciliation policy, uniform for every resource:
//   - created for an id already present is ignored (duplicate delivery,
//     or an echo of an optimistic local insert)
//   - updated for an unknown id inserts (the create was missed while
//     disconnected, and the update carries the full representation)
//   - deleted for an absent id is a no-op
type Collection[T any] struct {
	mu    sync.Mutex
	idOf  func(T) string
	less  func(a, b T) bool
	items map[string]T
	order []T
}

// NewCollection builds an empty collection. idOf extracts the entity id;
// less, when non-nil, keeps snapshots sorted.
func NewCollection[T any](idOf func(T) string, less func(a, b T) bool) *Collection[T] {
	return &Collection[T]{
		idOf:  idOf,
		less:  less,
		items: make(map[string]T),
	}
}

// Replace swaps the entire contents, e.g. from an initial REST load.
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]T, len(items))
	for _, item := range items {
		c.items[c.idOf(item)] = item
	}
	c.rebuildLocked()
}

// ApplyCreated inserts item unless its id is already present. Returns
// whether the collection changed.
func (c *Collection[T]) ApplyCreated(item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.idOf(item)
	if _, ok := c.items[id]; ok {
		return false
	}
	c.items[id] = item
	c.rebuildLocked()
	return true
}

// ApplyUpdated replaces the entity with the same id, inserting when the
// id is unknown.
func (c *Collection[T]) ApplyUpdated(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[c.idOf(item)] = item
	c.rebuildLocked()
}

// ApplyDeleted removes the entity with the given id. Returns whether it
// was present.
func (c *Collection[T]) ApplyDeleted(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	c.rebuildLocked()
	return true
}

// Get returns the entity with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[id]
	return item, ok
}

// Len returns the number of entities held.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Snapshot returns a fresh copy of the current contents.
func (c *Collection[T]) Snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Collection[T]) rebuildLocked() {
	c.order = make([]T, 0, len(c.items))
	for _, item := range c.items {
		c.order = append(c.order, item)
	}
	if c.less != nil {
		sort.SliceStable(c.order, func(i, j int) bool {
			return c.less(c.order[i], c.order[j])
		})
	}
}
