package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   string
	Name string
}

func newWidgetCollection() *Collection[widget] {
	return NewCollection(
		func(w widget) string { return w.ID },
		func(a, b widget) bool { return a.Name < b.Name })
}

func TestCollectionCreatedIsIdempotent(t *testing.T) {
	t.Parallel()
	c := newWidgetCollection()

	require.True(t, c.ApplyCreated(widget{ID: "t1", Name: "alpha"}))
	assert.False(t, c.ApplyCreated(widget{ID: "t1", Name: "alpha"}))

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, []widget{{ID: "t1", Name: "alpha"}}, c.Snapshot())
}

func TestCollectionCreatedDuplicateKeepsExisting(t *testing.T) {
	t.Parallel()
	c := newWidgetCollection()

	c.ApplyCreated(widget{ID: "t1", Name: "original"})
	c.ApplyCreated(widget{ID: "t1", Name: "echo"})

	got, ok := c.Get("t1")
	require.True(t, ok)
	assert.Equal(t, "original", got.Name)
}

func TestCollectionUpdatedForUnknownIDInserts(t *testing.T) {
	t.Parallel()
	c := newWidgetCollection()

	// A create missed while disconnected arrives only as an update.
	c.ApplyUpdated(widget{ID: "t2", Name: "late"})

	got, ok := c.Get("t2")
	require.True(t, ok)
	assert.Equal(t, "late", got.Name)
	assert.Equal(t, 1, c.Len())
}

func TestCollectionDeleteThenLateUpdateReinserts(t *testing.T) {
	t.Parallel()
	c := newWidgetCollection()

	c.ApplyCreated(widget{ID: "t1", Name: "alpha"})
	require.True(t, c.ApplyDeleted("t1"))

	// Out-of-order update after a delete comes back. Inserting keeps the
	// policy uniform with the missed-create case above.
	c.ApplyUpdated(widget{ID: "t1", Name: "alpha v2"})

	got, ok := c.Get("t1")
	require.True(t, ok)
	assert.Equal(t, "alpha v2", got.Name)
}

func TestCollectionDeletedAbsentIsNoOp(t *testing.T) {
	t.Parallel()
	c := newWidgetCollection()

	c.ApplyCreated(widget{ID: "t1", Name: "alpha"})
	assert.False(t, c.ApplyDeleted("never-seen"))
	assert.Equal(t, 1, c.Len())
}

func TestCollectionSnapshotIsImmutable(t *testing.T) {
	t.Parallel()
	c := newWidgetCollection()

	c.ApplyCreated(widget{ID: "t1", Name: "alpha"})
	before := c.Snapshot()

	c.ApplyCreated(widget{ID: "t2", Name: "beta"})
	c.ApplyDeleted("t1")

	assert.Equal(t, []widget{{ID: "t1", Name: "alpha"}}, before)
}

func TestCollectionSnapshotSortedByComparator(t *testing.T) {
	t.Parallel()
	c := newWidgetCollection()

	c.ApplyCreated(widget{ID: "t3", Name: "charlie"})
	c.ApplyCreated(widget{ID: "t1", Name: "alpha"})
	c.ApplyCreated(widget{ID: "t2", Name: "beta"})

	snapshot := c.Snapshot()
	names := make([]string, len(snapshot))
	for i, w := range snapshot {
		names[i] = w.Name
	}
	assert.Equal(t, []string{"alpha", "beta", "charlie"}, names)
}

func TestCollectionReplaceSwapsContents(t *testing.T) {
	t.Parallel()
	c := newWidgetCollection()

	c.ApplyCreated(widget{ID: "t1", Name: "stale"})
	c.Replace([]widget{
		{ID: "t2", Name: "beta"},
		{ID: "t3", Name: "charlie"},
	})

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("t1")
	assert.False(t, ok)
}
