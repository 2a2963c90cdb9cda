package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionSet(t *testing.T) {
	t.Parallel()

	t.Run("add is idempotent", func(t *testing.T) {
		t.Parallel()
		set := newSubscriptionSet(0)

		set.add([]string{"tasks", "months"})
		names := set.add([]string{"tasks"})

		assert.ElementsMatch(t, []string{"tasks", "months"}, names)
	})

	t.Run("removing unknown name is a no-op", func(t *testing.T) {
		t.Parallel()
		set := newSubscriptionSet(0)
		set.add([]string{"tasks"})

		names := set.remove([]string{"reporters"})
		assert.ElementsMatch(t, []string{"tasks"}, names)
	})

	t.Run("empty set matches everything", func(t *testing.T) {
		t.Parallel()
		set := newSubscriptionSet(0)

		assert.True(t, set.wants("tasks"))
		assert.True(t, set.wants("anything-at-all"))
	})

	t.Run("non-empty set matches only its channels", func(t *testing.T) {
		t.Parallel()
		set := newSubscriptionSet(0)
		set.add([]string{"tasks", "month:2025-03"})

		assert.True(t, set.wants("tasks"))
		assert.True(t, set.wants("users", "month:2025-03"))
		assert.False(t, set.wants("users"))
	})

	t.Run("size cap bounds the set", func(t *testing.T) {
		t.Parallel()
		set := newSubscriptionSet(2)

		names := set.add([]string{"a", "b", "c", "d"})
		assert.Len(t, names, 2)
	})

	t.Run("blank names are ignored", func(t *testing.T) {
		t.Parallel()
		set := newSubscriptionSet(0)

		names := set.add([]string{"", "tasks"})
		assert.ElementsMatch(t, []string{"tasks"}, names)
	})
}
