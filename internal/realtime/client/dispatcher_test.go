package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherInvokesInRegistrationOrder(t *testing.T) {
	t.Parallel()
	d := NewDispatcher(nil)

	var order []string
	d.On("task_change", func(Event) { order = append(order, "first") })
	d.On("task_change", func(Event) { order = append(order, "second") })
	d.On("task_change", func(Event) { order = append(order, "third") })

	d.emit(Event{Type: "task_change"})

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestDispatcherOnlyMatchingTypeFires(t *testing.T) {
	t.Parallel()
	d := NewDispatcher(nil)

	taskCalls, monthCalls := 0, 0
	d.On("task_change", func(Event) { taskCalls++ })
	d.On("month_change", func(Event) { monthCalls++ })

	d.emit(Event{Type: "task_change"})

	assert.Equal(t, 1, taskCalls)
	assert.Equal(t, 0, monthCalls)
}

func TestDispatcherOffRemovesOnlyThatListener(t *testing.T) {
	t.Parallel()
	d := NewDispatcher(nil)

	aCalls, bCalls := 0, 0
	idA := d.On("task_change", func(Event) { aCalls++ })
	d.On("task_change", func(Event) { bCalls++ })

	d.Off("task_change", idA)
	d.Off("task_change", 999) // unknown id is ignored

	d.emit(Event{Type: "task_change"})

	assert.Equal(t, 0, aCalls)
	assert.Equal(t, 1, bCalls)
}

func TestDispatcherPanickingListenerIsIsolated(t *testing.T) {
	t.Parallel()
	d := NewDispatcher(nil)

	afterCalls := 0
	d.On("task_change", func(Event) { panic("listener bug") })
	d.On("task_change", func(Event) { afterCalls++ })

	assert.NotPanics(t, func() {
		d.emit(Event{Type: "task_change"})
		d.emit(Event{Type: "task_change"})
	})
	assert.Equal(t, 2, afterCalls)
}

func TestDispatcherResetDropsAllListeners(t *testing.T) {
	t.Parallel()
	d := NewDispatcher(nil)

	calls := 0
	d.On("task_change", func(Event) { calls++ })
	d.reset()
	d.emit(Event{Type: "task_change"})

	assert.Equal(t, 0, calls)
}
