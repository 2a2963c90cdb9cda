package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taskFixture struct {
	handler   *TaskHandler
	tasks     *fakeTaskStore
	months    *fakeMonthStore
	publisher *recordingPublisher
	month     *domain.Month
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()
	tasks := newFakeTaskStore()
	months := newFakeMonthStore()
	publisher := &recordingPublisher{}

	month, err := domain.NewMonth("2025-03")
	require.NoError(t, err)
	require.NoError(t, months.Create(context.Background(), month))

	return &taskFixture{
		handler:   NewTaskHandler(tasks, months, publisher),
		tasks:     tasks,
		months:    months,
		publisher: publisher,
		month:     month,
	}
}

func TestTaskCreatePublishesCreatedEvent(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	rec := doJSON(t, f.handler.Create, http.MethodPost, CreateTaskRequest{
		MonthID: f.month.ID,
		Title:   "Draft report",
	}, nil)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Task
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "Draft report", created.Title)
	assert.Equal(t, domain.TaskStatusPlanned, created.Status)

	events := f.publisher.all()
	require.Len(t, events, 1)
	assert.Equal(t, "task", events[0].resource)
	assert.Equal(t, EventCreated, events[0].action)
	assert.Equal(t, "2025-03", events[0].monthLabel)
	assert.Equal(t, created.ID, events[0].entityID)
}

func TestTaskCreateUnknownMonthReturns404(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	rec := doJSON(t, f.handler.Create, http.MethodPost, CreateTaskRequest{
		MonthID: uuid.New(),
		Title:   "Orphan task",
	}, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, f.publisher.all())
}

func TestTaskCreateValidationFailure(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	rec := doJSON(t, f.handler.Create, http.MethodPost, map[string]any{
		"monthId": f.month.ID,
	}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.publisher.all())
}

func TestTaskUpdatePublishesUpdatedEvent(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	task, err := domain.NewTask(f.month.ID, "Draft report")
	require.NoError(t, err)
	require.NoError(t, f.tasks.Create(context.Background(), task))

	rec := doJSON(t, f.handler.Update, http.MethodPut, UpdateTaskRequest{
		Title:  "Draft report v2",
		Status: domain.TaskStatusInProgress,
	}, map[string]string{"id": task.ID.String()})

	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := f.tasks.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Draft report v2", stored.Title)
	assert.Equal(t, domain.TaskStatusInProgress, stored.Status)

	events := f.publisher.all()
	require.Len(t, events, 1)
	assert.Equal(t, EventUpdated, events[0].action)
	assert.Equal(t, "2025-03", events[0].monthLabel)
}

func TestTaskUpdateUnknownIDReturns404(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	rec := doJSON(t, f.handler.Update, http.MethodPut, UpdateTaskRequest{
		Title:  "Ghost",
		Status: domain.TaskStatusPlanned,
	}, map[string]string{"id": uuid.NewString()})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, f.publisher.all())
}

func TestTaskUpdateRejectsUnknownStatus(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	task, err := domain.NewTask(f.month.ID, "Draft report")
	require.NoError(t, err)
	require.NoError(t, f.tasks.Create(context.Background(), task))

	rec := doJSON(t, f.handler.Update, http.MethodPut, map[string]any{
		"title":  "Draft report",
		"status": "paused",
	}, map[string]string{"id": task.ID.String()})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskDeletePublishesDeletedEvent(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	task, err := domain.NewTask(f.month.ID, "Draft report")
	require.NoError(t, err)
	require.NoError(t, f.tasks.Create(context.Background(), task))

	rec := doJSON(t, f.handler.Delete, http.MethodDelete, nil,
		map[string]string{"id": task.ID.String()})

	require.Equal(t, http.StatusNoContent, rec.Code)

	_, err = f.tasks.GetByID(context.Background(), task.ID)
	require.Error(t, err)

	events := f.publisher.all()
	require.Len(t, events, 1)
	assert.Equal(t, EventDeleted, events[0].action)
	assert.Equal(t, task.ID, events[0].entityID)
}

func TestTaskListByMonth(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	otherMonth, err := domain.NewMonth("2025-04")
	require.NoError(t, err)
	require.NoError(t, f.months.Create(context.Background(), otherMonth))

	for _, spec := range []struct {
		monthID uuid.UUID
		title   string
	}{
		{f.month.ID, "March task"},
		{f.month.ID, "Another March task"},
		{otherMonth.ID, "April task"},
	} {
		task, err := domain.NewTask(spec.monthID, spec.title)
		require.NoError(t, err)
		require.NoError(t, f.tasks.Create(context.Background(), task))
	}

	rec := doJSON(t, f.handler.ListByMonth, http.MethodGet, nil,
		map[string]string{"id": f.month.ID.String()})

	require.Equal(t, http.StatusOK, rec.Code)
	var listed []*domain.Task
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listed))
	assert.Len(t, listed, 2)
}

func TestTaskGetInvalidUUIDReturns400(t *testing.T) {
	t.Parallel()
	f := newTaskFixture(t)

	rec := doJSON(t, f.handler.Get, http.MethodGet, nil,
		map[string]string{"id": "not-a-uuid"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
