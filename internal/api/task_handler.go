package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TaskHandler handles task CRUD. Every mutation is followed by a
// broadcast so connected clients converge without refetching.
type TaskHandler struct {
	taskStore  store.TaskStore
	monthStore store.MonthStore
	publisher  EventPublisher
	validator  *validator.Validate
}

// NewTaskHandler creates a TaskHandler with the given dependencies.
func NewTaskHandler(
	taskStore store.TaskStore,
	monthStore store.MonthStore,
	publisher EventPublisher,
) *TaskHandler {
	return &TaskHandler{
		taskStore:  taskStore,
		monthStore: monthStore,
		publisher:  publisher,
		validator:  validator.New(),
	}
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	// The board must exist; its label doubles as the routing hint.
	month, err := h.monthStore.GetByID(r.Context(), req.MonthID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	task, err := domain.NewTask(req.MonthID, req.Title)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task data: "+err.Error())
		return
	}
	task.Description = req.Description
	task.UserID = req.UserID
	task.DeliverableID = req.DeliverableID
	task.ReporterID = req.ReporterID

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.publisher.PublishTaskChange(EventCreated, task, month.Label)
	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// ListByMonth handles GET /months/{id}/tasks.
func (h *TaskHandler) ListByMonth(w http.ResponseWriter, r *http.Request) {
	monthID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.monthStore.GetByID(r.Context(), monthID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	tasks, err := h.taskStore.ListByMonth(r.Context(), monthID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Update handles PUT /tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	task.Title = req.Title
	task.Description = req.Description
	task.Status = req.Status
	task.UserID = req.UserID
	task.DeliverableID = req.DeliverableID
	task.ReporterID = req.ReporterID
	if err := task.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task data: "+err.Error())
		return
	}

	if err := h.taskStore.Update(r.Context(), task); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.publisher.PublishTaskChange(EventUpdated, task, h.monthLabel(r, task))
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.taskStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if err := h.taskStore.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.publisher.PublishTaskChange(EventDeleted, task, h.monthLabel(r, task))
	w.WriteHeader(http.StatusNoContent)
}

// monthLabel resolves the board label for routing hints. A lookup miss
// degrades to an unscoped broadcast instead of failing the mutation.
func (h *TaskHandler) monthLabel(r *http.Request, task *domain.Task) string {
	month, err := h.monthStore.GetByID(r.Context(), task.MonthID)
	if err != nil {
		return ""
	}
	return month.Label
}
