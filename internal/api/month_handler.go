package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// MonthHandler handles month board CRUD.
type MonthHandler struct {
	monthStore store.MonthStore
	publisher  EventPublisher
	validator  *validator.Validate
}

// NewMonthHandler creates a MonthHandler with the given dependencies.
func NewMonthHandler(monthStore store.MonthStore, publisher EventPublisher) *MonthHandler {
	return &MonthHandler{
		monthStore: monthStore,
		publisher:  publisher,
		validator:  validator.New(),
	}
}

// Create handles POST /months.
func (h *MonthHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMonthRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	month, err := domain.NewMonth(req.Label)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid month label: "+err.Error())
		return
	}

	if err := h.monthStore.Create(r.Context(), month); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.publisher.PublishMonthChange(EventCreated, month)
	shared.RespondWithJSON(w, r, http.StatusCreated, month)
}

// List handles GET /months.
func (h *MonthHandler) List(w http.ResponseWriter, r *http.Request) {
	months, err := h.monthStore.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, months)
}

// Get handles GET /months/{id}.
func (h *MonthHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	month, err := h.monthStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, month)
}

// Delete handles DELETE /months/{id}. Tasks on the board go with it via
// the schema's cascade.
func (h *MonthHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	month, err := h.monthStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if err := h.monthStore.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.publisher.PublishMonthChange(EventDeleted, month)
	w.WriteHeader(http.StatusNoContent)
}
