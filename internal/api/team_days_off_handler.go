package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TeamDaysOffHandler handles the shared days-off calendar.
type TeamDaysOffHandler struct {
	daysOffStore store.TeamDaysOffStore
	publisher    EventPublisher
	validator    *validator.Validate
}

// NewTeamDaysOffHandler creates a TeamDaysOffHandler.
func NewTeamDaysOffHandler(daysOffStore store.TeamDaysOffStore, publisher EventPublisher) *TeamDaysOffHandler {
	return &TeamDaysOffHandler{
		daysOffStore: daysOffStore,
		publisher:    publisher,
		validator:    validator.New(),
	}
}

// Create handles POST /team-days-off.
func (h *TeamDaysOffHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req DaysOffRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	daysOff, err := domain.NewTeamDaysOff(req.UserID, req.StartDate, req.EndDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid days-off entry: "+err.Error())
		return
	}
	daysOff.Reason = req.Reason

	if err := h.daysOffStore.Create(r.Context(), daysOff); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.publisher.PublishTeamDaysOffChange(EventCreated, daysOff)
	shared.RespondWithJSON(w, r, http.StatusCreated, daysOff)
}

// List handles GET /team-days-off.
func (h *TeamDaysOffHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.daysOffStore.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}

// Update handles PUT /team-days-off/{id}.
func (h *TeamDaysOffHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req DaysOffRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	daysOff, err := h.daysOffStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	daysOff.UserID = req.UserID
	daysOff.StartDate = req.StartDate
	daysOff.EndDate = req.EndDate
	daysOff.Reason = req.Reason
	if err := daysOff.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid days-off entry: "+err.Error())
		return
	}

	if err := h.daysOffStore.Update(r.Context(), daysOff); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.publisher.PublishTeamDaysOffChange(EventUpdated, daysOff)
	shared.RespondWithJSON(w, r, http.StatusOK, daysOff)
}

// Delete handles DELETE /team-days-off/{id}.
func (h *TeamDaysOffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	daysOff, err := h.daysOffStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if err := h.daysOffStore.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.publisher.PublishTeamDaysOffChange(EventDeleted, daysOff)
	w.WriteHeader(http.StatusNoContent)
}
