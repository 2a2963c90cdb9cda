package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// DeliverableHandler handles deliverable CRUD.
type DeliverableHandler struct {
	deliverableStore store.DeliverableStore
	publisher        EventPublisher
	validator        *validator.Validate
}

// NewDeliverableHandler creates a DeliverableHandler.
func NewDeliverableHandler(deliverableStore store.DeliverableStore, publisher EventPublisher) *DeliverableHandler {
	return &DeliverableHandler{
		deliverableStore: deliverableStore,
		publisher:        publisher,
		validator:        validator.New(),
	}
}

// Create handles POST /deliverables.
func (h *DeliverableHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeNameRequest(w, r, h.validator)
	if !ok {
		return
	}

	deliverable, err := domain.NewDeliverable(req.Name)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid deliverable: "+err.Error())
		return
	}

	if err := h.deliverableStore.Create(r.Context(), deliverable); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.publisher.PublishDeliverableChange(EventCreated, deliverable)
	shared.RespondWithJSON(w, r, http.StatusCreated, deliverable)
}

// List handles GET /deliverables.
func (h *DeliverableHandler) List(w http.ResponseWriter, r *http.Request) {
	deliverables, err := h.deliverableStore.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, deliverables)
}

// Update handles PUT /deliverables/{id}.
func (h *DeliverableHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	req, ok := decodeNameRequest(w, r, h.validator)
	if !ok {
		return
	}

	deliverable, err := h.deliverableStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	deliverable.Name = req.Name
	if err := h.deliverableStore.Update(r.Context(), deliverable); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.publisher.PublishDeliverableChange(EventUpdated, deliverable)
	shared.RespondWithJSON(w, r, http.StatusOK, deliverable)
}

// Delete handles DELETE /deliverables/{id}.
func (h *DeliverableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	deliverable, err := h.deliverableStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if err := h.deliverableStore.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.publisher.PublishDeliverableChange(EventDeleted, deliverable)
	w.WriteHeader(http.StatusNoContent)
}

// ReporterHandler handles reporter CRUD, mirroring DeliverableHandler.
type ReporterHandler struct {
	reporterStore store.ReporterStore
	publisher     EventPublisher
	validator     *validator.Validate
}

// NewReporterHandler creates a ReporterHandler.
func NewReporterHandler(reporterStore store.ReporterStore, publisher EventPublisher) *ReporterHandler {
	return &ReporterHandler{
		reporterStore: reporterStore,
		publisher:     publisher,
		validator:     validator.New(),
	}
}

// Create handles POST /reporters.
func (h *ReporterHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeNameRequest(w, r, h.validator)
	if !ok {
		return
	}

	reporter, err := domain.NewReporter(req.Name)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid reporter: "+err.Error())
		return
	}
	reporter.Email = req.Email

	if err := h.reporterStore.Create(r.Context(), reporter); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.publisher.PublishReporterChange(EventCreated, reporter)
	shared.RespondWithJSON(w, r, http.StatusCreated, reporter)
}

// List handles GET /reporters.
func (h *ReporterHandler) List(w http.ResponseWriter, r *http.Request) {
	reporters, err := h.reporterStore.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, reporters)
}

// Update handles PUT /reporters/{id}.
func (h *ReporterHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	req, ok := decodeNameRequest(w, r, h.validator)
	if !ok {
		return
	}

	reporter, err := h.reporterStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	reporter.Name = req.Name
	reporter.Email = req.Email
	if err := h.reporterStore.Update(r.Context(), reporter); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.publisher.PublishReporterChange(EventUpdated, reporter)
	shared.RespondWithJSON(w, r, http.StatusOK, reporter)
}

// Delete handles DELETE /reporters/{id}.
func (h *ReporterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	reporter, err := h.reporterStore.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if err := h.reporterStore.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.publisher.PublishReporterChange(EventDeleted, reporter)
	w.WriteHeader(http.StatusNoContent)
}

func decodeNameRequest(w http.ResponseWriter, r *http.Request, v *validator.Validate) (NameRequest, bool) {
	var req NameRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return req, false
	}
	if err := v.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return req, false
	}
	return req, true
}
