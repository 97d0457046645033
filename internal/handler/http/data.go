package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/avasiliev/timeshelf/internal/logger"
	"github.com/avasiliev/timeshelf/internal/utils"
	"github.com/avasiliev/timeshelf/models"
)

// Direct per-entity endpoints. They apply the same conflict rule as the batch
// but operate on a single record; the record's client id comes from the URL.

func (h *Handler) upsertResource(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var resource models.Resource
	if err := json.NewDecoder(r.Body).Decode(&resource); err != nil {
		log.Err(err).Str("func", "*Handler.upsertResource").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	resource.LocalID = chi.URLParam(r, "id")

	saved, err := h.services.SyncService.UpsertResource(ctx, resource)
	if err != nil {
		log.Err(err).Str("func", "*Handler.upsertResource").Msg("error upserting resource")
		http.Error(w, "error upserting resource", statusFromError(err))
		return
	}

	utils.WriteJSON(w, saved, http.StatusOK)
}

func (h *Handler) deleteResource(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := h.services.SyncService.DeleteResource(ctx, chi.URLParam(r, "id")); err != nil {
		log.Err(err).Str("func", "*Handler.deleteResource").Msg("error deleting resource")
		http.Error(w, "error deleting resource", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) upsertTimeSlot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var slot models.TimeSlot
	if err := json.NewDecoder(r.Body).Decode(&slot); err != nil {
		log.Err(err).Str("func", "*Handler.upsertTimeSlot").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	slot.LocalID = chi.URLParam(r, "id")

	saved, err := h.services.SyncService.UpsertTimeSlot(ctx, slot)
	if err != nil {
		log.Err(err).Str("func", "*Handler.upsertTimeSlot").Msg("error upserting time slot")
		http.Error(w, "error upserting time slot", statusFromError(err))
		return
	}

	utils.WriteJSON(w, saved, http.StatusOK)
}

func (h *Handler) deleteTimeSlot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := h.services.SyncService.DeleteTimeSlot(ctx, chi.URLParam(r, "id")); err != nil {
		log.Err(err).Str("func", "*Handler.deleteTimeSlot").Msg("error deleting time slot")
		http.Error(w, "error deleting time slot", statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
