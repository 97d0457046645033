package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/avasiliev/timeshelf/internal/logger"
	"github.com/avasiliev/timeshelf/internal/utils"
	"github.com/avasiliev/timeshelf/models"
)

// sinceParam carries the client's pull checkpoint; absent means "everything".
const sinceParam = "since"

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (h *Handler) pushBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var batch models.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		log.Err(err).Str("func", "*Handler.pushBatch").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.services.SyncService.ApplyBatch(ctx, batch)
	if err != nil {
		log.Err(err).Str("func", "*Handler.pushBatch").Msg("error applying batch")
		http.Error(w, "error applying batch", statusFromError(err))
		return
	}

	if deviceID, found := utils.GetDeviceIDFromContext(ctx); found {
		log.Info().
			Str("func", "*Handler.pushBatch").
			Str("device_id", deviceID).
			Int("records", batch.Size()).
			Int("failed", response.FailureCount).
			Msg("batch pushed")
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

func (h *Handler) pull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var since time.Time
	if raw := r.URL.Query().Get(sinceParam); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			log.Err(err).Str("func", "*Handler.pull").Msg("invalid since parameter")
			http.Error(w, "since must be an RFC 3339 timestamp", http.StatusBadRequest)
			return
		}
		since = parsed
	}

	changes, err := h.services.SyncService.ChangesSince(ctx, since)
	if err != nil {
		log.Err(err).Str("func", "*Handler.pull").Msg("error listing changes")
		http.Error(w, "error listing changes", statusFromError(err))
		return
	}

	utils.WriteJSON(w, changes, http.StatusOK)
}
