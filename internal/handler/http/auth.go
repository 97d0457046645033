package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/avasiliev/timeshelf/internal/logger"
	"github.com/avasiliev/timeshelf/internal/utils"
	"github.com/avasiliev/timeshelf/models"
)

// issueDeviceToken hands out a bearer token for a device identifier. There is
// no account system: a device id is self-assigned by the client and the token
// only proves that the same device keeps talking to us.
func (h *Handler) issueDeviceToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.DeviceTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.issueDeviceToken").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(request.DeviceID) == "" {
		log.Error().Str("func", "*Handler.issueDeviceToken").Msg("empty device id")
		http.Error(w, "device id is required", http.StatusBadRequest)
		return
	}

	token, err := h.services.AuthService.CreateDeviceToken(ctx, request.DeviceID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.issueDeviceToken").Msg("error issuing device token")
		http.Error(w, "error issuing device token", statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.DeviceTokenResponse{Token: token}, http.StatusOK)
}
