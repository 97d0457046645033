// Package http implements the HTTP transport layer of the reconciliation
// server. It provides middleware, route handlers, and request/response
// utilities for the REST API. Authentication, logging and tracing concerns
// are all handled at this layer before requests are forwarded to the service
// layer.
package http

import (
	"context"
	"net/http"

	"github.com/avasiliev/timeshelf/internal/logger"
	"github.com/avasiliev/timeshelf/internal/utils"
)

// auth is an HTTP middleware that enforces device-token authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [service.AuthService.ParseDeviceToken], and — on success —
// stores the authenticated device's ID in the request context under
// [utils.DeviceIDCtxKey] before delegating to the next handler.
//
// Requests without a header, with a malformed header, or with a token that
// fails signature, issuer or expiry checks are rejected with HTTP 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		deviceID, err := h.services.AuthService.ParseDeviceToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing device token")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		// Store the authenticated device's ID in the context so that downstream
		// handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.DeviceIDCtxKey, deviceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
