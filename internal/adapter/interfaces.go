// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Vasiliev

// Package adapter provides transport-layer abstractions for communicating
// with the timeshelf reconciliation server.
//
// The primary abstraction is [RemoteClient], which decouples the sync service
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPRemoteClient]) built on resty with exponential-backoff retries for
// transient failures.
//
// Error values defined in errors.go are mapped from transport failures and
// HTTP status codes so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrVersionConflict] for 409, [ErrNetwork] for 5xx).
package adapter

import (
	"context"
	"time"

	"github.com/avasiliev/timeshelf/models"
)

// RemoteClient defines transport-agnostic communication with the
// reconciliation server. Implementations are responsible for serialisation,
// authentication header management, retry policy, and mapping transport-level
// errors to the sentinel values defined in this package.
type RemoteClient interface {
	// SetToken stores the device bearer token that will be attached to all
	// subsequent authenticated requests.
	SetToken(token string)

	// Token returns the device bearer token currently stored in the adapter,
	// or an empty string if no token has been set yet.
	Token() string

	// HealthCheck probes the server's sync health endpoint. A nil return
	// means the server is reachable and ready to accept a batch.
	HealthCheck(ctx context.Context) error

	// PushBatch uploads pending local changes in a single request and returns
	// the per-item results. A non-nil error means the batch as a whole did
	// not reach the server; individual item failures are reported inside the
	// response with a nil error.
	PushBatch(ctx context.Context, req models.BatchRequest) (models.BatchResponse, error)

	// Pull fetches records modified on the server after the given checkpoint.
	// A zero since value requests the full remote state.
	Pull(ctx context.Context, since time.Time) (models.BatchRequest, error)

	// UpsertResource writes a single resource through the direct per-entity
	// endpoint, bypassing the batch. Returns the server's view of the record.
	UpsertResource(ctx context.Context, resource models.Resource) (models.Resource, error)

	// DeleteResource soft-deletes a single resource on the server.
	DeleteResource(ctx context.Context, clientID string) error

	// UpsertTimeSlot writes a single time slot through the direct per-entity
	// endpoint. Returns the server's view of the record.
	UpsertTimeSlot(ctx context.Context, slot models.TimeSlot) (models.TimeSlot, error)

	// DeleteTimeSlot soft-deletes a single time slot on the server.
	DeleteTimeSlot(ctx context.Context, clientID string) error
}
