package service

import (
	"context"
	"time"

	"github.com/avasiliev/timeshelf/models"
)

// SyncService is the server-side reconciliation logic behind the sync and
// per-entity endpoints.
type SyncService interface {
	// ApplyBatch applies every record of a push batch independently and
	// returns a per-item verdict for each. A record whose stored version is
	// not older, or whose stored modification time is newer, is reported as a
	// conflict and left untouched.
	ApplyBatch(ctx context.Context, req models.BatchRequest) (models.BatchResponse, error)

	// ChangesSince returns all records modified strictly after since. A zero
	// since returns the full stored state.
	ChangesSince(ctx context.Context, since time.Time) (models.BatchRequest, error)

	// UpsertResource applies a single resource write with the same conflict
	// rule as the batch; conflicts surface as store.ErrVersionConflict.
	UpsertResource(ctx context.Context, resource models.Resource) (models.Resource, error)

	// DeleteResource soft-deletes the stored resource identified by its
	// client id, bumping the stored version.
	DeleteResource(ctx context.Context, clientID string) error

	// UpsertTimeSlot applies a single time slot write with the same conflict
	// rule as the batch.
	UpsertTimeSlot(ctx context.Context, slot models.TimeSlot) (models.TimeSlot, error)

	// DeleteTimeSlot soft-deletes the stored time slot identified by its
	// client id.
	DeleteTimeSlot(ctx context.Context, clientID string) error
}

// AuthService issues and validates device tokens.
type AuthService interface {
	CreateDeviceToken(ctx context.Context, deviceID string) (string, error)
	ParseDeviceToken(ctx context.Context, tokenString string) (string, error)
}
