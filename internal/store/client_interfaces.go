package store

import (
	"context"
	"time"

	"github.com/avasiliev/timeshelf/models"
)

// LocalResourceRepository is the SQLite-backed repository for resources on
// the client device. State transitions (version bumps, status changes) are
// performed on the model and persisted via Upsert; the bulk reset and purge
// operations run entirely in SQL.
type LocalResourceRepository interface {
	Upsert(ctx context.Context, resource models.Resource) error
	Get(ctx context.Context, localID string) (models.Resource, error)
	FindByRemoteID(ctx context.Context, remoteID string) (models.Resource, error)
	List(ctx context.Context) ([]models.Resource, error)
	ListPending(ctx context.Context) ([]models.Resource, error)
	ResetFailed(ctx context.Context, now time.Time) (int64, error)
	PurgeSyncedDeletions(ctx context.Context) (int64, error)
}

// LocalTimeSlotRepository is the SQLite-backed repository for time slots on
// the client device.
type LocalTimeSlotRepository interface {
	Upsert(ctx context.Context, slot models.TimeSlot) error
	Get(ctx context.Context, localID string) (models.TimeSlot, error)
	FindByRemoteID(ctx context.Context, remoteID string) (models.TimeSlot, error)
	List(ctx context.Context) ([]models.TimeSlot, error)
	ListPending(ctx context.Context) ([]models.TimeSlot, error)
	ResetFailed(ctx context.Context, now time.Time) (int64, error)
	PurgeSyncedDeletions(ctx context.Context) (int64, error)
}

// CheckpointRepository persists the pull checkpoint: the latest remote
// modification time the client has fully applied.
type CheckpointRepository interface {
	// Get returns the stored checkpoint, or the zero time when the client has
	// never completed a pull.
	Get(ctx context.Context) (time.Time, error)
	Save(ctx context.Context, lastSyncedAt time.Time) error
}
