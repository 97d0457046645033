package store

import (
	"context"
	"time"

	"github.com/avasiliev/timeshelf/models"
)

// SyncedResourceRepository is the PostgreSQL-backed server repository for
// resources. On the server side the wire model's LocalID maps to the
// client_id column and RemoteID to the server_id primary key.
type SyncedResourceRepository interface {
	GetByClientID(ctx context.Context, clientID string) (models.Resource, error)
	Insert(ctx context.Context, resource models.Resource) (string, error)
	Update(ctx context.Context, resource models.Resource) error
	ListChangedSince(ctx context.Context, since time.Time) ([]models.Resource, error)
}

// SyncedTimeSlotRepository is the PostgreSQL-backed server repository for
// time slots.
type SyncedTimeSlotRepository interface {
	GetByClientID(ctx context.Context, clientID string) (models.TimeSlot, error)
	Insert(ctx context.Context, slot models.TimeSlot) (string, error)
	Update(ctx context.Context, slot models.TimeSlot) error
	ListChangedSince(ctx context.Context, since time.Time) ([]models.TimeSlot, error)
}
