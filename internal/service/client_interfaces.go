package service

import (
	"context"

	"github.com/avasiliev/timeshelf/models"
)

// ChangeTracker is the client-side edit API. Every mutation goes through it
// so that version numbers and sync statuses stay consistent: direct field
// writes bypassing the tracker are disallowed by convention.
type ChangeTracker interface {
	// CreateResource stores a new local-only resource. The record is not
	// queued for push until its first edit.
	CreateResource(ctx context.Context, title, url, notes, tags string) (models.Resource, error)

	// UpdateResource applies the content fields of resource to the stored
	// record, bumps its version and queues it for push.
	UpdateResource(ctx context.Context, resource models.Resource) (models.Resource, error)

	// DeleteResource soft-deletes the record and queues the deletion for
	// push. The row stays in the local store until the deletion is synced.
	DeleteResource(ctx context.Context, localID string) error

	GetResource(ctx context.Context, localID string) (models.Resource, error)
	ListResources(ctx context.Context) ([]models.Resource, error)

	// CreateTimeSlot stores a new local-only time slot.
	CreateTimeSlot(ctx context.Context, label string, weekday, startMinute, durationMinutes int) (models.TimeSlot, error)

	// UpdateTimeSlot applies the content fields of slot to the stored record,
	// bumps its version and queues it for push.
	UpdateTimeSlot(ctx context.Context, slot models.TimeSlot) (models.TimeSlot, error)

	// DeleteTimeSlot soft-deletes the record and queues the deletion for push.
	DeleteTimeSlot(ctx context.Context, localID string) error

	GetTimeSlot(ctx context.Context, localID string) (models.TimeSlot, error)
	ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error)

	// ListPending returns every record queued for push across both entity
	// kinds, oldest modifications first.
	ListPending(ctx context.Context) (models.BatchRequest, error)

	// ResetFailed re-queues all failed records (conflicts included) for the
	// next push, bumping their versions. Returns the number of records reset.
	ResetFailed(ctx context.Context) (int64, error)

	// PurgeSyncedDeletions physically removes records whose deletion the
	// server has confirmed. Returns the number of rows removed.
	PurgeSyncedDeletions(ctx context.Context) (int64, error)
}

// SyncOrchestrator runs the sync cycle: check health, push pending changes,
// pull remote changes, advance the checkpoint, purge confirmed deletions.
type SyncOrchestrator interface {
	// Sync runs one full cycle and always returns a report, even when the
	// cycle aborts. Cycles are serialized: a call made while another cycle is
	// running returns immediately with ErrSyncInProgress in the report.
	// Local data is never deleted or reverted on failure.
	Sync(ctx context.Context) models.SyncReport
}
