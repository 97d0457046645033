package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasiliev/timeshelf/internal/logger"
	"github.com/avasiliev/timeshelf/internal/utils"
	"github.com/avasiliev/timeshelf/models"
)

func newTestTracker(t *testing.T) (ChangeTracker, *memResourceRepo, *memTimeSlotRepo) {
	t.Helper()

	resources := newMemResourceRepo()
	timeSlots := newMemTimeSlotRepo()
	tracker := &changeTracker{
		resources: resources,
		timeSlots: timeSlots,
		ids:       utils.NewUUIDGenerator(),
		logger:    logger.Nop(),
		now:       func() time.Time { return syncTestNow },
	}
	return tracker, resources, timeSlots
}

func TestChangeTracker_CreateResourceStaysLocalOnly(t *testing.T) {
	tracker, _, _ := newTestTracker(t)

	resource, err := tracker.CreateResource(context.Background(), "Go blog", "https://go.dev/blog", "weekly reading", "go,reading")
	require.NoError(t, err)

	assert.Equal(t, models.StatusLocalOnly, resource.SyncStatus)
	assert.Equal(t, int64(1), resource.Version)
	assert.NotEmpty(t, resource.LocalID)
	assert.Empty(t, resource.RemoteID)

	// A freshly created record is not queued for push.
	pending, err := tracker.ListPending(context.Background())
	require.NoError(t, err)
	assert.True(t, pending.Empty())
}

func TestChangeTracker_CreateResourceRequiresTitle(t *testing.T) {
	tracker, _, _ := newTestTracker(t)

	_, err := tracker.CreateResource(context.Background(), "  ", "https://go.dev", "", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestChangeTracker_UpdateResourceQueuesPush(t *testing.T) {
	tracker, _, _ := newTestTracker(t)

	created, err := tracker.CreateResource(context.Background(), "Go blog", "https://go.dev/blog", "", "")
	require.NoError(t, err)

	created.Title = "The Go Blog"
	updated, err := tracker.UpdateResource(context.Background(), created)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPendingSync, updated.SyncStatus)
	assert.Equal(t, int64(2), updated.Version)
	assert.Equal(t, "The Go Blog", updated.Title)

	pending, err := tracker.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending.Resources, 1)
	assert.Equal(t, created.LocalID, pending.Resources[0].LocalID)
}

func TestChangeTracker_DeleteResourceIsSoft(t *testing.T) {
	tracker, resources, _ := newTestTracker(t)

	created, err := tracker.CreateResource(context.Background(), "Go blog", "https://go.dev/blog", "", "")
	require.NoError(t, err)

	require.NoError(t, tracker.DeleteResource(context.Background(), created.LocalID))

	stored, err := resources.Get(context.Background(), created.LocalID)
	require.NoError(t, err)
	assert.True(t, stored.Deleted)
	assert.Equal(t, models.StatusPendingSync, stored.SyncStatus)
	assert.Equal(t, int64(2), stored.Version)

	// Soft-deleted records drop out of listings but stay in the pending set.
	listed, err := tracker.ListResources(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)

	pending, err := tracker.ListPending(context.Background())
	require.NoError(t, err)
	assert.Len(t, pending.Resources, 1)
}

func TestChangeTracker_CreateTimeSlotValidation(t *testing.T) {
	tracker, _, _ := newTestTracker(t)
	ctx := context.Background()

	tests := []struct {
		name            string
		label           string
		weekday         int
		startMinute     int
		durationMinutes int
	}{
		{name: "empty label", label: "", weekday: 1, startMinute: 540, durationMinutes: 60},
		{name: "weekday too large", label: "deep work", weekday: 7, startMinute: 540, durationMinutes: 60},
		{name: "negative weekday", label: "deep work", weekday: -1, startMinute: 540, durationMinutes: 60},
		{name: "start minute past midnight", label: "deep work", weekday: 1, startMinute: 24 * 60, durationMinutes: 60},
		{name: "zero duration", label: "deep work", weekday: 1, startMinute: 540, durationMinutes: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tracker.CreateTimeSlot(ctx, tt.label, tt.weekday, tt.startMinute, tt.durationMinutes)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestChangeTracker_TimeSlotLifecycle(t *testing.T) {
	tracker, _, timeSlots := newTestTracker(t)
	ctx := context.Background()

	slot, err := tracker.CreateTimeSlot(ctx, "deep work", 1, 540, 90)
	require.NoError(t, err)
	assert.Equal(t, models.StatusLocalOnly, slot.SyncStatus)

	slot.DurationMinutes = 120
	updated, err := tracker.UpdateTimeSlot(ctx, slot)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingSync, updated.SyncStatus)
	assert.Equal(t, 120, updated.DurationMinutes)

	require.NoError(t, tracker.DeleteTimeSlot(ctx, slot.LocalID))

	stored, err := timeSlots.Get(ctx, slot.LocalID)
	require.NoError(t, err)
	assert.True(t, stored.Deleted)
	assert.Equal(t, int64(3), stored.Version)
}

func TestChangeTracker_ResetFailedRequeues(t *testing.T) {
	tracker, resources, _ := newTestTracker(t)
	ctx := context.Background()

	created, err := tracker.CreateResource(ctx, "Go blog", "https://go.dev/blog", "", "")
	require.NoError(t, err)

	stored, err := resources.Get(ctx, created.LocalID)
	require.NoError(t, err)
	stored.MarkDirty(syncTestNow)
	stored.MarkFailed(models.ReasonVersionConflict)
	require.NoError(t, resources.Upsert(ctx, stored))

	// Conflict-failed records are excluded from the batch until reset.
	pending, err := tracker.ListPending(ctx)
	require.NoError(t, err)
	assert.True(t, pending.Empty())

	reset, err := tracker.ResetFailed(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), reset)

	pending, err = tracker.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending.Resources, 1)
	assert.Equal(t, models.StatusPendingSync, pending.Resources[0].SyncStatus)
	assert.Empty(t, pending.Resources[0].LastError)
}
