package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avasiliev/timeshelf/internal/logger"
	"github.com/avasiliev/timeshelf/internal/store"
	"github.com/avasiliev/timeshelf/internal/utils"
	"github.com/avasiliev/timeshelf/models"
)

type changeTracker struct {
	resources store.LocalResourceRepository
	timeSlots store.LocalTimeSlotRepository
	ids       *utils.UUIDGenerator
	logger    *logger.Logger

	// now is swappable for deterministic tests.
	now func() time.Time
}

func NewChangeTracker(storages *store.ClientStorages, logger *logger.Logger) ChangeTracker {
	return &changeTracker{
		resources: storages.Resources,
		timeSlots: storages.TimeSlots,
		ids:       utils.NewUUIDGenerator(),
		logger:    logger,
		now:       time.Now,
	}
}

func (t *changeTracker) CreateResource(ctx context.Context, title, url, notes, tags string) (models.Resource, error) {
	if strings.TrimSpace(title) == "" {
		return models.Resource{}, fmt.Errorf("%w: resource title is required", ErrInvalidDataProvided)
	}

	resource := models.NewResource(t.ids.Generate(), title, url, t.now())
	resource.Notes = notes
	resource.Tags = tags

	if err := t.resources.Upsert(ctx, resource); err != nil {
		return models.Resource{}, fmt.Errorf("create resource: %w", err)
	}

	t.logger.Debug().
		Str("func", "changeTracker.CreateResource").
		Str("local_id", resource.LocalID).
		Msg("resource created")

	return resource, nil
}

func (t *changeTracker) UpdateResource(ctx context.Context, resource models.Resource) (models.Resource, error) {
	stored, err := t.resources.Get(ctx, resource.LocalID)
	if err != nil {
		return models.Resource{}, fmt.Errorf("load resource for update: %w", err)
	}

	stored.Title = resource.Title
	stored.URL = resource.URL
	stored.Notes = resource.Notes
	stored.Tags = resource.Tags
	stored.MarkDirty(t.now())

	if err := t.resources.Upsert(ctx, stored); err != nil {
		return models.Resource{}, fmt.Errorf("update resource: %w", err)
	}

	return stored, nil
}

func (t *changeTracker) DeleteResource(ctx context.Context, localID string) error {
	stored, err := t.resources.Get(ctx, localID)
	if err != nil {
		return fmt.Errorf("load resource for delete: %w", err)
	}

	stored.MarkDeleted(t.now())

	if err := t.resources.Upsert(ctx, stored); err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}

	return nil
}

func (t *changeTracker) GetResource(ctx context.Context, localID string) (models.Resource, error) {
	return t.resources.Get(ctx, localID)
}

func (t *changeTracker) ListResources(ctx context.Context) ([]models.Resource, error) {
	return t.resources.List(ctx)
}

func (t *changeTracker) CreateTimeSlot(ctx context.Context, label string, weekday, startMinute, durationMinutes int) (models.TimeSlot, error) {
	if strings.TrimSpace(label) == "" {
		return models.TimeSlot{}, fmt.Errorf("%w: time slot label is required", ErrInvalidDataProvided)
	}
	if weekday < 0 || weekday > 6 {
		return models.TimeSlot{}, fmt.Errorf("%w: weekday must be in [0,6]", ErrInvalidDataProvided)
	}
	if startMinute < 0 || startMinute >= 24*60 {
		return models.TimeSlot{}, fmt.Errorf("%w: start minute must be within the day", ErrInvalidDataProvided)
	}
	if durationMinutes <= 0 {
		return models.TimeSlot{}, fmt.Errorf("%w: duration must be positive", ErrInvalidDataProvided)
	}

	slot := models.NewTimeSlot(t.ids.Generate(), label, weekday, startMinute, durationMinutes, t.now())

	if err := t.timeSlots.Upsert(ctx, slot); err != nil {
		return models.TimeSlot{}, fmt.Errorf("create time slot: %w", err)
	}

	t.logger.Debug().
		Str("func", "changeTracker.CreateTimeSlot").
		Str("local_id", slot.LocalID).
		Msg("time slot created")

	return slot, nil
}

func (t *changeTracker) UpdateTimeSlot(ctx context.Context, slot models.TimeSlot) (models.TimeSlot, error) {
	stored, err := t.timeSlots.Get(ctx, slot.LocalID)
	if err != nil {
		return models.TimeSlot{}, fmt.Errorf("load time slot for update: %w", err)
	}

	stored.Label = slot.Label
	stored.Weekday = slot.Weekday
	stored.StartMinute = slot.StartMinute
	stored.DurationMinutes = slot.DurationMinutes
	stored.MarkDirty(t.now())

	if err := t.timeSlots.Upsert(ctx, stored); err != nil {
		return models.TimeSlot{}, fmt.Errorf("update time slot: %w", err)
	}

	return stored, nil
}

func (t *changeTracker) DeleteTimeSlot(ctx context.Context, localID string) error {
	stored, err := t.timeSlots.Get(ctx, localID)
	if err != nil {
		return fmt.Errorf("load time slot for delete: %w", err)
	}

	stored.MarkDeleted(t.now())

	if err := t.timeSlots.Upsert(ctx, stored); err != nil {
		return fmt.Errorf("delete time slot: %w", err)
	}

	return nil
}

func (t *changeTracker) GetTimeSlot(ctx context.Context, localID string) (models.TimeSlot, error) {
	return t.timeSlots.Get(ctx, localID)
}

func (t *changeTracker) ListTimeSlots(ctx context.Context) ([]models.TimeSlot, error) {
	return t.timeSlots.List(ctx)
}

func (t *changeTracker) ListPending(ctx context.Context) (models.BatchRequest, error) {
	resources, err := t.resources.ListPending(ctx)
	if err != nil {
		return models.BatchRequest{}, fmt.Errorf("list pending resources: %w", err)
	}

	timeSlots, err := t.timeSlots.ListPending(ctx)
	if err != nil {
		return models.BatchRequest{}, fmt.Errorf("list pending time slots: %w", err)
	}

	return models.BatchRequest{Resources: resources, TimeSlots: timeSlots}, nil
}

func (t *changeTracker) ResetFailed(ctx context.Context) (int64, error) {
	now := t.now()

	resetResources, err := t.resources.ResetFailed(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("reset failed resources: %w", err)
	}

	resetTimeSlots, err := t.timeSlots.ResetFailed(ctx, now)
	if err != nil {
		return resetResources, fmt.Errorf("reset failed time slots: %w", err)
	}

	return resetResources + resetTimeSlots, nil
}

func (t *changeTracker) PurgeSyncedDeletions(ctx context.Context) (int64, error) {
	purgedResources, err := t.resources.PurgeSyncedDeletions(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge synced resource deletions: %w", err)
	}

	purgedTimeSlots, err := t.timeSlots.PurgeSyncedDeletions(ctx)
	if err != nil {
		return purgedResources, fmt.Errorf("purge synced time slot deletions: %w", err)
	}

	return purgedResources + purgedTimeSlots, nil
}
