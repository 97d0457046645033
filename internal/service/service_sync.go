package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avasiliev/timeshelf/internal/logger"
	"github.com/avasiliev/timeshelf/internal/store"
	"github.com/avasiliev/timeshelf/models"
)

type syncService struct {
	resources store.SyncedResourceRepository
	timeSlots store.SyncedTimeSlotRepository
	logger    *logger.Logger

	now func() time.Time
}

func NewSyncService(storages *store.Storages, logger *logger.Logger) SyncService {
	return &syncService{
		resources: storages.Resources,
		timeSlots: storages.TimeSlots,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *syncService) ApplyBatch(ctx context.Context, req models.BatchRequest) (models.BatchResponse, error) {
	resp := models.BatchResponse{
		ResourceResults: make([]models.PushItemResult, 0, len(req.Resources)),
		TimeSlotResults: make([]models.PushItemResult, 0, len(req.TimeSlots)),
	}

	for _, resource := range req.Resources {
		result := s.applyResource(ctx, resource)
		resp.ResourceResults = append(resp.ResourceResults, result)
	}

	for _, slot := range req.TimeSlots {
		result := s.applyTimeSlot(ctx, slot)
		resp.TimeSlotResults = append(resp.TimeSlotResults, result)
	}

	for _, result := range resp.ResourceResults {
		if result.Success {
			resp.SuccessCount++
		} else {
			resp.FailureCount++
		}
	}
	for _, result := range resp.TimeSlotResults {
		if result.Success {
			resp.SuccessCount++
		} else {
			resp.FailureCount++
		}
	}

	log := logger.FromContext(ctx)
	log.Info().
		Str("func", "syncService.ApplyBatch").
		Int("success", resp.SuccessCount).
		Int("failure", resp.FailureCount).
		Msg("batch applied")

	return resp, nil
}

func (s *syncService) applyResource(ctx context.Context, incoming models.Resource) models.PushItemResult {
	stored, err := s.resources.GetByClientID(ctx, incoming.LocalID)
	if errors.Is(err, store.ErrRecordNotFound) {
		serverID, insertErr := s.resources.Insert(ctx, incoming)
		if errors.Is(insertErr, store.ErrRecordExists) {
			// Lost an insert race with another device.
			return conflictResult(incoming.LocalID)
		}
		if insertErr != nil {
			return failureResult(incoming.LocalID, insertErr)
		}
		return models.PushItemResult{ClientID: incoming.LocalID, ServerID: serverID, Success: true}
	}
	if err != nil {
		return failureResult(incoming.LocalID, err)
	}

	if hasNewerStored(stored.SyncMeta, incoming.SyncMeta) {
		return conflictResult(incoming.LocalID)
	}

	if err := s.resources.Update(ctx, incoming); err != nil {
		return failureResult(incoming.LocalID, err)
	}

	return models.PushItemResult{ClientID: incoming.LocalID, ServerID: stored.RemoteID, Success: true}
}

func (s *syncService) applyTimeSlot(ctx context.Context, incoming models.TimeSlot) models.PushItemResult {
	stored, err := s.timeSlots.GetByClientID(ctx, incoming.LocalID)
	if errors.Is(err, store.ErrRecordNotFound) {
		serverID, insertErr := s.timeSlots.Insert(ctx, incoming)
		if errors.Is(insertErr, store.ErrRecordExists) {
			return conflictResult(incoming.LocalID)
		}
		if insertErr != nil {
			return failureResult(incoming.LocalID, insertErr)
		}
		return models.PushItemResult{ClientID: incoming.LocalID, ServerID: serverID, Success: true}
	}
	if err != nil {
		return failureResult(incoming.LocalID, err)
	}

	if hasNewerStored(stored.SyncMeta, incoming.SyncMeta) {
		return conflictResult(incoming.LocalID)
	}

	if err := s.timeSlots.Update(ctx, incoming); err != nil {
		return failureResult(incoming.LocalID, err)
	}

	return models.PushItemResult{ClientID: incoming.LocalID, ServerID: stored.RemoteID, Success: true}
}

// hasNewerStored is the server's conflict rule: the stored record wins when
// its version is not older than the incoming one, or when it was modified
// after the incoming record.
func hasNewerStored(stored, incoming models.SyncMeta) bool {
	return stored.Version >= incoming.Version || stored.ModifiedAt.After(incoming.ModifiedAt)
}

func conflictResult(clientID string) models.PushItemResult {
	return models.PushItemResult{
		ClientID:   clientID,
		Error:      models.ReasonVersionConflict,
		IsConflict: true,
	}
}

func failureResult(clientID string, err error) models.PushItemResult {
	return models.PushItemResult{
		ClientID: clientID,
		Error:    err.Error(),
	}
}

func (s *syncService) ChangesSince(ctx context.Context, since time.Time) (models.BatchRequest, error) {
	resources, err := s.resources.ListChangedSince(ctx, since)
	if err != nil {
		return models.BatchRequest{}, fmt.Errorf("list changed resources: %w", err)
	}

	timeSlots, err := s.timeSlots.ListChangedSince(ctx, since)
	if err != nil {
		return models.BatchRequest{}, fmt.Errorf("list changed time slots: %w", err)
	}

	return models.BatchRequest{Resources: resources, TimeSlots: timeSlots}, nil
}

func (s *syncService) UpsertResource(ctx context.Context, resource models.Resource) (models.Resource, error) {
	stored, err := s.resources.GetByClientID(ctx, resource.LocalID)
	if errors.Is(err, store.ErrRecordNotFound) {
		serverID, insertErr := s.resources.Insert(ctx, resource)
		if errors.Is(insertErr, store.ErrRecordExists) {
			return models.Resource{}, store.ErrVersionConflict
		}
		if insertErr != nil {
			return models.Resource{}, insertErr
		}
		resource.RemoteID = serverID
		return resource, nil
	}
	if err != nil {
		return models.Resource{}, err
	}

	if hasNewerStored(stored.SyncMeta, resource.SyncMeta) {
		return models.Resource{}, store.ErrVersionConflict
	}

	if err := s.resources.Update(ctx, resource); err != nil {
		return models.Resource{}, err
	}

	resource.RemoteID = stored.RemoteID
	return resource, nil
}

func (s *syncService) DeleteResource(ctx context.Context, clientID string) error {
	stored, err := s.resources.GetByClientID(ctx, clientID)
	if err != nil {
		return err
	}

	stored.Deleted = true
	stored.Version++
	stored.ModifiedAt = s.now()

	return s.resources.Update(ctx, stored)
}

func (s *syncService) UpsertTimeSlot(ctx context.Context, slot models.TimeSlot) (models.TimeSlot, error) {
	stored, err := s.timeSlots.GetByClientID(ctx, slot.LocalID)
	if errors.Is(err, store.ErrRecordNotFound) {
		serverID, insertErr := s.timeSlots.Insert(ctx, slot)
		if errors.Is(insertErr, store.ErrRecordExists) {
			return models.TimeSlot{}, store.ErrVersionConflict
		}
		if insertErr != nil {
			return models.TimeSlot{}, insertErr
		}
		slot.RemoteID = serverID
		return slot, nil
	}
	if err != nil {
		return models.TimeSlot{}, err
	}

	if hasNewerStored(stored.SyncMeta, slot.SyncMeta) {
		return models.TimeSlot{}, store.ErrVersionConflict
	}

	if err := s.timeSlots.Update(ctx, slot); err != nil {
		return models.TimeSlot{}, err
	}

	slot.RemoteID = stored.RemoteID
	return slot, nil
}

func (s *syncService) DeleteTimeSlot(ctx context.Context, clientID string) error {
	stored, err := s.timeSlots.GetByClientID(ctx, clientID)
	if err != nil {
		return err
	}

	stored.Deleted = true
	stored.Version++
	stored.ModifiedAt = s.now()

	return s.timeSlots.Update(ctx, stored)
}
