package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/avasiliev/timeshelf/internal/adapter"
	"github.com/avasiliev/timeshelf/internal/logger"
	"github.com/avasiliev/timeshelf/internal/store"
	"github.com/avasiliev/timeshelf/models"
)

type syncOrchestrator struct {
	resources  store.LocalResourceRepository
	timeSlots  store.LocalTimeSlotRepository
	checkpoint store.CheckpointRepository
	remote     adapter.RemoteClient
	logger     *logger.Logger

	// now is swappable for deterministic tests.
	now func() time.Time

	// mu serializes cycles; a concurrent Sync call returns immediately.
	mu sync.Mutex
}

// NewSyncOrchestrator wires the orchestrator. A nil remote puts it in
// offline-only mode: every cycle is a local no-op success.
func NewSyncOrchestrator(storages *store.ClientStorages, remote adapter.RemoteClient, logger *logger.Logger) SyncOrchestrator {
	return &syncOrchestrator{
		resources:  storages.Resources,
		timeSlots:  storages.TimeSlots,
		checkpoint: storages.Checkpoint,
		remote:     remote,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *syncOrchestrator) Sync(ctx context.Context) models.SyncReport {
	report := models.SyncReport{}

	if s.remote == nil {
		report.Offline = true
		report.Success = true
		report.FinishedAt = s.now()
		s.logger.Debug().Str("func", "syncOrchestrator.Sync").Msg("offline mode, nothing to do")
		return report
	}

	if !s.mu.TryLock() {
		report.Error = ErrSyncInProgress.Error()
		report.FinishedAt = s.now()
		return report
	}
	defer s.mu.Unlock()

	if err := s.remote.HealthCheck(ctx); err != nil {
		report.Unreachable = true
		report.Error = err.Error()
		report.FinishedAt = s.now()
		s.logger.Warn().
			Str("func", "syncOrchestrator.Sync").
			Err(err).
			Msg("server unreachable, cycle aborted, pending records untouched")
		return report
	}

	pushErr := s.push(ctx, &report)
	pullErr := s.pull(ctx, &report)

	report.Success = pushErr == nil && pullErr == nil
	if report.Error == "" {
		switch {
		case pushErr != nil:
			report.Error = pushErr.Error()
		case pullErr != nil:
			report.Error = pullErr.Error()
		}
	}
	report.FinishedAt = s.now()

	s.logger.Info().
		Str("func", "syncOrchestrator.Sync").
		Int("pushed", report.Pushed).
		Int("push_failed", report.PushFailed).
		Int("pulled", report.Pulled).
		Int("conflicts", report.Conflicts).
		Bool("success", report.Success).
		Msg("sync cycle finished")

	return report
}

// push sends one batch of all pending records and applies the per-item
// verdicts. An outright batch failure marks every batched record failed with
// the same reason; the pull phase still runs afterwards.
func (s *syncOrchestrator) push(ctx context.Context, report *models.SyncReport) error {
	batch, err := s.listPending(ctx)
	if err != nil {
		return err
	}
	if batch.Empty() {
		return nil
	}

	resp, err := s.remote.PushBatch(ctx, batch)
	if err != nil {
		report.PushFailed = batch.Size()
		if failErr := s.failBatch(ctx, batch, err.Error()); failErr != nil {
			return failErr
		}
		return fmt.Errorf("push batch: %w", err)
	}

	if err := s.applyResourceResults(ctx, batch.Resources, resp.ResourceResults, report); err != nil {
		return err
	}
	if err := s.applyTimeSlotResults(ctx, batch.TimeSlots, resp.TimeSlotResults, report); err != nil {
		return err
	}

	return nil
}

func (s *syncOrchestrator) listPending(ctx context.Context) (models.BatchRequest, error) {
	resources, err := s.resources.ListPending(ctx)
	if err != nil {
		return models.BatchRequest{}, fmt.Errorf("list pending resources: %w", err)
	}

	timeSlots, err := s.timeSlots.ListPending(ctx)
	if err != nil {
		return models.BatchRequest{}, fmt.Errorf("list pending time slots: %w", err)
	}

	return models.BatchRequest{Resources: resources, TimeSlots: timeSlots}, nil
}

func (s *syncOrchestrator) failBatch(ctx context.Context, batch models.BatchRequest, reason string) error {
	for _, resource := range batch.Resources {
		resource.MarkFailed(reason)
		if err := s.resources.Upsert(ctx, resource); err != nil {
			return fmt.Errorf("mark resource failed: %w", err)
		}
	}

	for _, slot := range batch.TimeSlots {
		slot.MarkFailed(reason)
		if err := s.timeSlots.Upsert(ctx, slot); err != nil {
			return fmt.Errorf("mark time slot failed: %w", err)
		}
	}

	return nil
}

func (s *syncOrchestrator) applyResourceResults(ctx context.Context, pushed []models.Resource, results []models.PushItemResult, report *models.SyncReport) error {
	byID := make(map[string]models.Resource, len(pushed))
	for _, resource := range pushed {
		byID[resource.LocalID] = resource
	}

	for _, result := range results {
		resource, ok := byID[result.ClientID]
		if !ok {
			s.logger.Warn().
				Str("func", "syncOrchestrator.applyResourceResults").
				Str("client_id", result.ClientID).
				Msg("server result for a resource that was not in the batch")
			continue
		}

		applyVerdict(resource.GetSyncMeta(), result, report)

		if err := s.resources.Upsert(ctx, resource); err != nil {
			return fmt.Errorf("apply push result for resource %s: %w", resource.LocalID, err)
		}
	}

	return nil
}

func (s *syncOrchestrator) applyTimeSlotResults(ctx context.Context, pushed []models.TimeSlot, results []models.PushItemResult, report *models.SyncReport) error {
	byID := make(map[string]models.TimeSlot, len(pushed))
	for _, slot := range pushed {
		byID[slot.LocalID] = slot
	}

	for _, result := range results {
		slot, ok := byID[result.ClientID]
		if !ok {
			s.logger.Warn().
				Str("func", "syncOrchestrator.applyTimeSlotResults").
				Str("client_id", result.ClientID).
				Msg("server result for a time slot that was not in the batch")
			continue
		}

		applyVerdict(slot.GetSyncMeta(), result, report)

		if err := s.timeSlots.Upsert(ctx, slot); err != nil {
			return fmt.Errorf("apply push result for time slot %s: %w", slot.LocalID, err)
		}
	}

	return nil
}

func applyVerdict(meta *models.SyncMeta, result models.PushItemResult, report *models.SyncReport) {
	switch {
	case result.Success:
		meta.MarkSynced(result.ServerID)
		report.Pushed++
	case result.IsConflict:
		meta.MarkFailed(models.ReasonVersionConflict)
		report.Conflicts++
		report.PushFailed++
	default:
		meta.MarkFailed(result.Error)
		report.PushFailed++
	}
}

// pull fetches remote changes since the checkpoint and reconciles them:
// unknown records are inserted as Synced, clean local records are overwritten
// by newer remote state, and records with un-pushed local edits are preserved
// (the remote change is dropped and counted as a conflict). After a clean
// pull the checkpoint advances and confirmed deletions are purged.
func (s *syncOrchestrator) pull(ctx context.Context, report *models.SyncReport) error {
	since, err := s.checkpoint.Get(ctx)
	if err != nil {
		return err
	}

	changes, err := s.remote.Pull(ctx, since)
	if err != nil {
		return fmt.Errorf("pull: %w", err)
	}

	for _, remote := range changes.Resources {
		if err := s.applyRemoteResource(ctx, remote, report); err != nil {
			return err
		}
	}

	for _, remote := range changes.TimeSlots {
		if err := s.applyRemoteTimeSlot(ctx, remote, report); err != nil {
			return err
		}
	}

	latest := latestRemoteChange(changes)
	if !latest.IsZero() {
		if err := s.checkpoint.Save(ctx, latest); err != nil {
			return err
		}
	}

	if _, err := s.resources.PurgeSyncedDeletions(ctx); err != nil {
		return err
	}
	if _, err := s.timeSlots.PurgeSyncedDeletions(ctx); err != nil {
		return err
	}

	return nil
}

// findLocalResource locates the local copy of a pulled record: first by
// localId, then by remoteId. A record created on another device arrives with
// that device's localId, so the remoteId is the only key the two copies share.
func (s *syncOrchestrator) findLocalResource(ctx context.Context, remote models.Resource) (models.Resource, error) {
	local, err := s.resources.Get(ctx, remote.LocalID)
	if err == nil || !errors.Is(err, store.ErrRecordNotFound) || remote.RemoteID == "" {
		return local, err
	}
	return s.resources.FindByRemoteID(ctx, remote.RemoteID)
}

func (s *syncOrchestrator) findLocalTimeSlot(ctx context.Context, remote models.TimeSlot) (models.TimeSlot, error) {
	local, err := s.timeSlots.Get(ctx, remote.LocalID)
	if err == nil || !errors.Is(err, store.ErrRecordNotFound) || remote.RemoteID == "" {
		return local, err
	}
	return s.timeSlots.FindByRemoteID(ctx, remote.RemoteID)
}

func (s *syncOrchestrator) applyRemoteResource(ctx context.Context, remote models.Resource, report *models.SyncReport) error {
	local, err := s.findLocalResource(ctx, remote)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			remote.SyncMeta = remote.SyncMeta.AsSynced()
			if err := s.resources.Upsert(ctx, remote); err != nil {
				return fmt.Errorf("insert pulled resource: %w", err)
			}
			report.Pulled++
			return nil
		}
		return err
	}

	switch reconcile(&local.SyncMeta, remote.SyncMeta) {
	case applyRemote:
		updated := remote
		updated.SyncMeta = local.SyncMeta
		updated.SyncMeta.AcceptRemote(remote.SyncMeta)
		if err := s.resources.Upsert(ctx, updated); err != nil {
			return fmt.Errorf("overwrite resource with pulled state: %w", err)
		}
		report.Pulled++
	case keepLocal:
		report.Conflicts++
		s.logger.Warn().
			Str("func", "syncOrchestrator.applyRemoteResource").
			Str("local_id", local.LocalID).
			Msg("pull conflict, local edits preserved")
	case noop:
	}

	return nil
}

func (s *syncOrchestrator) applyRemoteTimeSlot(ctx context.Context, remote models.TimeSlot, report *models.SyncReport) error {
	local, err := s.findLocalTimeSlot(ctx, remote)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			remote.SyncMeta = remote.SyncMeta.AsSynced()
			if err := s.timeSlots.Upsert(ctx, remote); err != nil {
				return fmt.Errorf("insert pulled time slot: %w", err)
			}
			report.Pulled++
			return nil
		}
		return err
	}

	switch reconcile(&local.SyncMeta, remote.SyncMeta) {
	case applyRemote:
		updated := remote
		updated.SyncMeta = local.SyncMeta
		updated.SyncMeta.AcceptRemote(remote.SyncMeta)
		if err := s.timeSlots.Upsert(ctx, updated); err != nil {
			return fmt.Errorf("overwrite time slot with pulled state: %w", err)
		}
		report.Pulled++
	case keepLocal:
		report.Conflicts++
		s.logger.Warn().
			Str("func", "syncOrchestrator.applyRemoteTimeSlot").
			Str("local_id", local.LocalID).
			Msg("pull conflict, local edits preserved")
	case noop:
	}

	return nil
}

type reconcileAction int

const (
	noop reconcileAction = iota
	applyRemote
	keepLocal
)

// reconcile decides how an incoming remote record interacts with the local
// copy: a clean (Synced) local record is overwritten by newer remote state;
// a record with un-pushed local edits wins over any diverging remote state.
func reconcile(local *models.SyncMeta, remote models.SyncMeta) reconcileAction {
	if local.SyncStatus == models.StatusSynced {
		if remote.ModifiedAt.After(local.ModifiedAt) {
			return applyRemote
		}
		return noop
	}

	if remote.ModifiedAt.Equal(local.ModifiedAt) {
		return noop
	}

	return keepLocal
}

// latestRemoteChange returns the newest remote ModifiedAt in the pulled set;
// it becomes the next checkpoint.
func latestRemoteChange(changes models.BatchRequest) time.Time {
	var latest time.Time
	for i := range changes.Resources {
		if m := changes.Resources[i].ModifiedAt; m.After(latest) {
			latest = m
		}
	}
	for i := range changes.TimeSlots {
		if m := changes.TimeSlots[i].ModifiedAt; m.After(latest) {
			latest = m
		}
	}
	return latest
}
