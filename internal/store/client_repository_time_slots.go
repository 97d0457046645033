package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avasiliev/timeshelf/internal/logger"
	"github.com/avasiliev/timeshelf/models"
)

type localTimeSlotRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocalTimeSlotRepository(db *DB, logger *logger.Logger) LocalTimeSlotRepository {
	return &localTimeSlotRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localTimeSlotRepository) Upsert(ctx context.Context, slot models.TimeSlot) error {
	log := logger.FromContext(ctx)

	// Timestamps go in as UTC; SQLite compares TEXT timestamps
	// lexicographically, which only matches chronological order for a single
	// zone offset.
	_, err := l.DB.ExecContext(ctx, upsertTimeSlot,
		slot.LocalID,
		slot.RemoteID,
		slot.Version,
		slot.ModifiedAt.UTC(),
		slot.Deleted,
		slot.SyncStatus,
		slot.RetryCount,
		slot.LastError,
		slot.Label,
		slot.Weekday,
		slot.StartMinute,
		slot.DurationMinutes,
		slot.CreatedAt.UTC(),
	)
	if err != nil {
		log.Err(err).
			Str("func", "localTimeSlotRepository.Upsert").
			Str("local_id", slot.LocalID).
			Msg("failed to execute upsert for time slot")
		return fmt.Errorf("failed to save time slot (local_id=%s): %w", slot.LocalID, err)
	}

	return nil
}

func (l *localTimeSlotRepository) Get(ctx context.Context, localID string) (models.TimeSlot, error) {
	return l.queryOne(ctx, "localTimeSlotRepository.Get", getTimeSlot, localID)
}

func (l *localTimeSlotRepository) FindByRemoteID(ctx context.Context, remoteID string) (models.TimeSlot, error) {
	return l.queryOne(ctx, "localTimeSlotRepository.FindByRemoteID", findTimeSlotByRemoteID, remoteID)
}

func (l *localTimeSlotRepository) List(ctx context.Context) ([]models.TimeSlot, error) {
	return l.queryMany(ctx, "localTimeSlotRepository.List", listTimeSlots)
}

func (l *localTimeSlotRepository) ListPending(ctx context.Context) ([]models.TimeSlot, error) {
	return l.queryMany(ctx, "localTimeSlotRepository.ListPending", listPendingTimeSlots)
}

func (l *localTimeSlotRepository) ResetFailed(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, resetFailedTimeSlots, now.UTC())
	if err != nil {
		log.Err(err).
			Str("func", "localTimeSlotRepository.ResetFailed").
			Msg("failed to reset failed time slots")
		return 0, fmt.Errorf("failed to reset failed time slots: %w", err)
	}

	return result.RowsAffected()
}

func (l *localTimeSlotRepository) PurgeSyncedDeletions(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, purgeSyncedTimeSlotDeletions)
	if err != nil {
		log.Err(err).
			Str("func", "localTimeSlotRepository.PurgeSyncedDeletions").
			Msg("failed to purge synced time slot deletions")
		return 0, fmt.Errorf("failed to purge synced time slot deletions: %w", err)
	}

	return result.RowsAffected()
}

func (l *localTimeSlotRepository) queryOne(ctx context.Context, funcName, query string, arg any) (models.TimeSlot, error) {
	log := logger.FromContext(ctx)

	row := l.DB.QueryRowContext(ctx, query, arg)

	slot, scanErr := scanTimeSlot(row.Scan)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.TimeSlot{}, ErrRecordNotFound
		}
		log.Err(scanErr).
			Str("func", funcName).
			Msg("failed to scan time slot row")
		return models.TimeSlot{}, fmt.Errorf("failed to scan time slot row: %w", scanErr)
	}

	return slot, nil
}

func (l *localTimeSlotRepository) queryMany(ctx context.Context, funcName, query string) ([]models.TimeSlot, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, query)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Msg("failed to execute query for time slots")
		return nil, fmt.Errorf("failed to query time slots: %w", err)
	}
	defer rows.Close()

	var slots []models.TimeSlot

	for rows.Next() {
		slot, scanErr := scanTimeSlot(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", funcName).
				Msg("failed to scan time slot row")
			return nil, fmt.Errorf("failed to scan time slot row: %w", scanErr)
		}

		slots = append(slots, slot)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", funcName).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating time slot rows: %w", rowsErr)
	}

	return slots, nil
}

func scanTimeSlot(scan func(dest ...any) error) (models.TimeSlot, error) {
	var slot models.TimeSlot
	err := scan(
		&slot.LocalID,
		&slot.RemoteID,
		&slot.Version,
		&slot.ModifiedAt,
		&slot.Deleted,
		&slot.SyncStatus,
		&slot.RetryCount,
		&slot.LastError,
		&slot.Label,
		&slot.Weekday,
		&slot.StartMinute,
		&slot.DurationMinutes,
		&slot.CreatedAt,
	)
	return slot, err
}
