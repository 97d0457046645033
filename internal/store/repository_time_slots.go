package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/avasiliev/timeshelf/internal/logger"
	"github.com/avasiliev/timeshelf/models"
)

var timeSlotColumns = []string{
	"server_id",
	"client_id",
	"version",
	"modified_at",
	"deleted",
	"label",
	"weekday",
	"start_minute",
	"duration_minutes",
	"created_at",
}

type syncedTimeSlotRepository struct {
	*DB
	logger *logger.Logger
}

func NewSyncedTimeSlotRepository(db *DB, logger *logger.Logger) SyncedTimeSlotRepository {
	return &syncedTimeSlotRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *syncedTimeSlotRepository) GetByClientID(ctx context.Context, clientID string) (models.TimeSlot, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Select(timeSlotColumns...).
		From("time_slots").
		Where(sq.Eq{"client_id": clientID}).
		ToSql()
	if err != nil {
		return models.TimeSlot{}, fmt.Errorf("failed to build time slot select: %w", err)
	}

	row := s.DB.QueryRowContext(ctx, query, args...)

	slot, scanErr := scanSyncedTimeSlot(row.Scan)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.TimeSlot{}, ErrRecordNotFound
		}
		log.Err(scanErr).
			Str("func", "syncedTimeSlotRepository.GetByClientID").
			Str("client_id", clientID).
			Msg("failed to scan time slot row")
		return models.TimeSlot{}, fmt.Errorf("failed to scan time slot row: %w", scanErr)
	}

	return slot, nil
}

func (s *syncedTimeSlotRepository) Insert(ctx context.Context, slot models.TimeSlot) (string, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Insert("time_slots").
		Columns("client_id", "version", "modified_at", "deleted", "label", "weekday", "start_minute", "duration_minutes", "created_at").
		Values(
			slot.LocalID,
			slot.Version,
			slot.ModifiedAt,
			slot.Deleted,
			slot.Label,
			slot.Weekday,
			slot.StartMinute,
			slot.DurationMinutes,
			slot.CreatedAt,
		).
		Suffix("RETURNING server_id").
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build time slot insert: %w", err)
	}

	var serverID string
	if err := s.DB.QueryRowContext(ctx, query, args...).Scan(&serverID); err != nil {
		if IsUniqueViolation(err) {
			return "", ErrRecordExists
		}
		log.Err(err).
			Str("func", "syncedTimeSlotRepository.Insert").
			Str("client_id", slot.LocalID).
			Bool("retryable", s.errorClassificator.Classify(err) == Retryable).
			Msg("failed to insert time slot")
		return "", fmt.Errorf("failed to insert time slot: %w", err)
	}

	return serverID, nil
}

func (s *syncedTimeSlotRepository) Update(ctx context.Context, slot models.TimeSlot) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Update("time_slots").
		Set("version", slot.Version).
		Set("modified_at", slot.ModifiedAt).
		Set("deleted", slot.Deleted).
		Set("label", slot.Label).
		Set("weekday", slot.Weekday).
		Set("start_minute", slot.StartMinute).
		Set("duration_minutes", slot.DurationMinutes).
		Where(sq.Eq{"client_id": slot.LocalID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build time slot update: %w", err)
	}

	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "syncedTimeSlotRepository.Update").
			Str("client_id", slot.LocalID).
			Bool("retryable", s.errorClassificator.Classify(err) == Retryable).
			Msg("failed to update time slot")
		return fmt.Errorf("failed to update time slot: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func (s *syncedTimeSlotRepository) ListChangedSince(ctx context.Context, since time.Time) ([]models.TimeSlot, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Select(timeSlotColumns...).
		From("time_slots").
		Where(sq.Gt{"modified_at": since}).
		OrderBy("modified_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build time slot select: %w", err)
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "syncedTimeSlotRepository.ListChangedSince").
			Time("since", since).
			Msg("failed to query changed time slots")
		return nil, fmt.Errorf("failed to query changed time slots: %w", err)
	}
	defer rows.Close()

	var slots []models.TimeSlot

	for rows.Next() {
		slot, scanErr := scanSyncedTimeSlot(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "syncedTimeSlotRepository.ListChangedSince").
				Msg("failed to scan time slot row")
			return nil, fmt.Errorf("failed to scan time slot row: %w", scanErr)
		}

		slots = append(slots, slot)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "syncedTimeSlotRepository.ListChangedSince").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating time slot rows: %w", rowsErr)
	}

	return slots, nil
}

func scanSyncedTimeSlot(scan func(dest ...any) error) (models.TimeSlot, error) {
	var slot models.TimeSlot
	err := scan(
		&slot.RemoteID,
		&slot.LocalID,
		&slot.Version,
		&slot.ModifiedAt,
		&slot.Deleted,
		&slot.Label,
		&slot.Weekday,
		&slot.StartMinute,
		&slot.DurationMinutes,
		&slot.CreatedAt,
	)
	return slot, err
}
