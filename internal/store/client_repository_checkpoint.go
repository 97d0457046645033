package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avasiliev/timeshelf/internal/logger"
)

type checkpointRepository struct {
	*DB
	logger *logger.Logger
}

func NewCheckpointRepository(db *DB, logger *logger.Logger) CheckpointRepository {
	return &checkpointRepository{
		DB:     db,
		logger: logger,
	}
}

func (c *checkpointRepository) Get(ctx context.Context) (time.Time, error) {
	log := logger.FromContext(ctx)

	var lastSyncedAt time.Time
	row := c.DB.QueryRowContext(ctx, getCheckpoint)
	if err := row.Scan(&lastSyncedAt); err != nil {
		// No checkpoint yet means the client has never completed a pull;
		// callers pull the full remote state in that case.
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		log.Err(err).
			Str("func", "checkpointRepository.Get").
			Msg("failed to read sync checkpoint")
		return time.Time{}, fmt.Errorf("failed to read sync checkpoint: %w", err)
	}

	return lastSyncedAt, nil
}

func (c *checkpointRepository) Save(ctx context.Context, lastSyncedAt time.Time) error {
	log := logger.FromContext(ctx)

	_, err := c.DB.ExecContext(ctx, saveCheckpoint, lastSyncedAt.UTC())
	if err != nil {
		log.Err(err).
			Str("func", "checkpointRepository.Save").
			Time("last_synced_at", lastSyncedAt).
			Msg("failed to save sync checkpoint")
		return fmt.Errorf("failed to save sync checkpoint: %w", err)
	}

	return nil
}
