package store

import (
	"context"
	"fmt"

	"github.com/avasiliev/timeshelf/internal/config"
	"github.com/avasiliev/timeshelf/internal/logger"
)

// ClientStorages groups all client-side storage repositories into a single
// value that can be passed around the service layer.
type ClientStorages struct {
	// Resources is the SQLite-backed repository for saved resources.
	Resources LocalResourceRepository

	// TimeSlots is the SQLite-backed repository for recurring time slots.
	TimeSlots LocalTimeSlotRepository

	// Checkpoint persists the last fully applied pull timestamp.
	Checkpoint CheckpointRepository
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.MigrateClient].
//  3. Constructs and returns a [ClientStorages] value wired to fresh
//     repositories.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(cfg config.Storage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.MigrateClient(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Resources:  NewLocalResourceRepository(db, logger),
		TimeSlots:  NewLocalTimeSlotRepository(db, logger),
		Checkpoint: NewCheckpointRepository(db, logger),
	}, nil
}
