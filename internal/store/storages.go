package store

import (
	"context"
	"fmt"

	"github.com/avasiliev/timeshelf/internal/config"
	"github.com/avasiliev/timeshelf/internal/logger"
)

// Storages groups the server-side repositories.
type Storages struct {
	Resources SyncedResourceRepository
	TimeSlots SyncedTimeSlotRepository
}

// NewStorages connects to PostgreSQL, runs pending migrations and wires the
// server repositories.
func NewStorages(cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.MigrateServer(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		Resources: NewSyncedResourceRepository(db, logger),
		TimeSlots: NewSyncedTimeSlotRepository(db, logger),
	}, nil
}
