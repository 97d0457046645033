package service

import (
	"github.com/avasiliev/timeshelf/internal/adapter"
	"github.com/avasiliev/timeshelf/internal/logger"
	"github.com/avasiliev/timeshelf/internal/store"
)

// ClientServices groups the client-side services.
type ClientServices struct {
	Tracker      ChangeTracker
	Orchestrator SyncOrchestrator
}

// NewClientServices wires the client service layer. remote may be nil, which
// puts the orchestrator in offline-only mode.
func NewClientServices(storages *store.ClientStorages, remote adapter.RemoteClient, logger *logger.Logger) *ClientServices {
	return &ClientServices{
		Tracker:      NewChangeTracker(storages, logger),
		Orchestrator: NewSyncOrchestrator(storages, remote, logger),
	}
}
