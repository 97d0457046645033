package service

import (
	"github.com/avasiliev/timeshelf/internal/config"
	"github.com/avasiliev/timeshelf/internal/logger"
	"github.com/avasiliev/timeshelf/internal/store"
)

// Services groups the server-side services.
type Services struct {
	SyncService SyncService
	AuthService AuthService
}

func NewServices(storages *store.Storages, cfg *config.ServerConfig, logger *logger.Logger) *Services {
	return &Services{
		SyncService: NewSyncService(storages, logger),
		AuthService: NewAuthService(cfg.App, logger),
	}
}
