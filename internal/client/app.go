package client

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/avasiliev/timeshelf/internal/adapter"
	"github.com/avasiliev/timeshelf/internal/config"
	"github.com/avasiliev/timeshelf/internal/logger"
	"github.com/avasiliev/timeshelf/internal/service"
	"github.com/avasiliev/timeshelf/internal/store"
	"github.com/avasiliev/timeshelf/internal/workers"
)

type App struct {
	cfg      *config.ClientConfig
	services *service.ClientServices
	workers  *workers.Workers
	logger   *logger.Logger
}

func NewApp(cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	var remote adapter.RemoteClient
	if cfg.Offline() {
		logger.Info().Msg("no endpoint configured, running in offline-only mode")
	} else {
		remote = adapter.NewHTTPRemoteClient(adapter.HTTPClientConfig{
			BaseURL:          cfg.Adapter.BaseURL,
			DeviceToken:      cfg.Adapter.DeviceToken,
			Timeout:          cfg.Adapter.RequestTimeout,
			MaxRetryAttempts: cfg.Adapter.MaxRetryAttempts,
			InitialBackoff:   cfg.Adapter.InitialBackoff,
		})
	}

	svcs := service.NewClientServices(storages, remote, logger)

	return &App{
		cfg:      cfg,
		services: svcs,
		workers: workers.NewWorkers(
			workers.NewSyncWorker(svcs.Orchestrator, cfg.Workers.SyncInterval, logger),
		),
		logger: logger,
	}, nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// One cycle right away so a freshly started client converges without
	// waiting for the first tick.
	report := a.services.Orchestrator.Sync(ctx)
	workers.LogSyncReport(a.logger, report, "startup sync finished")

	a.workers.Run()
	defer a.workers.Stop()

	<-ctx.Done()
	a.logger.Info().Msg("client shutting down")

	return nil
}
