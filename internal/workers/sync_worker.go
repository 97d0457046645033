// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Andrei Vasiliev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/avasiliev/timeshelf/internal/logger"
	"github.com/avasiliev/timeshelf/internal/service"
)

// syncWorker runs a full sync cycle on a fixed interval. Overlapping cycles
// are impossible: the orchestrator is single-flight, and the worker itself
// runs cycles sequentially from one goroutine.
type syncWorker struct {
	orchestrator service.SyncOrchestrator
	interval     time.Duration
	logger       *logger.Logger

	stop chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

func NewSyncWorker(orchestrator service.SyncOrchestrator, interval time.Duration, logger *logger.Logger) Worker {
	return &syncWorker{
		orchestrator: orchestrator,
		interval:     interval,
		logger:       logger,
		stop:         make(chan struct{}),
	}
}

func (w *syncWorker) Run() {
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.logger.Info().
			Str("role", "worker").
			Dur("interval", w.interval).
			Msg("periodic sync worker started")

		for {
			select {
			case <-w.stop:
				w.logger.Info().Str("role", "worker").Msg("periodic sync worker stopped")
				return
			case <-ticker.C:
				w.cycle()
			}
		}
	}()
}

func (w *syncWorker) Stop() {
	w.once.Do(func() { close(w.stop) })
	w.wg.Wait()
}

func (w *syncWorker) cycle() {
	report := w.orchestrator.Sync(context.Background())
	LogSyncReport(w.logger, report, "scheduled sync cycle finished")
}
