// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/server"
	"github.com/MKhiriev/go-sync-engine/internal/service"
	"github.com/MKhiriev/go-sync-engine/models"
)

const liveEventBuffer = 64

var errNoServices = errors.New("client services are not configured")

// Closer releases the local store when the daemon stops.
type Closer interface {
	Close() error
}

var _ Client = (*App)(nil)

type App struct {
	services *service.Services
	server   server.Server
	events   adapter.EventSource
	store    Closer
	workers  config.ClientWorkers
	logger   *logger.Logger
}

// NewApp assembles the daemon. events may be nil when no live event endpoint
// is configured.
func NewApp(services *service.Services, srv server.Server, events adapter.EventSource, localStore Closer, workers config.ClientWorkers, logger *logger.Logger) (*App, error) {
	if services == nil || services.Coordinator == nil || services.SyncJob == nil || srv == nil {
		return nil, errNoServices
	}

	return &App{
		services: services,
		server:   srv,
		events:   events,
		store:    localStore,
		workers:  workers,
		logger:   logger,
	}, nil
}

// Run blocks until the process receives SIGINT, SIGTERM or SIGQUIT, or a
// component fails.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	defer a.close()

	ctx = a.logger.WithContext(ctx)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.server.RunServer(ctx)
	})

	g.Go(func() error {
		a.initialSync(ctx)
		if ctx.Err() == nil {
			a.services.SyncJob.SchedulePeriodic(ctx, a.workers.SyncInterval)
		}
		return nil
	})

	if a.events != nil {
		events := make(chan models.LiveEvent, liveEventBuffer)

		g.Go(func() error {
			defer close(events)
			err := a.events.Run(ctx, events)
			if err != nil && !errors.Is(err, context.Canceled) {
				// the daemon keeps syncing on its schedule without live events
				a.logger.Err(err).Str("func", "App.run").Msg("live event stream stopped")
			}
			return nil
		})

		g.Go(func() error {
			err := a.services.Coordinator.ConsumeLiveEvents(ctx, events)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	err := g.Wait()
	a.services.SyncJob.CancelPeriodic()

	if err != nil {
		a.logger.Err(err).Str("func", "App.run").Msg("sync daemon stopped with error")
		return err
	}
	a.logger.Info().Msg("sync daemon stopped")
	return nil
}

// initialSync runs a full download on first launch and an ordinary cycle
// otherwise. Failures are logged: the periodic job retries later.
func (a *App) initialSync(ctx context.Context) {
	coordinator := a.services.Coordinator

	last, err := coordinator.LastSyncTimestamp(ctx)
	if err != nil {
		a.logger.Err(err).Str("func", "App.initialSync").Msg("error reading sync cursors")
	}

	var res models.CycleResult
	if err == nil && last > 0 {
		res, err = coordinator.RunImmediateSync(ctx)
	} else {
		res, err = coordinator.RunInitialSync(ctx)
	}

	switch {
	case err == nil:
		a.logger.Info().Int("pushed", res.Pushed).Int("pulled", res.Pulled).Msg("startup sync finished")
	case errors.Is(err, service.ErrOffline):
		a.logger.Warn().Msg("offline at startup, waiting for the periodic sync")
	default:
		a.logger.Err(err).Str("func", "App.initialSync").Msg("startup sync failed")
	}
}

func (a *App) close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		a.logger.Err(err).Str("func", "App.close").Msg("error closing local store")
	}
}
