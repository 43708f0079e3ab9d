// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/mock"
	"github.com/MKhiriev/go-sync-engine/internal/service"
	"github.com/MKhiriev/go-sync-engine/models"
)

// ── Fakes ────────────────────────────────────────────────────────────────────

type fakeServer struct {
	err error
}

func (s *fakeServer) RunServer(ctx context.Context) error {
	if s.err != nil {
		return s.err
	}
	<-ctx.Done()
	return nil
}

type fakeStore struct {
	closed int
}

func (s *fakeStore) Close() error {
	s.closed++
	return nil
}

type appMocks struct {
	coordinator *mock.MockSyncCoordinator
	job         *mock.MockSyncJob
	store       *fakeStore
}

func newTestApp(t *testing.T, srv *fakeServer, events adapter.EventSource) (*App, *appMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &appMocks{
		coordinator: mock.NewMockSyncCoordinator(ctrl),
		job:         mock.NewMockSyncJob(ctrl),
		store:       &fakeStore{},
	}
	services := &service.Services{Coordinator: m.coordinator, SyncJob: m.job}

	app, err := NewApp(services, srv, events, m.store, config.ClientWorkers{SyncInterval: time.Minute}, logger.Nop())
	require.NoError(t, err)
	return app, m
}

// ── NewApp ───────────────────────────────────────────────────────────────────

func TestNewApp_RequiresServices(t *testing.T) {
	_, err := NewApp(nil, &fakeServer{}, nil, nil, config.ClientWorkers{}, logger.Nop())
	assert.ErrorIs(t, err, errNoServices)

	_, err = NewApp(&service.Services{}, &fakeServer{}, nil, nil, config.ClientWorkers{}, logger.Nop())
	assert.ErrorIs(t, err, errNoServices)
}

// ── Startup sync ─────────────────────────────────────────────────────────────

func TestApp_Run_StartupSync(t *testing.T) {
	tests := []struct {
		name    string
		last    int64
		lastErr error
		initial bool
		syncErr error
	}{
		{name: "first launch downloads everything", last: 0, initial: true},
		{name: "cursor present runs ordinary cycle", last: 1500, initial: false},
		{name: "unreadable cursors fall back to initial", lastErr: service.ErrStorage, initial: true},
		{name: "offline at startup still schedules", last: 0, initial: true, syncErr: service.ErrOffline},
		{name: "failed cycle still schedules", last: 10, initial: false, syncErr: service.ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, m := newTestApp(t, &fakeServer{}, nil)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			m.coordinator.EXPECT().LastSyncTimestamp(gomock.Any()).Return(tt.last, tt.lastErr)
			if tt.initial {
				m.coordinator.EXPECT().RunInitialSync(gomock.Any()).Return(models.CycleResult{Pulled: 2}, tt.syncErr)
			} else {
				m.coordinator.EXPECT().RunImmediateSync(gomock.Any()).Return(models.CycleResult{Pushed: 1}, tt.syncErr)
			}
			m.job.EXPECT().SchedulePeriodic(gomock.Any(), time.Minute).Do(func(context.Context, time.Duration) {
				cancel()
			})
			m.job.EXPECT().CancelPeriodic()

			require.NoError(t, app.run(ctx))
			assert.Equal(t, 1, m.store.closed)
		})
	}
}

// ── Failures ─────────────────────────────────────────────────────────────────

func TestApp_Run_ServerFailureStopsDaemon(t *testing.T) {
	serveErr := errors.New("address in use")
	app, m := newTestApp(t, &fakeServer{err: serveErr}, nil)

	m.coordinator.EXPECT().LastSyncTimestamp(gomock.Any()).Return(int64(0), nil).AnyTimes()
	m.coordinator.EXPECT().RunInitialSync(gomock.Any()).Return(models.CycleResult{}, context.Canceled).AnyTimes()
	m.job.EXPECT().SchedulePeriodic(gomock.Any(), gomock.Any()).AnyTimes()
	m.job.EXPECT().CancelPeriodic()

	err := app.run(context.Background())
	assert.ErrorIs(t, err, serveErr)
	assert.Equal(t, 1, m.store.closed)
}

// ── Live events ──────────────────────────────────────────────────────────────

func TestApp_Run_ForwardsLiveEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mock.NewMockEventSource(ctrl)
	app, m := newTestApp(t, &fakeServer{}, events)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sent := models.LiveEvent{Kind: models.LiveDelete, EntityType: models.Message, Record: models.RemoteRecord{ServerID: "srv-9"}}

	m.coordinator.EXPECT().LastSyncTimestamp(gomock.Any()).Return(int64(5), nil)
	m.coordinator.EXPECT().RunImmediateSync(gomock.Any()).Return(models.CycleResult{}, nil)
	scheduled := make(chan struct{})
	m.job.EXPECT().SchedulePeriodic(gomock.Any(), time.Minute).Do(func(context.Context, time.Duration) {
		close(scheduled)
	})
	m.job.EXPECT().CancelPeriodic()

	// the stream ends with a rejected handshake; the daemon keeps running
	events.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, out chan<- models.LiveEvent) error {
		out <- sent
		return adapter.ErrUnauthorized
	})

	var received []models.LiveEvent
	m.coordinator.EXPECT().ConsumeLiveEvents(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, in <-chan models.LiveEvent) error {
		for ev := range in {
			received = append(received, ev)
		}
		<-scheduled
		cancel()
		return nil
	})

	require.NoError(t, app.run(ctx))
	assert.Equal(t, []models.LiveEvent{sent}, received)
}

func TestApp_Run_FatalLiveEventErrorStopsDaemon(t *testing.T) {
	ctrl := gomock.NewController(t)
	events := mock.NewMockEventSource(ctrl)
	app, m := newTestApp(t, &fakeServer{}, events)

	m.coordinator.EXPECT().LastSyncTimestamp(gomock.Any()).Return(int64(5), nil).AnyTimes()
	m.coordinator.EXPECT().RunImmediateSync(gomock.Any()).Return(models.CycleResult{}, nil).AnyTimes()
	m.job.EXPECT().SchedulePeriodic(gomock.Any(), gomock.Any()).AnyTimes()
	m.job.EXPECT().CancelPeriodic()

	events.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, out chan<- models.LiveEvent) error {
		<-ctx.Done()
		return ctx.Err()
	})
	m.coordinator.EXPECT().ConsumeLiveEvents(gomock.Any(), gomock.Any()).Return(service.ErrStorage)

	err := app.run(context.Background())
	assert.ErrorIs(t, err, service.ErrStorage)
}
