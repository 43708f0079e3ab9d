// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/models"
)

type syncCoordinator struct {
	store        store.LocalStore
	journal      ChangeJournal
	push         PushEngine
	pull         PullEngine
	connectivity adapter.Connectivity
	entityTypes  []models.EntityType
	ids          *utils.UUIDGenerator
	now          func() time.Time
	logger       *logger.Logger

	// gate guards running and the queued request.
	gate       sync.Mutex
	running    bool
	queued     bool
	queuedMode models.PullMode

	// exec serialises cycles and live events against the store.
	exec sync.Mutex

	resultMu   sync.RWMutex
	lastResult *models.CycleResult
}

// NewSyncCoordinator returns a single-flight SyncCoordinator.
func NewSyncCoordinator(
	localStore store.LocalStore,
	journal ChangeJournal,
	push PushEngine,
	pull PullEngine,
	connectivity adapter.Connectivity,
	entityTypes []models.EntityType,
	logger *logger.Logger,
) SyncCoordinator {
	return &syncCoordinator{
		store:        localStore,
		journal:      journal,
		push:         push,
		pull:         pull,
		connectivity: connectivity,
		entityTypes:  entityTypes,
		ids:          utils.NewUUIDGenerator(),
		now:          time.Now,
		logger:       logger,
	}
}

func (c *syncCoordinator) RunImmediateSync(ctx context.Context) (models.CycleResult, error) {
	return c.runOrQueue(ctx, models.PullIncremental)
}

func (c *syncCoordinator) RunInitialSync(ctx context.Context) (models.CycleResult, error) {
	return c.runOrQueue(ctx, models.PullInitial)
}

func (c *syncCoordinator) runOrQueue(ctx context.Context, mode models.PullMode) (models.CycleResult, error) {
	c.gate.Lock()
	if c.running {
		c.queued = true
		if mode == models.PullInitial || c.queuedMode == "" {
			c.queuedMode = mode
		}
		c.gate.Unlock()
		return models.CycleResult{}, ErrSyncQueued
	}
	c.running = true
	c.gate.Unlock()

	return c.drain(ctx, mode)
}

func (c *syncCoordinator) TryRunCycle(ctx context.Context) (models.CycleResult, error) {
	c.gate.Lock()
	if c.running {
		c.gate.Unlock()
		return models.CycleResult{}, ErrSyncAlreadyRunning
	}
	c.running = true
	c.gate.Unlock()

	return c.drain(ctx, models.PullIncremental)
}

// drain runs cycles until no request is queued behind the current one and
// returns the outcome of the last cycle.
func (c *syncCoordinator) drain(ctx context.Context, mode models.PullMode) (models.CycleResult, error) {
	for {
		res, err := c.runCycle(ctx, mode)

		c.gate.Lock()
		if c.queued && ctx.Err() == nil {
			mode = c.queuedMode
			c.queued = false
			c.queuedMode = ""
			c.gate.Unlock()
			continue
		}
		c.running = false
		c.queued = false
		c.queuedMode = ""
		c.gate.Unlock()

		return res, err
	}
}

// runCycle pushes then pulls. Push failures do not stop the pull, except for
// storage and identity errors, which abort the cycle.
func (c *syncCoordinator) runCycle(ctx context.Context, mode models.PullMode) (models.CycleResult, error) {
	c.exec.Lock()
	defer c.exec.Unlock()

	cycleID := c.ids.Generate()
	cycleLog := &logger.Logger{Logger: c.logger.With().Str("cycle_id", cycleID).Str("mode", string(mode)).Logger()}
	ctx = cycleLog.WithContext(utils.WithCycleID(ctx, cycleID))

	res := models.CycleResult{Mode: mode, StartedAt: c.now().UTC()}
	if c.connectivity.IsOnline(ctx) {
		c.execute(ctx, mode, &res)
	} else {
		res.Err = ErrOffline
	}
	res.FinishedAt = c.now().UTC()
	c.storeResult(res)

	event := cycleLog.Info()
	if res.Err != nil {
		event = cycleLog.Warn().Err(res.Err)
	}
	event.
		Int("pushed", res.Pushed).
		Int("pulled", res.Pulled).
		Int("conflicts", len(res.Conflicts)).
		Int("failed", len(res.Failed)).
		Dur("took", res.FinishedAt.Sub(res.StartedAt)).
		Msg("sync cycle finished")

	if res.Err != nil {
		return res, res.Err
	}
	if unresolved := res.Unresolved(); len(unresolved) > 0 {
		return res, &UnresolvedConflictError{Conflicts: unresolved}
	}
	return res, nil
}

func (c *syncCoordinator) execute(ctx context.Context, mode models.PullMode, res *models.CycleResult) {
	var errs []error

	pushReport, err := c.push.PushAll(ctx)
	res.Pushed = len(pushReport.Succeeded)
	res.Failed = pushReport.Failed
	res.Conflicts = append(res.Conflicts, pushReport.Conflicted...)
	for _, entityType := range c.entityTypes {
		if e, ok := pushReport.TransportErrors[entityType]; ok {
			errs = append(errs, e)
		}
	}
	if err != nil {
		errs = append(errs, err)
	}

	if !isFatal(err) && ctx.Err() == nil {
		pullReport, err := c.pull.Pull(ctx, mode)
		res.Pulled = pullReport.Applied
		res.Conflicts = append(res.Conflicts, pullReport.Conflicts...)
		for _, entityType := range c.entityTypes {
			if e, ok := pullReport.Failures[entityType]; ok {
				errs = append(errs, e)
			}
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	res.Err = errors.Join(errs...)
}

func (c *syncCoordinator) storeResult(res models.CycleResult) {
	c.resultMu.Lock()
	defer c.resultMu.Unlock()
	c.lastResult = &res
}

func (c *syncCoordinator) LastResult() (models.CycleResult, bool) {
	c.resultMu.RLock()
	defer c.resultMu.RUnlock()
	if c.lastResult == nil {
		return models.CycleResult{}, false
	}
	return *c.lastResult, true
}

func (c *syncCoordinator) HasPendingChanges(ctx context.Context) (bool, error) {
	return c.journal.HasPendingChanges(ctx)
}

// LastSyncTimestamp returns the oldest cursor among the synced entity types,
// which is the point up to which every type is known to be fresh. It is zero
// until every type has completed a pull.
func (c *syncCoordinator) LastSyncTimestamp(ctx context.Context) (int64, error) {
	var oldest int64
	for i, entityType := range c.entityTypes {
		cursor, err := c.store.GetCursor(ctx, entityType)
		if errors.Is(err, store.ErrCursorNotFound) {
			return 0, nil
		}
		if err != nil {
			return 0, storageErr("get cursor", err)
		}
		if i == 0 || cursor.LastSyncTimestamp < oldest {
			oldest = cursor.LastSyncTimestamp
		}
	}
	return oldest, nil
}

func (c *syncCoordinator) IsOnline(ctx context.Context) bool {
	return c.connectivity.IsOnline(ctx)
}

// ConsumeLiveEvents applies events in arrival order. Each event waits for a
// running cycle to finish, so a slow consumer pushes back on the producer.
func (c *syncCoordinator) ConsumeLiveEvents(ctx context.Context, events <-chan models.LiveEvent) error {
	log := c.logger.GetChildLogger()
	ctx = log.WithContext(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			c.exec.Lock()
			err := c.pull.ApplyLiveEvent(ctx, event)
			c.exec.Unlock()
			if isFatal(err) {
				return err
			}
		}
	}
}
