// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
)

type syncJob struct {
	coordinator SyncCoordinator
	backoffStep time.Duration
	maxBackoff  time.Duration
	logger      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a SyncJob that triggers coordinator cycles on a ticker.
// The job is idle until SchedulePeriodic is called.
func NewSyncJob(coordinator SyncCoordinator, workers config.ClientWorkers, logger *logger.Logger) SyncJob {
	step := workers.BackoffStep
	if step <= 0 {
		step = config.DefaultBackoffStep
	}
	maxBackoff := workers.MaxBackoff
	if maxBackoff < step {
		maxBackoff = max(step, config.DefaultMaxBackoff)
	}
	return &syncJob{
		coordinator: coordinator,
		backoffStep: step,
		maxBackoff:  maxBackoff,
		logger:      logger,
	}
}

// SchedulePeriodic stops any previously scheduled job, then launches a
// goroutine that tries a cycle every interval. If interval is zero or
// negative it defaults to config.DefaultSyncInterval. The goroutine exits
// when ctx is cancelled or CancelPeriodic is called.
func (j *syncJob) SchedulePeriodic(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = config.DefaultSyncInterval
	}

	j.CancelPeriodic()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(j.logger.WithContext(ctx))
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	j.logger.Info().Dur("interval", interval).Msg("periodic sync scheduled")

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.tick(jobCtx)
			}
		}
	}()
}

// tick runs one scheduled cycle. A failing cycle is retried with a linearly
// growing delay until it succeeds or the job is cancelled.
func (j *syncJob) tick(ctx context.Context) {
	if !j.coordinator.IsOnline(ctx) {
		j.logger.Debug().Msg("offline, periodic sync skipped")
		return
	}

	err := retry.Do(ctx, linearBackoff(j.backoffStep, j.maxBackoff), func(ctx context.Context) error {
		_, err := j.coordinator.TryRunCycle(ctx)
		switch {
		case err == nil,
			errors.Is(err, ErrSyncAlreadyRunning),
			errors.Is(err, ErrUnresolvedConflict):
			return nil
		case errors.Is(err, context.Canceled):
			return err
		}
		j.logger.Warn().Err(err).Msg("sync cycle failed, will retry")
		return retry.RetryableError(err)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		j.logger.Err(err).Str("func", "syncJob.tick").Msg("periodic sync gave up")
	}
}

// CancelPeriodic cancels the background goroutine and blocks until it has
// exited. Safe to call when nothing is scheduled.
func (j *syncJob) CancelPeriodic() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
		j.logger.Info().Msg("periodic sync cancelled")
	}
	j.wg.Wait()
}

func (j *syncJob) Scheduled() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.cancel != nil
}

// linearBackoff waits step, 2*step, 3*step and so on, never longer than
// maxBackoff, and never gives up.
func linearBackoff(step, maxBackoff time.Duration) retry.Backoff {
	var attempt int64
	next := retry.BackoffFunc(func() (time.Duration, bool) {
		attempt++
		return time.Duration(attempt) * step, false
	})
	return retry.WithCappedDuration(maxBackoff, next)
}
