// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the offline-first sync engine: the change
// journal, identity resolution, push and pull engines, conflict resolution
// and the sync coordinator that drives them.
//
// Every component talks to the shared [store.LocalStore] and, for network
// access, to [adapter.RemoteSyncAPI]. Raw adapter errors never leave this
// package: they are translated into the taxonomy declared in errors.go.
package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MKhiriev/go-sync-engine/models"
)

// ChangeJournal records local mutations and tracks their push state.
type ChangeJournal interface {
	// RecordMutation persists one create, update or delete issued by the
	// domain layer and returns the resulting record. A delete of a record
	// that never reached the server purges it and returns a record with an
	// empty Status.
	RecordMutation(ctx context.Context, entityType models.EntityType, clientID string, action models.Action, payload json.RawMessage) (models.SyncRecord, error)

	// PendingMutations lists pending and deleted_pending records of the type
	// in LastModified order.
	PendingMutations(ctx context.Context, entityType models.EntityType) ([]models.SyncRecord, error)

	// MarkPushed applies a server acceptance of pushed.
	MarkPushed(ctx context.Context, pushed models.SyncRecord, serverID string, serverLastModified int64) error

	MarkConflict(ctx context.Context, entityType models.EntityType, clientID string) error

	// MarkRejected flags the record non-retryable until it is edited again.
	MarkRejected(ctx context.Context, entityType models.EntityType, clientID, reason string) error

	HasPendingChanges(ctx context.Context) (bool, error)
	Record(ctx context.Context, entityType models.EntityType, clientID string) (models.SyncRecord, error)
}

// IdentityResolver maintains the bijection between client and server ids.
type IdentityResolver interface {
	// Bind records clientID ↔ serverID. Re-binding the same pair is a no-op.
	Bind(ctx context.Context, entityType models.EntityType, clientID, serverID string) error

	// ResolveIncoming maps a server record onto a local client id. found is
	// false when the record is new to this device.
	ResolveIncoming(ctx context.Context, entityType models.EntityType, remote models.RemoteRecord) (clientID string, found bool, err error)

	// Fingerprint returns a stable content hash of a payload.
	Fingerprint(payload json.RawMessage) (string, error)
}

// ConflictResolver settles divergences between local and server state.
type ConflictResolver interface {
	// Adjudicate applies the deterministic resolution rules to c.
	Adjudicate(ctx context.Context, c models.ConflictRecord) (models.ConflictOutcome, error)

	// Resolve applies an explicit choice to an escalated conflict.
	Resolve(ctx context.Context, entityType models.EntityType, clientID string, resolution models.Resolution, merged json.RawMessage) (models.SyncRecord, error)

	PendingConflicts(ctx context.Context) ([]models.ConflictRecord, error)
	RegisterMerge(entityType models.EntityType, fn models.MergeFunc)
}

// PushEngine sends the pending journal to the server.
type PushEngine interface {
	PushAll(ctx context.Context) (models.PushReport, error)
}

// PullEngine fetches and applies server changes.
type PullEngine interface {
	Pull(ctx context.Context, mode models.PullMode) (models.PullReport, error)
	ApplyLiveEvent(ctx context.Context, event models.LiveEvent) error
}

// SyncCoordinator runs push-pull cycles and owns the single-flight gate.
type SyncCoordinator interface {
	// RunImmediateSync runs a cycle now. When a cycle is already running the
	// request is queued behind it and ErrSyncQueued is returned. The caller
	// that runs the cycle also runs the queued ones and gets the result of the
	// last of them: it describes the state after all the work, and failures of
	// the earlier cycles are only logged.
	RunImmediateSync(ctx context.Context) (models.CycleResult, error)

	// RunInitialSync runs a cycle whose pull ignores stored cursors.
	RunInitialSync(ctx context.Context) (models.CycleResult, error)

	// TryRunCycle runs a cycle unless one is already running, in which case
	// it returns ErrSyncAlreadyRunning without queueing.
	TryRunCycle(ctx context.Context) (models.CycleResult, error)

	HasPendingChanges(ctx context.Context) (bool, error)
	LastSyncTimestamp(ctx context.Context) (int64, error)
	LastResult() (models.CycleResult, bool)
	IsOnline(ctx context.Context) bool

	// ConsumeLiveEvents applies events until the channel closes or ctx is
	// cancelled.
	ConsumeLiveEvents(ctx context.Context, events <-chan models.LiveEvent) error
}

// SyncJob schedules periodic sync cycles with bounded backoff.
type SyncJob interface {
	SchedulePeriodic(ctx context.Context, interval time.Duration)
	CancelPeriodic()
	Scheduled() bool
}
