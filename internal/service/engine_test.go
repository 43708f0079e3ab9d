// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/mock"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/models"
)

// ── helpers ───────────────────────────────────────────────────────────────────

// testNow is the frozen clock of every component under test: the first local
// mutation of a fresh record gets LastModified 1000.
func testNow() time.Time { return time.UnixMilli(1_000) }

type testEngine struct {
	store    *store.MemoryStore
	remote   *mock.MockRemoteSyncAPI
	online   *mock.MockConnectivity
	journal  *changeJournal
	identity *identityResolver
	resolver *conflictResolver
	push     *pushEngine
	pull     *pullEngine
	coord    *syncCoordinator
}

func newTestEngine(t *testing.T, conflicts config.ClientConflicts, types ...models.EntityType) *testEngine {
	t.Helper()
	if len(types) == 0 {
		types = []models.EntityType{models.PersonalTask}
	}

	ctrl := gomock.NewController(t)
	memStore, err := store.NewMemoryStore("")
	require.NoError(t, err)

	remote := mock.NewMockRemoteSyncAPI(ctrl)
	online := mock.NewMockConnectivity(ctrl)
	workers := config.ClientWorkers{PushBatchSize: 10, EntityTypes: types}

	journal := NewChangeJournal(memStore).(*changeJournal)
	journal.now = testNow
	resolver := NewConflictResolver(memStore, conflicts).(*conflictResolver)
	resolver.now = testNow
	push := NewPushEngine(journal, resolver, remote, workers, time.Second).(*pushEngine)
	push.now = testNow
	pull := NewPullEngine(memStore, resolver, remote, workers, time.Second).(*pullEngine)
	pull.now = testNow
	coord := NewSyncCoordinator(memStore, journal, push, pull, online, types, logger.Nop()).(*syncCoordinator)

	return &testEngine{
		store:    memStore,
		remote:   remote,
		online:   online,
		journal:  journal,
		identity: &identityResolver{store: memStore},
		resolver: resolver,
		push:     push,
		pull:     pull,
		coord:    coord,
	}
}

// seed stores rec as is and binds its server id when it has one.
func (e *testEngine) seed(t *testing.T, rec models.SyncRecord) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.store.SaveRecord(ctx, rec))
	if rec.ServerID != "" {
		require.NoError(t, e.store.SaveBinding(ctx, rec.EntityType, rec.ClientID, rec.ServerID))
	}
}

func (e *testEngine) record(t *testing.T, entityType models.EntityType, clientID string) models.SyncRecord {
	t.Helper()
	rec, err := e.store.GetRecord(context.Background(), entityType, clientID)
	require.NoError(t, err)
	return rec
}

func (e *testEngine) cursor(t *testing.T, entityType models.EntityType) int64 {
	t.Helper()
	c, err := e.store.GetCursor(context.Background(), entityType)
	require.NoError(t, err)
	return c.LastSyncTimestamp
}

func payload(title string) json.RawMessage {
	return json.RawMessage(`{"title":"` + title + `"}`)
}

func syncedTask(clientID, serverID string, lastModified int64) models.SyncRecord {
	return models.SyncRecord{
		ClientID:     clientID,
		ServerID:     serverID,
		EntityType:   models.PersonalTask,
		Payload:      payload(clientID),
		Status:       models.StatusSynced,
		LastModified: lastModified,
		BaseVersion:  lastModified,
	}
}

func pendingUpdate(clientID, serverID string, lastModified, baseVersion int64, body json.RawMessage) models.SyncRecord {
	return models.SyncRecord{
		ClientID:     clientID,
		ServerID:     serverID,
		EntityType:   models.PersonalTask,
		Payload:      body,
		Status:       models.StatusPending,
		Action:       models.ActionUpdate,
		LastModified: lastModified,
		BaseVersion:  baseVersion,
	}
}
