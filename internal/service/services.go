// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/store"
)

// Services bundles the sync engine components sharing one local store.
type Services struct {
	Journal     ChangeJournal
	Identity    IdentityResolver
	Resolver    ConflictResolver
	Push        PushEngine
	Pull        PullEngine
	Coordinator SyncCoordinator
	SyncJob     SyncJob
}

func NewServices(localStore store.LocalStore, remote adapter.RemoteSyncAPI, connectivity adapter.Connectivity, cfg *config.ClientConfig, logger *logger.Logger) *Services {
	journal := NewChangeJournal(localStore)
	resolver := NewConflictResolver(localStore, cfg.Conflicts)
	push := NewPushEngine(journal, resolver, remote, cfg.Workers, cfg.Adapter.RequestTimeout)
	pull := NewPullEngine(localStore, resolver, remote, cfg.Workers, cfg.Adapter.RequestTimeout)
	coordinator := NewSyncCoordinator(localStore, journal, push, pull, connectivity, cfg.Workers.EntityTypes, logger)

	return &Services{
		Journal:     journal,
		Identity:    NewIdentityResolver(localStore),
		Resolver:    resolver,
		Push:        push,
		Pull:        pull,
		Coordinator: coordinator,
		SyncJob:     NewSyncJob(coordinator, cfg.Workers, logger),
	}
}
