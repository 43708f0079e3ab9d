// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/internal/validators"
	"github.com/MKhiriev/go-sync-engine/models"
)

type pullEngine struct {
	store     store.LocalStore
	identity  *identityResolver
	resolver  ConflictResolver
	remote    adapter.RemoteSyncAPI
	validator validators.Validator
	ids       *utils.UUIDGenerator
	now       func() time.Time

	entityTypes []models.EntityType
	timeout     time.Duration
}

// NewPullEngine returns a PullEngine applying server changes of every
// configured entity type to localStore.
func NewPullEngine(localStore store.LocalStore, resolver ConflictResolver, remote adapter.RemoteSyncAPI, workers config.ClientWorkers, requestTimeout time.Duration) PullEngine {
	return &pullEngine{
		store:       localStore,
		identity:    &identityResolver{store: localStore},
		resolver:    resolver,
		remote:      remote,
		validator:   validators.NewSyncValidator(),
		ids:         utils.NewUUIDGenerator(),
		now:         time.Now,
		entityTypes: workers.EntityTypes,
		timeout:     requestTimeout,
	}
}

// applyResult is what applying one server record did locally.
type applyResult struct {
	applied  bool
	conflict *models.ConflictRecord
}

// Pull fetches and applies the change set of each entity type. The cursor
// of a type moves forward only once its whole change set is applied.
func (p *pullEngine) Pull(ctx context.Context, mode models.PullMode) (models.PullReport, error) {
	report := models.PullReport{Failures: make(map[models.EntityType]error)}
	log := logger.FromContext(ctx)

	for _, entityType := range p.entityTypes {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		cursor, hasCursor, err := p.cursor(ctx, entityType)
		if err != nil {
			return report, err
		}

		changes, err := p.fetch(ctx, entityType, mode, cursor, hasCursor)
		if err != nil {
			log.Err(err).
				Str("func", "pullEngine.Pull").
				Str("entity_type", entityType.String()).
				Int64("since", cursor).
				Msg("error fetching changes, cursor left untouched")
			report.Failures[entityType] = err
			continue
		}

		if err = p.applyChangeSet(ctx, entityType, changes, &report); err != nil {
			return report, err
		}

		if !hasCursor || changes.ServerTimestamp > cursor {
			next := models.SyncCursor{EntityType: entityType, LastSyncTimestamp: max(changes.ServerTimestamp, cursor)}
			if err = p.store.SaveCursor(ctx, next); err != nil {
				return report, storageErr("save cursor", err)
			}
		}
	}

	log.Info().
		Str("mode", string(mode)).
		Int("applied", report.Applied).
		Int("conflicts", len(report.Conflicts)).
		Int("failures", len(report.Failures)).
		Msg("pull finished")
	return report, nil
}

func (p *pullEngine) cursor(ctx context.Context, entityType models.EntityType) (int64, bool, error) {
	c, err := p.store.GetCursor(ctx, entityType)
	if errors.Is(err, store.ErrCursorNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, storageErr("get cursor", err)
	}
	return c.LastSyncTimestamp, true, nil
}

func (p *pullEngine) fetch(ctx context.Context, entityType models.EntityType, mode models.PullMode, since int64, hasCursor bool) (models.ChangeSet, error) {
	callCtx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	var (
		changes models.ChangeSet
		err     error
	)
	if mode == models.PullInitial || !hasCursor {
		changes, err = p.remote.PullFull(callCtx, entityType)
	} else {
		changes, err = p.remote.PullChanges(callCtx, entityType, since)
	}
	if err != nil {
		return models.ChangeSet{}, mapAdapterError(entityType, "pull", err)
	}
	return changes, nil
}

func (p *pullEngine) applyChangeSet(ctx context.Context, entityType models.EntityType, changes models.ChangeSet, report *models.PullReport) error {
	upserts := slices.Concat(changes.Created, changes.Updated, changes.Conflicts)
	for _, remote := range upserts {
		res, err := p.applyRemote(ctx, entityType, remote)
		if err != nil {
			return err
		}
		collect(report, res)
	}

	for _, serverID := range changes.DeletedIDs {
		res, err := p.applyDeletion(ctx, entityType, serverID, changes.ServerTimestamp)
		if err != nil {
			return err
		}
		collect(report, res)
	}
	return nil
}

func collect(report *models.PullReport, res applyResult) {
	if res.applied {
		report.Applied++
	}
	if res.conflict != nil {
		report.Conflicts = append(report.Conflicts, *res.conflict)
	}
}

// applyRemote upserts one server record. A locally pending record the server
// changed since its base version becomes a conflict.
func (p *pullEngine) applyRemote(ctx context.Context, entityType models.EntityType, remote models.RemoteRecord) (applyResult, error) {
	if err := p.validator.Validate(ctx, remote); err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "pullEngine.applyRemote").
			Str("entity_type", entityType.String()).
			Str("server_id", remote.ServerID).
			Msg("skipping invalid server record")
		return applyResult{}, nil
	}
	if remote.Deleted {
		return p.applyDeletion(ctx, entityType, remote.ServerID, remote.LastModified)
	}

	var res applyResult
	err := p.store.InTx(ctx, func(tx store.LocalStore) error {
		clientID, found, err := p.identity.resolveIn(ctx, tx, entityType, remote)
		if err != nil {
			return err
		}

		var local models.SyncRecord
		if found {
			local, err = tx.GetRecord(ctx, entityType, clientID)
			if errors.Is(err, store.ErrRecordNotFound) {
				found = false
			} else if err != nil {
				return storageErr("get record", err)
			}
		} else {
			clientID = p.ids.Generate()
		}

		if !found {
			if err = p.identity.bindIn(ctx, tx, entityType, clientID, remote.ServerID); err != nil {
				return err
			}
			res.applied = true
			return storageErr("save record", tx.SaveRecord(ctx, models.SyncRecord{
				ClientID:     clientID,
				ServerID:     remote.ServerID,
				EntityType:   entityType,
				Payload:      remote.Payload,
				Status:       models.StatusSynced,
				LastModified: remote.LastModified,
				BaseVersion:  remote.LastModified,
			}))
		}

		switch local.Status {
		case models.StatusSynced:
			if remote.LastModified <= local.BaseVersion {
				return nil
			}
			local.ServerID = remote.ServerID
			local.Payload = remote.Payload
			local.BaseVersion = remote.LastModified
			local.LastModified = max(local.LastModified, remote.LastModified)
			res.applied = true
			return storageErr("save record", tx.SaveRecord(ctx, local))

		case models.StatusConflict:
			stored, err := tx.GetConflict(ctx, entityType, clientID)
			if errors.Is(err, store.ErrConflictNotFound) {
				res.conflict = p.newConflict(local, remote.ServerID)
				break
			}
			if err != nil {
				return storageErr("get conflict", err)
			}
			stored.ServerPayload = remote.Payload
			stored.ServerLastModified = remote.LastModified
			stored.ServerDeleted = false
			res.conflict = &stored
			return storageErr("save conflict", tx.SaveConflict(ctx, stored))

		default:
			if remote.LastModified <= local.BaseVersion {
				// the server has nothing the pending change was not based on
				return nil
			}
			res.conflict = p.newConflict(local, remote.ServerID)
		}

		res.conflict.ServerPayload = remote.Payload
		res.conflict.ServerLastModified = remote.LastModified
		return nil
	})
	if err != nil {
		return applyResult{}, err
	}

	return p.adjudicate(ctx, res)
}

// applyDeletion removes the record bound to serverID. A record with local
// changes becomes an edit-vs-delete conflict instead.
func (p *pullEngine) applyDeletion(ctx context.Context, entityType models.EntityType, serverID string, deletedAt int64) (applyResult, error) {
	if serverID == "" {
		return applyResult{}, nil
	}

	var res applyResult
	err := p.store.InTx(ctx, func(tx store.LocalStore) error {
		clientID, err := tx.GetClientID(ctx, entityType, serverID)
		if errors.Is(err, store.ErrBindingNotFound) {
			return nil
		}
		if err != nil {
			return storageErr("get client id", err)
		}

		local, err := tx.GetRecord(ctx, entityType, clientID)
		if errors.Is(err, store.ErrRecordNotFound) {
			return storageErr("delete binding", tx.DeleteBinding(ctx, entityType, clientID))
		}
		if err != nil {
			return storageErr("get record", err)
		}

		switch local.Status {
		case models.StatusSynced, models.StatusDeletedPending:
			res.applied = true
			return purge(ctx, tx, entityType, clientID)
		default:
			res.conflict = p.newConflict(local, serverID)
			res.conflict.ServerDeleted = true
			res.conflict.ServerLastModified = deletedAt
			return nil
		}
	})
	if err != nil {
		return applyResult{}, err
	}

	return p.adjudicate(ctx, res)
}

// adjudicate settles a conflict found while applying a record. Conflicts
// already escalated are only reported.
func (p *pullEngine) adjudicate(ctx context.Context, res applyResult) (applyResult, error) {
	if res.conflict == nil || res.conflict.Outcome != "" {
		return res, nil
	}

	outcome, err := p.resolver.Adjudicate(ctx, *res.conflict)
	if err != nil {
		if isFatal(err) {
			return applyResult{}, err
		}
		res.conflict = nil
		return res, nil
	}
	res.conflict.Outcome = outcome
	if outcome == models.OutcomeServerApplied || outcome == models.OutcomeRemoved || outcome == models.OutcomeConverged {
		res.applied = true
	}
	return res, nil
}

func (p *pullEngine) newConflict(local models.SyncRecord, serverID string) *models.ConflictRecord {
	return &models.ConflictRecord{
		EntityType:        local.EntityType,
		ClientID:          local.ClientID,
		ServerID:          serverID,
		LocalPayload:      local.Payload,
		LocalLastModified: local.LastModified,
		DetectedAt:        p.now().UTC(),
	}
}

// ApplyLiveEvent applies one pushed server notification. Live events never
// move the cursor: the next incremental pull covers them again.
func (p *pullEngine) ApplyLiveEvent(ctx context.Context, event models.LiveEvent) error {
	if !slices.Contains(p.entityTypes, event.EntityType) {
		logger.FromContext(ctx).Debug().
			Str("entity_type", event.EntityType.String()).
			Msg("ignoring live event of unsynced entity type")
		return nil
	}

	var err error
	switch event.Kind {
	case models.LiveDelete:
		_, err = p.applyDeletion(ctx, event.EntityType, event.Record.ServerID, event.Record.LastModified)
	case models.LiveUpsert:
		_, err = p.applyRemote(ctx, event.EntityType, event.Record)
	default:
		err = fmt.Errorf("%w: unknown live event kind %q", ErrValidation, event.Kind)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "pullEngine.ApplyLiveEvent").
			Str("entity_type", event.EntityType.String()).
			Str("server_id", event.Record.ServerID).
			Msg("error applying live event")
	}
	return err
}
