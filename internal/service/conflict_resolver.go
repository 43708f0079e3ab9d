// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/internal/validators"
	"github.com/MKhiriev/go-sync-engine/models"
)

type conflictResolver struct {
	store     store.LocalStore
	identity  *identityResolver
	validator validators.Validator
	now       func() time.Time

	defaultPolicy models.ConflictPolicy
	overrides     map[models.EntityType]models.ConflictPolicy
	undelete      map[models.EntityType]bool

	mu     sync.RWMutex
	merges map[models.EntityType]models.MergeFunc
}

// NewConflictResolver returns a last-write-wins ConflictResolver. Ties are
// settled by the policy configured for the entity type.
func NewConflictResolver(localStore store.LocalStore, cfg config.ClientConflicts) ConflictResolver {
	r := &conflictResolver{
		store:         localStore,
		identity:      &identityResolver{store: localStore},
		validator:     validators.NewSyncValidator(),
		now:           time.Now,
		defaultPolicy: cfg.DefaultPolicy,
		overrides:     make(map[models.EntityType]models.ConflictPolicy, len(cfg.Overrides)),
		undelete:      make(map[models.EntityType]bool, len(cfg.UndeleteTypes)),
		merges:        make(map[models.EntityType]models.MergeFunc),
	}
	if !r.defaultPolicy.Valid() {
		r.defaultPolicy = models.PolicyServerWins
	}
	for entityType, policy := range cfg.Overrides {
		r.overrides[entityType] = policy
	}
	for _, entityType := range cfg.UndeleteTypes {
		r.undelete[entityType] = true
	}
	return r
}

func (r *conflictResolver) RegisterMerge(entityType models.EntityType, fn models.MergeFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fn == nil {
		delete(r.merges, entityType)
		return
	}
	r.merges[entityType] = fn
}

func (r *conflictResolver) mergeFor(entityType models.EntityType) models.MergeFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.merges[entityType]
}

func (r *conflictResolver) policyFor(entityType models.EntityType) models.ConflictPolicy {
	if p, ok := r.overrides[entityType]; ok {
		return p
	}
	return r.defaultPolicy
}

func (r *conflictResolver) Adjudicate(ctx context.Context, c models.ConflictRecord) (models.ConflictOutcome, error) {
	var outcome models.ConflictOutcome
	err := r.store.InTx(ctx, func(tx store.LocalStore) error {
		var err error
		outcome, err = r.adjudicateIn(ctx, tx, c)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "conflictResolver.Adjudicate").
			Str("entity_type", c.EntityType.String()).
			Str("client_id", c.ClientID).
			Msg("error adjudicating conflict")
		return "", err
	}

	logger.FromContext(ctx).Info().
		Str("entity_type", c.EntityType.String()).
		Str("client_id", c.ClientID).
		Str("outcome", string(outcome)).
		Msg("conflict adjudicated")
	return outcome, nil
}

func (r *conflictResolver) adjudicateIn(ctx context.Context, tx store.LocalStore, c models.ConflictRecord) (models.ConflictOutcome, error) {
	local, err := tx.GetRecord(ctx, c.EntityType, c.ClientID)
	if errors.Is(err, store.ErrRecordNotFound) {
		if c.ServerDeleted {
			return models.OutcomeRemoved, nil
		}
		// purged locally in the meantime: keep what the server has
		local = models.SyncRecord{ClientID: c.ClientID, EntityType: c.EntityType}
		return models.OutcomeServerApplied, r.applyServer(ctx, tx, local, c)
	}
	if err != nil {
		return "", storageErr("get record", err)
	}

	// the stored record is the freshest local side
	c.LocalPayload = local.Payload
	c.LocalLastModified = local.LastModified

	if c.ServerDeleted {
		if r.undelete[c.EntityType] && local.Status != models.StatusDeletedPending {
			return models.OutcomeRecreated, r.recreate(ctx, tx, local)
		}
		return models.OutcomeRemoved, purge(ctx, tx, c.EntityType, c.ClientID)
	}

	switch {
	case c.ServerLastModified > c.LocalLastModified:
		return models.OutcomeServerApplied, r.applyServer(ctx, tx, local, c)
	case c.LocalLastModified > c.ServerLastModified:
		return models.OutcomeLocalRequeued, r.requeueLocal(ctx, tx, local, c)
	}

	if local.Action != models.ActionDelete {
		same, err := samePayload(c.LocalPayload, c.ServerPayload)
		if err != nil {
			return "", err
		}
		if same {
			return models.OutcomeConverged, r.applyServer(ctx, tx, local, c)
		}
	}

	switch r.policyFor(c.EntityType) {
	case models.PolicyServerWins:
		return models.OutcomeServerApplied, r.applyServer(ctx, tx, local, c)
	case models.PolicyLocalWins:
		return models.OutcomeLocalRequeued, r.requeueLocal(ctx, tx, local, c)
	case models.PolicyMerge:
		if merged, ok := r.tryMerge(ctx, local, c); ok {
			local.Payload = merged
			return models.OutcomeMerged, r.requeueLocal(ctx, tx, local, c)
		}
	}

	return models.OutcomeEscalated, r.escalate(ctx, tx, local, c)
}

// tryMerge runs the merge hook of the entity type. It reports false when no
// hook is registered or the hook fails, which escalates the conflict.
func (r *conflictResolver) tryMerge(ctx context.Context, local models.SyncRecord, c models.ConflictRecord) (json.RawMessage, bool) {
	fn := r.mergeFor(c.EntityType)
	if fn == nil || local.Action == models.ActionDelete {
		return nil, false
	}

	merged, err := fn(c.EntityType, c.LocalPayload, c.ServerPayload)
	if err == nil {
		err = r.validator.Validate(ctx, models.LocalMutation{
			EntityType: c.EntityType,
			ClientID:   c.ClientID,
			Action:     models.ActionUpdate,
			Payload:    merged,
		}, validators.FieldPayload)
	}
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "conflictResolver.tryMerge").
			Str("entity_type", c.EntityType.String()).
			Str("client_id", c.ClientID).
			Msg("merge hook failed, escalating conflict")
		return nil, false
	}
	return merged, true
}

// applyServer overwrites local with the server side of c and marks it synced.
func (r *conflictResolver) applyServer(ctx context.Context, tx store.LocalStore, local models.SyncRecord, c models.ConflictRecord) error {
	if c.ServerID != "" {
		if err := r.identity.bindIn(ctx, tx, c.EntityType, local.ClientID, c.ServerID); err != nil {
			return err
		}
		local.ServerID = c.ServerID
	}
	local.Payload = c.ServerPayload
	local.Status = models.StatusSynced
	local.Action = models.ActionNone
	local.BaseVersion = c.ServerLastModified
	local.LastModified = max(local.LastModified, c.ServerLastModified)
	local.NonRetryable = false
	local.LastError = ""

	if err := tx.DeleteConflict(ctx, c.EntityType, local.ClientID); err != nil {
		return storageErr("delete conflict", err)
	}
	return storageErr("save record", tx.SaveRecord(ctx, local))
}

// requeueLocal puts local back into the journal on top of the server version
// it has now seen, so the next push is accepted.
func (r *conflictResolver) requeueLocal(ctx context.Context, tx store.LocalStore, local models.SyncRecord, c models.ConflictRecord) error {
	if c.ServerID != "" {
		if err := r.identity.bindIn(ctx, tx, c.EntityType, local.ClientID, c.ServerID); err != nil {
			return err
		}
		local.ServerID = c.ServerID
	}
	local.BaseVersion = c.ServerLastModified
	if local.LastModified <= c.ServerLastModified {
		local.LastModified = nextTimestamp(r.now(), c.ServerLastModified)
	}

	switch {
	case local.Action == models.ActionDelete:
		local.Status = models.StatusDeletedPending
	case local.HasServerID():
		local.Status = models.StatusPending
		local.Action = models.ActionUpdate
	default:
		local.Status = models.StatusPending
		local.Action = models.ActionCreate
	}
	local.NonRetryable = false
	local.LastError = ""

	if err := tx.DeleteConflict(ctx, c.EntityType, local.ClientID); err != nil {
		return storageErr("delete conflict", err)
	}
	return storageErr("save record", tx.SaveRecord(ctx, local))
}

// recreate turns a record the server deleted into a fresh local creation.
func (r *conflictResolver) recreate(ctx context.Context, tx store.LocalStore, local models.SyncRecord) error {
	if err := tx.DeleteBinding(ctx, local.EntityType, local.ClientID); err != nil {
		return storageErr("delete binding", err)
	}
	if err := tx.DeleteConflict(ctx, local.EntityType, local.ClientID); err != nil {
		return storageErr("delete conflict", err)
	}
	local.ServerID = ""
	local.BaseVersion = 0
	local.Status = models.StatusPending
	local.Action = models.ActionCreate
	local.LastModified = nextTimestamp(r.now(), local.LastModified)
	local.NonRetryable = false
	local.LastError = ""
	return storageErr("save record", tx.SaveRecord(ctx, local))
}

// escalate keeps c until an explicit resolution arrives.
func (r *conflictResolver) escalate(ctx context.Context, tx store.LocalStore, local models.SyncRecord, c models.ConflictRecord) error {
	if c.ServerID == "" {
		c.ServerID = local.ServerID
	}
	if c.DetectedAt.IsZero() {
		c.DetectedAt = r.now().UTC()
	}
	c.Outcome = models.OutcomeEscalated
	if err := tx.SaveConflict(ctx, c); err != nil {
		return storageErr("save conflict", err)
	}

	local.Status = models.StatusConflict
	return storageErr("save record", tx.SaveRecord(ctx, local))
}

func (r *conflictResolver) Resolve(ctx context.Context, entityType models.EntityType, clientID string, resolution models.Resolution, merged json.RawMessage) (models.SyncRecord, error) {
	req := models.ResolutionRequest{Resolution: resolution, Payload: merged}
	if err := r.validator.Validate(ctx, req); err != nil {
		return models.SyncRecord{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	var result models.SyncRecord
	err := r.store.InTx(ctx, func(tx store.LocalStore) error {
		c, err := tx.GetConflict(ctx, entityType, clientID)
		if errors.Is(err, store.ErrConflictNotFound) {
			return fmt.Errorf("%w: %s/%s", ErrConflictNotFound, entityType, clientID)
		}
		if err != nil {
			return storageErr("get conflict", err)
		}

		local, err := tx.GetRecord(ctx, entityType, clientID)
		if errors.Is(err, store.ErrRecordNotFound) {
			if err = tx.DeleteConflict(ctx, entityType, clientID); err != nil {
				return storageErr("delete conflict", err)
			}
			return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, entityType, clientID)
		}
		if err != nil {
			return storageErr("get record", err)
		}

		switch resolution {
		case models.ResolutionUseServer:
			if c.ServerDeleted {
				result = local
				result.Status = ""
				return purge(ctx, tx, entityType, clientID)
			}
			err = r.applyServer(ctx, tx, local, c)
		case models.ResolutionKeepLocal:
			if c.ServerDeleted {
				err = r.recreate(ctx, tx, local)
				break
			}
			err = r.requeueLocal(ctx, tx, local, c)
		case models.ResolutionMerge:
			local.Payload = merged
			if local.Action == models.ActionDelete {
				local.Action = models.ActionUpdate
			}
			if c.ServerDeleted {
				err = r.recreate(ctx, tx, local)
				break
			}
			err = r.requeueLocal(ctx, tx, local, c)
		}
		if err != nil {
			return err
		}

		result, err = tx.GetRecord(ctx, entityType, clientID)
		return storageErr("get record", err)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "conflictResolver.Resolve").
			Str("entity_type", entityType.String()).
			Str("client_id", clientID).
			Str("resolution", string(resolution)).
			Msg("error resolving conflict")
		return models.SyncRecord{}, err
	}
	return result, nil
}

func (r *conflictResolver) PendingConflicts(ctx context.Context) ([]models.ConflictRecord, error) {
	conflicts, err := r.store.ListConflicts(ctx)
	if err != nil {
		return nil, storageErr("list conflicts", err)
	}
	return conflicts, nil
}

func samePayload(a, b json.RawMessage) (bool, error) {
	fa, err := fingerprint(a)
	if err != nil {
		return false, err
	}
	fb, err := fingerprint(b)
	if err != nil {
		return false, err
	}
	return fa == fb, nil
}
