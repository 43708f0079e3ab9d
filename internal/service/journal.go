// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/internal/validators"
	"github.com/MKhiriev/go-sync-engine/models"
)

type changeJournal struct {
	store     store.LocalStore
	identity  *identityResolver
	validator validators.Validator
	ids       *utils.UUIDGenerator
	now       func() time.Time
}

// NewChangeJournal returns a ChangeJournal backed by localStore. Every call
// runs in its own local transaction.
func NewChangeJournal(localStore store.LocalStore) ChangeJournal {
	return &changeJournal{
		store:     localStore,
		identity:  &identityResolver{store: localStore},
		validator: validators.NewSyncValidator(),
		ids:       utils.NewUUIDGenerator(),
		now:       time.Now,
	}
}

func (j *changeJournal) RecordMutation(ctx context.Context, entityType models.EntityType, clientID string, action models.Action, payload json.RawMessage) (models.SyncRecord, error) {
	if action == models.ActionCreate && clientID == "" {
		clientID = j.ids.Generate()
	}

	mutation := models.LocalMutation{EntityType: entityType, ClientID: clientID, Action: action, Payload: payload}
	if err := j.validator.Validate(ctx, mutation); err != nil {
		return models.SyncRecord{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	var result models.SyncRecord
	err := j.store.InTx(ctx, func(tx store.LocalStore) error {
		prev, err := tx.GetRecord(ctx, entityType, clientID)
		exists := err == nil
		if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
			return storageErr("get record", err)
		}

		switch action {
		case models.ActionCreate:
			if exists {
				return fmt.Errorf("%w: %s/%s", ErrRecordExists, entityType, clientID)
			}
			result = models.SyncRecord{
				ClientID:     clientID,
				EntityType:   entityType,
				Payload:      payload,
				Status:       models.StatusPending,
				Action:       models.ActionCreate,
				LastModified: nextTimestamp(j.now(), 0),
			}

		case models.ActionUpdate:
			if !exists {
				return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, entityType, clientID)
			}
			if prev.Status == models.StatusDeletedPending {
				return fmt.Errorf("%w: %s/%s", ErrRecordDeleted, entityType, clientID)
			}
			result = j.applyUpdate(prev, payload)
			if result.Status == models.StatusConflict {
				if err = refreshConflictLocal(ctx, tx, result); err != nil {
					return err
				}
			}

		case models.ActionDelete:
			if !exists {
				return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, entityType, clientID)
			}
			if prev.Status == models.StatusDeletedPending {
				result = prev
				return nil
			}
			if !prev.HasServerID() {
				// never reached the server: nothing to tell it
				result = prev
				result.Status = ""
				result.Action = models.ActionDelete
				return purge(ctx, tx, entityType, clientID)
			}
			result = prev
			result.Status = models.StatusDeletedPending
			result.Action = models.ActionDelete
			result.LastModified = nextTimestamp(j.now(), prev.LastModified)
			result.NonRetryable = false
			result.LastError = ""
			if err = tx.DeleteConflict(ctx, entityType, clientID); err != nil {
				return storageErr("delete conflict", err)
			}
		}

		return storageErr("save record", tx.SaveRecord(ctx, result))
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "changeJournal.RecordMutation").
			Str("entity_type", entityType.String()).
			Str("client_id", clientID).
			Str("action", string(action)).
			Msg("error recording local mutation")
		return models.SyncRecord{}, err
	}

	return result, nil
}

// applyUpdate replaces the payload of prev. A record that was never pushed
// keeps its create action.
func (j *changeJournal) applyUpdate(prev models.SyncRecord, payload json.RawMessage) models.SyncRecord {
	next := prev
	next.Payload = payload
	next.LastModified = nextTimestamp(j.now(), prev.LastModified)
	next.NonRetryable = false
	next.LastError = ""

	switch prev.Status {
	case models.StatusSynced:
		next.Status = models.StatusPending
		next.Action = models.ActionUpdate
	case models.StatusPending:
		if next.Action != models.ActionCreate {
			next.Action = models.ActionUpdate
		}
	case models.StatusConflict:
		if next.Action == models.ActionNone {
			next.Action = models.ActionUpdate
		}
	}
	return next
}

func (j *changeJournal) PendingMutations(ctx context.Context, entityType models.EntityType) ([]models.SyncRecord, error) {
	records, err := j.store.PendingRecords(ctx, entityType)
	if err != nil {
		return nil, storageErr("pending records", err)
	}
	return records, nil
}

func (j *changeJournal) MarkPushed(ctx context.Context, pushed models.SyncRecord, serverID string, serverLastModified int64) error {
	err := j.store.InTx(ctx, func(tx store.LocalStore) error {
		current, err := tx.GetRecord(ctx, pushed.EntityType, pushed.ClientID)
		if errors.Is(err, store.ErrRecordNotFound) {
			if pushed.Action == models.ActionDelete {
				return storageErr("delete binding", tx.DeleteBinding(ctx, pushed.EntityType, pushed.ClientID))
			}
			// deleted locally while its creation was in flight
			if err = j.identity.bindIn(ctx, tx, pushed.EntityType, pushed.ClientID, serverID); err != nil {
				return err
			}
			tombstone := models.SyncRecord{
				ClientID:     pushed.ClientID,
				ServerID:     serverID,
				EntityType:   pushed.EntityType,
				Payload:      pushed.Payload,
				Status:       models.StatusDeletedPending,
				Action:       models.ActionDelete,
				LastModified: nextTimestamp(j.now(), pushed.LastModified),
				BaseVersion:  serverLastModified,
			}
			return storageErr("save tombstone", tx.SaveRecord(ctx, tombstone))
		}
		if err != nil {
			return storageErr("get record", err)
		}

		if pushed.Action == models.ActionDelete {
			return purge(ctx, tx, pushed.EntityType, pushed.ClientID)
		}

		if err = j.identity.bindIn(ctx, tx, pushed.EntityType, pushed.ClientID, serverID); err != nil {
			return err
		}
		if current.Status == models.StatusSynced {
			// acknowledged already
			return nil
		}

		current.ServerID = serverID
		current.BaseVersion = serverLastModified
		if current.LastModified != pushed.LastModified {
			// edited while the push was in flight: stays in the journal
			if current.Action == models.ActionCreate {
				current.Action = models.ActionUpdate
			}
			return storageErr("save record", tx.SaveRecord(ctx, current))
		}

		current.Status = models.StatusSynced
		current.Action = models.ActionNone
		current.LastModified = max(current.LastModified, serverLastModified)
		current.NonRetryable = false
		current.LastError = ""
		return storageErr("save record", tx.SaveRecord(ctx, current))
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "changeJournal.MarkPushed").
			Str("entity_type", pushed.EntityType.String()).
			Str("client_id", pushed.ClientID).
			Str("server_id", serverID).
			Msg("error marking record as pushed")
	}
	return err
}

func (j *changeJournal) MarkConflict(ctx context.Context, entityType models.EntityType, clientID string) error {
	return j.store.InTx(ctx, func(tx store.LocalStore) error {
		rec, err := tx.GetRecord(ctx, entityType, clientID)
		if errors.Is(err, store.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s/%s", ErrRecordNotFound, entityType, clientID)
		}
		if err != nil {
			return storageErr("get record", err)
		}
		rec.Status = models.StatusConflict
		return storageErr("save record", tx.SaveRecord(ctx, rec))
	})
}

func (j *changeJournal) MarkRejected(ctx context.Context, entityType models.EntityType, clientID, reason string) error {
	return j.store.InTx(ctx, func(tx store.LocalStore) error {
		rec, err := tx.GetRecord(ctx, entityType, clientID)
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return storageErr("get record", err)
		}
		rec.NonRetryable = true
		rec.LastError = reason
		return storageErr("save record", tx.SaveRecord(ctx, rec))
	})
}

func (j *changeJournal) HasPendingChanges(ctx context.Context) (bool, error) {
	n, err := j.store.CountPending(ctx)
	if err != nil {
		return false, storageErr("count pending", err)
	}
	return n > 0, nil
}

func (j *changeJournal) Record(ctx context.Context, entityType models.EntityType, clientID string) (models.SyncRecord, error) {
	rec, err := j.store.GetRecord(ctx, entityType, clientID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return models.SyncRecord{}, fmt.Errorf("%w: %s/%s", ErrRecordNotFound, entityType, clientID)
	}
	if err != nil {
		return models.SyncRecord{}, storageErr("get record", err)
	}
	return rec, nil
}

// refreshConflictLocal keeps the local side of an escalated conflict in step
// with edits made while it waits for resolution.
func refreshConflictLocal(ctx context.Context, tx store.LocalStore, rec models.SyncRecord) error {
	conflict, err := tx.GetConflict(ctx, rec.EntityType, rec.ClientID)
	if errors.Is(err, store.ErrConflictNotFound) {
		return nil
	}
	if err != nil {
		return storageErr("get conflict", err)
	}
	conflict.LocalPayload = rec.Payload
	conflict.LocalLastModified = rec.LastModified
	return storageErr("save conflict", tx.SaveConflict(ctx, conflict))
}

// purge removes every trace of a record from tx.
func purge(ctx context.Context, tx store.LocalStore, entityType models.EntityType, clientID string) error {
	if err := tx.DeleteRecord(ctx, entityType, clientID); err != nil {
		return storageErr("delete record", err)
	}
	if err := tx.DeleteBinding(ctx, entityType, clientID); err != nil {
		return storageErr("delete binding", err)
	}
	return storageErr("delete conflict", tx.DeleteConflict(ctx, entityType, clientID))
}

// nextTimestamp returns now in unix milliseconds, or prev+1 when the clock
// has not moved past prev.
func nextTimestamp(now time.Time, prev int64) int64 {
	ms := now.UnixMilli()
	if ms <= prev {
		return prev + 1
	}
	return ms
}
