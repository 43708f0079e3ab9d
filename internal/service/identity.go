// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/models"
)

type identityResolver struct {
	store store.LocalStore
}

// NewIdentityResolver returns an IdentityResolver over the bindings kept in
// localStore.
func NewIdentityResolver(localStore store.LocalStore) IdentityResolver {
	return &identityResolver{store: localStore}
}

func (r *identityResolver) Bind(ctx context.Context, entityType models.EntityType, clientID, serverID string) error {
	err := r.store.InTx(ctx, func(tx store.LocalStore) error {
		return r.bindIn(ctx, tx, entityType, clientID, serverID)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "identityResolver.Bind").
			Str("entity_type", entityType.String()).
			Str("client_id", clientID).
			Str("server_id", serverID).
			Msg("error binding identity")
	}
	return err
}

// bindIn is Bind running inside the caller's transaction.
func (r *identityResolver) bindIn(ctx context.Context, tx store.LocalStore, entityType models.EntityType, clientID, serverID string) error {
	bound, err := tx.GetServerID(ctx, entityType, clientID)
	switch {
	case err == nil && bound == serverID:
		return nil
	case err == nil:
		return &IdentityConflictError{EntityType: entityType, ClientID: clientID, BoundID: bound, IncomingID: serverID}
	case !errors.Is(err, store.ErrBindingNotFound):
		return storageErr("get server id", err)
	}

	owner, err := tx.GetClientID(ctx, entityType, serverID)
	switch {
	case err == nil && owner != clientID:
		return &IdentityConflictError{EntityType: entityType, ClientID: clientID, IncomingID: serverID, Owner: owner}
	case err != nil && !errors.Is(err, store.ErrBindingNotFound):
		return storageErr("get client id", err)
	}

	return storageErr("save binding", tx.SaveBinding(ctx, entityType, clientID, serverID))
}

func (r *identityResolver) ResolveIncoming(ctx context.Context, entityType models.EntityType, remote models.RemoteRecord) (string, bool, error) {
	var (
		clientID string
		found    bool
	)
	err := r.store.InTx(ctx, func(tx store.LocalStore) error {
		var err error
		clientID, found, err = r.resolveIn(ctx, tx, entityType, remote)
		return err
	})
	return clientID, found, err
}

// resolveIn maps remote onto a local client id inside tx. A record created on
// this device whose acceptance was never seen is recognised by the client id
// the server echoes back and gets bound on the spot.
func (r *identityResolver) resolveIn(ctx context.Context, tx store.LocalStore, entityType models.EntityType, remote models.RemoteRecord) (string, bool, error) {
	clientID, err := tx.GetClientID(ctx, entityType, remote.ServerID)
	if err == nil {
		return clientID, true, nil
	}
	if !errors.Is(err, store.ErrBindingNotFound) {
		return "", false, storageErr("get client id", err)
	}

	if remote.ClientID == "" {
		return "", false, nil
	}

	local, err := tx.GetRecord(ctx, entityType, remote.ClientID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, storageErr("get record", err)
	}
	if local.HasServerID() && local.ServerID != remote.ServerID {
		return "", false, &IdentityConflictError{
			EntityType: entityType,
			ClientID:   local.ClientID,
			BoundID:    local.ServerID,
			IncomingID: remote.ServerID,
		}
	}

	if err = r.bindIn(ctx, tx, entityType, local.ClientID, remote.ServerID); err != nil {
		return "", false, err
	}
	local.ServerID = remote.ServerID
	if local.Action == models.ActionCreate {
		local.Action = models.ActionUpdate
	}
	if err = tx.SaveRecord(ctx, local); err != nil {
		return "", false, storageErr("save record", err)
	}

	logger.FromContext(ctx).Debug().
		Str("func", "identityResolver.resolveIn").
		Str("entity_type", entityType.String()).
		Str("client_id", local.ClientID).
		Str("server_id", remote.ServerID).
		Msg("adopted server id echoed for local record")

	return local.ClientID, true, nil
}

// Fingerprint hashes the canonical JSON form of payload, so key order and
// whitespace do not matter.
func (r *identityResolver) Fingerprint(payload json.RawMessage) (string, error) {
	return fingerprint(payload)
}

func fingerprint(payload json.RawMessage) (string, error) {
	canonical, err := utils.CanonicalJSON(payload)
	if err != nil {
		return "", fmt.Errorf("%w: fingerprint: %w", ErrValidation, err)
	}
	sum := blake2b.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
