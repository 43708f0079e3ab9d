// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-sync-engine/models"
)

// RecordRepository stores one SyncRecord per (entity type, client id).
type RecordRepository interface {
	// GetRecord returns ErrRecordNotFound when no record exists.
	GetRecord(ctx context.Context, entityType models.EntityType, clientID string) (models.SyncRecord, error)
	// SaveRecord inserts or replaces the record keyed by its entity type and
	// client id.
	SaveRecord(ctx context.Context, record models.SyncRecord) error
	// DeleteRecord removes the record. Deleting a missing record is not an error.
	DeleteRecord(ctx context.Context, entityType models.EntityType, clientID string) error
	// PendingRecords returns records of the type with status pending or
	// deleted_pending ordered by LastModified ascending.
	PendingRecords(ctx context.Context, entityType models.EntityType) ([]models.SyncRecord, error)
	// CountPending counts pending and deleted_pending records of all types.
	CountPending(ctx context.Context) (int, error)
}

// IdentityRepository keeps the client id ↔ server id bindings.
type IdentityRepository interface {
	// GetServerID returns ErrBindingNotFound when the client id is unbound.
	GetServerID(ctx context.Context, entityType models.EntityType, clientID string) (string, error)
	// GetClientID returns ErrBindingNotFound when the server id is unknown.
	GetClientID(ctx context.Context, entityType models.EntityType, serverID string) (string, error)
	SaveBinding(ctx context.Context, entityType models.EntityType, clientID, serverID string) error
	DeleteBinding(ctx context.Context, entityType models.EntityType, clientID string) error
}

// CursorRepository persists the per-type pull watermark.
type CursorRepository interface {
	// GetCursor returns ErrCursorNotFound before the first completed pull.
	GetCursor(ctx context.Context, entityType models.EntityType) (models.SyncCursor, error)
	SaveCursor(ctx context.Context, cursor models.SyncCursor) error
}

// ConflictRepository retains conflicts escalated to manual resolution.
type ConflictRepository interface {
	SaveConflict(ctx context.Context, conflict models.ConflictRecord) error
	// GetConflict returns ErrConflictNotFound when nothing is stored.
	GetConflict(ctx context.Context, entityType models.EntityType, clientID string) (models.ConflictRecord, error)
	ListConflicts(ctx context.Context) ([]models.ConflictRecord, error)
	DeleteConflict(ctx context.Context, entityType models.EntityType, clientID string) error
}

// LocalStore is the single shared mutable resource of the sync engine.
//
// InTx runs fn against a transactional view of the store: either every write
// made through tx is committed or none is. Calling InTx on a transactional
// view runs fn in the same transaction.
type LocalStore interface {
	RecordRepository
	IdentityRepository
	CursorRepository
	ConflictRepository

	InTx(ctx context.Context, fn func(tx LocalStore) error) error
	Close() error
}
