// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-sync-engine/models"
)

// Error taxonomy of the sync engine. Typed errors below match these sentinels
// through errors.Is.
var (
	// ErrTransport covers unreachable server, timeouts and malformed
	// responses. The cycle step is aborted and retried later.
	ErrTransport = errors.New("transport error")

	// ErrValidation means the input or a pushed payload was refused for its
	// content.
	ErrValidation = errors.New("validation error")

	// ErrUnresolvedConflict is reported when a conflict was escalated to
	// manual resolution and is waiting for an explicit choice.
	ErrUnresolvedConflict = errors.New("unresolved conflict")

	// ErrIdentityConflict signals that one client id would be bound to two
	// different server ids. It is never recovered automatically.
	ErrIdentityConflict = errors.New("identity conflict")

	// ErrStorage means a local transactional write or read failed.
	ErrStorage = errors.New("local storage error")

	ErrUnauthorized = errors.New("unauthorized on remote server")

	ErrOffline            = fmt.Errorf("%w: server is unreachable", ErrTransport)
	ErrSyncQueued         = errors.New("sync cycle already running, request queued")
	ErrSyncAlreadyRunning = errors.New("sync cycle already running")

	ErrRecordExists     = errors.New("record already exists")
	ErrRecordNotFound   = errors.New("record not found")
	ErrRecordDeleted    = errors.New("record is pending deletion")
	ErrConflictNotFound = errors.New("conflict not found")
)

// TransportError carries the entity type and operation a transport failure
// happened in.
type TransportError struct {
	EntityType models.EntityType
	Op         string
	Err        error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.EntityType, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// StorageError wraps a local store failure with the step that failed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrStorage, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// IdentityConflictError reports a binding that would break the one-to-one
// mapping between client and server ids.
type IdentityConflictError struct {
	EntityType models.EntityType
	ClientID   string
	BoundID    string
	IncomingID string

	// Owner is set when IncomingID already belongs to another client id.
	Owner string
}

func (e *IdentityConflictError) Error() string {
	if e.Owner != "" {
		return fmt.Sprintf("%s: server id %q of %s is owned by %q, refusing %q",
			ErrIdentityConflict, e.IncomingID, e.EntityType, e.Owner, e.ClientID)
	}
	return fmt.Sprintf("%s: %s/%s is bound to %q, refusing %q",
		ErrIdentityConflict, e.EntityType, e.ClientID, e.BoundID, e.IncomingID)
}

func (e *IdentityConflictError) Is(target error) bool { return target == ErrIdentityConflict }

// UnresolvedConflictError lists the conflicts left for an explicit
// resolution after a cycle.
type UnresolvedConflictError struct {
	Conflicts []models.ConflictRecord
}

func (e *UnresolvedConflictError) Error() string {
	return fmt.Sprintf("%s: %d record(s) wait for resolution", ErrUnresolvedConflict, len(e.Conflicts))
}

func (e *UnresolvedConflictError) Is(target error) bool { return target == ErrUnresolvedConflict }

// storageErr wraps err into a StorageError unless it already belongs to the
// engine taxonomy.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrStorage) || errors.Is(err, ErrIdentityConflict) || errors.Is(err, ErrValidation) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// isFatal reports whether err must abort the whole cycle.
func isFatal(err error) bool {
	return errors.Is(err, ErrStorage) || errors.Is(err, ErrIdentityConflict)
}
