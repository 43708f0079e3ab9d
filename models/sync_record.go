// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// SyncStatus is the synchronisation state of a locally owned record.
type SyncStatus string

const (
	StatusSynced         SyncStatus = "synced"
	StatusPending        SyncStatus = "pending"
	StatusConflict       SyncStatus = "conflict"
	StatusDeletedPending SyncStatus = "deleted_pending"
)

// Action is the kind of local mutation a journal entry carries.
type Action string

const (
	ActionNone   Action = ""
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Valid reports whether a is a mutation the journal accepts.
func (a Action) Valid() bool {
	return a == ActionCreate || a == ActionUpdate || a == ActionDelete
}

// SyncRecord is one locally owned mutable entity instance together with its
// sync bookkeeping. Records whose Status is not StatusSynced form the change
// journal.
type SyncRecord struct {
	// ClientID is generated locally and never reused. Primary key together
	// with EntityType.
	ClientID string `json:"client_id"`

	// ServerID is empty until the server accepts the creation.
	ServerID string `json:"server_id,omitempty"`

	EntityType EntityType      `json:"entity_type"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Status     SyncStatus      `json:"status"`
	Action     Action          `json:"action,omitempty"`

	// LastModified is a local unix-millisecond timestamp bumped on every
	// local mutation. It only increases for a given ClientID.
	LastModified int64 `json:"last_modified"`

	// BaseVersion is the server lastModified the client last observed.
	BaseVersion int64 `json:"base_version"`

	// NonRetryable is set when the server rejected the payload; the entry is
	// skipped by push until the domain layer edits it again.
	NonRetryable bool   `json:"non_retryable,omitempty"`
	LastError    string `json:"last_error,omitempty"`
}

// IsPending reports whether the record belongs to the pushable journal view.
func (r SyncRecord) IsPending() bool {
	return r.Status == StatusPending || r.Status == StatusDeletedPending
}

// HasServerID reports whether the record has round-tripped to the server.
func (r SyncRecord) HasServerID() bool {
	return r.ServerID != ""
}

// SyncCursor is the watermark of the last fully applied incremental pull for
// one entity type.
type SyncCursor struct {
	EntityType        EntityType `json:"entity_type"`
	LastSyncTimestamp int64      `json:"last_sync_timestamp"`
}
