// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// MutationRequest is one local mutation sent to the server in a push batch.
type MutationRequest struct {
	ClientID     string          `json:"client_id"`
	ServerID     string          `json:"server_id,omitempty"`
	Action       Action          `json:"action"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	LastModified int64           `json:"last_modified"`
	BaseVersion  int64           `json:"base_version"`
}

// MutationStatus is the server verdict on a single pushed mutation.
type MutationStatus string

const (
	MutationAccepted MutationStatus = "accepted"
	MutationConflict MutationStatus = "conflict"
	MutationRejected MutationStatus = "rejected"
)

// MutationResult is the server answer for one MutationRequest.
type MutationResult struct {
	ClientID     string         `json:"client_id"`
	ServerID     string         `json:"server_id,omitempty"`
	Status       MutationStatus `json:"status"`
	LastModified int64          `json:"last_modified"`
	Reason       string         `json:"reason,omitempty"`

	// Current is the server state of the entity when Status is MutationConflict.
	Current *RemoteRecord `json:"current,omitempty"`
}

// RemoteRecord is the server representation of an entity.
type RemoteRecord struct {
	ServerID string `json:"server_id"`

	// ClientID echoes the id of the device-local record that created the
	// entity, when the server knows it.
	ClientID     string          `json:"client_id,omitempty"`
	Payload      json.RawMessage `json:"payload,omitempty"`
	LastModified int64           `json:"last_modified"`
	Deleted      bool            `json:"deleted,omitempty"`
}

// ChangeSet is the body of a pull response for one entity type.
type ChangeSet struct {
	Created    []RemoteRecord `json:"created,omitempty"`
	Updated    []RemoteRecord `json:"updated,omitempty"`
	DeletedIDs []string       `json:"deleted_ids,omitempty"`

	// Conflicts lists entities the server knows are also locally pending.
	Conflicts []RemoteRecord `json:"conflicts,omitempty"`

	// ServerTimestamp is the watermark to use as the next "since" value.
	ServerTimestamp int64 `json:"server_timestamp"`
}

// Len returns the number of records carried by the change set.
func (c ChangeSet) Len() int {
	return len(c.Created) + len(c.Updated) + len(c.DeletedIDs) + len(c.Conflicts)
}

// PullMode selects between a full and an incremental pull.
type PullMode string

const (
	PullInitial     PullMode = "initial"
	PullIncremental PullMode = "incremental"
)
