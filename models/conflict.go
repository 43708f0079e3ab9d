// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// ConflictRecord describes a divergence between a local pending mutation and
// the server state of the same entity. It lives for one sync cycle unless it
// is escalated to manual resolution.
type ConflictRecord struct {
	EntityType         EntityType      `json:"entity_type"`
	ClientID           string          `json:"client_id"`
	ServerID           string          `json:"server_id,omitempty"`
	LocalPayload       json.RawMessage `json:"local_payload,omitempty"`
	ServerPayload      json.RawMessage `json:"server_payload,omitempty"`
	LocalLastModified  int64           `json:"local_last_modified"`
	ServerLastModified int64           `json:"server_last_modified"`

	// ServerDeleted marks an edit-vs-delete conflict.
	ServerDeleted bool      `json:"server_deleted,omitempty"`
	DetectedAt    time.Time `json:"detected_at"`

	// Outcome is filled in once the resolver has handled the conflict.
	Outcome ConflictOutcome `json:"outcome,omitempty"`
}

// ConflictPolicy selects how a conflict with equal timestamps and different
// payloads is settled.
type ConflictPolicy string

const (
	PolicyServerWins ConflictPolicy = "server_wins"
	PolicyLocalWins  ConflictPolicy = "local_wins"
	PolicyMerge      ConflictPolicy = "merge"
	PolicyManual     ConflictPolicy = "manual"
)

// Valid reports whether p is a known policy.
func (p ConflictPolicy) Valid() bool {
	switch p {
	case PolicyServerWins, PolicyLocalWins, PolicyMerge, PolicyManual:
		return true
	}
	return false
}

// Resolution is an explicit choice made by a collaborator for an escalated
// conflict.
type Resolution string

const (
	ResolutionKeepLocal Resolution = "keep_local"
	ResolutionUseServer Resolution = "use_server"
	ResolutionMerge     Resolution = "merge"
)

// Valid reports whether r is a known resolution.
func (r Resolution) Valid() bool {
	return r == ResolutionKeepLocal || r == ResolutionUseServer || r == ResolutionMerge
}

// MergeFunc combines the local and server payloads of one entity into a
// single state.
type MergeFunc func(entityType EntityType, local, server json.RawMessage) (json.RawMessage, error)

// ConflictOutcome reports what the resolver did with a conflict.
type ConflictOutcome string

const (
	OutcomeServerApplied ConflictOutcome = "server_applied"
	OutcomeLocalRequeued ConflictOutcome = "local_requeued"
	OutcomeMerged        ConflictOutcome = "merged"
	OutcomeRemoved       ConflictOutcome = "removed"
	OutcomeRecreated     ConflictOutcome = "recreated"
	OutcomeEscalated     ConflictOutcome = "escalated"

	// OutcomeConverged means both sides already hold the same state.
	OutcomeConverged ConflictOutcome = "converged"
)
