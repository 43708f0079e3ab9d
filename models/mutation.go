// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// LocalMutation is a create, update or delete issued by the domain layer
// against a locally owned record.
type LocalMutation struct {
	EntityType EntityType      `json:"entity_type"`
	ClientID   string          `json:"client_id"`
	Action     Action          `json:"action"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// ResolutionRequest is an explicit choice for an escalated conflict. Payload
// carries the merged state when Resolution is ResolutionMerge.
type ResolutionRequest struct {
	Resolution Resolution      `json:"resolution"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}
