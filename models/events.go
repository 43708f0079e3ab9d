// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// LiveEventKind tells whether a live event carries a new state or a deletion.
type LiveEventKind string

const (
	LiveUpsert LiveEventKind = "upsert"
	LiveDelete LiveEventKind = "delete"
)

// LiveEvent is one server notification delivered over the duplex channel.
type LiveEvent struct {
	EntityType EntityType    `json:"entity_type"`
	Kind       LiveEventKind `json:"kind"`
	Record     RemoteRecord  `json:"record"`
}
