// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EntityType discriminates the categories of syncable domain objects.
type EntityType string

const (
	PersonalTask       EntityType = "personal_task"
	TeamTask           EntityType = "team_task"
	Message            EntityType = "message"
	MessageReadStatus  EntityType = "message_read_status"
	MessageReaction    EntityType = "message_reaction"
	Document           EntityType = "document"
	DocumentFolder     EntityType = "document_folder"
	DocumentVersion    EntityType = "document_version"
	DocumentPermission EntityType = "document_permission"
)

// allEntityTypes is ordered so that parents are pushed before children
// (folders before documents, documents before versions and permissions).
var allEntityTypes = []EntityType{
	PersonalTask,
	TeamTask,
	Message,
	MessageReadStatus,
	MessageReaction,
	DocumentFolder,
	Document,
	DocumentVersion,
	DocumentPermission,
}

// AllEntityTypes returns every known entity type in default sync order.
func AllEntityTypes() []EntityType {
	out := make([]EntityType, len(allEntityTypes))
	copy(out, allEntityTypes)
	return out
}

// Valid reports whether t is one of the known entity types.
func (t EntityType) Valid() bool {
	for _, known := range allEntityTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t EntityType) String() string {
	return string(t)
}
