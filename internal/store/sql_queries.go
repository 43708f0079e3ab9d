// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-sync-engine/models"
)

const (
	recordsTable   = "sync_records"
	bindingsTable  = "identity_bindings"
	cursorsTable   = "sync_cursors"
	conflictsTable = "conflicts"
)

var recordColumns = []string{
	"entity_type",
	"client_id",
	"server_id",
	"payload",
	"status",
	"action",
	"last_modified",
	"base_version",
	"non_retryable",
	"last_error",
}

var conflictColumns = []string{
	"entity_type",
	"client_id",
	"server_id",
	"local_payload",
	"server_payload",
	"local_last_modified",
	"server_last_modified",
	"server_deleted",
	"detected_at",
}

// sqlBuilder emits SQLite ? placeholders.
var sqlBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

var pendingStatuses = []string{
	string(models.StatusPending),
	string(models.StatusDeletedPending),
}

// ── records ───────────────────────────────────────────────────────────────────

func buildGetRecordQuery(entityType models.EntityType, clientID string) (string, []any, error) {
	return sqlBuilder.
		Select(recordColumns...).
		From(recordsTable).
		Where(sq.Eq{"entity_type": string(entityType), "client_id": clientID}).
		ToSql()
}

func buildSaveRecordQuery(record models.SyncRecord) (string, []any, error) {
	var serverID any
	if record.ServerID != "" {
		serverID = record.ServerID
	}

	return sqlBuilder.
		Insert(recordsTable).
		Columns(recordColumns...).
		Values(
			string(record.EntityType),
			record.ClientID,
			serverID,
			[]byte(record.Payload),
			string(record.Status),
			string(record.Action),
			record.LastModified,
			record.BaseVersion,
			record.NonRetryable,
			record.LastError,
		).
		Suffix(`ON CONFLICT (entity_type, client_id) DO UPDATE SET
			server_id = excluded.server_id,
			payload = excluded.payload,
			status = excluded.status,
			action = excluded.action,
			last_modified = excluded.last_modified,
			base_version = excluded.base_version,
			non_retryable = excluded.non_retryable,
			last_error = excluded.last_error`).
		ToSql()
}

func buildDeleteRecordQuery(entityType models.EntityType, clientID string) (string, []any, error) {
	return sqlBuilder.
		Delete(recordsTable).
		Where(sq.Eq{"entity_type": string(entityType), "client_id": clientID}).
		ToSql()
}

func buildPendingRecordsQuery(entityType models.EntityType) (string, []any, error) {
	return sqlBuilder.
		Select(recordColumns...).
		From(recordsTable).
		Where(sq.Eq{"entity_type": string(entityType)}).
		Where(sq.Eq{"status": pendingStatuses}).
		OrderBy("last_modified ASC", "client_id ASC").
		ToSql()
}

func buildCountPendingQuery() (string, []any, error) {
	return sqlBuilder.
		Select("COUNT(*)").
		From(recordsTable).
		Where(sq.Eq{"status": pendingStatuses}).
		ToSql()
}

// ── identity bindings ─────────────────────────────────────────────────────────

func buildGetServerIDQuery(entityType models.EntityType, clientID string) (string, []any, error) {
	return sqlBuilder.
		Select("server_id").
		From(bindingsTable).
		Where(sq.Eq{"entity_type": string(entityType), "client_id": clientID}).
		ToSql()
}

func buildGetClientIDQuery(entityType models.EntityType, serverID string) (string, []any, error) {
	return sqlBuilder.
		Select("client_id").
		From(bindingsTable).
		Where(sq.Eq{"entity_type": string(entityType), "server_id": serverID}).
		ToSql()
}

func buildSaveBindingQuery(entityType models.EntityType, clientID, serverID string) (string, []any, error) {
	return sqlBuilder.
		Insert(bindingsTable).
		Columns("entity_type", "client_id", "server_id").
		Values(string(entityType), clientID, serverID).
		Suffix("ON CONFLICT (entity_type, client_id) DO UPDATE SET server_id = excluded.server_id").
		ToSql()
}

func buildDeleteBindingQuery(entityType models.EntityType, clientID string) (string, []any, error) {
	return sqlBuilder.
		Delete(bindingsTable).
		Where(sq.Eq{"entity_type": string(entityType), "client_id": clientID}).
		ToSql()
}

// ── cursors ───────────────────────────────────────────────────────────────────

func buildGetCursorQuery(entityType models.EntityType) (string, []any, error) {
	return sqlBuilder.
		Select("entity_type", "last_sync_timestamp").
		From(cursorsTable).
		Where(sq.Eq{"entity_type": string(entityType)}).
		ToSql()
}

// buildSaveCursorQuery never moves a stored cursor backwards.
func buildSaveCursorQuery(cursor models.SyncCursor) (string, []any, error) {
	return sqlBuilder.
		Insert(cursorsTable).
		Columns("entity_type", "last_sync_timestamp").
		Values(string(cursor.EntityType), cursor.LastSyncTimestamp).
		Suffix(`ON CONFLICT (entity_type) DO UPDATE SET
			last_sync_timestamp = MAX(sync_cursors.last_sync_timestamp, excluded.last_sync_timestamp)`).
		ToSql()
}

// ── conflicts ─────────────────────────────────────────────────────────────────

func buildSaveConflictQuery(conflict models.ConflictRecord) (string, []any, error) {
	return sqlBuilder.
		Insert(conflictsTable).
		Columns(conflictColumns...).
		Values(
			string(conflict.EntityType),
			conflict.ClientID,
			conflict.ServerID,
			[]byte(conflict.LocalPayload),
			[]byte(conflict.ServerPayload),
			conflict.LocalLastModified,
			conflict.ServerLastModified,
			conflict.ServerDeleted,
			conflict.DetectedAt.UnixMilli(),
		).
		Suffix(`ON CONFLICT (entity_type, client_id) DO UPDATE SET
			server_id = excluded.server_id,
			local_payload = excluded.local_payload,
			server_payload = excluded.server_payload,
			local_last_modified = excluded.local_last_modified,
			server_last_modified = excluded.server_last_modified,
			server_deleted = excluded.server_deleted,
			detected_at = excluded.detected_at`).
		ToSql()
}

func buildGetConflictQuery(entityType models.EntityType, clientID string) (string, []any, error) {
	return sqlBuilder.
		Select(conflictColumns...).
		From(conflictsTable).
		Where(sq.Eq{"entity_type": string(entityType), "client_id": clientID}).
		ToSql()
}

func buildListConflictsQuery() (string, []any, error) {
	return sqlBuilder.
		Select(conflictColumns...).
		From(conflictsTable).
		OrderBy("detected_at ASC", "entity_type ASC", "client_id ASC").
		ToSql()
}

func buildDeleteConflictQuery(entityType models.EntityType, clientID string) (string, []any, error) {
	return sqlBuilder.
		Delete(conflictsTable).
		Where(sq.Eq{"entity_type": string(entityType), "client_id": clientID}).
		ToSql()
}
