// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-engine/models"
)

func Test_buildPendingRecordsQuery(t *testing.T) {
	query, args, err := buildPendingRecordsQuery(models.TeamTask)
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "from sync_records")
	assert.Contains(t, q, "status in (?,?)")
	assert.Contains(t, q, "order by last_modified asc")
	assert.NotContains(t, query, "$1")
	assert.Equal(t, []any{"team_task", "pending", "deleted_pending"}, args)
}

func Test_buildSaveRecordQuery_SelectsAllColumns(t *testing.T) {
	query, args, err := buildSaveRecordQuery(models.SyncRecord{ClientID: "c1", EntityType: models.Message})
	require.NoError(t, err)

	for _, c := range recordColumns {
		assert.Contains(t, query, c)
	}
	assert.Len(t, args, len(recordColumns))
	assert.Contains(t, query, "ON CONFLICT (entity_type, client_id)")
}

func Test_buildSaveCursorQuery_NeverMovesBackwards(t *testing.T) {
	query, args, err := buildSaveCursorQuery(models.SyncCursor{EntityType: models.Document, LastSyncTimestamp: 42})
	require.NoError(t, err)

	assert.Contains(t, query, "MAX(sync_cursors.last_sync_timestamp, excluded.last_sync_timestamp)")
	assert.Equal(t, []any{"document", int64(42)}, args)
}

func Test_buildDeleteQueries(t *testing.T) {
	tests := []struct {
		name  string
		build func() (string, []any, error)
		table string
	}{
		{
			name:  "record",
			build: func() (string, []any, error) { return buildDeleteRecordQuery(models.Message, "c1") },
			table: "sync_records",
		},
		{
			name:  "binding",
			build: func() (string, []any, error) { return buildDeleteBindingQuery(models.Message, "c1") },
			table: "identity_bindings",
		},
		{
			name:  "conflict",
			build: func() (string, []any, error) { return buildDeleteConflictQuery(models.Message, "c1") },
			table: "conflicts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := tt.build()
			require.NoError(t, err)
			assert.Equal(t, "DELETE FROM "+tt.table+" WHERE client_id = ? AND entity_type = ?", query)
			assert.Equal(t, []any{"c1", "message"}, args)
		})
	}
}
