// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/models"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newTestStore(t *testing.T) (LocalStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	return NewSQLStore(&DB{DB: db, logger: logger.Nop()}, logger.Nop()), mock
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func recordRows() *sqlmock.Rows {
	return sqlmock.NewRows(recordColumns)
}

// ── records ───────────────────────────────────────────────────────────────────

func TestSQLStore_GetRecord(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT .+ FROM sync_records WHERE client_id = \? AND entity_type = \?`).
		WithArgs("c1", "personal_task").
		WillReturnRows(recordRows().AddRow(
			"personal_task", "c1", "s1", []byte(`{"title":"a"}`), "synced", "", int64(100), int64(90), false, "",
		))

	rec, err := s.GetRecord(testContext(), models.PersonalTask, "c1")
	require.NoError(t, err)

	assert.Equal(t, models.SyncRecord{
		ClientID:     "c1",
		ServerID:     "s1",
		EntityType:   models.PersonalTask,
		Payload:      json.RawMessage(`{"title":"a"}`),
		Status:       models.StatusSynced,
		LastModified: 100,
		BaseVersion:  90,
	}, rec)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_GetRecord_NullServerID(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT .+ FROM sync_records`).
		WillReturnRows(recordRows().AddRow(
			"personal_task", "c1", nil, []byte(`{}`), "pending", "create", int64(1), int64(0), false, "",
		))

	rec, err := s.GetRecord(testContext(), models.PersonalTask, "c1")
	require.NoError(t, err)
	assert.Empty(t, rec.ServerID)
	assert.Equal(t, models.ActionCreate, rec.Action)
}

func TestSQLStore_GetRecord_NotFound(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT .+ FROM sync_records`).WillReturnRows(recordRows())

	_, err := s.GetRecord(testContext(), models.PersonalTask, "missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestSQLStore_GetRecord_QueryError(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT .+ FROM sync_records`).WillReturnError(errors.New("disk I/O error"))

	_, err := s.GetRecord(testContext(), models.PersonalTask, "c1")
	assert.ErrorIs(t, err, ErrScanningRow)
	assert.NotErrorIs(t, err, ErrRecordNotFound)
}

func TestSQLStore_SaveRecord(t *testing.T) {
	tests := []struct {
		name         string
		record       models.SyncRecord
		wantServerID any
	}{
		{
			name: "unbound create stores NULL server id",
			record: models.SyncRecord{
				ClientID: "c1", EntityType: models.TeamTask, Payload: json.RawMessage(`{}`),
				Status: models.StatusPending, Action: models.ActionCreate, LastModified: 10,
			},
			wantServerID: nil,
		},
		{
			name: "synced record stores server id",
			record: models.SyncRecord{
				ClientID: "c1", ServerID: "s1", EntityType: models.TeamTask, Payload: json.RawMessage(`{}`),
				Status: models.StatusSynced, LastModified: 10,
			},
			wantServerID: "s1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newTestStore(t)

			mock.ExpectExec(`INSERT INTO sync_records .+ ON CONFLICT \(entity_type, client_id\) DO UPDATE SET`).
				WithArgs(
					"team_task", "c1", tt.wantServerID, []byte(`{}`), string(tt.record.Status), string(tt.record.Action),
					int64(10), int64(0), false, "",
				).
				WillReturnResult(sqlmock.NewResult(1, 1))

			require.NoError(t, s.SaveRecord(testContext(), tt.record))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLStore_SaveRecord_ExecError(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectExec(`INSERT INTO sync_records`).WillReturnError(errors.New("constraint failed"))

	err := s.SaveRecord(testContext(), models.SyncRecord{ClientID: "c1", EntityType: models.Message})
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestSQLStore_DeleteRecord(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectExec(`DELETE FROM sync_records WHERE client_id = \? AND entity_type = \?`).
		WithArgs("c1", "message").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.DeleteRecord(testContext(), models.Message, "c1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_PendingRecords(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT .+ FROM sync_records WHERE entity_type = \? AND status IN \(\?,\?\) ORDER BY last_modified ASC`).
		WithArgs("document", "pending", "deleted_pending").
		WillReturnRows(recordRows().
			AddRow("document", "c1", nil, []byte(`{"v":1}`), "pending", "create", int64(1), int64(0), false, "").
			AddRow("document", "c2", "s2", nil, "deleted_pending", "delete", int64(2), int64(1), false, ""))

	records, err := s.PendingRecords(testContext(), models.Document)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "c1", records[0].ClientID)
	assert.Equal(t, models.ActionDelete, records[1].Action)
	assert.Nil(t, records[1].Payload)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_PendingRecords_RowError(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT .+ FROM sync_records`).
		WillReturnRows(recordRows().
			AddRow("document", "c1", nil, nil, "pending", "create", int64(1), int64(0), false, "").
			RowError(0, errors.New("broken row")))

	_, err := s.PendingRecords(testContext(), models.Document)
	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestSQLStore_CountPending(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM sync_records WHERE status IN \(\?,\?\)`).
		WithArgs("pending", "deleted_pending").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	n, err := s.CountPending(testContext())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

// ── identity bindings ─────────────────────────────────────────────────────────

func TestSQLStore_Bindings(t *testing.T) {
	s, mock := newTestStore(t)
	ctx := testContext()

	mock.ExpectExec(`INSERT INTO identity_bindings`).
		WithArgs("personal_task", "c1", "s1").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT server_id FROM identity_bindings`).
		WithArgs("c1", "personal_task").
		WillReturnRows(sqlmock.NewRows([]string{"server_id"}).AddRow("s1"))
	mock.ExpectQuery(`SELECT client_id FROM identity_bindings`).
		WithArgs("personal_task", "s1").
		WillReturnRows(sqlmock.NewRows([]string{"client_id"}).AddRow("c1"))
	mock.ExpectQuery(`SELECT client_id FROM identity_bindings`).
		WithArgs("personal_task", "s9").
		WillReturnRows(sqlmock.NewRows([]string{"client_id"}))

	require.NoError(t, s.SaveBinding(ctx, models.PersonalTask, "c1", "s1"))

	serverID, err := s.GetServerID(ctx, models.PersonalTask, "c1")
	require.NoError(t, err)
	assert.Equal(t, "s1", serverID)

	clientID, err := s.GetClientID(ctx, models.PersonalTask, "s1")
	require.NoError(t, err)
	assert.Equal(t, "c1", clientID)

	_, err = s.GetClientID(ctx, models.PersonalTask, "s9")
	assert.ErrorIs(t, err, ErrBindingNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── cursors ───────────────────────────────────────────────────────────────────

func TestSQLStore_Cursor(t *testing.T) {
	s, mock := newTestStore(t)
	ctx := testContext()

	mock.ExpectQuery(`SELECT entity_type, last_sync_timestamp FROM sync_cursors`).
		WithArgs("message").
		WillReturnRows(sqlmock.NewRows([]string{"entity_type", "last_sync_timestamp"}))
	mock.ExpectExec(`INSERT INTO sync_cursors .+ MAX\(sync_cursors.last_sync_timestamp, excluded.last_sync_timestamp\)`).
		WithArgs("message", int64(500)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT entity_type, last_sync_timestamp FROM sync_cursors`).
		WithArgs("message").
		WillReturnRows(sqlmock.NewRows([]string{"entity_type", "last_sync_timestamp"}).AddRow("message", int64(500)))

	_, err := s.GetCursor(ctx, models.Message)
	assert.ErrorIs(t, err, ErrCursorNotFound)

	require.NoError(t, s.SaveCursor(ctx, models.SyncCursor{EntityType: models.Message, LastSyncTimestamp: 500}))

	cursor, err := s.GetCursor(ctx, models.Message)
	require.NoError(t, err)
	assert.Equal(t, models.SyncCursor{EntityType: models.Message, LastSyncTimestamp: 500}, cursor)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── conflicts ─────────────────────────────────────────────────────────────────

func TestSQLStore_Conflicts(t *testing.T) {
	s, mock := newTestStore(t)
	ctx := testContext()
	detected := time.UnixMilli(1_700_000_000_000).UTC()

	conflict := models.ConflictRecord{
		EntityType:         models.Document,
		ClientID:           "c1",
		ServerID:           "s1",
		LocalPayload:       json.RawMessage(`{"v":"local"}`),
		ServerPayload:      json.RawMessage(`{"v":"server"}`),
		LocalLastModified:  10,
		ServerLastModified: 10,
		DetectedAt:         detected,
		Outcome:            models.OutcomeEscalated,
	}

	mock.ExpectExec(`INSERT INTO conflicts`).
		WithArgs("document", "c1", "s1", []byte(`{"v":"local"}`), []byte(`{"v":"server"}`), int64(10), int64(10), false, detected.UnixMilli()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT .+ FROM conflicts ORDER BY detected_at ASC`).
		WillReturnRows(sqlmock.NewRows(conflictColumns).
			AddRow("document", "c1", "s1", []byte(`{"v":"local"}`), []byte(`{"v":"server"}`), int64(10), int64(10), false, detected.UnixMilli()))
	mock.ExpectExec(`DELETE FROM conflicts WHERE client_id = \? AND entity_type = \?`).
		WithArgs("c1", "document").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .+ FROM conflicts WHERE`).
		WithArgs("c1", "document").
		WillReturnRows(sqlmock.NewRows(conflictColumns))

	require.NoError(t, s.SaveConflict(ctx, conflict))

	listed, err := s.ListConflicts(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, conflict, listed[0])

	require.NoError(t, s.DeleteConflict(ctx, models.Document, "c1"))

	_, err = s.GetConflict(ctx, models.Document, "c1")
	assert.ErrorIs(t, err, ErrConflictNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── transactions ──────────────────────────────────────────────────────────────

func TestSQLStore_InTx_Commit(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM sync_records`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM identity_bindings`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.InTx(testContext(), func(tx LocalStore) error {
		if err := tx.DeleteRecord(testContext(), models.Message, "c1"); err != nil {
			return err
		}
		// nested InTx joins the outer transaction
		return tx.InTx(testContext(), func(inner LocalStore) error {
			return inner.DeleteBinding(testContext(), models.Message, "c1")
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_InTx_RollbackOnError(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM sync_records`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := s.InTx(testContext(), func(tx LocalStore) error {
		if err := tx.DeleteRecord(testContext(), models.Message, "c1"); err != nil {
			return err
		}
		return assert.AnError
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLStore_InTx_BeginError(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectBegin().WillReturnError(errors.New("database is locked"))

	err := s.InTx(testContext(), func(tx LocalStore) error { return nil })
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestSQLStore_InTx_CommitError(t *testing.T) {
	s, mock := newTestStore(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("disk full"))

	err := s.InTx(testContext(), func(tx LocalStore) error { return nil })
	assert.ErrorIs(t, err, ErrCommitingTransaction)
}
