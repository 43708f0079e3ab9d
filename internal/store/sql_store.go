// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/models"
)

// querier is the subset shared by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

type sqlStore struct {
	db     *DB
	q      querier
	inTx   bool
	logger *logger.Logger
}

// NewSQLStore returns a LocalStore backed by the SQLite database db.
func NewSQLStore(db *DB, logger *logger.Logger) LocalStore {
	return &sqlStore{
		db:     db,
		q:      db.DB,
		logger: logger,
	}
}

func (s *sqlStore) InTx(ctx context.Context, fn func(tx LocalStore) error) error {
	if s.inTx {
		return fn(s)
	}

	log := logger.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "sqlStore.InTx").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	txStore := &sqlStore{db: s.db, q: tx, inTx: true, logger: s.logger}
	if err = fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Err(rbErr).Str("func", "sqlStore.InTx").Msg("failed to rollback transaction")
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "sqlStore.InTx").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (s *sqlStore) Close() error {
	if s.inTx {
		return nil
	}
	return s.db.Close()
}

// ── records ───────────────────────────────────────────────────────────────────

func (s *sqlStore) GetRecord(ctx context.Context, entityType models.EntityType, clientID string) (models.SyncRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetRecordQuery(entityType, clientID)
	if err != nil {
		return models.SyncRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	record, err := scanRecord(s.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncRecord{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "sqlStore.GetRecord").
			Str("entity_type", entityType.String()).
			Str("client_id", clientID).
			Msg("failed to scan sync record row")
		return models.SyncRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

func (s *sqlStore) SaveRecord(ctx context.Context, record models.SyncRecord) error {
	query, args, err := buildSaveRecordQuery(record)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.q.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqlStore.SaveRecord").
			Str("entity_type", record.EntityType.String()).
			Str("client_id", record.ClientID).
			Msg("failed to upsert sync record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqlStore) DeleteRecord(ctx context.Context, entityType models.EntityType, clientID string) error {
	query, args, err := buildDeleteRecordQuery(entityType, clientID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.q.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqlStore.DeleteRecord").
			Str("entity_type", entityType.String()).
			Str("client_id", clientID).
			Msg("failed to delete sync record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqlStore) PendingRecords(ctx context.Context, entityType models.EntityType) ([]models.SyncRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildPendingRecordsQuery(entityType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "sqlStore.PendingRecords").
			Str("entity_type", entityType.String()).
			Msg("failed to query pending records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var records []models.SyncRecord
	for rows.Next() {
		record, scanErr := scanRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "sqlStore.PendingRecords").
				Str("entity_type", entityType.String()).
				Msg("failed to scan sync record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "sqlStore.PendingRecords").
			Str("entity_type", entityType.String()).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

func (s *sqlStore) CountPending(ctx context.Context) (int, error) {
	query, args, err := buildCountPendingQuery()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = s.q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sqlStore.CountPending").Msg("failed to count pending records")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// ── identity bindings ─────────────────────────────────────────────────────────

func (s *sqlStore) GetServerID(ctx context.Context, entityType models.EntityType, clientID string) (string, error) {
	query, args, err := buildGetServerIDQuery(entityType, clientID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return s.scanID(ctx, "sqlStore.GetServerID", query, args)
}

func (s *sqlStore) GetClientID(ctx context.Context, entityType models.EntityType, serverID string) (string, error) {
	query, args, err := buildGetClientIDQuery(entityType, serverID)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return s.scanID(ctx, "sqlStore.GetClientID", query, args)
}

func (s *sqlStore) scanID(ctx context.Context, funcName, query string, args []any) (string, error) {
	var id string
	err := s.q.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrBindingNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("failed to scan identity binding")
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return id, nil
}

func (s *sqlStore) SaveBinding(ctx context.Context, entityType models.EntityType, clientID, serverID string) error {
	query, args, err := buildSaveBindingQuery(entityType, clientID, serverID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.q.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqlStore.SaveBinding").
			Str("entity_type", entityType.String()).
			Str("client_id", clientID).
			Str("server_id", serverID).
			Msg("failed to save identity binding")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqlStore) DeleteBinding(ctx context.Context, entityType models.EntityType, clientID string) error {
	query, args, err := buildDeleteBindingQuery(entityType, clientID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.q.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqlStore.DeleteBinding").
			Str("entity_type", entityType.String()).
			Str("client_id", clientID).
			Msg("failed to delete identity binding")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ── cursors ───────────────────────────────────────────────────────────────────

func (s *sqlStore) GetCursor(ctx context.Context, entityType models.EntityType) (models.SyncCursor, error) {
	query, args, err := buildGetCursorQuery(entityType)
	if err != nil {
		return models.SyncCursor{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		cursor  models.SyncCursor
		typeStr string
	)
	err = s.q.QueryRowContext(ctx, query, args...).Scan(&typeStr, &cursor.LastSyncTimestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncCursor{}, ErrCursorNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqlStore.GetCursor").
			Str("entity_type", entityType.String()).
			Msg("failed to scan sync cursor")
		return models.SyncCursor{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	cursor.EntityType = models.EntityType(typeStr)

	return cursor, nil
}

func (s *sqlStore) SaveCursor(ctx context.Context, cursor models.SyncCursor) error {
	query, args, err := buildSaveCursorQuery(cursor)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.q.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqlStore.SaveCursor").
			Str("entity_type", cursor.EntityType.String()).
			Int64("last_sync_timestamp", cursor.LastSyncTimestamp).
			Msg("failed to save sync cursor")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ── conflicts ─────────────────────────────────────────────────────────────────

func (s *sqlStore) SaveConflict(ctx context.Context, conflict models.ConflictRecord) error {
	query, args, err := buildSaveConflictQuery(conflict)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.q.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqlStore.SaveConflict").
			Str("entity_type", conflict.EntityType.String()).
			Str("client_id", conflict.ClientID).
			Msg("failed to save conflict")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqlStore) GetConflict(ctx context.Context, entityType models.EntityType, clientID string) (models.ConflictRecord, error) {
	query, args, err := buildGetConflictQuery(entityType, clientID)
	if err != nil {
		return models.ConflictRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	conflict, err := scanConflict(s.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.ConflictRecord{}, ErrConflictNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqlStore.GetConflict").
			Str("entity_type", entityType.String()).
			Str("client_id", clientID).
			Msg("failed to scan conflict row")
		return models.ConflictRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return conflict, nil
}

func (s *sqlStore) ListConflicts(ctx context.Context) ([]models.ConflictRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListConflictsQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "sqlStore.ListConflicts").Msg("failed to query conflicts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var conflicts []models.ConflictRecord
	for rows.Next() {
		conflict, scanErr := scanConflict(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "sqlStore.ListConflicts").Msg("failed to scan conflict row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		conflicts = append(conflicts, conflict)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "sqlStore.ListConflicts").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return conflicts, nil
}

func (s *sqlStore) DeleteConflict(ctx context.Context, entityType models.EntityType, clientID string) error {
	query, args, err := buildDeleteConflictQuery(entityType, clientID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.q.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "sqlStore.DeleteConflict").
			Str("entity_type", entityType.String()).
			Str("client_id", clientID).
			Msg("failed to delete conflict")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ── scanning ──────────────────────────────────────────────────────────────────

func scanRecord(row rowScanner) (models.SyncRecord, error) {
	var (
		record     models.SyncRecord
		entityType string
		serverID   sql.NullString
		payload    []byte
		status     string
		action     string
	)

	err := row.Scan(
		&entityType,
		&record.ClientID,
		&serverID,
		&payload,
		&status,
		&action,
		&record.LastModified,
		&record.BaseVersion,
		&record.NonRetryable,
		&record.LastError,
	)
	if err != nil {
		return models.SyncRecord{}, err
	}

	record.EntityType = models.EntityType(entityType)
	record.ServerID = serverID.String
	if len(payload) > 0 {
		record.Payload = payload
	}
	record.Status = models.SyncStatus(status)
	record.Action = models.Action(action)

	return record, nil
}

func scanConflict(row rowScanner) (models.ConflictRecord, error) {
	var (
		conflict      models.ConflictRecord
		entityType    string
		localPayload  []byte
		serverPayload []byte
		detectedAt    int64
	)

	err := row.Scan(
		&entityType,
		&conflict.ClientID,
		&conflict.ServerID,
		&localPayload,
		&serverPayload,
		&conflict.LocalLastModified,
		&conflict.ServerLastModified,
		&conflict.ServerDeleted,
		&detectedAt,
	)
	if err != nil {
		return models.ConflictRecord{}, err
	}

	conflict.EntityType = models.EntityType(entityType)
	if len(localPayload) > 0 {
		conflict.LocalPayload = localPayload
	}
	if len(serverPayload) > 0 {
		conflict.ServerPayload = serverPayload
	}
	conflict.DetectedAt = time.UnixMilli(detectedAt).UTC()
	// only escalated conflicts are ever stored
	conflict.Outcome = models.OutcomeEscalated

	return conflict, nil
}
