// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/MKhiriev/go-sync-engine/models"
)

// memoryState is the whole content of a MemoryStore. It is also the JSON
// snapshot format.
type memoryState struct {
	Records   map[string]models.SyncRecord     `json:"records"`
	Bindings  map[string]string                `json:"bindings"`
	ServerIDs map[string]string                `json:"server_ids"`
	Cursors   map[models.EntityType]int64      `json:"cursors"`
	Conflicts map[string]models.ConflictRecord `json:"conflicts"`
}

func newMemoryState() *memoryState {
	return &memoryState{
		Records:   make(map[string]models.SyncRecord),
		Bindings:  make(map[string]string),
		ServerIDs: make(map[string]string),
		Cursors:   make(map[models.EntityType]int64),
		Conflicts: make(map[string]models.ConflictRecord),
	}
}

func (st *memoryState) clone() *memoryState {
	out := newMemoryState()
	for k, v := range st.Records {
		out.Records[k] = cloneRecord(v)
	}
	for k, v := range st.Bindings {
		out.Bindings[k] = v
	}
	for k, v := range st.ServerIDs {
		out.ServerIDs[k] = v
	}
	for k, v := range st.Cursors {
		out.Cursors[k] = v
	}
	for k, v := range st.Conflicts {
		out.Conflicts[k] = cloneConflict(v)
	}
	return out
}

func (st *memoryState) fillNil() {
	if st.Records == nil {
		st.Records = make(map[string]models.SyncRecord)
	}
	if st.Bindings == nil {
		st.Bindings = make(map[string]string)
	}
	if st.ServerIDs == nil {
		st.ServerIDs = make(map[string]string)
	}
	if st.Cursors == nil {
		st.Cursors = make(map[models.EntityType]int64)
	}
	if st.Conflicts == nil {
		st.Conflicts = make(map[string]models.ConflictRecord)
	}
}

func memKey(entityType models.EntityType, id string) string {
	return string(entityType) + "/" + id
}

func cloneRecord(r models.SyncRecord) models.SyncRecord {
	r.Payload = cloneRaw(r.Payload)
	return r
}

func cloneConflict(c models.ConflictRecord) models.ConflictRecord {
	c.LocalPayload = cloneRaw(c.LocalPayload)
	c.ServerPayload = cloneRaw(c.ServerPayload)
	return c
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out
}

// MemoryStore is a LocalStore kept in RAM. When created with a path, every
// committed write is flushed to a JSON snapshot at that path and the snapshot
// is loaded on start.
type MemoryStore struct {
	path string

	mu    sync.Mutex
	state *memoryState
}

// NewMemoryStore creates a MemoryStore. An empty path (or ":memory:") keeps
// the store purely in RAM.
func NewMemoryStore(path string) (*MemoryStore, error) {
	if path == ":memory:" || path == "memory" {
		path = ""
	}

	s := &MemoryStore{
		path:  path,
		state: newMemoryState(),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MemoryStore) load() error {
	if s.path == "" {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read local storage file: %w", err)
	}

	st := newMemoryState()
	if err = json.Unmarshal(data, st); err != nil {
		return fmt.Errorf("decode local storage file: %w", err)
	}
	st.fillNil()
	s.state = st

	return nil
}

// persist must be called with s.mu held.
func (s *MemoryStore) persist() error {
	if s.path == "" {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create local storage dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err = os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("write local storage file: %w", err)
	}
	if err = os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace local storage file: %w", err)
	}

	return nil
}

// InTx runs fn on a copy of the state and swaps it in only when fn succeeds
// and the snapshot (if any) is written.
func (s *MemoryStore) InTx(ctx context.Context, fn func(tx LocalStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	next := prev.clone()
	if err := fn(&memoryTx{state: next}); err != nil {
		return err
	}

	s.state = next
	if err := s.persist(); err != nil {
		s.state = prev
		return err
	}
	return nil
}

func (s *MemoryStore) read(fn func(tx *memoryTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&memoryTx{state: s.state})
}

func (s *MemoryStore) write(ctx context.Context, fn func(tx *memoryTx) error) error {
	return s.InTx(ctx, func(tx LocalStore) error {
		return fn(tx.(*memoryTx))
	})
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist()
}

func (s *MemoryStore) GetRecord(ctx context.Context, entityType models.EntityType, clientID string) (rec models.SyncRecord, err error) {
	err = s.read(func(tx *memoryTx) error {
		rec, err = tx.GetRecord(ctx, entityType, clientID)
		return err
	})
	return rec, err
}

func (s *MemoryStore) SaveRecord(ctx context.Context, record models.SyncRecord) error {
	return s.write(ctx, func(tx *memoryTx) error { return tx.SaveRecord(ctx, record) })
}

func (s *MemoryStore) DeleteRecord(ctx context.Context, entityType models.EntityType, clientID string) error {
	return s.write(ctx, func(tx *memoryTx) error { return tx.DeleteRecord(ctx, entityType, clientID) })
}

func (s *MemoryStore) PendingRecords(ctx context.Context, entityType models.EntityType) (out []models.SyncRecord, err error) {
	err = s.read(func(tx *memoryTx) error {
		out, err = tx.PendingRecords(ctx, entityType)
		return err
	})
	return out, err
}

func (s *MemoryStore) CountPending(ctx context.Context) (n int, err error) {
	err = s.read(func(tx *memoryTx) error {
		n, err = tx.CountPending(ctx)
		return err
	})
	return n, err
}

func (s *MemoryStore) GetServerID(ctx context.Context, entityType models.EntityType, clientID string) (id string, err error) {
	err = s.read(func(tx *memoryTx) error {
		id, err = tx.GetServerID(ctx, entityType, clientID)
		return err
	})
	return id, err
}

func (s *MemoryStore) GetClientID(ctx context.Context, entityType models.EntityType, serverID string) (id string, err error) {
	err = s.read(func(tx *memoryTx) error {
		id, err = tx.GetClientID(ctx, entityType, serverID)
		return err
	})
	return id, err
}

func (s *MemoryStore) SaveBinding(ctx context.Context, entityType models.EntityType, clientID, serverID string) error {
	return s.write(ctx, func(tx *memoryTx) error { return tx.SaveBinding(ctx, entityType, clientID, serverID) })
}

func (s *MemoryStore) DeleteBinding(ctx context.Context, entityType models.EntityType, clientID string) error {
	return s.write(ctx, func(tx *memoryTx) error { return tx.DeleteBinding(ctx, entityType, clientID) })
}

func (s *MemoryStore) GetCursor(ctx context.Context, entityType models.EntityType) (c models.SyncCursor, err error) {
	err = s.read(func(tx *memoryTx) error {
		c, err = tx.GetCursor(ctx, entityType)
		return err
	})
	return c, err
}

func (s *MemoryStore) SaveCursor(ctx context.Context, cursor models.SyncCursor) error {
	return s.write(ctx, func(tx *memoryTx) error { return tx.SaveCursor(ctx, cursor) })
}

func (s *MemoryStore) SaveConflict(ctx context.Context, conflict models.ConflictRecord) error {
	return s.write(ctx, func(tx *memoryTx) error { return tx.SaveConflict(ctx, conflict) })
}

func (s *MemoryStore) GetConflict(ctx context.Context, entityType models.EntityType, clientID string) (c models.ConflictRecord, err error) {
	err = s.read(func(tx *memoryTx) error {
		c, err = tx.GetConflict(ctx, entityType, clientID)
		return err
	})
	return c, err
}

func (s *MemoryStore) ListConflicts(ctx context.Context) (out []models.ConflictRecord, err error) {
	err = s.read(func(tx *memoryTx) error {
		out, err = tx.ListConflicts(ctx)
		return err
	})
	return out, err
}

func (s *MemoryStore) DeleteConflict(ctx context.Context, entityType models.EntityType, clientID string) error {
	return s.write(ctx, func(tx *memoryTx) error { return tx.DeleteConflict(ctx, entityType, clientID) })
}

// memoryTx operates on a state without locking; the owning MemoryStore holds
// the mutex for the whole transaction.
type memoryTx struct {
	state *memoryState
}

func (t *memoryTx) InTx(_ context.Context, fn func(tx LocalStore) error) error {
	return fn(t)
}

func (t *memoryTx) Close() error { return nil }

func (t *memoryTx) GetRecord(_ context.Context, entityType models.EntityType, clientID string) (models.SyncRecord, error) {
	rec, ok := t.state.Records[memKey(entityType, clientID)]
	if !ok {
		return models.SyncRecord{}, ErrRecordNotFound
	}
	return cloneRecord(rec), nil
}

func (t *memoryTx) SaveRecord(_ context.Context, record models.SyncRecord) error {
	t.state.Records[memKey(record.EntityType, record.ClientID)] = cloneRecord(record)
	return nil
}

func (t *memoryTx) DeleteRecord(_ context.Context, entityType models.EntityType, clientID string) error {
	delete(t.state.Records, memKey(entityType, clientID))
	return nil
}

func (t *memoryTx) PendingRecords(_ context.Context, entityType models.EntityType) ([]models.SyncRecord, error) {
	var out []models.SyncRecord
	for _, rec := range t.state.Records {
		if rec.EntityType == entityType && rec.IsPending() {
			out = append(out, cloneRecord(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastModified != out[j].LastModified {
			return out[i].LastModified < out[j].LastModified
		}
		return out[i].ClientID < out[j].ClientID
	})
	return out, nil
}

func (t *memoryTx) CountPending(_ context.Context) (int, error) {
	n := 0
	for _, rec := range t.state.Records {
		if rec.IsPending() {
			n++
		}
	}
	return n, nil
}

func (t *memoryTx) GetServerID(_ context.Context, entityType models.EntityType, clientID string) (string, error) {
	id, ok := t.state.Bindings[memKey(entityType, clientID)]
	if !ok {
		return "", ErrBindingNotFound
	}
	return id, nil
}

func (t *memoryTx) GetClientID(_ context.Context, entityType models.EntityType, serverID string) (string, error) {
	id, ok := t.state.ServerIDs[memKey(entityType, serverID)]
	if !ok {
		return "", ErrBindingNotFound
	}
	return id, nil
}

func (t *memoryTx) SaveBinding(_ context.Context, entityType models.EntityType, clientID, serverID string) error {
	if prev, ok := t.state.Bindings[memKey(entityType, clientID)]; ok {
		delete(t.state.ServerIDs, memKey(entityType, prev))
	}
	t.state.Bindings[memKey(entityType, clientID)] = serverID
	t.state.ServerIDs[memKey(entityType, serverID)] = clientID
	return nil
}

func (t *memoryTx) DeleteBinding(_ context.Context, entityType models.EntityType, clientID string) error {
	if serverID, ok := t.state.Bindings[memKey(entityType, clientID)]; ok {
		delete(t.state.ServerIDs, memKey(entityType, serverID))
		delete(t.state.Bindings, memKey(entityType, clientID))
	}
	return nil
}

func (t *memoryTx) GetCursor(_ context.Context, entityType models.EntityType) (models.SyncCursor, error) {
	ts, ok := t.state.Cursors[entityType]
	if !ok {
		return models.SyncCursor{}, ErrCursorNotFound
	}
	return models.SyncCursor{EntityType: entityType, LastSyncTimestamp: ts}, nil
}

func (t *memoryTx) SaveCursor(_ context.Context, cursor models.SyncCursor) error {
	if prev, ok := t.state.Cursors[cursor.EntityType]; ok && prev > cursor.LastSyncTimestamp {
		return nil
	}
	t.state.Cursors[cursor.EntityType] = cursor.LastSyncTimestamp
	return nil
}

func (t *memoryTx) SaveConflict(_ context.Context, conflict models.ConflictRecord) error {
	t.state.Conflicts[memKey(conflict.EntityType, conflict.ClientID)] = cloneConflict(conflict)
	return nil
}

func (t *memoryTx) GetConflict(_ context.Context, entityType models.EntityType, clientID string) (models.ConflictRecord, error) {
	c, ok := t.state.Conflicts[memKey(entityType, clientID)]
	if !ok {
		return models.ConflictRecord{}, ErrConflictNotFound
	}
	return cloneConflict(c), nil
}

func (t *memoryTx) ListConflicts(_ context.Context) ([]models.ConflictRecord, error) {
	out := make([]models.ConflictRecord, 0, len(t.state.Conflicts))
	for _, c := range t.state.Conflicts {
		out = append(out, cloneConflict(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DetectedAt.Equal(out[j].DetectedAt) {
			return out[i].DetectedAt.Before(out[j].DetectedAt)
		}
		return memKey(out[i].EntityType, out[i].ClientID) < memKey(out[j].EntityType, out[j].ClientID)
	})
	return out, nil
}

func (t *memoryTx) DeleteConflict(_ context.Context, entityType models.EntityType, clientID string) error {
	delete(t.state.Conflicts, memKey(entityType, clientID))
	return nil
}
