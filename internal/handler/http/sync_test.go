// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-sync-engine/internal/service"
	"github.com/MKhiriev/go-sync-engine/models"
)

// ── POST /api/sync/trigger ────────────────────────────────────────────────────

func TestTriggerSync(t *testing.T) {
	escalated := models.ConflictRecord{EntityType: models.Document, ClientID: "d1", Outcome: models.OutcomeEscalated}

	tests := []struct {
		name       string
		query      string
		setup      func(m *testMocks)
		wantStatus int
		check      func(t *testing.T, body []byte)
	}{
		{
			name: "immediate cycle",
			setup: func(m *testMocks) {
				m.coordinator.EXPECT().RunImmediateSync(gomock.Any()).
					Return(models.CycleResult{Pushed: 2, Pulled: 3, Mode: models.PullIncremental}, nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var res cycleResponse
				require.NoError(t, json.Unmarshal(body, &res))
				assert.Equal(t, 2, res.Pushed)
				assert.Equal(t, 3, res.Pulled)
				assert.Empty(t, res.Error)
			},
		},
		{
			name:  "initial cycle",
			query: "?mode=initial",
			setup: func(m *testMocks) {
				m.coordinator.EXPECT().RunInitialSync(gomock.Any()).
					Return(models.CycleResult{Mode: models.PullInitial}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "queued behind running cycle",
			setup: func(m *testMocks) {
				m.coordinator.EXPECT().RunImmediateSync(gomock.Any()).Return(models.CycleResult{}, service.ErrSyncQueued)
			},
			wantStatus: http.StatusAccepted,
			check: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"status":"queued"}`, string(body))
			},
		},
		{
			name: "escalated conflicts",
			setup: func(m *testMocks) {
				res := models.CycleResult{Conflicts: []models.ConflictRecord{escalated}}
				m.coordinator.EXPECT().RunImmediateSync(gomock.Any()).
					Return(res, &service.UnresolvedConflictError{Conflicts: res.Unresolved()})
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var res cycleResponse
				require.NoError(t, json.Unmarshal(body, &res))
				require.Len(t, res.Conflicts, 1)
				assert.Equal(t, models.OutcomeEscalated, res.Conflicts[0].Outcome)
			},
		},
		{
			name: "offline",
			setup: func(m *testMocks) {
				m.coordinator.EXPECT().RunImmediateSync(gomock.Any()).
					Return(models.CycleResult{Err: service.ErrOffline}, service.ErrOffline)
			},
			wantStatus: http.StatusServiceUnavailable,
			check: func(t *testing.T, body []byte) {
				var res cycleResponse
				require.NoError(t, json.Unmarshal(body, &res))
				assert.Equal(t, service.ErrOffline.Error(), res.Error)
			},
		},
		{
			name:       "unknown mode",
			query:      "?mode=sideways",
			setup:      func(*testMocks) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestHandler(t, "")
			tt.setup(m)

			rec := do(t, router, http.MethodPost, "/api/sync/trigger"+tt.query, "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.check != nil {
				tt.check(t, rec.Body.Bytes())
			}
		})
	}
}

// ── /api/sync/schedule ────────────────────────────────────────────────────────

func TestSchedulePeriodic(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantInterval time.Duration
		wantStatus   int
	}{
		{name: "configured interval", body: "", wantInterval: 15 * time.Minute, wantStatus: http.StatusOK},
		{name: "explicit interval", body: `{"interval":"30s"}`, wantInterval: 30 * time.Second, wantStatus: http.StatusOK},
		{name: "bad interval", body: `{"interval":"soon"}`, wantStatus: http.StatusBadRequest},
		{name: "negative interval", body: `{"interval":"-1m"}`, wantStatus: http.StatusBadRequest},
		{name: "bad json", body: `{`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestHandler(t, "")
			if tt.wantStatus == http.StatusOK {
				m.job.EXPECT().SchedulePeriodic(gomock.Any(), tt.wantInterval)
			}

			rec := do(t, router, http.MethodPut, "/api/sync/schedule", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				res := decode[scheduleResponse](t, rec)
				assert.True(t, res.Scheduled)
				assert.Equal(t, tt.wantInterval, res.Interval)
			}
		})
	}
}

func TestCancelPeriodic(t *testing.T) {
	router, m := newTestHandler(t, "")
	m.job.EXPECT().CancelPeriodic()

	rec := do(t, router, http.MethodDelete, "/api/sync/schedule", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[scheduleResponse](t, rec).Scheduled)
}

// ── GET /api/sync/last, /pending, /conflicts ──────────────────────────────────

func TestGetLastResult(t *testing.T) {
	router, m := newTestHandler(t, "")
	gomock.InOrder(
		m.coordinator.EXPECT().LastResult().Return(models.CycleResult{}, false),
		m.coordinator.EXPECT().LastResult().Return(models.CycleResult{
			Pushed: 1,
			Err:    fmt.Errorf("%w: push personal_task", service.ErrTransport),
		}, true),
	)

	rec := do(t, router, http.MethodGet, "/api/sync/last", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/sync/last", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[cycleResponse](t, rec)
	assert.Equal(t, 1, res.Pushed)
	assert.Contains(t, res.Error, "push personal_task")
}

func TestGetPendingState(t *testing.T) {
	router, m := newTestHandler(t, "")
	m.coordinator.EXPECT().HasPendingChanges(gomock.Any()).Return(true, nil)
	m.coordinator.EXPECT().LastSyncTimestamp(gomock.Any()).Return(int64(1_700), nil)
	m.coordinator.EXPECT().IsOnline(gomock.Any()).Return(false)
	m.job.EXPECT().Scheduled().Return(true)

	rec := do(t, router, http.MethodGet, "/api/sync/pending", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"has_pending_changes":true,"last_sync_timestamp":1700,"online":false,"scheduled":true}`, rec.Body.String())
}

func TestGetPendingState_StorageError(t *testing.T) {
	router, m := newTestHandler(t, "")
	m.coordinator.EXPECT().HasPendingChanges(gomock.Any()).Return(false, &service.StorageError{Op: "count pending", Err: assert.AnError})

	rec := do(t, router, http.MethodGet, "/api/sync/pending", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestListConflicts(t *testing.T) {
	router, m := newTestHandler(t, "")
	gomock.InOrder(
		m.resolver.EXPECT().PendingConflicts(gomock.Any()).Return(nil, nil),
		m.resolver.EXPECT().PendingConflicts(gomock.Any()).Return([]models.ConflictRecord{
			{EntityType: models.Document, ClientID: "d1", Outcome: models.OutcomeEscalated},
		}, nil),
	)

	rec := do(t, router, http.MethodGet, "/api/sync/conflicts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"conflicts":[],"length":0}`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/sync/conflicts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[conflictsResponse](t, rec)
	require.Equal(t, 1, res.Length)
	assert.Equal(t, "d1", res.Conflicts[0].ClientID)
}

// ── POST /api/sync/conflicts/{type}/{clientID}/resolve ────────────────────────

func TestResolveConflict(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		setup      func(m *testMocks)
		wantStatus int
	}{
		{
			name:   "keep local",
			target: "/api/sync/conflicts/document/d1/resolve",
			body:   `{"resolution":"keep_local"}`,
			setup: func(m *testMocks) {
				m.resolver.EXPECT().
					Resolve(gomock.Any(), models.Document, "d1", models.ResolutionKeepLocal, gomock.Nil()).
					Return(models.SyncRecord{ClientID: "d1", Status: models.StatusPending}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "merge with payload",
			target: "/api/sync/conflicts/document/d1/resolve",
			body:   `{"resolution":"merge","payload":{"title":"both"}}`,
			setup: func(m *testMocks) {
				m.resolver.EXPECT().
					Resolve(gomock.Any(), models.Document, "d1", models.ResolutionMerge, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ models.EntityType, _ string, _ models.Resolution, merged json.RawMessage) (models.SyncRecord, error) {
						assert.JSONEq(t, `{"title":"both"}`, string(merged))
						return models.SyncRecord{ClientID: "d1", Payload: merged}, nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "nothing to resolve",
			target: "/api/sync/conflicts/document/d1/resolve",
			body:   `{"resolution":"use_server"}`,
			setup: func(m *testMocks) {
				m.resolver.EXPECT().
					Resolve(gomock.Any(), models.Document, "d1", models.ResolutionUseServer, gomock.Nil()).
					Return(models.SyncRecord{}, fmt.Errorf("%w: document/d1", service.ErrConflictNotFound))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unknown type",
			target:     "/api/sync/conflicts/invoice/d1/resolve",
			body:       `{"resolution":"use_server"}`,
			setup:      func(*testMocks) {},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "bad json",
			target:     "/api/sync/conflicts/document/d1/resolve",
			body:       `resolution=merge`,
			setup:      func(*testMocks) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestHandler(t, "")
			tt.setup(m)

			rec := do(t, router, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
