// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/models"
)

const testHashKey = "testhashkey"

// newTestAdapter creates an httpRemoteAPI pointed at the test server.
func newTestAdapter(t *testing.T, serverURL, token string) *httpRemoteAPI {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: time.Second, Token: token}
	appCfg := config.ClientApp{HashKey: testHashKey}

	a, err := NewHTTPRemoteAPI(adapterCfg, appCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpRemoteAPI)
}

func signToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "account-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("server-key"))
	require.NoError(t, err)
	return signed
}

// ── constructor ─────────────────────────────────────────────────────────────

func TestNewHTTPRemoteAPI_InvalidAddress(t *testing.T) {
	for _, addr := range []string{"", "   ", "http://"} {
		_, err := NewHTTPRemoteAPI(config.ClientAdapter{HTTPAddress: addr}, config.ClientApp{}, logger.Nop())
		assert.ErrorIs(t, err, ErrInvalidAddress, "address %q", addr)
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "localhost:8080", want: "http://localhost:8080"},
		{in: "https://api.example.com/", want: "https://api.example.com"},
		{in: " http://10.0.0.1:9000 ", want: "http://10.0.0.1:9000"},
	}
	for _, tt := range tests {
		got, err := normalizeBaseURL(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

// ── PushBatch ───────────────────────────────────────────────────────────────

func TestPushBatch_Success(t *testing.T) {
	mutations := []models.MutationRequest{
		{ClientID: "c1", Action: models.ActionCreate, Payload: json.RawMessage(`{"title":"a"}`), LastModified: 10},
		{ClientID: "c2", ServerID: "s2", Action: models.ActionDelete, LastModified: 11, BaseVersion: 5},
	}
	token := signToken(t, time.Now().Add(time.Hour))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sync/personal_task/push", r.URL.Path)
		assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
		assert.Equal(t, "cycle-7", r.Header.Get(headerCycleID))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, utils.HashString(string(body), testHashKey), r.Header.Get(headerHash))

		var req pushRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, 2, req.Length)
		assert.Equal(t, mutations, req.Mutations)

		_, _ = utils.WriteJSON(w, pushResponse{Results: []models.MutationResult{
			{ClientID: "c1", ServerID: "s1", Status: models.MutationAccepted, LastModified: 100},
			{ClientID: "c2", ServerID: "s2", Status: models.MutationAccepted, LastModified: 101},
		}}, http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, token)
	ctx := utils.WithCycleID(context.Background(), "cycle-7")
	results, err := a.PushBatch(ctx, models.PersonalTask, mutations)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "s1", results[0].ServerID)
	assert.Equal(t, models.MutationAccepted, results[1].Status)
}

func TestPushBatch_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "bad request", status: http.StatusBadRequest, wantErr: ErrBadRequest},
		{name: "unprocessable", status: http.StatusUnprocessableEntity, wantErr: ErrBadRequest},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, wantErr: ErrForbidden},
		{name: "not found", status: http.StatusNotFound, wantErr: ErrNotFound},
		{name: "conflict", status: http.StatusConflict, wantErr: ErrConflict},
		{name: "too many requests", status: http.StatusTooManyRequests, wantErr: ErrTransport},
		{name: "internal error", status: http.StatusInternalServerError, wantErr: ErrTransport},
		{name: "bad gateway", status: http.StatusBadGateway, wantErr: ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("nope"))
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL, "")
			_, err := a.PushBatch(context.Background(), models.Message, []models.MutationRequest{{ClientID: "c1"}})

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPushBatch_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.PushBatch(context.Background(), models.Message, []models.MutationRequest{{ClientID: "c1"}})

	assert.ErrorIs(t, err, ErrTransport)
}

func TestPushBatch_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	a := newTestAdapter(t, url, "")
	_, err := a.PushBatch(context.Background(), models.Message, []models.MutationRequest{{ClientID: "c1"}})

	assert.ErrorIs(t, err, ErrTransport)
}

func TestPushBatch_ExpiredTokenFailsFast(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, signToken(t, time.Now().Add(-time.Minute)))
	_, err := a.PushBatch(context.Background(), models.Message, []models.MutationRequest{{ClientID: "c1"}})

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, called, "no request must reach the server with an expired token")
}

// ── PullChanges / PullFull ──────────────────────────────────────────────────

func TestPullChanges_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/sync/document/changes", r.URL.Path)
		assert.Equal(t, "1700000000000", r.URL.Query().Get("since"))

		_, _ = utils.WriteJSON(w, models.ChangeSet{
			Created:         []models.RemoteRecord{{ServerID: "s1", Payload: json.RawMessage(`{"a":1}`), LastModified: 5}},
			DeletedIDs:      []string{"s9"},
			ServerTimestamp: 1700000000500,
		}, http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	cs, err := a.PullChanges(context.Background(), models.Document, 1700000000000)

	require.NoError(t, err)
	assert.Equal(t, 2, cs.Len())
	assert.Equal(t, int64(1700000000500), cs.ServerTimestamp)
	assert.Equal(t, "s1", cs.Created[0].ServerID)
	assert.Equal(t, []string{"s9"}, cs.DeletedIDs)
}

func TestPullFull_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sync/team_task/full", r.URL.Path)
		assert.Empty(t, r.URL.Query().Get("since"))
		_, _ = utils.WriteJSON(w, models.ChangeSet{ServerTimestamp: 42}, http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	cs, err := a.PullFull(context.Background(), models.TeamTask)

	require.NoError(t, err)
	assert.Equal(t, int64(42), cs.ServerTimestamp)
	assert.Zero(t, cs.Len())
}

func TestPull_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			wantErr: ErrTransport,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("[]"))
			},
			wantErr: ErrTransport,
		},
		{
			name: "unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			wantErr: ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			a := newTestAdapter(t, srv.URL, "")
			_, err := a.PullChanges(context.Background(), models.Message, 0)
			assert.ErrorIs(t, err, tt.wantErr)

			_, err = a.PullFull(context.Background(), models.Message)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPull_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.PullChanges(ctx, models.Message, 0)
	assert.ErrorIs(t, err, ErrTransport)
}
