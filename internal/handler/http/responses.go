// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/app"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
	"github.com/MKhiriev/go-sync-engine/models"
)

type versionResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// cycleResponse is a CycleResult with its error flattened to a string.
type cycleResponse struct {
	models.CycleResult
	Error string `json:"error,omitempty"`
}

func newCycleResponse(res models.CycleResult) cycleResponse {
	out := cycleResponse{CycleResult: res}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}
	return out
}

type pendingResponse struct {
	HasPendingChanges bool  `json:"has_pending_changes"`
	LastSyncTimestamp int64 `json:"last_sync_timestamp"`
	Online            bool  `json:"online"`
	Scheduled         bool  `json:"scheduled"`
}

type conflictsResponse struct {
	Conflicts []models.ConflictRecord `json:"conflicts"`
	Length    int                     `json:"length"`
}

type recordRequest struct {
	ClientID string          `json:"client_id,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

type scheduleRequest struct {
	Interval string `json:"interval"`
}

type scheduleResponse struct {
	Scheduled bool          `json:"scheduled"`
	Interval  time.Duration `json:"interval,omitempty"`
}

func writeJSON(r *http.Request, w http.ResponseWriter, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "writeJSON").Msg("error writing response")
	}
}

// writeServiceError answers with the status mapped from err.
func writeServiceError(r *http.Request, w http.ResponseWriter, fn string, err error) {
	status := statusFromError(err)
	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("func", fn).Msg("request failed")
	} else {
		log.Warn().Err(err).Str("func", fn).Msg("request rejected")
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = app.MsgInternalServerError
	}
	utils.WriteError(w, msg, status)
}
