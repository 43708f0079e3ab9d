// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-sync-engine/internal/app"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/service"
	"github.com/MKhiriev/go-sync-engine/models"
)

type queuedResponse struct {
	Status string `json:"status"`
}

// triggerSync runs a cycle now. The cycle is detached from the request so
// that a caller hanging up does not abort a push half way.
func (h *Handler) triggerSync(w http.ResponseWriter, r *http.Request) {
	mode, err := syncModeFromQuery(r)
	if err != nil {
		writeServiceError(r, w, "*Handler.triggerSync", err)
		return
	}

	ctx := context.WithoutCancel(r.Context())
	var res models.CycleResult
	if mode == models.PullInitial {
		res, err = h.services.Coordinator.RunInitialSync(ctx)
	} else {
		res, err = h.services.Coordinator.RunImmediateSync(ctx)
	}

	switch {
	case err == nil, errors.Is(err, service.ErrUnresolvedConflict):
		writeJSON(r, w, newCycleResponse(res), http.StatusOK)
	case errors.Is(err, service.ErrSyncQueued):
		writeJSON(r, w, queuedResponse{Status: app.MsgSyncQueued}, http.StatusAccepted)
	case res.Err != nil:
		logger.FromRequest(r).Warn().Err(err).Str("func", "*Handler.triggerSync").Msg("sync cycle failed")
		writeJSON(r, w, newCycleResponse(res), statusFromError(err))
	default:
		writeServiceError(r, w, "*Handler.triggerSync", err)
	}
}

func syncModeFromQuery(r *http.Request) (models.PullMode, error) {
	switch mode := models.PullMode(r.URL.Query().Get("mode")); mode {
	case "", models.PullIncremental:
		return models.PullIncremental, nil
	case models.PullInitial:
		return models.PullInitial, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSyncMode, mode)
	}
}

// schedulePeriodic (re)starts the periodic job. The body is optional; an
// absent interval falls back to the configured one.
func (h *Handler) schedulePeriodic(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeServiceError(r, w, "*Handler.schedulePeriodic", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	interval := h.syncInterval
	if req.Interval != "" {
		parsed, err := time.ParseDuration(req.Interval)
		if err != nil || parsed <= 0 {
			writeServiceError(r, w, "*Handler.schedulePeriodic", fmt.Errorf("%w: interval %q", service.ErrValidation, req.Interval))
			return
		}
		interval = parsed
	}

	h.services.SyncJob.SchedulePeriodic(context.WithoutCancel(r.Context()), interval)
	writeJSON(r, w, scheduleResponse{Scheduled: true, Interval: interval}, http.StatusOK)
}

func (h *Handler) cancelPeriodic(w http.ResponseWriter, r *http.Request) {
	h.services.SyncJob.CancelPeriodic()
	writeJSON(r, w, scheduleResponse{Scheduled: false}, http.StatusOK)
}

func (h *Handler) getLastResult(w http.ResponseWriter, r *http.Request) {
	res, ok := h.services.Coordinator.LastResult()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(r, w, newCycleResponse(res), http.StatusOK)
}

func (h *Handler) getPendingState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pending, err := h.services.Coordinator.HasPendingChanges(ctx)
	if err != nil {
		writeServiceError(r, w, "*Handler.getPendingState", err)
		return
	}
	lastSync, err := h.services.Coordinator.LastSyncTimestamp(ctx)
	if err != nil {
		writeServiceError(r, w, "*Handler.getPendingState", err)
		return
	}

	writeJSON(r, w, pendingResponse{
		HasPendingChanges: pending,
		LastSyncTimestamp: lastSync,
		Online:            h.services.Coordinator.IsOnline(ctx),
		Scheduled:         h.services.SyncJob.Scheduled(),
	}, http.StatusOK)
}

func (h *Handler) listConflicts(w http.ResponseWriter, r *http.Request) {
	conflicts, err := h.services.Resolver.PendingConflicts(r.Context())
	if err != nil {
		writeServiceError(r, w, "*Handler.listConflicts", err)
		return
	}
	if conflicts == nil {
		conflicts = []models.ConflictRecord{}
	}
	writeJSON(r, w, conflictsResponse{Conflicts: conflicts, Length: len(conflicts)}, http.StatusOK)
}

func (h *Handler) resolveConflict(w http.ResponseWriter, r *http.Request) {
	entityType, err := entityTypeParam(r)
	if err != nil {
		writeServiceError(r, w, "*Handler.resolveConflict", err)
		return
	}

	var req models.ResolutionRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeServiceError(r, w, "*Handler.resolveConflict", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	rec, err := h.services.Resolver.Resolve(r.Context(), entityType, chi.URLParam(r, "clientID"), req.Resolution, req.Payload)
	if err != nil {
		writeServiceError(r, w, "*Handler.resolveConflict", err)
		return
	}
	writeJSON(r, w, rec, http.StatusOK)
}

func entityTypeParam(r *http.Request) (models.EntityType, error) {
	entityType := models.EntityType(chi.URLParam(r, "type"))
	if !entityType.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownEntityType, entityType)
	}
	return entityType, nil
}
