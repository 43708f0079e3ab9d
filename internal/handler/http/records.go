// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-sync-engine/models"
)

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	h.recordMutation(w, r, models.ActionCreate)
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	h.recordMutation(w, r, models.ActionUpdate)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	h.recordMutation(w, r, models.ActionDelete)
}

// recordMutation journals one local mutation. The client id comes from the
// path, except for a create where the body may carry it.
func (h *Handler) recordMutation(w http.ResponseWriter, r *http.Request, action models.Action) {
	fn := "*Handler.recordMutation"
	entityType, err := entityTypeParam(r)
	if err != nil {
		writeServiceError(r, w, fn, err)
		return
	}

	var req recordRequest
	if action != models.ActionDelete {
		if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeServiceError(r, w, fn, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
			return
		}
	}
	if action != models.ActionCreate {
		req.ClientID = chi.URLParam(r, "clientID")
	}

	rec, err := h.services.Journal.RecordMutation(r.Context(), entityType, req.ClientID, action, req.Payload)
	if err != nil {
		writeServiceError(r, w, fn, err)
		return
	}

	status := http.StatusOK
	if action == models.ActionCreate {
		status = http.StatusCreated
	}
	writeJSON(r, w, rec, status)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	entityType, err := entityTypeParam(r)
	if err != nil {
		writeServiceError(r, w, "*Handler.getRecord", err)
		return
	}

	rec, err := h.services.Journal.Record(r.Context(), entityType, chi.URLParam(r, "clientID"))
	if err != nil {
		writeServiceError(r, w, "*Handler.getRecord", err)
		return
	}
	writeJSON(r, w, rec, http.StatusOK)
}
