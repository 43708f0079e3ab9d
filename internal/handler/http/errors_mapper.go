// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-sync-engine/internal/service"
)

// errorStatusList is checked in order: the first matching sentinel wins, so
// more specific errors come before the ones they wrap.
var errorStatusList = []struct {
	err    error
	status int
}{
	{ErrUnknownEntityType, http.StatusNotFound},
	{ErrInvalidJSON, http.StatusBadRequest},
	{ErrIntegrityCheckFailed, http.StatusBadRequest},
	{ErrUnknownSyncMode, http.StatusBadRequest},

	{service.ErrValidation, http.StatusBadRequest},
	{service.ErrRecordNotFound, http.StatusNotFound},
	{service.ErrConflictNotFound, http.StatusNotFound},
	{service.ErrRecordExists, http.StatusConflict},
	{service.ErrRecordDeleted, http.StatusGone},
	{service.ErrIdentityConflict, http.StatusConflict},
	{service.ErrSyncQueued, http.StatusAccepted},
	{service.ErrSyncAlreadyRunning, http.StatusConflict},
	{service.ErrUnresolvedConflict, http.StatusConflict},
	{service.ErrOffline, http.StatusServiceUnavailable},
	{service.ErrUnauthorized, http.StatusBadGateway},
	{service.ErrTransport, http.StatusBadGateway},
	{service.ErrStorage, http.StatusInternalServerError},
}

func statusFromError(err error) int {
	for _, e := range errorStatusList {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}
