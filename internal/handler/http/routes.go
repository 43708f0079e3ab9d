// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// unsupported methods look like unknown routes
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	router.Get("/api/version", h.getVersion)

	router.Route("/api/sync", func(r chi.Router) {
		r.Post("/trigger", h.triggerSync)
		r.Put("/schedule", h.schedulePeriodic)
		r.Delete("/schedule", h.cancelPeriodic)
		r.Get("/last", h.getLastResult)
		r.Get("/pending", h.getPendingState)
		r.Get("/conflicts", h.listConflicts)
		r.With(h.withIntegrityCheck).Post("/conflicts/{type}/{clientID}/resolve", h.resolveConflict)
	})

	router.Route("/api/records/{type}", func(r chi.Router) {
		r.With(h.withIntegrityCheck).Post("/", h.createRecord)
		r.Get("/{clientID}", h.getRecord)
		r.With(h.withIntegrityCheck).Put("/{clientID}", h.updateRecord)
		r.Delete("/{clientID}", h.deleteRecord)
	})

	return router
}

func (h *Handler) getVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(r, w, versionResponse{
		Version: h.buildInfo.BuildVersion(),
		Date:    h.buildInfo.BuildDate(),
		Commit:  h.buildInfo.BuildCommit(),
	}, http.StatusOK)
}
