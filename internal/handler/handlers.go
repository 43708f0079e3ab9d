// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/handler/http"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/service"
	"github.com/MKhiriev/go-sync-engine/models"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers creates the operator API handlers. The daemon refuses to start
// without an operator address: it is the only way to feed the journal.
func NewHandlers(services *service.Services, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, cfg, buildInfo, logger),
	}, nil
}
