// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/service"
	"github.com/MKhiriev/go-sync-engine/models"
)

type Handler struct {
	services  *service.Services
	buildInfo models.AppBuildInfo

	// hashKey enables the HashSHA256 check on write routes when set.
	hashKey        string
	syncInterval   time.Duration
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		buildInfo:      buildInfo,
		hashKey:        cfg.App.HashKey,
		syncInterval:   cfg.Workers.SyncInterval,
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}
}
