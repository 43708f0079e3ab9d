// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/utils"
)

const defaultProbeTimeout = 5 * time.Second

type httpConnectivity struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPConnectivity returns a [Connectivity] that probes GET /api/health on
// the configured server. Any 2xx answer within the probe timeout means online.
func NewHTTPConnectivity(adapterCfg config.ClientAdapter, logger *logger.Logger) (Connectivity, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	timeout := adapterCfg.RequestTimeout
	if timeout <= 0 || timeout > defaultProbeTimeout {
		timeout = defaultProbeTimeout
	}

	return &httpConnectivity{
		client: utils.NewHTTPClient(baseURL, timeout, ""),
		logger: logger,
	}, nil
}

func (c *httpConnectivity) IsOnline(ctx context.Context) bool {
	resp, err := c.client.R().SetContext(ctx).Get("/api/health")
	if err != nil {
		c.logger.Debug().Err(err).Str("func", "httpConnectivity.IsOnline").Msg("server unreachable")
		return false
	}
	if err = mapHTTPError(resp); err != nil {
		c.logger.Debug().Err(err).Str("func", "httpConnectivity.IsOnline").Msg("server unhealthy")
		return false
	}
	return true
}

// AlwaysOnline is a [Connectivity] for deployments without a health endpoint.
// Offline periods then surface as transport errors of the cycle itself.
type AlwaysOnline struct{}

func (AlwaysOnline) IsOnline(context.Context) bool { return true }
