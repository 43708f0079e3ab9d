// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync-engine/internal/adapter"
	"github.com/MKhiriev/go-sync-engine/internal/client"
	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/handler"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
	"github.com/MKhiriev/go-sync-engine/internal/server"
	"github.com/MKhiriev/go-sync-engine/internal/service"
	"github.com/MKhiriev/go-sync-engine/internal/store"
	"github.com/MKhiriev/go-sync-engine/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger("syncd").Fatal().Err(err).Msg("error getting configs")
	}

	log := newLogger(cfg.App)
	log.Debug().Any("config", cfg.Workers).Msg("received configs")

	localStore, err := store.NewLocalStore(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local store")
	}

	remote, err := adapter.NewHTTPRemoteAPI(cfg.Adapter, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote adapter")
	}

	connectivity, err := adapter.NewHTTPConnectivity(cfg.Adapter, log)
	if err != nil {
		log.Warn().Err(err).Msg("health probe unavailable, assuming online")
		connectivity = adapter.AlwaysOnline{}
	}

	var events adapter.EventSource
	if cfg.Adapter.EventsAddress != "" {
		events, err = adapter.NewWSEventSource(cfg.Adapter, adapter.DefaultReconnectDelay, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create live event source")
		}
	}

	services := service.NewServices(localStore, remote, connectivity, cfg, log)

	handlers, err := handler.NewHandlers(services, cfg, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	app, err := client.NewApp(services, srv, events, localStore, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init sync daemon error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("sync daemon run error")
	}
}

func newLogger(app config.ClientApp) *logger.Logger {
	log := logger.NewLogger("syncd")
	if app.LogFile != "" {
		log = logger.NewFileLogger("syncd", app.LogFile)
	}
	logger.SetLevel(app.LogLevel)
	return log
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
