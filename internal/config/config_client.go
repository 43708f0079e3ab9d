// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-sync-engine/models"
)

// Defaults applied by [GetClientConfig] to fields left empty by every source.
const (
	DefaultDriver         = "sqlite3"
	DefaultDSN            = "syncd.db"
	DefaultRequestTimeout = 30 * time.Second
	DefaultSyncInterval   = 15 * time.Minute
	DefaultBackoffStep    = 10 * time.Minute
	DefaultMaxBackoff     = time.Hour
	DefaultPushBatchSize  = 100
	DefaultServerAddress  = "localhost:8081"
)

// Supported local store drivers.
const (
	DriverSQLite = "sqlite3"
	DriverMemory = "memory"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// HashKey is the HMAC key used to sign push request bodies.
	HashKey  string
	LogLevel string
	LogFile  string
}

// ClientAdapter holds network settings used by the remote transport layer.
type ClientAdapter struct {
	HTTPAddress    string
	EventsAddress  string
	RequestTimeout time.Duration
	Token          string
}

// ClientDB contains local database connection settings.
type ClientDB struct {
	Driver string
	DSN    string
}

// ClientStorage groups local storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// ClientWorkers contains background sync settings.
type ClientWorkers struct {
	SyncInterval  time.Duration
	BackoffStep   time.Duration
	MaxBackoff    time.Duration
	PushBatchSize int
	EntityTypes   []models.EntityType
}

// ClientConflicts contains the parsed conflict policy table.
type ClientConflicts struct {
	DefaultPolicy models.ConflictPolicy
	Overrides     map[models.EntityType]models.ConflictPolicy
	UndeleteTypes []models.EntityType
}

// ClientServer contains operator API settings.
type ClientServer struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// ClientConfig is the runtime configuration of the sync daemon assembled from
// [StructuredConfig].
type ClientConfig struct {
	App       ClientApp
	Adapter   ClientAdapter
	Storage   ClientStorage
	Workers   ClientWorkers
	Conflicts ClientConflicts
	Server    ClientServer
}

// GetClientConfig builds and validates the daemon config view from the merged
// structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewClientConfig(cfg)
}

// NewClientConfig maps cfg onto a [ClientConfig], fills defaults and
// validates the result.
func NewClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		App: ClientApp{
			HashKey:  cfg.App.HashKey,
			LogLevel: cfg.App.LogLevel,
			LogFile:  cfg.App.LogFile,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			EventsAddress:  cfg.Adapter.EventsAddress,
			RequestTimeout: orDuration(cfg.Adapter.RequestTimeout, DefaultRequestTimeout),
			Token:          cfg.Adapter.Token,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				Driver: orString(cfg.Storage.DB.Driver, DefaultDriver),
				DSN:    cfg.Storage.DB.DSN,
			},
		},
		Workers: ClientWorkers{
			SyncInterval:  orDuration(cfg.Workers.SyncInterval, DefaultSyncInterval),
			BackoffStep:   orDuration(cfg.Workers.BackoffStep, DefaultBackoffStep),
			MaxBackoff:    orDuration(cfg.Workers.MaxBackoff, DefaultMaxBackoff),
			PushBatchSize: cfg.Workers.PushBatchSize,
			EntityTypes:   toEntityTypes(cfg.Workers.EntityTypes),
		},
		Conflicts: ClientConflicts{
			DefaultPolicy: models.ConflictPolicy(orString(cfg.Conflicts.DefaultPolicy, string(models.PolicyServerWins))),
			Overrides:     make(map[models.EntityType]models.ConflictPolicy, len(cfg.Conflicts.Overrides)),
			UndeleteTypes: toEntityTypes(cfg.Conflicts.UndeleteTypes),
		},
		Server: ClientServer{
			HTTPAddress:    orString(cfg.Server.HTTPAddress, DefaultServerAddress),
			RequestTimeout: orDuration(cfg.Server.RequestTimeout, DefaultRequestTimeout),
		},
	}

	if clientCfg.Workers.PushBatchSize == 0 {
		clientCfg.Workers.PushBatchSize = DefaultPushBatchSize
	}
	if clientCfg.Storage.DB.Driver == DriverSQLite && clientCfg.Storage.DB.DSN == "" {
		clientCfg.Storage.DB.DSN = DefaultDSN
	}
	if len(clientCfg.Workers.EntityTypes) == 0 {
		clientCfg.Workers.EntityTypes = models.AllEntityTypes()
	}
	for entityType, policy := range cfg.Conflicts.Overrides {
		clientCfg.Conflicts.Overrides[models.EntityType(entityType)] = models.ConflictPolicy(policy)
	}

	return clientCfg, clientCfg.validate()
}

func orString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orDuration(v, def time.Duration) time.Duration {
	if v == 0 {
		return def
	}
	return v
}

func toEntityTypes(in []string) []models.EntityType {
	if len(in) == 0 {
		return nil
	}
	out := make([]models.EntityType, 0, len(in))
	for _, s := range in {
		out = append(out, models.EntityType(s))
	}
	return out
}
