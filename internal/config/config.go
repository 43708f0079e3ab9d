// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container of the sync
// daemon. It is populated by merging values from environment variables,
// command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-level settings: logging and the transport hash key.
	App App `envPrefix:"APP_"`

	// Storage holds the local store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the remote sync server endpoints and timeouts.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds the periodic sync schedule and push batching settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Conflicts holds the conflict resolution policy.
	Conflicts Conflicts `envPrefix:"CONFLICTS_"`

	// Server holds the operator HTTP API listen address.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds process-level configuration values.
type App struct {
	// HashKey is the HMAC key used to sign push request bodies
	// (HashSHA256 header).
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// LogFile redirects logs to a file instead of stdout when non-empty.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Storage groups the configuration of the local store.
type Storage struct {
	// DB holds the local database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds the local database settings.
type DB struct {
	// Driver is "sqlite3" (default) or "memory".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the SQLite file path, or the JSON snapshot path for the memory
	// driver (empty keeps the memory store purely in RAM).
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Adapter holds the remote sync server settings.
type Adapter struct {
	// HTTPAddress is the base URL of the remote sync API
	// (e.g. "https://api.example.com").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// EventsAddress is the websocket URL of the live update channel.
	// Live updates are disabled when empty.
	// Env: ADAPTER_EVENTS_ADDRESS
	EventsAddress string `env:"EVENTS_ADDRESS"`

	// RequestTimeout bounds every push/pull network call.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is the bearer token used against the remote API.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`
}

// Workers holds background sync settings.
type Workers struct {
	// SyncInterval is the period of the recurring sync trigger.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// BackoffStep is the linear backoff step applied after a failed cycle.
	// Env: WORKERS_BACKOFF_STEP
	BackoffStep time.Duration `env:"BACKOFF_STEP"`

	// MaxBackoff caps the retry delay.
	// Env: WORKERS_MAX_BACKOFF
	MaxBackoff time.Duration `env:"MAX_BACKOFF"`

	// PushBatchSize is the maximum number of mutations per push request.
	// Env: WORKERS_PUSH_BATCH_SIZE
	PushBatchSize int `env:"PUSH_BATCH_SIZE"`

	// EntityTypes restricts syncing to the listed entity types
	// (comma separated). Empty means all types.
	// Env: WORKERS_ENTITY_TYPES
	EntityTypes []string `env:"ENTITY_TYPES"`
}

// Conflicts holds conflict resolution settings.
type Conflicts struct {
	// DefaultPolicy applies to equal-timestamp conflicts of every entity
	// type without an override.
	// Env: CONFLICTS_DEFAULT_POLICY
	DefaultPolicy string `env:"DEFAULT_POLICY"`

	// Overrides maps entity types to policies, e.g. "document:manual".
	// Env: CONFLICTS_OVERRIDES
	Overrides map[string]string `env:"OVERRIDES"`

	// UndeleteTypes lists entity types for which a local edit of a
	// server-deleted entity recreates it instead of dropping the edit.
	// Env: CONFLICTS_UNDELETE_TYPES
	UndeleteTypes []string `env:"UNDELETE_TYPES"`
}

// Server holds the operator HTTP API settings.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds operator requests.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources in the following priority order (last source wins for
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
