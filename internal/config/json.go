// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk JSON layout of [StructuredConfig].
// Durations accept both Go duration strings ("10m") and nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		HashKey  string `json:"hash_key"`
		LogLevel string `json:"log_level"`
		LogFile  string `json:"log_file"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		EventsAddress  string   `json:"events_address"`
		RequestTimeout Duration `json:"request_timeout"`
		Token          string   `json:"token"`
	} `json:"adapter,omitempty"`

	Workers struct {
		SyncInterval  Duration `json:"sync_interval"`
		BackoffStep   Duration `json:"backoff_step"`
		MaxBackoff    Duration `json:"max_backoff"`
		PushBatchSize int      `json:"push_batch_size"`
		EntityTypes   []string `json:"entity_types"`
	} `json:"workers,omitempty"`

	Conflicts struct {
		DefaultPolicy string            `json:"default_policy"`
		Overrides     map[string]string `json:"overrides"`
		UndeleteTypes []string          `json:"undelete_types"`
	} `json:"conflicts,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			HashKey:  jsonCfg.App.HashKey,
			LogLevel: jsonCfg.App.LogLevel,
			LogFile:  jsonCfg.App.LogFile,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			EventsAddress:  jsonCfg.Adapter.EventsAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			Token:          jsonCfg.Adapter.Token,
		},
		Workers: Workers{
			SyncInterval:  time.Duration(jsonCfg.Workers.SyncInterval),
			BackoffStep:   time.Duration(jsonCfg.Workers.BackoffStep),
			MaxBackoff:    time.Duration(jsonCfg.Workers.MaxBackoff),
			PushBatchSize: jsonCfg.Workers.PushBatchSize,
			EntityTypes:   jsonCfg.Workers.EntityTypes,
		},
		Conflicts: Conflicts{
			DefaultPolicy: jsonCfg.Conflicts.DefaultPolicy,
			Overrides:     jsonCfg.Conflicts.Overrides,
			UndeleteTypes: jsonCfg.Conflicts.UndeleteTypes,
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
