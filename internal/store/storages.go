// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync-engine/internal/config"
	"github.com/MKhiriev/go-sync-engine/internal/logger"
)

// NewLocalStore initialises the local store selected by cfg.DB.Driver:
//   - "sqlite3": opens (creating if needed) the SQLite file at cfg.DB.DSN and
//     runs pending schema migrations;
//   - "memory": an in-RAM store, snapshotted to cfg.DB.DSN as JSON when set.
func NewLocalStore(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (LocalStore, error) {
	logger.Info().Str("driver", cfg.DB.Driver).Msg("creating local store...")

	switch cfg.DB.Driver {
	case config.DriverSQLite:
		db, err := NewConnectSQLite(ctx, cfg.DB, logger)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection error: %w", err)
		}

		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}

		return NewSQLStore(db, logger), nil
	case config.DriverMemory:
		memStore, err := NewMemoryStore(cfg.DB.DSN)
		if err != nil {
			return nil, fmt.Errorf("memory store error: %w", err)
		}

		return memStore, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.DB.Driver)
	}
}
