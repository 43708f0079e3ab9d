// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks the merged [StructuredConfig] before it is mapped onto a
// runtime view. Only malformed values are rejected here; missing values are
// defaulted later by [NewClientConfig].
func (cfg *StructuredConfig) validate() error {
	if cfg.Workers.PushBatchSize < 0 {
		return fmt.Errorf("%w: negative push batch size", ErrInvalidWorkerConfigs)
	}
	if cfg.Workers.BackoffStep < 0 || cfg.Workers.MaxBackoff < 0 || cfg.Workers.SyncInterval < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidWorkerConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	switch cfg.Storage.DB.Driver {
	case DriverSQLite:
		if cfg.Storage.DB.DSN == "" {
			return ErrInvalidStorageConfigs
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 || cfg.Workers.PushBatchSize <= 0 {
		return ErrInvalidWorkerConfigs
	}
	if cfg.Workers.MaxBackoff < cfg.Workers.BackoffStep {
		return fmt.Errorf("%w: max backoff below backoff step", ErrInvalidWorkerConfigs)
	}
	for _, entityType := range cfg.Workers.EntityTypes {
		if !entityType.Valid() {
			return fmt.Errorf("%w: unknown entity type %q", ErrInvalidWorkerConfigs, entityType)
		}
	}

	if !cfg.Conflicts.DefaultPolicy.Valid() {
		return fmt.Errorf("%w: unknown policy %q", ErrInvalidConflictConfigs, cfg.Conflicts.DefaultPolicy)
	}
	for entityType, policy := range cfg.Conflicts.Overrides {
		if !entityType.Valid() || !policy.Valid() {
			return fmt.Errorf("%w: bad override %s:%s", ErrInvalidConflictConfigs, entityType, policy)
		}
	}
	for _, entityType := range cfg.Conflicts.UndeleteTypes {
		if !entityType.Valid() {
			return fmt.Errorf("%w: unknown entity type %q", ErrInvalidConflictConfigs, entityType)
		}
	}

	return nil
}
