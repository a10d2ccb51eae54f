// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks the merged [StructuredConfig] before it is mapped into a
// runtime view. Only cross-source problems are checked here; per-field rules
// live in [ClientConfig.validate].
func (cfg *StructuredConfig) validate() error {
	if cfg.Log.MaxSizeMB < 0 || cfg.Log.MaxBackups < 0 || cfg.Log.MaxAgeDays < 0 {
		return ErrInvalidLogConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	switch cfg.Storage.Driver {
	case DriverSQLite:
		if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
			return fmt.Errorf("%w: sqlite DSN must point to a durable file", ErrInvalidStorageConfigs)
		}
	case DriverBolt:
		if cfg.Storage.Bolt.Path == "" {
			return fmt.Errorf("%w: bolt path is empty", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.Driver)
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.ProbeTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.ExportDir == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
