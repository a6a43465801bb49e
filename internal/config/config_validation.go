// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants the remote store needs at startup.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *DeviceConfig) validate() error {
	if cfg.Storage.DBPath == "" || strings.Contains(cfg.Storage.DBPath, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Server.Address == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}
