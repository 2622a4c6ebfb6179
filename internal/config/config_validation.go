// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
)

// validate checks invariants shared by every binary. Binary-specific
// requirements are checked by the projected configs.
func (cfg *StructuredConfig) validate() error {
	if cfg.Sync.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries must not be negative", ErrInvalidSyncConfigs)
	}
	if cfg.Adapter.Transport != "" && cfg.Adapter.Transport != TransportHTTP && cfg.Adapter.Transport != TransportGRPC {
		return fmt.Errorf("%w: %q", ErrUnsupportedTransport, cfg.Adapter.Transport)
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Storage.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.App.Token == "" || cfg.App.DataDir == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.Path == "" || cfg.Storage.WriteDelay <= 0 {
		return ErrInvalidStorageConfigs
	}

	switch cfg.Adapter.Transport {
	case TransportHTTP:
		if cfg.Adapter.HTTPAddress == "" {
			return ErrInvalidAdapterConfigs
		}
	case TransportGRPC:
		if cfg.Adapter.GRPCAddress == "" {
			return ErrInvalidAdapterConfigs
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedTransport, cfg.Adapter.Transport)
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.ConnectivityInterval <= 0 || cfg.Workers.EventsReconnect <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Sync.PushDebounce <= 0 || cfg.Sync.StatusDebounce <= 0 || cfg.Sync.RetryInterval <= 0 {
		return ErrInvalidSyncConfigs
	}

	t := cfg.Tabs
	if t.ChannelDir == "" || t.ClaimWindow <= 0 || t.HeartbeatInterval <= 0 || t.LeaderTimeout <= t.HeartbeatInterval {
		return ErrInvalidTabsConfigs
	}

	return nil
}
