// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ServerApp holds token and integrity settings of the remote store server.
type ServerApp struct {
	HashKey       string
	TokenSignKey  string
	TokenIssuer   string
	TokenDuration time.Duration
	Version       string
}

// ServerStorage holds the PostgreSQL connection string.
type ServerStorage struct {
	DSN string
}

// ServerConfig is the server's view of [StructuredConfig].
type ServerConfig struct {
	App       ServerApp
	Storage   ServerStorage
	Server    Server
	Telemetry Telemetry
}

// GetServerConfig loads the structured config and projects the server settings.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newServerConfig(cfg)
}

func newServerConfig(cfg *StructuredConfig) (*ServerConfig, error) {
	serverCfg := &ServerConfig{
		App: ServerApp{
			HashKey:       cfg.App.HashKey,
			TokenSignKey:  cfg.App.TokenSignKey,
			TokenIssuer:   cfg.App.TokenIssuer,
			TokenDuration: cfg.App.TokenDuration,
			Version:       cfg.App.Version,
		},
		Storage:   ServerStorage{DSN: cfg.Storage.DB.DSN},
		Server:    cfg.Server,
		Telemetry: cfg.Telemetry,
	}

	return serverCfg, serverCfg.validate()
}
