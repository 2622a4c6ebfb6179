// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Supported client transports.
const (
	TransportHTTP = "http"
	TransportGRPC = "grpc"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	Token        string
	HashKey      string
	DataDir      string
	RememberKey  bool
	LegacyEvents string
}

// ClientAdapter holds remote store connection settings.
type ClientAdapter struct {
	Transport      string
	HTTPAddress    string
	GRPCAddress    string
	RequestTimeout time.Duration
}

// ClientStorage holds on-device store settings.
type ClientStorage struct {
	Path       string
	WriteDelay time.Duration
}

// ClientWorkers holds background worker settings.
type ClientWorkers struct {
	ConnectivityInterval time.Duration
	EventsReconnect      time.Duration
}

// ClientConfig is the client's view of [StructuredConfig].
type ClientConfig struct {
	App       ClientApp
	Adapter   ClientAdapter
	Storage   ClientStorage
	Workers   ClientWorkers
	Sync      Sync
	Tabs      Tabs
	Telemetry Telemetry
}

// GetClientConfig loads the structured config and projects the client settings.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	clientCfg := &ClientConfig{
		App: ClientApp{
			Token:        cfg.App.Token,
			HashKey:      cfg.App.HashKey,
			DataDir:      cfg.App.DataDir,
			RememberKey:  cfg.App.RememberKey,
			LegacyEvents: cfg.App.LegacyEvents,
		},
		Adapter: ClientAdapter{
			Transport:      cfg.Adapter.Transport,
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			GRPCAddress:    cfg.Adapter.GRPCAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			Path:       cfg.Storage.Local.Path,
			WriteDelay: cfg.Storage.Local.WriteDelay,
		},
		Workers: ClientWorkers{
			ConnectivityInterval: cfg.Workers.ConnectivityInterval,
			EventsReconnect:      cfg.Workers.EventsReconnect,
		},
		Sync:      cfg.Sync,
		Tabs:      cfg.Tabs,
		Telemetry: cfg.Telemetry,
	}

	if clientCfg.Storage.Path == "" && cfg.App.DataDir != "" {
		clientCfg.Storage.Path = filepath.Join(cfg.App.DataDir, "omnifolio.db")
	}
	if clientCfg.Tabs.ChannelDir == "" && cfg.App.DataDir != "" {
		clientCfg.Tabs.ChannelDir = filepath.Join(cfg.App.DataDir, "tabs")
	}

	return clientCfg, clientCfg.validate()
}
