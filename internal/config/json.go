// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with snake_case keys and
// string durations.
type StructuredJSONConfig struct {
	App struct {
		Token         string   `json:"token"`
		HashKey       string   `json:"hash_key"`
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		DataDir       string   `json:"data_dir"`
		RememberKey   bool     `json:"remember_key"`
		LegacyEvents  string   `json:"legacy_events"`
		Version       string   `json:"version"`
	} `json:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db"`
		Local struct {
			Path       string   `json:"path"`
			WriteDelay Duration `json:"write_delay"`
		} `json:"local"`
	} `json:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server"`

	Adapter struct {
		Transport      string   `json:"transport"`
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter"`

	Workers struct {
		ConnectivityInterval Duration `json:"connectivity_interval"`
		EventsReconnect      Duration `json:"events_reconnect"`
	} `json:"workers"`

	Sync struct {
		PushDebounce   Duration `json:"push_debounce"`
		StatusDebounce Duration `json:"status_debounce"`
		RetryInterval  Duration `json:"retry_interval"`
		MaxRetries     int      `json:"max_retries"`
	} `json:"sync"`

	Tabs struct {
		ChannelDir        string   `json:"channel_dir"`
		ClaimWindow       Duration `json:"claim_window"`
		HeartbeatInterval Duration `json:"heartbeat_interval"`
		LeaderTimeout     Duration `json:"leader_timeout"`
		MaxJitter         Duration `json:"max_jitter"`
	} `json:"tabs"`

	Telemetry struct {
		Endpoint string `json:"otel_endpoint"`
	} `json:"telemetry"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			Token:         j.App.Token,
			HashKey:       j.App.HashKey,
			TokenSignKey:  j.App.TokenSignKey,
			TokenIssuer:   j.App.TokenIssuer,
			TokenDuration: durationOrZero(j.App.TokenDuration),
			DataDir:       j.App.DataDir,
			RememberKey:   j.App.RememberKey,
			LegacyEvents:  j.App.LegacyEvents,
			Version:       j.App.Version,
		},
		Storage: Storage{
			DB:    DB{DSN: j.Storage.DB.DSN},
			Local: Local{Path: j.Storage.Local.Path, WriteDelay: durationOrZero(j.Storage.Local.WriteDelay)},
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			GRPCAddress:    j.Server.GRPCAddress,
			RequestTimeout: durationOrZero(j.Server.RequestTimeout),
		},
		Adapter: Adapter{
			Transport:      j.Adapter.Transport,
			HTTPAddress:    j.Adapter.HTTPAddress,
			GRPCAddress:    j.Adapter.GRPCAddress,
			RequestTimeout: durationOrZero(j.Adapter.RequestTimeout),
		},
		Workers: Workers{
			ConnectivityInterval: durationOrZero(j.Workers.ConnectivityInterval),
			EventsReconnect:      durationOrZero(j.Workers.EventsReconnect),
		},
		Sync: Sync{
			PushDebounce:   durationOrZero(j.Sync.PushDebounce),
			StatusDebounce: durationOrZero(j.Sync.StatusDebounce),
			RetryInterval:  durationOrZero(j.Sync.RetryInterval),
			MaxRetries:     j.Sync.MaxRetries,
		},
		Tabs: Tabs{
			ChannelDir:        j.Tabs.ChannelDir,
			ClaimWindow:       durationOrZero(j.Tabs.ClaimWindow),
			HeartbeatInterval: durationOrZero(j.Tabs.HeartbeatInterval),
			LeaderTimeout:     durationOrZero(j.Tabs.LeaderTimeout),
			MaxJitter:         durationOrZero(j.Tabs.MaxJitter),
		},
		Telemetry: Telemetry{Endpoint: j.Telemetry.Endpoint},
	}, nil
}

// Duration is a time.Duration that unmarshals from "1h30m" strings as well
// as from nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
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
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func durationOrZero(d Duration) time.Duration {
	return time.Duration(d)
}
