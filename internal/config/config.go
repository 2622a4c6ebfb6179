// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig aggregates every setting of the client and the server.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env: environment variable name for scalar fields.
type StructuredConfig struct {
	App       App       `envPrefix:"APP_"`
	Storage   Storage   `envPrefix:"STORAGE_"`
	Server    Server    `envPrefix:"SERVER_"`
	Adapter   Adapter   `envPrefix:"ADAPTER_"`
	Workers   Workers   `envPrefix:"WORKERS_"`
	Sync      Sync      `envPrefix:"SYNC_"`
	Tabs      Tabs      `envPrefix:"TABS_"`
	Telemetry Telemetry `envPrefix:"TELEMETRY_"`

	// JSONFilePath is the optional JSON config file merged last.
	// Env: CONFIG, flags: -c, -config.
	JSONFilePath string `env:"CONFIG"`
}

// App holds credentials, token parameters and versioning.
type App struct {
	// Token is the client's bearer access token; its subject is the user id.
	// Env: APP_TOKEN
	Token string `env:"TOKEN"`

	// HashKey signs request bodies in the HashSHA256 header.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// TokenSignKey signs and verifies access tokens on the server.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of minted tokens.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// DataDir is the per-device directory holding the local database and
	// the tab channel.
	// Env: APP_DATA_DIR
	DataDir string `env:"DATA_DIR"`

	// RememberKey stores the recovery key on this device, sealed with the
	// device secret.
	// Env: APP_REMEMBER_KEY
	RememberKey bool `env:"REMEMBER_KEY"`

	// LegacyEvents is a JSON Lines file of events exported by older data
	// stores, replayed through the bridge once on start.
	// Env: APP_LEGACY_EVENTS
	LegacyEvents string `env:"LEGACY_EVENTS"`

	// Subject is the user id cmd/token mints a token for.
	// Env: APP_SUBJECT
	Subject string `env:"SUBJECT"`

	// Version is reported by /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the persistence backends.
type Storage struct {
	// DB is the server's PostgreSQL database.
	DB DB `envPrefix:"DB_"`
	// Local is the client's on-device SQLite database.
	Local Local `envPrefix:"LOCAL_"`
}

// DB holds the PostgreSQL connection string.
type DB struct {
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Local holds the on-device store settings.
type Local struct {
	// Path of the SQLite file. Defaults to <DataDir>/omnifolio.db.
	// Env: STORAGE_LOCAL_PATH
	Path string `env:"PATH"`

	// WriteDelay coalesces bursts of saves into one write.
	// Env: STORAGE_LOCAL_WRITE_DELAY
	WriteDelay time.Duration `env:"WRITE_DELAY"`
}

// Server holds listener settings of the remote store server.
type Server struct {
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the client's remote store connection settings.
type Adapter struct {
	// Transport selects "http" or "grpc".
	// Env: ADAPTER_TRANSPORT
	Transport string `env:"TRANSPORT"`
	// HTTPAddress is the base URL or host:port of the HTTP API.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// Env: ADAPTER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds background worker settings.
type Workers struct {
	// ConnectivityInterval is how often the remote store is probed.
	// Env: WORKERS_CONNECTIVITY_INTERVAL
	ConnectivityInterval time.Duration `env:"CONNECTIVITY_INTERVAL"`
	// EventsReconnect is the pause before the remote events stream redials.
	// Env: WORKERS_EVENTS_RECONNECT
	EventsReconnect time.Duration `env:"EVENTS_RECONNECT"`
}

// Sync holds timing of the sync engine and the status tracker.
type Sync struct {
	// Env: SYNC_PUSH_DEBOUNCE
	PushDebounce time.Duration `env:"PUSH_DEBOUNCE"`
	// Env: SYNC_STATUS_DEBOUNCE
	StatusDebounce time.Duration `env:"STATUS_DEBOUNCE"`
	// Env: SYNC_RETRY_INTERVAL
	RetryInterval time.Duration `env:"RETRY_INTERVAL"`
	// Env: SYNC_MAX_RETRIES
	MaxRetries int `env:"MAX_RETRIES"`
}

// Tabs holds leader election timing and the channel location.
type Tabs struct {
	// ChannelDir is watched for coordination messages. Defaults to
	// <DataDir>/tabs.
	// Env: TABS_CHANNEL_DIR
	ChannelDir string `env:"CHANNEL_DIR"`
	// Env: TABS_CLAIM_WINDOW
	ClaimWindow time.Duration `env:"CLAIM_WINDOW"`
	// Env: TABS_HEARTBEAT_INTERVAL
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL"`
	// Env: TABS_LEADER_TIMEOUT
	LeaderTimeout time.Duration `env:"LEADER_TIMEOUT"`
	// Env: TABS_MAX_JITTER
	MaxJitter time.Duration `env:"MAX_JITTER"`
}

// Telemetry holds the opt-in tracing exporter settings.
type Telemetry struct {
	// Endpoint is the OTLP/HTTP collector URL. Empty disables tracing.
	// Env: TELEMETRY_OTEL_ENDPOINT
	Endpoint string `env:"OTEL_ENDPOINT"`
}

// GetStructuredConfig loads defaults, environment, flags and the optional
// JSON file, merges them and validates the result.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags().
		withJSON().
		build()
}
