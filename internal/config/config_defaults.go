// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Default timings of the sync protocol.
const (
	DefaultPushDebounce      = 800 * time.Millisecond
	DefaultStatusDebounce    = 2 * time.Second
	DefaultRetryInterval     = 30 * time.Second
	DefaultMaxRetries        = 3
	DefaultLocalWriteDelay   = 250 * time.Millisecond
	DefaultClaimWindow       = 100 * time.Millisecond
	DefaultHeartbeatInterval = 2 * time.Second
	DefaultLeaderTimeout     = 5 * time.Second
	DefaultMaxJitter         = 250 * time.Millisecond
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "omnifolio",
			TokenDuration: 30 * 24 * time.Hour,
			DataDir:       ".omnifolio",
		},
		Storage: Storage{
			Local: Local{WriteDelay: DefaultLocalWriteDelay},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			Transport:      TransportHTTP,
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 10 * time.Second,
		},
		Workers: Workers{
			ConnectivityInterval: 10 * time.Second,
			EventsReconnect:      5 * time.Second,
		},
		Sync: Sync{
			PushDebounce:   DefaultPushDebounce,
			StatusDebounce: DefaultStatusDebounce,
			RetryInterval:  DefaultRetryInterval,
			MaxRetries:     DefaultMaxRetries,
		},
		Tabs: Tabs{
			ClaimWindow:       DefaultClaimWindow,
			HeartbeatInterval: DefaultHeartbeatInterval,
			LeaderTimeout:     DefaultLeaderTimeout,
			MaxJitter:         DefaultMaxJitter,
		},
	}
}
