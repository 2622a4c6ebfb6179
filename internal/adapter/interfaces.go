// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the remote snapshot store.
//
// [RemoteStore] is transport-agnostic; HTTP ([NewHTTPRemoteStore]) and gRPC
// ([NewGRPCRemoteStore]) implementations map every failure onto the
// sentinels in errors.go, so the sync engine can decide what to retry with
// [errors.Is] alone.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-omnifolio/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// RemoteStore is the remote key-value blob service holding one encrypted
// snapshot per user.
type RemoteStore interface {
	// Push stores req when the stored revision is lower than req.Rev.
	// A rejected push returns a *ConflictError.
	Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error)

	// Pull returns the stored snapshot, if any.
	Pull(ctx context.Context) (models.PullResponse, error)
}

// Pinger probes the remote store. A nil error means reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Client is a connected remote store.
type Client interface {
	RemoteStore
	Pinger
	Close() error
}
