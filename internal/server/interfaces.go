// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server is the lifecycle of one transport.
type Server interface {
	// RunServer serves until ctx is done, then shuts down gracefully.
	// It returns the first serving error.
	RunServer(ctx context.Context) error
}

// transport is a single listener managed by [server].
type transport interface {
	serve() error
	shutdown(ctx context.Context) error
	name() string
}
