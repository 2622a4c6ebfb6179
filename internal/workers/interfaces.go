// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the client's background loops: connectivity probing
// and the remote snapshot events stream.
package workers

import (
	"context"

	"github.com/MKhiriev/go-omnifolio/models"
)

// Worker is a background loop. Run blocks until ctx is done or the worker
// gives up, and returns nil on a clean stop.
type Worker interface {
	Run(ctx context.Context) error
}

// OnlineSetter receives the connectivity signal.
type OnlineSetter interface {
	SetOnline(online bool)
}

// EventsSource streams snapshot events until the connection drops.
type EventsSource interface {
	Listen(ctx context.Context, fn func(models.SnapshotEvent)) error
}

// RevisionSink is told about revisions pushed by other devices.
type RevisionSink interface {
	OnRemoteRevision(ctx context.Context, rev int64) error
}
