// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	"github.com/MKhiriev/go-omnifolio/models"
)

// Session is the running client as seen by the UI.
type Session interface {
	// RememberedKey returns the recovery key kept on this device, or "" when
	// there is none.
	RememberedKey(ctx context.Context) (string, error)

	// Unlock installs the recovery key and opens the user's state.
	Unlock(ctx context.Context, key string) error

	State() models.AppState
	SyncState() models.SyncState
	IsLeader() bool

	// Retry restarts synchronisation after a terminal error.
	Retry()
}
