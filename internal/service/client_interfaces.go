// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-omnifolio/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// LocalSnapshotStore is the on-device durable store seen by the state
// container. Implemented by store.LocalStateStore.
type LocalSnapshotStore interface {
	// Load never fails; a missing or unreadable snapshot yields defaults.
	Load(ctx context.Context, userID string) models.AppState
	// Save schedules a write and returns immediately.
	Save(st models.AppState)
	// Flush writes any scheduled snapshot now.
	Flush(ctx context.Context)
}

// StateBroadcaster tells the other tabs of this device about a new durable
// revision. Implemented by tabs.Coordinator.
type StateBroadcaster interface {
	BroadcastStateChanged(ctx context.Context, rev int64) error
}

// SyncReporter is the part of the status tracker the sync engine writes to.
type SyncReporter interface {
	MarkSyncing()
	MarkSynced(rev int64)
	MarkError(err error)
	IsOnline() bool
}

// PushScheduler is the part of the sync engine the state container drives.
type PushScheduler interface {
	SchedulePush(st models.AppState)
	InitialSync(ctx context.Context, local models.AppState) error
}

// ChangeNotifier is the part of the status tracker the state container
// drives.
type ChangeNotifier interface {
	NotifyChange(rev int64)
}

// StateListener receives every new live state with its origin.
type StateListener func(st models.AppState, origin models.ChangeOrigin)

// SyncStateListener receives every change of the sync read model.
type SyncStateListener func(st models.SyncState)
