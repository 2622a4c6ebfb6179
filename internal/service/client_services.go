// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-omnifolio/internal/adapter"
	"github.com/MKhiriev/go-omnifolio/internal/config"
	"github.com/MKhiriev/go-omnifolio/internal/crypto"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/models"
)

const tabReloadTimeout = 5 * time.Second

// TabCoordinator is the leader election seen by the client services.
// Implemented by tabs.Coordinator.
type TabCoordinator interface {
	StateBroadcaster
	OnLeadershipChange(fn func(isLeader bool))
	OnStateChanged(fn func(rev int64))
	IsLeader() bool
}

// ClientServices is one tab's sync stack wired together.
type ClientServices struct {
	Tracker   *SyncStatusTracker
	Engine    *SyncEngine
	Container *StateContainer
}

// NewClientServices builds the tracker, engine and container of a tab and
// connects them to each other and to the tab coordinator.
func NewClientServices(local LocalSnapshotStore, remote adapter.RemoteStore, cipher crypto.Cipher, tabs TabCoordinator, cfg config.Sync, log *logger.Logger) *ClientServices {
	tracker := NewSyncStatusTracker(cfg, log)
	engine := NewSyncEngine(remote, cipher, tabs, tracker, cfg, log)
	container := NewStateContainer(local, engine, tracker, log)

	tracker.SetSyncFunc(engine.SyncNow)
	engine.SetStateSource(container.State)
	engine.OnAdopt(func(ctx context.Context, st models.AppState, _ models.PullOutcome) {
		container.AdoptSnapshot(ctx, st, models.OriginRemote)
	})

	tabs.OnLeadershipChange(engine.SetLeader)
	tabs.OnStateChanged(func(rev int64) {
		// another tab pushed or adopted rev, so it is durable remotely
		engine.AcknowledgeRemote(rev)
		tracker.MarkSynced(rev)

		// keep the coordinator loop free of disk I/O
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), tabReloadTimeout)
			defer cancel()
			container.ReloadFromLocal(ctx, rev)
		}()
	})
	engine.SetLeader(tabs.IsLeader())

	return &ClientServices{
		Tracker:   tracker,
		Engine:    engine,
		Container: container,
	}
}

// Close stops the timers of the tracker and the engine.
func (s *ClientServices) Close() {
	s.Tracker.Close()
	s.Engine.Close()
}
