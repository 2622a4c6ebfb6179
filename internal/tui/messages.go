// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/MKhiriev/go-omnifolio/models"

type rememberedKeyMsg struct {
	key string
	err error
}

type unlockedMsg struct {
	err error
}

type keyGeneratedMsg struct {
	key string
	err error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}

// stateChangedMsg is sent whenever the container publishes a new snapshot.
type stateChangedMsg struct {
	rev    int64
	origin models.ChangeOrigin
}

type syncChangedMsg struct {
	state models.SyncState
}

type leaderChangedMsg struct {
	isLeader bool
}

// conflictMsg means a conflict was resolved in favour of another device.
type conflictMsg struct{}
