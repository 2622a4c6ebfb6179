// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncStatus is the coarse state of background synchronisation.
type SyncStatus string

const (
	SyncIdle    SyncStatus = "idle"
	SyncSyncing SyncStatus = "syncing"
	SyncOffline SyncStatus = "offline"
	SyncError   SyncStatus = "error"
)

// SyncState is the read model exposed to the UI.
type SyncState struct {
	Status         SyncStatus `json:"status"`
	LastSyncedRev  int64      `json:"lastSyncedRev"`
	LastSyncedAt   *time.Time `json:"lastSyncedAt,omitempty"`
	PendingChanges int64      `json:"pendingChanges"`
	Error          string     `json:"error,omitempty"`
	IsOnline       bool       `json:"isOnline"`
}

// PullOutcome classifies the result of comparing a remote snapshot with the
// local one.
type PullOutcome string

const (
	// PullNoRemote means the remote store holds nothing for the user yet.
	PullNoRemote PullOutcome = "no-remote"
	// PullLocalWins means the local snapshot is at least as new as the remote one.
	PullLocalWins PullOutcome = "local-wins"
	// PullRemoteWins means the remote snapshot is newer and the local one had
	// nothing unpushed.
	PullRemoteWins PullOutcome = "remote-wins"
	// PullConflictRemoteWins means the remote snapshot is newer while the local
	// one carried unpushed changes; those local changes are discarded.
	PullConflictRemoteWins PullOutcome = "conflict-remote-wins"
	// PullError means the pull or decryption failed.
	PullError PullOutcome = "error"
)

// PullResult carries a [PullOutcome] with the remote snapshot (for the
// remote-wins outcomes) or the failure (for PullError).
type PullResult struct {
	Outcome PullOutcome
	Remote  *AppState
	Err     error
}
