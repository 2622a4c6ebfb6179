// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-omnifolio/internal/config"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/models"
)

// SyncFunc performs one sync attempt. The tracker retries it on failure.
type SyncFunc func(ctx context.Context) error

// SyncStatusTracker is the observable sync status of one tab. It decides
// when to sync and how often to retry, but never encrypts or talks to the
// network itself; the registered SyncFunc does.
//
//	idle ──NotifyChange+debounce──▶ syncing ──ok──▶ idle
//	                                   │
//	                       maxRetries failures
//	                                   ▼
//	                                 error
//
// Any status moves to offline when connectivity is lost and is re-evaluated
// when it returns.
type SyncStatusTracker struct {
	debounce      time.Duration
	retryInterval time.Duration
	maxRetries    int
	logger        *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu            sync.Mutex
	state         models.SyncState
	currentRev    int64
	beforeOffline models.SyncStatus
	retries       int
	exhausted     bool
	syncFn        SyncFunc
	debounceTimer *time.Timer
	retryTimer    *time.Timer
	listeners     map[int]SyncStateListener
	nextListener  int

	// notifyMu keeps listener calls in the order of the changes.
	notifyMu sync.Mutex
}

// NewSyncStatusTracker returns an online, idle tracker.
func NewSyncStatusTracker(cfg config.Sync, log *logger.Logger) *SyncStatusTracker {
	if cfg.StatusDebounce <= 0 {
		cfg.StatusDebounce = config.DefaultStatusDebounce
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = config.DefaultRetryInterval
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = config.DefaultMaxRetries
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &SyncStatusTracker{
		debounce:      cfg.StatusDebounce,
		retryInterval: cfg.RetryInterval,
		maxRetries:    cfg.MaxRetries,
		logger:        log,
		ctx:           ctx,
		cancel:        cancel,
		state:         models.SyncState{Status: models.SyncIdle, IsOnline: true},
		listeners:     make(map[int]SyncStateListener),
	}
}

// SetSyncFunc registers the function invoked for every sync attempt.
func (t *SyncStatusTracker) SetSyncFunc(fn SyncFunc) {
	t.mu.Lock()
	t.syncFn = fn
	t.mu.Unlock()
}

// Snapshot returns the current read model.
func (t *SyncStatusTracker) Snapshot() models.SyncState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Subscribe registers fn for every status change and returns a function
// removing it.
func (t *SyncStatusTracker) Subscribe(fn SyncStateListener) func() {
	t.mu.Lock()
	id := t.nextListener
	t.nextListener++
	t.listeners[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.listeners, id)
		t.mu.Unlock()
	}
}

// NotifyChange records a new local revision and (re)arms the debounce
// after which the sync function runs.
func (t *SyncStatusTracker) NotifyChange(rev int64) {
	t.mu.Lock()
	if rev > t.currentRev {
		t.currentRev = rev
	}
	t.updatePending()
	if t.state.IsOnline {
		t.stopTimer(&t.debounceTimer)
		t.debounceTimer = time.AfterFunc(t.debounce, t.runSync)
	}
	t.mu.Unlock()

	t.publish()
}

// ScheduleSyncNow runs the sync function right away, skipping the debounce.
func (t *SyncStatusTracker) ScheduleSyncNow() {
	t.mu.Lock()
	t.stopTimer(&t.debounceTimer)
	t.mu.Unlock()

	go t.runSync()
}

// Retry resets the retry budget and syncs now. Bound to the user's retry
// action.
func (t *SyncStatusTracker) Retry() {
	t.mu.Lock()
	t.retries = 0
	t.exhausted = false
	t.stopTimer(&t.retryTimer)
	if t.state.Status == models.SyncError {
		t.state.Status = models.SyncIdle
		t.state.Error = ""
	}
	t.mu.Unlock()

	t.publish()
	t.ScheduleSyncNow()
}

// SetOnline feeds the device connectivity signal.
func (t *SyncStatusTracker) SetOnline(online bool) {
	t.mu.Lock()
	if t.state.IsOnline == online {
		t.mu.Unlock()
		return
	}
	t.state.IsOnline = online

	var syncNow bool
	if !online {
		t.beforeOffline = t.state.Status
		t.state.Status = models.SyncOffline
		t.stopTimer(&t.debounceTimer)
		t.stopTimer(&t.retryTimer)
	} else {
		switch {
		case t.exhausted:
			t.state.Status = models.SyncError
		case t.state.PendingChanges > 0 || t.beforeOffline == models.SyncSyncing:
			t.state.Status = models.SyncIdle
			syncNow = true
		default:
			t.state.Status = models.SyncIdle
		}
	}
	t.mu.Unlock()

	t.logger.Info().Str("func", "SyncStatusTracker.SetOnline").Bool("online", online).Msg("connectivity changed")
	t.publish()

	if syncNow {
		t.ScheduleSyncNow()
	}
}

func (t *SyncStatusTracker) IsOnline() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.IsOnline
}

// MarkSyncing is called by the engine when an attempt starts.
func (t *SyncStatusTracker) MarkSyncing() {
	t.mu.Lock()
	if t.state.IsOnline {
		t.state.Status = models.SyncSyncing
	} else {
		t.beforeOffline = models.SyncSyncing
	}
	t.mu.Unlock()

	t.publish()
}

// MarkSynced records rev as durable on the remote store.
func (t *SyncStatusTracker) MarkSynced(rev int64) {
	now := time.Now()

	t.mu.Lock()
	if rev > t.state.LastSyncedRev {
		t.state.LastSyncedRev = rev
	}
	if rev > t.currentRev {
		t.currentRev = rev
	}
	t.state.LastSyncedAt = &now
	t.state.Error = ""
	t.retries = 0
	t.exhausted = false
	t.stopTimer(&t.retryTimer)
	t.updatePending()
	if t.state.IsOnline {
		t.state.Status = models.SyncIdle
	} else {
		t.beforeOffline = models.SyncIdle
	}
	t.mu.Unlock()

	t.publish()
}

// MarkError surfaces a terminal failure. It stays until Retry or the next
// successful sync.
func (t *SyncStatusTracker) MarkError(err error) {
	t.mu.Lock()
	t.exhausted = true
	t.state.Error = err.Error()
	t.stopTimer(&t.retryTimer)
	if t.state.IsOnline {
		t.state.Status = models.SyncError
	} else {
		t.beforeOffline = models.SyncError
	}
	t.mu.Unlock()

	t.logger.Error().Err(err).Str("func", "SyncStatusTracker.MarkError").Msg("sync failed")
	t.publish()
}

// Close stops all timers. A sync already running gets a cancelled context.
func (t *SyncStatusTracker) Close() {
	t.cancel()

	t.mu.Lock()
	t.stopTimer(&t.debounceTimer)
	t.stopTimer(&t.retryTimer)
	t.mu.Unlock()
}

func (t *SyncStatusTracker) runSync() {
	t.mu.Lock()
	fn := t.syncFn
	runnable := fn != nil && t.state.IsOnline && t.ctx.Err() == nil
	t.mu.Unlock()
	if !runnable {
		return
	}

	err := fn(t.ctx)
	if err == nil || t.ctx.Err() != nil {
		return
	}

	t.mu.Lock()
	switch {
	case !isRetryable(err):
		t.exhausted = true
		t.state.Status = models.SyncError
		t.state.Error = err.Error()
	case t.retries >= t.maxRetries:
		t.exhausted = true
		t.state.Status = models.SyncError
		t.state.Error = (&SyncError{Op: "sync", Retries: t.retries + 1, Err: err}).Error()
	default:
		t.retries++
		t.state.Error = err.Error()
		if t.state.IsOnline {
			t.state.Status = models.SyncSyncing
			t.stopTimer(&t.retryTimer)
			t.retryTimer = time.AfterFunc(t.retryInterval, t.runSync)
		}
	}
	retries := t.retries
	t.mu.Unlock()

	t.logger.Warn().Err(err).Str("func", "SyncStatusTracker.runSync").Int("retries", retries).Msg("sync attempt failed")
	t.publish()
}

// updatePending must be called with mu held.
func (t *SyncStatusTracker) updatePending() {
	t.state.PendingChanges = max(0, t.currentRev-t.state.LastSyncedRev)
}

// stopTimer must be called with mu held.
func (t *SyncStatusTracker) stopTimer(timer **time.Timer) {
	if *timer != nil {
		(*timer).Stop()
		*timer = nil
	}
}

func (t *SyncStatusTracker) publish() {
	t.notifyMu.Lock()
	defer t.notifyMu.Unlock()

	t.mu.Lock()
	st := t.state
	listeners := make([]SyncStateListener, 0, len(t.listeners))
	for _, fn := range t.listeners {
		listeners = append(listeners, fn)
	}
	t.mu.Unlock()

	for _, fn := range listeners {
		fn(st)
	}
}
