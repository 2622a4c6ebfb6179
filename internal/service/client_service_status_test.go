package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-omnifolio/internal/adapter"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/models"
)

// countingSync counts attempts and fails while err is set.
type countingSync struct {
	calls atomic.Int64
	mu    sync.Mutex
	err   error
}

func (s *countingSync) run(context.Context) error {
	s.calls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *countingSync) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func newTestTracker(t *testing.T, fn SyncFunc) *SyncStatusTracker {
	t.Helper()

	tr := NewSyncStatusTracker(fastSync(), logger.Nop())
	tr.SetSyncFunc(fn)
	t.Cleanup(tr.Close)
	return tr
}

// ── NewSyncStatusTracker ─────────────────────────────────────────────────────

func TestNewSyncStatusTracker_StartsOnlineAndIdle(t *testing.T) {
	tr := newTestTracker(t, nil)

	st := tr.Snapshot()
	assert.Equal(t, models.SyncIdle, st.Status)
	assert.True(t, st.IsOnline)
	assert.True(t, tr.IsOnline())
	assert.Zero(t, st.PendingChanges)
	assert.Nil(t, st.LastSyncedAt)
}

// ── NotifyChange ─────────────────────────────────────────────────────────────

func TestSyncStatusTracker_NotifyChange_Debounces(t *testing.T) {
	fn := &countingSync{}
	tr := newTestTracker(t, fn.run)

	for rev := int64(1); rev <= 5; rev++ {
		tr.NotifyChange(rev)
	}
	assert.Equal(t, int64(5), tr.Snapshot().PendingChanges)

	require.Eventually(t, func() bool { return fn.calls.Load() == 1 }, waitFor, tick)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(1), fn.calls.Load())
}

func TestSyncStatusTracker_MarkSynced(t *testing.T) {
	tr := newTestTracker(t, nil)

	tr.NotifyChange(4)
	tr.MarkSyncing()
	assert.Equal(t, models.SyncSyncing, tr.Snapshot().Status)

	tr.MarkSynced(3)
	st := tr.Snapshot()
	assert.Equal(t, models.SyncIdle, st.Status)
	assert.Equal(t, int64(3), st.LastSyncedRev)
	assert.Equal(t, int64(1), st.PendingChanges)
	require.NotNil(t, st.LastSyncedAt)

	tr.MarkSynced(4)
	assert.Zero(t, tr.Snapshot().PendingChanges)

	// an older acknowledgement never moves the counter back
	tr.MarkSynced(2)
	assert.Equal(t, int64(4), tr.Snapshot().LastSyncedRev)
}

// ── Failures ─────────────────────────────────────────────────────────────────

func TestSyncStatusTracker_RetriesThenErrors(t *testing.T) {
	fn := &countingSync{}
	fn.fail(adapter.ErrNetwork)
	tr := newTestTracker(t, fn.run)

	tr.NotifyChange(1)

	require.Eventually(t, func() bool { return tr.Snapshot().Status == models.SyncError }, waitFor, tick)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, int64(3), fn.calls.Load())
	assert.Equal(t, "sync failed after 3 attempts: remote store is unreachable", tr.Snapshot().Error)
}

func TestSyncStatusTracker_NonRetryableErrorIsTerminal(t *testing.T) {
	fn := &countingSync{}
	fn.fail(errors.New("wrong recovery key"))
	tr := newTestTracker(t, fn.run)

	tr.ScheduleSyncNow()

	require.Eventually(t, func() bool { return tr.Snapshot().Status == models.SyncError }, waitFor, tick)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(1), fn.calls.Load())
	assert.Equal(t, "wrong recovery key", tr.Snapshot().Error)
}

func TestSyncStatusTracker_MarkErrorThenRetry(t *testing.T) {
	fn := &countingSync{}
	tr := newTestTracker(t, fn.run)

	tr.MarkError(&SyncError{Op: opPush, Retries: 4, Err: adapter.ErrServerUnavailable})
	st := tr.Snapshot()
	assert.Equal(t, models.SyncError, st.Status)
	assert.Equal(t, "push failed after 4 attempts: remote store is unavailable", st.Error)

	tr.Retry()

	require.Eventually(t, func() bool { return fn.calls.Load() == 1 }, waitFor, tick)
	st = tr.Snapshot()
	assert.Equal(t, models.SyncIdle, st.Status)
	assert.Empty(t, st.Error)
}

// ── SetOnline ────────────────────────────────────────────────────────────────

func TestSyncStatusTracker_SetOnline(t *testing.T) {
	t.Run("offline suspends the debounce", func(t *testing.T) {
		fn := &countingSync{}
		tr := newTestTracker(t, fn.run)

		tr.NotifyChange(1)
		tr.SetOnline(false)
		time.Sleep(50 * time.Millisecond)

		assert.Zero(t, fn.calls.Load())
		assert.Equal(t, models.SyncOffline, tr.Snapshot().Status)
		assert.False(t, tr.IsOnline())
	})

	t.Run("reconnect with pending changes syncs now", func(t *testing.T) {
		fn := &countingSync{}
		tr := newTestTracker(t, fn.run)

		tr.SetOnline(false)
		tr.NotifyChange(2)
		tr.SetOnline(true)

		require.Eventually(t, func() bool { return fn.calls.Load() == 1 }, waitFor, tick)
		assert.Equal(t, models.SyncIdle, tr.Snapshot().Status)
	})

	t.Run("reconnect with nothing pending stays idle", func(t *testing.T) {
		fn := &countingSync{}
		tr := newTestTracker(t, fn.run)

		tr.SetOnline(false)
		tr.SetOnline(true)
		time.Sleep(50 * time.Millisecond)

		assert.Zero(t, fn.calls.Load())
		assert.Equal(t, models.SyncIdle, tr.Snapshot().Status)
	})

	t.Run("reconnect keeps a terminal error", func(t *testing.T) {
		tr := newTestTracker(t, nil)

		tr.MarkError(errors.New("boom"))
		tr.SetOnline(false)
		assert.Equal(t, models.SyncOffline, tr.Snapshot().Status)

		tr.SetOnline(true)
		assert.Equal(t, models.SyncError, tr.Snapshot().Status)
	})

	t.Run("marks while offline keep the status offline", func(t *testing.T) {
		tr := newTestTracker(t, nil)
		tr.SetOnline(false)

		tr.MarkSyncing()
		tr.MarkSynced(1)

		st := tr.Snapshot()
		assert.Equal(t, models.SyncOffline, st.Status)
		assert.Equal(t, int64(1), st.LastSyncedRev)
	})
}

// ── Subscribe ────────────────────────────────────────────────────────────────

func TestSyncStatusTracker_Subscribe(t *testing.T) {
	tr := newTestTracker(t, nil)

	var mu sync.Mutex
	var got []models.SyncStatus
	unsubscribe := tr.Subscribe(func(st models.SyncState) {
		mu.Lock()
		got = append(got, st.Status)
		mu.Unlock()
	})

	tr.MarkSyncing()
	tr.MarkSynced(1)
	unsubscribe()
	tr.MarkSyncing()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []models.SyncStatus{models.SyncSyncing, models.SyncIdle}, got)
}

func TestSyncStatusTracker_Close_StopsDebounce(t *testing.T) {
	fn := &countingSync{}
	tr := NewSyncStatusTracker(fastSync(), logger.Nop())
	tr.SetSyncFunc(fn.run)

	tr.NotifyChange(1)
	tr.Close()
	time.Sleep(50 * time.Millisecond)

	assert.Zero(t, fn.calls.Load())
}
