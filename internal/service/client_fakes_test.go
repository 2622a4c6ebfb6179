package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-omnifolio/internal/adapter"
	"github.com/MKhiriev/go-omnifolio/internal/config"
	"github.com/MKhiriev/go-omnifolio/internal/crypto"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/internal/state"
	"github.com/MKhiriev/go-omnifolio/models"
)

const testKey = "ABCD-EFGH-JKLM-NPQR-STUV-WXYZ"

// testCipher keeps PBKDF2 cheap; payloads never leave the test.
var testCipher = crypto.NewKeyChainService(crypto.WithIterations(1000))

// fakeRemote is an in-memory remote store with the server's revision rule.
type fakeRemote struct {
	mu       sync.Mutex
	snap     *models.RemoteSnapshot
	pushes   []int64
	attempts int
	pulls    int
	pushErr  error
	pullErr  error
}

func (r *fakeRemote) Push(_ context.Context, req models.PushRequest) (models.PushResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.attempts++
	if r.pushErr != nil {
		return models.PushResponse{}, r.pushErr
	}
	if r.snap != nil && req.Rev <= r.snap.Rev {
		return models.PushResponse{}, &adapter.ConflictError{CurrentRev: r.snap.Rev}
	}

	now := time.Now().UTC()
	r.snap = &models.RemoteSnapshot{
		Rev:              req.Rev,
		SchemaVersion:    req.SchemaVersion,
		UpdatedAt:        now,
		EncryptedPayload: req.EncryptedPayload,
	}
	r.pushes = append(r.pushes, req.Rev)
	return models.PushResponse{Rev: req.Rev, UpdatedAt: now}, nil
}

func (r *fakeRemote) Pull(_ context.Context) (models.PullResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pulls++
	if r.pullErr != nil {
		return models.PullResponse{}, r.pullErr
	}
	if r.snap == nil {
		return models.PullResponse{Exists: false}, nil
	}
	cp := *r.snap
	return models.PullResponse{Exists: true, Data: &cp}, nil
}

// seed stores st as if another device had pushed it.
func (r *fakeRemote) seed(t *testing.T, st models.AppState, key string) {
	t.Helper()

	payload, err := testCipher.Encrypt(st, key)
	require.NoError(t, err)

	r.mu.Lock()
	r.snap = &models.RemoteSnapshot{
		Rev:              st.Rev,
		SchemaVersion:    st.SchemaVersion,
		UpdatedAt:        st.UpdatedAt,
		EncryptedPayload: payload,
	}
	r.mu.Unlock()
}

func (r *fakeRemote) pushed() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.pushes...)
}

func (r *fakeRemote) pushAttempts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempts
}

func (r *fakeRemote) pullCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pulls
}

func (r *fakeRemote) remoteRev() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snap == nil {
		return -1
	}
	return r.snap.Rev
}

func (r *fakeRemote) failPushes(err error) {
	r.mu.Lock()
	r.pushErr = err
	r.mu.Unlock()
}

// fakeReporter records what the engine reports.
type fakeReporter struct {
	mu      sync.Mutex
	online  bool
	syncing int
	synced  []int64
	errs    []error
}

func newFakeReporter() *fakeReporter {
	return &fakeReporter{online: true}
}

func (r *fakeReporter) MarkSyncing() {
	r.mu.Lock()
	r.syncing++
	r.mu.Unlock()
}

func (r *fakeReporter) MarkSynced(rev int64) {
	r.mu.Lock()
	r.synced = append(r.synced, rev)
	r.mu.Unlock()
}

func (r *fakeReporter) MarkError(err error) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
}

func (r *fakeReporter) IsOnline() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.online
}

func (r *fakeReporter) setOnline(online bool) {
	r.mu.Lock()
	r.online = online
	r.mu.Unlock()
}

func (r *fakeReporter) syncedRevs() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.synced...)
}

func (r *fakeReporter) reportedErrors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}

// recordingBroadcaster collects state-changed revisions.
type recordingBroadcaster struct {
	mu   sync.Mutex
	revs []int64
}

func (b *recordingBroadcaster) BroadcastStateChanged(_ context.Context, rev int64) error {
	b.mu.Lock()
	b.revs = append(b.revs, rev)
	b.mu.Unlock()
	return nil
}

func (b *recordingBroadcaster) broadcasts() []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]int64(nil), b.revs...)
}

func fastSync() config.Sync {
	return config.Sync{
		PushDebounce:   20 * time.Millisecond,
		StatusDebounce: 20 * time.Millisecond,
		RetryInterval:  15 * time.Millisecond,
		MaxRetries:     2,
	}
}

func newTestEngine(t *testing.T, remote adapter.RemoteStore, reporter SyncReporter, tabs StateBroadcaster) *SyncEngine {
	t.Helper()

	e := NewSyncEngine(remote, testCipher, tabs, reporter, fastSync(), logger.Nop())
	t.Cleanup(e.Close)
	return e
}

// stateAt returns a snapshot of user at rev with a distinct UpdatedAt.
func stateAt(userID string, rev int64) models.AppState {
	st := state.NewDefault(userID)
	st.Rev = rev
	st.UpdatedAt = time.Date(2026, 1, 1, 0, 0, int(rev), 0, time.UTC)
	return st
}

// adoptions records what the engine hands to OnAdopt and OnConflict.
type adoptions struct {
	mu        sync.Mutex
	adopted   []models.AppState
	outcomes  []models.PullOutcome
	conflicts int
}

func (a *adoptions) watch(e *SyncEngine) {
	e.OnAdopt(func(_ context.Context, st models.AppState, outcome models.PullOutcome) {
		a.mu.Lock()
		a.adopted = append(a.adopted, st)
		a.outcomes = append(a.outcomes, outcome)
		a.mu.Unlock()
	})
	e.OnConflict(func(models.AppState) {
		a.mu.Lock()
		a.conflicts++
		a.mu.Unlock()
	})
}

func (a *adoptions) snapshot() ([]models.AppState, []models.PullOutcome, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.AppState(nil), a.adopted...), append([]models.PullOutcome(nil), a.outcomes...), a.conflicts
}
