package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/internal/state"
	"github.com/MKhiriev/go-omnifolio/models"
)

// fakeStateRepo records every write.
type fakeStateRepo struct {
	mu      sync.Mutex
	stored  map[string]models.AppState
	writes  []int64
	getErr  error
	saveErr error
}

func newFakeStateRepo() *fakeStateRepo {
	return &fakeStateRepo{stored: make(map[string]models.AppState)}
}

func (f *fakeStateRepo) GetState(_ context.Context, userID string) (models.AppState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return models.AppState{}, f.getErr
	}
	st, ok := f.stored[userID]
	if !ok {
		return models.AppState{}, ErrStateNotFound
	}
	return st, nil
}

func (f *fakeStateRepo) SaveState(_ context.Context, st models.AppState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, st.Rev)
	if f.saveErr != nil {
		return f.saveErr
	}
	f.stored[st.UserID] = st
	return nil
}

func (f *fakeStateRepo) writtenRevs() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.writes...)
}

func (f *fakeStateRepo) GetDeviceSecret(context.Context) ([]byte, error) { return nil, nil }
func (f *fakeStateRepo) SaveDeviceSecret(context.Context, []byte) error { return nil }
func (f *fakeStateRepo) GetRememberedKey(context.Context, string) ([]byte, error) { return nil, nil }
func (f *fakeStateRepo) SaveRememberedKey(context.Context, string, []byte) error { return nil }
func (f *fakeStateRepo) DeleteRememberedKey(context.Context, string) error { return nil }

func bump(st models.AppState, n int) models.AppState {
	for i := 0; i < n; i++ {
		st = state.WithWatchlist(st, st.Watchlist)
	}
	return st
}

func TestLocalStateStore_LoadMissingReturnsDefaults(t *testing.T) {
	s := NewLocalStateStore(newFakeStateRepo(), 10*time.Millisecond, logger.Nop())

	st := s.Load(context.Background(), "user-1")
	assert.Equal(t, "user-1", st.UserID)
	assert.Equal(t, int64(0), st.Rev)
	assert.Equal(t, state.CurrentSchemaVersion, st.SchemaVersion)
}

func TestLocalStateStore_LoadFailuresFallBackToDefaults(t *testing.T) {
	repo := newFakeStateRepo()
	repo.getErr = errors.Join(ErrDecodingState, errors.New("unexpected end of JSON input"))
	s := NewLocalStateStore(repo, 10*time.Millisecond, logger.Nop())

	st := s.Load(context.Background(), "user-1")
	assert.Equal(t, int64(0), st.Rev)

	repo.getErr = nil
	repo.stored["user-1"] = bump(state.NewDefault("someone-else"), 3)
	st = s.Load(context.Background(), "user-1")
	assert.Equal(t, "user-1", st.UserID)
	assert.Equal(t, int64(0), st.Rev)
}

func TestLocalStateStore_LoadMigratesOldSchema(t *testing.T) {
	repo := newFakeStateRepo()
	old := bump(state.NewDefault("user-1"), 2)
	old.SchemaVersion = 1
	old.Notes = nil
	old.Dashboard.Zoom = 0
	repo.stored["user-1"] = old

	st := NewLocalStateStore(repo, time.Millisecond, logger.Nop()).Load(context.Background(), "user-1")
	assert.Equal(t, state.CurrentSchemaVersion, st.SchemaVersion)
	assert.Equal(t, int64(2), st.Rev)
	assert.NotNil(t, st.Notes)
	assert.Equal(t, 1.0, st.Dashboard.Zoom)
}

func TestLocalStateStore_CoalescesWrites(t *testing.T) {
	repo := newFakeStateRepo()
	s := NewLocalStateStore(repo, 50*time.Millisecond, logger.Nop())

	st := state.NewDefault("user-1")
	for i := 0; i < 10; i++ {
		st = bump(st, 1)
		s.Save(st)
	}

	require.Eventually(t, func() bool { return len(repo.writtenRevs()) == 1 }, time.Second, 5*time.Millisecond)
	// nothing else shows up later
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, []int64{10}, repo.writtenRevs())
}

func TestLocalStateStore_LoadSeesPendingSave(t *testing.T) {
	repo := newFakeStateRepo()
	s := NewLocalStateStore(repo, time.Hour, logger.Nop())

	st := bump(state.NewDefault("user-1"), 4)
	s.Save(st)

	assert.Equal(t, int64(4), s.Load(context.Background(), "user-1").Rev)
	assert.Empty(t, repo.writtenRevs())
}

func TestLocalStateStore_LoadPrefersNewerStoredState(t *testing.T) {
	repo := newFakeStateRepo()
	repo.stored["user-1"] = bump(state.NewDefault("user-1"), 9)
	s := NewLocalStateStore(repo, time.Hour, logger.Nop())

	s.Save(bump(state.NewDefault("user-1"), 6))

	assert.Equal(t, int64(9), s.Load(context.Background(), "user-1").Rev)
}

func TestLocalStateStore_FlushWritesImmediately(t *testing.T) {
	repo := newFakeStateRepo()
	s := NewLocalStateStore(repo, time.Hour, logger.Nop())

	s.Save(bump(state.NewDefault("user-1"), 2))
	s.Flush(context.Background())
	assert.Equal(t, []int64{2}, repo.writtenRevs())

	// flushing with nothing pending is a no-op
	s.Flush(context.Background())
	assert.Equal(t, []int64{2}, repo.writtenRevs())
}

func TestLocalStateStore_SaveFailureIsSwallowed(t *testing.T) {
	repo := newFakeStateRepo()
	repo.saveErr = errors.New("disk full")
	s := NewLocalStateStore(repo, time.Hour, logger.Nop())

	s.Save(bump(state.NewDefault("user-1"), 1))
	assert.NotPanics(t, func() { s.Flush(context.Background()) })
	assert.Equal(t, []int64{1}, repo.writtenRevs())
}

func TestLocalStateStore_MemoryOnly(t *testing.T) {
	s := NewLocalStateStore(nil, time.Millisecond, logger.Nop())

	assert.Equal(t, int64(0), s.Load(context.Background(), "user-1").Rev)

	s.Save(bump(state.NewDefault("user-1"), 3))
	s.Flush(context.Background())
	assert.Equal(t, int64(3), s.Load(context.Background(), "user-1").Rev)
}
