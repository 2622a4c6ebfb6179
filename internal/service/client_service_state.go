// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/internal/state"
	"github.com/MKhiriev/go-omnifolio/models"
)

// StateContainer owns the live AppState of one tab. Every mutation goes
// through Dispatch; a mutation that advances rev is persisted locally,
// handed to the sync engine and reported to the status tracker.
//
// Snapshots adopted from the remote store or another tab replace the live
// state without being pushed back.
type StateContainer struct {
	local   LocalSnapshotStore
	engine  PushScheduler
	tracker ChangeNotifier
	logger  *logger.Logger

	mu      sync.RWMutex
	state   models.AppState
	mounted bool

	listenersMu  sync.Mutex
	listeners    map[int]StateListener
	nextListener int

	wg sync.WaitGroup
}

func NewStateContainer(local LocalSnapshotStore, engine PushScheduler, tracker ChangeNotifier, log *logger.Logger) *StateContainer {
	return &StateContainer{
		local:     local,
		engine:    engine,
		tracker:   tracker,
		logger:    log,
		listeners: make(map[int]StateListener),
	}
}

// State returns a copy of the live state.
func (c *StateContainer) State() models.AppState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return state.Clone(c.state)
}

// Subscribe registers fn for every new live state and returns a function
// removing it. Listeners may be called from several goroutines; each call
// carries a full snapshot.
func (c *StateContainer) Subscribe(fn StateListener) func() {
	c.listenersMu.Lock()
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = fn
	c.listenersMu.Unlock()

	return func() {
		c.listenersMu.Lock()
		delete(c.listeners, id)
		c.listenersMu.Unlock()
	}
}

// Mount loads the local snapshot of userID, makes it live and starts the
// engine's initial sync in the background. The state is usable before any
// network result arrives.
func (c *StateContainer) Mount(ctx context.Context, userID string) models.AppState {
	st := c.local.Load(ctx, userID)

	c.mu.Lock()
	c.state = st
	c.mounted = true
	c.mu.Unlock()

	c.logger.Info().Str("func", "StateContainer.Mount").Str("user_id", userID).Int64("rev", st.Rev).Msg("local state mounted")
	c.notify(st, models.OriginLoad)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if err := c.engine.InitialSync(ctx, st); err != nil {
			c.logger.Warn().Err(err).Str("func", "StateContainer.Mount").Str("user_id", userID).Msg("initial sync failed")
		}
	}()

	return state.Clone(st)
}

// Wait blocks until the background initial sync started by Mount returns.
func (c *StateContainer) Wait() {
	c.wg.Wait()
}

// Dispatch applies action to the live state. A failing action leaves the
// state untouched and returns the error.
func (c *StateContainer) Dispatch(ctx context.Context, action state.Action) (models.AppState, error) {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return models.AppState{}, ErrNotMounted
	}

	prev := c.state
	next, err := action.Apply(prev)
	if err != nil {
		c.mu.Unlock()
		logger.FromContext(ctx).Debug().Err(err).Str("func", "StateContainer.Dispatch").Msg("action rejected")
		return state.Clone(prev), err
	}
	if next.Rev == prev.Rev {
		c.mu.Unlock()
		return state.Clone(next), nil
	}

	c.state = next
	// side effects stay under the lock so they see revisions in order
	c.local.Save(next)
	c.engine.SchedulePush(next)
	c.tracker.NotifyChange(next.Rev)
	c.mu.Unlock()

	c.notify(next, models.OriginLocal)
	return state.Clone(next), nil
}

// AdoptSnapshot makes st live regardless of its revision. It is persisted
// locally but never pushed. Snapshots of another user are ignored.
func (c *StateContainer) AdoptSnapshot(ctx context.Context, st models.AppState, origin models.ChangeOrigin) {
	st = state.Clone(st)

	c.mu.Lock()
	if !c.mounted || st.UserID != c.state.UserID {
		c.mu.Unlock()
		c.logger.Warn().Str("func", "StateContainer.AdoptSnapshot").Str("user_id", st.UserID).Msg("snapshot of another user ignored")
		return
	}
	c.state = st
	c.local.Save(st)
	c.mu.Unlock()

	if origin == models.OriginRemote {
		// other tabs reload from the local store right after this
		c.local.Flush(ctx)
	}

	c.logger.Info().Str("func", "StateContainer.AdoptSnapshot").Int64("rev", st.Rev).Str("origin", string(origin)).Msg("snapshot adopted")
	c.notify(st, origin)
}

// ReloadFromLocal reloads the shared local snapshot after another tab
// reported revision rev, and adopts it when it is newer than the live one.
func (c *StateContainer) ReloadFromLocal(ctx context.Context, rev int64) bool {
	c.mu.RLock()
	mounted := c.mounted
	userID := c.state.UserID
	live := c.state.Rev
	c.mu.RUnlock()

	if !mounted || rev <= live {
		return false
	}

	st := c.local.Load(ctx, userID)

	c.mu.Lock()
	if st.Rev <= c.state.Rev {
		c.mu.Unlock()
		c.logger.Debug().Str("func", "StateContainer.ReloadFromLocal").Int64("rev", rev).Int64("stored_rev", st.Rev).Msg("stored state is not newer")
		return false
	}
	c.state = st
	c.mu.Unlock()

	c.logger.Info().Str("func", "StateContainer.ReloadFromLocal").Int64("rev", st.Rev).Msg("state reloaded from another tab")
	c.notify(st, models.OriginTab)
	return true
}

func (c *StateContainer) notify(st models.AppState, origin models.ChangeOrigin) {
	c.listenersMu.Lock()
	listeners := make([]StateListener, 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.listenersMu.Unlock()

	for _, fn := range listeners {
		fn(state.Clone(st), origin)
	}
}

// ── convenience actions ───────────────────────────────────────────────────────

func (c *StateContainer) AddHolding(ctx context.Context, h models.Holding) error {
	_, err := c.Dispatch(ctx, state.AddHolding{Holding: h})
	return err
}

func (c *StateContainer) UpdateHolding(ctx context.Context, h models.Holding) error {
	_, err := c.Dispatch(ctx, state.UpdateHolding{Holding: h})
	return err
}

func (c *StateContainer) DeleteHolding(ctx context.Context, id string) error {
	_, err := c.Dispatch(ctx, state.DeleteHolding{ID: id})
	return err
}

func (c *StateContainer) AddAccount(ctx context.Context, a models.Account) error {
	_, err := c.Dispatch(ctx, state.AddAccount{Account: a})
	return err
}

func (c *StateContainer) UpdateAccount(ctx context.Context, a models.Account) error {
	_, err := c.Dispatch(ctx, state.UpdateAccount{Account: a})
	return err
}

func (c *StateContainer) DeleteAccount(ctx context.Context, id string) error {
	_, err := c.Dispatch(ctx, state.DeleteAccount{ID: id})
	return err
}

func (c *StateContainer) RecordTransaction(ctx context.Context, tx models.Transaction) error {
	_, err := c.Dispatch(ctx, state.RecordTransaction{Transaction: tx})
	return err
}

func (c *StateContainer) DeleteTransaction(ctx context.Context, id string) error {
	_, err := c.Dispatch(ctx, state.DeleteTransaction{ID: id})
	return err
}

func (c *StateContainer) AddAsset(ctx context.Context, a models.Asset) error {
	_, err := c.Dispatch(ctx, state.AddAsset{Asset: a})
	return err
}

func (c *StateContainer) DeleteAsset(ctx context.Context, id string) error {
	_, err := c.Dispatch(ctx, state.DeleteAsset{ID: id})
	return err
}

func (c *StateContainer) ReorderCards(ctx context.Context, order []string) error {
	_, err := c.Dispatch(ctx, state.ReorderCards{Order: order})
	return err
}

func (c *StateContainer) SetCardHidden(ctx context.Context, cardID string, hidden bool) error {
	_, err := c.Dispatch(ctx, state.SetCardHidden{CardID: cardID, Hidden: hidden})
	return err
}

func (c *StateContainer) SetZoom(ctx context.Context, zoom float64) error {
	_, err := c.Dispatch(ctx, state.SetZoom{Zoom: zoom})
	return err
}

func (c *StateContainer) UpdateSettings(ctx context.Context, s models.Settings) error {
	_, err := c.Dispatch(ctx, state.UpdateSettings{Settings: s})
	return err
}

func (c *StateContainer) AddToWatchlist(ctx context.Context, item models.WatchlistItem) error {
	_, err := c.Dispatch(ctx, state.AddToWatchlist{Item: item})
	return err
}

func (c *StateContainer) RemoveFromWatchlist(ctx context.Context, symbol string) error {
	_, err := c.Dispatch(ctx, state.RemoveFromWatchlist{Symbol: symbol})
	return err
}

func (c *StateContainer) SaveNote(ctx context.Context, n models.Note) error {
	_, err := c.Dispatch(ctx, state.SaveNote{Note: n})
	return err
}

func (c *StateContainer) DeleteNote(ctx context.Context, id string) error {
	_, err := c.Dispatch(ctx, state.DeleteNote{ID: id})
	return err
}
