package bridge

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/internal/service"
	"github.com/MKhiriev/go-omnifolio/internal/state"
	"github.com/MKhiriev/go-omnifolio/models"
)

const (
	waitFor = time.Second
	tick    = 5 * time.Millisecond
)

// fakeStore applies actions like the state container and notifies listeners.
type fakeStore struct {
	mu        sync.Mutex
	st        models.AppState
	listeners []service.StateListener
	actions   []state.Action
}

func newFakeStore() *fakeStore {
	return &fakeStore{st: state.NewDefault("u1")}
}

func (s *fakeStore) Dispatch(_ context.Context, action state.Action) (models.AppState, error) {
	s.mu.Lock()
	next, err := action.Apply(s.st)
	if err != nil {
		cur := s.st
		s.mu.Unlock()
		return cur, err
	}
	s.st = next
	s.actions = append(s.actions, action)
	listeners := append([]service.StateListener(nil), s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next, models.OriginLocal)
	}
	return next, nil
}

func (s *fakeStore) Subscribe(fn service.StateListener) func() {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.listeners = nil
		s.mu.Unlock()
	}
}

// notify plays a change that did not come through Dispatch.
func (s *fakeStore) notify(st models.AppState, origin models.ChangeOrigin) {
	s.mu.Lock()
	listeners := append([]service.StateListener(nil), s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(st, origin)
	}
}

func (s *fakeStore) state() models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return state.Clone(s.st)
}

func (s *fakeStore) dispatched() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.actions)
}

func event(t *testing.T, name string, detail any) Event {
	t.Helper()
	raw, err := json.Marshal(detail)
	require.NoError(t, err)
	return Event{Name: name, Detail: raw}
}

func holding(symbol string) models.Holding {
	return models.Holding{
		Symbol:    symbol,
		Quantity:  decimal.NewFromInt(2),
		CostBasis: decimal.NewFromInt(100),
		Currency:  "USD",
	}
}

// collect records every event on bus until the test ends.
func collect(t *testing.T, bus Bus) func() []Event {
	t.Helper()

	events, unsubscribe := bus.Subscribe()
	t.Cleanup(unsubscribe)

	var mu sync.Mutex
	var got []Event
	go func() {
		for ev := range events {
			mu.Lock()
			got = append(got, ev)
			mu.Unlock()
		}
	}()
	return func() []Event {
		mu.Lock()
		defer mu.Unlock()
		return append([]Event(nil), got...)
	}
}

func names(events []Event) []string {
	out := make([]string, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Name)
	}
	return out
}

// ── Translate ────────────────────────────────────────────────────────────────

func TestTranslate(t *testing.T) {
	tests := []struct {
		name    string
		ev      Event
		check   func(t *testing.T, got state.Action)
		wantErr error
	}{
		{
			name: "crypto holdings",
			ev:   event(t, EventCryptoDataChanged, HoldingsDetail{Holdings: []models.Holding{holding("BTC")}}),
			check: func(t *testing.T, got state.Action) {
				a, ok := got.(state.ReplaceHoldings)
				require.True(t, ok)
				assert.Equal(t, models.HoldingCrypto, a.Kind)
				require.Len(t, a.Holdings, 1)
				assert.Equal(t, "BTC", a.Holdings[0].Symbol)
				assert.True(t, a.Holdings[0].Quantity.Equal(decimal.NewFromInt(2)))
			},
		},
		{
			name: "empty stock list clears stocks",
			ev:   event(t, EventStockDataChanged, map[string]any{}),
			check: func(t *testing.T, got state.Action) {
				assert.Equal(t, state.ReplaceHoldings{Kind: models.HoldingStock, Holdings: []models.Holding{}}, got)
			},
		},
		{
			name: "trading accounts",
			ev:   event(t, EventTradingDataChanged, AccountsDetail{Accounts: []models.Account{{Name: "Broker", Currency: "USD"}}}),
			check: func(t *testing.T, got state.Action) {
				a, ok := got.(state.ReplaceAccounts)
				require.True(t, ok)
				assert.Equal(t, models.AccountTrading, a.Kind)
				require.Len(t, a.Accounts, 1)
				assert.Equal(t, "Broker", a.Accounts[0].Name)
			},
		},
		{
			name: "financial data keeps omitted lists nil",
			ev:   event(t, EventFinancialDataChanged, map[string]any{"assets": []map[string]string{{"name": "Flat"}}}),
			check: func(t *testing.T, got state.Action) {
				a, ok := got.(state.ReplaceFinancials)
				require.True(t, ok)
				require.Len(t, a.Assets, 1)
				assert.Equal(t, "Flat", a.Assets[0].Name)
				assert.Nil(t, a.CashAccounts)
				assert.Nil(t, a.SavingsAccounts)
				assert.Nil(t, a.IncomeSources)
			},
		},
		{
			name:    "unknown name",
			ev:      Event{Name: "somethingElse", Detail: json.RawMessage(`{}`)},
			wantErr: ErrUnknownEvent,
		},
		{
			name:    "missing detail",
			ev:      Event{Name: EventCryptoDataChanged},
			wantErr: ErrMalformedEvent,
		},
		{
			name:    "detail of the wrong shape",
			ev:      Event{Name: EventTradingDataChanged, Detail: json.RawMessage(`{"accounts":"nope"}`)},
			wantErr: ErrMalformedEvent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Translate(tt.ev)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)
		})
	}
}

// ── Handle ───────────────────────────────────────────────────────────────────

func TestBridge_Handle_AppliesHoldingsOfOneKind(t *testing.T) {
	store := newFakeStore()
	b := New(NewMemoryBus(), store, logger.Nop())
	ctx := context.Background()

	require.NoError(t, b.Handle(ctx, event(t, EventStockDataChanged, HoldingsDetail{Holdings: []models.Holding{holding("AAPL")}})))
	require.NoError(t, b.Handle(ctx, event(t, EventCryptoDataChanged, HoldingsDetail{Holdings: []models.Holding{holding("BTC"), holding("ETH")}})))
	require.NoError(t, b.Handle(ctx, event(t, EventCryptoDataChanged, HoldingsDetail{Holdings: []models.Holding{holding("SOL")}})))

	st := store.state()
	assert.Equal(t, int64(3), st.Rev)
	symbols := make([]string, 0, len(st.Portfolio.Holdings))
	for _, h := range st.Portfolio.Holdings {
		symbols = append(symbols, h.Symbol)
		assert.NotEmpty(t, h.ID)
	}
	assert.ElementsMatch(t, []string{"AAPL", "SOL"}, symbols)
}

func TestBridge_Handle_RejectsUnknownEvent(t *testing.T) {
	store := newFakeStore()
	b := New(NewMemoryBus(), store, logger.Nop())

	err := b.Handle(context.Background(), Event{Name: "priceTick"})

	require.ErrorIs(t, err, ErrUnknownEvent)
	assert.Zero(t, store.dispatched())
}

// ── Start ────────────────────────────────────────────────────────────────────

func TestBridge_Start_InboundEventsReachTheStore(t *testing.T) {
	bus := NewMemoryBus()
	store := newFakeStore()
	b := New(bus, store, logger.Nop())
	b.Start(context.Background())
	t.Cleanup(b.Close)

	require.NoError(t, bus.Publish(context.Background(), event(t, EventTradingDataChanged, AccountsDetail{
		Accounts: []models.Account{{Name: "Broker", Currency: "EUR"}},
	})))

	require.Eventually(t, func() bool { return store.state().Rev == 1 }, waitFor, tick)
	require.Len(t, store.state().Portfolio.Accounts, 1)
	assert.Equal(t, models.AccountTrading, store.state().Portfolio.Accounts[0].Kind)
}

func TestBridge_Start_PublishesStateEvents(t *testing.T) {
	bus := NewMemoryBus()
	store := newFakeStore()
	received := collect(t, bus)

	b := New(bus, store, logger.Nop())
	b.Start(context.Background())
	t.Cleanup(b.Close)

	_, err := store.Dispatch(context.Background(), state.SetZoom{Zoom: 1.5})
	require.NoError(t, err)

	remote := state.NewDefault("u1")
	remote.Rev = 7
	store.notify(remote, models.OriginRemote)

	require.Eventually(t, func() bool { return len(received()) == 3 }, waitFor, tick)

	got := received()
	assert.Equal(t, []string{EventAppStateChanged, EventAppStateChanged, EventAppStateUpdated}, names(got))

	var detail StateDetail
	require.NoError(t, json.Unmarshal(got[2].Detail, &detail))
	assert.Equal(t, int64(7), detail.Rev)
	assert.Equal(t, models.OriginRemote, detail.Origin)

	// the bridge's own outbound events are not fed back into the store
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, store.dispatched())
}

func TestBridge_Close_StopsBothDirections(t *testing.T) {
	bus := NewMemoryBus()
	store := newFakeStore()
	received := collect(t, bus)

	b := New(bus, store, logger.Nop())
	b.Start(context.Background())
	b.Close()

	require.NoError(t, bus.Publish(context.Background(), event(t, EventCryptoDataChanged, HoldingsDetail{})))
	_, err := store.Dispatch(context.Background(), state.SetZoom{Zoom: 2})
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, 1, store.dispatched())
	assert.Equal(t, []string{EventCryptoDataChanged}, names(received()))
}

// ── Replay ───────────────────────────────────────────────────────────────────

func TestBridge_Replay(t *testing.T) {
	t.Run("applies every line in order", func(t *testing.T) {
		store := newFakeStore()
		b := New(NewMemoryBus(), store, logger.Nop())

		input := strings.Join([]string{
			`{"name":"cryptoDataChanged","detail":{"holdings":[{"symbol":"BTC","quantity":"1","costBasis":"30000","currency":"USD"}]}}`,
			``,
			`{"name":"financialDataChanged","detail":{"cashAccounts":[{"name":"Wallet","balance":"50","currency":"USD"}]}}`,
		}, "\n")

		n, err := b.Replay(context.Background(), strings.NewReader(input))

		require.NoError(t, err)
		assert.Equal(t, 2, n)
		st := store.state()
		assert.Equal(t, int64(2), st.Rev)
		require.Len(t, st.Portfolio.Accounts, 1)
		assert.Equal(t, models.AccountCash, st.Portfolio.Accounts[0].Kind)
	})

	t.Run("stops at a malformed line", func(t *testing.T) {
		store := newFakeStore()
		b := New(NewMemoryBus(), store, logger.Nop())

		input := `{"name":"stockDataChanged","detail":{"holdings":[]}}` + "\n" + `not json` + "\n" +
			`{"name":"stockDataChanged","detail":{"holdings":[]}}`

		n, err := b.Replay(context.Background(), strings.NewReader(input))

		require.ErrorIs(t, err, ErrMalformedEvent)
		assert.Contains(t, err.Error(), "line 2")
		assert.Equal(t, 1, n)
	})

	t.Run("reports the line of an unknown event", func(t *testing.T) {
		b := New(NewMemoryBus(), newFakeStore(), logger.Nop())

		_, err := b.Replay(context.Background(), strings.NewReader(`{"name":"themeChanged","detail":{}}`))

		require.ErrorIs(t, err, ErrUnknownEvent)
		assert.Contains(t, err.Error(), "line 1")
	})
}

func TestBridge_ReplayFile_MissingFile(t *testing.T) {
	b := New(NewMemoryBus(), newFakeStore(), logger.Nop())

	n, err := b.ReplayFile(context.Background(), t.TempDir()+"/absent.jsonl")

	require.Error(t, err)
	assert.Zero(t, n)
}

// ── MemoryBus ────────────────────────────────────────────────────────────────

func TestMemoryBus(t *testing.T) {
	t.Run("fans out to every subscriber", func(t *testing.T) {
		bus := NewMemoryBus()
		a, stopA := bus.Subscribe()
		b, stopB := bus.Subscribe()
		defer stopA()
		defer stopB()

		require.NoError(t, bus.Publish(context.Background(), Event{Name: "x"}))

		assert.Equal(t, "x", (<-a).Name)
		assert.Equal(t, "x", (<-b).Name)
	})

	t.Run("unsubscribe closes the channel", func(t *testing.T) {
		bus := NewMemoryBus()
		ch, stop := bus.Subscribe()
		stop()
		stop()

		_, ok := <-ch
		assert.False(t, ok)
	})

	t.Run("publish after close fails", func(t *testing.T) {
		bus := NewMemoryBus()
		ch, _ := bus.Subscribe()
		bus.Close()

		_, ok := <-ch
		assert.False(t, ok)
		require.ErrorIs(t, bus.Publish(context.Background(), Event{Name: "x"}), ErrBusClosed)

		late, _ := bus.Subscribe()
		_, ok = <-late
		assert.False(t, ok)
	})

	t.Run("slow subscriber does not block publishers", func(t *testing.T) {
		bus := NewMemoryBus()
		_, stop := bus.Subscribe()
		defer stop()

		for range busBuffer * 2 {
			require.NoError(t, bus.Publish(context.Background(), Event{Name: "x"}))
		}
	})
}
