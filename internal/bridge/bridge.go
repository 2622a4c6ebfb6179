// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bridge

import (
	"context"
	"errors"
	"sync"

	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/internal/service"
	"github.com/MKhiriev/go-omnifolio/internal/state"
	"github.com/MKhiriev/go-omnifolio/models"
)

// StateStore is the part of the state container the bridge uses.
type StateStore interface {
	Dispatch(ctx context.Context, action state.Action) (models.AppState, error)
	Subscribe(fn service.StateListener) func()
}

// Bridge translates legacy events into state actions and state changes into
// legacy events. It never touches the sync machinery.
type Bridge struct {
	bus    Bus
	store  StateStore
	logger *logger.Logger

	mu      sync.Mutex
	started bool
	stops   []func()
	wg      sync.WaitGroup
}

func New(bus Bus, store StateStore, log *logger.Logger) *Bridge {
	return &Bridge{bus: bus, store: store, logger: log}
}

// Start begins both directions. It returns immediately; inbound events are
// handled until ctx is done or Close is called.
func (b *Bridge) Start(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		return
	}
	b.started = true

	events, unsubscribe := b.bus.Subscribe()
	ctx, cancel := context.WithCancel(ctx)
	b.stops = append(b.stops, b.store.Subscribe(b.onState), cancel, unsubscribe)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if isOutbound(ev.Name) {
					continue
				}
				if err := b.Handle(ctx, ev); err != nil {
					b.logger.Warn().Err(err).Str("func", "Bridge.Start").Str("event", ev.Name).Msg("legacy event dropped")
				}
			}
		}
	}()
}

// Handle applies one inbound event.
func (b *Bridge) Handle(ctx context.Context, ev Event) error {
	action, err := Translate(ev)
	if err != nil {
		return err
	}

	st, err := b.store.Dispatch(ctx, action)
	if err != nil {
		return err
	}

	b.logger.Debug().Str("func", "Bridge.Handle").Str("event", ev.Name).Int64("rev", st.Rev).Msg("legacy event applied")
	return nil
}

// Close stops both directions and waits for the inbound loop.
func (b *Bridge) Close() {
	b.mu.Lock()
	stops := b.stops
	b.stops = nil
	b.mu.Unlock()

	for _, stop := range stops {
		stop()
	}
	b.wg.Wait()
}

func (b *Bridge) onState(st models.AppState, origin models.ChangeOrigin) {
	ctx := context.Background()

	err := b.bus.Publish(ctx, NewStateEvent(EventAppStateChanged, st, origin))
	if err == nil && (origin == models.OriginRemote || origin == models.OriginTab) {
		err = b.bus.Publish(ctx, NewStateEvent(EventAppStateUpdated, st, origin))
	}
	if err != nil && !errors.Is(err, ErrBusClosed) {
		b.logger.Warn().Err(err).Str("func", "Bridge.onState").Int64("rev", st.Rev).Msg("failed to publish state event")
	}
}

func isOutbound(name string) bool {
	return name == EventAppStateChanged || name == EventAppStateUpdated
}
