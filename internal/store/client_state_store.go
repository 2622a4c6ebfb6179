// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/internal/state"
	"github.com/MKhiriev/go-omnifolio/models"
)

const localWriteTimeout = 5 * time.Second

// LocalStateStore is the on-device durable store the state container talks
// to. Loads never fail and saves never block: a broken or missing database
// degrades to defaults and memory, with the problem logged.
//
// Saves are coalesced. The first Save arms a timer for the write delay;
// saves arriving before it fires only replace the pending snapshot, so one
// write carries the latest state. Writes are serialized.
type LocalStateStore struct {
	repo   LocalStateRepository
	delay  time.Duration
	logger *logger.Logger

	mu      sync.Mutex
	pending *models.AppState
	timer   *time.Timer
	memory  map[string]models.AppState

	writeMu sync.Mutex
}

// NewLocalStateStore wraps repo. A nil repo keeps snapshots in memory only.
func NewLocalStateStore(repo LocalStateRepository, delay time.Duration, log *logger.Logger) *LocalStateStore {
	return &LocalStateStore{
		repo:   repo,
		delay:  delay,
		logger: log,
		memory: make(map[string]models.AppState),
	}
}

// Load returns the snapshot of userID, migrated to the current schema.
// A snapshot still waiting to be written wins unless the database already
// holds a newer one, written by another tab. Any failure yields
// state.NewDefault(userID).
func (s *LocalStateStore) Load(ctx context.Context, userID string) models.AppState {
	s.mu.Lock()
	var pending *models.AppState
	if s.pending != nil && s.pending.UserID == userID {
		p := state.Clone(*s.pending)
		pending = &p
	}
	mem, inMemory := s.memory[userID]
	s.mu.Unlock()

	if inMemory {
		return state.Clone(mem)
	}
	if s.repo == nil {
		return state.NewDefault(userID)
	}

	stored, ok := s.loadStored(ctx, userID)
	if pending != nil && (!ok || pending.Rev >= stored.Rev) {
		return *pending
	}
	if !ok {
		return state.NewDefault(userID)
	}

	return stored
}

func (s *LocalStateStore) loadStored(ctx context.Context, userID string) (models.AppState, bool) {
	st, err := s.repo.GetState(ctx, userID)
	switch {
	case errors.Is(err, ErrStateNotFound):
		s.logger.Debug().Str("func", "LocalStateStore.Load").Str("user_id", userID).Msg("no local state, starting from defaults")
		return models.AppState{}, false
	case err != nil:
		s.logger.Warn().Err(err).Str("func", "LocalStateStore.Load").Str("user_id", userID).Msg("local state unavailable, starting from defaults")
		return models.AppState{}, false
	case st.UserID != userID:
		s.logger.Warn().Str("func", "LocalStateStore.Load").Str("user_id", userID).Str("stored_user_id", st.UserID).Msg("local state belongs to another user, ignoring it")
		return models.AppState{}, false
	}

	return state.Migrate(st), true
}

// Save schedules st to be written. It returns immediately.
func (s *LocalStateStore) Save(st models.AppState) {
	st = state.Clone(st)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo == nil {
		s.memory[st.UserID] = st
		return
	}

	s.pending = &st
	if s.timer == nil {
		s.timer = time.AfterFunc(s.delay, s.writePending)
	}
}

// Flush writes the pending snapshot now. Called on shutdown.
func (s *LocalStateStore) Flush(ctx context.Context) {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.write(ctx)
}

func (s *LocalStateStore) writePending() {
	ctx, cancel := context.WithTimeout(context.Background(), localWriteTimeout)
	defer cancel()

	s.write(ctx)
}

// write takes the pending snapshot while holding the writer lock, so
// snapshots reach the database in the order they were saved.
func (s *LocalStateStore) write(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	st := s.pending
	s.pending = nil
	s.timer = nil
	s.mu.Unlock()

	if st == nil {
		return
	}

	if err := s.repo.SaveState(ctx, *st); err != nil {
		s.logger.Warn().Err(err).
			Str("func", "LocalStateStore.write").
			Str("user_id", st.UserID).
			Int64("rev", st.Rev).
			Msg("failed to persist local state")
		return
	}
	s.logger.Debug().Str("func", "LocalStateStore.write").Str("user_id", st.UserID).Int64("rev", st.Rev).Msg("local state persisted")
}
