// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/MKhiriev/go-omnifolio/internal/crypto"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/internal/service"
	"github.com/MKhiriev/go-omnifolio/models"
)

// importedSuffix marks a legacy events file that was already replayed.
const importedSuffix = ".imported"

// LegacyImporter replays events exported by older data stores.
// Implemented by bridge.Bridge.
type LegacyImporter interface {
	ReplayFile(ctx context.Context, path string) (int, error)
}

// LeaderReporter tells whether this window leads sync.
type LeaderReporter interface {
	IsLeader() bool
}

// session is one user's unlocked window. It implements tui.Session.
type session struct {
	userID      string
	services    *service.ClientServices
	leader      LeaderReporter
	keyring     crypto.DeviceKeyring
	rememberKey bool
	importer    LegacyImporter
	legacyPath  string
	logger      *logger.Logger

	mu         sync.Mutex
	mounted    bool
	remembered string
}

func (s *session) RememberedKey(ctx context.Context) (string, error) {
	if !s.rememberKey {
		return "", nil
	}

	key, err := s.keyring.Recall(ctx, s.userID)
	if errors.Is(err, crypto.ErrKeyNotRemembered) {
		return "", nil
	}
	if err != nil {
		// a broken sealed key must not lock the user out: ask for it again
		s.logger.Warn().Str("func", "session.RememberedKey").Err(err).Msg("remembered key is unreadable")
		return "", nil
	}
	return key, nil
}

// Unlock installs key and mounts the user's state on the first call. Later
// calls only swap the key, which resumes sync after a wrong-key error. The
// key is remembered on the device once sync has proven it, see keyAccepted.
func (s *session) Unlock(ctx context.Context, key string) error {
	if key == "" {
		return crypto.ErrInvalidKey
	}

	s.services.Engine.SetKey(key)

	s.mu.Lock()
	first := !s.mounted
	s.mounted = true
	s.mu.Unlock()

	if !first {
		s.services.Tracker.Retry()
		return nil
	}

	s.services.Container.Mount(ctx, s.userID)
	// imported records must land on top of whatever the initial sync adopts
	s.services.Container.Wait()
	if err := s.importLegacy(ctx); err != nil {
		s.logger.Err(err).Str("func", "session.Unlock").Msg("legacy events import failed")
	}
	return nil
}

// keyAccepted remembers key after it opened the remote snapshot or a push
// made with it was accepted. It is registered with SyncEngine.OnKeyAccepted.
func (s *session) keyAccepted(ctx context.Context, key string) {
	if !s.rememberKey {
		return
	}

	s.mu.Lock()
	if s.remembered == key {
		s.mu.Unlock()
		return
	}
	s.remembered = key
	s.mu.Unlock()

	if err := s.keyring.Remember(ctx, s.userID, key); err != nil {
		s.logger.Err(err).Str("func", "session.keyAccepted").Msg("failed to remember recovery key")
		s.mu.Lock()
		s.remembered = ""
		s.mu.Unlock()
	}
}

// importLegacy replays the legacy events file once; the file is renamed
// afterwards so the next start does not apply it again.
func (s *session) importLegacy(ctx context.Context) error {
	if s.legacyPath == "" || s.importer == nil {
		return nil
	}
	if _, err := os.Stat(s.legacyPath); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if _, err := s.importer.ReplayFile(ctx, s.legacyPath); err != nil {
		return err
	}
	if err := os.Rename(s.legacyPath, s.legacyPath+importedSuffix); err != nil {
		return fmt.Errorf("mark legacy events as imported: %w", err)
	}
	return nil
}

func (s *session) State() models.AppState {
	return s.services.Container.State()
}

func (s *session) SyncState() models.SyncState {
	return s.services.Tracker.Snapshot()
}

func (s *session) IsLeader() bool {
	return s.leader.IsLeader()
}

func (s *session) Retry() {
	s.services.Tracker.Retry()
}
