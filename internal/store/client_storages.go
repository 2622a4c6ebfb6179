// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-omnifolio/internal/logger"
)

// ClientStorages groups the on-device repositories.
type ClientStorages struct {
	// StateRepository holds the cached snapshot and the device secrets.
	StateRepository LocalStateRepository

	db *DB
}

// NewClientStorages opens the SQLite file at path, creating it when needed,
// and applies pending migrations.
func NewClientStorages(ctx context.Context, path string, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Str("path", path).Msg("creating new client storages...")

	db, err := NewConnectSQLite(ctx, path, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		StateRepository: NewLocalStateRepository(db, log),
		db:              db,
	}, nil
}

// Close releases the database handle.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
