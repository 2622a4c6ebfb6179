// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/models"
)

type localStateRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalStateRepository returns the SQLite implementation of
// [LocalStateRepository].
func NewLocalStateRepository(db *DB, logger *logger.Logger) LocalStateRepository {
	return &localStateRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localStateRepository) GetState(ctx context.Context, userID string) (models.AppState, error) {
	var payload string
	err := l.DB.QueryRowContext(ctx, getLocalState, userID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AppState{}, ErrStateNotFound
	}
	if err != nil {
		l.logger.Err(err).
			Str("func", "localStateRepository.GetState").
			Str("user_id", userID).
			Msg("failed to query local state")
		return models.AppState{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var st models.AppState
	if err = json.Unmarshal([]byte(payload), &st); err != nil {
		l.logger.Err(err).
			Str("func", "localStateRepository.GetState").
			Str("user_id", userID).
			Msg("cached local state is not valid JSON")
		return models.AppState{}, fmt.Errorf("%w: %w", ErrDecodingState, err)
	}

	return st, nil
}

func (l *localStateRepository) SaveState(ctx context.Context, st models.AppState) error {
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode local state: %w", err)
	}

	_, err = l.DB.ExecContext(ctx, saveLocalState,
		st.UserID,
		st.Rev,
		st.SchemaVersion,
		string(payload),
		st.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		l.logger.Err(err).
			Str("func", "localStateRepository.SaveState").
			Str("user_id", st.UserID).
			Int64("rev", st.Rev).
			Msg("failed to upsert local state")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (l *localStateRepository) GetDeviceSecret(ctx context.Context) ([]byte, error) {
	return l.getBlob(ctx, "localStateRepository.GetDeviceSecret", getDeviceSecret)
}

func (l *localStateRepository) SaveDeviceSecret(ctx context.Context, secret []byte) error {
	return l.exec(ctx, "localStateRepository.SaveDeviceSecret", saveDeviceSecret, secret)
}

func (l *localStateRepository) GetRememberedKey(ctx context.Context, userID string) ([]byte, error) {
	return l.getBlob(ctx, "localStateRepository.GetRememberedKey", getRememberedKey, userID)
}

func (l *localStateRepository) SaveRememberedKey(ctx context.Context, userID string, sealed []byte) error {
	return l.exec(ctx, "localStateRepository.SaveRememberedKey", saveRememberedKey, userID, sealed)
}

func (l *localStateRepository) DeleteRememberedKey(ctx context.Context, userID string) error {
	return l.exec(ctx, "localStateRepository.DeleteRememberedKey", deleteRememberedKey, userID)
}

// getBlob returns (nil, nil) when the row does not exist.
func (l *localStateRepository) getBlob(ctx context.Context, fn, query string, args ...any) ([]byte, error) {
	var blob []byte
	err := l.DB.QueryRowContext(ctx, query, args...).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		l.logger.Err(err).Str("func", fn).Msg("failed to query secret")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return blob, nil
}

func (l *localStateRepository) exec(ctx context.Context, fn, query string, args ...any) error {
	if _, err := l.DB.ExecContext(ctx, query, args...); err != nil {
		l.logger.Err(err).Str("func", fn).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
