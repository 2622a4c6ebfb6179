// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/models"
)

const snapshotsTable = "encrypted_state_snapshots"

// The WHERE clause of the conflict branch is the precondition of every
// push: the row is only replaced by a strictly newer revision. When it does
// not hold, RETURNING yields no row.
const upsertSnapshotSuffix = `ON CONFLICT (user_id) DO UPDATE SET
	rev            = EXCLUDED.rev,
	schema_version = EXCLUDED.schema_version,
	ciphertext     = EXCLUDED.ciphertext,
	iv             = EXCLUDED.iv,
	salt           = EXCLUDED.salt,
	wrapped_dek    = EXCLUDED.wrapped_dek,
	dek_iv         = EXCLUDED.dek_iv,
	updated_at     = EXCLUDED.updated_at
WHERE encrypted_state_snapshots.rev < EXCLUDED.rev
RETURNING rev, updated_at`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// snapshotRepository is the Postgres implementation of [SnapshotRepository].
type snapshotRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewSnapshotRepository constructs a [SnapshotRepository] on db.
func NewSnapshotRepository(db *DB, logger *logger.Logger) SnapshotRepository {
	logger.Debug().Msg("creating snapshot repository")
	return &snapshotRepository{
		db:     db,
		logger: logger,
	}
}

func (r *snapshotRepository) GetSnapshot(ctx context.Context, userID string) (models.RemoteSnapshot, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Select("user_id", "rev", "schema_version", "ciphertext", "iv", "salt", "wrapped_dek", "dek_iv", "updated_at").
		From(snapshotsTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return models.RemoteSnapshot{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var snap models.RemoteSnapshot
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&snap.UserID,
		&snap.Rev,
		&snap.SchemaVersion,
		&snap.Ciphertext,
		&snap.IV,
		&snap.Salt,
		&snap.WrappedDEK,
		&snap.DEKIV,
		&snap.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RemoteSnapshot{}, ErrSnapshotNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.GetSnapshot").
			Str("user_id", userID).
			Str("pg_code", postgresError(err)).
			Msg("failed to query snapshot")
		return models.RemoteSnapshot{}, r.wrap(err)
	}

	return snap, nil
}

func (r *snapshotRepository) SaveSnapshot(ctx context.Context, snap models.RemoteSnapshot) (models.PushResponse, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Insert(snapshotsTable).
		Columns("user_id", "rev", "schema_version", "ciphertext", "iv", "salt", "wrapped_dek", "dek_iv", "updated_at").
		Values(snap.UserID, snap.Rev, snap.SchemaVersion, snap.Ciphertext, snap.IV, snap.Salt, snap.WrappedDEK, snap.DEKIV, sq.Expr("now()")).
		Suffix(upsertSnapshotSuffix).
		ToSql()
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var resp models.PushResponse
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&resp.Rev, &resp.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		current, currentErr := r.currentRev(ctx, snap.UserID)
		if currentErr != nil {
			return models.PushResponse{}, currentErr
		}
		log.Info().
			Str("func", "snapshotRepository.SaveSnapshot").
			Str("user_id", snap.UserID).
			Int64("rev", snap.Rev).
			Int64("current_rev", current).
			Msg("snapshot push rejected: stale revision")
		return models.PushResponse{}, &ConflictError{CurrentRev: current}
	}
	if err != nil {
		log.Err(err).
			Str("func", "snapshotRepository.SaveSnapshot").
			Str("user_id", snap.UserID).
			Int64("rev", snap.Rev).
			Str("pg_code", postgresError(err)).
			Msg("failed to upsert snapshot")
		return models.PushResponse{}, r.wrap(err)
	}

	return resp, nil
}

func (r *snapshotRepository) currentRev(ctx context.Context, userID string) (int64, error) {
	query, args, err := psql.
		Select("rev").
		From(snapshotsTable).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var rev int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&rev); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "snapshotRepository.currentRev").
			Str("user_id", userID).
			Msg("failed to read current revision")
		return 0, r.wrap(err)
	}

	return rev, nil
}

func (r *snapshotRepository) wrap(err error) error {
	if r.db.classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}
