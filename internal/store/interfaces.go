// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-omnifolio/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SnapshotRepository keeps one encrypted snapshot per user on the server.
type SnapshotRepository interface {
	// GetSnapshot returns the stored snapshot or ErrSnapshotNotFound.
	GetSnapshot(ctx context.Context, userID string) (models.RemoteSnapshot, error)

	// SaveSnapshot stores snap only when the stored revision is lower than
	// snap.Rev (or nothing is stored). A rejected write returns a
	// *ConflictError with the stored revision.
	SaveSnapshot(ctx context.Context, snap models.RemoteSnapshot) (models.PushResponse, error)
}
