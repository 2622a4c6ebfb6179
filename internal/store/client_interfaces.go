// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-omnifolio/internal/crypto"
	"github.com/MKhiriev/go-omnifolio/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalStateRepository is the low-level on-device repository: the latest
// plaintext snapshot per user plus the device secrets used to keep the
// recovery key at rest.
type LocalStateRepository interface {
	// GetState returns the cached snapshot or ErrStateNotFound.
	GetState(ctx context.Context, userID string) (models.AppState, error)

	// SaveState replaces the cached snapshot of st.UserID in one statement.
	SaveState(ctx context.Context, st models.AppState) error

	crypto.SecretStore
}
