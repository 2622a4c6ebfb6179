// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-omnifolio/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SnapshotService is the server side of the remote store: one encrypted
// snapshot per user, replaced only by a strictly newer revision.
type SnapshotService interface {
	// Push stores req for userID when the stored revision is lower than
	// req.Rev. Otherwise it returns a *store.ConflictError.
	Push(ctx context.Context, userID string, req models.PushRequest) (models.PushResponse, error)

	// Pull returns the stored snapshot of userID, if any.
	Pull(ctx context.Context, userID string) (models.PullResponse, error)

	// Subscribe streams an event after every accepted push of userID. The
	// returned function ends the subscription.
	Subscribe(userID string) (<-chan models.SnapshotEvent, func())
}

type AuthService interface {
	CreateToken(ctx context.Context, userID string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
