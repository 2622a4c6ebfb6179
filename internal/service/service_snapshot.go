// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/internal/store"
	"github.com/MKhiriev/go-omnifolio/internal/validators"
	"github.com/MKhiriev/go-omnifolio/models"
)

// snapshotService is the concrete implementation of SnapshotService. The
// repository's conditional upsert is the only ordering point between
// devices; the service validates input and announces accepted pushes.
type snapshotService struct {
	repo      store.SnapshotRepository
	validator validators.Validator
	hub       *eventsHub
	tracer    trace.Tracer

	logger *logger.Logger
}

func NewSnapshotService(repo store.SnapshotRepository, logger *logger.Logger) SnapshotService {
	return &snapshotService{
		repo:      repo,
		validator: validators.NewSnapshotValidator(),
		hub:       newEventsHub(),
		tracer:    otel.Tracer(tracerName),
		logger:    logger,
	}
}

// Push stores req and notifies the user's subscribers.
//
// Returns:
//   - ErrInvalidDataProvided for a missing user, a negative revision, an
//     unset schema version or an incomplete payload.
//   - *store.ConflictError when the stored revision is not lower.
//   - store.ErrStorageUnavailable when the database is unreachable.
func (s *snapshotService) Push(ctx context.Context, userID string, req models.PushRequest) (models.PushResponse, error) {
	ctx, span := s.tracer.Start(ctx, "snapshot.push", trace.WithAttributes(attribute.Int64("rev", req.Rev)))
	defer span.End()

	log := logger.FromContext(ctx)

	snap := models.RemoteSnapshot{
		UserID:           userID,
		Rev:              req.Rev,
		SchemaVersion:    req.SchemaVersion,
		EncryptedPayload: req.EncryptedPayload,
	}
	if err := s.validator.Validate(ctx, snap); err != nil {
		log.Error().Err(err).Str("user_id", userID).Int64("rev", req.Rev).Msg("invalid push")
		return models.PushResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	resp, err := s.repo.SaveSnapshot(ctx, snap)
	if err != nil {
		var conflict *store.ConflictError
		if errors.As(err, &conflict) {
			span.SetAttributes(attribute.Int64("current_rev", conflict.CurrentRev))
			log.Info().Str("user_id", userID).Int64("rev", req.Rev).Int64("current_rev", conflict.CurrentRev).Msg("push rejected")
		} else {
			span.RecordError(err)
			span.SetStatus(codes.Error, "save snapshot failed")
			log.Err(err).Str("user_id", userID).Int64("rev", req.Rev).Msg("save snapshot failed")
		}
		return models.PushResponse{}, fmt.Errorf("save snapshot: %w", err)
	}

	s.hub.publish(userID, models.SnapshotEvent{Rev: resp.Rev, UpdatedAt: resp.UpdatedAt})

	return resp, nil
}

// Pull returns Exists=false when the user never pushed.
func (s *snapshotService) Pull(ctx context.Context, userID string) (models.PullResponse, error) {
	ctx, span := s.tracer.Start(ctx, "snapshot.pull")
	defer span.End()

	if userID == "" {
		return models.PullResponse{}, ErrInvalidDataProvided
	}

	snap, err := s.repo.GetSnapshot(ctx, userID)
	if errors.Is(err, store.ErrSnapshotNotFound) {
		return models.PullResponse{Exists: false}, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "get snapshot failed")
		logger.FromContext(ctx).Err(err).Str("user_id", userID).Msg("get snapshot failed")
		return models.PullResponse{}, fmt.Errorf("get snapshot: %w", err)
	}

	span.SetAttributes(attribute.Int64("rev", snap.Rev))
	return models.PullResponse{Exists: true, Data: &snap}, nil
}

func (s *snapshotService) Subscribe(userID string) (<-chan models.SnapshotEvent, func()) {
	return s.hub.subscribe(userID)
}
