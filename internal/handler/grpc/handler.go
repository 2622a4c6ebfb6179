// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package grpc serves the remote snapshot store over gRPC.
//
// The payloads are the JSON documents of the HTTP API. A stale push fails
// with codes.Aborted and the stored revision in the x-current-rev trailer.
package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/MKhiriev/go-omnifolio/internal/config"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/internal/service"
	"github.com/MKhiriev/go-omnifolio/internal/store"
	"github.com/MKhiriev/go-omnifolio/internal/syncrpc"
	"github.com/MKhiriev/go-omnifolio/internal/utils"
	"github.com/MKhiriev/go-omnifolio/models"
)

// Handler implements [syncrpc.SnapshotStoreServer] on top of the service
// layer.
type Handler struct {
	services *service.Services
	hashKey  string
	logger   *logger.Logger
}

func NewHandler(services *service.Services, app config.ServerApp, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		hashKey:  app.HashKey,
		logger:   logger,
	}
}

// Register adds the service to s.
func (h *Handler) Register(s grpc.ServiceRegistrar) {
	syncrpc.RegisterSnapshotStoreServer(s, h)
}

func (h *Handler) Push(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "no authenticated user")
	}

	body := in.GetValue()
	if err := h.checkHash(ctx, body); err != nil {
		return nil, err
	}

	var req models.PushRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid push request: %v", err)
	}

	resp, err := h.services.SnapshotService.Push(ctx, userID, req)
	if err != nil {
		var conflict *store.ConflictError
		if errors.As(err, &conflict) {
			_ = grpc.SetTrailer(ctx, metadata.Pairs(syncrpc.CurrentRevTrailer, strconv.FormatInt(conflict.CurrentRev, 10)))
			return nil, status.Error(codes.Aborted, store.ErrRevisionConflict.Error())
		}
		return nil, statusFromError(err)
	}

	return encode(resp)
}

func (h *Handler) Pull(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "no authenticated user")
	}

	resp, err := h.services.SnapshotService.Pull(ctx, userID)
	if err != nil {
		return nil, statusFromError(err)
	}

	return encode(resp)
}

func (h *Handler) Ping(context.Context, *emptypb.Empty) (*emptypb.Empty, error) {
	return &emptypb.Empty{}, nil
}

func (h *Handler) checkHash(ctx context.Context, body []byte) error {
	if h.hashKey == "" {
		return nil
	}

	md, _ := metadata.FromIncomingContext(ctx)
	values := md.Get(syncrpc.HashHeader)
	if len(values) == 0 {
		return status.Error(codes.InvalidArgument, "missing integrity hash")
	}
	if !utils.VerifyHash(body, values[0], h.hashKey) {
		return status.Error(codes.InvalidArgument, "integrity check failed")
	}
	return nil
}

func encode(v any) (*wrapperspb.BytesValue, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return wrapperspb.Bytes(body), nil
}
