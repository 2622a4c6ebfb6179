// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/MKhiriev/go-omnifolio/internal/config"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/internal/syncrpc"
	"github.com/MKhiriev/go-omnifolio/internal/utils"
	"github.com/MKhiriev/go-omnifolio/models"
)

type grpcRemoteStore struct {
	conn   *grpc.ClientConn
	client *syncrpc.SnapshotStoreClient

	hashKey string
	token   string
	timeout time.Duration

	logger *logger.Logger
}

// NewGRPCRemoteStore dials adapterCfg.GRPCAddress lazily and returns the
// gRPC implementation of [Client].
func NewGRPCRemoteStore(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger, opts ...grpc.DialOption) (Client, error) {
	if strings.TrimSpace(adapterCfg.GRPCAddress) == "" {
		return nil, fmt.Errorf("invalid adapter grpc address: empty address")
	}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}, opts...)

	conn, err := grpc.NewClient(adapterCfg.GRPCAddress, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc client: %w", err)
	}

	return &grpcRemoteStore{
		conn:    conn,
		client:  syncrpc.NewSnapshotStoreClient(conn),
		hashKey: appCfg.HashKey,
		token:   strings.TrimSpace(appCfg.Token),
		timeout: adapterCfg.RequestTimeout,
		logger:  logger,
	}, nil
}

// Push implements [RemoteStore].
func (g *grpcRemoteStore) Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("encode push request: %w", err)
	}

	ctx, cancel := g.callContext(ctx)
	defer cancel()
	if g.hashKey != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, syncrpc.HashHeader, utils.HashString(body, g.hashKey))
	}

	var trailer metadata.MD
	out, err := g.client.Push(ctx, wrapperspb.Bytes(body), grpc.Trailer(&trailer))
	if err != nil {
		err = mapGRPCError(err, trailer)
		g.logger.Debug().Err(err).Str("func", "grpcRemoteStore.Push").Int64("rev", req.Rev).Msg("push rejected")
		return models.PushResponse{}, err
	}

	var pushed models.PushResponse
	if err = json.Unmarshal(out.GetValue(), &pushed); err != nil {
		return models.PushResponse{}, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}

	return pushed, nil
}

// Pull implements [RemoteStore].
func (g *grpcRemoteStore) Pull(ctx context.Context) (models.PullResponse, error) {
	ctx, cancel := g.callContext(ctx)
	defer cancel()

	out, err := g.client.Pull(ctx, &emptypb.Empty{})
	if err != nil {
		return models.PullResponse{}, mapGRPCError(err, nil)
	}

	var pulled models.PullResponse
	if err = json.Unmarshal(out.GetValue(), &pulled); err != nil {
		return models.PullResponse{}, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
	}
	if pulled.Exists && pulled.Data == nil {
		return models.PullResponse{}, fmt.Errorf("%w: snapshot marked as existing but missing", ErrUnexpectedResponse)
	}

	return pulled, nil
}

// Ping implements [Pinger].
func (g *grpcRemoteStore) Ping(ctx context.Context) error {
	ctx, cancel := g.callContext(ctx)
	defer cancel()

	if _, err := g.client.Ping(ctx, &emptypb.Empty{}); err != nil {
		return mapGRPCError(err, nil)
	}
	return nil
}

func (g *grpcRemoteStore) Close() error {
	return g.conn.Close()
}

// callContext attaches the bearer token and the request timeout.
func (g *grpcRemoteStore) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, syncrpc.AuthorizationHeader, "Bearer "+g.token)
	}
	if g.timeout > 0 {
		return context.WithTimeout(ctx, g.timeout)
	}
	return context.WithCancel(ctx)
}
