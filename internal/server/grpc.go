// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"net"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"

	myGRPC "github.com/MKhiriev/go-omnifolio/internal/handler/grpc"
)

type grpcServer struct {
	server   *grpc.Server
	listener net.Listener
}

func newGRPCServer(handler *myGRPC.Handler, address string) (*grpcServer, error) {
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return nil, err
	}

	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(handler.Interceptors()...),
	)
	handler.Register(srv)

	return &grpcServer{server: srv, listener: lis}, nil
}

func (g *grpcServer) serve() error {
	return g.server.Serve(g.listener)
}

// shutdown waits for in-flight calls unless ctx expires first.
func (g *grpcServer) shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		g.server.Stop()
		return ctx.Err()
	}
}

func (g *grpcServer) name() string { return "grpc" }
