// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package syncrpc declares the gRPC flavour of the remote snapshot store.
//
// The service is declared by hand instead of being generated from a .proto
// file: requests and responses are the same JSON documents the HTTP API
// uses, carried in wrapperspb.BytesValue.
//
//	service SnapshotStore {
//	  rpc Push(google.protobuf.BytesValue) returns (google.protobuf.BytesValue); // PushRequest -> PushResponse
//	  rpc Pull(google.protobuf.Empty)      returns (google.protobuf.BytesValue); // PullResponse
//	  rpc Ping(google.protobuf.Empty)      returns (google.protobuf.Empty);
//	}
//
// A stale push fails with codes.Aborted and the stored revision in the
// [CurrentRevTrailer] trailer.
package syncrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "omnifolio.sync.v1.SnapshotStore"

// Full method names.
const (
	PushMethod = "/" + ServiceName + "/Push"
	PullMethod = "/" + ServiceName + "/Pull"
	PingMethod = "/" + ServiceName + "/Ping"
)

// Metadata keys. gRPC metadata keys are lower case.
const (
	AuthorizationHeader = "authorization"
	HashHeader          = "hashsha256"
	CurrentRevTrailer   = "x-current-rev"
)

// SnapshotStoreServer is implemented by the server handler.
type SnapshotStoreServer interface {
	Push(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
	Pull(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error)
	Ping(context.Context, *emptypb.Empty) (*emptypb.Empty, error)
}

// RegisterSnapshotStoreServer registers srv on s.
func RegisterSnapshotStoreServer(s grpc.ServiceRegistrar, srv SnapshotStoreServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes the SnapshotStore service to grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SnapshotStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Push", Handler: pushHandler},
		{MethodName: "Pull", Handler: pullHandler},
		{MethodName: "Ping", Handler: pingHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "omnifolio/sync/v1/snapshot_store.proto",
}

func pushHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SnapshotStoreServer).Push(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PushMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SnapshotStoreServer).Push(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

func pullHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SnapshotStoreServer).Pull(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SnapshotStoreServer).Pull(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func pingHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SnapshotStoreServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PingMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SnapshotStoreServer).Ping(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// SnapshotStoreClient is the client stub of the service.
type SnapshotStoreClient struct {
	cc grpc.ClientConnInterface
}

// NewSnapshotStoreClient wraps cc.
func NewSnapshotStoreClient(cc grpc.ClientConnInterface) *SnapshotStoreClient {
	return &SnapshotStoreClient{cc: cc}
}

func (c *SnapshotStoreClient) Push(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, PushMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SnapshotStoreClient) Pull(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, PullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SnapshotStoreClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, PingMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
