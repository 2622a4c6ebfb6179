// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-omnifolio/internal/service"
	"github.com/MKhiriev/go-omnifolio/internal/store"
)

var errorCodeMap = map[error]codes.Code{
	service.ErrInvalidDataProvided:     codes.InvalidArgument,
	service.ErrTokenIsExpiredOrInvalid: codes.Unauthenticated,

	store.ErrRevisionConflict:   codes.Aborted,
	store.ErrSnapshotNotFound:   codes.NotFound,
	store.ErrStorageUnavailable: codes.Unavailable,
}

func statusFromError(err error) error {
	for target, code := range errorCodeMap {
		if errors.Is(err, target) {
			return status.Error(code, err.Error())
		}
	}
	return status.Error(codes.Internal, err.Error())
}
