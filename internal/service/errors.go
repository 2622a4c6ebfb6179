// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-omnifolio/internal/adapter"
)

var (
	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrNoEncryptionKey = errors.New("no encryption key configured")
	ErrNotMounted      = errors.New("state container is not mounted")
	ErrRemoteSnapshot  = errors.New("remote snapshot does not belong to the user")
)

// SyncError wraps a failed sync operation with the number of attempts made.
type SyncError struct {
	// Op is "push", "pull" or "initial-sync".
	Op      string
	Retries int
	Err     error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts: %v", e.Op, e.Retries, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// isRetryable reports whether a failed sync attempt may succeed when
// repeated unchanged. Crypto and client errors never do.
func isRetryable(err error) bool {
	return adapter.IsRetryable(err)
}
