// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork means the request never got an answer.
	ErrNetwork = errors.New("remote store is unreachable")
	// ErrServerUnavailable is a 5xx (or gRPC Internal/Unavailable) answer.
	ErrServerUnavailable = errors.New("remote store is unavailable")
	// ErrUnauthorized means the access token was rejected.
	ErrUnauthorized = errors.New("client unauthorized")
	// ErrBadRequest means the server refused the request as malformed.
	ErrBadRequest = errors.New("bad request")
	// ErrRevisionConflict is wrapped by *ConflictError.
	ErrRevisionConflict = errors.New("revision conflict")
	// ErrUnexpectedResponse means the answer could not be decoded.
	ErrUnexpectedResponse = errors.New("unexpected response")
	// ErrUnsupportedTransport is returned by NewClient.
	ErrUnsupportedTransport = errors.New("unsupported transport")
)

// ConflictError reports a push rejected because the remote store already
// holds CurrentRev, which is not lower than the pushed revision.
type ConflictError struct {
	CurrentRev int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: remote is at rev %d", ErrRevisionConflict, e.CurrentRev)
}

func (e *ConflictError) Unwrap() error {
	return ErrRevisionConflict
}

// IsRetryable reports whether a failed call may succeed later unchanged.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrServerUnavailable)
}
