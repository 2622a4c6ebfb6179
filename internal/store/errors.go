// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"
	"fmt"
)

// Domain errors of the repositories. Match them with [errors.Is].
var (
	// ErrStateNotFound is returned when no snapshot is cached locally for
	// the user.
	ErrStateNotFound = errors.New("local state was not found")

	// ErrSnapshotNotFound is returned when the server holds no snapshot for
	// the user.
	ErrSnapshotNotFound = errors.New("snapshot was not found")

	// ErrRevisionConflict is returned when a snapshot write is rejected
	// because the stored revision is not lower than the pushed one.
	ErrRevisionConflict = errors.New("snapshot revision conflict occurred")

	// ErrStorageUnavailable marks transient database failures. The caller
	// may try again later.
	ErrStorageUnavailable = errors.New("storage is temporarily unavailable")

	// ErrDecodingState is returned when a cached payload is not a valid
	// application state document.
	ErrDecodingState = errors.New("failed to decode local state")
)

// Low-level database errors, wrapped together with the driver error.
var (
	ErrBuildingSQLQuery = errors.New("error building sql query")
	ErrExecutingQuery   = errors.New("error executing sql query")
	ErrScanningRow      = errors.New("failed to scan row")
)

// ConflictError carries the revision that beat a rejected write.
type ConflictError struct {
	CurrentRev int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: current rev %d", ErrRevisionConflict, e.CurrentRev)
}

// Unwrap lets errors.Is(err, ErrRevisionConflict) match.
func (e *ConflictError) Unwrap() error {
	return ErrRevisionConflict
}
