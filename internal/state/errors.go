// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package state

import "errors"

var (
	// ErrNotFound is returned by actions referencing an unknown record.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidAction is returned by actions whose input fails validation.
	ErrInvalidAction = errors.New("invalid action")
	// ErrUnsupportedSchema is reported by Validate for snapshots written by
	// a newer build.
	ErrUnsupportedSchema = errors.New("unsupported schema version")
)
