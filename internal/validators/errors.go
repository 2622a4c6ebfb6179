// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID        = errors.New("invalid user ID")
	ErrInvalidRev           = errors.New("revision must not be negative")
	ErrInvalidSchemaVersion = errors.New("schema version is required")
	ErrIncompletePayload    = errors.New("encrypted payload is incomplete")
	ErrMalformedPayload     = errors.New("encrypted payload is not base64")
)
