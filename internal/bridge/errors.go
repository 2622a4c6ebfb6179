// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bridge

import "errors"

var (
	// ErrUnknownEvent is returned for inbound events the bridge does not translate.
	ErrUnknownEvent = errors.New("unknown legacy event")
	// ErrMalformedEvent is returned when an event detail cannot be decoded.
	ErrMalformedEvent = errors.New("malformed legacy event")
	// ErrBusClosed is returned by Publish after Close.
	ErrBusClosed = errors.New("event bus is closed")
)
