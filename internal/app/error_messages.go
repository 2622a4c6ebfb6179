// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// remote store's handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
package app

const (
	// MsgInvalidDataProvided is returned when a push fails validation
	// (negative revision, missing schema version, incomplete envelope).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON"

	// MsgInvalidGzip is returned when a Content-Encoding: gzip body is not
	// valid gzip.
	MsgInvalidGzip = "invalid gzip data"

	// MsgInvalidBody is returned when the request body cannot be read.
	MsgInvalidBody = "invalid body"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgNoUserIDProvided is returned when a handler requires a user ID
	// but none is present in the request context.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgRevisionConflict accompanies a 409: the stored snapshot has the
	// same or a newer revision.
	MsgRevisionConflict = "stored snapshot has the same or a newer revision"

	// MsgSnapshotNotFound is returned when the user never pushed.
	MsgSnapshotNotFound = "snapshot not found"

	// MsgStorageUnavailable is returned when the database cannot be reached;
	// clients retry.
	MsgStorageUnavailable = "storage is unavailable"
)
