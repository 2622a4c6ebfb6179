// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// EncryptedPayload is the envelope produced by encrypting an [AppState].
//
// All fields are standard base64 strings. Ciphertext is the state JSON sealed
// with a per-encryption data key (DEK); WrappedDEK is that key sealed with a
// key-encryption key derived from the user's recovery key and Salt.
type EncryptedPayload struct {
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
	Salt       string `json:"salt"`
	WrappedDEK string `json:"wrappedDek"`
	DEKIV      string `json:"dekIv"`
}

// RemoteSnapshot is what the remote store keeps for a user: one encrypted
// blob plus the plaintext revision metadata needed for optimistic concurrency.
type RemoteSnapshot struct {
	UserID        string    `json:"-"`
	Rev           int64     `json:"rev"`
	SchemaVersion int       `json:"schemaVersion"`
	UpdatedAt     time.Time `json:"updatedAt"`
	EncryptedPayload
}

// PushRequest is the body of a snapshot push.
type PushRequest struct {
	Rev           int64 `json:"rev"`
	SchemaVersion int   `json:"schemaVersion"`
	EncryptedPayload
}

// PushResponse acknowledges an accepted push.
type PushResponse struct {
	Rev       int64     `json:"rev"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ConflictResponse is returned with status 409 when the stored snapshot
// already has a revision greater than or equal to the pushed one.
type ConflictResponse struct {
	CurrentRev int64  `json:"currentRev"`
	Message    string `json:"message,omitempty"`
}

// PullResponse is the body of a snapshot pull. Data is nil when Exists is false.
type PullResponse struct {
	Exists bool            `json:"exists"`
	Data   *RemoteSnapshot `json:"data,omitempty"`
}

// SnapshotEvent is streamed to a user's other devices after an accepted push.
type SnapshotEvent struct {
	Rev       int64     `json:"rev"`
	UpdatedAt time.Time `json:"updatedAt"`
}
