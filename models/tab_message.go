// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// TabMessageType enumerates coordination messages exchanged between tabs.
type TabMessageType string

const (
	TabHeartbeat    TabMessageType = "heartbeat"
	TabClaim        TabMessageType = "claim"
	TabRelease      TabMessageType = "release"
	TabStateChanged TabMessageType = "state-changed"
)

// TabMessage is broadcast on the per-device tab channel.
type TabMessage struct {
	Type TabMessageType `json:"type"`
	// TabID identifies the sender.
	TabID string `json:"tabId"`
	// Timestamp is the send time in unix milliseconds.
	Timestamp int64 `json:"timestamp"`
	// Rev is set for state-changed messages.
	Rev *int64 `json:"rev,omitempty"`
}
