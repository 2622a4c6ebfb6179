// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"
)

// AppState is the single authoritative snapshot of everything a user owns
// inside the application. It is the plaintext that gets encrypted and pushed
// to the remote store as one blob.
//
// Rev grows by exactly one for every local mutation. The only way Rev can
// change by any other amount is adoption of a snapshot pulled from the
// remote store or written by another tab.
type AppState struct {
	// SchemaVersion identifies the layout of this snapshot and drives
	// forward migration of older snapshots.
	SchemaVersion int `json:"schemaVersion"`

	// Rev is the monotonic revision counter.
	Rev int64 `json:"rev"`

	// UpdatedAt is the moment of the last mutation.
	UpdatedAt time.Time `json:"updatedAt"`

	// UserID is the owner of the snapshot.
	UserID string `json:"userId"`

	Portfolio Portfolio       `json:"portfolio"`
	Dashboard Dashboard       `json:"dashboard"`
	Settings  Settings        `json:"settings"`
	Watchlist []WatchlistItem `json:"watchlist"`
	Notes     []Note          `json:"notes"`
}

// Dashboard describes the layout of the overview screen.
type Dashboard struct {
	// CardOrder lists card identifiers in display order.
	CardOrder []string `json:"cardOrder"`
	// Hidden lists identifiers of cards the user has hidden. Kept sorted.
	Hidden []string `json:"hidden"`
	// Zoom is the overview scale factor, 1.0 being the default.
	Zoom float64 `json:"zoom"`
}

// IsHidden reports whether the card with the given id is hidden.
func (d Dashboard) IsHidden(cardID string) bool {
	for _, id := range d.Hidden {
		if id == cardID {
			return true
		}
	}
	return false
}

// Theme is the UI colour scheme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Settings holds user preferences.
type Settings struct {
	Locale        string        `json:"locale"`
	Currency      string        `json:"currency"`
	Theme         Theme         `json:"theme"`
	Notifications Notifications `json:"notifications"`
}

// Notifications toggles the kinds of notices shown to the user.
type Notifications struct {
	PriceAlerts  bool `json:"priceAlerts"`
	SyncNotices  bool `json:"syncNotices"`
	WeeklyDigest bool `json:"weeklyDigest"`
}

// WatchlistItem is a tracked instrument the user does not necessarily hold.
type WatchlistItem struct {
	Symbol  string      `json:"symbol"`
	Kind    HoldingKind `json:"kind"`
	AddedAt time.Time   `json:"addedAt"`
}

// Note is a free-form user note.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Pinned    bool      `json:"pinned"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StateField names a top-level sub-aggregate of [AppState] that can be
// replaced as a whole.
type StateField string

const (
	FieldPortfolio StateField = "portfolio"
	FieldDashboard StateField = "dashboard"
	FieldSettings  StateField = "settings"
	FieldWatchlist StateField = "watchlist"
	FieldNotes     StateField = "notes"
)

// ChangeOrigin tells state listeners where a new snapshot came from.
type ChangeOrigin string

const (
	// OriginLoad marks the snapshot read from the local store on mount.
	OriginLoad ChangeOrigin = "load"
	// OriginLocal marks a mutation dispatched in this tab.
	OriginLocal ChangeOrigin = "local"
	// OriginRemote marks a snapshot adopted from the remote store.
	OriginRemote ChangeOrigin = "remote"
	// OriginTab marks a snapshot written by another tab and reloaded locally.
	OriginTab ChangeOrigin = "tab"
)
