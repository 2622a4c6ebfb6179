// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package state owns the canonical application snapshot: its defaults,
// the immutable update helpers that advance the revision, typed actions
// built on those helpers, and forward migration of older snapshots.
package state

import (
	"slices"
	"time"

	"github.com/MKhiriev/go-omnifolio/models"
)

// CurrentSchemaVersion is the layout produced by this build.
const CurrentSchemaVersion = 2

// Dashboard card identifiers.
const (
	CardNetWorth     = "net-worth"
	CardAllocation   = "allocation"
	CardHoldings     = "holdings"
	CardAccounts     = "accounts"
	CardTransactions = "transactions"
	CardPerformance  = "performance"
	CardWatchlist    = "watchlist"
	CardNotes        = "notes"
)

// DefaultCardOrder is the dashboard layout of a fresh snapshot.
var DefaultCardOrder = []string{
	CardNetWorth, CardAllocation, CardHoldings, CardAccounts,
	CardTransactions, CardPerformance, CardWatchlist, CardNotes,
}

// RequiredFields are the top-level JSON keys every snapshot must carry.
var RequiredFields = []string{"schemaVersion", "rev", "userId", "portfolio", "dashboard", "settings"}

// now is swapped in tests.
var now = func() time.Time { return time.Now().UTC() }

// NewDefault returns the rev-0 snapshot of a user who has never saved anything.
func NewDefault(userID string) models.AppState {
	return models.AppState{
		SchemaVersion: CurrentSchemaVersion,
		Rev:           0,
		UpdatedAt:     now(),
		UserID:        userID,
		Portfolio:     emptyPortfolio(),
		Dashboard: models.Dashboard{
			CardOrder: slices.Clone(DefaultCardOrder),
			Hidden:    []string{},
			Zoom:      1,
		},
		Settings: models.Settings{
			Locale:   "en-US",
			Currency: "USD",
			Theme:    models.ThemeSystem,
			Notifications: models.Notifications{
				PriceAlerts: true,
				SyncNotices: true,
			},
		},
		Watchlist: []models.WatchlistItem{},
		Notes:     []models.Note{},
	}
}

func emptyPortfolio() models.Portfolio {
	return models.Portfolio{
		Holdings:          []models.Holding{},
		Accounts:          []models.Account{},
		Transactions:      []models.Transaction{},
		Assets:            []models.Asset{},
		ExpenseCategories: []models.ExpenseCategory{},
		IncomeSources:     []models.IncomeSource{},
	}
}

// Clone returns a deep copy of s; the copy shares no slices with s.
func Clone(s models.AppState) models.AppState {
	out := s
	out.Portfolio = clonePortfolio(s.Portfolio)
	out.Dashboard = cloneDashboard(s.Dashboard)
	out.Watchlist = cloneSlice(s.Watchlist)
	out.Notes = cloneSlice(s.Notes)
	return out
}

func clonePortfolio(p models.Portfolio) models.Portfolio {
	return models.Portfolio{
		Holdings:          cloneSlice(p.Holdings),
		Accounts:          cloneSlice(p.Accounts),
		Transactions:      cloneSlice(p.Transactions),
		Assets:            cloneSlice(p.Assets),
		ExpenseCategories: cloneSlice(p.ExpenseCategories),
		IncomeSources:     cloneSlice(p.IncomeSources),
	}
}

func cloneDashboard(d models.Dashboard) models.Dashboard {
	return models.Dashboard{
		CardOrder: cloneSlice(d.CardOrder),
		Hidden:    cloneSlice(d.Hidden),
		Zoom:      d.Zoom,
	}
}

// cloneSlice never returns nil so that snapshots always serialize
// collections as JSON arrays.
func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
