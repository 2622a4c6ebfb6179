// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package state

import (
	"fmt"

	"github.com/MKhiriev/go-omnifolio/models"
)

// The helpers below are the only way a snapshot is mutated. Each returns a
// new snapshot with one sub-aggregate replaced, rev advanced by one and
// updatedAt refreshed. The input snapshot is never modified.

// WithPortfolio replaces the portfolio.
func WithPortfolio(s models.AppState, p models.Portfolio) models.AppState {
	next := advance(s)
	next.Portfolio = clonePortfolio(p)
	return next
}

// WithDashboard replaces the dashboard layout.
func WithDashboard(s models.AppState, d models.Dashboard) models.AppState {
	next := advance(s)
	next.Dashboard = cloneDashboard(d)
	return next
}

// WithSettings replaces the settings.
func WithSettings(s models.AppState, settings models.Settings) models.AppState {
	next := advance(s)
	next.Settings = settings
	return next
}

// WithWatchlist replaces the watchlist.
func WithWatchlist(s models.AppState, items []models.WatchlistItem) models.AppState {
	next := advance(s)
	next.Watchlist = cloneSlice(items)
	return next
}

// WithNotes replaces the notes.
func WithNotes(s models.AppState, notes []models.Note) models.AppState {
	next := advance(s)
	next.Notes = cloneSlice(notes)
	return next
}

// Set replaces the sub-aggregate named by field. value must have the type
// of that sub-aggregate.
func Set(s models.AppState, field models.StateField, value any) (models.AppState, error) {
	switch field {
	case models.FieldPortfolio:
		if v, ok := value.(models.Portfolio); ok {
			return WithPortfolio(s, v), nil
		}
	case models.FieldDashboard:
		if v, ok := value.(models.Dashboard); ok {
			return WithDashboard(s, v), nil
		}
	case models.FieldSettings:
		if v, ok := value.(models.Settings); ok {
			return WithSettings(s, v), nil
		}
	case models.FieldWatchlist:
		if v, ok := value.([]models.WatchlistItem); ok {
			return WithWatchlist(s, v), nil
		}
	case models.FieldNotes:
		if v, ok := value.([]models.Note); ok {
			return WithNotes(s, v), nil
		}
	default:
		return s, fmt.Errorf("%w: unknown field %q", ErrInvalidAction, field)
	}

	return s, fmt.Errorf("%w: %T is not a valid %s value", ErrInvalidAction, value, field)
}

func advance(s models.AppState) models.AppState {
	next := Clone(s)
	next.Rev = s.Rev + 1
	next.UpdatedAt = now()
	return next
}
