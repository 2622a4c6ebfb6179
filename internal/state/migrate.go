// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package state

import (
	"fmt"
	"slices"

	"github.com/Rhymond/go-money"

	"github.com/MKhiriev/go-omnifolio/models"
)

// Migrate upgrades a snapshot written by an older build to
// [CurrentSchemaVersion] and repairs nil collections. It does not touch rev
// or updatedAt: migration is not a mutation.
func Migrate(s models.AppState) models.AppState {
	out := Clone(s)

	// v1 snapshots predate dashboard zoom and notes.
	if out.SchemaVersion < 2 {
		if out.Dashboard.Zoom == 0 {
			out.Dashboard.Zoom = 1
		}
	}
	if out.SchemaVersion < CurrentSchemaVersion {
		out.SchemaVersion = CurrentSchemaVersion
	}

	out.Dashboard.CardOrder = normalizeCardOrder(out.Dashboard.CardOrder)
	out.Dashboard.Hidden = normalizeHidden(out.Dashboard.Hidden)

	if out.Settings.Currency == "" {
		out.Settings.Currency = "USD"
	}
	if out.Settings.Theme == "" {
		out.Settings.Theme = models.ThemeSystem
	}

	return out
}

// Validate reports structural problems of a snapshot.
func Validate(s models.AppState) error {
	if s.UserID == "" {
		return fmt.Errorf("%w: empty user id", ErrInvalidAction)
	}
	if s.Rev < 0 {
		return fmt.Errorf("%w: negative rev %d", ErrInvalidAction, s.Rev)
	}
	if s.SchemaVersion > CurrentSchemaVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedSchema, s.SchemaVersion)
	}
	return validateSettings(s.Settings)
}

// IsKnownCurrency reports whether code is an ISO-4217 currency.
func IsKnownCurrency(code string) bool {
	return code != "" && money.GetCurrency(code) != nil
}

func validateSettings(s models.Settings) error {
	if !IsKnownCurrency(s.Currency) {
		return fmt.Errorf("%w: unknown currency %q", ErrInvalidAction, s.Currency)
	}
	switch s.Theme {
	case models.ThemeLight, models.ThemeDark, models.ThemeSystem:
	default:
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidAction, s.Theme)
	}
	if s.Locale == "" {
		return fmt.Errorf("%w: empty locale", ErrInvalidAction)
	}
	return nil
}

// normalizeCardOrder drops duplicates and unknown cards and appends known
// cards missing from order.
func normalizeCardOrder(order []string) []string {
	out := make([]string, 0, len(DefaultCardOrder))
	for _, id := range order {
		if slices.Contains(DefaultCardOrder, id) && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	for _, id := range DefaultCardOrder {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func normalizeHidden(hidden []string) []string {
	out := make([]string, 0, len(hidden))
	for _, id := range hidden {
		if slices.Contains(DefaultCardOrder, id) && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}
