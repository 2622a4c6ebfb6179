// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-omnifolio/internal/state"
	"github.com/MKhiriev/go-omnifolio/models"
)

const conflictNotice = "Changes from another device were loaded"

// dashboardModel shows the unlocked portfolio and the sync status.
type dashboardModel struct {
	state    models.AppState
	sync     models.SyncState
	isLeader bool
	conflict bool
	origin   models.ChangeOrigin
}

func (m dashboardModel) refresh(session Session) dashboardModel {
	m.state = session.State()
	m.sync = session.SyncState()
	m.isLeader = session.IsLeader()
	return m
}

func (m dashboardModel) update(session Session, msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case stateChangedMsg:
		m.state = session.State()
		m.origin = msg.origin
	case syncChangedMsg:
		m.sync = msg.state
	case leaderChangedMsg:
		m.isLeader = msg.isLeader
	case conflictMsg:
		m.conflict = true
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.retry):
			if m.sync.Status == models.SyncError {
				session.Retry()
			}
		case key.Matches(msg, keys.esc):
			m.conflict = false
		}
	}
	return m, nil
}

func (m dashboardModel) view() string {
	var b strings.Builder

	if m.conflict {
		b.WriteString(noticeStyle.Render(conflictNotice))
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "User      %s\n", m.state.UserID)
	fmt.Fprintf(&b, "Revision  %d%s\n", m.state.Rev, originSuffix(m.origin))
	if m.isLeader {
		b.WriteString("Role      this window syncs for the device\n")
	} else {
		b.WriteString("Role      another window syncs for the device\n")
	}
	b.WriteString("\n")
	b.WriteString(m.syncView())
	b.WriteString("\n")
	b.WriteString(m.portfolioView())

	hotKeys := "v: about │ q: quit"
	if m.sync.Status == models.SyncError {
		hotKeys = "r: retry │ " + hotKeys
	}
	if m.conflict {
		hotKeys = "esc: dismiss │ " + hotKeys
	}

	return renderPage("OMNIFOLIO", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func originSuffix(origin models.ChangeOrigin) string {
	switch origin {
	case models.OriginRemote:
		return " (from another device)"
	case models.OriginTab:
		return " (from another window)"
	}
	return ""
}

func (m dashboardModel) syncView() string {
	var b strings.Builder

	status := string(m.sync.Status)
	switch m.sync.Status {
	case models.SyncIdle:
		status = okStyle.Render(status)
	case models.SyncError, models.SyncOffline:
		status = errorStyle.Render(status)
	}

	fmt.Fprintf(&b, "Sync      %s\n", status)
	fmt.Fprintf(&b, "Pending   %d\n", m.sync.PendingChanges)
	fmt.Fprintf(&b, "Synced    rev %d at %s\n", m.sync.LastSyncedRev, formatTime(m.sync.LastSyncedAt))
	if m.sync.Error != "" {
		b.WriteString(errorStyle.Render("Error     " + m.sync.Error))
		b.WriteString("\n")
	}
	return b.String()
}

func (m dashboardModel) portfolioView() string {
	var b strings.Builder
	p := m.state.Portfolio

	totals := state.Totals(p)
	b.WriteString("Totals\n")
	if len(totals) == 0 {
		b.WriteString("  -\n")
	}
	for _, t := range totals {
		fmt.Fprintf(&b, "  %-4s %s\n", t.Currency, t.Display())
	}

	fmt.Fprintf(&b, "\nHoldings %d │ Accounts %d │ Assets %d │ Watchlist %d │ Notes %d\n",
		len(p.Holdings), len(p.Accounts), len(p.Assets), len(m.state.Watchlist), len(m.state.Notes))
	return b.String()
}
