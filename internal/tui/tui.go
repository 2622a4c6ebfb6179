// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/models"
)

const eventsBuffer = 64

// TUI is the terminal front end of one client window.
//
// Notifications arrive from service goroutines through the Notify* methods.
// They never block the caller: when the buffer is full the notification is
// dropped and the next state message re-reads the session.
type TUI struct {
	session   Session
	buildInfo models.AppBuildInfo
	events    chan tea.Msg
	logger    *logger.Logger
}

func New(session Session, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{
		session:   session,
		buildInfo: buildInfo,
		events:    make(chan tea.Msg, eventsBuffer),
		logger:    logger,
	}
}

// Run shows the UI until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	m := newModel(ctx, t.session, t.events, t.buildInfo)

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	result, ok := final.(model)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}
	return nil
}

func (t *TUI) NotifyState(st models.AppState, origin models.ChangeOrigin) {
	t.send(stateChangedMsg{rev: st.Rev, origin: origin})
}

func (t *TUI) NotifySync(st models.SyncState) {
	t.send(syncChangedMsg{state: st})
}

func (t *TUI) NotifyLeader(isLeader bool) {
	t.send(leaderChangedMsg{isLeader: isLeader})
}

// NotifyConflict shows the notice that local edits lost to another device.
func (t *TUI) NotifyConflict(models.AppState) {
	t.send(conflictMsg{})
}

func (t *TUI) send(msg tea.Msg) {
	select {
	case t.events <- msg:
	default:
		t.logger.Debug().Str("func", "TUI.send").Msgf("ui event %T dropped", msg)
	}
}
