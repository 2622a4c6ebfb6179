// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-omnifolio/models"
)

// model routes between the unlock screen and the dashboard:
// 1) handles global quit and the build info overlay
// 2) drains service notifications one at a time
// 3) delegates everything else to the active screen
type model struct {
	ctx       context.Context
	session   Session
	events    <-chan tea.Msg
	buildInfo models.AppBuildInfo

	unlocked      bool
	unlock        unlockModel
	dashboard     dashboardModel
	showBuildInfo bool
	quitByUser    bool
}

func newModel(ctx context.Context, session Session, events <-chan tea.Msg, buildInfo models.AppBuildInfo) model {
	return model{
		ctx:       ctx,
		session:   session,
		events:    events,
		buildInfo: buildInfo,
		unlock:    newUnlockModel(),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, recallKeyCmd(m.ctx, m.session), waitForEvent(m.events))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.forceQuit):
			m.quitByUser = true
			return m, tea.Quit
		case m.showBuildInfo:
			if key.Matches(keyMsg, keys.esc) {
				m.showBuildInfo = false
			}
			return m, nil
		case m.unlocked && key.Matches(keyMsg, keys.quit):
			m.quitByUser = true
			return m, tea.Quit
		case m.unlocked && key.Matches(keyMsg, keys.buildInfo):
			m.showBuildInfo = true
			return m, nil
		}
	}

	switch msg := msg.(type) {
	case rememberedKeyMsg:
		if msg.err != nil {
			m.unlock.errMsg = humanizeError(msg.err)
			return m, nil
		}
		if msg.key == "" {
			return m, nil
		}
		m.unlock.submitting = true
		return m, unlockCmd(m.ctx, m.session, msg.key)

	case unlockedMsg:
		if msg.err == nil {
			m.unlocked = true
			m.dashboard = m.dashboard.refresh(m.session)
			return m, nil
		}

	case stateChangedMsg, syncChangedMsg, leaderChangedMsg, conflictMsg:
		m.dashboard, _ = m.dashboard.update(m.session, msg)
		return m, waitForEvent(m.events)
	}

	var cmd tea.Cmd
	if m.unlocked {
		m.dashboard, cmd = m.dashboard.update(m.session, msg)
	} else {
		m.unlock, cmd = m.unlock.update(m.ctx, m.session, msg)
	}
	return m, cmd
}

func (m model) View() string {
	if m.showBuildInfo {
		return renderBuildInfoWindow(m.buildInfo)
	}
	if m.unlocked {
		return m.dashboard.view()
	}
	return m.unlock.view()
}

// waitForEvent blocks on the notification channel; Update re-arms it after
// every notification.
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}
