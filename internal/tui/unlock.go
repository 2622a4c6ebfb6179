// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-omnifolio/internal/crypto"
)

// writeClipboard is swapped in tests; there is no clipboard in CI.
var writeClipboard = clipboard.WriteAll

// unlockModel asks for the recovery key. A new key can be generated for a
// first device and copied to the clipboard before it is used.
type unlockModel struct {
	input      textinput.Model
	generated  string
	submitting bool
	status     string
	errMsg     string
}

func newUnlockModel() unlockModel {
	input := textinput.New()
	input.Placeholder = "XXXX-XXXX-XXXX-XXXX"
	input.CharLimit = 32
	input.Width = 24
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '*'
	input.Focus()

	return unlockModel{input: input}
}

func (m unlockModel) update(ctx context.Context, session Session, msg tea.Msg) (unlockModel, tea.Cmd) {
	switch msg := msg.(type) {
	case keyGeneratedMsg:
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.generated = msg.key
		m.input.SetValue(msg.key)
		m.errMsg = ""
		m.status = "Write this key down. It is the only way to open your data on another device."
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.errMsg = "Clipboard is not available: " + msg.err.Error()
			return m, nil
		}
		m.status = "Recovery key copied to the clipboard"
		return m, nil

	case unlockedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.enter):
			if m.submitting {
				return m, nil
			}
			input := strings.TrimSpace(m.input.Value())
			if input == "" {
				m.errMsg = "Enter your recovery key or press ctrl+g to create one"
				return m, nil
			}
			m.errMsg = ""
			m.submitting = true
			return m, unlockCmd(ctx, session, input)

		case key.Matches(msg, keys.generate):
			return m, generateKeyCmd

		case key.Matches(msg, keys.copyKey):
			if m.generated == "" {
				return m, nil
			}
			return m, copyCmd(m.generated)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m unlockModel) view() string {
	var b strings.Builder
	b.WriteString("Recovery key  ")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.generated != "" {
		b.WriteString("\nNew key: ")
		b.WriteString(okStyle.Render(m.generated))
		b.WriteString("\n")
	}
	if m.submitting {
		b.WriteString("\nUnlocking...\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	hotKeys := "enter: unlock │ ctrl+g: new key"
	if m.generated != "" {
		hotKeys += " │ ctrl+y: copy key"
	}
	return renderPage("UNLOCK", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func unlockCmd(ctx context.Context, session Session, input string) tea.Cmd {
	return func() tea.Msg {
		key, err := crypto.NormalizeKey(input)
		if err != nil {
			return unlockedMsg{err: err}
		}
		return unlockedMsg{err: session.Unlock(ctx, key)}
	}
}

func recallKeyCmd(ctx context.Context, session Session) tea.Cmd {
	return func() tea.Msg {
		key, err := session.RememberedKey(ctx)
		return rememberedKeyMsg{key: key, err: err}
	}
}

func generateKeyCmd() tea.Msg {
	key, err := crypto.GenerateKey()
	return keyGeneratedMsg{key: key, err: err}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: writeClipboard(text)}
	}
}
