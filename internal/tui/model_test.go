package tui

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-omnifolio/internal/crypto"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/internal/state"
	"github.com/MKhiriev/go-omnifolio/models"
)

type fakeSession struct {
	mu         sync.Mutex
	remembered string
	unlockErr  error
	unlocked   []string
	retries    int
	st         models.AppState
	sync       models.SyncState
	leader     bool
}

func (s *fakeSession) RememberedKey(context.Context) (string, error) { return s.remembered, nil }

func (s *fakeSession) Unlock(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unlocked = append(s.unlocked, key)
	return s.unlockErr
}

func (s *fakeSession) State() models.AppState      { return s.st }
func (s *fakeSession) SyncState() models.SyncState { return s.sync }
func (s *fakeSession) IsLeader() bool              { return s.leader }

func (s *fakeSession) Retry() {
	s.mu.Lock()
	s.retries++
	s.mu.Unlock()
}

func newSession() *fakeSession {
	st := state.NewDefault("u1")
	st.Rev = 7
	st.Portfolio.Holdings = []models.Holding{{
		ID:        "h1",
		Kind:      models.HoldingCrypto,
		Symbol:    "BTC",
		Quantity:  decimal.RequireFromString("0.5"),
		CostBasis: decimal.RequireFromString("15000"),
		Currency:  "USD",
	}}
	return &fakeSession{
		st:     st,
		sync:   models.SyncState{Status: models.SyncIdle, IsOnline: true},
		leader: true,
	}
}

// noEvents is an already drained notification channel, so re-armed waits
// return at once.
func noEvents() <-chan tea.Msg {
	ch := make(chan tea.Msg)
	close(ch)
	return ch
}

func stubClipboard(t *testing.T, fn func(string) error) {
	t.Helper()

	orig := writeClipboard
	writeClipboard = fn
	t.Cleanup(func() { writeClipboard = orig })
}

// step feeds msg to m and runs the returned command once, feeding its
// message back as well.
func step(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()

	next, cmd := m.Update(msg)
	m = next.(model)
	if cmd == nil {
		return m
	}
	if out := cmd(); out != nil {
		next, _ = m.Update(out)
		m = next.(model)
	}
	return m
}

func typeText(m model, text string) model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(model)
}

func unlockedModel(t *testing.T, session *fakeSession) model {
	t.Helper()

	m := newModel(context.Background(), session, noEvents(), models.NewAppBuildInfo("1.0.0", "", ""))
	m = step(t, m, rememberedKeyMsg{key: "K7QM-2XHD-PN9R-WC4T"})
	require.True(t, m.unlocked)
	return m
}

// ── Unlock ───────────────────────────────────────────────────────────────────

func TestModel_RememberedKeyUnlocks(t *testing.T) {
	session := newSession()

	m := unlockedModel(t, session)

	assert.Equal(t, []string{"K7QM-2XHD-PN9R-WC4T"}, session.unlocked)
	assert.Contains(t, m.View(), "OMNIFOLIO")
	assert.Contains(t, m.View(), "Revision  7")
}

func TestModel_NoRememberedKeyStaysLocked(t *testing.T) {
	m := newModel(context.Background(), newSession(), noEvents(), models.AppBuildInfo{})

	m = step(t, m, rememberedKeyMsg{})

	assert.False(t, m.unlocked)
	assert.Contains(t, m.View(), "UNLOCK")
}

func TestModel_EnterKey(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		unlockErr error
		wantKey   string
		wantErr   string
	}{
		{
			name:    "lowercase input is normalized",
			input:   "k7qm 2xhd pn9r wc4t",
			wantKey: "K7QM-2XHD-PN9R-WC4T",
		},
		{
			name:    "malformed key never reaches the session",
			input:   "short",
			wantErr: "The recovery key looks like",
		},
		{
			name:      "wrong key is reported",
			input:     "K7QM-2XHD-PN9R-WC4T",
			unlockErr: crypto.ErrWrongKey,
			wantKey:   "K7QM-2XHD-PN9R-WC4T",
			wantErr:   "does not open this portfolio",
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: "Enter your recovery key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := newSession()
			session.unlockErr = tt.unlockErr
			m := newModel(context.Background(), session, noEvents(), models.AppBuildInfo{})

			if tt.input != "" {
				m = typeText(m, tt.input)
			}
			m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})

			if tt.wantKey != "" {
				assert.Equal(t, []string{tt.wantKey}, session.unlocked)
			} else {
				assert.Empty(t, session.unlocked)
			}
			if tt.wantErr != "" {
				assert.False(t, m.unlocked)
				assert.Contains(t, m.View(), tt.wantErr)
			} else {
				assert.True(t, m.unlocked)
			}
		})
	}
}

func TestModel_GenerateAndCopyKey(t *testing.T) {
	var copied string
	stubClipboard(t, func(text string) error {
		copied = text
		return nil
	})

	m := newModel(context.Background(), newSession(), noEvents(), models.AppBuildInfo{})

	m = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	require.NotEmpty(t, m.unlock.generated)
	normalized, err := crypto.NormalizeKey(m.unlock.generated)
	require.NoError(t, err)
	assert.Equal(t, m.unlock.generated, normalized)
	assert.Contains(t, m.View(), m.unlock.generated)

	m = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, m.unlock.generated, copied)
	assert.Contains(t, m.View(), "copied to the clipboard")
}

func TestModel_CopyFailureIsShown(t *testing.T) {
	stubClipboard(t, func(string) error { return errors.New("no xclip") })

	m := newModel(context.Background(), newSession(), noEvents(), models.AppBuildInfo{})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})

	assert.Contains(t, m.View(), "Clipboard is not available: no xclip")
}

// ── Dashboard ────────────────────────────────────────────────────────────────

func TestModel_DashboardShowsTotalsAndRole(t *testing.T) {
	session := newSession()
	m := unlockedModel(t, session)

	view := m.View()
	assert.Contains(t, view, "$15,000.00")
	assert.Contains(t, view, "Holdings 1")
	assert.Contains(t, view, "this window syncs")

	m = step(t, m, leaderChangedMsg{isLeader: false})
	assert.Contains(t, m.View(), "another window syncs")
}

func TestModel_Notifications(t *testing.T) {
	t.Run("state change re-reads the session", func(t *testing.T) {
		session := newSession()
		m := unlockedModel(t, session)

		session.st.Rev = 9
		next, cmd := m.Update(stateChangedMsg{rev: 9, origin: models.OriginRemote})
		m = next.(model)

		assert.NotNil(t, cmd)
		assert.Contains(t, m.View(), "Revision  9 (from another device)")
	})

	t.Run("conflict notice is shown until dismissed", func(t *testing.T) {
		m := unlockedModel(t, newSession())

		m = step(t, m, conflictMsg{})
		assert.Contains(t, m.View(), conflictNotice)

		m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		assert.NotContains(t, m.View(), conflictNotice)
	})

	t.Run("conflict before unlock is kept", func(t *testing.T) {
		session := newSession()
		m := newModel(context.Background(), session, noEvents(), models.AppBuildInfo{})

		next, _ := m.Update(conflictMsg{})
		m = next.(model)
		m = step(t, m, rememberedKeyMsg{key: "K7QM-2XHD-PN9R-WC4T"})

		assert.Contains(t, m.View(), conflictNotice)
	})
}

func TestModel_Retry(t *testing.T) {
	session := newSession()
	m := unlockedModel(t, session)

	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Zero(t, session.retries)

	m = step(t, m, syncChangedMsg{state: models.SyncState{Status: models.SyncError, Error: "push failed after 3 attempts"}})
	assert.Contains(t, m.View(), "push failed after 3 attempts")
	assert.Contains(t, m.View(), "r: retry")

	step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Equal(t, 1, session.retries)
}

// ── Global keys ──────────────────────────────────────────────────────────────

func TestModel_GlobalKeys(t *testing.T) {
	t.Run("q types into the key while locked", func(t *testing.T) {
		m := newModel(context.Background(), newSession(), noEvents(), models.AppBuildInfo{})

		m = typeText(m, "q")

		assert.False(t, m.quitByUser)
		assert.Equal(t, "q", m.unlock.input.Value())
	})

	t.Run("q quits once unlocked", func(t *testing.T) {
		m := unlockedModel(t, newSession())

		next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

		assert.True(t, next.(model).quitByUser)
		require.NotNil(t, cmd)
	})

	t.Run("ctrl+c always quits", func(t *testing.T) {
		m := newModel(context.Background(), newSession(), noEvents(), models.AppBuildInfo{})

		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

		assert.True(t, next.(model).quitByUser)
	})

	t.Run("build info overlay", func(t *testing.T) {
		m := unlockedModel(t, newSession())

		m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("v")})
		assert.Contains(t, m.View(), "Version: 1.0.0")
		assert.Contains(t, m.View(), "Commit: N/A")

		m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
		assert.Contains(t, m.View(), "OMNIFOLIO")
	})
}

func TestTUI_NotifyNeverBlocks(t *testing.T) {
	ui := New(newSession(), models.AppBuildInfo{}, logger.Nop())

	for i := range eventsBuffer * 2 {
		ui.NotifyState(models.AppState{Rev: int64(i)}, models.OriginLocal)
	}
	ui.NotifyConflict(models.AppState{})

	assert.Len(t, ui.events, eventsBuffer)
}
