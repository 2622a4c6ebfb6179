package store

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-omnifolio/internal/crypto"
	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/internal/state"
	"github.com/MKhiriev/go-omnifolio/models"
)

// newTestClientStorages opens a real SQLite file in a temp dir with all
// migrations applied.
func newTestClientStorages(t *testing.T) *ClientStorages {
	t.Helper()

	storages, err := NewClientStorages(context.Background(), filepath.Join(t.TempDir(), "nested", "omnifolio.db"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { storages.Close() })

	return storages
}

func TestLocalStateRepository_StateRoundTrip(t *testing.T) {
	repo := newTestClientStorages(t).StateRepository
	ctx := context.Background()

	_, err := repo.GetState(ctx, "user-1")
	require.ErrorIs(t, err, ErrStateNotFound)

	st, err := state.AddHolding{Holding: models.Holding{
		Kind:      models.HoldingCrypto,
		Symbol:    "BTC",
		Quantity:  decimal.RequireFromString("0.5"),
		CostBasis: decimal.RequireFromString("15000"),
		Currency:  "USD",
	}}.Apply(state.NewDefault("user-1"))
	require.NoError(t, err)
	require.NoError(t, repo.SaveState(ctx, st))

	got, err := repo.GetState(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, st.Rev, got.Rev)
	assert.Equal(t, st.UserID, got.UserID)
	assert.True(t, st.UpdatedAt.Equal(got.UpdatedAt))
	require.Len(t, got.Portfolio.Holdings, 1)
	assert.Equal(t, "BTC", got.Portfolio.Holdings[0].Symbol)
	assert.True(t, got.Portfolio.Holdings[0].Quantity.Equal(decimal.RequireFromString("0.5")))

	// upsert replaces the row
	st2 := state.WithSettings(st, models.Settings{Locale: "de-DE", Currency: "EUR", Theme: models.ThemeDark})
	require.NoError(t, repo.SaveState(ctx, st2))

	got, err = repo.GetState(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, st2.Rev, got.Rev)
	assert.Equal(t, "EUR", got.Settings.Currency)
}

func TestLocalStateRepository_Secrets(t *testing.T) {
	repo := newTestClientStorages(t).StateRepository
	ctx := context.Background()

	secret, err := repo.GetDeviceSecret(ctx)
	require.NoError(t, err)
	assert.Nil(t, secret)

	require.NoError(t, repo.SaveDeviceSecret(ctx, []byte("device-secret")))
	secret, err = repo.GetDeviceSecret(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("device-secret"), secret)

	sealed, err := repo.GetRememberedKey(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, sealed)

	require.NoError(t, repo.SaveRememberedKey(ctx, "user-1", []byte{1, 2, 3}))
	require.NoError(t, repo.SaveRememberedKey(ctx, "user-1", []byte{4, 5, 6}))
	sealed, err = repo.GetRememberedKey(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 5, 6}, sealed)

	require.NoError(t, repo.DeleteRememberedKey(ctx, "user-1"))
	sealed, err = repo.GetRememberedKey(ctx, "user-1")
	require.NoError(t, err)
	assert.Nil(t, sealed)
}

func TestLocalStateStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "omnifolio.db")
	ctx := context.Background()

	first, err := NewClientStorages(ctx, path, logger.Nop())
	require.NoError(t, err)

	s := NewLocalStateStore(first.StateRepository, 0, logger.Nop())
	st := state.WithNotes(state.NewDefault("user-1"), []models.Note{{ID: "n1", Title: "todo"}})
	s.Save(st)
	s.Flush(ctx)
	require.NoError(t, first.Close())

	second, err := NewClientStorages(ctx, path, logger.Nop())
	require.NoError(t, err)
	defer second.Close()

	loaded := NewLocalStateStore(second.StateRepository, 0, logger.Nop()).Load(ctx, "user-1")
	assert.Equal(t, st.Rev, loaded.Rev)
	require.Len(t, loaded.Notes, 1)
	assert.Equal(t, "todo", loaded.Notes[0].Title)
}

func TestLocalStateRepository_FirstDeviceSecretWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "omnifolio.db")
	ctx := context.Background()

	open := func() *ClientStorages {
		storages, err := NewClientStorages(ctx, path, logger.Nop())
		require.NoError(t, err)
		t.Cleanup(func() { storages.Close() })
		return storages
	}
	tabA, tabB := open(), open()

	secretA := bytes.Repeat([]byte{0xA}, 32)
	secretB := bytes.Repeat([]byte{0xB}, 32)
	require.NoError(t, tabA.StateRepository.SaveDeviceSecret(ctx, secretA))
	require.NoError(t, tabB.StateRepository.SaveDeviceSecret(ctx, secretB))

	got, err := tabB.StateRepository.GetDeviceSecret(ctx)
	require.NoError(t, err)
	assert.Equal(t, secretA, got)
}

func TestDeviceKeyring_SharedDatabaseAcrossTabs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "omnifolio.db")
	ctx := context.Background()

	open := func() *ClientStorages {
		storages, err := NewClientStorages(ctx, path, logger.Nop())
		require.NoError(t, err)
		t.Cleanup(func() { storages.Close() })
		return storages
	}

	const keyA, keyB = "K7QM-2XHD-PN9R-WC4T", "ABCD-EFGH-JKMN-PQRS"
	require.NoError(t, crypto.NewDeviceKeyring(open().StateRepository).Remember(ctx, "u1", keyA))
	require.NoError(t, crypto.NewDeviceKeyring(open().StateRepository).Remember(ctx, "u2", keyB))

	fresh := crypto.NewDeviceKeyring(open().StateRepository)
	got, err := fresh.Recall(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, keyA, got)

	got, err = fresh.Recall(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, keyB, got)
}
