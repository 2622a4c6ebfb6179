package state

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-omnifolio/models"
)

func fixedClock(t *testing.T) {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	prev := now
	now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	t.Cleanup(func() { now = prev })
}

func btc() models.Holding {
	return models.Holding{
		Kind:      models.HoldingCrypto,
		Symbol:    "BTC",
		Quantity:  decimal.RequireFromString("0.5"),
		CostBasis: decimal.RequireFromString("15000"),
		Currency:  "USD",
	}
}

func TestNewDefault(t *testing.T) {
	s := NewDefault("u1")

	assert.Equal(t, CurrentSchemaVersion, s.SchemaVersion)
	assert.Zero(t, s.Rev)
	assert.Equal(t, "u1", s.UserID)
	assert.Equal(t, DefaultCardOrder, s.Dashboard.CardOrder)
	assert.Equal(t, 1.0, s.Dashboard.Zoom)
	assert.Equal(t, "USD", s.Settings.Currency)
	assert.NoError(t, Validate(s))

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"holdings":[]`)
	assert.Contains(t, string(raw), `"notes":[]`)
}

func TestHelpers_AdvanceRevByOne(t *testing.T) {
	fixedClock(t)
	s := NewDefault("u1")

	steps := []func(models.AppState) models.AppState{
		func(s models.AppState) models.AppState { return WithPortfolio(s, s.Portfolio) },
		func(s models.AppState) models.AppState { return WithDashboard(s, s.Dashboard) },
		func(s models.AppState) models.AppState { return WithSettings(s, s.Settings) },
		func(s models.AppState) models.AppState { return WithWatchlist(s, s.Watchlist) },
		func(s models.AppState) models.AppState { return WithNotes(s, s.Notes) },
	}

	for i, step := range steps {
		next := step(s)
		assert.Equal(t, s.Rev+1, next.Rev, "step %d", i)
		assert.True(t, next.UpdatedAt.After(s.UpdatedAt), "step %d", i)
		s = next
	}
}

func TestHelpers_DoNotMutateInput(t *testing.T) {
	s := NewDefault("u1")
	s.Dashboard.Hidden = []string{CardNotes}

	d := s.Dashboard
	d.Hidden[0] = CardWatchlist
	next := WithDashboard(s, d)

	d.Hidden[0] = CardHoldings
	assert.Equal(t, CardWatchlist, next.Dashboard.Hidden[0])
	assert.Zero(t, s.Rev)
}

func TestRevIsStrictlyMonotonic(t *testing.T) {
	s := NewDefault("u1")
	var err error
	for i := 0; i < 200; i++ {
		prev := s.Rev
		s, err = SetZoom{Zoom: 1 + float64(i%10)/10}.Apply(s)
		require.NoError(t, err)
		require.Equal(t, prev+1, s.Rev)
	}
}

func TestSet(t *testing.T) {
	s := NewDefault("u1")

	next, err := Set(s, models.FieldNotes, []models.Note{{ID: "n1", Title: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), next.Rev)
	assert.Len(t, next.Notes, 1)

	_, err = Set(s, models.FieldSettings, "dark")
	assert.ErrorIs(t, err, ErrInvalidAction)

	_, err = Set(s, "bogus", nil)
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestActions_Holdings(t *testing.T) {
	s := NewDefault("u1")

	s, err := AddHolding{Holding: btc()}.Apply(s)
	require.NoError(t, err)
	require.Len(t, s.Portfolio.Holdings, 1)
	id := s.Portfolio.Holdings[0].ID
	assert.NotEmpty(t, id)

	s, err = RecordTransaction{Transaction: models.Transaction{
		Kind: models.TransactionBuy, HoldingID: id, Quantity: decimal.NewFromInt(1), Currency: "USD",
	}}.Apply(s)
	require.NoError(t, err)

	updated := s.Portfolio.Holdings[0]
	updated.Quantity = decimal.NewFromInt(2)
	s, err = UpdateHolding{Holding: updated}.Apply(s)
	require.NoError(t, err)
	assert.True(t, s.Portfolio.Holdings[0].Quantity.Equal(decimal.NewFromInt(2)))

	s, err = DeleteHolding{ID: id}.Apply(s)
	require.NoError(t, err)
	assert.Empty(t, s.Portfolio.Holdings)
	assert.Empty(t, s.Portfolio.Transactions, "transactions of a deleted holding go with it")
	assert.Equal(t, int64(4), s.Rev)
}

func TestActions_FailuresLeaveStateUntouched(t *testing.T) {
	s := NewDefault("u1")
	bad := btc()
	bad.Currency = "XXX1"

	tests := []struct {
		name   string
		action Action
		want   error
	}{
		{"unknown holding", DeleteHolding{ID: "nope"}, ErrNotFound},
		{"bad currency", AddHolding{Holding: bad}, ErrInvalidAction},
		{"orphan transaction", RecordTransaction{Transaction: models.Transaction{HoldingID: "nope"}}, ErrNotFound},
		{"zoom too large", SetZoom{Zoom: 10}, ErrInvalidAction},
		{"unknown card", SetCardHidden{CardID: "ads"}, ErrInvalidAction},
		{"bad theme", UpdateSettings{Settings: models.Settings{Locale: "en", Currency: "EUR", Theme: "neon"}}, ErrInvalidAction},
		{"unwatched", RemoveFromWatchlist{Symbol: "AAPL"}, ErrNotFound},
		{"empty note", SaveNote{Note: models.Note{}}, ErrInvalidAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.action.Apply(s)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, s.Rev, got.Rev)
		})
	}
}

func TestActions_Dashboard(t *testing.T) {
	s := NewDefault("u1")

	s, err := ReorderCards{Order: []string{CardNotes, CardNetWorth}}.Apply(s)
	require.NoError(t, err)
	assert.Equal(t, CardNotes, s.Dashboard.CardOrder[0])
	assert.Equal(t, CardNetWorth, s.Dashboard.CardOrder[1])
	assert.Len(t, s.Dashboard.CardOrder, len(DefaultCardOrder))

	s, err = SetCardHidden{CardID: CardWatchlist, Hidden: true}.Apply(s)
	require.NoError(t, err)
	assert.True(t, s.Dashboard.IsHidden(CardWatchlist))

	s, err = SetCardHidden{CardID: CardWatchlist, Hidden: false}.Apply(s)
	require.NoError(t, err)
	assert.False(t, s.Dashboard.IsHidden(CardWatchlist))
}

func TestActions_WatchlistAndNotes(t *testing.T) {
	s := NewDefault("u1")

	s, err := AddToWatchlist{Item: models.WatchlistItem{Symbol: " aapl ", Kind: models.HoldingStock}}.Apply(s)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", s.Watchlist[0].Symbol)

	_, err = AddToWatchlist{Item: models.WatchlistItem{Symbol: "AAPL", Kind: models.HoldingStock}}.Apply(s)
	assert.ErrorIs(t, err, ErrInvalidAction)

	s, err = SaveNote{Note: models.Note{Title: "rebalance"}}.Apply(s)
	require.NoError(t, err)
	note := s.Notes[0]
	note.Body = "sell 10%"
	s, err = SaveNote{Note: note}.Apply(s)
	require.NoError(t, err)
	require.Len(t, s.Notes, 1)
	assert.Equal(t, "sell 10%", s.Notes[0].Body)

	s, err = DeleteNote{ID: note.ID}.Apply(s)
	require.NoError(t, err)
	assert.Empty(t, s.Notes)
}

func TestActions_ReplaceFinancials(t *testing.T) {
	s := NewDefault("u1")
	s, err := AddAccount{Account: models.Account{Kind: models.AccountTrading, Name: "Broker", Currency: "USD"}}.Apply(s)
	require.NoError(t, err)

	s, err = ReplaceFinancials{
		CashAccounts: []models.Account{{Name: "Wallet", Currency: "EUR", Balance: decimal.NewFromInt(40)}},
		Assets:       []models.Asset{{Kind: models.AssetValuable, Name: "Watch", Currency: "EUR", Value: decimal.NewFromInt(900)}},
	}.Apply(s)
	require.NoError(t, err)

	require.Len(t, s.Portfolio.Accounts, 2)
	assert.Equal(t, models.AccountTrading, s.Portfolio.Accounts[0].Kind, "other kinds are kept")
	assert.Equal(t, models.AccountCash, s.Portfolio.Accounts[1].Kind)
	assert.NotEmpty(t, s.Portfolio.Assets[0].ID)
	assert.Equal(t, int64(2), s.Rev)
}

func TestMigrate_FromV1(t *testing.T) {
	v1 := models.AppState{
		SchemaVersion: 1,
		Rev:           12,
		UserID:        "u1",
		Dashboard:     models.Dashboard{CardOrder: []string{CardHoldings, "legacy-card", CardHoldings}},
		Settings:      models.Settings{Locale: "de-DE"},
	}

	got := Migrate(v1)

	assert.Equal(t, CurrentSchemaVersion, got.SchemaVersion)
	assert.Equal(t, int64(12), got.Rev, "migration is not a mutation")
	assert.Equal(t, 1.0, got.Dashboard.Zoom)
	assert.Equal(t, CardHoldings, got.Dashboard.CardOrder[0])
	assert.Len(t, got.Dashboard.CardOrder, len(DefaultCardOrder))
	assert.NotNil(t, got.Notes)
	assert.NotNil(t, got.Portfolio.Holdings)
	assert.Equal(t, "USD", got.Settings.Currency)
	assert.NoError(t, Validate(got))
}

func TestValidate(t *testing.T) {
	s := NewDefault("u1")
	s.SchemaVersion = CurrentSchemaVersion + 1
	assert.ErrorIs(t, Validate(s), ErrUnsupportedSchema)

	s = NewDefault("")
	assert.Error(t, Validate(s))
}

func TestTotals(t *testing.T) {
	p := models.Portfolio{
		Accounts: []models.Account{
			{Currency: "USD", Balance: decimal.RequireFromString("1000.25")},
			{Currency: "EUR", Balance: decimal.RequireFromString("10")},
		},
		Holdings: []models.Holding{{Currency: "USD", CostBasis: decimal.RequireFromString("234.25")}},
	}

	totals := Totals(p)
	require.Len(t, totals, 2)
	assert.Equal(t, "EUR", totals[0].Currency)
	assert.Equal(t, "USD", totals[1].Currency)
	assert.True(t, totals[1].Amount.Equal(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$1,234.50", totals[1].Display())
}
