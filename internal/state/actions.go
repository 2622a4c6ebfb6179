// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package state

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/go-omnifolio/internal/utils"
	"github.com/MKhiriev/go-omnifolio/models"
)

// Action is a typed mutation. Apply computes the new sub-aggregate and
// commits it through exactly one update helper, so a successful Apply
// always advances rev by one. A failing Apply returns the input unchanged.
type Action interface {
	Apply(s models.AppState) (models.AppState, error)
}

// ── portfolio ─────────────────────────────────────────────────────────────────

// AddHolding appends a holding. An empty ID is filled in.
type AddHolding struct{ Holding models.Holding }

func (a AddHolding) Apply(s models.AppState) (models.AppState, error) {
	h := a.Holding
	if err := validateHolding(h); err != nil {
		return s, err
	}
	if h.ID == "" {
		h.ID = utils.NewID()
	}
	if indexOf(s.Portfolio.Holdings, h.ID, holdingID) >= 0 {
		return s, fmt.Errorf("%w: holding %s already exists", ErrInvalidAction, h.ID)
	}

	p := clonePortfolio(s.Portfolio)
	p.Holdings = append(p.Holdings, h)
	return WithPortfolio(s, p), nil
}

// UpdateHolding replaces the holding with the same ID.
type UpdateHolding struct{ Holding models.Holding }

func (a UpdateHolding) Apply(s models.AppState) (models.AppState, error) {
	if err := validateHolding(a.Holding); err != nil {
		return s, err
	}
	holdings, err := replaceByID(s.Portfolio.Holdings, a.Holding, holdingID)
	if err != nil {
		return s, err
	}

	p := clonePortfolio(s.Portfolio)
	p.Holdings = holdings
	return WithPortfolio(s, p), nil
}

// DeleteHolding removes a holding and the transactions recorded against it.
type DeleteHolding struct{ ID string }

func (a DeleteHolding) Apply(s models.AppState) (models.AppState, error) {
	holdings, err := removeByID(s.Portfolio.Holdings, a.ID, holdingID)
	if err != nil {
		return s, err
	}

	p := clonePortfolio(s.Portfolio)
	p.Holdings = holdings
	p.Transactions = slices.DeleteFunc(p.Transactions, func(t models.Transaction) bool {
		return t.HoldingID == a.ID
	})
	return WithPortfolio(s, p), nil
}

// AddAccount appends an account. An empty ID is filled in.
type AddAccount struct{ Account models.Account }

func (a AddAccount) Apply(s models.AppState) (models.AppState, error) {
	acc := a.Account
	if err := validateAccount(acc); err != nil {
		return s, err
	}
	if acc.ID == "" {
		acc.ID = utils.NewID()
	}
	if indexOf(s.Portfolio.Accounts, acc.ID, accountID) >= 0 {
		return s, fmt.Errorf("%w: account %s already exists", ErrInvalidAction, acc.ID)
	}

	p := clonePortfolio(s.Portfolio)
	p.Accounts = append(p.Accounts, acc)
	return WithPortfolio(s, p), nil
}

// UpdateAccount replaces the account with the same ID.
type UpdateAccount struct{ Account models.Account }

func (a UpdateAccount) Apply(s models.AppState) (models.AppState, error) {
	if err := validateAccount(a.Account); err != nil {
		return s, err
	}
	accounts, err := replaceByID(s.Portfolio.Accounts, a.Account, accountID)
	if err != nil {
		return s, err
	}

	p := clonePortfolio(s.Portfolio)
	p.Accounts = accounts
	return WithPortfolio(s, p), nil
}

// DeleteAccount removes an account.
type DeleteAccount struct{ ID string }

func (a DeleteAccount) Apply(s models.AppState) (models.AppState, error) {
	accounts, err := removeByID(s.Portfolio.Accounts, a.ID, accountID)
	if err != nil {
		return s, err
	}

	p := clonePortfolio(s.Portfolio)
	p.Accounts = accounts
	return WithPortfolio(s, p), nil
}

// RecordTransaction appends a transaction. The referenced holding or
// account must exist.
type RecordTransaction struct{ Transaction models.Transaction }

func (a RecordTransaction) Apply(s models.AppState) (models.AppState, error) {
	tx := a.Transaction
	switch {
	case tx.HoldingID != "":
		if indexOf(s.Portfolio.Holdings, tx.HoldingID, holdingID) < 0 {
			return s, fmt.Errorf("%w: holding %s", ErrNotFound, tx.HoldingID)
		}
	case tx.AccountID != "":
		if indexOf(s.Portfolio.Accounts, tx.AccountID, accountID) < 0 {
			return s, fmt.Errorf("%w: account %s", ErrNotFound, tx.AccountID)
		}
	default:
		return s, fmt.Errorf("%w: transaction references nothing", ErrInvalidAction)
	}
	if tx.ID == "" {
		tx.ID = utils.NewID()
	}
	if tx.ExecutedAt.IsZero() {
		tx.ExecutedAt = now()
	}

	p := clonePortfolio(s.Portfolio)
	p.Transactions = append(p.Transactions, tx)
	return WithPortfolio(s, p), nil
}

// DeleteTransaction removes a transaction.
type DeleteTransaction struct{ ID string }

func (a DeleteTransaction) Apply(s models.AppState) (models.AppState, error) {
	txs, err := removeByID(s.Portfolio.Transactions, a.ID, func(t models.Transaction) string { return t.ID })
	if err != nil {
		return s, err
	}

	p := clonePortfolio(s.Portfolio)
	p.Transactions = txs
	return WithPortfolio(s, p), nil
}

// AddAsset appends a manually valued asset.
type AddAsset struct{ Asset models.Asset }

func (a AddAsset) Apply(s models.AppState) (models.AppState, error) {
	asset := a.Asset
	if strings.TrimSpace(asset.Name) == "" || !IsKnownCurrency(asset.Currency) {
		return s, fmt.Errorf("%w: asset needs a name and a known currency", ErrInvalidAction)
	}
	if asset.ID == "" {
		asset.ID = utils.NewID()
	}

	p := clonePortfolio(s.Portfolio)
	p.Assets = append(p.Assets, asset)
	return WithPortfolio(s, p), nil
}

// DeleteAsset removes an asset.
type DeleteAsset struct{ ID string }

func (a DeleteAsset) Apply(s models.AppState) (models.AppState, error) {
	assets, err := removeByID(s.Portfolio.Assets, a.ID, func(x models.Asset) string { return x.ID })
	if err != nil {
		return s, err
	}

	p := clonePortfolio(s.Portfolio)
	p.Assets = assets
	return WithPortfolio(s, p), nil
}

// ReplaceHoldings swaps every holding of one kind for the given list.
type ReplaceHoldings struct {
	Kind     models.HoldingKind
	Holdings []models.Holding
}

func (a ReplaceHoldings) Apply(s models.AppState) (models.AppState, error) {
	p := clonePortfolio(s.Portfolio)
	p.Holdings = slices.DeleteFunc(p.Holdings, func(h models.Holding) bool { return h.Kind == a.Kind })
	for _, h := range a.Holdings {
		h.Kind = a.Kind
		if h.ID == "" {
			h.ID = utils.NewID()
		}
		p.Holdings = append(p.Holdings, h)
	}
	return WithPortfolio(s, p), nil
}

// ReplaceAccounts swaps every account of one kind for the given list.
type ReplaceAccounts struct {
	Kind     models.AccountKind
	Accounts []models.Account
}

func (a ReplaceAccounts) Apply(s models.AppState) (models.AppState, error) {
	p := clonePortfolio(s.Portfolio)
	p.Accounts = replaceAccountsOfKind(p.Accounts, a.Kind, a.Accounts)
	return WithPortfolio(s, p), nil
}

// ReplaceFinancials swaps cash and savings accounts, assets, expense
// categories and income sources in one revision. Nil lists are left as is.
type ReplaceFinancials struct {
	CashAccounts      []models.Account
	SavingsAccounts   []models.Account
	Assets            []models.Asset
	ExpenseCategories []models.ExpenseCategory
	IncomeSources     []models.IncomeSource
}

func (a ReplaceFinancials) Apply(s models.AppState) (models.AppState, error) {
	p := clonePortfolio(s.Portfolio)
	if a.CashAccounts != nil {
		p.Accounts = replaceAccountsOfKind(p.Accounts, models.AccountCash, a.CashAccounts)
	}
	if a.SavingsAccounts != nil {
		p.Accounts = replaceAccountsOfKind(p.Accounts, models.AccountSavings, a.SavingsAccounts)
	}
	if a.Assets != nil {
		p.Assets = withIDs(a.Assets, func(x *models.Asset) *string { return &x.ID })
	}
	if a.ExpenseCategories != nil {
		p.ExpenseCategories = withIDs(a.ExpenseCategories, func(x *models.ExpenseCategory) *string { return &x.ID })
	}
	if a.IncomeSources != nil {
		p.IncomeSources = withIDs(a.IncomeSources, func(x *models.IncomeSource) *string { return &x.ID })
	}
	return WithPortfolio(s, p), nil
}

// ── dashboard ─────────────────────────────────────────────────────────────────

// ReorderCards sets the card order. Unknown cards are rejected; cards left
// out keep their relative order at the end.
type ReorderCards struct{ Order []string }

func (a ReorderCards) Apply(s models.AppState) (models.AppState, error) {
	for _, id := range a.Order {
		if !slices.Contains(DefaultCardOrder, id) {
			return s, fmt.Errorf("%w: unknown card %q", ErrInvalidAction, id)
		}
	}

	order := slices.Clone(a.Order)
	for _, id := range s.Dashboard.CardOrder {
		if !slices.Contains(order, id) {
			order = append(order, id)
		}
	}

	d := cloneDashboard(s.Dashboard)
	d.CardOrder = normalizeCardOrder(order)
	return WithDashboard(s, d), nil
}

// SetCardHidden hides or shows one card.
type SetCardHidden struct {
	CardID string
	Hidden bool
}

func (a SetCardHidden) Apply(s models.AppState) (models.AppState, error) {
	if !slices.Contains(DefaultCardOrder, a.CardID) {
		return s, fmt.Errorf("%w: unknown card %q", ErrInvalidAction, a.CardID)
	}

	d := cloneDashboard(s.Dashboard)
	d.Hidden = slices.DeleteFunc(d.Hidden, func(id string) bool { return id == a.CardID })
	if a.Hidden {
		d.Hidden = append(d.Hidden, a.CardID)
	}
	d.Hidden = normalizeHidden(d.Hidden)
	return WithDashboard(s, d), nil
}

// Zoom bounds.
const (
	MinZoom = 0.5
	MaxZoom = 3.0
)

// SetZoom sets the dashboard scale.
type SetZoom struct{ Zoom float64 }

func (a SetZoom) Apply(s models.AppState) (models.AppState, error) {
	if a.Zoom < MinZoom || a.Zoom > MaxZoom {
		return s, fmt.Errorf("%w: zoom %.2f out of range", ErrInvalidAction, a.Zoom)
	}

	d := cloneDashboard(s.Dashboard)
	d.Zoom = a.Zoom
	return WithDashboard(s, d), nil
}

// ── settings, watchlist, notes ────────────────────────────────────────────────

// UpdateSettings replaces the settings after validating them.
type UpdateSettings struct{ Settings models.Settings }

func (a UpdateSettings) Apply(s models.AppState) (models.AppState, error) {
	if err := validateSettings(a.Settings); err != nil {
		return s, err
	}
	return WithSettings(s, a.Settings), nil
}

// AddToWatchlist tracks a symbol. Symbols are unique per kind.
type AddToWatchlist struct{ Item models.WatchlistItem }

func (a AddToWatchlist) Apply(s models.AppState) (models.AppState, error) {
	item := a.Item
	item.Symbol = strings.ToUpper(strings.TrimSpace(item.Symbol))
	if item.Symbol == "" {
		return s, fmt.Errorf("%w: empty symbol", ErrInvalidAction)
	}
	for _, w := range s.Watchlist {
		if w.Symbol == item.Symbol && w.Kind == item.Kind {
			return s, fmt.Errorf("%w: %s already watched", ErrInvalidAction, item.Symbol)
		}
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = now()
	}

	return WithWatchlist(s, append(cloneSlice(s.Watchlist), item)), nil
}

// RemoveFromWatchlist stops tracking a symbol of any kind.
type RemoveFromWatchlist struct{ Symbol string }

func (a RemoveFromWatchlist) Apply(s models.AppState) (models.AppState, error) {
	symbol := strings.ToUpper(strings.TrimSpace(a.Symbol))
	items := slices.DeleteFunc(cloneSlice(s.Watchlist), func(w models.WatchlistItem) bool { return w.Symbol == symbol })
	if len(items) == len(s.Watchlist) {
		return s, fmt.Errorf("%w: %s is not watched", ErrNotFound, symbol)
	}
	return WithWatchlist(s, items), nil
}

// SaveNote creates or updates a note.
type SaveNote struct{ Note models.Note }

func (a SaveNote) Apply(s models.AppState) (models.AppState, error) {
	n := a.Note
	if strings.TrimSpace(n.Title) == "" && strings.TrimSpace(n.Body) == "" {
		return s, fmt.Errorf("%w: empty note", ErrInvalidAction)
	}
	n.UpdatedAt = now()

	if n.ID == "" {
		n.ID = utils.NewID()
	}
	notes, err := replaceByID(s.Notes, n, noteID)
	if err != nil {
		notes = append(cloneSlice(s.Notes), n)
	}
	return WithNotes(s, notes), nil
}

// DeleteNote removes a note.
type DeleteNote struct{ ID string }

func (a DeleteNote) Apply(s models.AppState) (models.AppState, error) {
	notes, err := removeByID(s.Notes, a.ID, noteID)
	if err != nil {
		return s, err
	}
	return WithNotes(s, notes), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func holdingID(h models.Holding) string { return h.ID }
func accountID(a models.Account) string { return a.ID }
func noteID(n models.Note) string       { return n.ID }

func indexOf[T any](items []T, id string, key func(T) string) int {
	return slices.IndexFunc(items, func(item T) bool { return key(item) == id })
}

func replaceByID[T any](items []T, item T, key func(T) string) ([]T, error) {
	i := indexOf(items, key(item), key)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key(item))
	}
	out := cloneSlice(items)
	out[i] = item
	return out, nil
}

func removeByID[T any](items []T, id string, key func(T) string) ([]T, error) {
	i := indexOf(items, id, key)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return slices.Delete(cloneSlice(items), i, i+1), nil
}

func withIDs[T any](items []T, id func(*T) *string) []T {
	out := cloneSlice(items)
	for i := range out {
		if p := id(&out[i]); *p == "" {
			*p = utils.NewID()
		}
	}
	return out
}

func replaceAccountsOfKind(accounts []models.Account, kind models.AccountKind, with []models.Account) []models.Account {
	out := slices.DeleteFunc(cloneSlice(accounts), func(a models.Account) bool { return a.Kind == kind })
	for _, a := range with {
		a.Kind = kind
		if a.ID == "" {
			a.ID = utils.NewID()
		}
		out = append(out, a)
	}
	return out
}

func validateHolding(h models.Holding) error {
	if h.Kind != models.HoldingCrypto && h.Kind != models.HoldingStock {
		return fmt.Errorf("%w: unknown holding kind %q", ErrInvalidAction, h.Kind)
	}
	if strings.TrimSpace(h.Symbol) == "" {
		return fmt.Errorf("%w: empty symbol", ErrInvalidAction)
	}
	if h.Quantity.IsNegative() {
		return fmt.Errorf("%w: negative quantity", ErrInvalidAction)
	}
	if !IsKnownCurrency(h.Currency) {
		return fmt.Errorf("%w: unknown currency %q", ErrInvalidAction, h.Currency)
	}
	return nil
}

func validateAccount(a models.Account) error {
	switch a.Kind {
	case models.AccountCash, models.AccountSavings, models.AccountTrading:
	default:
		return fmt.Errorf("%w: unknown account kind %q", ErrInvalidAction, a.Kind)
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: empty account name", ErrInvalidAction)
	}
	if !IsKnownCurrency(a.Currency) {
		return fmt.Errorf("%w: unknown currency %q", ErrInvalidAction, a.Currency)
	}
	return nil
}
