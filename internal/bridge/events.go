// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bridge

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-omnifolio/internal/state"
	"github.com/MKhiriev/go-omnifolio/models"
)

// Inbound event names.
const (
	EventCryptoDataChanged    = "cryptoDataChanged"
	EventStockDataChanged     = "stockDataChanged"
	EventTradingDataChanged   = "tradingDataChanged"
	EventFinancialDataChanged = "financialDataChanged"
)

// Outbound event names.
const (
	// EventAppStateChanged follows every new revision.
	EventAppStateChanged = "appStateChanged"
	// EventAppStateUpdated follows a replacement from the remote store or
	// another tab.
	EventAppStateUpdated = "appStateUpdated"
)

// Event is a named message with a JSON detail, shaped like a DOM custom event.
type Event struct {
	Name   string          `json:"name"`
	Detail json.RawMessage `json:"detail,omitempty"`
}

// HoldingsDetail is the detail of cryptoDataChanged and stockDataChanged.
type HoldingsDetail struct {
	Holdings []models.Holding `json:"holdings"`
}

// AccountsDetail is the detail of tradingDataChanged.
type AccountsDetail struct {
	Accounts []models.Account `json:"accounts"`
}

// FinancialDetail is the detail of financialDataChanged. Omitted lists are
// left untouched.
type FinancialDetail struct {
	CashAccounts      []models.Account         `json:"cashAccounts"`
	SavingsAccounts   []models.Account         `json:"savingsAccounts"`
	Assets            []models.Asset           `json:"assets"`
	ExpenseCategories []models.ExpenseCategory `json:"expenseCategories"`
	IncomeSources     []models.IncomeSource    `json:"incomeSources"`
}

// StateDetail is the detail of both outbound events.
type StateDetail struct {
	Rev       int64               `json:"rev"`
	UpdatedAt time.Time           `json:"updatedAt"`
	Origin    models.ChangeOrigin `json:"origin"`
}

// Translate maps an inbound event to the action it stands for.
func Translate(ev Event) (state.Action, error) {
	switch ev.Name {
	case EventCryptoDataChanged, EventStockDataChanged:
		var d HoldingsDetail
		if err := decodeDetail(ev, &d); err != nil {
			return nil, err
		}
		kind := models.HoldingCrypto
		if ev.Name == EventStockDataChanged {
			kind = models.HoldingStock
		}
		return state.ReplaceHoldings{Kind: kind, Holdings: nonNil(d.Holdings)}, nil

	case EventTradingDataChanged:
		var d AccountsDetail
		if err := decodeDetail(ev, &d); err != nil {
			return nil, err
		}
		return state.ReplaceAccounts{Kind: models.AccountTrading, Accounts: nonNil(d.Accounts)}, nil

	case EventFinancialDataChanged:
		var d FinancialDetail
		if err := decodeDetail(ev, &d); err != nil {
			return nil, err
		}
		return state.ReplaceFinancials{
			CashAccounts:      d.CashAccounts,
			SavingsAccounts:   d.SavingsAccounts,
			Assets:            d.Assets,
			ExpenseCategories: d.ExpenseCategories,
			IncomeSources:     d.IncomeSources,
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Name)
}

// NewStateEvent builds an outbound event for st.
func NewStateEvent(name string, st models.AppState, origin models.ChangeOrigin) Event {
	detail, _ := json.Marshal(StateDetail{Rev: st.Rev, UpdatedAt: st.UpdatedAt, Origin: origin})
	return Event{Name: name, Detail: detail}
}

func decodeDetail(ev Event, v any) error {
	if len(ev.Detail) == 0 {
		return fmt.Errorf("%w: %s has no detail", ErrMalformedEvent, ev.Name)
	}
	if err := json.Unmarshal(ev.Detail, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedEvent, ev.Name, err)
	}
	return nil
}

// nonNil turns a missing list into an empty one: for holdings and trading
// accounts the event always carries the complete set.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
