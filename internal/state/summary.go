// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package state

import (
	"slices"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-omnifolio/models"
)

// CurrencyTotal is the book value of a portfolio in one currency.
type CurrencyTotal struct {
	Currency string
	Amount   decimal.Decimal
}

// Display formats the total with the currency's symbol and minor units.
func (t CurrencyTotal) Display() string {
	cur := money.GetCurrency(t.Currency)
	if cur == nil {
		return t.Amount.StringFixed(2) + " " + t.Currency
	}

	factor := decimal.New(1, int32(cur.Fraction))
	return money.New(t.Amount.Mul(factor).Round(0).IntPart(), t.Currency).Display()
}

// Totals sums account balances, holding cost bases and asset values per
// currency. Nothing is converted between currencies. The result is sorted
// by currency code.
func Totals(p models.Portfolio) []CurrencyTotal {
	sums := make(map[string]decimal.Decimal)
	add := func(currency string, amount decimal.Decimal) {
		if currency == "" {
			return
		}
		sums[currency] = sums[currency].Add(amount)
	}

	for _, a := range p.Accounts {
		add(a.Currency, a.Balance)
	}
	for _, h := range p.Holdings {
		add(h.Currency, h.CostBasis)
	}
	for _, a := range p.Assets {
		add(a.Currency, a.Value)
	}

	out := make([]CurrencyTotal, 0, len(sums))
	for currency, amount := range sums {
		out = append(out, CurrencyTotal{Currency: currency, Amount: amount})
	}
	slices.SortFunc(out, func(a, b CurrencyTotal) int {
		return strings.Compare(a.Currency, b.Currency)
	})
	return out
}
