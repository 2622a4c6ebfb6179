// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Portfolio groups every financial record of the user.
type Portfolio struct {
	Holdings          []Holding         `json:"holdings"`
	Accounts          []Account         `json:"accounts"`
	Transactions      []Transaction     `json:"transactions"`
	Assets            []Asset           `json:"assets"`
	ExpenseCategories []ExpenseCategory `json:"expenseCategories"`
	IncomeSources     []IncomeSource    `json:"incomeSources"`
}

// HoldingKind distinguishes market instruments.
type HoldingKind string

const (
	HoldingCrypto HoldingKind = "crypto"
	HoldingStock  HoldingKind = "stock"
)

// Holding is a position in a tradable instrument.
type Holding struct {
	ID        string          `json:"id"`
	Kind      HoldingKind     `json:"kind"`
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	CostBasis decimal.Decimal `json:"costBasis"`
	Currency  string          `json:"currency"`
	// AccountID optionally links the holding to a trading account.
	AccountID string `json:"accountId,omitempty"`
}

// AccountKind distinguishes money accounts.
type AccountKind string

const (
	AccountCash    AccountKind = "cash"
	AccountSavings AccountKind = "savings"
	AccountTrading AccountKind = "trading"
)

// Account is a cash, savings or brokerage account.
type Account struct {
	ID           string          `json:"id"`
	Kind         AccountKind     `json:"kind"`
	Name         string          `json:"name"`
	Institution  string          `json:"institution,omitempty"`
	Balance      decimal.Decimal `json:"balance"`
	Currency     string          `json:"currency"`
	InterestRate decimal.Decimal `json:"interestRate"`
}

// TransactionKind is the direction of a transaction.
type TransactionKind string

const (
	TransactionBuy        TransactionKind = "buy"
	TransactionSell       TransactionKind = "sell"
	TransactionDeposit    TransactionKind = "deposit"
	TransactionWithdrawal TransactionKind = "withdrawal"
)

// Transaction records a trade against a holding or a cash movement on an account.
type Transaction struct {
	ID         string          `json:"id"`
	Kind       TransactionKind `json:"kind"`
	HoldingID  string          `json:"holdingId,omitempty"`
	AccountID  string          `json:"accountId,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Fee        decimal.Decimal `json:"fee"`
	Currency   string          `json:"currency"`
	ExecutedAt time.Time       `json:"executedAt"`
}

// AssetKind distinguishes non-market assets.
type AssetKind string

const (
	AssetRealEstate AssetKind = "real-estate"
	AssetValuable   AssetKind = "valuable"
)

// Asset is a manually valued possession such as property or jewellery.
type Asset struct {
	ID         string          `json:"id"`
	Kind       AssetKind       `json:"kind"`
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	Currency   string          `json:"currency"`
	AcquiredAt *time.Time      `json:"acquiredAt,omitempty"`
}

// ExpenseCategory is a budgeting bucket.
type ExpenseCategory struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	MonthlyBudget decimal.Decimal `json:"monthlyBudget"`
	Currency      string          `json:"currency"`
}

// IncomeSource is a recurring income stream.
type IncomeSource struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Frequency string          `json:"frequency"`
}
