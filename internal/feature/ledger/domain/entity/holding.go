// Package entity defines the domain models for the ledger feature.
package entity

import "time"

// Holding represents a portfolio instrument tracked by the ledger.
// Holdings are only ever created or removed by explicit operations.
type Holding struct {
	ID           uint     // Row identifier
	Name         string   // Display name (e.g. "DBS Group")
	Code         string   // Exchange-qualified identifier (e.g. "NASDAQ:AAPL")
	TargetWeight *float64 // Desired allocation percent, nil when no target is set
	Visible      bool     // Hidden holdings are excluded from the default views
}

// TransactionType is the side of a ledger transaction.
type TransactionType string

const (
	TransactionBuy  TransactionType = "buy"
	TransactionSell TransactionType = "sell"
)

// Transaction is one append-only ledger row. Rows are never updated:
// corrections are a delete plus a new insert.
type Transaction struct {
	ID         uint
	Code       string
	Type       TransactionType
	Date       time.Time
	Quantity   float64 // Always > 0; the sign comes from Type
	GrossValue float64 // Trade value excluding fee, >= 0
	Fee        float64 // Broker fee, >= 0
}

// Setting is a single named key/value row, overwritten on update.
type Setting struct {
	Key   string
	Value string
}

// Setting keys used by the core.
const (
	SettingCashAmount    = "cash_amount"
	SettingPortfolioName = "portfolio_name"
)
