// Package testutil provides fluent builders for test fixtures.
package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/portfolioos/sidecar/internal/model"
)

// MakeID returns a fresh UUID string for test records.
func MakeID() string {
	return uuid.New().String()
}

// TransactionBuilder provides a fluent interface for creating test
// transactions.
//
// Example usage:
//
//	// Simple creation with defaults
//	txn := testutil.NewTransaction().Build()
//
//	// Customized transaction
//	txn := testutil.NewTransaction().
//	    WithSymbol("VTI").
//	    WithQuantity(50).
//	    AsSell().
//	    Build()
type TransactionBuilder struct {
	ID        string
	AccountID string
	Symbol    string
	Type      string
	Date      model.Date
	Quantity  float64
	Price     float64
	Fees      float64
	Notes     string
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		ID:        MakeID(),
		AccountID: "acct-1",
		Symbol:    "VTI",
		Type:      model.TransactionBuy,
		Date:      model.NewDate(2023, time.January, 15),
		Quantity:  100,
		Price:     50,
		Fees:      0,
	}
}

// WithAccountID sets a custom account.
func (b *TransactionBuilder) WithAccountID(accountID string) *TransactionBuilder {
	b.AccountID = accountID
	return b
}

// WithSymbol sets a custom symbol.
func (b *TransactionBuilder) WithSymbol(symbol string) *TransactionBuilder {
	b.Symbol = symbol
	return b
}

// WithType sets a custom transaction type.
func (b *TransactionBuilder) WithType(txType string) *TransactionBuilder {
	b.Type = txType
	return b
}

// WithDate sets a custom date.
func (b *TransactionBuilder) WithDate(date model.Date) *TransactionBuilder {
	b.Date = date
	return b
}

// WithQuantity sets a custom quantity.
func (b *TransactionBuilder) WithQuantity(quantity float64) *TransactionBuilder {
	b.Quantity = quantity
	return b
}

// WithPrice sets a custom price.
func (b *TransactionBuilder) WithPrice(price float64) *TransactionBuilder {
	b.Price = price
	return b
}

// WithFees sets custom fees.
func (b *TransactionBuilder) WithFees(fees float64) *TransactionBuilder {
	b.Fees = fees
	return b
}

// AsSell marks the transaction as a sale.
func (b *TransactionBuilder) AsSell() *TransactionBuilder {
	b.Type = model.TransactionSell
	return b
}

// AsSplit marks the transaction as a stock split; quantity carries the
// split ratio.
func (b *TransactionBuilder) AsSplit(ratio float64) *TransactionBuilder {
	b.Type = model.TransactionSplit
	b.Quantity = ratio
	b.Price = 0
	return b
}

// Build returns the assembled transaction.
func (b *TransactionBuilder) Build() model.Transaction {
	return model.Transaction{
		ID:        b.ID,
		AccountID: b.AccountID,
		Symbol:    b.Symbol,
		Type:      b.Type,
		Date:      b.Date,
		Quantity:  b.Quantity,
		Price:     b.Price,
		Fees:      b.Fees,
		Notes:     b.Notes,
	}
}

// HoldingBuilder provides a fluent interface for creating test holdings.
type HoldingBuilder struct {
	AccountID string
	Symbol    string
	AssetType string
	Shares    float64
	CostBasis float64
}

// NewHolding creates a HoldingBuilder with sensible defaults.
func NewHolding() *HoldingBuilder {
	return &HoldingBuilder{
		AccountID: "acct-1",
		Symbol:    "VTI",
		AssetType: "stock",
		Shares:    100,
		CostBasis: 5000,
	}
}

// WithAccountID sets a custom account.
func (b *HoldingBuilder) WithAccountID(accountID string) *HoldingBuilder {
	b.AccountID = accountID
	return b
}

// WithSymbol sets a custom symbol.
func (b *HoldingBuilder) WithSymbol(symbol string) *HoldingBuilder {
	b.Symbol = symbol
	return b
}

// WithAssetType sets a custom asset type.
func (b *HoldingBuilder) WithAssetType(assetType string) *HoldingBuilder {
	b.AssetType = assetType
	return b
}

// WithShares sets a custom share count.
func (b *HoldingBuilder) WithShares(shares float64) *HoldingBuilder {
	b.Shares = shares
	return b
}

// WithCostBasis sets a custom cost basis.
func (b *HoldingBuilder) WithCostBasis(costBasis float64) *HoldingBuilder {
	b.CostBasis = costBasis
	return b
}

// Build returns the assembled holding.
func (b *HoldingBuilder) Build() model.Holding {
	return model.Holding{
		AccountID: b.AccountID,
		Symbol:    b.Symbol,
		AssetType: b.AssetType,
		Shares:    b.Shares,
		CostBasis: b.CostBasis,
	}
}
