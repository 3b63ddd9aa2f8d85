// Package request defines the payload shapes accepted by the sidecar's
// RPC methods. Dates arrive as ISO "YYYY-MM-DD" strings; optional
// numeric knobs are pointers so that absent and zero are distinguishable.
package request

import (
	"github.com/portfolioos/sidecar/internal/analysis"
	"github.com/portfolioos/sidecar/internal/costbasis"
	"github.com/portfolioos/sidecar/internal/marketdata"
	"github.com/portfolioos/sidecar/internal/model"
	"github.com/portfolioos/sidecar/internal/simulation"
)

// Simulation is the payload for simulation.run.
type Simulation struct {
	InitialPortfolio   float64   `json:"initial_portfolio"`
	AnnualWithdrawal   float64   `json:"annual_withdrawal"`
	ReturnDistribution []float64 `json:"return_distribution"`
	NTrials            *int      `json:"n_trials"`
	NYears             *int      `json:"n_years"`
	InflationRate      *float64  `json:"inflation_rate"`
	Seed               *int64    `json:"seed"`
}

// Scenario is the payload for simulation.scenario.
type Scenario struct {
	Simulation
	WithdrawalStrategy string                 `json:"withdrawal_strategy"`
	LifeEvents         []simulation.LifeEvent `json:"life_events"`
}

// Sensitivity is the payload for simulation.sensitivity.
type Sensitivity struct {
	Scenario
	VaryParam string    `json:"vary_param"`
	Values    []float64 `json:"values"`
}

// AddBuy is the payload for costbasis.add_buy. Lots carries the current
// tracker state; the response returns the updated state.
type AddBuy struct {
	Lots     []costbasis.TaxLot `json:"lots"`
	Date     model.Date         `json:"date"`
	Quantity float64            `json:"quantity"`
	Price    float64            `json:"price"`
	Fees     float64            `json:"fees"`
}

// Sell is the payload for costbasis.sell.
type Sell struct {
	Lots     []costbasis.TaxLot `json:"lots"`
	Date     model.Date         `json:"date"`
	Quantity float64            `json:"quantity"`
	Price    float64            `json:"price"`
	Fees     float64            `json:"fees"`
	Method   string             `json:"method"`
	LotIDs   []string           `json:"lot_ids"`
}

// UnrealizedGains is the payload for costbasis.unrealized_gains.
type UnrealizedGains struct {
	Lots         []costbasis.TaxLot `json:"lots"`
	CurrentPrice float64            `json:"current_price"`
	AsOfDate     model.Date         `json:"as_of_date"`
}

// Reconcile is the payload for portfolio.reconcile.
type Reconcile struct {
	Transactions []model.Transaction `json:"transactions"`
}

// Discrepancies is the payload for portfolio.discrepancies.
type Discrepancies struct {
	Computed []model.Holding `json:"computed"`
	Stored   []model.Holding `json:"stored"`
}

// NetWorth is the payload for portfolio.net_worth.
type NetWorth struct {
	Holdings []model.Holding    `json:"holdings"`
	Prices   map[string]float64 `json:"prices"`
}

// GrowthRates is the payload for portfolio.growth_rates.
type GrowthRates struct {
	Snapshots []analysis.ValueSnapshot `json:"snapshots"`
}

// ExportHoldings is the payload for export.holdings_csv.
type ExportHoldings struct {
	Holdings []model.Holding `json:"holdings"`
}

// ExportTransactions is the payload for export.transactions_csv.
type ExportTransactions struct {
	Transactions []model.Transaction `json:"transactions"`
}

// CAGR is the payload for analysis.cagr.
type CAGR struct {
	StartValue float64 `json:"start_value"`
	EndValue   float64 `json:"end_value"`
	NYears     float64 `json:"n_years"`
}

// MaxDrawdown is the payload for analysis.max_drawdown.
type MaxDrawdown struct {
	Values []float64 `json:"values"`
}

// PercentileRank is the payload for analysis.percentile_rank.
type PercentileRank struct {
	Values []float64 `json:"values"`
	Target float64   `json:"target"`
}

// Gaps is the payload for market.gaps.
type Gaps struct {
	Dates     []model.Date `json:"dates"`
	Frequency string       `json:"frequency"`
}

// Outliers is the payload for market.outliers.
type Outliers struct {
	Points     []marketdata.PricePoint `json:"points"`
	ZThreshold *float64                `json:"z_threshold"`
}

// OHLCV is the payload for market.validate_ohlcv.
type OHLCV struct {
	Bars []marketdata.Bar `json:"bars"`
}

// ImportCSV is the payload for ingest.csv.
type ImportCSV struct {
	Content   string `json:"content"`
	AccountID string `json:"account_id"`
}

// ExportJSON is the payload for export.json.
type ExportJSON struct {
	Holdings     []model.Holding          `json:"holdings"`
	Transactions []model.Transaction      `json:"transactions"`
	Snapshots    []analysis.ValueSnapshot `json:"snapshots"`
}
