package analysis

import (
	"sort"

	"github.com/portfolioos/sidecar/internal/model"
)

// NetWorthSnapshot is a point-in-time net worth computation over a set of
// holdings valued at current market prices.
type NetWorthSnapshot struct {
	TotalValue          float64            `json:"total_value"`
	TotalCostBasis      float64            `json:"total_cost_basis"`
	TotalUnrealizedGain float64            `json:"total_unrealized_gain"`
	ByAccount           map[string]float64 `json:"by_account"`
	ByAssetType         map[string]float64 `json:"by_asset_type"`
}

// Allocation is one holding's share of the total portfolio value.
type Allocation struct {
	AssetType string  `json:"asset_type"`
	Symbol    string  `json:"symbol"`
	Value     float64 `json:"value"`
	WeightPct float64 `json:"weight_pct"`
}

// ValueSnapshot is one point of a historical total-value series, used by
// ComputeGrowthRates. Snapshots are expected sorted by date ascending.
type ValueSnapshot struct {
	Date       model.Date `json:"date"`
	TotalValue float64    `json:"total_value"`
}

// PeriodReturn describes the change in total value over one lookback period.
type PeriodReturn struct {
	StartValue     float64 `json:"start_value"`
	EndValue       float64 `json:"end_value"`
	AbsoluteChange float64 `json:"absolute_change"`
	PctChange      float64 `json:"pct_change"`
}

// GrowthRates aggregates period returns and the velocity metric: the
// recent monthly growth rate minus the prior month's rate.
type GrowthRates struct {
	Periods  map[string]PeriodReturn `json:"periods"`
	Velocity float64                 `json:"velocity"`
}

// ComputeNetWorth values holdings at the given per-symbol prices and
// aggregates totals plus by-account and by-asset-type breakdowns.
// Symbols with no price are valued at zero. Holdings without an asset
// type fall into the "unknown" bucket.
func ComputeNetWorth(holdings []model.Holding, prices map[string]float64) NetWorthSnapshot {
	snapshot := NetWorthSnapshot{
		ByAccount:   make(map[string]float64),
		ByAssetType: make(map[string]float64),
	}

	for _, h := range holdings {
		marketValue := h.Shares * prices[h.Symbol]

		snapshot.TotalValue += marketValue
		snapshot.TotalCostBasis += h.CostBasis

		account := h.AccountID
		if account == "" {
			account = "default"
		}
		assetType := h.AssetType
		if assetType == "" {
			assetType = "unknown"
		}
		snapshot.ByAccount[account] += marketValue
		snapshot.ByAssetType[assetType] += marketValue
	}

	snapshot.TotalUnrealizedGain = snapshot.TotalValue - snapshot.TotalCostBasis
	return snapshot
}

// ComputeAssetAllocation returns per-holding portfolio weights, sorted by
// weight descending. Weights are zero when the portfolio has no value.
func ComputeAssetAllocation(holdings []model.Holding, prices map[string]float64) []Allocation {
	allocations := make([]Allocation, 0, len(holdings))
	var totalValue float64

	for _, h := range holdings {
		assetType := h.AssetType
		if assetType == "" {
			assetType = "unknown"
		}
		value := h.Shares * prices[h.Symbol]
		totalValue += value
		allocations = append(allocations, Allocation{
			AssetType: assetType,
			Symbol:    h.Symbol,
			Value:     value,
		})
	}

	for i := range allocations {
		if totalValue > 0 {
			allocations[i].WeightPct = allocations[i].Value / totalValue * 100.0
		}
	}

	sort.Slice(allocations, func(i, j int) bool {
		return allocations[i].WeightPct > allocations[j].WeightPct
	})
	return allocations
}

// Lookbacks in snapshot counts, assuming ~21 trading-day snapshots per month.
var growthPeriods = map[string]int{
	"1m": 21,
	"3m": 63,
	"6m": 126,
	"1y": 252,
	"3y": 756,
	"5y": 1260,
}

// ComputeGrowthRates derives period returns across standard lookback
// horizons from a historical total-value series. Fewer than two snapshots
// yields an empty result.
func ComputeGrowthRates(snapshots []ValueSnapshot) GrowthRates {
	result := GrowthRates{Periods: make(map[string]PeriodReturn)}
	if len(snapshots) < 2 {
		return result
	}

	latest := snapshots[len(snapshots)-1].TotalValue

	for name, lookback := range growthPeriods {
		if len(snapshots) <= lookback {
			continue
		}
		prior := snapshots[len(snapshots)-1-lookback].TotalValue
		if prior <= 0 {
			continue
		}
		result.Periods[name] = PeriodReturn{
			StartValue:     prior,
			EndValue:       latest,
			AbsoluteChange: latest - prior,
			PctChange:      (latest - prior) / prior * 100.0,
		}
	}

	// Velocity: growth rate over the most recent month vs the month before.
	if len(snapshots) >= 42 {
		recentStart := snapshots[len(snapshots)-22].TotalValue
		priorStart := snapshots[len(snapshots)-42].TotalValue
		priorEnd := recentStart

		if recentStart > 0 && priorStart > 0 {
			recentRate := (latest - recentStart) / recentStart
			priorRate := (priorEnd - priorStart) / priorStart
			result.Velocity = recentRate - priorRate
		}
	}

	return result
}
