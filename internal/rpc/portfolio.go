package rpc

import (
	"encoding/json"

	"github.com/portfolioos/sidecar/internal/analysis"
	"github.com/portfolioos/sidecar/internal/reconcile"
	"github.com/portfolioos/sidecar/internal/rpc/request"
)

// reconcileHoldings handles portfolio.reconcile.
func (d *Dispatcher) reconcileHoldings(params json.RawMessage) (any, error) {
	req, err := parseParams[request.Reconcile](params)
	if err != nil {
		return nil, err
	}
	return reconcile.ReconcileHoldings(req.Transactions)
}

// detectDiscrepancies handles portfolio.discrepancies.
func (d *Dispatcher) detectDiscrepancies(params json.RawMessage) (any, error) {
	req, err := parseParams[request.Discrepancies](params)
	if err != nil {
		return nil, err
	}
	return reconcile.DetectDiscrepancies(req.Computed, req.Stored), nil
}

// netWorth handles portfolio.net_worth.
func (d *Dispatcher) netWorth(params json.RawMessage) (any, error) {
	req, err := parseParams[request.NetWorth](params)
	if err != nil {
		return nil, err
	}
	return analysis.ComputeNetWorth(req.Holdings, req.Prices), nil
}

// assetAllocation handles portfolio.allocation.
func (d *Dispatcher) assetAllocation(params json.RawMessage) (any, error) {
	req, err := parseParams[request.NetWorth](params)
	if err != nil {
		return nil, err
	}
	return analysis.ComputeAssetAllocation(req.Holdings, req.Prices), nil
}

// growthRates handles portfolio.growth_rates.
func (d *Dispatcher) growthRates(params json.RawMessage) (any, error) {
	req, err := parseParams[request.GrowthRates](params)
	if err != nil {
		return nil, err
	}
	return analysis.ComputeGrowthRates(req.Snapshots), nil
}
