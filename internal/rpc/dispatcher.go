package rpc

import (
	"encoding/json"
	"fmt"

	"github.com/portfolioos/sidecar/internal/apperrors"
	"github.com/portfolioos/sidecar/internal/config"
)

// Handler processes one decoded request's parameters.
type Handler func(params json.RawMessage) (any, error)

// Dispatcher routes method names to their handlers.
type Dispatcher struct {
	cfg      *config.Config
	handlers map[string]Handler
}

// NewDispatcher creates a dispatcher with every sidecar method registered.
func NewDispatcher(cfg *config.Config) *Dispatcher {
	d := &Dispatcher{cfg: cfg}
	d.handlers = map[string]Handler{
		"simulation.run":             d.runSimulation,
		"simulation.scenario":        d.runScenario,
		"simulation.sensitivity":     d.runSensitivity,
		"costbasis.add_buy":          d.costBasisAddBuy,
		"costbasis.sell":             d.costBasisSell,
		"costbasis.unrealized_gains": d.costBasisUnrealizedGains,
		"portfolio.reconcile":        d.reconcileHoldings,
		"portfolio.discrepancies":    d.detectDiscrepancies,
		"portfolio.net_worth":        d.netWorth,
		"portfolio.allocation":       d.assetAllocation,
		"portfolio.growth_rates":     d.growthRates,
		"analysis.cagr":              d.cagr,
		"analysis.max_drawdown":      d.maxDrawdown,
		"analysis.percentile_rank":   d.percentileRank,
		"market.gaps":                d.marketGaps,
		"market.outliers":            d.marketOutliers,
		"market.validate_ohlcv":      d.marketValidateOHLCV,
		"ingest.csv":                 d.importCSV,
		"export.holdings_csv":        d.exportHoldingsCSV,
		"export.transactions_csv":    d.exportTransactionsCSV,
		"export.json":                d.exportJSON,
		"system.health":              d.systemHealth,
	}
	return d
}

// Dispatch routes one request to its handler.
func (d *Dispatcher) Dispatch(method string, params json.RawMessage) (any, error) {
	handler, ok := d.handlers[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownMethod, method)
	}
	return handler(params)
}

// parseParams decodes raw request parameters into a typed payload.
// Absent params decode every field to its zero value.
func parseParams[T any](params json.RawMessage) (T, error) {
	var payload T
	if len(params) == 0 {
		return payload, nil
	}
	if err := json.Unmarshal(params, &payload); err != nil {
		return payload, fmt.Errorf("%w: %v", apperrors.ErrInvalidParams, err)
	}
	return payload, nil
}
