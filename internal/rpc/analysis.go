package rpc

import (
	"encoding/json"

	"github.com/portfolioos/sidecar/internal/analysis"
	"github.com/portfolioos/sidecar/internal/rpc/request"
)

// valueResponse wraps a single scalar result.
type valueResponse struct {
	Value float64 `json:"value"`
}

// cagr handles analysis.cagr.
func (d *Dispatcher) cagr(params json.RawMessage) (any, error) {
	req, err := parseParams[request.CAGR](params)
	if err != nil {
		return nil, err
	}
	value, err := analysis.CAGR(req.StartValue, req.EndValue, req.NYears)
	if err != nil {
		return nil, err
	}
	return valueResponse{Value: value}, nil
}

// maxDrawdown handles analysis.max_drawdown.
func (d *Dispatcher) maxDrawdown(params json.RawMessage) (any, error) {
	req, err := parseParams[request.MaxDrawdown](params)
	if err != nil {
		return nil, err
	}
	value, err := analysis.MaxDrawdown(req.Values)
	if err != nil {
		return nil, err
	}
	return valueResponse{Value: value}, nil
}

// percentileRank handles analysis.percentile_rank.
func (d *Dispatcher) percentileRank(params json.RawMessage) (any, error) {
	req, err := parseParams[request.PercentileRank](params)
	if err != nil {
		return nil, err
	}
	return valueResponse{Value: analysis.PercentileRank(req.Values, req.Target)}, nil
}
