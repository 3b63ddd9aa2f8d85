package rpc

import (
	"encoding/json"

	"github.com/portfolioos/sidecar/internal/marketdata"
	"github.com/portfolioos/sidecar/internal/rpc/request"
)

// defaultZThreshold flags day-over-day moves beyond three standard
// deviations when the request does not override it.
const defaultZThreshold = 3.0

// marketGaps handles market.gaps.
func (d *Dispatcher) marketGaps(params json.RawMessage) (any, error) {
	req, err := parseParams[request.Gaps](params)
	if err != nil {
		return nil, err
	}

	frequency := marketdata.Frequency(req.Frequency)
	if req.Frequency == "" {
		frequency = marketdata.Daily
	}
	return marketdata.DetectGaps(req.Dates, frequency)
}

// marketOutliers handles market.outliers.
func (d *Dispatcher) marketOutliers(params json.RawMessage) (any, error) {
	req, err := parseParams[request.Outliers](params)
	if err != nil {
		return nil, err
	}

	zThreshold := defaultZThreshold
	if req.ZThreshold != nil {
		zThreshold = *req.ZThreshold
	}
	return marketdata.DetectOutliers(req.Points, zThreshold), nil
}

// marketValidateOHLCV handles market.validate_ohlcv.
func (d *Dispatcher) marketValidateOHLCV(params json.RawMessage) (any, error) {
	req, err := parseParams[request.OHLCV](params)
	if err != nil {
		return nil, err
	}
	return marketdata.ValidateOHLCV(req.Bars), nil
}
