package rpc

import (
	"encoding/json"

	"github.com/portfolioos/sidecar/internal/costbasis"
	"github.com/portfolioos/sidecar/internal/rpc/request"
	"github.com/portfolioos/sidecar/internal/validation"
)

// Cost basis calls are stateless: the host owns lot storage and sends the
// current lot list with every request; the handler hydrates a tracker,
// operates, and returns the updated snapshot.

// addBuyResponse is the result shape of costbasis.add_buy.
type addBuyResponse struct {
	LotID   string             `json:"lot_id"`
	Tracker costbasis.Snapshot `json:"tracker"`
}

// sellResponse is the result shape of costbasis.sell.
type sellResponse struct {
	Disposed []costbasis.DisposedLot `json:"disposed"`
	Tracker  costbasis.Snapshot      `json:"tracker"`
}

// costBasisAddBuy handles costbasis.add_buy.
func (d *Dispatcher) costBasisAddBuy(params json.RawMessage) (any, error) {
	req, err := parseParams[request.AddBuy](params)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateAddBuy(req); err != nil {
		return nil, err
	}

	tracker := costbasis.FromSnapshot(req.Lots)
	lotID := tracker.AddBuy(req.Date, req.Quantity, req.Price, req.Fees)

	return addBuyResponse{LotID: lotID, Tracker: tracker.Snapshot()}, nil
}

// costBasisSell handles costbasis.sell.
func (d *Dispatcher) costBasisSell(params json.RawMessage) (any, error) {
	req, err := parseParams[request.Sell](params)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateSell(req); err != nil {
		return nil, err
	}

	method := costbasis.FIFO
	if req.Method != "" {
		method, err = costbasis.ParseMethod(req.Method)
		if err != nil {
			return nil, err
		}
	}

	tracker := costbasis.FromSnapshot(req.Lots)
	disposed, err := tracker.Sell(req.Date, req.Quantity, req.Price, req.Fees, method, req.LotIDs)
	if err != nil {
		return nil, err
	}

	return sellResponse{Disposed: disposed, Tracker: tracker.Snapshot()}, nil
}

// costBasisUnrealizedGains handles costbasis.unrealized_gains.
func (d *Dispatcher) costBasisUnrealizedGains(params json.RawMessage) (any, error) {
	req, err := parseParams[request.UnrealizedGains](params)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateUnrealizedGains(req); err != nil {
		return nil, err
	}

	tracker := costbasis.FromSnapshot(req.Lots)
	gains := tracker.UnrealizedGains(req.CurrentPrice, req.AsOfDate)
	if gains == nil {
		gains = []costbasis.UnrealizedGain{}
	}
	return gains, nil
}
