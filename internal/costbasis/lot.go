// Package costbasis implements tax-lot level cost basis accounting for a
// single (account, symbol) position: lot creation on buys, four disposal
// methods on sells, and realized/unrealized gain computation with
// short-term vs long-term holding classification.
package costbasis

import (
	"fmt"

	"github.com/portfolioos/sidecar/internal/apperrors"
	"github.com/portfolioos/sidecar/internal/model"
)

// Holding period classifications. A position held more than 365 days
// before disposal is long term.
const (
	ShortTerm = "short_term"
	LongTerm  = "long_term"
)

// longTermDays is the holding period threshold for long-term gains.
const longTermDays = 365

// Method selects the disposal algorithm for a sale.
type Method string

// Supported disposal methods.
const (
	FIFO        Method = "fifo"
	LIFO        Method = "lifo"
	AverageCost Method = "average_cost"
	SpecificID  Method = "specific_id"
)

// ParseMethod validates a disposal method name.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case FIFO, LIFO, AverageCost, SpecificID:
		return Method(s), nil
	default:
		return "", fmt.Errorf("%w: %q (use fifo, lifo, average_cost, or specific_id)",
			apperrors.ErrUnknownCostBasisMethod, s)
	}
}

// TaxLot is a discrete block of shares acquired at one price and date.
// Lots are owned and mutated exclusively by their CostBasisTracker:
// disposals reduce RemainingQty, splits rescale quantity and price.
// A lot is never deleted, even at zero remaining quantity, so the full
// acquisition history stays auditable.
type TaxLot struct {
	ID           string     `json:"lot_id"`
	Date         model.Date `json:"date"`
	Quantity     float64    `json:"quantity"`
	Price        float64    `json:"price"`
	Fees         float64    `json:"fees"`
	RemainingQty float64    `json:"remaining_qty"`
}

// costBasis returns the cost basis for qty shares drawn from this lot:
// the share cost plus a proportional slice of the acquisition fees.
func (l *TaxLot) costBasis(qty float64) float64 {
	return qty*l.Price + l.Fees*qty/l.Quantity
}

// DisposedLot records the outcome of selling shares out of one tax lot.
type DisposedLot struct {
	LotDate       model.Date `json:"lot_date"`
	QtySold       float64    `json:"qty_sold"`
	Proceeds      float64    `json:"proceeds"`
	CostBasis     float64    `json:"cost_basis"`
	GainLoss      float64    `json:"gain_loss"`
	HoldingPeriod string     `json:"holding_period"`
}

// UnrealizedGain is a point-in-time valuation of one lot's remaining shares.
type UnrealizedGain struct {
	LotDate        model.Date `json:"lot_date"`
	Shares         float64    `json:"shares"`
	CostBasis      float64    `json:"cost_basis"`
	MarketValue    float64    `json:"market_value"`
	UnrealizedGain float64    `json:"unrealized_gain"`
	HoldingPeriod  string     `json:"holding_period"`
}

// holdingPeriod classifies a lot held from acquireDate to sellDate.
func holdingPeriod(acquireDate, sellDate model.Date) string {
	if acquireDate.DaysUntil(sellDate) > longTermDays {
		return LongTerm
	}
	return ShortTerm
}
