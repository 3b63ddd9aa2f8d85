package costbasis

import (
	"fmt"

	"github.com/portfolioos/sidecar/internal/apperrors"
	"github.com/portfolioos/sidecar/internal/model"
)

// qtyEpsilon is the share-count tolerance used for availability checks
// and for deciding when a sale has been fully filled.
const qtyEpsilon = 1e-9

// Tracker owns the ordered tax lots of exactly one (account, symbol)
// position and computes cost basis under FIFO, LIFO, average-cost, and
// specific-identification disposal.
//
// A Tracker is not safe for concurrent mutation. Callers must use one
// instance per position key and must not share it across writers.
type Tracker struct {
	lots      []*TaxLot
	nextLotID int
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// AddBuy records a purchase as a new tax lot and returns its lot ID.
// Lot IDs are sequential and stable within one tracker instance.
func (t *Tracker) AddBuy(date model.Date, quantity, price, fees float64) string {
	lotID := fmt.Sprintf("lot-%d", t.nextLotID)
	t.nextLotID++
	t.lots = append(t.lots, &TaxLot{
		ID:           lotID,
		Date:         date,
		Quantity:     quantity,
		Price:        price,
		Fees:         fees,
		RemainingQty: quantity,
	})
	return lotID
}

// Sell disposes quantity shares at the given price using the requested
// method, returning one DisposedLot per lot touched (exactly one for
// average cost). lotIDs is only consulted for SpecificID.
//
// The sale is all-or-nothing: availability is validated before any lot
// is mutated, so a failed sell leaves the tracker unchanged.
func (t *Tracker) Sell(date model.Date, quantity, price, fees float64, method Method, lotIDs []string) ([]DisposedLot, error) {
	totalAvailable := t.TotalShares()
	if quantity > totalAvailable+qtyEpsilon {
		return nil, fmt.Errorf("%w: requested %v, available %v",
			apperrors.ErrInsufficientShares, quantity, totalAvailable)
	}

	switch method {
	case FIFO:
		return t.disposeOrdered(date, quantity, price, fees, false), nil
	case LIFO:
		return t.disposeOrdered(date, quantity, price, fees, true), nil
	case AverageCost:
		return t.disposeAverageCost(date, quantity, price, fees), nil
	case SpecificID:
		return t.disposeSpecific(date, quantity, price, fees, lotIDs)
	default:
		return nil, fmt.Errorf("%w: %q (use fifo, lifo, average_cost, or specific_id)",
			apperrors.ErrUnknownCostBasisMethod, method)
	}
}

// disposeOrdered consumes active lots oldest-first (or newest-first when
// reverse is set), emitting one DisposedLot per lot touched. Proceeds and
// the sale's own fees are allocated to lots in proportion to shares sold;
// each lot contributes its acquisition cost plus a proportional slice of
// its acquisition fees.
func (t *Tracker) disposeOrdered(date model.Date, quantity, price, fees float64, reverse bool) []DisposedLot {
	remainingToSell := quantity
	totalProceeds := quantity*price - fees
	var disposed []DisposedLot

	order := make([]*TaxLot, len(t.lots))
	for i, lot := range t.lots {
		if reverse {
			order[len(t.lots)-1-i] = lot
		} else {
			order[i] = lot
		}
	}

	for _, lot := range order {
		if remainingToSell <= qtyEpsilon {
			break
		}
		if lot.RemainingQty <= 0 {
			continue
		}

		sellFromLot := min(lot.RemainingQty, remainingToSell)
		lotCost := lot.costBasis(sellFromLot)
		lotProceeds := totalProceeds * (sellFromLot / quantity)

		disposed = append(disposed, DisposedLot{
			LotDate:       lot.Date,
			QtySold:       sellFromLot,
			Proceeds:      lotProceeds,
			CostBasis:     lotCost,
			GainLoss:      lotProceeds - lotCost,
			HoldingPeriod: holdingPeriod(lot.Date, date),
		})

		lot.RemainingQty -= sellFromLot
		remainingToSell -= sellFromLot
	}

	return disposed
}

// disposeAverageCost blends all remaining shares into a single per-share
// cost and emits exactly one DisposedLot. The holding period uses the
// earliest active lot's date for the whole sale, even when the position
// mixes short- and long-term lots, a known approximation kept for
// compatibility, not tax law. Lots are drained oldest-first internally
// so that per-lot bookkeeping stays consistent.
func (t *Tracker) disposeAverageCost(date model.Date, quantity, price, fees float64) []DisposedLot {
	totalShares := t.TotalShares()
	totalCost := t.TotalCostBasis()
	avgCostPerShare := 0.0
	if totalShares > 0 {
		avgCostPerShare = totalCost / totalShares
	}

	totalProceeds := quantity*price - fees
	costBasis := quantity * avgCostPerShare

	earliest := date
	found := false
	for _, lot := range t.lots {
		if lot.RemainingQty <= 0 {
			continue
		}
		if !found || lot.Date.Before(earliest.Time) {
			earliest = lot.Date
			found = true
		}
	}

	remainingToSell := quantity
	for _, lot := range t.lots {
		if remainingToSell <= qtyEpsilon {
			break
		}
		if lot.RemainingQty <= 0 {
			continue
		}
		sellFromLot := min(lot.RemainingQty, remainingToSell)
		lot.RemainingQty -= sellFromLot
		remainingToSell -= sellFromLot
	}

	return []DisposedLot{{
		LotDate:       earliest,
		QtySold:       quantity,
		Proceeds:      totalProceeds,
		CostBasis:     costBasis,
		GainLoss:      totalProceeds - costBasis,
		HoldingPeriod: holdingPeriod(earliest, date),
	}}
}

// disposeSpecific draws shares from caller-designated lots in the order
// given. Specific identification is strict: an unknown lot ID fails, and
// the designated lots must collectively cover the requested quantity;
// the sale never spills into unlisted lots. Both checks run before any
// lot is mutated.
func (t *Tracker) disposeSpecific(date model.Date, quantity, price, fees float64, lotIDs []string) ([]DisposedLot, error) {
	if len(lotIDs) == 0 {
		return nil, apperrors.ErrLotIDsRequired
	}

	lotsByID := make(map[string]*TaxLot, len(t.lots))
	for _, lot := range t.lots {
		lotsByID[lot.ID] = lot
	}

	var available float64
	for _, id := range lotIDs {
		lot, ok := lotsByID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrLotNotFound, id)
		}
		available += lot.RemainingQty
	}
	if quantity > available+qtyEpsilon {
		return nil, fmt.Errorf("%w: requested %v, designated lots hold %v",
			apperrors.ErrInsufficientLotShares, quantity, available)
	}

	remainingToSell := quantity
	totalProceeds := quantity*price - fees
	var disposed []DisposedLot

	for _, id := range lotIDs {
		if remainingToSell <= qtyEpsilon {
			break
		}
		lot := lotsByID[id]
		if lot.RemainingQty <= 0 {
			continue
		}

		sellFromLot := min(lot.RemainingQty, remainingToSell)
		lotCost := lot.costBasis(sellFromLot)
		lotProceeds := totalProceeds * (sellFromLot / quantity)

		disposed = append(disposed, DisposedLot{
			LotDate:       lot.Date,
			QtySold:       sellFromLot,
			Proceeds:      lotProceeds,
			CostBasis:     lotCost,
			GainLoss:      lotProceeds - lotCost,
			HoldingPeriod: holdingPeriod(lot.Date, date),
		})

		lot.RemainingQty -= sellFromLot
		remainingToSell -= sellFromLot
	}

	return disposed, nil
}

// ApplySplit rescales every lot for a stock split: quantities multiply by
// the ratio and the per-share price divides by it, leaving each lot's cost
// basis unchanged. A non-positive ratio is a no-op.
func (t *Tracker) ApplySplit(ratio float64) {
	if ratio <= 0 {
		return
	}
	for _, lot := range t.lots {
		lot.Quantity *= ratio
		lot.RemainingQty *= ratio
		lot.Price /= ratio
	}
}

// UnrealizedGains values every lot with remaining shares at currentPrice.
// A zero asOfDate defaults to today.
func (t *Tracker) UnrealizedGains(currentPrice float64, asOfDate model.Date) []UnrealizedGain {
	if asOfDate.IsZero() {
		asOfDate = model.Today()
	}

	var gains []UnrealizedGain
	for _, lot := range t.lots {
		if lot.RemainingQty <= 0 {
			continue
		}

		cost := lot.costBasis(lot.RemainingQty)
		marketValue := lot.RemainingQty * currentPrice

		gains = append(gains, UnrealizedGain{
			LotDate:        lot.Date,
			Shares:         lot.RemainingQty,
			CostBasis:      cost,
			MarketValue:    marketValue,
			UnrealizedGain: marketValue - cost,
			HoldingPeriod:  holdingPeriod(lot.Date, asOfDate),
		})
	}
	return gains
}

// TotalShares returns the remaining shares summed across all lots.
func (t *Tracker) TotalShares() float64 {
	var total float64
	for _, lot := range t.lots {
		total += lot.RemainingQty
	}
	return total
}

// TotalCostBasis returns the cost basis of all remaining shares: each
// lot's remaining share cost plus the proportional share of its fees.
func (t *Tracker) TotalCostBasis() float64 {
	var total float64
	for _, lot := range t.lots {
		if lot.RemainingQty <= 0 {
			continue
		}
		total += lot.costBasis(lot.RemainingQty)
	}
	return total
}

// Lots returns a copy of the tracker's lots in acquisition order.
// Callers get values, never aliases to the tracker's internal state.
func (t *Tracker) Lots() []TaxLot {
	lots := make([]TaxLot, len(t.lots))
	for i, lot := range t.lots {
		lots[i] = *lot
	}
	return lots
}
