// Package reconcile derives current holdings from a transaction ledger by
// replaying it through per-position cost basis trackers, and diffs the
// result against stored holdings.
package reconcile

import (
	"fmt"
	"log"
	"sort"

	"github.com/portfolioos/sidecar/internal/costbasis"
	"github.com/portfolioos/sidecar/internal/model"
)

// dustThreshold is the share count below which a position is considered
// fully disposed and omitted from the holdings list.
const dustThreshold = 1e-9

// positionKey identifies one (account, symbol) position.
type positionKey struct {
	accountID string
	symbol    string
}

// ReconcileHoldings replays a full transaction history chronologically
// through fresh cost basis trackers, one per (account, symbol), and
// returns the surviving holdings sorted by account and symbol.
//
// The sort is stable: same-day transactions keep their input order, which
// determines FIFO/LIFO lot ordering within that day. Sells dispose FIFO
// and accumulate realized gain per position. Splits rescale every lot
// (non-positive ratios are no-ops). Dividend reinvestments and transfers
// in with positive quantity are treated as buys; any other dividend or
// transfer record is dropped without error.
func ReconcileHoldings(transactions []model.Transaction) ([]model.Holding, error) {
	sorted := make([]model.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date.Time)
	})

	trackers := make(map[positionKey]*costbasis.Tracker)
	realizedGains := make(map[positionKey]float64)

	for _, txn := range sorted {
		key := positionKey{txn.AccountID, txn.Symbol}
		tracker, ok := trackers[key]
		if !ok {
			tracker = costbasis.NewTracker()
			trackers[key] = tracker
		}

		switch txn.Type {
		case model.TransactionBuy:
			tracker.AddBuy(txn.Date, txn.Quantity, txn.Price, txn.Fees)
		case model.TransactionSell:
			disposed, err := tracker.Sell(txn.Date, txn.Quantity, txn.Price, txn.Fees, costbasis.FIFO, nil)
			if err != nil {
				return nil, fmt.Errorf("replay sell of %v %s in %s on %s: %w",
					txn.Quantity, txn.Symbol, txn.AccountID, txn.Date, err)
			}
			for _, d := range disposed {
				realizedGains[key] += d.GainLoss
			}
		case model.TransactionSplit:
			tracker.ApplySplit(txn.Quantity)
		case model.TransactionDividend, model.TransactionTransfer:
			// Dividend reinvestments and in-kind transfers in become new
			// lots at the given price. Anything else (cash dividends,
			// transfers out) is dropped from the replay.
			if txn.Quantity > 0 && txn.Price >= 0 {
				tracker.AddBuy(txn.Date, txn.Quantity, txn.Price, txn.Fees)
			} else {
				log.Printf("reconcile: dropping %s for %s/%s on %s (quantity=%v price=%v)",
					txn.Type, txn.AccountID, txn.Symbol, txn.Date, txn.Quantity, txn.Price)
			}
		}
	}

	holdings := make([]model.Holding, 0, len(trackers))
	for key, tracker := range trackers {
		shares := tracker.TotalShares()
		if shares <= dustThreshold {
			continue
		}
		holdings = append(holdings, model.Holding{
			AccountID:    key.accountID,
			Symbol:       key.symbol,
			Shares:       shares,
			CostBasis:    tracker.TotalCostBasis(),
			RealizedGain: realizedGains[key],
		})
	}

	sort.Slice(holdings, func(i, j int) bool {
		if holdings[i].AccountID != holdings[j].AccountID {
			return holdings[i].AccountID < holdings[j].AccountID
		}
		return holdings[i].Symbol < holdings[j].Symbol
	})
	return holdings, nil
}
