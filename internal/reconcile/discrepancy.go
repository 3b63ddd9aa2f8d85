package reconcile

import (
	"math"
	"sort"

	"github.com/portfolioos/sidecar/internal/model"
)

// Comparison tolerances: share counts are compared tighter than dollar
// cost basis, which only needs to agree to the cent.
const (
	sharesTolerance    = 1e-6
	costBasisTolerance = 0.01
)

// DetectDiscrepancies compares computed holdings against stored holdings
// over the union of (account, symbol) keys, in deterministic key order.
//
// A key present on only one side produces a single existence discrepancy.
// For keys present on both, shares and cost basis are compared under
// their tolerances and one discrepancy is emitted per differing field,
// carrying both values. Identical inputs produce an empty (non-nil) list.
func DetectDiscrepancies(computed, stored []model.Holding) []model.Discrepancy {
	computedMap := holdingsByKey(computed)
	storedMap := holdingsByKey(stored)

	keys := make([]positionKey, 0, len(computedMap)+len(storedMap))
	for key := range computedMap {
		keys = append(keys, key)
	}
	for key := range storedMap {
		if _, ok := computedMap[key]; !ok {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].accountID != keys[j].accountID {
			return keys[i].accountID < keys[j].accountID
		}
		return keys[i].symbol < keys[j].symbol
	})

	discrepancies := make([]model.Discrepancy, 0)
	for _, key := range keys {
		c, haveComputed := computedMap[key]
		s, haveStored := storedMap[key]

		if !haveComputed {
			discrepancies = append(discrepancies, model.Discrepancy{
				AccountID:     key.accountID,
				Symbol:        key.symbol,
				Field:         model.DiscrepancyExistence,
				ComputedValue: "missing",
				StoredValue:   "present",
			})
			continue
		}
		if !haveStored {
			discrepancies = append(discrepancies, model.Discrepancy{
				AccountID:     key.accountID,
				Symbol:        key.symbol,
				Field:         model.DiscrepancyExistence,
				ComputedValue: "present",
				StoredValue:   "missing",
			})
			continue
		}

		if math.Abs(c.Shares-s.Shares) > sharesTolerance {
			discrepancies = append(discrepancies, model.Discrepancy{
				AccountID:     key.accountID,
				Symbol:        key.symbol,
				Field:         model.DiscrepancyShares,
				ComputedValue: c.Shares,
				StoredValue:   s.Shares,
			})
		}
		if math.Abs(c.CostBasis-s.CostBasis) > costBasisTolerance {
			discrepancies = append(discrepancies, model.Discrepancy{
				AccountID:     key.accountID,
				Symbol:        key.symbol,
				Field:         model.DiscrepancyCostBasis,
				ComputedValue: c.CostBasis,
				StoredValue:   s.CostBasis,
			})
		}
	}

	return discrepancies
}

func holdingsByKey(holdings []model.Holding) map[positionKey]model.Holding {
	byKey := make(map[positionKey]model.Holding, len(holdings))
	for _, h := range holdings {
		byKey[positionKey{h.AccountID, h.Symbol}] = h
	}
	return byKey
}
