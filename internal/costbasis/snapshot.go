package costbasis

import (
	"strconv"
	"strings"
)

// Snapshot is the serialized form of a tracker, used to move lot state
// across the process boundary. Cost basis calls from the host are
// stateless: the caller sends the lot list, the sidecar hydrates a
// tracker, operates, and returns the updated snapshot.
type Snapshot struct {
	Lots           []TaxLot `json:"lots"`
	TotalShares    float64  `json:"total_shares"`
	TotalCostBasis float64  `json:"total_cost_basis"`
}

// Snapshot serializes the tracker's lots and derived aggregates.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		Lots:           t.Lots(),
		TotalShares:    t.TotalShares(),
		TotalCostBasis: t.TotalCostBasis(),
	}
}

// FromSnapshot rehydrates a tracker from a serialized lot list. The
// sequential lot-ID counter resumes after the highest "lot-N" suffix
// present, so IDs assigned after rehydration never collide.
func FromSnapshot(lots []TaxLot) *Tracker {
	t := &Tracker{lots: make([]*TaxLot, len(lots))}
	for i := range lots {
		lot := lots[i]
		if lot.RemainingQty == 0 && lot.Quantity != 0 && lot.ID == "" {
			// Bare buy records may omit remaining_qty; a fresh lot is whole.
			lot.RemainingQty = lot.Quantity
		}
		t.lots[i] = &lot

		if n, ok := lotIDSuffix(lot.ID); ok && n >= t.nextLotID {
			t.nextLotID = n + 1
		}
	}
	return t
}

// lotIDSuffix extracts N from a "lot-N" identifier.
func lotIDSuffix(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, "lot-")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}
