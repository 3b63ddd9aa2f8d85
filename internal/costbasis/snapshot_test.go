package costbasis

import (
	"testing"
	"time"

	"github.com/portfolioos/sidecar/internal/model"
)

func TestSnapshotRoundTrip(t *testing.T) {
	t.Run("rehydrated tracker matches the original", func(t *testing.T) {
		tracker := NewTracker()
		tracker.AddBuy(model.NewDate(2022, time.January, 10), 100, 50, 0)
		tracker.AddBuy(model.NewDate(2022, time.June, 10), 50, 60, 5)
		if _, err := tracker.Sell(model.NewDate(2022, time.August, 1), 30, 70, 0, FIFO, nil); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		snap := tracker.Snapshot()
		restored := FromSnapshot(snap.Lots)

		if got := restored.TotalShares(); !approxEqual(got, tracker.TotalShares()) {
			t.Errorf("Expected %v shares after round trip, got %v", tracker.TotalShares(), got)
		}
		if got := restored.TotalCostBasis(); !approxEqual(got, tracker.TotalCostBasis()) {
			t.Errorf("Expected cost basis %v after round trip, got %v", tracker.TotalCostBasis(), got)
		}
		if len(restored.Lots()) != 2 {
			t.Errorf("Expected 2 lots after round trip, got %d", len(restored.Lots()))
		}
	})

	t.Run("lot ID counter resumes after the highest suffix", func(t *testing.T) {
		tracker := NewTracker()
		tracker.AddBuy(model.NewDate(2022, time.January, 10), 100, 50, 0)
		tracker.AddBuy(model.NewDate(2022, time.June, 10), 50, 60, 0)

		restored := FromSnapshot(tracker.Snapshot().Lots)
		next := restored.AddBuy(model.NewDate(2022, time.December, 1), 10, 65, 0)

		if next != "lot-2" {
			t.Errorf("Expected next lot ID 'lot-2', got '%s'", next)
		}
	})

	t.Run("bare buy records without remaining quantity are whole", func(t *testing.T) {
		lots := []TaxLot{{
			Date:     model.NewDate(2022, time.January, 10),
			Quantity: 100,
			Price:    50,
		}}

		restored := FromSnapshot(lots)

		if got := restored.TotalShares(); !approxEqual(got, 100) {
			t.Errorf("Expected bare lot to carry 100 remaining shares, got %v", got)
		}
	})

	t.Run("drained lots with IDs stay drained", func(t *testing.T) {
		lots := []TaxLot{{
			ID:           "lot-0",
			Date:         model.NewDate(2022, time.January, 10),
			Quantity:     100,
			Price:        50,
			RemainingQty: 0,
		}}

		restored := FromSnapshot(lots)

		if got := restored.TotalShares(); !approxEqual(got, 0) {
			t.Errorf("Expected drained lot to stay at 0 shares, got %v", got)
		}
	})
}
