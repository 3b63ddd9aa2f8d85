package costbasis

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/portfolioos/sidecar/internal/apperrors"
	"github.com/portfolioos/sidecar/internal/model"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAddBuy(t *testing.T) {
	t.Run("assigns sequential lot IDs", func(t *testing.T) {
		tracker := NewTracker()

		first := tracker.AddBuy(model.NewDate(2022, time.January, 10), 100, 50, 0)
		second := tracker.AddBuy(model.NewDate(2022, time.June, 10), 50, 60, 0)

		if first != "lot-0" {
			t.Errorf("Expected first lot ID 'lot-0', got '%s'", first)
		}
		if second != "lot-1" {
			t.Errorf("Expected second lot ID 'lot-1', got '%s'", second)
		}
	})

	t.Run("new lot starts whole", func(t *testing.T) {
		tracker := NewTracker()
		tracker.AddBuy(model.NewDate(2022, time.January, 10), 100, 50, 0)

		if got := tracker.TotalShares(); !approxEqual(got, 100) {
			t.Errorf("Expected 100 total shares, got %v", got)
		}
		if got := tracker.TotalCostBasis(); !approxEqual(got, 5000) {
			t.Errorf("Expected cost basis 5000, got %v", got)
		}
	})

	t.Run("acquisition fees are part of cost basis", func(t *testing.T) {
		tracker := NewTracker()
		tracker.AddBuy(model.NewDate(2022, time.January, 10), 100, 50, 10)

		if got := tracker.TotalCostBasis(); !approxEqual(got, 5010) {
			t.Errorf("Expected cost basis 5010, got %v", got)
		}
	})
}

//nolint:gocyclo // Test functions naturally have high complexity due to many test cases
func TestSellFIFO(t *testing.T) {
	t.Run("full disposal of a single long-term lot", func(t *testing.T) {
		tracker := NewTracker()
		tracker.AddBuy(model.NewDate(2022, time.January, 10), 100, 50, 0)

		disposed, err := tracker.Sell(model.NewDate(2023, time.June, 15), 100, 80, 0, FIFO, nil)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if len(disposed) != 1 {
			t.Fatalf("Expected 1 disposed lot, got %d", len(disposed))
		}
		d := disposed[0]
		if !approxEqual(d.Proceeds, 8000) {
			t.Errorf("Expected proceeds 8000, got %v", d.Proceeds)
		}
		if !approxEqual(d.CostBasis, 5000) {
			t.Errorf("Expected cost basis 5000, got %v", d.CostBasis)
		}
		if !approxEqual(d.GainLoss, 3000) {
			t.Errorf("Expected gain 3000, got %v", d.GainLoss)
		}
		if d.HoldingPeriod != LongTerm {
			t.Errorf("Expected holding period '%s', got '%s'", LongTerm, d.HoldingPeriod)
		}
		if got := tracker.TotalShares(); !approxEqual(got, 0) {
			t.Errorf("Expected 0 remaining shares, got %v", got)
		}
	})

	t.Run("sale held exactly one year is short term", func(t *testing.T) {
		tracker := NewTracker()
		tracker.AddBuy(model.NewDate(2022, time.January, 10), 100, 50, 0)

		disposed, err := tracker.Sell(model.NewDate(2023, time.January, 10), 100, 80, 0, FIFO, nil)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if disposed[0].HoldingPeriod != ShortTerm {
			t.Errorf("Expected holding period '%s', got '%s'", ShortTerm, disposed[0].HoldingPeriod)
		}
	})

	t.Run("sale spanning two lots emits one record per lot", func(t *testing.T) {
		tracker := NewTracker()
		tracker.AddBuy(model.NewDate(2022, time.January, 10), 100, 50, 0)
		tracker.AddBuy(model.NewDate(2022, time.June, 10), 50, 60, 0)

		disposed, err := tracker.Sell(model.NewDate(2023, time.January, 5), 120, 70, 0, FIFO, nil)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if len(disposed) != 2 {
			t.Fatalf("Expected 2 disposed lots, got %d", len(disposed))
		}
		if !approxEqual(disposed[0].QtySold, 100) {
			t.Errorf("Expected 100 sold from the oldest lot, got %v", disposed[0].QtySold)
		}
		if !approxEqual(disposed[1].QtySold, 20) {
			t.Errorf("Expected 20 sold from the second lot, got %v", disposed[1].QtySold)
		}
		var totalSold, totalProceeds float64
		for _, d := range disposed {
			totalSold += d.QtySold
			totalProceeds += d.Proceeds
		}
		if !approxEqual(totalSold, 120) {
			t.Errorf("Expected disposals to cover 120 shares, got %v", totalSold)
		}
		if !approxEqual(totalProceeds, 8400) {
			t.Errorf("Expected total proceeds 8400, got %v", totalProceeds)
		}
		if got := tracker.TotalShares(); !approxEqual(got, 30) {
			t.Errorf("Expected 30 remaining shares, got %v", got)
		}
	})

	t.Run("sale fees reduce proceeds", func(t *testing.T) {
		tracker := NewTracker()
		tracker.AddBuy(model.NewDate(2022, time.January, 10), 100, 50, 0)

		disposed, err := tracker.Sell(model.NewDate(2022, time.March, 1), 10, 100, 5, FIFO, nil)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !approxEqual(disposed[0].Proceeds, 995) {
			t.Errorf("Expected proceeds 995, got %v", disposed[0].Proceeds)
		}
		if !approxEqual(disposed[0].GainLoss, 495) {
			t.Errorf("Expected gain 495, got %v", disposed[0].GainLoss)
		}
	})

	t.Run("insufficient shares leaves the tracker unchanged", func(t *testing.T) {
		tracker := NewTracker()
		tracker.AddBuy(model.NewDate(2022, time.January, 10), 100, 50, 0)

		_, err := tracker.Sell(model.NewDate(2022, time.March, 1), 150, 80, 0, FIFO, nil)
		if !errors.Is(err, apperrors.ErrInsufficientShares) {
			t.Fatalf("Expected ErrInsufficientShares, got %v", err)
		}
		if got := tracker.TotalShares(); !approxEqual(got, 100) {
			t.Errorf("Expected shares unchanged at 100, got %v", got)
		}
		if got := tracker.TotalCostBasis(); !approxEqual(got, 5000) {
			t.Errorf("Expected cost basis unchanged at 5000, got %v", got)
		}
	})

	t.Run("unknown method is rejected", func(t *testing.T) {
		tracker := NewTracker()
		tracker.AddBuy(model.NewDate(2022, time.January, 10), 100, 50, 0)

		_, err := tracker.Sell(model.NewDate(2022, time.March, 1), 10, 80, 0, Method("hifo"), nil)
		if !errors.Is(err, apperrors.ErrUnknownCostBasisMethod) {
			t.Errorf("Expected ErrUnknownCostBasisMethod, got %v", err)
		}
	})
}

func TestSellLIFO(t *testing.T) {
	t.Run("newest lot is consumed first", func(t *testing.T) {
		tracker := NewTracker()
		tracker.AddBuy(model.NewDate(2022, time.January, 10), 100, 50, 0)
		tracker.AddBuy(model.NewDate(2022, time.June, 10), 50, 60, 0)

		disposed, err := tracker.Sell(model.NewDate(2022, time.December, 1), 60, 70, 0, LIFO, nil)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if len(disposed) != 2 {
			t.Fatalf("Expected 2 disposed lots, got %d", len(disposed))
		}
		if !approxEqual(disposed[0].QtySold, 50) {
			t.Errorf("Expected the newest lot drained first (50 shares), got %v", disposed[0].QtySold)
		}
		if !disposed[0].LotDate.Equal(model.NewDate(2022, time.June, 10).Time) {
			t.Errorf("Expected first disposal from the June lot, got %s", disposed[0].LotDate)
		}
		if !approxEqual(disposed[1].QtySold, 10) {
			t.Errorf("Expected 10 shares from the older lot, got %v", disposed[1].QtySold)
		}
	})
}

func TestSellAverageCost(t *testing.T) {
	t.Run("blends all remaining shares into one disposal", func(t *testing.T) {
		tracker := NewTracker()
		tracker.AddBuy(model.NewDate(2021, time.March, 1), 100, 50, 0)
		tracker.AddBuy(model.NewDate(2022, time.March, 1), 100, 100, 0)

		disposed, err := tracker.Sell(model.NewDate(2023, time.March, 1), 50, 80, 0, AverageCost, nil)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if len(disposed) != 1 {
			t.Fatalf("Expected exactly 1 disposed lot, got %d", len(disposed))
		}
		d := disposed[0]
		if !approxEqual(d.CostBasis, 3750) {
			t.Errorf("Expected blended cost basis 3750, got %v", d.CostBasis)
		}
		if !approxEqual(d.Proceeds, 4000) {
			t.Errorf("Expected proceeds 4000, got %v", d.Proceeds)
		}
		if !approxEqual(d.GainLoss, 250) {
			t.Errorf("Expected gain 250, got %v", d.GainLoss)
		}
		if !d.LotDate.Equal(model.NewDate(2021, time.March, 1).Time) {
			t.Errorf("Expected the earliest active lot date, got %s", d.LotDate)
		}
		if d.HoldingPeriod != LongTerm {
			t.Errorf("Expected holding period '%s', got '%s'", LongTerm, d.HoldingPeriod)
		}
		if got := tracker.TotalShares(); !approxEqual(got, 150) {
			t.Errorf("Expected 150 remaining shares, got %v", got)
		}
	})

	t.Run("drained lots no longer set the earliest date", func(t *testing.T) {
		tracker := NewTracker()
		tracker.AddBuy(model.NewDate(2020, time.January, 1), 10, 50, 0)
		tracker.AddBuy(model.NewDate(2023, time.January, 1), 10, 60, 0)

		if _, err := tracker.Sell(model.NewDate(2023, time.February, 1), 10, 70, 0, FIFO, nil); err != nil {
			t.Fatalf("Expected no error draining the first lot, got %v", err)
		}

		disposed, err := tracker.Sell(model.NewDate(2023, time.March, 1), 5, 70, 0, AverageCost, nil)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !disposed[0].LotDate.Equal(model.NewDate(2023, time.January, 1).Time) {
			t.Errorf("Expected earliest active lot date 2023-01-01, got %s", disposed[0].LotDate)
		}
		if disposed[0].HoldingPeriod != ShortTerm {
			t.Errorf("Expected holding period '%s', got '%s'", ShortTerm, disposed[0].HoldingPeriod)
		}
	})
}

//nolint:gocyclo // Test functions naturally have high complexity due to many test cases
func TestSellSpecificID(t *testing.T) {
	setup := func() *Tracker {
		tracker := NewTracker()
		tracker.AddBuy(model.NewDate(2022, time.January, 10), 100, 50, 0) // lot-0
		tracker.AddBuy(model.NewDate(2022, time.June, 10), 50, 60, 0)     // lot-1
		return tracker
	}

	t.Run("draws only from designated lots", func(t *testing.T) {
		tracker := setup()

		disposed, err := tracker.Sell(model.NewDate(2022, time.December, 1), 30, 70, 0, SpecificID, []string{"lot-1"})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(disposed) != 1 {
			t.Fatalf("Expected 1 disposed lot, got %d", len(disposed))
		}
		if !disposed[0].LotDate.Equal(model.NewDate(2022, time.June, 10).Time) {
			t.Errorf("Expected disposal from lot-1, got date %s", disposed[0].LotDate)
		}

		lots := tracker.Lots()
		if !approxEqual(lots[0].RemainingQty, 100) {
			t.Errorf("Expected lot-0 untouched at 100 shares, got %v", lots[0].RemainingQty)
		}
		if !approxEqual(lots[1].RemainingQty, 20) {
			t.Errorf("Expected lot-1 reduced to 20 shares, got %v", lots[1].RemainingQty)
		}
	})

	t.Run("unknown lot ID fails without mutation", func(t *testing.T) {
		tracker := setup()

		_, err := tracker.Sell(model.NewDate(2022, time.December, 1), 10, 70, 0, SpecificID, []string{"lot-9"})
		if !errors.Is(err, apperrors.ErrLotNotFound) {
			t.Fatalf("Expected ErrLotNotFound, got %v", err)
		}
		if got := tracker.TotalShares(); !approxEqual(got, 150) {
			t.Errorf("Expected shares unchanged at 150, got %v", got)
		}
	})

	t.Run("sale never spills into unlisted lots", func(t *testing.T) {
		tracker := setup()

		_, err := tracker.Sell(model.NewDate(2022, time.December, 1), 80, 70, 0, SpecificID, []string{"lot-1"})
		if !errors.Is(err, apperrors.ErrInsufficientLotShares) {
			t.Fatalf("Expected ErrInsufficientLotShares, got %v", err)
		}
		lots := tracker.Lots()
		if !approxEqual(lots[1].RemainingQty, 50) {
			t.Errorf("Expected lot-1 unchanged at 50 shares, got %v", lots[1].RemainingQty)
		}
	})

	t.Run("lot IDs are required", func(t *testing.T) {
		tracker := setup()

		_, err := tracker.Sell(model.NewDate(2022, time.December, 1), 10, 70, 0, SpecificID, nil)
		if !errors.Is(err, apperrors.ErrLotIDsRequired) {
			t.Errorf("Expected ErrLotIDsRequired, got %v", err)
		}
	})

	t.Run("consumes designated lots in the order given", func(t *testing.T) {
		tracker := setup()

		disposed, err := tracker.Sell(model.NewDate(2022, time.December, 1), 60, 70, 0, SpecificID, []string{"lot-1", "lot-0"})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(disposed) != 2 {
			t.Fatalf("Expected 2 disposed lots, got %d", len(disposed))
		}
		if !approxEqual(disposed[0].QtySold, 50) {
			t.Errorf("Expected lot-1 drained first (50 shares), got %v", disposed[0].QtySold)
		}
		if !approxEqual(disposed[1].QtySold, 10) {
			t.Errorf("Expected 10 shares from lot-0, got %v", disposed[1].QtySold)
		}
	})
}

func TestApplySplit(t *testing.T) {
	t.Run("two for one split doubles shares and halves price", func(t *testing.T) {
		tracker := NewTracker()
		tracker.AddBuy(model.NewDate(2022, time.January, 10), 100, 50, 10)

		tracker.ApplySplit(2)

		lots := tracker.Lots()
		if !approxEqual(lots[0].Quantity, 200) {
			t.Errorf("Expected quantity 200, got %v", lots[0].Quantity)
		}
		if !approxEqual(lots[0].RemainingQty, 200) {
			t.Errorf("Expected remaining quantity 200, got %v", lots[0].RemainingQty)
		}
		if !approxEqual(lots[0].Price, 25) {
			t.Errorf("Expected price 25, got %v", lots[0].Price)
		}
		if got := tracker.TotalCostBasis(); !approxEqual(got, 5010) {
			t.Errorf("Expected cost basis unchanged at 5010, got %v", got)
		}
	})

	t.Run("non-positive ratio is a no-op", func(t *testing.T) {
		tracker := NewTracker()
		tracker.AddBuy(model.NewDate(2022, time.January, 10), 100, 50, 0)

		tracker.ApplySplit(0)
		tracker.ApplySplit(-1)

		lots := tracker.Lots()
		if !approxEqual(lots[0].Quantity, 100) || !approxEqual(lots[0].Price, 50) {
			t.Errorf("Expected lot unchanged, got quantity %v price %v", lots[0].Quantity, lots[0].Price)
		}
	})
}

func TestUnrealizedGains(t *testing.T) {
	t.Run("values only lots with remaining shares", func(t *testing.T) {
		tracker := NewTracker()
		tracker.AddBuy(model.NewDate(2022, time.January, 10), 100, 50, 0)
		tracker.AddBuy(model.NewDate(2023, time.June, 10), 50, 60, 0)
		if _, err := tracker.Sell(model.NewDate(2023, time.July, 1), 100, 70, 0, FIFO, nil); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		gains := tracker.UnrealizedGains(80, model.NewDate(2023, time.August, 1))

		if len(gains) != 1 {
			t.Fatalf("Expected 1 unrealized gain entry, got %d", len(gains))
		}
		g := gains[0]
		if !approxEqual(g.Shares, 50) {
			t.Errorf("Expected 50 shares, got %v", g.Shares)
		}
		if !approxEqual(g.MarketValue, 4000) {
			t.Errorf("Expected market value 4000, got %v", g.MarketValue)
		}
		if !approxEqual(g.CostBasis, 3000) {
			t.Errorf("Expected cost basis 3000, got %v", g.CostBasis)
		}
		if !approxEqual(g.UnrealizedGain, 1000) {
			t.Errorf("Expected unrealized gain 1000, got %v", g.UnrealizedGain)
		}
		if g.HoldingPeriod != ShortTerm {
			t.Errorf("Expected holding period '%s', got '%s'", ShortTerm, g.HoldingPeriod)
		}
	})

	t.Run("zero as-of date defaults to today", func(t *testing.T) {
		tracker := NewTracker()
		tracker.AddBuy(model.NewDate(2020, time.January, 10), 100, 50, 0)

		gains := tracker.UnrealizedGains(80, model.Date{})

		if len(gains) != 1 {
			t.Fatalf("Expected 1 unrealized gain entry, got %d", len(gains))
		}
		if gains[0].HoldingPeriod != LongTerm {
			t.Errorf("Expected a 2020 lot to be long term today, got '%s'", gains[0].HoldingPeriod)
		}
	})
}

func TestParseMethod(t *testing.T) {
	t.Run("accepts all four methods", func(t *testing.T) {
		for _, name := range []string{"fifo", "lifo", "average_cost", "specific_id"} {
			if _, err := ParseMethod(name); err != nil {
				t.Errorf("Expected method '%s' to parse, got %v", name, err)
			}
		}
	})

	t.Run("rejects unknown methods", func(t *testing.T) {
		_, err := ParseMethod("hifo")
		if !errors.Is(err, apperrors.ErrUnknownCostBasisMethod) {
			t.Errorf("Expected ErrUnknownCostBasisMethod, got %v", err)
		}
	})
}
