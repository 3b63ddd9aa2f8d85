package reconcile

import (
	"testing"

	"github.com/portfolioos/sidecar/internal/model"
	"github.com/portfolioos/sidecar/internal/testutil"
)

//nolint:gocyclo // Test functions naturally have high complexity due to many test cases
func TestDetectDiscrepancies(t *testing.T) {
	t.Run("identical holdings produce an empty non-nil list", func(t *testing.T) {
		holdings := []model.Holding{testutil.NewHolding().Build()}

		discrepancies := DetectDiscrepancies(holdings, holdings)

		if discrepancies == nil {
			t.Fatal("Expected a non-nil list")
		}
		if len(discrepancies) != 0 {
			t.Errorf("Expected no discrepancies, got %d", len(discrepancies))
		}
	})

	t.Run("holding missing from storage is an existence discrepancy", func(t *testing.T) {
		computed := []model.Holding{testutil.NewHolding().Build()}

		discrepancies := DetectDiscrepancies(computed, nil)

		if len(discrepancies) != 1 {
			t.Fatalf("Expected 1 discrepancy, got %d", len(discrepancies))
		}
		d := discrepancies[0]
		if d.Field != model.DiscrepancyExistence {
			t.Errorf("Expected field '%s', got '%s'", model.DiscrepancyExistence, d.Field)
		}
		if d.ComputedValue != "present" || d.StoredValue != "missing" {
			t.Errorf("Expected present/missing, got %v/%v", d.ComputedValue, d.StoredValue)
		}
	})

	t.Run("stored holding with no transactions is an existence discrepancy", func(t *testing.T) {
		stored := []model.Holding{testutil.NewHolding().Build()}

		discrepancies := DetectDiscrepancies(nil, stored)

		if len(discrepancies) != 1 {
			t.Fatalf("Expected 1 discrepancy, got %d", len(discrepancies))
		}
		d := discrepancies[0]
		if d.ComputedValue != "missing" || d.StoredValue != "present" {
			t.Errorf("Expected missing/present, got %v/%v", d.ComputedValue, d.StoredValue)
		}
	})

	t.Run("a ten share mismatch is exactly one shares discrepancy", func(t *testing.T) {
		computed := []model.Holding{testutil.NewHolding().WithShares(110).Build()}
		stored := []model.Holding{testutil.NewHolding().WithShares(100).Build()}

		discrepancies := DetectDiscrepancies(computed, stored)

		if len(discrepancies) != 1 {
			t.Fatalf("Expected exactly 1 discrepancy, got %d", len(discrepancies))
		}
		d := discrepancies[0]
		if d.Field != model.DiscrepancyShares {
			t.Errorf("Expected field '%s', got '%s'", model.DiscrepancyShares, d.Field)
		}
		if d.ComputedValue != 110.0 || d.StoredValue != 100.0 {
			t.Errorf("Expected 110/100, got %v/%v", d.ComputedValue, d.StoredValue)
		}
	})

	t.Run("cost basis differences within a cent are ignored", func(t *testing.T) {
		computed := []model.Holding{testutil.NewHolding().WithCostBasis(5000.004).Build()}
		stored := []model.Holding{testutil.NewHolding().WithCostBasis(5000.00).Build()}

		discrepancies := DetectDiscrepancies(computed, stored)

		if len(discrepancies) != 0 {
			t.Errorf("Expected no discrepancies, got %d", len(discrepancies))
		}
	})

	t.Run("shares and cost basis can both differ on one key", func(t *testing.T) {
		computed := []model.Holding{testutil.NewHolding().WithShares(110).WithCostBasis(5500).Build()}
		stored := []model.Holding{testutil.NewHolding().WithShares(100).WithCostBasis(5000).Build()}

		discrepancies := DetectDiscrepancies(computed, stored)

		if len(discrepancies) != 2 {
			t.Fatalf("Expected 2 discrepancies, got %d", len(discrepancies))
		}
		if discrepancies[0].Field != model.DiscrepancyShares {
			t.Errorf("Expected shares first, got '%s'", discrepancies[0].Field)
		}
		if discrepancies[1].Field != model.DiscrepancyCostBasis {
			t.Errorf("Expected cost_basis second, got '%s'", discrepancies[1].Field)
		}
	})

	t.Run("results are ordered by account then symbol", func(t *testing.T) {
		computed := []model.Holding{
			testutil.NewHolding().WithAccountID("acct-2").WithSymbol("AAA").Build(),
			testutil.NewHolding().WithAccountID("acct-1").WithSymbol("ZZZ").Build(),
		}

		discrepancies := DetectDiscrepancies(computed, nil)

		if len(discrepancies) != 2 {
			t.Fatalf("Expected 2 discrepancies, got %d", len(discrepancies))
		}
		if discrepancies[0].AccountID != "acct-1" || discrepancies[0].Symbol != "ZZZ" {
			t.Errorf("Expected acct-1/ZZZ first, got %s/%s", discrepancies[0].AccountID, discrepancies[0].Symbol)
		}
		if discrepancies[1].AccountID != "acct-2" || discrepancies[1].Symbol != "AAA" {
			t.Errorf("Expected acct-2/AAA second, got %s/%s", discrepancies[1].AccountID, discrepancies[1].Symbol)
		}
	})
}
