package analysis

import (
	"fmt"
	"math"
)

// CAGR computes the compound annual growth rate between two portfolio
// values over nYears (which may be fractional), as a decimal
// (0.07 for 7%).
func CAGR(startValue, endValue, nYears float64) (float64, error) {
	if startValue <= 0 {
		return 0, fmt.Errorf("start value must be positive, got %v", startValue)
	}
	if endValue < 0 {
		return 0, fmt.Errorf("end value must be non-negative, got %v", endValue)
	}
	if nYears <= 0 {
		return 0, fmt.Errorf("years must be positive, got %v", nYears)
	}
	return math.Pow(endValue/startValue, 1.0/nYears) - 1.0, nil
}

// MaxDrawdown computes the largest peak-to-trough decline in a series of
// portfolio values, as a non-positive decimal (-0.1818 for an 18.18%
// drawdown). A monotonically increasing series yields 0.
func MaxDrawdown(values []float64) (float64, error) {
	if len(values) < 2 {
		return 0, fmt.Errorf("values must have at least 2 elements, got %d", len(values))
	}

	runningMax := values[0]
	worst := 0.0
	for _, v := range values {
		if v > runningMax {
			runningMax = v
		}
		drawdown := (v - runningMax) / runningMax
		if drawdown < worst {
			worst = drawdown
		}
	}
	return worst, nil
}
