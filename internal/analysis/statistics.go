// Package analysis provides the statistical building blocks for the
// simulation engine and portfolio reporting: bootstrap resampling,
// percentile math, return metrics, and net worth aggregation.
package analysis

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/portfolioos/sidecar/internal/apperrors"
)

// BootstrapReturns generates synthetic multi-year return paths by sampling
// with replacement from a historical return series.
//
// Every cell of the (nSamples, nYears) result is drawn independently and
// uniformly from historical using a generator seeded with seed. Draws are
// made in row-major order (trial 0 year 0, trial 0 year 1, ...), so the
// same seed yields a bit-identical matrix. A nil seed uses a time-derived
// seed and is non-deterministic.
func BootstrapReturns(historical []float64, nSamples, nYears int, seed *int64) ([][]float64, error) {
	if len(historical) == 0 {
		return nil, apperrors.ErrEmptyReturnDistribution
	}

	rng := newRNG(seed)

	samples := make([][]float64, nSamples)
	for i := range samples {
		row := make([]float64, nYears)
		for j := range row {
			row[j] = historical[rng.Intn(len(historical))]
		}
		samples[i] = row
	}
	return samples, nil
}

// newRNG creates a seeded random number generator.
// A nil seed falls back to the current time.
func newRNG(seed *int64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rand.New(rand.NewSource(*seed))
}

// Percentile computes the p-th percentile of values using linear
// interpolation between closest ranks, matching numpy.percentile.
// Returns NaN for an empty slice.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Median returns the 50th percentile of values.
func Median(values []float64) float64 {
	return Percentile(values, 50)
}

// PercentileRank returns the percentile rank (0..100) of target within
// values, using the mean of the strict and weak ranks so that ties are
// split evenly.
func PercentileRank(values []float64, target float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var strict, weak int
	for _, v := range values {
		if v < target {
			strict++
		}
		if v <= target {
			weak++
		}
	}
	tie := 0
	if weak > strict {
		tie = 1
	}
	return float64(strict+weak+tie) * 50.0 / float64(len(values))
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
