// Package simulation implements the Monte Carlo retirement engine:
// bootstrapped return paths, withdrawal policies, scenario runs with
// life events, and parameter sensitivity sweeps.
package simulation

import (
	"math"
)

// Guyton-Klinger guardrail thresholds (Guyton & Klinger, 2006).
const (
	gkCeilingMultiplier = 1.2  // withdrawal rate 20% above initial triggers a cut
	gkFloorMultiplier   = 0.8  // withdrawal rate 20% below initial triggers a raise
	gkAdjustment        = 0.10 // size of the cut or raise when a guardrail is hit
)

// ConstantDollarWithdrawal returns the inflation-adjusted constant dollar
// withdrawal for a year: the "4% rule" (Bengen, 1994) withdraws a fixed
// real amount, bumped by inflation each year. Year 0 returns the initial
// amount exactly.
func ConstantDollarWithdrawal(initialWithdrawal float64, year int, inflationRate float64) float64 {
	return initialWithdrawal * math.Pow(1.0+inflationRate, float64(year))
}

// ConstantPercentageRate returns the fixed fraction of the current
// portfolio withdrawn each year under the constant-percentage policy.
// The rate is the initial withdrawal over the initial portfolio; a
// non-positive initial portfolio falls back to 4%. Because the
// withdrawal is a fraction of whatever remains, the policy can never
// deplete the portfolio to a negative value.
func ConstantPercentageRate(initialWithdrawal, initialPortfolio float64) float64 {
	if initialPortfolio <= 0 {
		return 0.04
	}
	return initialWithdrawal / initialPortfolio
}

// GuytonKlingerWithdrawal computes a withdrawal under the Guyton-Klinger
// guardrail rules. Year 0 returns the initial amount. Later years start
// from the inflation-adjusted base and apply, in order:
//
//  1. Inflation rule: skip this year's inflation bump (use the prior
//     year's nominal withdrawal) if the portfolio declined and the
//     current withdrawal rate already exceeds the initial rate.
//  2. Capital preservation rule: cut the withdrawal 10% if the rate
//     exceeds 120% of the initial rate.
//  3. Prosperity rule: raise the withdrawal 10% if the rate falls below
//     80% of the initial rate.
//
// The rules are evaluated sequentially against the running withdrawal;
// the rate is not recomputed after a cut or raise.
func GuytonKlingerWithdrawal(initialWithdrawal float64, year int, inflationRate, portfolioValue, previousPortfolioValue float64) float64 {
	if year == 0 {
		return initialWithdrawal
	}

	withdrawal := ConstantDollarWithdrawal(initialWithdrawal, year, inflationRate)
	initialRate := initialWithdrawal / previousPortfolioValue

	portfolioDeclined := portfolioValue < previousPortfolioValue
	currentRate := withdrawal / portfolioValue
	if portfolioDeclined && currentRate > initialRate {
		withdrawal = ConstantDollarWithdrawal(initialWithdrawal, year-1, inflationRate)
		currentRate = withdrawal / portfolioValue
	}

	if currentRate > initialRate*gkCeilingMultiplier {
		withdrawal *= 1.0 - gkAdjustment
	}
	if currentRate < initialRate*gkFloorMultiplier {
		withdrawal *= 1.0 + gkAdjustment
	}

	return withdrawal
}
