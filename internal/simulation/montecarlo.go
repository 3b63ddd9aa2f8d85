package simulation

import (
	"github.com/portfolioos/sidecar/internal/analysis"
)

// percentileLevels are the per-year percentile bands reported by every
// simulation result.
var percentileLevels = []int{5, 25, 50, 75, 95}

// Result is the outcome of a simulation run.
//
// PortfolioValues has one row per trial and n_years+1 columns (year 0 is
// the initial portfolio). Percentiles maps each level to a path computed
// independently per year-column across trials, not a path through any
// single trial. SuccessRate is the fraction of trials whose final
// value is strictly positive.
type Result struct {
	PortfolioValues  [][]float64       `json:"portfolio_values"`
	SuccessRate      float64           `json:"success_rate"`
	Percentiles      map[int][]float64 `json:"percentiles"`
	MedianFinalValue float64           `json:"median_final_value"`
	Strategy         Strategy          `json:"strategy,omitempty"`
}

// Run performs a Monte Carlo survival simulation under constant-dollar
// withdrawals: bootstrap an (nTrials, nYears) return matrix, then for
// each year grow every trial by its sampled return, subtract the
// inflation-adjusted withdrawal, and floor at zero; an exhausted
// portfolio cannot go negative.
//
// The year loop has a sequential data dependency (each year consumes the
// prior year's values); the per-trial work within a year has none.
// Results are bit-reproducible for a given seed.
func Run(initialPortfolio, annualWithdrawal float64, returnDistribution []float64, nTrials, nYears int, inflationRate float64, seed *int64) (*Result, error) {
	returns, err := analysis.BootstrapReturns(returnDistribution, nTrials, nYears, seed)
	if err != nil {
		return nil, err
	}

	// Withdrawals depend only on the year under constant-dollar policy,
	// so they can be precomputed.
	withdrawals := make([]float64, nYears)
	for yr := range withdrawals {
		withdrawals[yr] = ConstantDollarWithdrawal(annualWithdrawal, yr, inflationRate)
	}

	portfolio := newPaths(nTrials, nYears, initialPortfolio)
	for yr := 0; yr < nYears; yr++ {
		for trial := 0; trial < nTrials; trial++ {
			grown := portfolio[trial][yr] * (1.0 + returns[trial][yr])
			portfolio[trial][yr+1] = max(grown-withdrawals[yr], 0.0)
		}
	}

	result := summarize(portfolio, nTrials, nYears)
	return result, nil
}

// newPaths allocates the (nTrials, nYears+1) path matrix with year 0 set
// to the initial portfolio value.
func newPaths(nTrials, nYears int, initialPortfolio float64) [][]float64 {
	portfolio := make([][]float64, nTrials)
	for i := range portfolio {
		portfolio[i] = make([]float64, nYears+1)
		portfolio[i][0] = initialPortfolio
	}
	return portfolio
}

// summarize derives the success rate, per-year percentile bands, and
// median final value from completed paths.
func summarize(portfolio [][]float64, nTrials, nYears int) *Result {
	survived := 0
	finals := make([]float64, nTrials)
	for trial := range portfolio {
		final := portfolio[trial][nYears]
		finals[trial] = final
		if final > 0 {
			survived++
		}
	}
	successRate := 0.0
	if nTrials > 0 {
		successRate = float64(survived) / float64(nTrials)
	}

	percentiles := make(map[int][]float64, len(percentileLevels))
	column := make([]float64, nTrials)
	for _, level := range percentileLevels {
		path := make([]float64, nYears+1)
		for yr := 0; yr <= nYears; yr++ {
			for trial := range portfolio {
				column[trial] = portfolio[trial][yr]
			}
			path[yr] = analysis.Percentile(column, float64(level))
		}
		percentiles[level] = path
	}

	return &Result{
		PortfolioValues:  portfolio,
		SuccessRate:      successRate,
		Percentiles:      percentiles,
		MedianFinalValue: analysis.Median(finals),
	}
}
