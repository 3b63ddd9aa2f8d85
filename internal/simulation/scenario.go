package simulation

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/portfolioos/sidecar/internal/analysis"
	"github.com/portfolioos/sidecar/internal/apperrors"
)

// Strategy selects the withdrawal policy for a scenario run.
type Strategy string

// Supported withdrawal strategies.
const (
	ConstantDollar     Strategy = "constant_dollar"
	ConstantPercentage Strategy = "constant_percentage"
	GuytonKlinger      Strategy = "guyton_klinger"
)

// ParseStrategy validates a withdrawal strategy name. The empty string
// defaults to constant-dollar.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case ConstantDollar, ConstantPercentage, GuytonKlinger:
		return Strategy(s), nil
	case "":
		return ConstantDollar, nil
	default:
		return "", fmt.Errorf("%w: %q (use constant_dollar, constant_percentage, or guyton_klinger)",
			apperrors.ErrUnknownStrategy, s)
	}
}

// Life event types.
const (
	EventExpense           = "expense"
	EventIncomeChange      = "income_change"
	EventWindfall          = "windfall"
	EventSavingsRateChange = "savings_rate_change"
)

// LifeEvent is a one-time financial event applied at a simulation year.
// Windfalls and income changes add to the portfolio, expenses subtract.
// savings_rate_change is accepted as input but has no direct one-time
// effect; it is reserved for a future contribution model.
type LifeEvent struct {
	Year   int     `json:"year"`
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
}

// ScenarioConfig describes one scenario-based simulation run.
type ScenarioConfig struct {
	InitialPortfolio   float64
	AnnualWithdrawal   float64
	ReturnDistribution []float64
	Strategy           Strategy
	LifeEvents         []LifeEvent
	InflationRate      float64
	NTrials            int
	NYears             int
	Seed               *int64
}

// SweepParam names a parameter that a sensitivity sweep can vary.
type SweepParam string

// Parameters accepted by SensitivityAnalysis.
const (
	VaryWithdrawalRate SweepParam = "withdrawal_rate"
	VaryInflationRate  SweepParam = "inflation_rate"
	VaryYears          SweepParam = "n_years"
)

// SweepResult is one point of a sensitivity sweep.
type SweepResult struct {
	ParamName        SweepParam `json:"param_name"`
	ParamValue       float64    `json:"param_value"`
	SuccessRate      float64    `json:"success_rate"`
	MedianFinalValue float64    `json:"median_final_value"`
}

// RunScenario runs a Monte Carlo simulation with a selectable withdrawal
// strategy and life events. Each year every trial grows by its sampled
// return, pays that trial's withdrawal, absorbs the year's net life-event
// adjustment, and floors at zero.
func RunScenario(cfg ScenarioConfig) (*Result, error) {
	if _, err := ParseStrategy(string(cfg.Strategy)); err != nil {
		return nil, err
	}

	returns, err := analysis.BootstrapReturns(cfg.ReturnDistribution, cfg.NTrials, cfg.NYears, cfg.Seed)
	if err != nil {
		return nil, err
	}

	eventsByYear := make(map[int][]LifeEvent)
	for _, event := range cfg.LifeEvents {
		eventsByYear[event.Year] = append(eventsByYear[event.Year], event)
	}

	portfolio := newPaths(cfg.NTrials, cfg.NYears, cfg.InitialPortfolio)
	withdrawals := make([]float64, cfg.NTrials)

	for yr := 0; yr < cfg.NYears; yr++ {
		prevYr := max(yr-1, 0)
		computeWithdrawals(cfg, yr, portfolio, prevYr, withdrawals)
		adjustment := eventAdjustment(eventsByYear[yr])

		for trial := 0; trial < cfg.NTrials; trial++ {
			grown := portfolio[trial][yr] * (1.0 + returns[trial][yr])
			portfolio[trial][yr+1] = max(grown-withdrawals[trial]+adjustment, 0.0)
		}
	}

	result := summarize(portfolio, cfg.NTrials, cfg.NYears)
	result.Strategy = cfg.Strategy
	if result.Strategy == "" {
		result.Strategy = ConstantDollar
	}
	return result, nil
}

// computeWithdrawals fills withdrawals with each trial's amount for the
// given year. Constant-dollar amounts are identical across trials;
// constant-percentage and guardrail policies depend on per-trial values.
// Guardrail inputs are clamped to at least $1 so that withdrawal rates
// stay defined for exhausted trials.
func computeWithdrawals(cfg ScenarioConfig, yr int, portfolio [][]float64, prevYr int, withdrawals []float64) {
	switch cfg.Strategy {
	case ConstantPercentage:
		rate := ConstantPercentageRate(cfg.AnnualWithdrawal, cfg.InitialPortfolio)
		for trial := range withdrawals {
			withdrawals[trial] = portfolio[trial][yr] * rate
		}
	case GuytonKlinger:
		for trial := range withdrawals {
			withdrawals[trial] = GuytonKlingerWithdrawal(
				cfg.AnnualWithdrawal,
				yr,
				cfg.InflationRate,
				max(portfolio[trial][yr], 1.0),
				max(portfolio[trial][prevYr], 1.0),
			)
		}
	default:
		amount := ConstantDollarWithdrawal(cfg.AnnualWithdrawal, yr, cfg.InflationRate)
		for trial := range withdrawals {
			withdrawals[trial] = amount
		}
	}
}

// eventAdjustment nets the year's life events into one dollar adjustment.
func eventAdjustment(events []LifeEvent) float64 {
	var adjustment float64
	for _, event := range events {
		switch event.Type {
		case EventWindfall, EventIncomeChange:
			adjustment += event.Amount
		case EventExpense:
			adjustment -= event.Amount
		case EventSavingsRateChange:
			// Reserved for the contribution model; no one-time effect.
		}
	}
	return adjustment
}

// SensitivityAnalysis re-runs the scenario once per candidate value of a
// single parameter and reports success rate and median final value for
// each. Runs are independent and share the base seed, so each point is
// reproducible in isolation; they execute concurrently.
func SensitivityAnalysis(cfg ScenarioConfig, varyParam SweepParam, values []float64) ([]SweepResult, error) {
	switch varyParam {
	case VaryWithdrawalRate, VaryInflationRate, VaryYears:
	default:
		return nil, fmt.Errorf("%w: %q (use withdrawal_rate, inflation_rate, or n_years)",
			apperrors.ErrUnsupportedVaryParam, varyParam)
	}

	results := make([]SweepResult, len(values))
	var g errgroup.Group

	for i, value := range values {
		i, value := i, value
		runCfg := cfg
		switch varyParam {
		case VaryWithdrawalRate:
			runCfg.AnnualWithdrawal = cfg.InitialPortfolio * value
		case VaryInflationRate:
			runCfg.InflationRate = value
		case VaryYears:
			nYears := int(value)
			if nYears < 1 {
				return nil, fmt.Errorf("%w: n_years candidate %v must be a positive year count",
					apperrors.ErrInvalidSweepValue, value)
			}
			runCfg.NYears = nYears
		}

		g.Go(func() error {
			result, err := RunScenario(runCfg)
			if err != nil {
				return err
			}
			results[i] = SweepResult{
				ParamName:        varyParam,
				ParamValue:       value,
				SuccessRate:      result.SuccessRate,
				MedianFinalValue: result.MedianFinalValue,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
