package rpc

import (
	"encoding/json"

	"github.com/portfolioos/sidecar/internal/rpc/request"
	"github.com/portfolioos/sidecar/internal/simulation"
	"github.com/portfolioos/sidecar/internal/validation"
)

// applyDefaults resolves optional simulation knobs against configured
// defaults, returning the effective trial count, horizon, and inflation.
func (d *Dispatcher) applyDefaults(req request.Simulation) (nTrials, nYears int, inflation float64) {
	nTrials = d.cfg.Simulation.DefaultTrials
	if req.NTrials != nil {
		nTrials = *req.NTrials
	}
	nYears = d.cfg.Simulation.DefaultYears
	if req.NYears != nil {
		nYears = *req.NYears
	}
	inflation = d.cfg.Simulation.DefaultInflation
	if req.InflationRate != nil {
		inflation = *req.InflationRate
	}
	return nTrials, nYears, inflation
}

// runSimulation handles simulation.run: a Monte Carlo survival run under
// constant-dollar withdrawals.
func (d *Dispatcher) runSimulation(params json.RawMessage) (any, error) {
	req, err := parseParams[request.Simulation](params)
	if err != nil {
		return nil, err
	}

	nTrials, nYears, inflation := d.applyDefaults(req)
	if err := validation.ValidateSimulation(req, nTrials, nYears, d.cfg.Simulation.MaxTrials); err != nil {
		return nil, err
	}

	return simulation.Run(
		req.InitialPortfolio,
		req.AnnualWithdrawal,
		req.ReturnDistribution,
		nTrials,
		nYears,
		inflation,
		req.Seed,
	)
}

// runScenario handles simulation.scenario: strategy selection plus life
// events on top of the base engine.
func (d *Dispatcher) runScenario(params json.RawMessage) (any, error) {
	req, err := parseParams[request.Scenario](params)
	if err != nil {
		return nil, err
	}

	cfg, err := d.scenarioConfig(req)
	if err != nil {
		return nil, err
	}
	return simulation.RunScenario(cfg)
}

// runSensitivity handles simulation.sensitivity: one scenario run per
// candidate value of the varied parameter.
func (d *Dispatcher) runSensitivity(params json.RawMessage) (any, error) {
	req, err := parseParams[request.Sensitivity](params)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateSensitivity(req); err != nil {
		return nil, err
	}

	cfg, err := d.scenarioConfig(req.Scenario)
	if err != nil {
		return nil, err
	}
	return simulation.SensitivityAnalysis(cfg, simulation.SweepParam(req.VaryParam), req.Values)
}

// scenarioConfig validates a scenario request and assembles the engine
// configuration.
func (d *Dispatcher) scenarioConfig(req request.Scenario) (simulation.ScenarioConfig, error) {
	nTrials, nYears, inflation := d.applyDefaults(req.Simulation)
	if err := validation.ValidateSimulation(req.Simulation, nTrials, nYears, d.cfg.Simulation.MaxTrials); err != nil {
		return simulation.ScenarioConfig{}, err
	}

	strategy, err := simulation.ParseStrategy(req.WithdrawalStrategy)
	if err != nil {
		return simulation.ScenarioConfig{}, err
	}

	return simulation.ScenarioConfig{
		InitialPortfolio:   req.InitialPortfolio,
		AnnualWithdrawal:   req.AnnualWithdrawal,
		ReturnDistribution: req.ReturnDistribution,
		Strategy:           strategy,
		LifeEvents:         req.LifeEvents,
		InflationRate:      inflation,
		NTrials:            nTrials,
		NYears:             nYears,
		Seed:               req.Seed,
	}, nil
}
