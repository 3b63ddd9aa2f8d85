package validation

import (
	"fmt"

	"github.com/portfolioos/sidecar/internal/rpc/request"
)

// ValidateSimulation validates a simulation request after defaults have
// been applied. maxTrials bounds the memory one request can claim.
//
// Checked fields:
//   - initial_portfolio: must be non-negative
//   - annual_withdrawal: must be non-negative (zero is a valid no-spend run)
//   - n_trials: must be positive and at most maxTrials
//   - n_years: must be positive
//
// The return distribution itself is validated by the bootstrap sampler.
func ValidateSimulation(req request.Simulation, nTrials, nYears, maxTrials int) error {
	errors := make(map[string]string)

	if req.InitialPortfolio < 0 {
		errors["initial_portfolio"] = "must be non-negative"
	}
	if req.AnnualWithdrawal < 0 {
		errors["annual_withdrawal"] = "must be non-negative"
	}
	if nTrials <= 0 {
		errors["n_trials"] = "must be positive"
	} else if nTrials > maxTrials {
		errors["n_trials"] = fmt.Sprintf("must be at most %d", maxTrials)
	}
	if nYears <= 0 {
		errors["n_years"] = "must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateSensitivity validates the sweep-specific fields of a
// sensitivity request. The vary_param value itself is validated by the
// simulation engine, which owns the allowed set.
func ValidateSensitivity(req request.Sensitivity) error {
	errors := make(map[string]string)

	if len(req.Values) == 0 {
		errors["values"] = "at least one candidate value is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
