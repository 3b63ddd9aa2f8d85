package apperrors

import "errors"

// Input-contract errors represent synchronous validation failures in the
// compute core. There is no I/O behind any of these calls, so none of them
// carry retry semantics: the caller supplied a value the core cannot accept.
var (
	// ErrInsufficientShares indicates that a sell requests more shares
	// than the tracker currently holds across all lots.
	ErrInsufficientShares = errors.New("insufficient shares for sale")

	// ErrInsufficientLotShares indicates that the lots named in a
	// specific-identification sale collectively hold fewer shares than
	// requested, even when other lots in the tracker could cover it.
	ErrInsufficientLotShares = errors.New("insufficient shares in specified lots")

	// ErrUnknownCostBasisMethod indicates an unrecognized disposal method name.
	ErrUnknownCostBasisMethod = errors.New("unknown cost basis method")

	// ErrLotNotFound indicates that a lot ID named in a specific-identification
	// sale does not exist in the tracker.
	ErrLotNotFound = errors.New("lot not found")

	// ErrLotIDsRequired indicates a specific-identification sale without lot IDs.
	ErrLotIDsRequired = errors.New("lot_ids required for specific_id method")

	// ErrEmptyReturnDistribution indicates that the historical return series
	// supplied for bootstrapping contains no observations.
	ErrEmptyReturnDistribution = errors.New("return distribution must not be empty")

	// ErrUnsupportedVaryParam indicates an unrecognized sensitivity-sweep parameter.
	ErrUnsupportedVaryParam = errors.New("unsupported vary_param")

	// ErrInvalidSweepValue indicates a sensitivity-sweep candidate value
	// outside the varied parameter's valid range.
	ErrInvalidSweepValue = errors.New("invalid sweep value")

	// ErrUnknownStrategy indicates an unrecognized withdrawal strategy name.
	ErrUnknownStrategy = errors.New("unknown withdrawal strategy")

	// ErrUnsupportedFrequency indicates an unrecognized gap-detection frequency.
	ErrUnsupportedFrequency = errors.New("unsupported frequency")
)

// Request and protocol errors surface at the RPC dispatch boundary.
var (
	// ErrUnknownMethod indicates that a request named a method the
	// dispatcher does not know.
	ErrUnknownMethod = errors.New("unknown method")

	// ErrInvalidParams indicates that request parameters could not be
	// decoded into the expected shape.
	ErrInvalidParams = errors.New("invalid parameters")

	// ErrInvalidCSVHeaders indicates that a CSV import is missing
	// required columns.
	ErrInvalidCSVHeaders = errors.New("invalid CSV headers")

	// ErrInvalidDate indicates a date that is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date")
)
