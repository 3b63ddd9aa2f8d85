package validation

import (
	"github.com/portfolioos/sidecar/internal/rpc/request"
)

// ValidateAddBuy validates a costbasis.add_buy request.
//
// Checked fields:
//   - date: required
//   - quantity: must be positive
//   - price: must be non-negative
//   - fees: must be non-negative
func ValidateAddBuy(req request.AddBuy) error {
	errors := make(map[string]string)

	if req.Date.IsZero() {
		errors["date"] = "date is required"
	}
	if req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}
	if req.Price < 0 {
		errors["price"] = "price must be non-negative"
	}
	if req.Fees < 0 {
		errors["fees"] = "fees must be non-negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateSell validates a costbasis.sell request. The method name and
// lot availability are validated by the tracker itself.
func ValidateSell(req request.Sell) error {
	errors := make(map[string]string)

	if req.Date.IsZero() {
		errors["date"] = "date is required"
	}
	if req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	}
	if req.Price < 0 {
		errors["price"] = "price must be non-negative"
	}
	if req.Fees < 0 {
		errors["fees"] = "fees must be non-negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUnrealizedGains validates a costbasis.unrealized_gains request.
func ValidateUnrealizedGains(req request.UnrealizedGains) error {
	errors := make(map[string]string)

	if req.CurrentPrice < 0 {
		errors["current_price"] = "current_price must be non-negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
