package model

// Holding is a derived position for one (account, symbol) pair. Holdings
// only exist while shares remain above the dust threshold used during
// reconciliation; fully disposed symbols vanish from the holdings list.
type Holding struct {
	AccountID    string  `json:"account_id"`
	Symbol       string  `json:"symbol"`
	AssetType    string  `json:"asset_type,omitempty"`
	Shares       float64 `json:"shares"`
	CostBasis    float64 `json:"cost_basis"`
	RealizedGain float64 `json:"realized_gain"`
}

// Discrepancy fields reported by reconciliation against stored holdings.
const (
	DiscrepancyExistence = "existence"
	DiscrepancyShares    = "shares"
	DiscrepancyCostBasis = "cost_basis"
)

// Discrepancy records a single field mismatch between a computed holding
// and a stored holding. For existence mismatches the values are the
// strings "present" and "missing"; otherwise both numeric values are
// carried so the caller can show the delta.
type Discrepancy struct {
	AccountID     string `json:"account_id"`
	Symbol        string `json:"symbol"`
	Field         string `json:"field"`
	ComputedValue any    `json:"computed_value"`
	StoredValue   any    `json:"stored_value"`
}
