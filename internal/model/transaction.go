package model

// Transaction types understood by the reconciliation replay.
const (
	TransactionBuy      = "buy"
	TransactionSell     = "sell"
	TransactionSplit    = "split"
	TransactionDividend = "dividend"
	TransactionTransfer = "transfer"
)

// Transaction represents one row of a brokerage transaction ledger.
// Transactions are plain records supplied by external collaborators
// (CSV import, the host application); the core never persists them.
//
// For split transactions, Quantity carries the split ratio
// (e.g. 2.0 for a 2:1 split) and Price is unused.
type Transaction struct {
	ID        string  `json:"id,omitempty"`
	AccountID string  `json:"account_id"`
	Symbol    string  `json:"symbol"`
	Type      string  `json:"type"`
	Date      Date    `json:"date"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	Fees      float64 `json:"fees"`
	Notes     string  `json:"notes,omitempty"`
}
