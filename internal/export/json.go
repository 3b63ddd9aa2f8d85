package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/portfolioos/sidecar/internal/analysis"
	"github.com/portfolioos/sidecar/internal/model"
)

// formatVersion identifies the JSON export schema for downstream readers.
const formatVersion = "1.0"

// Bundle is the full JSON export payload. Nil sections are omitted.
type Bundle struct {
	Metadata     Metadata                 `json:"metadata"`
	Holdings     []model.Holding          `json:"holdings,omitempty"`
	Transactions []model.Transaction      `json:"transactions,omitempty"`
	Snapshots    []analysis.ValueSnapshot `json:"snapshots,omitempty"`
}

// Metadata describes an export bundle: when it was produced, by what,
// and how many records each section carries.
type Metadata struct {
	ExportDate        string `json:"export_date"`
	FormatVersion     string `json:"format_version"`
	Source            string `json:"source"`
	HoldingsCount     *int   `json:"holdings_count,omitempty"`
	TransactionsCount *int   `json:"transactions_count,omitempty"`
	SnapshotsCount    *int   `json:"snapshots_count,omitempty"`
}

// WriteJSON renders a portfolio export bundle as indented JSON. Sections
// are counted in the metadata only when non-nil, so callers can export
// any subset of the portfolio.
func WriteJSON(w io.Writer, holdings []model.Holding, transactions []model.Transaction, snapshots []analysis.ValueSnapshot) error {
	bundle := Bundle{
		Metadata: Metadata{
			ExportDate:    time.Now().UTC().Format(time.RFC3339),
			FormatVersion: formatVersion,
			Source:        "PortfolioOS",
		},
		Holdings:     holdings,
		Transactions: transactions,
		Snapshots:    snapshots,
	}

	if holdings != nil {
		bundle.Metadata.HoldingsCount = count(len(holdings))
	}
	if transactions != nil {
		bundle.Metadata.TransactionsCount = count(len(transactions))
	}
	if snapshots != nil {
		bundle.Metadata.SnapshotsCount = count(len(snapshots))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(bundle)
}

func count(n int) *int {
	return &n
}
