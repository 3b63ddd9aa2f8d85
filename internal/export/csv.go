// Package export renders holdings, transactions, and simulation results
// to CSV and JSON. Writers target io.Writer; the caller owns all file
// and transport concerns.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/portfolioos/sidecar/internal/model"
)

// writeMetadataHeader prefixes an export with comment rows naming the
// export and its timestamp, matching the header the desktop app expects.
func writeMetadataHeader(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w, "# %s\n# Exported: %s\n",
		title, time.Now().UTC().Format(time.RFC3339))
	return err
}

// WriteHoldingsCSV renders holdings as CSV with a metadata header.
func WriteHoldingsCSV(w io.Writer, holdings []model.Holding) error {
	if err := writeMetadataHeader(w, "Holdings Export"); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"account_id", "symbol", "asset_type", "shares", "cost_basis"}); err != nil {
		return err
	}
	for _, h := range holdings {
		record := []string{
			h.AccountID,
			h.Symbol,
			h.AssetType,
			formatFloat(h.Shares),
			formatFloat(h.CostBasis),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTransactionsCSV renders ledger transactions as CSV with a
// metadata header.
func WriteTransactionsCSV(w io.Writer, transactions []model.Transaction) error {
	if err := writeMetadataHeader(w, "Transactions Export"); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"account_id", "symbol", "type", "date", "quantity", "price", "fees", "notes"}); err != nil {
		return err
	}
	for _, t := range transactions {
		record := []string{
			t.AccountID,
			t.Symbol,
			t.Type,
			t.Date.String(),
			formatFloat(t.Quantity),
			formatFloat(t.Price),
			formatFloat(t.Fees),
			t.Notes,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
