package rpc

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/portfolioos/sidecar/internal/export"
	"github.com/portfolioos/sidecar/internal/ingest"
	"github.com/portfolioos/sidecar/internal/rpc/request"
)

// contentResponse wraps a rendered document so exports stay line-safe
// inside the newline-delimited protocol.
type contentResponse struct {
	Content string `json:"content"`
}

// importCSV handles ingest.csv.
func (d *Dispatcher) importCSV(params json.RawMessage) (any, error) {
	req, err := parseParams[request.ImportCSV](params)
	if err != nil {
		return nil, err
	}
	return ingest.ParseCSV(strings.NewReader(req.Content), req.AccountID)
}

// exportHoldingsCSV handles export.holdings_csv.
func (d *Dispatcher) exportHoldingsCSV(params json.RawMessage) (any, error) {
	req, err := parseParams[request.ExportHoldings](params)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.WriteHoldingsCSV(&buf, req.Holdings); err != nil {
		return nil, err
	}
	return contentResponse{Content: buf.String()}, nil
}

// exportTransactionsCSV handles export.transactions_csv.
func (d *Dispatcher) exportTransactionsCSV(params json.RawMessage) (any, error) {
	req, err := parseParams[request.ExportTransactions](params)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.WriteTransactionsCSV(&buf, req.Transactions); err != nil {
		return nil, err
	}
	return contentResponse{Content: buf.String()}, nil
}

// exportJSON handles export.json.
func (d *Dispatcher) exportJSON(params json.RawMessage) (any, error) {
	req, err := parseParams[request.ExportJSON](params)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.WriteJSON(&buf, req.Holdings, req.Transactions, req.Snapshots); err != nil {
		return nil, err
	}
	return contentResponse{Content: buf.String()}, nil
}
