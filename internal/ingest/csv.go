// Package ingest parses brokerage CSV exports into normalized transaction
// records. Column names and action labels vary per brokerage, so headers
// are matched against known aliases and actions are canonicalized.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/portfolioos/sidecar/internal/apperrors"
	"github.com/portfolioos/sidecar/internal/model"
)

// columnAliases maps canonical field names to the header spellings seen
// in generic, Fidelity, and Schwab exports.
var columnAliases = map[string][]string{
	"date":     {"date", "run date", "trade date", "settlement date", "transaction date"},
	"symbol":   {"symbol", "ticker", "security", "instrument"},
	"type":     {"type", "action", "transaction type", "trans type", "activity"},
	"quantity": {"quantity", "qty", "shares", "units", "amount"},
	"price":    {"price", "unit price", "price per share", "cost per share"},
	"fees":     {"fees", "commission", "fees & comm", "fee", "commissions"},
	"notes":    {"notes", "description", "memo", "details"},
}

// actionAliases maps brokerage-specific action labels to canonical
// transaction types.
var actionAliases = map[string]string{
	"buy":               model.TransactionBuy,
	"bought":            model.TransactionBuy,
	"purchase":          model.TransactionBuy,
	"sell":              model.TransactionSell,
	"sold":              model.TransactionSell,
	"dividend":          model.TransactionDividend,
	"div":               model.TransactionDividend,
	"reinvest dividend": model.TransactionDividend,
	"split":             model.TransactionSplit,
	"stock split":       model.TransactionSplit,
	"transfer":          model.TransactionTransfer,
	"transfer in":       model.TransactionTransfer,
	"transfer out":      model.TransactionTransfer,
	"journal":           model.TransactionTransfer,
}

// ImportResult carries parsed transactions plus counts of rows the parser
// could not use.
type ImportResult struct {
	Transactions []model.Transaction `json:"transactions"`
	Skipped      int                 `json:"skipped"`
}

// ParseCSV reads a brokerage CSV export and returns normalized
// transactions for the given account. Rows missing a symbol or a
// parseable date are skipped and counted, never fatal; a header row
// without recognizable date and symbol columns fails the whole import.
// Every imported transaction is assigned a fresh UUID.
func ParseCSV(r io.Reader, accountID string) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rawHeaders, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	colMap, err := mapColumns(rawHeaders)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Transactions: []model.Transaction{}}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row: %w", err)
		}
		if isBlank(row) {
			continue
		}

		symbol := strings.ToUpper(strings.TrimSpace(cell(row, colMap, "symbol")))
		if symbol == "" {
			result.Skipped++
			continue
		}

		date, err := model.ParseDate(strings.TrimSpace(cell(row, colMap, "date")))
		if err != nil {
			result.Skipped++
			continue
		}

		txType := model.TransactionBuy
		if _, ok := colMap["type"]; ok {
			txType = normalizeAction(cell(row, colMap, "type"))
		}

		quantity := parseAmount(cell(row, colMap, "quantity"))
		price := parseAmount(cell(row, colMap, "price"))
		fees := parseAmount(cell(row, colMap, "fees"))

		result.Transactions = append(result.Transactions, model.Transaction{
			ID:        uuid.New().String(),
			AccountID: accountID,
			Symbol:    symbol,
			Type:      txType,
			Date:      date,
			Quantity:  abs(quantity),
			Price:     abs(price),
			Fees:      abs(fees),
			Notes:     strings.TrimSpace(cell(row, colMap, "notes")),
		})
	}

	return result, nil
}

// mapColumns resolves raw headers to canonical field indices. Date and
// symbol columns are required.
func mapColumns(rawHeaders []string) (map[string]int, error) {
	normalized := make([]string, len(rawHeaders))
	for i, h := range rawHeaders {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	mapping := make(map[string]int)
	for canonical, aliases := range columnAliases {
		for _, alias := range aliases {
			idx := indexOf(normalized, alias)
			if idx >= 0 {
				mapping[canonical] = idx
				break
			}
		}
	}

	var missing []string
	for _, required := range []string{"date", "symbol"} {
		if _, ok := mapping[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: required columns not found: %v (available: %v)",
			apperrors.ErrInvalidCSVHeaders, missing, rawHeaders)
	}
	return mapping, nil
}

// normalizeAction canonicalizes a brokerage action label. Unknown labels
// pass through lowercased so the reconciliation replay can ignore them.
func normalizeAction(raw string) string {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := actionAliases[cleaned]; ok {
		return canonical
	}
	return cleaned
}

// parseAmount parses a money or quantity cell, tolerating currency
// symbols, thousands separators, and parenthesized negatives.
// Unparseable cells default to zero.
func parseAmount(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	replacer := strings.NewReplacer("$", "", ",", "", "(", "-", ")", "")
	cleaned = replacer.Replace(cleaned)

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

func cell(row []string, colMap map[string]int, field string) string {
	idx, ok := colMap[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
