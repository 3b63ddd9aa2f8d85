package export

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/portfolioos/sidecar/internal/analysis"
	"github.com/portfolioos/sidecar/internal/model"
	"github.com/portfolioos/sidecar/internal/testutil"
)

func TestWriteJSON(t *testing.T) {
	t.Run("full bundle carries counts for every section", func(t *testing.T) {
		holdings := []model.Holding{testutil.NewHolding().Build()}
		transactions := []model.Transaction{testutil.NewTransaction().Build()}
		snapshots := []analysis.ValueSnapshot{{Date: model.NewDate(2024, time.January, 1), TotalValue: 1000}}

		var buf bytes.Buffer
		if err := WriteJSON(&buf, holdings, transactions, snapshots); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		var decoded Bundle
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("Expected valid JSON, got %v", err)
		}

		if decoded.Metadata.FormatVersion != "1.0" {
			t.Errorf("Expected format version 1.0, got '%s'", decoded.Metadata.FormatVersion)
		}
		if decoded.Metadata.Source != "PortfolioOS" {
			t.Errorf("Expected source PortfolioOS, got '%s'", decoded.Metadata.Source)
		}
		if decoded.Metadata.HoldingsCount == nil || *decoded.Metadata.HoldingsCount != 1 {
			t.Errorf("Expected holdings count 1, got %v", decoded.Metadata.HoldingsCount)
		}
		if decoded.Metadata.TransactionsCount == nil || *decoded.Metadata.TransactionsCount != 1 {
			t.Errorf("Expected transactions count 1, got %v", decoded.Metadata.TransactionsCount)
		}
		if decoded.Metadata.SnapshotsCount == nil || *decoded.Metadata.SnapshotsCount != 1 {
			t.Errorf("Expected snapshots count 1, got %v", decoded.Metadata.SnapshotsCount)
		}
		if len(decoded.Holdings) != 1 || len(decoded.Transactions) != 1 || len(decoded.Snapshots) != 1 {
			t.Error("Expected every section round-tripped")
		}
	})

	t.Run("nil sections are omitted from the metadata", func(t *testing.T) {
		holdings := []model.Holding{testutil.NewHolding().Build()}

		var buf bytes.Buffer
		if err := WriteJSON(&buf, holdings, nil, nil); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		var raw map[string]json.RawMessage
		if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
			t.Fatalf("Expected valid JSON, got %v", err)
		}
		if _, ok := raw["transactions"]; ok {
			t.Error("Expected the transactions section omitted")
		}

		var decoded Bundle
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("Expected valid JSON, got %v", err)
		}
		if decoded.Metadata.TransactionsCount != nil {
			t.Errorf("Expected no transactions count, got %v", decoded.Metadata.TransactionsCount)
		}
		if decoded.Metadata.HoldingsCount == nil {
			t.Error("Expected a holdings count")
		}
	})
}
