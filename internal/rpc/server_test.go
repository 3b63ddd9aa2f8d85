package rpc

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// runServer feeds input through a server and decodes one response per
// output line.
func runServer(t *testing.T, input string) []Response {
	t.Helper()

	var out bytes.Buffer
	server := NewServer(newTestDispatcher(), strings.NewReader(input), &out)
	if err := server.Run(); err != nil {
		t.Fatalf("Expected no error from the message loop, got %v", err)
	}

	var responses []Response
	decoder := json.NewDecoder(&out)
	for decoder.More() {
		var resp Response
		if err := decoder.Decode(&resp); err != nil {
			t.Fatalf("Expected a decodable response line, got %v", err)
		}
		responses = append(responses, resp)
	}
	return responses
}

//nolint:gocyclo // Test functions naturally have high complexity due to many test cases
func TestServerRun(t *testing.T) {
	t.Run("one response per request until EOF", func(t *testing.T) {
		input := `{"id": "1", "method": "system.health"}` + "\n" +
			`{"id": "2", "method": "system.health"}` + "\n"

		responses := runServer(t, input)

		if len(responses) != 2 {
			t.Fatalf("Expected 2 responses, got %d", len(responses))
		}
		if responses[0].ID != "1" || responses[1].ID != "2" {
			t.Errorf("Expected ids 1 and 2, got '%s' and '%s'", responses[0].ID, responses[1].ID)
		}
		if responses[0].Error != nil {
			t.Errorf("Expected no error, got %v", responses[0].Error)
		}
	})

	t.Run("blank lines are skipped", func(t *testing.T) {
		input := "\n   \n" + `{"id": "1", "method": "system.health"}` + "\n\n"

		responses := runServer(t, input)

		if len(responses) != 1 {
			t.Errorf("Expected 1 response, got %d", len(responses))
		}
	})

	t.Run("malformed request answers with id unknown", func(t *testing.T) {
		responses := runServer(t, "{not json}\n")

		if len(responses) != 1 {
			t.Fatalf("Expected 1 response, got %d", len(responses))
		}
		if responses[0].ID != "unknown" {
			t.Errorf("Expected id 'unknown', got '%s'", responses[0].ID)
		}
		if responses[0].Error == nil || responses[0].Error.Message == "" {
			t.Error("Expected an error message")
		}
	})

	t.Run("missing id answers with id unknown", func(t *testing.T) {
		responses := runServer(t, `{"method": "system.health"}`+"\n")

		if len(responses) != 1 {
			t.Fatalf("Expected 1 response, got %d", len(responses))
		}
		if responses[0].ID != "unknown" {
			t.Errorf("Expected id 'unknown', got '%s'", responses[0].ID)
		}
		if responses[0].Error != nil {
			t.Errorf("Expected the request to still succeed, got %v", responses[0].Error)
		}
	})

	t.Run("unknown method keeps the request id", func(t *testing.T) {
		responses := runServer(t, `{"id": "7", "method": "nope.method"}`+"\n")

		if len(responses) != 1 {
			t.Fatalf("Expected 1 response, got %d", len(responses))
		}
		if responses[0].ID != "7" {
			t.Errorf("Expected id '7', got '%s'", responses[0].ID)
		}
		if responses[0].Error == nil {
			t.Fatal("Expected an error body")
		}
		if !strings.Contains(responses[0].Error.Message, "nope.method") {
			t.Errorf("Expected the method in the message, got '%s'", responses[0].Error.Message)
		}
	})

	t.Run("a failed request does not stop the loop", func(t *testing.T) {
		input := `{"id": "1", "method": "nope.method"}` + "\n" +
			`{"id": "2", "method": "system.health"}` + "\n"

		responses := runServer(t, input)

		if len(responses) != 2 {
			t.Fatalf("Expected 2 responses, got %d", len(responses))
		}
		if responses[0].Error == nil {
			t.Error("Expected the first request to fail")
		}
		if responses[1].Error != nil {
			t.Errorf("Expected the second request to succeed, got %v", responses[1].Error)
		}
	})

	t.Run("results round trip as JSON", func(t *testing.T) {
		input := `{"id": "1", "method": "system.health"}` + "\n"

		responses := runServer(t, input)

		body, ok := responses[0].Result.(map[string]any)
		if !ok {
			t.Fatalf("Expected a JSON object result, got %T", responses[0].Result)
		}
		if body["status"] != "ok" {
			t.Errorf("Expected status 'ok', got %v", body["status"])
		}
		if body["version"] != "test" {
			t.Errorf("Expected version 'test', got %v", body["version"])
		}
	})
}
