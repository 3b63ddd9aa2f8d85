// Package rpc implements the sidecar's process-boundary interface:
// newline-delimited JSON requests on stdin, responses on stdout.
//
//	Request:  {"id": "...", "method": "ns.name", "params": {...}}
//	Response: {"id": "...", "result": ...}
//	Error:    {"id": "...", "error": {"message": "..."}}
package rpc

import "encoding/json"

// Request is one incoming message. Params stay raw until the dispatched
// handler decodes them into its own payload type.
type Request struct {
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// Response is one outgoing message. Exactly one of Result and Error is set.
type Response struct {
	ID     string     `json:"id"`
	Result any        `json:"result,omitempty"`
	Error  *ErrorBody `json:"error,omitempty"`
}

// ErrorBody carries a failure message back to the host.
type ErrorBody struct {
	Message string `json:"message"`
}

// errorResponse builds a Response for a failed request.
func errorResponse(id string, err error) Response {
	return Response{ID: id, Error: &ErrorBody{Message: err.Error()}}
}
