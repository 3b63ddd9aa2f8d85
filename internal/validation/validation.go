// Package validation checks RPC request payloads before they reach the
// compute core. Each validator aggregates per-field messages into a
// single Error so the host sees every problem at once.
package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Error aggregates field-level validation failures.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(msgs, "; ")
}
