package rpc

import (
	"bufio"
	"encoding/json"
	"io"
	"log"
	"strings"
	"time"
)

// maxLineBytes bounds one request line. Return distributions and full
// transaction ledgers arrive inline, so lines can be large.
const maxLineBytes = 64 << 20

// Server runs the sidecar message loop over a reader/writer pair
// (stdin/stdout in production, buffers in tests).
type Server struct {
	dispatcher *Dispatcher
	in         io.Reader
	out        io.Writer
}

// NewServer creates a server over the given transport.
func NewServer(dispatcher *Dispatcher, in io.Reader, out io.Writer) *Server {
	return &Server{dispatcher: dispatcher, in: in, out: out}
}

// Run reads newline-delimited JSON requests until the input closes,
// dispatching each and writing one response line per request. Blank
// lines are skipped. A malformed request produces an error response
// with id "unknown" rather than stopping the loop.
func (s *Server) Run() error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	encoder := json.NewEncoder(s.out)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		response := s.handleLine(line)
		if err := encoder.Encode(response); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// handleLine decodes and dispatches one request line.
func (s *Server) handleLine(line string) Response {
	start := time.Now()

	var req Request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		log.Printf("rpc: malformed request: %v", err)
		return errorResponse("unknown", err)
	}
	if req.ID == "" {
		req.ID = "unknown"
	}

	result, err := s.dispatcher.Dispatch(req.Method, req.Params)
	log.Printf("rpc: %s %s", req.Method, time.Since(start))
	if err != nil {
		return errorResponse(req.ID, err)
	}
	return Response{ID: req.ID, Result: result}
}
