package main

import (
	"log"
	"os"

	"github.com/portfolioos/sidecar/internal/config"
	"github.com/portfolioos/sidecar/internal/rpc"
)

func main() {
	// Logs go to stderr; stdout carries only protocol responses.
	log.SetOutput(os.Stderr)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("portfolioos sidecar %s starting", cfg.Version)

	// Create dispatcher and serve requests over stdin/stdout until EOF
	dispatcher := rpc.NewDispatcher(cfg)
	server := rpc.NewServer(dispatcher, os.Stdin, os.Stdout)

	if err := server.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Printf("portfolioos sidecar shutting down")
}
