package rpc

import (
	"encoding/json"
	"runtime"
)

// healthResponse reports the sidecar's liveness and build identity.
type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
}

// systemHealth handles system.health.
func (d *Dispatcher) systemHealth(_ json.RawMessage) (any, error) {
	return healthResponse{
		Status:    "ok",
		Version:   d.cfg.Version,
		GoVersion: runtime.Version(),
	}, nil
}
