package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Checker represents dependencies that can be probed for readiness.
type Checker interface {
	PingEngine(ctx context.Context, timeout time.Duration) error
}

// Handler exposes HTTP handlers for health endpoints.
type Handler struct {
	Checker       Checker
	EngineTimeout time.Duration
}

var ready atomic.Bool

func init() {
	ready.Store(true)
}

// SetReady flips the readiness gate, used to drain traffic during shutdown.
func SetReady(v bool) {
	ready.Store(v)
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on the shutdown gate and the engine probe.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	engineStatus := "ok"
	if !ready.Load() {
		engineStatus = "shutting down"
	} else if h.Checker == nil {
		engineStatus = "engine not configured"
	} else if err := h.Checker.PingEngine(r.Context(), h.engineTimeout()); err != nil {
		engineStatus = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	if engineStatus != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"engine": engineStatus})
}

func (h Handler) engineTimeout() time.Duration {
	if h.EngineTimeout <= 0 {
		return 200 * time.Millisecond
	}
	return h.EngineTimeout
}
