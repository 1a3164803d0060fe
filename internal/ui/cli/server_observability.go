package cli

import (
	"context"
	"doctypes/internal/core/ports"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type healthStatus struct {
	Status     string    `json:"status"`
	LastRunID  string    `json:"last_run_id,omitempty"`
	LastScanAt time.Time `json:"last_scan_at,omitempty"`
	Signatures int       `json:"signatures"`
	Failures   int       `json:"failures"`
}

// healthState tracks the latest scan for /health.
type healthState struct {
	mu     sync.RWMutex
	status healthStatus
}

func newHealthState() *healthState {
	return &healthState{status: healthStatus{Status: "starting"}}
}

func (h *healthState) record(result ports.ScanResult) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status = healthStatus{
		Status:     "up",
		LastRunID:  result.RunID,
		LastScanAt: result.StartedAt,
		Signatures: len(result.Signatures),
		Failures:   len(result.Failures),
	}
}

func (h *healthState) snapshot() healthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status
}

type ObservabilityServer struct {
	addr   string
	health *healthState
	server *http.Server
}

func NewObservabilityServer(addr string, health *healthState) *ObservabilityServer {
	return &ObservabilityServer{
		addr:   addr,
		health: health,
	}
}

func (s *ObservabilityServer) handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status := s.health.snapshot()
		w.Header().Set("Content-Type", "application/json")
		if status.Status != "up" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(status)
	})

	return mux
}

// Start binds addr and serves in the background. Bind errors are returned.
func (s *ObservabilityServer) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	slog.Info("observability server starting", "addr", ln.Addr().String())

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("observability server failed", "error", err)
		}
	}()

	return nil
}

func (s *ObservabilityServer) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
