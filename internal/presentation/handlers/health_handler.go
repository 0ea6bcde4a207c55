package handlers

import (
	"context"
	"net/http"
	"time"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

const (
	serviceSolanaRPC = "solana_rpc"
	serviceCache     = "cache"
)

// HealthChecker defines the interface for health checking components
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// dependency is a checked component. Analysis cannot run without a required
// one; an optional one only degrades the service.
type dependency struct {
	name     string
	checker  HealthChecker
	required bool
}

// HealthHandler reports the state of the Solana RPC node and, when enabled,
// the transaction cache
type HealthHandler struct {
	deps          []dependency
	healthTimeout time.Duration
	readyTimeout  time.Duration
}

// NewHealthHandler creates a new health handler. rpc is required and cache may
// be nil when Redis is disabled.
func NewHealthHandler(rpc, cache HealthChecker) *HealthHandler {
	deps := []dependency{{name: serviceSolanaRPC, checker: rpc, required: true}}
	if cache != nil {
		deps = append(deps, dependency{name: serviceCache, checker: cache})
	}

	return &HealthHandler{
		deps:          deps,
		healthTimeout: 5 * time.Second,
		readyTimeout:  2 * time.Second,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// Health handles GET /health. A failing RPC node makes the service unhealthy
// (503); a failing cache only degrades it.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.healthTimeout)
	defer cancel()

	response := HealthResponse{
		Status:    statusHealthy,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string, len(h.deps)),
	}

	for _, dep := range h.deps {
		err := dep.checker.HealthCheck(ctx)
		if err == nil {
			response.Services[dep.name] = statusHealthy
			continue
		}

		response.Services[dep.name] = statusUnhealthy + ": " + err.Error()
		switch {
		case dep.required:
			response.Status = statusUnhealthy
		case response.Status == statusHealthy:
			response.Status = statusDegraded
		}
	}

	status := http.StatusOK
	if response.Status == statusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, response)
}

// Ready handles GET /ready. Only required dependencies are checked.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.readyTimeout)
	defer cancel()

	for _, dep := range h.deps {
		if !dep.required {
			continue
		}
		if err := dep.checker.HealthCheck(ctx); err != nil {
			http.Error(w, "not ready: "+dep.name, http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Live handles GET /live
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
