package server

import (
	"net/http"
	"sync/atomic"
	"time"
)

// Health status constants for health check responses.
const (
	healthStatusHealthy      = "healthy"
	healthStatusOK           = "ok"
	healthStatusNotReady     = "not ready"
	healthStatusShuttingDown = "shutting down"
)

// HealthChecker provides the public health endpoint and the Kubernetes liveness and readiness checks.
type HealthChecker struct {
	// shuttingDown is set once graceful shutdown begins
	shuttingDown atomic.Bool
	// startTime tracks when the server started
	startTime time.Time
	service   string
	now       func() time.Time
}

// NewHealthChecker creates a HealthChecker reporting service as its name.
func NewHealthChecker(service string) *HealthChecker {
	return &HealthChecker{
		startTime: time.Now(),
		service:   service,
		now:       time.Now,
	}
}

// IsReady reports whether the server accepts traffic.
func (h *HealthChecker) IsReady() bool {
	return !h.shuttingDown.Load()
}

// SetShuttingDown marks the server as draining.
func (h *HealthChecker) SetShuttingDown() {
	h.shuttingDown.Store(true)
}

// HealthResponse represents the JSON response for the health endpoints.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// ServiceHealthResponse is the body of GET /health.
type ServiceHealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime"`
}

// HealthHandler returns the handler for /health.
func (h *HealthChecker) HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, ServiceHealthResponse{
			Status:    healthStatusHealthy,
			Service:   h.service,
			Timestamp: h.now().UTC().Format(time.RFC3339),
			Uptime:    time.Since(h.startTime).Truncate(time.Second).String(),
		})
	})
}

// LivenessHandler returns an HTTP handler for the /healthz endpoint.
// Liveness checks indicate whether the process should be restarted.
func (h *HealthChecker) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: healthStatusOK})
	})
}

// ReadinessHandler returns an HTTP handler for the /readyz endpoint.
// Readiness checks indicate whether the server is ready to receive traffic.
func (h *HealthChecker) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if h.IsReady() {
			writeJSON(w, http.StatusOK, HealthResponse{Status: healthStatusOK, Checks: map[string]string{"shutdown": healthStatusOK}})
			return
		}
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: healthStatusNotReady,
			Checks: map[string]string{"shutdown": healthStatusShuttingDown},
		})
	})
}

// RegisterHealthEndpoints registers health check endpoints on the given mux.
func (h *HealthChecker) RegisterHealthEndpoints(mux *http.ServeMux) {
	mux.Handle("GET /health", h.HealthHandler())
	mux.Handle("GET /healthz", h.LivenessHandler())
	mux.Handle("GET /readyz", h.ReadinessHandler())
}
