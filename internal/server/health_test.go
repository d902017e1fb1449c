package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestHealthHandler(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := NewHealthChecker("docsgate")
	h.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	rec := httptest.NewRecorder()
	h.HealthHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body ServiceHealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "docsgate", body.Service)
	assert.Equal(t, "2026-03-01T12:00:00Z", body.Timestamp)
}

func TestReadinessHandler(t *testing.T) {
	defer goleak.VerifyNone(t)

	tests := []struct {
		name       string
		setup      func(h *HealthChecker)
		wantStatus int
	}{
		{name: "ready", setup: func(*HealthChecker) {}, wantStatus: http.StatusOK},
		{name: "shutting down", setup: func(h *HealthChecker) { h.SetShuttingDown() }, wantStatus: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthChecker("docsgate")
			tt.setup(h)
			rec := httptest.NewRecorder()
			h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestServer_HealthRoutesAreUnauthenticated(t *testing.T) {
	h := newTestServer(t, storeWithSession(t, "known"), &countingBinder{})
	for _, path := range []string{"/health", "/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestServer_ShutdownFailsReadiness(t *testing.T) {
	store := storeWithSession(t, "known")
	health := NewHealthChecker("docsgate")
	srv, err := New(Config{
		Gateway:    NewGateway(newOAuthClient(t, "http://unused/token"), store, GatewayConfig{}, nil, nil),
		Store:      store,
		Dispatcher: newTestDispatcher(t, &countingBinder{}),
		Health:     health,
	})
	require.NoError(t, err)

	require.NoError(t, srv.Shutdown(context.Background()))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}
