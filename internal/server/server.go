package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/teemow/docsgate/internal/instrumentation"
	"github.com/teemow/docsgate/internal/logging"
	"github.com/teemow/docsgate/internal/session"
	"github.com/teemow/docsgate/internal/tools"
)

// HTTP server timeouts. Writes get a minute because a dispatch waits on the
// Google API.
const (
	DefaultReadHeaderTimeout = 10 * time.Second
	DefaultWriteTimeout      = 60 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
)

// Config wires the HTTP surface together.
type Config struct {
	Addr       string
	Gateway    *Gateway
	Store      session.Store
	Dispatcher *tools.Dispatcher

	// MCPHandler serves MCP Streamable HTTP at /mcp when set.
	MCPHandler http.Handler

	Health  *HealthChecker
	Logger  *slog.Logger
	Metrics *instrumentation.Metrics
}

// Server is the public HTTP listener.
type Server struct {
	httpServer *http.Server
	health     *HealthChecker
	logger     *slog.Logger
}

// New validates cfg and builds the server.
func New(cfg Config) (*Server, error) {
	if cfg.Gateway == nil {
		return nil, fmt.Errorf("gateway is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if cfg.Dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	health := cfg.Health
	if health == nil {
		health = NewHealthChecker(instrumentation.DefaultServiceName)
	}

	s := &Server{
		health: health,
		logger: logging.WithComponent(logger, "http_server"),
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           observe(routes(cfg, health, logger), s.logger, cfg.Metrics),
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		WriteTimeout:      DefaultWriteTimeout,
		IdleTimeout:       DefaultIdleTimeout,
	}
	return s, nil
}

func routes(cfg Config, health *HealthChecker, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	health.RegisterHealthEndpoints(mux)
	cfg.Gateway.Register(mux)

	auth := SessionAuth(cfg.Store, logger, cfg.Metrics)
	mux.Handle("POST /dispatch", auth(DispatchHandler(cfg.Dispatcher, logger)))
	if cfg.MCPHandler != nil {
		mux.Handle("/mcp", auth(cfg.MCPHandler))
	}
	return mux
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens and serves until Shutdown. It returns nil after a graceful
// shutdown.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", slog.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown fails readiness and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.health.SetShuttingDown()
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// MCPContextFunc carries the session attached by SessionAuth into the
// context mcp-go hands to tool handlers.
func MCPContextFunc(ctx context.Context, r *http.Request) context.Context {
	grant, ok := session.GrantFromContext(r.Context())
	if !ok {
		return ctx
	}
	id, _ := session.IDFromContext(r.Context())
	return session.WithGrant(ctx, id, grant)
}
