package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/teemow/docsgate/internal/backend"
	"github.com/teemow/docsgate/internal/google"
	"github.com/teemow/docsgate/internal/instrumentation"
	"github.com/teemow/docsgate/internal/logging"
	"github.com/teemow/docsgate/internal/server"
	"github.com/teemow/docsgate/internal/session"
	"github.com/teemow/docsgate/internal/tools"
	"github.com/teemow/docsgate/internal/tools/catalog"
)

// stdioGrantEnv holds the single-tenant grant for the stdio transport.
const stdioGrantEnv = "GOOGLE_OAUTH_TOKENS"

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	config := ServeConfig{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the gateway",
		Long: `Start the Google Docs and Drive tool gateway.

Supports multiple transport types:
  - stdio: Standard input/output, single tenant (default)
  - streamable-http: Multi-tenant HTTP gateway with browser sign-in

HTTP Transport:
  Users sign in at /auth/start and are redirected to --frontend-url with a
  session id. Clients send it as the X-Session-ID header to POST /dispatch
  or to the MCP endpoint at /mcp.

  --google-client-id and --google-client-secret (or GOOGLE_CLIENT_ID and
  GOOGLE_CLIENT_SECRET) are required.

STDIO Transport:
  Credentials are read from GOOGLE_OAUTH_TOKENS as JSON holding access_token,
  refresh_token and expiry_date. With a client id and secret configured the
  access token is refreshed before it expires.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loadServeEnvVars(cmd, &config)
			if err := config.Validate(); err != nil {
				return err
			}
			return runServe(cmd.Context(), config)
		},
	}

	cmd.Flags().BoolVar(&config.Debug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&config.Transport, "transport", transportStdio, "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&config.HTTPAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport). Can also use PORT env var.")
	cmd.Flags().StringVar(&config.GoogleClientID, "google-client-id", "", "Google OAuth Client ID. Can also use GOOGLE_CLIENT_ID env var.")
	cmd.Flags().StringVar(&config.GoogleClientSecret, "google-client-secret", "", "Google OAuth Client Secret. Can also use GOOGLE_CLIENT_SECRET env var.")
	cmd.Flags().StringVar(&config.RedirectURL, "redirect-url", "", "OAuth redirect URL registered with Google. Computed from the request when empty. Can also use GOOGLE_REDIRECT_URI env var.")
	cmd.Flags().StringVar(&config.FrontendURL, "frontend-url", "/", "Where the browser lands after sign-in, with ?session=<id> appended. Can also use FRONTEND_URL env var.")
	cmd.Flags().StringVar(&config.ExportDir, "export-dir", "", "Directory for exported PDFs. Exports are returned inline when empty. Can also use EXPORT_DIR env var.")

	// Session storage flags
	cmd.Flags().StringVar(&config.SessionStore, "session-store", storeMemory, "Session storage type: memory or valkey. Can also use SESSION_STORE env var.")
	cmd.Flags().StringVar(&config.ValkeyURL, "valkey-url", "", "Valkey server address (e.g., valkey.namespace.svc:6379). Can also use VALKEY_URL env var.")
	cmd.Flags().StringVar(&config.ValkeyPassword, "valkey-password", "", "Valkey authentication password. Can also use VALKEY_PASSWORD env var.")
	cmd.Flags().BoolVar(&config.ValkeyTLS, "valkey-tls", false, "Enable TLS for Valkey connections. Can also use VALKEY_TLS_ENABLED env var.")
	cmd.Flags().StringVar(&config.ValkeyKeyPrefix, "valkey-key-prefix", session.DefaultKeyPrefix, "Prefix for all Valkey keys. Can also use VALKEY_KEY_PREFIX env var.")
	cmd.Flags().IntVar(&config.ValkeyDB, "valkey-db", 0, "Valkey database number. Can also use VALKEY_DB env var.")

	// Metrics server flags
	cmd.Flags().BoolVar(&config.MetricsEnabled, "metrics-enabled", false, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&config.MetricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runServe(parent context.Context, config ServeConfig) error {
	if parent == nil {
		parent = context.Background()
	}
	// Setup graceful shutdown
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// stdio transport owns stdout, so logs always go to stderr
	logger := logging.New(os.Stderr, config.Debug)
	slog.SetDefault(logger)

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Warn("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	registry, err := catalog.NewRegistry()
	if err != nil {
		return fmt.Errorf("failed to build tool registry: %w", err)
	}

	audit := instrumentation.NewAuditLoggerWithConfig(logging.WithComponent(logger, "audit"), instrConfig.AuditLogging)
	metrics := provider.Metrics()

	switch config.Transport {
	case transportStdio:
		return runStdioServer(config, registry, logger, metrics, audit)
	case transportStreamableHTTP:
		return runStreamableHTTPServer(ctx, config, registry, provider, logger, audit)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", config.Transport)
	}
}

// newMCPServer exposes every dispatcher operation as an MCP tool.
func newMCPServer(dispatcher *tools.Dispatcher) *mcpserver.MCPServer {
	mcpSrv := mcpserver.NewMCPServer("docsgate", version,
		mcpserver.WithToolCapabilities(true),
	)
	tools.RegisterMCP(mcpSrv, dispatcher)
	return mcpSrv
}

func runStdioServer(config ServeConfig, registry *tools.Registry, logger *slog.Logger, metrics *instrumentation.Metrics, audit *instrumentation.AuditLogger) error {
	grant, err := google.GrantFromEnv(stdioGrantEnv)
	if err != nil {
		return err
	}
	if grant == nil {
		logger.Warn("no credentials configured, tool calls will fail until " + stdioGrantEnv + " is set")
	}

	var refresher google.TokenRefresher
	if config.GoogleClientID != "" && config.GoogleClientSecret != "" {
		oauthClient, err := google.NewOAuthClient(google.OAuthConfig{
			ClientID:     config.GoogleClientID,
			ClientSecret: config.GoogleClientSecret,
		})
		if err != nil {
			return err
		}
		refresher = oauthClient
	} else {
		logger.Warn("automatic token refresh disabled, provide --google-client-id and --google-client-secret to enable it")
	}

	adapter := backend.New("", grant, refresher,
		backend.WithLogger(logger),
		backend.WithMetrics(metrics),
		backend.WithExportPolicy(backend.ExportPolicy{Dir: config.ExportDir, AllowLocalPaths: true}),
	)

	dispatcher := tools.NewDispatcher(registry, tools.StaticBinder(adapter),
		tools.WithLogger(logger),
		tools.WithMetrics(metrics),
		tools.WithAuditLogger(audit),
	)

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(newMCPServer(dispatcher)); err != nil {
			serverDone <- err
		}
	}()

	err = <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

// newSessionStore opens the configured session store.
func newSessionStore(config ServeConfig, logger *slog.Logger) (session.Store, error) {
	switch config.SessionStore {
	case storeValkey:
		store, err := session.NewValkeyStore(config.Valkey(), logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open valkey session store: %w", err)
		}
		return store, nil
	default:
		return session.NewMemoryStore(logger), nil
	}
}

// observeSessionCount exports the live session count for stores that can
// report it cheaply.
func observeSessionCount(store session.Store, metrics *instrumentation.Metrics) error {
	counter, ok := store.(interface{ Len() int })
	if !ok {
		return nil
	}
	return metrics.ObserveActiveSessions(counter.Len)
}

// backendOptions returns the adapter options shared by every session.
// Stores that hand out copies need refreshed grants written back.
func backendOptions(config ServeConfig, store session.Store, logger *slog.Logger, metrics *instrumentation.Metrics) []backend.Option {
	opts := []backend.Option{
		backend.WithLogger(logger),
		backend.WithMetrics(metrics),
		backend.WithExportPolicy(backend.ExportPolicy{Dir: config.ExportDir}),
	}
	if _, ok := store.(*session.MemoryStore); !ok {
		opts = append(opts, backend.WithOnRefresh(func(ctx context.Context, sessionID string, grant *google.Grant) error {
			return store.Put(ctx, sessionID, grant)
		}))
	}
	return opts
}

func runStreamableHTTPServer(ctx context.Context, config ServeConfig, registry *tools.Registry, provider *instrumentation.Provider, logger *slog.Logger, audit *instrumentation.AuditLogger) (err error) {
	metrics := provider.Metrics()

	oauthClient, err := google.NewOAuthClient(google.OAuthConfig{
		ClientID:     config.GoogleClientID,
		ClientSecret: config.GoogleClientSecret,
	})
	if err != nil {
		return err
	}

	store, err := newSessionStore(config, logger)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, store.Close())
	}()
	if err := observeSessionCount(store, metrics); err != nil {
		return err
	}

	dispatcher := tools.NewDispatcher(registry,
		tools.SessionBinder(backend.Factory(oauthClient, backendOptions(config, store, logger, metrics)...)),
		tools.WithLogger(logger),
		tools.WithMetrics(metrics),
		tools.WithAuditLogger(audit),
	)

	mcpHandler := mcpserver.NewStreamableHTTPServer(newMCPServer(dispatcher),
		mcpserver.WithEndpointPath("/mcp"),
		mcpserver.WithHTTPContextFunc(server.MCPContextFunc),
	)

	gateway := server.NewGateway(oauthClient, store, server.GatewayConfig{
		RedirectURL: config.RedirectURL,
		FrontendURL: config.FrontendURL,
	}, logger, metrics)

	srv, err := server.New(server.Config{
		Addr:       config.HTTPAddr,
		Gateway:    gateway,
		Store:      store,
		Dispatcher: dispatcher,
		MCPHandler: mcpHandler,
		Health:     server.NewHealthChecker(instrumentation.DefaultServiceName),
		Logger:     logger,
		Metrics:    metrics,
	})
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	// Start metrics server if enabled
	var metricsServer *server.MetricsServer
	metricsDone := make(chan error, 1)
	if config.MetricsEnabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    config.MetricsAddr,
			InstrumentationProvider: provider,
			Logger:                  logger,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		go func() {
			if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				metricsDone <- err
			}
		}()
	}

	logger.Info("docsgate started",
		slog.String("transport", config.Transport),
		slog.String("addr", config.HTTPAddr),
		slog.String("session_store", config.SessionStore),
		slog.Bool("metrics", metricsServer != nil),
	)

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := srv.Start(); err != nil {
			serverDone <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping HTTP server")
	case err := <-serverDone:
		if err != nil {
			runErr = fmt.Errorf("HTTP server stopped with error: %w", err)
		}
	case err := <-metricsDone:
		runErr = fmt.Errorf("metrics server stopped with error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var shutdownErrs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		shutdownErrs = append(shutdownErrs, fmt.Errorf("error shutting down HTTP server: %w", err))
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			shutdownErrs = append(shutdownErrs, fmt.Errorf("error shutting down metrics server: %w", err))
		}
	}
	if err := mcpHandler.Shutdown(shutdownCtx); err != nil {
		shutdownErrs = append(shutdownErrs, fmt.Errorf("error shutting down MCP handler: %w", err))
	}

	if runErr == nil && len(shutdownErrs) == 0 {
		logger.Info("HTTP server gracefully stopped")
	}
	return errors.Join(append([]error{runErr}, shutdownErrs...)...)
}
