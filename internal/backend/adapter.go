package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	docsapi "google.golang.org/api/docs/v1"
	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/teemow/docsgate/internal/docs"
	"github.com/teemow/docsgate/internal/drive"
	"github.com/teemow/docsgate/internal/google"
	"github.com/teemow/docsgate/internal/instrumentation"
	"github.com/teemow/docsgate/internal/logging"
	"github.com/teemow/docsgate/internal/tools"
)

// ErrRefreshUnavailable is returned when an expiring grant cannot be
// refreshed because no OAuth client is configured.
var ErrRefreshUnavailable = errors.New("access token expired and no OAuth client is configured to refresh it")

// RefreshHook is called after a successful refresh with the updated grant.
type RefreshHook func(ctx context.Context, sessionID string, grant *google.Grant) error

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetrics records Google API and refresh metrics.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(a *Adapter) { a.metrics = m }
}

// WithOnRefresh sets the hook invoked after every successful refresh.
func WithOnRefresh(hook RefreshHook) Option {
	return func(a *Adapter) { a.onRefresh = hook }
}

// WithExportPolicy sets where exported PDFs go.
func WithExportPolicy(policy ExportPolicy) Option {
	return func(a *Adapter) { a.export = policy }
}

// WithEndpoints overrides the Docs and Drive API base URLs.
func WithEndpoints(docsEndpoint, driveEndpoint string) Option {
	return func(a *Adapter) {
		a.docsEndpoint = docsEndpoint
		a.driveEndpoint = driveEndpoint
	}
}

// WithBaseTransport sets the transport underneath the OAuth transport.
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(a *Adapter) { a.base = rt }
}

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) { a.now = now }
}

// Adapter implements tools.Backend for exactly one grant.
type Adapter struct {
	sessionID string
	grant     *google.Grant
	refresher google.TokenRefresher

	logger    *slog.Logger
	metrics   *instrumentation.Metrics
	onRefresh RefreshHook
	export    ExportPolicy
	now       func() time.Time

	docsEndpoint  string
	driveEndpoint string
	base          http.RoundTripper

	initOnce sync.Once
	initErr  error
	docs     *docs.Client
	drive    *drive.Client
}

var _ tools.Backend = (*Adapter)(nil)

// New returns an adapter for grant. refresher may be nil, in which case an
// expiring grant fails with ErrRefreshUnavailable.
func New(sessionID string, grant *google.Grant, refresher google.TokenRefresher, opts ...Option) *Adapter {
	a := &Adapter{
		sessionID: sessionID,
		grant:     grant,
		refresher: refresher,
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = logging.WithComponent(a.logger, "backend")
	if sessionID != "" {
		a.logger = a.logger.With(logging.Session(sessionID))
	}
	return a
}

// Factory returns a tools.BackendFactory that builds adapters sharing
// refresher and opts.
func Factory(refresher google.TokenRefresher, opts ...Option) tools.BackendFactory {
	return func(sessionID string, grant *google.Grant) tools.Backend {
		return New(sessionID, grant, refresher, opts...)
	}
}

// grantTokenSource always serves the grant's current token, so an in-place
// refresh is picked up by services that were built earlier.
type grantTokenSource struct {
	grant *google.Grant
}

func (s grantTokenSource) Token() (*oauth2.Token, error) {
	return s.grant.Token(), nil
}

// prepare makes the grant usable and the services available.
func (a *Adapter) prepare(ctx context.Context) error {
	if !a.grant.HasCredentials() {
		return tools.ErrMissingCredentials
	}
	if err := a.refreshIfExpiring(ctx); err != nil {
		return err
	}
	a.initOnce.Do(func() {
		a.initErr = a.initServices(context.WithoutCancel(ctx))
	})
	return a.initErr
}

func (a *Adapter) refreshIfExpiring(ctx context.Context) error {
	if !a.grant.Expiring(a.now(), google.ExpiryThreshold) {
		return nil
	}
	if a.refresher == nil {
		return ErrRefreshUnavailable
	}

	ctx, span := instrumentation.StartSpan(ctx, "oauth.refresh")
	defer span.End()
	logger := logging.WithOperation(a.logger, "refresh")

	refreshToken := a.grant.RefreshToken()
	token, err := a.refresher.Refresh(ctx, refreshToken)
	if err != nil {
		a.metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultFailure)
		instrumentation.SetSpanError(span, err)
		logger.Warn("token refresh failed", slog.String("refresh_token", logging.SanitizeToken(refreshToken)), logging.Err(err))
		return fmt.Errorf("token refresh failed: %w", err)
	}

	a.grant.Update(token)
	a.metrics.RecordOAuthTokenRefresh(ctx, instrumentation.OAuthResultSuccess)
	instrumentation.SetSpanSuccess(span)
	logger.Debug("token refreshed")

	if a.onRefresh != nil {
		if err := a.onRefresh(ctx, a.sessionID, a.grant); err != nil {
			// The refreshed token is still valid for this request.
			logger.Warn("failed to persist refreshed grant", logging.Err(err))
		} else {
			instrumentation.AddSpanEvent(span, "grant_persisted")
		}
	}
	return nil
}

func (a *Adapter) initServices(ctx context.Context) error {
	base := a.base
	if base == nil {
		// Force HTTP/1.1 by disabling HTTP/2
		base = &http.Transport{ForceAttemptHTTP2: false, Proxy: http.ProxyFromEnvironment}
	}
	client := &http.Client{
		Transport: &oauth2.Transport{
			Source: grantTokenSource{grant: a.grant},
			Base:   base,
		},
	}

	docsOpts := []option.ClientOption{option.WithHTTPClient(client)}
	if a.docsEndpoint != "" {
		docsOpts = append(docsOpts, option.WithEndpoint(a.docsEndpoint))
	}
	docsService, err := docsapi.NewService(ctx, docsOpts...)
	if err != nil {
		return fmt.Errorf("failed to create Docs service: %w", err)
	}

	driveOpts := []option.ClientOption{option.WithHTTPClient(client)}
	if a.driveEndpoint != "" {
		driveOpts = append(driveOpts, option.WithEndpoint(a.driveEndpoint))
	}
	driveService, err := driveapi.NewService(ctx, driveOpts...)
	if err != nil {
		return fmt.Errorf("failed to create Drive service: %w", err)
	}

	a.docs = docs.NewClient(docsService, driveService)
	a.drive = drive.NewClient(driveService)
	return nil
}

// call prepares the adapter and runs fn inside a Google API span.
func call[T any](ctx context.Context, a *Adapter, tool, service, resourceType, resourceID string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if err := a.prepare(ctx); err != nil {
		return zero, err
	}

	operation := instrumentation.OperationKind(tool)
	ctx, span := instrumentation.StartGoogleAPISpan(ctx, service, operation,
		instrumentation.NewSpanAttributeBuilder().
			WithTool(tool).
			WithResource(resourceType, resourceID).
			Build()...,
	)
	defer span.End()

	start := time.Now()
	v, err := fn(ctx)
	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
		instrumentation.SetSpanError(span, err)
	} else {
		instrumentation.SetSpanSuccess(span)
	}
	a.metrics.RecordGoogleAPIOperation(ctx, service, operation, status, time.Since(start))
	return v, err
}
