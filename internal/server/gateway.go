package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/teemow/docsgate/internal/google"
	"github.com/teemow/docsgate/internal/instrumentation"
	"github.com/teemow/docsgate/internal/logging"
	"github.com/teemow/docsgate/internal/session"
)

// CallbackPath is where the provider sends the browser back to.
const CallbackPath = "/auth/callback"

// GatewayConfig configures a Gateway.
type GatewayConfig struct {
	// RedirectURL overrides the callback URL derived from the request.
	RedirectURL string

	// FrontendURL receives the browser after a successful callback.
	// Defaults to "/".
	FrontendURL string
}

// Gateway runs the authorization code flow and issues sessions.
type Gateway struct {
	oauth       *google.OAuthClient
	store       session.Store
	redirectURL string
	frontendURL string
	logger      *slog.Logger
	metrics     *instrumentation.Metrics
}

// NewGateway creates a gateway that stores new grants in store.
func NewGateway(oauth *google.OAuthClient, store session.Store, cfg GatewayConfig, logger *slog.Logger, metrics *instrumentation.Metrics) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	frontend := cfg.FrontendURL
	if frontend == "" {
		frontend = "/"
	}
	return &Gateway{
		oauth:       oauth,
		store:       store,
		redirectURL: cfg.RedirectURL,
		frontendURL: frontend,
		logger:      logging.WithComponent(logger, "gateway"),
		metrics:     metrics,
	}
}

// Initiate returns the consent screen URL for r.
func (g *Gateway) Initiate(r *http.Request) string {
	return g.oauth.AuthCodeURL(g.callbackURL(r))
}

// Callback exchanges code for a grant and stores it under a new session id.
func (g *Gateway) Callback(ctx context.Context, r *http.Request, code string) (string, error) {
	if code == "" {
		g.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure)
		return "", &AuthExchangeError{Reason: "missing authorization code"}
	}

	ctx, span := instrumentation.StartSpan(ctx, "oauth.exchange")
	defer span.End()

	token, err := g.oauth.Exchange(ctx, code, g.callbackURL(r))
	if err != nil {
		g.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure)
		instrumentation.SetSpanError(span, err)
		return "", &AuthExchangeError{Reason: "authorization code exchange failed", Err: err}
	}

	id, err := session.NewID()
	if err == nil {
		err = g.store.Put(ctx, id, google.NewGrant(token))
	}
	if err != nil {
		g.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure)
		instrumentation.SetSpanError(span, err)
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	g.metrics.RecordOAuthAuth(ctx, instrumentation.OAuthResultSuccess)
	instrumentation.SetSpanSuccess(span)
	g.logger.Info("session created", logging.Session(id))
	return id, nil
}

// Register adds the gateway routes to mux.
func (g *Gateway) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /auth/start", g.handleStart)
	mux.HandleFunc("GET "+CallbackPath, g.handleCallback)
}

func (g *Gateway) handleStart(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, g.Initiate(r), http.StatusFound)
}

func (g *Gateway) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if providerErr := query.Get("error"); providerErr != "" {
		g.metrics.RecordOAuthAuth(r.Context(), instrumentation.OAuthResultDenied)
		g.logger.Info("authorization denied by user", slog.String("reason", providerErr))
		writeError(w, http.StatusBadRequest, providerErr, "authorization was not granted")
		return
	}

	id, err := g.Callback(r.Context(), r, query.Get("code"))
	if err != nil {
		var exchangeErr *AuthExchangeError
		if errors.As(err, &exchangeErr) && exchangeErr.Err == nil {
			writeError(w, http.StatusBadRequest, "invalid_request", exchangeErr.Reason)
			return
		}
		g.logger.Error("authorization callback failed", logging.Err(err))
		writeError(w, http.StatusInternalServerError, "server_error", "authentication failed")
		return
	}

	http.Redirect(w, r, g.frontendRedirect(id), http.StatusFound)
}

// callbackURL is the configured redirect or <scheme>://<host>/auth/callback.
func (g *Gateway) callbackURL(r *http.Request) string {
	if g.redirectURL != "" {
		return g.redirectURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	return scheme + "://" + r.Host + CallbackPath
}

func (g *Gateway) frontendRedirect(id string) string {
	u, err := url.Parse(g.frontendURL)
	if err != nil {
		return g.frontendURL + "?session=" + url.QueryEscape(id)
	}
	q := u.Query()
	q.Set("session", id)
	u.RawQuery = q.Encode()
	return u.String()
}
