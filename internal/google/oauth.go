package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// ErrNoRefreshToken is returned when a refresh is requested for a grant that
// was issued without a refresh token.
var ErrNoRefreshToken = errors.New("no refresh token available")

// TokenRefresher exchanges a refresh token for a fresh access token.
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// OAuthConfig holds the client registration used for the authorization code flow.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string

	// Scopes defaults to DefaultOAuthScopes.
	Scopes []string

	// Endpoint defaults to google.Endpoint.
	Endpoint oauth2.Endpoint

	// HTTPClient is used for token endpoint calls when set.
	HTTPClient *http.Client
}

// OAuthClient builds consent URLs and talks to the provider's token endpoint.
type OAuthClient struct {
	config     oauth2.Config
	httpClient *http.Client
}

// NewOAuthClient returns a client for the given registration.
// Client id and secret are both required.
func NewOAuthClient(cfg OAuthConfig) (*OAuthClient, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("google client id and client secret are required")
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = DefaultOAuthScopes
	}
	endpoint := cfg.Endpoint
	if endpoint.TokenURL == "" {
		endpoint = google.Endpoint
	}

	return &OAuthClient{
		config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			Scopes:       scopes,
		},
		httpClient: cfg.HTTPClient,
	}, nil
}

// AuthCodeURL returns the consent screen URL for redirectURL.
// Offline access and forced consent make the provider issue a refresh token
// on every authorization, not only the first one.
func (c *OAuthClient) AuthCodeURL(redirectURL string) string {
	conf := c.configFor(redirectURL)
	return conf.AuthCodeURL("", oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for a token. redirectURL must match
// the one used to build the consent URL.
func (c *OAuthClient) Exchange(ctx context.Context, code, redirectURL string) (*oauth2.Token, error) {
	conf := c.configFor(redirectURL)
	token, err := conf.Exchange(c.withHTTPClient(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

// Refresh obtains a new access token using refreshToken.
func (c *OAuthClient) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if refreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	// An empty access token forces the token source to hit the token endpoint.
	tokenSource := c.config.TokenSource(c.withHTTPClient(ctx), &oauth2.Token{RefreshToken: refreshToken})
	token, err := tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	return token, nil
}

func (c *OAuthClient) configFor(redirectURL string) oauth2.Config {
	conf := c.config
	conf.RedirectURL = redirectURL
	return conf
}

func (c *OAuthClient) withHTTPClient(ctx context.Context) context.Context {
	if c.httpClient != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	}
	return ctx
}
