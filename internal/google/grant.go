package google

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// ExpiryThreshold is how close to expiry a grant may get before it must be
// refreshed ahead of a backend call.
const ExpiryThreshold = 60 * time.Second

// Grant is one user's delegated access to Google: an access/refresh token
// pair plus expiry. A grant belongs to exactly one session and is refreshed
// in place.
//
// The mutex only guards field access. Refresh network calls happen outside
// of it, so two requests on the same session may both refresh; the second
// refresh simply wins.
type Grant struct {
	mu    sync.Mutex
	token oauth2.Token
}

// NewGrant returns a grant holding a copy of token.
func NewGrant(token *oauth2.Token) *Grant {
	g := &Grant{}
	if token != nil {
		g.token = *token
	}
	return g
}

// Token returns a copy of the current token.
func (g *Grant) Token() *oauth2.Token {
	g.mu.Lock()
	defer g.mu.Unlock()
	t := g.token
	return &t
}

// HasCredentials reports whether the grant carries any usable token.
func (g *Grant) HasCredentials() bool {
	if g == nil {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token.AccessToken != "" || g.token.RefreshToken != ""
}

// RefreshToken returns the current refresh token.
func (g *Grant) RefreshToken() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token.RefreshToken
}

// Expiring reports whether the grant expires within threshold of now.
// A grant without an access token is always expiring. A zero expiry means the
// provider did not report one and the token is used as-is.
func (g *Grant) Expiring(now time.Time, threshold time.Duration) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.token.AccessToken == "" {
		return true
	}
	if g.token.Expiry.IsZero() {
		return false
	}
	return now.Add(threshold).After(g.token.Expiry)
}

// Update overwrites the access token and expiry with a refreshed token.
// The refresh token is replaced only when the provider rotated it.
func (g *Grant) Update(token *oauth2.Token) {
	if token == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token.AccessToken = token.AccessToken
	g.token.Expiry = token.Expiry
	if token.TokenType != "" {
		g.token.TokenType = token.TokenType
	}
	if token.RefreshToken != "" {
		g.token.RefreshToken = token.RefreshToken
	}
}

// MarshalJSON encodes the grant as an oauth2 token document.
func (g *Grant) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Token())
}

// UnmarshalJSON decodes a grant written by MarshalJSON or by ParseGrant.
func (g *Grant) UnmarshalJSON(data []byte) error {
	parsed, err := ParseGrant(data)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token = parsed.token
	return nil
}

// grantDocument accepts both oauth2 token JSON ("expiry" as RFC 3339) and the
// token file shape written by Node.js Google clients ("expiry_date" in
// milliseconds since the epoch).
type grantDocument struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	Expiry       time.Time `json:"expiry"`
	ExpiryDate   int64     `json:"expiry_date"`
}

// ParseGrant decodes a grant from JSON.
func ParseGrant(data []byte) (*Grant, error) {
	var doc grantDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid grant document: %w", err)
	}

	token := &oauth2.Token{
		AccessToken:  doc.AccessToken,
		RefreshToken: doc.RefreshToken,
		TokenType:    doc.TokenType,
		Expiry:       doc.Expiry,
	}
	if token.Expiry.IsZero() && doc.ExpiryDate > 0 {
		token.Expiry = time.UnixMilli(doc.ExpiryDate)
	}
	return NewGrant(token), nil
}

// GrantFromEnv loads the single-tenant grant from the named environment
// variable. It returns nil without error when the variable is unset, so the
// missing grant surfaces per request rather than at startup.
func GrantFromEnv(key string) (*Grant, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return nil, nil
	}
	g, err := ParseGrant([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return g, nil
}
