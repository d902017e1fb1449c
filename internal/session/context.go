package session

import (
	"context"

	"github.com/teemow/docsgate/internal/google"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	grantContextKey contextKey = "grant"
	idContextKey    contextKey = "session_id"
)

// WithGrant returns a context carrying the session id and its resolved grant.
func WithGrant(ctx context.Context, id string, grant *google.Grant) context.Context {
	ctx = context.WithValue(ctx, idContextKey, id)
	return context.WithValue(ctx, grantContextKey, grant)
}

// GrantFromContext returns the grant attached by the session middleware.
func GrantFromContext(ctx context.Context) (*google.Grant, bool) {
	grant, ok := ctx.Value(grantContextKey).(*google.Grant)
	return grant, ok && grant != nil
}

// IDFromContext returns the session id attached by the session middleware.
func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(idContextKey).(string)
	return id, ok
}
