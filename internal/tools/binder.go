package tools

import (
	"context"

	"github.com/teemow/docsgate/internal/google"
	"github.com/teemow/docsgate/internal/session"
)

// Binder yields the Backend that serves the caller identified by ctx.
type Binder interface {
	Bind(ctx context.Context) (Backend, error)
}

// BinderFunc adapts a function to Binder.
type BinderFunc func(ctx context.Context) (Backend, error)

// Bind calls f.
func (f BinderFunc) Bind(ctx context.Context) (Backend, error) {
	return f(ctx)
}

// BackendFactory builds a Backend for one grant. sessionID is empty in
// single-tenant mode.
type BackendFactory func(sessionID string, grant *google.Grant) Backend

// SessionBinder binds to the grant that session authentication attached to
// the request context. Requests without one get ErrMissingCredentials.
func SessionBinder(factory BackendFactory) Binder {
	return BinderFunc(func(ctx context.Context) (Backend, error) {
		grant, ok := session.GrantFromContext(ctx)
		if !ok || !grant.HasCredentials() {
			return nil, ErrMissingCredentials
		}
		id, _ := session.IDFromContext(ctx)
		return factory(id, grant), nil
	})
}

// StaticBinder binds every request to one process-wide backend, as used by
// the single-tenant stdio transport. A nil backend yields ErrMissingCredentials.
func StaticBinder(backend Backend) Binder {
	return BinderFunc(func(context.Context) (Backend, error) {
		if backend == nil {
			return nil, ErrMissingCredentials
		}
		return backend, nil
	})
}
