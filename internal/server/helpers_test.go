package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/teemow/docsgate/internal/docs"
	"github.com/teemow/docsgate/internal/google"
	"github.com/teemow/docsgate/internal/session"
	"github.com/teemow/docsgate/internal/tools"
	"github.com/teemow/docsgate/internal/tools/catalog"
)

// fakeBackend serves docs_create_document and nothing else.
type fakeBackend struct {
	tools.Backend
}

func (fakeBackend) CreateDocument(_ context.Context, title string) (*docs.Document, error) {
	return &docs.Document{DocumentID: "doc-1", Title: title, URL: docs.DocumentURL("doc-1")}, nil
}

// countingBinder counts how often a backend was bound, i.e. how often a
// request made it past session authentication into execution.
type countingBinder struct {
	calls atomic.Int32
}

func (b *countingBinder) Bind(ctx context.Context) (tools.Backend, error) {
	b.calls.Add(1)
	return tools.SessionBinder(func(string, *google.Grant) tools.Backend { return fakeBackend{} }).Bind(ctx)
}

func newTestDispatcher(t *testing.T, binder tools.Binder) *tools.Dispatcher {
	t.Helper()
	reg, err := catalog.NewRegistry()
	require.NoError(t, err)
	return tools.NewDispatcher(reg, binder)
}

func newOAuthClient(t *testing.T, tokenURL string) *google.OAuthClient {
	t.Helper()
	client, err := google.NewOAuthClient(google.OAuthConfig{
		ClientID:     "client-123",
		ClientSecret: "secret-456",
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.example.com/o/oauth2/auth",
			TokenURL: tokenURL,
		},
	})
	require.NoError(t, err)
	return client
}

func storeWithSession(t *testing.T, id string) *session.MemoryStore {
	t.Helper()
	store := session.NewMemoryStore(nil)
	require.NoError(t, store.Put(context.Background(), id, google.NewGrant(&oauth2.Token{
		AccessToken:  "ya29.test",
		RefreshToken: "1//refresh",
	})))
	return store
}

func dispatchRequest(body string, sessionID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/dispatch", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}
	return req
}
