package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/docsgate/internal/session"
	"github.com/teemow/docsgate/internal/tools"
)

const mcpInitialize = `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"docsgate-test","version":"1.0.0"}}}`

// newMCPTestServer mounts the MCP Streamable HTTP transport behind session auth.
func newMCPTestServer(t *testing.T, store session.Store, binder *countingBinder) http.Handler {
	t.Helper()
	dispatcher := newTestDispatcher(t, binder)
	mcpSrv := mcpserver.NewMCPServer("docsgate", "test", mcpserver.WithToolCapabilities(true))
	tools.RegisterMCP(mcpSrv, dispatcher)
	mcpHandler := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithEndpointPath("/mcp"),
		mcpserver.WithHTTPContextFunc(MCPContextFunc),
	)
	t.Cleanup(func() { _ = mcpHandler.Shutdown(context.Background()) })

	srv, err := New(Config{
		Gateway:    NewGateway(newOAuthClient(t, "http://unused/token"), store, GatewayConfig{}, nil, nil),
		Store:      store,
		Dispatcher: dispatcher,
		MCPHandler: mcpHandler,
	})
	require.NoError(t, err)
	return srv.Handler()
}

func mcpRequest(body, sessionID, mcpSessionID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}
	if mcpSessionID != "" {
		req.Header.Set(mcpserver.HeaderKeySessionID, mcpSessionID)
	}
	return req
}

func TestMCP_RequiresSession(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		wantBody  string
	}{
		{name: "no session header", wantBody: "missing session id"},
		{name: "unknown session", sessionID: "forged", wantBody: "invalid session"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			binder := &countingBinder{}
			h := newMCPTestServer(t, storeWithSession(t, "known"), binder)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, mcpRequest(mcpInitialize, tt.sessionID, ""))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.Zero(t, binder.calls.Load())
		})
	}
}

func TestMCP_ToolCallCarriesSessionGrant(t *testing.T) {
	binder := &countingBinder{}
	h := newMCPTestServer(t, storeWithSession(t, "known"), binder)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, mcpRequest(mcpInitialize, "known", ""))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	mcpSessionID := rec.Header().Get(mcpserver.HeaderKeySessionID)
	require.NotEmpty(t, mcpSessionID)

	call := `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"docs_create_document","arguments":{"title":"Q3 plan"}}}`
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, mcpRequest(call, "known", mcpSessionID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp testResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	require.Nil(t, resp.Error)

	var result testCallResult
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	require.Len(t, result.Content, 1)
	// A missing grant would surface as an error envelope from the binder.
	assert.False(t, result.IsError, result.Content[0].Text)
	assert.Contains(t, result.Content[0].Text, `"documentId": "doc-1"`)
	assert.Contains(t, result.Content[0].Text, `"url": "https://docs.google.com/document/d/doc-1/edit"`)
	assert.Equal(t, int32(1), binder.calls.Load())
}

func TestMCPContextFunc(t *testing.T) {
	store := storeWithSession(t, "known")
	g, ok, err := store.Get(context.Background(), "known")
	require.NoError(t, err)
	require.True(t, ok)

	bare := MCPContextFunc(context.Background(), httptest.NewRequest(http.MethodPost, "/mcp", nil))
	_, ok = session.GrantFromContext(bare)
	assert.False(t, ok, "no grant without session auth")

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req = req.WithContext(session.WithGrant(req.Context(), "known", g))
	ctx := MCPContextFunc(context.Background(), req)

	got, ok := session.GrantFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, g, got)
	id, _ := session.IDFromContext(ctx)
	assert.Equal(t, "known", id)
}
