package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/teemow/docsgate/internal/session"
)

type testResponse struct {
	JSONRPC string                   `json:"jsonrpc"`
	ID      json.RawMessage          `json:"id"`
	Result  json.RawMessage          `json:"result"`
	Error   *mcp.JSONRPCErrorDetails `json:"error"`
}

type testCallResult struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	IsError bool `json:"isError"`
}

func newTestServer(t *testing.T, store session.Store, binder *countingBinder) http.Handler {
	t.Helper()
	srv, err := New(Config{
		Gateway:    NewGateway(newOAuthClient(t, "http://unused/token"), store, GatewayConfig{}, nil, nil),
		Store:      store,
		Dispatcher: newTestDispatcher(t, binder),
	})
	require.NoError(t, err)
	return srv.Handler()
}

func serve(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, testResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var resp testResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	}
	return rec, resp
}

func TestDispatch_UnknownSessionNeverDispatches(t *testing.T) {
	defer goleak.VerifyNone(t)

	binder := &countingBinder{}
	h := newTestServer(t, storeWithSession(t, "known"), binder)

	body := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"docs_create_document","arguments":{"title":"x"}}}`
	rec, _ := serve(t, h, dispatchRequest(body, "forged"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, binder.calls.Load())
}

func TestDispatch_ToolsList(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := newTestServer(t, storeWithSession(t, "known"), &countingBinder{})
	rec, resp := serve(t, h, dispatchRequest(`{"jsonrpc":"2.0","id":"a","method":"tools/list"}`, "known"))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Nil(t, resp.Error)
	assert.JSONEq(t, `"a"`, string(resp.ID))

	var result struct {
		Tools []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &result))
	require.Len(t, result.Tools, 26)
	assert.Equal(t, "docs_create_document", result.Tools[0].Name)
	assert.Equal(t, "drive_delete_reply", result.Tools[25].Name)
}

func TestDispatch_ToolsCall(t *testing.T) {
	defer goleak.VerifyNone(t)

	tests := []struct {
		name        string
		body        string
		wantIsError bool
		wantText    string
		wantBinds   int32
	}{
		{
			name:      "create document",
			body:      `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"docs_create_document","arguments":{"title":"Q3 plan"}}}`,
			wantText:  `"url": "https://docs.google.com/document/d/doc-1/edit"`,
			wantBinds: 1,
		},
		{
			name:        "unknown operation",
			body:        `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"docs_frobnicate","arguments":{}}}`,
			wantIsError: true,
			wantText:    "Error: Unknown tool: docs_frobnicate",
		},
		{
			name:        "invalid arguments",
			body:        `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"docs_create_document"}}`,
			wantIsError: true,
			wantText:    "title is required",
			wantBinds:   1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			binder := &countingBinder{}
			h := newTestServer(t, storeWithSession(t, "known"), binder)

			rec, resp := serve(t, h, dispatchRequest(tt.body, "known"))
			require.Equal(t, http.StatusOK, rec.Code)
			require.Nil(t, resp.Error)

			var result testCallResult
			require.NoError(t, json.Unmarshal(resp.Result, &result))
			require.Len(t, result.Content, 1)
			assert.Equal(t, "text", result.Content[0].Type)
			assert.Equal(t, tt.wantIsError, result.IsError)
			assert.Contains(t, result.Content[0].Text, tt.wantText)
			assert.Equal(t, tt.wantBinds, binder.calls.Load())
		})
	}
}

func TestDispatch_ProtocolErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{name: "malformed json", body: `{"jsonrpc":`, wantCode: mcp.PARSE_ERROR},
		{name: "wrong version", body: `{"jsonrpc":"1.0","id":1,"method":"tools/list"}`, wantCode: mcp.INVALID_REQUEST},
		{name: "missing method", body: `{"jsonrpc":"2.0","id":1}`, wantCode: mcp.INVALID_REQUEST},
		{name: "unknown method", body: `{"jsonrpc":"2.0","id":1,"method":"resources/list"}`, wantCode: mcp.METHOD_NOT_FOUND},
		{name: "missing name", body: `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"arguments":{}}}`, wantCode: mcp.INVALID_PARAMS},
		{name: "bad params", body: `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":[1]}`, wantCode: mcp.INVALID_PARAMS},
		{name: "non-object arguments", body: `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"docs_create_document","arguments":"x"}}`, wantCode: mcp.INVALID_PARAMS},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, storeWithSession(t, "known"), &countingBinder{})
			rec, resp := serve(t, h, dispatchRequest(tt.body, "known"))

			require.Equal(t, http.StatusOK, rec.Code)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestDispatch_MethodNotAllowed(t *testing.T) {
	h := newTestServer(t, storeWithSession(t, "known"), &countingBinder{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dispatch", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
