package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/teemow/docsgate/internal/google"
	"github.com/teemow/docsgate/internal/session"
)

// failingStore returns an error from every lookup.
type failingStore struct {
	session.Store
}

func (failingStore) Get(context.Context, string) (*google.Grant, bool, error) {
	return nil, false, errors.New("connection refused")
}

func TestSessionAuth_Rejections(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := storeWithSession(t, "known")

	tests := []struct {
		name    string
		store   session.Store
		headers map[string]string
	}{
		{name: "no header", store: store},
		{name: "empty header", store: store, headers: map[string]string{SessionHeader: "  "}},
		{name: "unknown session", store: store, headers: map[string]string{SessionHeader: "forged"}},
		{name: "bearer scheme is not a session", store: store, headers: map[string]string{"Authorization": "Bearer known"}},
		{name: "store failure", store: failingStore{}, headers: map[string]string{SessionHeader: "known"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called int
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called++ })
			handler := SessionAuth(tt.store, nil, nil)(next)

			req := httptest.NewRequest(http.MethodPost, "/dispatch", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Session", rec.Header().Get("WWW-Authenticate"))
			assert.Zero(t, called, "wrapped handler must not run")

			var body errorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, "unauthorized", body.Error)
		})
	}
}

func TestSessionAuth_AttachesGrant(t *testing.T) {
	defer goleak.VerifyNone(t)

	store := storeWithSession(t, "known")
	want, _, _ := store.Get(context.Background(), "known")

	tests := []struct {
		name   string
		header string
		value  string
	}{
		{name: "session header", header: SessionHeader, value: "known"},
		{name: "authorization header", header: "Authorization", value: "Session known"},
		{name: "authorization scheme is case insensitive", header: "Authorization", value: "session known"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID string
			var gotGrant *google.Grant
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID, _ = session.IDFromContext(r.Context())
				gotGrant, _ = session.GrantFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodPost, "/dispatch", nil)
			req.Header.Set(tt.header, tt.value)
			rec := httptest.NewRecorder()
			SessionAuth(store, nil, nil)(next).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Equal(t, "known", gotID)
			assert.Same(t, want, gotGrant)
		})
	}
}
