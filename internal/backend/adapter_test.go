package backend

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/teemow/docsgate/internal/drive"
	"github.com/teemow/docsgate/internal/google"
	"github.com/teemow/docsgate/internal/tools"
)

var testNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// countingRefresher hands out numbered access tokens.
type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) Refresh(_ context.Context, refreshToken string) (*oauth2.Token, error) {
	n := r.calls.Add(1)
	if r.err != nil {
		return nil, r.err
	}
	return &oauth2.Token{
		AccessToken: "refreshed-" + string(rune('0'+n)),
		Expiry:      testNow.Add(time.Hour),
	}, nil
}

// fakeGoogle serves the Docs API under / and the Drive API under /drive/v3/
// and records the bearer token of each request.
type fakeGoogle struct {
	srv     *httptest.Server
	mu      sync.Mutex
	tokens  []string
	calls   atomic.Int32
	pdfBody string
}

func newFakeGoogle(t *testing.T) *fakeGoogle {
	t.Helper()
	f := &fakeGoogle{pdfBody: "%PDF-1.4 test"}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/documents", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"documentId": "d1", "title": body["title"]})
	})
	mux.HandleFunc("GET /drive/v3/files/{id}/export", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = io.WriteString(w, f.pdfBody)
	})
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeGoogle) record(r *http.Request) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
}

func (f *fakeGoogle) options() []Option {
	return []Option{
		WithEndpoints(f.srv.URL+"/", f.srv.URL+"/drive/v3/"),
		WithBaseTransport(f.srv.Client().Transport),
		WithClock(func() time.Time { return testNow }),
	}
}

func grantExpiringIn(d time.Duration) *google.Grant {
	return google.NewGrant(&oauth2.Token{
		AccessToken:  "original",
		RefreshToken: "refresh",
		Expiry:       testNow.Add(d),
	})
}

func TestAdapter_RefreshThreshold(t *testing.T) {
	tests := []struct {
		name        string
		grant       *google.Grant
		wantRefresh int32
		wantToken   string
	}{
		{name: "expires in 30s", grant: grantExpiringIn(30 * time.Second), wantRefresh: 1, wantToken: "refreshed-1"},
		{name: "already expired", grant: grantExpiringIn(-time.Minute), wantRefresh: 1, wantToken: "refreshed-1"},
		{name: "expires in 2m", grant: grantExpiringIn(2 * time.Minute), wantRefresh: 0, wantToken: "original"},
		{
			name:        "no expiry",
			grant:       google.NewGrant(&oauth2.Token{AccessToken: "original", RefreshToken: "refresh"}),
			wantRefresh: 0,
			wantToken:   "original",
		},
		{
			name:        "refresh token only",
			grant:       google.NewGrant(&oauth2.Token{RefreshToken: "refresh"}),
			wantRefresh: 1,
			wantToken:   "refreshed-1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeGoogle(t)
			refresher := &countingRefresher{}
			a := New("s1", tt.grant, refresher, fake.options()...)

			doc, err := a.CreateDocument(context.Background(), "Notes")
			require.NoError(t, err)
			assert.Equal(t, "d1", doc.DocumentID)

			assert.Equal(t, tt.wantRefresh, refresher.calls.Load())
			assert.Equal(t, []string{tt.wantToken}, fake.tokens)
			assert.Equal(t, tt.wantToken, tt.grant.Token().AccessToken)
		})
	}
}

func TestAdapter_RefreshOncePerExpiry(t *testing.T) {
	fake := newFakeGoogle(t)
	refresher := &countingRefresher{}
	grant := grantExpiringIn(10 * time.Second)
	a := New("s1", grant, refresher, fake.options()...)

	for i := 0; i < 3; i++ {
		_, err := a.CreateDocument(context.Background(), "Notes")
		require.NoError(t, err)
	}

	assert.Equal(t, int32(1), refresher.calls.Load())
	assert.Equal(t, "refresh", grant.RefreshToken(), "refresh token must survive a refresh without rotation")
}

func TestAdapter_OnRefreshHook(t *testing.T) {
	fake := newFakeGoogle(t)
	var hooked atomic.Int32
	var gotSession string
	opts := append(fake.options(), WithOnRefresh(func(_ context.Context, sessionID string, g *google.Grant) error {
		hooked.Add(1)
		gotSession = sessionID
		assert.Equal(t, "refreshed-1", g.Token().AccessToken)
		return errors.New("store unavailable")
	}))
	a := New("s1", grantExpiringIn(0), &countingRefresher{}, opts...)

	_, err := a.CreateDocument(context.Background(), "Notes")
	require.NoError(t, err, "a failing hook must not fail the request")
	assert.Equal(t, int32(1), hooked.Load())
	assert.Equal(t, "s1", gotSession)
}

func TestAdapter_RefreshFailure(t *testing.T) {
	fake := newFakeGoogle(t)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	refresher := &countingRefresher{err: errors.New("invalid_grant")}
	grant := google.NewGrant(&oauth2.Token{
		AccessToken:  "original",
		RefreshToken: "1//secret-refresh-token",
		Expiry:       testNow,
	})
	a := New("s1", grant, refresher, append(fake.options(), WithLogger(logger))...)

	_, err := a.CreateDocument(context.Background(), "Notes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token refresh failed")
	assert.Zero(t, fake.calls.Load(), "no API call after a failed refresh")

	out := buf.String()
	assert.Contains(t, out, "token refresh failed")
	assert.Contains(t, out, "operation=refresh")
	assert.Contains(t, out, "[token:23 chars]")
	assert.NotContains(t, out, "secret-refresh-token")
}

func TestAdapter_NoRefresher(t *testing.T) {
	a := New("", grantExpiringIn(0), nil)
	_, err := a.CreateDocument(context.Background(), "Notes")
	assert.ErrorIs(t, err, ErrRefreshUnavailable)
}

func TestAdapter_MissingCredentials(t *testing.T) {
	tests := []struct {
		name  string
		grant *google.Grant
	}{
		{name: "nil grant", grant: nil},
		{name: "empty grant", grant: google.NewGrant(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refresher := &countingRefresher{}
			a := New("s1", tt.grant, refresher)
			_, err := a.ListFiles(context.Background(), drive.ListOptions{})
			assert.ErrorIs(t, err, tools.ErrMissingCredentials)
			assert.Zero(t, refresher.calls.Load())
		})
	}
}

func TestAdapter_ExportPDF(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(t.TempDir(), "nested", "out.pdf")

	tests := []struct {
		name       string
		policy     ExportPolicy
		outputPath string
		wantPath   string
		wantInline bool
	}{
		{name: "export dir keeps base name", policy: ExportPolicy{Dir: dir}, outputPath: "../../etc/report.pdf", wantPath: filepath.Join(dir, "report.pdf")},
		{name: "export dir without path", policy: ExportPolicy{Dir: dir}, wantPath: filepath.Join(dir, "d1.pdf")},
		{name: "local path", policy: ExportPolicy{AllowLocalPaths: true}, outputPath: local, wantPath: local},
		{name: "inline", policy: ExportPolicy{}, outputPath: "/tmp/ignored.pdf", wantInline: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeGoogle(t)
			a := New("s1", grantExpiringIn(time.Hour), nil, append(fake.options(), WithExportPolicy(tt.policy))...)

			res, err := a.ExportPDF(context.Background(), "d1", tt.outputPath)
			require.NoError(t, err)
			assert.True(t, res.Success)
			assert.Equal(t, "PDF exported successfully", res.Message)
			assert.Equal(t, int64(len(fake.pdfBody)), res.Bytes)

			if tt.wantInline {
				assert.Empty(t, res.OutputPath)
				assert.Equal(t, "base64", res.Encoding)
				decoded, err := base64.StdEncoding.DecodeString(res.Content)
				require.NoError(t, err)
				assert.Equal(t, fake.pdfBody, string(decoded))
				return
			}

			assert.Equal(t, tt.wantPath, res.OutputPath)
			assert.Empty(t, res.Content)
			data, err := os.ReadFile(tt.wantPath)
			require.NoError(t, err)
			assert.Equal(t, fake.pdfBody, string(data))
		})
	}
}

func TestFactory(t *testing.T) {
	grant := grantExpiringIn(time.Hour)
	backend := Factory(nil)("s1", grant)
	a, ok := backend.(*Adapter)
	require.True(t, ok)
	assert.Same(t, grant, a.grant)
	assert.Equal(t, "s1", a.sessionID)
}
