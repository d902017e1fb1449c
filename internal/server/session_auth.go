package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/teemow/docsgate/internal/instrumentation"
	"github.com/teemow/docsgate/internal/logging"
	"github.com/teemow/docsgate/internal/session"
)

// SessionHeader carries the session id.
const SessionHeader = "X-Session-ID"

const sessionAuthScheme = "Session"

// SessionAuth rejects requests without a known session and attaches the
// session's grant to the context of the rest.
func SessionAuth(store session.Store, logger *slog.Logger, metrics *instrumentation.Metrics) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logging.WithComponent(logger, "session_auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id := sessionIDFromRequest(r)
			if id == "" {
				metrics.RecordSessionRejected(ctx, instrumentation.RejectMissing)
				unauthorized(w, "missing session id")
				return
			}

			grant, ok, err := store.Get(ctx, id)
			if err != nil {
				logger.Error("session lookup failed", logging.Session(id), logging.Err(err))
				metrics.RecordSessionRejected(ctx, instrumentation.RejectStoreError)
				unauthorized(w, "invalid session")
				return
			}
			if !ok {
				logger.Debug("unknown session", logging.Session(id))
				metrics.RecordSessionRejected(ctx, instrumentation.RejectUnknown)
				unauthorized(w, "invalid session")
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithGrant(ctx, id, grant)))
		})
	}
}

func sessionIDFromRequest(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(SessionHeader)); id != "" {
		return id
	}
	scheme, value, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if ok && strings.EqualFold(scheme, sessionAuthScheme) {
		return strings.TrimSpace(value)
	}
	return ""
}

func unauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("WWW-Authenticate", sessionAuthScheme)
	writeError(w, http.StatusUnauthorized, ErrUnauthorized.Error(), description)
}
