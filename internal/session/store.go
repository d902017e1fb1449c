package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/teemow/docsgate/internal/google"
	"github.com/teemow/docsgate/internal/logging"
)

// Store maps opaque session identifiers to credential grants.
//
// Get returns ok=false when the id is unknown; absence is not an error.
// Errors are reserved for storage failures. Records are never expired by the
// store: grant expiry is handled where the grant is used.
type Store interface {
	Put(ctx context.Context, id string, grant *google.Grant) error
	Get(ctx context.Context, id string) (grant *google.Grant, ok bool, err error)
	Close() error
}

// MemoryStore is a process-local Store. It keeps grant pointers, so a grant
// refreshed in place is seen by every later request on the same session.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*google.Grant
	logger   *slog.Logger
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(logger *slog.Logger) *MemoryStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryStore{
		sessions: make(map[string]*google.Grant),
		logger:   logging.WithComponent(logger, "session_store"),
	}
}

// Put stores grant under id, replacing any previous record.
func (s *MemoryStore) Put(_ context.Context, id string, grant *google.Grant) error {
	s.mu.Lock()
	_, replaced := s.sessions[id]
	s.sessions[id] = grant
	s.mu.Unlock()

	if replaced {
		s.logger.Warn("session record overwritten", logging.Session(id))
	}
	return nil
}

// Get returns the grant stored under id.
func (s *MemoryStore) Get(_ context.Context, id string) (*google.Grant, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	grant, ok := s.sessions[id]
	return grant, ok, nil
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close drops every session.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	n := len(s.sessions)
	s.sessions = make(map[string]*google.Grant)
	s.mu.Unlock()

	s.logger.Info("session store cleared", "sessions", n)
	return nil
}
