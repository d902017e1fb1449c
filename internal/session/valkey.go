package session

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/valkey-io/valkey-go"

	"github.com/teemow/docsgate/internal/google"
	"github.com/teemow/docsgate/internal/logging"
)

// DefaultKeyPrefix is prepended to every key written by ValkeyStore.
const DefaultKeyPrefix = "docsgate:"

// ValkeyConfig configures the Valkey-backed session store.
type ValkeyConfig struct {
	// URL is either a host:port address or a valkey://, redis:// or rediss:// URL.
	URL        string
	Password   string
	TLSEnabled bool
	KeyPrefix  string
	DB         int
}

// kv is the subset of key/value operations the store needs.
type kv interface {
	set(ctx context.Context, key string, value []byte) error
	get(ctx context.Context, key string) ([]byte, bool, error)
	close()
}

// ValkeyStore persists grants in Valkey so sessions survive restarts and can
// be shared by several replicas. Records carry no TTL.
//
// Unlike MemoryStore, Get decodes a new Grant on every call. Refreshed grants
// must be written back with Put.
type ValkeyStore struct {
	kv     kv
	prefix string
	logger *slog.Logger
}

// NewValkeyStore connects to Valkey.
func NewValkeyStore(cfg ValkeyConfig, logger *slog.Logger) (*ValkeyStore, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("valkey URL is required")
	}

	opt, err := clientOption(cfg)
	if err != nil {
		return nil, err
	}

	client, err := valkey.NewClient(opt)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to valkey: %w", err)
	}

	return newValkeyStore(&valkeyKV{client: client}, cfg.KeyPrefix, logger), nil
}

func newValkeyStore(backend kv, prefix string, logger *slog.Logger) *ValkeyStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ValkeyStore{
		kv:     backend,
		prefix: prefix,
		logger: logging.WithComponent(logger, "session_store"),
	}
}

func clientOption(cfg ValkeyConfig) (valkey.ClientOption, error) {
	var opt valkey.ClientOption
	if strings.Contains(cfg.URL, "://") {
		parsed, err := valkey.ParseURL(cfg.URL)
		if err != nil {
			return opt, fmt.Errorf("invalid valkey URL: %w", err)
		}
		opt = parsed
	} else {
		opt.InitAddress = []string{cfg.URL}
	}

	if cfg.Password != "" {
		opt.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opt.SelectDB = cfg.DB
	}
	if cfg.TLSEnabled && opt.TLSConfig == nil {
		opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opt, nil
}

func (s *ValkeyStore) key(id string) string {
	return s.prefix + "session:" + id
}

// Put writes grant under id, replacing any previous record.
func (s *ValkeyStore) Put(ctx context.Context, id string, grant *google.Grant) error {
	data, err := json.Marshal(grant)
	if err != nil {
		return fmt.Errorf("failed to encode grant: %w", err)
	}
	if err := s.kv.set(ctx, s.key(id), data); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Get reads and decodes the grant stored under id.
func (s *ValkeyStore) Get(ctx context.Context, id string) (*google.Grant, bool, error) {
	data, ok, err := s.kv.get(ctx, s.key(id))
	if err != nil {
		return nil, false, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	grant, err := google.ParseGrant(data)
	if err != nil {
		s.logger.Error("discarding undecodable session record", logging.Session(id), logging.Err(err))
		return nil, false, nil
	}
	return grant, true, nil
}

// Close closes the Valkey connection. Stored sessions are kept.
func (s *ValkeyStore) Close() error {
	s.kv.close()
	return nil
}

// valkeyKV adapts a valkey.Client to kv.
type valkeyKV struct {
	client valkey.Client
}

func (v *valkeyKV) set(ctx context.Context, key string, value []byte) error {
	return v.client.Do(ctx, v.client.B().Set().Key(key).Value(string(value)).Build()).Error()
}

func (v *valkeyKV) get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := v.client.Do(ctx, v.client.B().Get().Key(key).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (v *valkeyKV) close() {
	v.client.Close()
}
