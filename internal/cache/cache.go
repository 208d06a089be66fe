// Package cache provides the key/value cache used for job description keyword
// extraction. Every backend is best-effort: lookups that fail are misses and
// writes that fail are dropped, so callers never depend on the cache for
// correctness.
package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/observability"
)

// Cache is a TTL key/value store
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// Backend names a cache implementation
type Backend string

const (
	BackendNone     Backend = "none"
	BackendMemory   Backend = "memory"
	BackendRedis    Backend = "redis"
	BackendPostgres Backend = "postgres"
)

// Options configures New
type Options struct {
	Backend     Backend
	TTL         time.Duration
	MaxEntries  int
	RedisURL    string
	DatabaseURL string
}

// Key builds a deterministic cache key from a prefix and the hashed parts
func Key(prefix string, parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%s:%x", prefix, hash[:16])
}

// BackendError represents a failed cache backend operation
type BackendError struct {
	Backend Backend
	Op      string
	Cause   error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("cache %s %s: %v", e.Backend, e.Op, e.Cause)
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}

// New builds the cache for opts. Redis and Postgres sit behind an in-memory L1;
// if the L2 backend cannot be reached it is disabled and only L1 is used.
// The returned close function releases backend connections and is never nil.
func New(ctx context.Context, opts Options, logger *zap.Logger, metrics *observability.Metrics) (Cache, func(), error) {
	logger = observability.Component(logger, "cache")
	noop := func() {}

	var c Cache
	closeFn := noop

	switch opts.Backend {
	case BackendNone, "":
		return nil, noop, nil
	case BackendMemory:
		c = NewMemory(opts.MaxEntries)
	case BackendRedis:
		r, err := NewRedis(ctx, opts.RedisURL, logger)
		if err != nil {
			logger.Warn("redis unavailable, L2 disabled", zap.Error(err))
			c = NewMemory(opts.MaxEntries)
			break
		}
		c = NewTiered(NewMemory(opts.MaxEntries), r, opts.TTL)
		closeFn = func() { _ = r.Close() }
	case BackendPostgres:
		p, err := NewPostgres(ctx, opts.DatabaseURL, logger)
		if err != nil {
			logger.Warn("postgres unavailable, L2 disabled", zap.Error(err))
			c = NewMemory(opts.MaxEntries)
			break
		}
		c = NewTiered(NewMemory(opts.MaxEntries), p, opts.TTL)
		closeFn = p.Close
	default:
		return nil, noop, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}

	logger.Debug("cache initialized",
		zap.String("backend", string(opts.Backend)),
		zap.Duration("ttl", opts.TTL),
		zap.Int("max_entries", opts.MaxEntries),
	)
	return Instrument(c, string(opts.Backend), metrics), closeFn, nil
}

// instrumented counts hits and misses of the wrapped cache
type instrumented struct {
	Cache
	backend string
	metrics *observability.Metrics
}

// Instrument wraps c so every Get is counted in metrics. A nil metrics returns c unchanged.
func Instrument(c Cache, backend string, metrics *observability.Metrics) Cache {
	if c == nil || metrics == nil {
		return c
	}
	return &instrumented{Cache: c, backend: backend, metrics: metrics}
}

func (i *instrumented) Get(ctx context.Context, key string) ([]byte, bool) {
	v, ok := i.Cache.Get(ctx, key)
	i.metrics.CacheResult(i.backend, ok)
	return v, ok
}
