package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/observability"
)

// Redis is a cache backed by a Redis server
type Redis struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// NewRedis connects to redisURL and verifies the server with a ping
func NewRedis(ctx context.Context, redisURL string, logger *zap.Logger) (*Redis, error) {
	logger = observability.OrNop(logger)
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, &BackendError{Backend: BackendRedis, Op: "parse url", Cause: err}
	}

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, &BackendError{Backend: BackendRedis, Op: "ping", Cause: err}
	}

	logger.Debug("redis connected", zap.String("addr", opts.Addr))
	return &Redis{rdb: rdb, logger: logger}, nil
}

// NewRedisFromClient wraps an existing client
func NewRedisFromClient(rdb *redis.Client, logger *zap.Logger) *Redis {
	return &Redis{rdb: rdb, logger: observability.OrNop(logger)}
}

// Get returns the stored value; errors other than a missing key are logged and treated as a miss
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Debug("redis get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return data, true
}

// Set stores value with ttl; failures are logged and dropped
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := r.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Debug("redis set failed", zap.String("key", key), zap.Error(err))
	}
}

// Close closes the client
func (r *Redis) Close() error {
	return r.rdb.Close()
}
