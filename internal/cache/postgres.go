package cache

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/observability"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS jd_keyword_cache (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
)`

// Postgres is a cache stored in the jd_keyword_cache table
type Postgres struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres connects to databaseURL, creates the cache table if needed and
// purges expired rows.
func NewPostgres(ctx context.Context, databaseURL string, logger *zap.Logger) (*Postgres, error) {
	logger = observability.OrNop(logger)
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, &BackendError{Backend: BackendPostgres, Op: "connect", Cause: err}
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &BackendError{Backend: BackendPostgres, Op: "ping", Cause: err}
	}

	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, &BackendError{Backend: BackendPostgres, Op: "create table", Cause: err}
	}

	p := &Postgres{pool: pool, logger: logger}
	if n, err := p.PurgeExpired(ctx); err != nil {
		logger.Debug("purge expired cache rows failed", zap.Error(err))
	} else if n > 0 {
		logger.Debug("purged expired cache rows", zap.Int64("rows", n))
	}
	return p, nil
}

// Close closes the connection pool
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// Get returns the stored value if it has not expired
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, bool) {
	var value []byte
	err := p.pool.QueryRow(ctx,
		`SELECT value FROM jd_keyword_cache WHERE key = $1 AND expires_at > NOW()`,
		key,
	).Scan(&value)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			p.logger.Debug("postgres get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return value, true
}

// Set upserts value with an expiry of now + ttl
func (p *Postgres) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	_, err := p.pool.Exec(ctx,
		`INSERT INTO jd_keyword_cache (key, value, expires_at)
		 VALUES ($1, $2, NOW() + make_interval(secs => $3))
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at`,
		key, value, ttl.Seconds(),
	)
	if err != nil {
		p.logger.Debug("postgres set failed", zap.String("key", key), zap.Error(err))
	}
}

// PurgeExpired deletes expired rows and returns how many were removed
func (p *Postgres) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := p.pool.Exec(ctx, `DELETE FROM jd_keyword_cache WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, &BackendError{Backend: BackendPostgres, Op: "purge", Cause: err}
	}
	return tag.RowsAffected(), nil
}
