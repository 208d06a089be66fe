package keywords

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/cache"
	"github.com/jonathan/resume-matcher/internal/observability"
)

const (
	// CachePrefix namespaces job description keyword entries
	CachePrefix = "jd_keywords"
	// DefaultCacheTTL is how long extracted keywords are reused
	DefaultCacheTTL = time.Hour
)

// CachedExtractor is a read-through cache in front of a KeywordSource
type CachedExtractor struct {
	source KeywordSource
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedExtractor wraps source. A nil cache disables caching; a
// non-positive ttl uses DefaultCacheTTL.
func NewCachedExtractor(source KeywordSource, c cache.Cache, ttl time.Duration, logger *zap.Logger) *CachedExtractor {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedExtractor{
		source: source,
		cache:  c,
		ttl:    ttl,
		logger: observability.Component(logger, "keywords.cache"),
	}
}

// Keywords returns cached keywords for text or extracts and stores them
func (c *CachedExtractor) Keywords(ctx context.Context, text string) []string {
	if c.cache == nil {
		return c.source.Keywords(ctx, text)
	}

	key := cache.Key(CachePrefix, text)
	if data, ok := c.cache.Get(ctx, key); ok {
		var cached []string
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached
		}
		c.logger.Debug("discarding malformed cache entry", zap.String("key", key))
	}

	keywords := c.source.Keywords(ctx, text)
	data, err := json.Marshal(keywords)
	if err != nil {
		return keywords
	}
	c.cache.Set(ctx, key, data, c.ttl)
	return keywords
}
