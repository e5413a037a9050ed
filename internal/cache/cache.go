// internal/cache/cache.go
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stapubox-search/internal/common/database"
	stderrors "stapubox-search/internal/common/errors"
	"stapubox-search/internal/common/logger"
	"stapubox-search/internal/common/metrics"
	"stapubox-search/internal/query"
	"stapubox-search/internal/search"
)

// ResponseCache stores backend responses in Redis keyed by the full
// translated query. The cache is best effort: a Redis failure is logged
// and reported as a miss, never surfaced to the caller.
type ResponseCache struct {
	redis  *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

func New(rdb *database.RedisClient, ttl time.Duration, log logger.Logger) *ResponseCache {
	return &ResponseCache{
		redis:  rdb,
		ttl:    ttl,
		logger: log,
	}
}

// Key derives a stable cache key from everything that affects the backend
// response. Two requests that translate identically share an entry.
func Key(index string, q query.Result) string {
	geo := ""
	if q.GeoAnchor != nil {
		geo = fmt.Sprintf("%g,%g,%d", q.GeoAnchor.Lat, q.GeoAnchor.Lng, q.GeoAnchor.RadiusMeters)
	}
	raw := fmt.Sprintf("%s|%s|%s|%s|%d|%d", index, q.FreeText, q.Filters, geo, q.Page, q.HitsPerPage)

	sum := sha256.Sum256([]byte(raw))
	return "search:" + hex.EncodeToString(sum[:])
}

// Get returns the cached response for key, or nil on a miss.
func (c *ResponseCache) Get(ctx context.Context, key string) *search.Response {
	val, err := c.redis.Get(ctx, key)
	if err == redis.Nil {
		metrics.CacheOperations.WithLabelValues("miss").Inc()
		return nil
	}
	if err != nil {
		metrics.CacheOperations.WithLabelValues("error").Inc()
		c.logger.WithError(stderrors.NewCacheUnavailableError(err)).Warn("cache read failed", map[string]interface{}{"key": key})
		return nil
	}

	var resp search.Response
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		metrics.CacheOperations.WithLabelValues("error").Inc()
		c.logger.Warn("cache entry corrupt", map[string]interface{}{"key": key})
		return nil
	}

	metrics.CacheOperations.WithLabelValues("hit").Inc()
	return &resp
}

// Set stores a response under key with the configured TTL.
func (c *ResponseCache) Set(ctx context.Context, key string, resp *search.Response) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, raw, c.ttl); err != nil {
		metrics.CacheOperations.WithLabelValues("error").Inc()
		c.logger.WithError(stderrors.NewCacheUnavailableError(err)).Warn("cache write failed", map[string]interface{}{"key": key})
	}
}
