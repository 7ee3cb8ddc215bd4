package fetch

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultProbeCacheTTL is how long a probe outcome is reused.
const DefaultProbeCacheTTL = 6 * time.Hour

const probeKeyPrefix = "resume-analyzer:probe:"

// CachedProber memoizes another Prober's answers in Redis.
// Cache failures are logged and fall through to the wrapped prober.
type CachedProber struct {
	rdb    *redis.Client
	next   Prober
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedProber wraps next with a Redis-backed cache.
func NewCachedProber(rdb *redis.Client, next Prober, ttl time.Duration, logger *zap.Logger) *CachedProber {
	if ttl <= 0 {
		ttl = DefaultProbeCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedProber{rdb: rdb, next: next, ttl: ttl, logger: logger}
}

// Reachable returns the cached outcome for url or probes and stores it.
func (c *CachedProber) Reachable(ctx context.Context, url string) bool {
	key := probeKeyPrefix + url

	val, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		return val == "1"
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("probe cache read failed", zap.String("url", url), zap.Error(err))
	}

	ok := c.next.Reachable(ctx, url)

	stored := "0"
	if ok {
		stored = "1"
	}
	if err := c.rdb.Set(ctx, key, stored, c.ttl).Err(); err != nil {
		c.logger.Warn("probe cache write failed", zap.String("url", url), zap.Error(err))
	}
	return ok
}

// NewRedisClient parses a redis:// URL into a client.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, &Error{URL: redisURL, Message: "invalid redis URL", Cause: err}
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	return redis.NewClient(opts), nil
}
