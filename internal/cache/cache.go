package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache is a tiny read-through cache for expensive dashboard aggregates.
// Values are opaque JSON blobs.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration)
}

// ----------------------------------------------------------------------
// Redis
// ----------------------------------------------------------------------

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return &RedisCache{client: redis.NewClient(opts)}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	v, err := c.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return v, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) {
	// Cache writes are best-effort; a failed Set only costs a recompute.
	c.client.Set(ctx, key, value, ttl)
}

// ----------------------------------------------------------------------
// Noop (no REDIS_URL configured)
// ----------------------------------------------------------------------

type NoopCache struct{}

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (NoopCache) Get(ctx context.Context, key string) (string, bool) { return "", false }

func (NoopCache) Set(ctx context.Context, key string, value string, ttl time.Duration) {}

var (
	_ Cache = (*RedisCache)(nil)
	_ Cache = (*NoopCache)(nil)
)
