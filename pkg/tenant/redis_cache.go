package tenant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCache is a Cache backed by Redis, for deployments where tenant
// lookups should be shared across instances.
type redisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a Redis-backed tenant cache. The prefix namespaces
// cache keys; it defaults to "tenant:".
func NewRedisCache(client *redis.Client, prefix string) Cache {
	if prefix == "" {
		prefix = "tenant:"
	}
	return &redisCache{client: client, prefix: prefix}
}

func (c *redisCache) Get(ctx context.Context, key string) (*Tenant, bool) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		return nil, false
	}

	var t Tenant
	if err := json.Unmarshal(data, &t); err != nil {
		// Corrupt entry: drop it so the next lookup repopulates.
		c.client.Del(ctx, c.prefix+key)
		return nil, false
	}
	return &t, true
}

func (c *redisCache) Set(ctx context.Context, key string, t *Tenant, ttl time.Duration) {
	data, err := json.Marshal(t)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.prefix+key, data, ttl)
}

func (c *redisCache) Delete(ctx context.Context, key string) {
	c.client.Del(ctx, c.prefix+key)
}

func (c *redisCache) Close() error {
	return nil // the caller owns the client
}
