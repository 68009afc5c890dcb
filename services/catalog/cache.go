// File: services/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// CatalogCache holds the assembled filter catalog between requests.
// Reference data is immutable, so entries only expire by TTL.
type CatalogCache interface {
	Get(ctx context.Context) (*FilterCatalog, bool)
	Set(ctx context.Context, fc FilterCatalog) error
}

const catalogCacheKey = "catalog:filters"

type RedisCatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCatalogCache(client *redis.Client, ttl time.Duration) CatalogCache {
	return &RedisCatalogCache{client: client, ttl: ttl}
}

func (c *RedisCatalogCache) Get(ctx context.Context) (*FilterCatalog, bool) {
	val, err := c.client.Get(ctx, catalogCacheKey).Result()
	if err != nil {
		return nil, false
	}
	var fc FilterCatalog
	if err := json.Unmarshal([]byte(val), &fc); err != nil {
		return nil, false // corrupt entry, fall through to the repository
	}
	return &fc, true
}

func (c *RedisCatalogCache) Set(ctx context.Context, fc FilterCatalog) error {
	data, err := json.Marshal(fc)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, catalogCacheKey, data, c.ttl).Err()
}
