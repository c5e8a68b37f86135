package trivia

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	catalogCacheKey   = "catalog:categories"
	defaultCatalogTTL = 5 * time.Minute
)

// CachedCatalog decorates a CategoryStore with a Redis cache. The catalog is
// read-only in this engine, so a short TTL is enough to pick up out-of-band
// changes.
type CachedCatalog struct {
	store  CategoryStore
	client *redis.Client
	ttl    time.Duration
}

var _ CategoryStore = (*CachedCatalog)(nil)

func NewCachedCatalog(store CategoryStore, client *redis.Client, ttl time.Duration) *CachedCatalog {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	return &CachedCatalog{store: store, client: client, ttl: ttl}
}

// ListAll serves the catalog from Redis when possible, falling through to
// the underlying store on a miss or any cache error.
func (c *CachedCatalog) ListAll(ctx context.Context) ([]Category, error) {
	data, err := c.client.Get(ctx, catalogCacheKey).Bytes()
	if err == nil {
		var cats []Category
		if err := json.Unmarshal(data, &cats); err == nil {
			return cats, nil
		}
	} else if err != redis.Nil {
		// Cache unavailable; the store still answers.
		return c.store.ListAll(ctx)
	}

	cats, err := c.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(cats); err == nil {
		_ = c.client.Set(ctx, catalogCacheKey, payload, c.ttl).Err()
	}
	return cats, nil
}
