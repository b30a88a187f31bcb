package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	CATALOG_CACHE_PREFIX       = "pos:catalog:"
	CATALOG_PRODUCTS_CACHE_KEY = "pos:catalog:products"
	CACHE_TTL_DEFAULT          = 30 * time.Minute
)

// ErrCacheMiss is returned when nothing is cached.
var ErrCacheMiss = errors.New("catalog cache miss")

// RedisCache stores the product list as one JSON value.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = CACHE_TTL_DEFAULT
	}
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) SaveProducts(ctx context.Context, products []Product) error {
	payload, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal products: %w", err)
	}
	return c.rdb.Set(ctx, CATALOG_PRODUCTS_CACHE_KEY, payload, c.ttl).Err()
}

func (c *RedisCache) LoadProducts(ctx context.Context) ([]Product, error) {
	payload, err := c.rdb.Get(ctx, CATALOG_PRODUCTS_CACHE_KEY).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var products []Product
	if err := json.Unmarshal(payload, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached products: %w", err)
	}
	return products, nil
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, CATALOG_PRODUCTS_CACHE_KEY).Err()
}
