package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"storefront-service/internal/domain"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keySet = "catalog:keys"

// CatalogCache holds product lists keyed by filter.
type CatalogCache interface {
	GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, bool)
	SetProducts(ctx context.Context, filter domain.ProductFilter, products []domain.Product)
	Invalidate(ctx context.Context) error
}

var (
	_ CatalogCache = (*RedisCatalogCache)(nil)
	_ CatalogCache = NopCatalogCache{}
)

func ProductsKey(filter domain.ProductFilter) string {
	featured := "any"
	if filter.Featured != nil {
		featured = strconv.FormatBool(*filter.Featured)
	}
	return fmt.Sprintf("catalog:products:featured=%s:category=%s", featured, filter.Category)
}

type RedisCatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

func NewRedisCatalogCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *RedisCatalogCache {
	return &RedisCatalogCache{rdb: rdb, ttl: ttl, log: log}
}

func (c *RedisCatalogCache) GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, bool) {
	key := ProductsKey(filter)
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var products []domain.Product
	if err := json.Unmarshal(b, &products); err != nil {
		c.log.Warn("catalog cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return products, true
}

func (c *RedisCatalogCache) SetProducts(ctx context.Context, filter domain.ProductFilter, products []domain.Product) {
	data, err := json.Marshal(products)
	if err != nil {
		return
	}

	key := ProductsKey(filter)
	_, err = c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, key, data, c.ttl)
		p.SAdd(ctx, keySet, key)
		return nil
	})
	if err != nil {
		c.log.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops every cached product list.
func (c *RedisCatalogCache) Invalidate(ctx context.Context) error {
	keys, err := c.rdb.SMembers(ctx, keySet).Result()
	if err != nil {
		return fmt.Errorf("catalog cache: list keys: %w", err)
	}
	keys = append(keys, keySet)
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("catalog cache: delete: %w", err)
	}
	return nil
}

// NopCatalogCache is used when no redis address is configured.
type NopCatalogCache struct{}

func (NopCatalogCache) GetProducts(context.Context, domain.ProductFilter) ([]domain.Product, bool) {
	return nil, false
}

func (NopCatalogCache) SetProducts(context.Context, domain.ProductFilter, []domain.Product) {}

func (NopCatalogCache) Invalidate(context.Context) error { return nil }
