// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"shopping_backend/internal/feature/product/domain/entity"
	"shopping_backend/internal/feature/product/usecase"
)

// CachingProductRepository decorates a ProductRepository with a Redis
// read-through cache for List and FindByID. Every successful mutation
// drops the affected keys. Cache failures never fail the call.
type CachingProductRepository struct {
	inner     usecase.ProductRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ProductRepository = (*CachingProductRepository)(nil)

// NewCachingProductRepository wraps inner. If ttl is 0 it defaults to
// 5 minutes; an empty namespace becomes "products". A nil rdb disables caching.
func NewCachingProductRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ProductRepository, namespace string) *CachingProductRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "products"
	}
	return &CachingProductRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create inserts through and invalidates the list.
func (c *CachingProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if err := c.inner.Create(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey())
	return nil
}

// List returns the cached list if present, otherwise loads and caches it.
func (c *CachingProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	var out []entity.Product
	if c.get(ctx, c.listKey(), &out) {
		return out, nil
	}

	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	// A mutation that lands between the load and this write can be
	// overwritten with the older list; the entry then lives until ttl.
	c.set(ctx, c.listKey(), out)
	return out, nil
}

// FindByID returns the cached product if present. Misses are not cached.
func (c *CachingProductRepository) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	var p entity.Product
	if c.get(ctx, c.itemKey(id), &p) {
		return &p, nil
	}

	found, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, c.itemKey(id), found)
	return found, nil
}

// Save writes through and invalidates the list and the item.
func (c *CachingProductRepository) Save(ctx context.Context, p *entity.Product) error {
	if err := c.inner.Save(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey(), c.itemKey(p.ID))
	return nil
}

// Delete removes through and invalidates the list and the item.
func (c *CachingProductRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey(), c.itemKey(id))
	return nil
}

func (c *CachingProductRepository) listKey() string {
	return c.namespace + ":all"
}

func (c *CachingProductRepository) itemKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}

// get decodes a cached value into dst and reports whether it was a hit.
// Corrupted entries are deleted.
func (c *CachingProductRepository) get(ctx context.Context, key string, dst interface{}) bool {
	if c.rdb == nil {
		return false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

func (c *CachingProductRepository) set(ctx context.Context, key string, v interface{}) {
	if c.rdb == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		slog.Warn("product cache write failed", "key", key, "error", err)
	}
}

func (c *CachingProductRepository) invalidate(ctx context.Context, keys ...string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("product cache invalidation failed", "keys", keys, "error", err)
	}
}
