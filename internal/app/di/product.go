// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	productadapters "shopping_backend/internal/feature/product/adapters"
	"shopping_backend/internal/feature/product/usecase"
	"shopping_backend/internal/platform/cache"
)

// NewProductRepository creates a ProductRepository implementation.
// If Redis is available, the gorm repository is wrapped in a read-through cache.
func NewProductRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.ProductRepository {
	repo := productadapters.NewProductRepository(db)
	if rdb != nil {
		return cache.NewCachingProductRepository(rdb, ttl, repo, "products")
	}
	return repo
}
