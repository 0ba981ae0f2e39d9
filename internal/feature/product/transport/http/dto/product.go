// Package dto defines the JSON shapes of the product endpoints.
package dto

import (
	"time"

	"shopping_backend/internal/feature/product/domain/entity"
)

// ProductReq is the body of /product/add and /product/update/:id.
type ProductReq struct {
	Name      string  `json:"name" binding:"required"`
	Category  string  `json:"category"`
	Price     float64 `json:"price" binding:"gte=0"`
	Completed bool    `json:"completed"`
}

// ProductRes is a single product as returned to clients.
type ProductRes struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromEntity converts a domain product into its response shape.
func FromEntity(p entity.Product) ProductRes {
	return ProductRes{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		Completed: p.Completed,
		CreatedAt: p.CreatedAt,
	}
}
