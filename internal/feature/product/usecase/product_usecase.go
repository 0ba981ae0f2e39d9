// Package usecase implements the catalog operations.
package usecase

import (
	"context"
	"errors"

	"shopping_backend/internal/feature/product/domain/entity"
)

// ErrProductNotFound is returned when no product has the requested id.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository abstracts catalog persistence.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	List(ctx context.Context) ([]entity.Product, error)
	// FindByID returns ErrProductNotFound when no row matches.
	FindByID(ctx context.Context, id uint) (*entity.Product, error)
	Save(ctx context.Context, p *entity.Product) error
	// Delete returns ErrProductNotFound when no row was removed.
	Delete(ctx context.Context, id uint) error
}

// ProductFields are the mutable attributes of a product.
type ProductFields struct {
	Name      string
	Category  string
	Price     float64
	Completed bool
}

// ProductUsecase provides catalog CRUD.
type ProductUsecase struct {
	repo ProductRepository
}

// NewProductUsecase creates a ProductUsecase on the given repository.
func NewProductUsecase(r ProductRepository) *ProductUsecase {
	return &ProductUsecase{repo: r}
}

// Create stores a new product and returns it with its generated id.
func (u *ProductUsecase) Create(ctx context.Context, f ProductFields) (*entity.Product, error) {
	p := &entity.Product{
		Name:      f.Name,
		Category:  f.Category,
		Price:     f.Price,
		Completed: f.Completed,
	}
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns every product ordered by id.
func (u *ProductUsecase) List(ctx context.Context) ([]entity.Product, error) {
	return u.repo.List(ctx)
}

// Get returns one product.
func (u *ProductUsecase) Get(ctx context.Context, id uint) (*entity.Product, error) {
	return u.repo.FindByID(ctx, id)
}

// Update replaces the mutable fields of an existing product.
func (u *ProductUsecase) Update(ctx context.Context, id uint, f ProductFields) (*entity.Product, error) {
	p, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = f.Name
	p.Category = f.Category
	p.Price = f.Price
	p.Completed = f.Completed
	if err := u.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a product.
func (u *ProductUsecase) Delete(ctx context.Context, id uint) error {
	return u.repo.Delete(ctx, id)
}
