package ports

import (
	"context"

	"github.com/productmgmt/product-api/internal/core/domain"
)

// ProductService defines use-case operations for products. It mirrors
// ProductRepository so handlers never talk to storage directly.
type ProductService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}
