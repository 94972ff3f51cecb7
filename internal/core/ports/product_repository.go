package ports

import (
	"context"

	"github.com/productmgmt/product-api/internal/core/domain"
)

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	// GetAll returns every product in insertion order.
	GetAll(ctx context.Context) ([]domain.Product, error)
	// GetByID returns domain.ErrProductNotFound when no row has the given id.
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// Add assigns p.ID.
	Add(ctx context.Context, p *domain.Product) error
	// Update overwrites the row matching p.ID, or returns domain.ErrProductNotFound.
	Update(ctx context.Context, p *domain.Product) error
	// Delete is a no-op when the id is absent.
	Delete(ctx context.Context, id int64) error
}
