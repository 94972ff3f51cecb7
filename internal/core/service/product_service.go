package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/productmgmt/product-api/internal/api/metrics"
	"github.com/productmgmt/product-api/internal/core/domain"
	"github.com/productmgmt/product-api/internal/core/ports"
)

// ProductService delegates every call to the repository. It holds no rules
// of its own; it only logs mutations and counts them.
type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.GetAll(ctx)
}

func (s *ProductService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) CreateProduct(ctx context.Context, p *domain.Product) error {
	if err := s.repo.Add(ctx, p); err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return err
	}

	metrics.ProductsCreatedTotal.Inc()
	s.logger.Info().Int64("product_id", p.ID).Str("name", p.Name).Msg("product created")
	return nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}

	metrics.ProductsUpdatedTotal.Inc()
	s.logger.Info().Int64("product_id", p.ID).Msg("product updated")
	return nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return err
	}

	metrics.ProductsDeletedTotal.Inc()
	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}
