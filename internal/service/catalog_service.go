package service

import (
	"context"

	"github.com/sattamap/mechkeys-server/internal/domain"
	"github.com/sattamap/mechkeys-server/internal/repository"
)

type CatalogService struct {
	products repository.ProductRepository
}

func NewCatalogService(products repository.ProductRepository) *CatalogService {
	return &CatalogService{
		products: products,
	}
}

func (s *CatalogService) Create(ctx context.Context, product *domain.Product) (string, error) {
	return s.products.Insert(ctx, product)
}

// List returns every matching product annotated with its stock label.
func (s *CatalogService) List(ctx context.Context, filter domain.ProductFilter) ([]domain.StockedProduct, error) {
	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	stocked := make([]domain.StockedProduct, 0, len(products))
	for _, p := range products {
		stocked = append(stocked, domain.StockedProduct{
			Product: p,
			Stock:   p.StockLabel(),
		})
	}

	return stocked, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.Get(ctx, id)
}
