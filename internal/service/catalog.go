package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/cloudmart/internal/models"
)

type CatalogService struct {
	Store CatalogStore
}

func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	return s.Store.ListProducts(ctx, strings.TrimSpace(category))
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("product id required: %w", ErrValidation)
	}
	return s.Store.GetProduct(ctx, id)
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.Store.Categories(ctx)
}
