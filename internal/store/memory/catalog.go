package memory

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/cloudmart/internal/models"
)

// Catalog serves a fixed product list. It backs the catalog when no
// database is configured.
type Catalog struct {
	products []models.Product
}

func NewCatalog(products []models.Product) *Catalog {
	cp := make([]models.Product, len(products))
	copy(cp, products)
	return &Catalog{products: cp}
}

func (c *Catalog) ListProducts(_ context.Context, category string) ([]models.Product, error) {
	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *Catalog) GetProduct(_ context.Context, id string) (*models.Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, fmt.Errorf("product %q: %w", id, models.ErrNotFound)
}

func (c *Catalog) Categories(_ context.Context) ([]string, error) {
	return models.DistinctCategories(c.products), nil
}
