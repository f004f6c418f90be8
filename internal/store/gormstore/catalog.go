package gormstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Skotchmaster/cloudmart/internal/models"
	"gorm.io/gorm"
)

func (r *GormRepo) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if category != "" {
		q = q.Where("category = ?", category)
	}

	items := make([]models.Product, 0)
	if err := q.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %q: %w", id, models.ErrNotFound)
		}
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) Categories(ctx context.Context) ([]string, error) {
	cats := make([]string, 0)
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Distinct("category").Pluck("category", &cats).Error; err != nil {
		return nil, err
	}
	// collation differs between databases, so sort bytewise here
	sort.Strings(cats)
	return cats, nil
}
