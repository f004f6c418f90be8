package gormstore

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/cloudmart/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Checkout turns the user's cart into an order and empties the cart in one
// transaction.
func (r *GormRepo) Checkout(ctx context.Context, userID string, build func([]models.CartItem) models.Order) (*models.Order, error) {
	var order models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("user_id = ?", userID).Order("product_id ASC")
		if r.isPostgres() {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var items []models.CartItem
		if err := q.Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return models.ErrEmptyCart
		}

		order = build(items)
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		ids := make([]string, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
		}
		res := tx.Where("id IN ?", ids).Delete(&models.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(ids)) {
			return fmt.Errorf("cart of %q changed during checkout: %w", userID, models.ErrConflict)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
