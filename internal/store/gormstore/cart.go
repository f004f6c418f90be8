package gormstore

import (
	"context"

	"github.com/Skotchmaster/cloudmart/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *GormRepo) GetCart(ctx context.Context, userID string) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("product_id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// PutCartItem writes the row keyed by item.ID, overwriting the quantity of an
// existing row. created reports whether the row did not exist before.
func (r *GormRepo) PutCartItem(ctx context.Context, item *models.CartItem) (bool, error) {
	created := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.CartItem{}).Where("id = ?", item.ID).Count(&n).Error; err != nil {
			return err
		}
		created = n == 0

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
		}).Create(item).Error
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func (r *GormRepo) RemoveCartItem(ctx context.Context, userID, productID string) (int64, error) {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}
