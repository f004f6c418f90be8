package memory

import (
	"context"

	"github.com/Skotchmaster/cloudmart/internal/models"
)

// Unavailable stands in for the cart and order stores in degraded mode:
// reads are empty and writes fail with models.ErrUnavailable.
type Unavailable struct{}

func (Unavailable) GetCart(context.Context, string) ([]models.CartItem, error) {
	return []models.CartItem{}, nil
}

func (Unavailable) PutCartItem(context.Context, *models.CartItem) (bool, error) {
	return false, models.ErrUnavailable
}

func (Unavailable) RemoveCartItem(context.Context, string, string) (int64, error) {
	return 0, models.ErrUnavailable
}

func (Unavailable) Checkout(context.Context, string, func([]models.CartItem) models.Order) (*models.Order, error) {
	return nil, models.ErrUnavailable
}

func (Unavailable) ListOrders(context.Context, string) ([]models.Order, error) {
	return []models.Order{}, nil
}

func (Unavailable) Ping(context.Context) error {
	return models.ErrUnavailable
}
