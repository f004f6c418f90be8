package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/cloudmart/internal/models"
)

var ErrValidation = errors.New("validation")

type CatalogStore interface {
	ListProducts(ctx context.Context, category string) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

type CartStore interface {
	GetCart(ctx context.Context, userID string) ([]models.CartItem, error)
	// PutCartItem reports whether a new row was created.
	PutCartItem(ctx context.Context, item *models.CartItem) (bool, error)
	// RemoveCartItem returns the number of rows deleted.
	RemoveCartItem(ctx context.Context, userID, productID string) (int64, error)
}

type OrderStore interface {
	Checkout(ctx context.Context, userID string, build func([]models.CartItem) models.Order) (*models.Order, error)
	ListOrders(ctx context.Context, userID string) ([]models.Order, error)
}
