package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Skotchmaster/cloudmart/internal/events"
	"github.com/Skotchmaster/cloudmart/internal/lock"
	"github.com/Skotchmaster/cloudmart/internal/models"
	"github.com/google/uuid"
)

type OrderService struct {
	Store     OrderStore
	Locker    lock.Locker
	Publisher events.Publisher
	Now       func() time.Time
	NewID     func() string
}

// PlaceOrder converts the user's cart into a confirmed order. The cart is
// emptied in the same storage operation that writes the order.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string) (*models.Order, error) {
	unlock, err := s.Locker.Lock(ctx, lock.UserKey(userID))
	if err != nil {
		return nil, fmt.Errorf("lock cart of %q: %w", userID, err)
	}
	defer unlock()

	id := s.newID()
	at := now(s.Now)
	order, err := s.Store.Checkout(ctx, userID, func(items []models.CartItem) models.Order {
		return models.NewOrder(id, userID, items, at)
	})
	if err != nil {
		return nil, err
	}

	lines := make([]events.OrderLine, 0, len(order.Items))
	for _, it := range order.Items {
		lines = append(lines, events.OrderLine{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	publish(ctx, s.Publisher, events.TopicOrders, userID, events.OrderEvent{
		Type:    events.OrderConfirmed,
		OrderID: order.ID,
		UserID:  userID,
		Items:   lines,
		At:      order.CreatedAt,
	})
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return s.Store.ListOrders(ctx, userID)
}

func (s *OrderService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
