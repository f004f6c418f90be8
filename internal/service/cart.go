package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Skotchmaster/cloudmart/internal/events"
	"github.com/Skotchmaster/cloudmart/internal/lock"
	"github.com/Skotchmaster/cloudmart/internal/models"
	"github.com/Skotchmaster/cloudmart/pkg/logging"
)

const (
	MsgAdded   = "Added to cart"
	MsgUpdated = "Updated quantity"
	MsgRemoved = "Removed from cart"
)

type CartService struct {
	Store     CartStore
	Locker    lock.Locker
	Publisher events.Publisher
	Now       func() time.Time
}

func (s *CartService) GetCart(ctx context.Context, userID string) ([]models.CartItem, error) {
	return s.Store.GetCart(ctx, userID)
}

// AddToCart sets the quantity of productID in the user's cart, creating the
// row when it is absent. The quantity replaces any previous value.
func (s *CartService) AddToCart(ctx context.Context, userID, productID string, quantity int) (string, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return "", fmt.Errorf("product_id required: %w", ErrValidation)
	}
	if quantity < 1 {
		return "", fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}

	unlock, err := s.Locker.Lock(ctx, lock.UserKey(userID))
	if err != nil {
		return "", fmt.Errorf("lock cart of %q: %w", userID, err)
	}
	defer unlock()

	item := models.NewCartItem(userID, productID, quantity)
	created, err := s.Store.PutCartItem(ctx, &item)
	if err != nil {
		return "", err
	}

	typ, msg := events.CartItemUpdated, MsgUpdated
	if created {
		typ, msg = events.CartItemAdded, MsgAdded
	}
	publish(ctx, s.Publisher, events.TopicCart, userID, events.CartEvent{
		Type:      typ,
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		At:        now(s.Now),
	})
	return msg, nil
}

// RemoveFromCart succeeds whether or not the product was in the cart.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID string) (string, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return "", fmt.Errorf("product_id required: %w", ErrValidation)
	}

	unlock, err := s.Locker.Lock(ctx, lock.UserKey(userID))
	if err != nil {
		return "", fmt.Errorf("lock cart of %q: %w", userID, err)
	}
	defer unlock()

	removed, err := s.Store.RemoveCartItem(ctx, userID, productID)
	if err != nil {
		return "", err
	}

	if removed > 0 {
		publish(ctx, s.Publisher, events.TopicCart, userID, events.CartEvent{
			Type:      events.CartItemRemoved,
			UserID:    userID,
			ProductID: productID,
			At:        now(s.Now),
		})
	}
	return MsgRemoved, nil
}

func now(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock().UTC()
}

func publish(ctx context.Context, p events.Publisher, topic, key string, event any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Warn("publish_event_error",
			slog.String("topic", topic),
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}
