package events

import (
	"context"
	"time"
)

const (
	TopicCart   = "cart_events"
	TopicOrders = "order_events"
)

type Type string

const (
	CartItemAdded   Type = "cart_item_added"
	CartItemUpdated Type = "cart_item_updated"
	CartItemRemoved Type = "cart_item_removed"
	OrderConfirmed  Type = "order_confirmed"
)

type CartEvent struct {
	Type      Type      `json:"type"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity,omitempty"`
	At        time.Time `json:"at"`
}

type OrderLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type OrderEvent struct {
	Type    Type        `json:"type"`
	OrderID string      `json:"order_id"`
	UserID  string      `json:"user_id"`
	Items   []OrderLine `json:"items"`
	At      time.Time   `json:"at"`
}

// Publisher delivers domain events keyed by user so one user's events stay
// ordered on a partition.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
	Close() error
}

type Nop struct{}

func (Nop) Publish(context.Context, string, string, any) error { return nil }

func (Nop) Close() error { return nil }
