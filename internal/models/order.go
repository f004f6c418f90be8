package models

import "time"

type OrderStatus string

const OrderStatusConfirmed OrderStatus = "confirmed"

type Order struct {
	ID        string      `gorm:"primaryKey"                                json:"id"`
	UserID    string      `gorm:"index;not null"                            json:"user_id"`
	Items     []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Status    OrderStatus `gorm:"not null"                                  json:"status"`
	CreatedAt time.Time   `gorm:"index;not null"                            json:"created_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderLine is a snapshot of one cart row taken at checkout.
type OrderLine struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID   string `gorm:"index;not null"           json:"-"`
	Position  int    `gorm:"not null"                 json:"-"`
	ProductID string `gorm:"not null"                 json:"product_id"`
	Quantity  int    `gorm:"not null"                 json:"quantity"`
}

func (OrderLine) TableName() string {
	return "order_items"
}

// NewOrder snapshots cart rows into a confirmed order.
func NewOrder(id, userID string, items []CartItem, now time.Time) Order {
	lines := make([]OrderLine, 0, len(items))
	for i, it := range items {
		lines = append(lines, OrderLine{
			OrderID:   id,
			Position:  i,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	return Order{
		ID:        id,
		UserID:    userID,
		Items:     lines,
		Status:    OrderStatusConfirmed,
		CreatedAt: now.UTC(),
	}
}
