package models

import "github.com/google/uuid"

var cartNamespace = uuid.MustParse("5b0c3f4e-8a0e-4a43-9d0b-7f3c1f0f6a21")

type CartItem struct {
	ID        string `gorm:"primaryKey"                        json:"id"`
	UserID    string `gorm:"uniqueIndex:idx_user_product;not null" json:"user_id"`
	ProductID string `gorm:"uniqueIndex:idx_user_product;not null" json:"product_id"`
	Quantity  int    `gorm:"not null;check:quantity>0"         json:"quantity"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// CartItemID derives the row id from the (user, product) pair, so a second
// write for the same pair lands on the same record in every backend.
func CartItemID(userID, productID string) string {
	return uuid.NewSHA1(cartNamespace, []byte(userID+"\x00"+productID)).String()
}

func NewCartItem(userID, productID string, quantity int) CartItem {
	return CartItem{
		ID:        CartItemID(userID, productID),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
}
