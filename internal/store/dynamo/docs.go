package dynamo

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/cloudmart/internal/models"
)

// Table layouts:
//
//	products  HASH id
//	cart      HASH user_id, RANGE product_id
//	orders    HASH user_id, RANGE id
const (
	attrID        = "id"
	attrUserID    = "user_id"
	attrProductID = "product_id"
	attrCategory  = "category"
	attrQuantity  = "quantity"
)

type productDoc struct {
	ID       string                `dynamodbav:"id"`
	Name     string                `dynamodbav:"name"`
	Category string                `dynamodbav:"category"`
	Price    attributevalue.Number `dynamodbav:"price"`
}

type cartDoc struct {
	UserID    string `dynamodbav:"user_id"`
	ProductID string `dynamodbav:"product_id"`
	ID        string `dynamodbav:"id"`
	Quantity  int    `dynamodbav:"quantity"`
}

type orderLineDoc struct {
	ProductID string `dynamodbav:"product_id"`
	Quantity  int    `dynamodbav:"quantity"`
}

type orderDoc struct {
	UserID    string         `dynamodbav:"user_id"`
	ID        string         `dynamodbav:"id"`
	Items     []orderLineDoc `dynamodbav:"items"`
	Status    string         `dynamodbav:"status"`
	CreatedAt time.Time      `dynamodbav:"created_at"`
}

func toProductDoc(p models.Product) productDoc {
	return productDoc{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    attributevalue.Number(p.Price.String()),
	}
}

func (d productDoc) model() (models.Product, error) {
	price := decimal.Zero
	if d.Price != "" {
		var err error
		price, err = decimal.NewFromString(string(d.Price))
		if err != nil {
			return models.Product{}, fmt.Errorf("product %q price: %w", d.ID, err)
		}
	}
	return models.Product{ID: d.ID, Name: d.Name, Category: d.Category, Price: price}, nil
}

func toCartDoc(it models.CartItem) cartDoc {
	return cartDoc{UserID: it.UserID, ProductID: it.ProductID, ID: it.ID, Quantity: it.Quantity}
}

func (d cartDoc) model() models.CartItem {
	id := d.ID
	if id == "" {
		id = models.CartItemID(d.UserID, d.ProductID)
	}
	return models.CartItem{ID: id, UserID: d.UserID, ProductID: d.ProductID, Quantity: d.Quantity}
}

func toOrderDoc(o models.Order) orderDoc {
	lines := make([]orderLineDoc, 0, len(o.Items))
	for _, l := range o.Items {
		lines = append(lines, orderLineDoc{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return orderDoc{
		UserID:    o.UserID,
		ID:        o.ID,
		Items:     lines,
		Status:    string(o.Status),
		CreatedAt: o.CreatedAt.UTC(),
	}
}

func (d orderDoc) model() models.Order {
	lines := make([]models.OrderLine, 0, len(d.Items))
	for i, l := range d.Items {
		lines = append(lines, models.OrderLine{OrderID: d.ID, Position: i, ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return models.Order{
		ID:        d.ID,
		UserID:    d.UserID,
		Items:     lines,
		Status:    models.OrderStatus(d.Status),
		CreatedAt: d.CreatedAt,
	}
}

func productKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrID: &types.AttributeValueMemberS{Value: id},
	}
}

func cartKey(userID, productID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrUserID:    &types.AttributeValueMemberS{Value: userID},
		attrProductID: &types.AttributeValueMemberS{Value: productID},
	}
}
