package dynamo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Skotchmaster/cloudmart/internal/models"
)

// maxCartRows keeps checkout inside one TransactWriteItems call, which takes
// at most 100 actions: the order put plus one delete per row.
const maxCartRows = 99

type Tables struct {
	Products string
	Cart     string
	Orders   string
}

type Store struct {
	client API
	tables Tables
}

func New(client API, tables Tables) *Store {
	return &Store{client: client, tables: tables}
}

func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.tables.Products)})
	return err
}

func (s *Store) SeedProducts(ctx context.Context, products []models.Product) error {
	for _, p := range products {
		av, err := attributevalue.MarshalMap(toProductDoc(p))
		if err != nil {
			return fmt.Errorf("marshal product %q: %w", p.ID, err)
		}
		if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(s.tables.Products),
			Item:      av,
		}); err != nil {
			return fmt.Errorf("put product %q: %w", p.ID, err)
		}
	}
	return nil
}

func (s *Store) scanProducts(ctx context.Context, in *dynamodb.ScanInput) ([]productDoc, error) {
	docs := make([]productDoc, 0)
	p := dynamodb.NewScanPaginator(s.client, in)
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan products: %w", err)
		}
		var page []productDoc
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal products: %w", err)
		}
		docs = append(docs, page...)
	}
	return docs, nil
}

func (s *Store) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	in := &dynamodb.ScanInput{TableName: aws.String(s.tables.Products)}
	if category != "" {
		in.FilterExpression = aws.String("#c = :c")
		in.ExpressionAttributeNames = map[string]string{"#c": attrCategory}
		in.ExpressionAttributeValues = map[string]types.AttributeValue{
			":c": &types.AttributeValueMemberS{Value: category},
		}
	}

	docs, err := s.scanProducts(ctx, in)
	if err != nil {
		return nil, err
	}

	items := make([]models.Product, 0, len(docs))
	for _, d := range docs {
		p, err := d.model()
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tables.Products),
		Key:       productKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("get product %q: %w", id, err)
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("product %q: %w", id, models.ErrNotFound)
	}

	var d productDoc
	if err := attributevalue.UnmarshalMap(out.Item, &d); err != nil {
		return nil, fmt.Errorf("unmarshal product %q: %w", id, err)
	}
	p, err := d.model()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) Categories(ctx context.Context) ([]string, error) {
	docs, err := s.scanProducts(ctx, &dynamodb.ScanInput{
		TableName:                aws.String(s.tables.Products),
		ProjectionExpression:     aws.String("#c"),
		ExpressionAttributeNames: map[string]string{"#c": attrCategory},
	})
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, models.Product{Category: d.Category})
	}
	return models.DistinctCategories(products), nil
}

// queryCart reads with strong consistency so a cart read right after a write
// sees that write.
func (s *Store) queryCart(ctx context.Context, userID string) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	p := dynamodb.NewQueryPaginator(s.client, &dynamodb.QueryInput{
		TableName:                aws.String(s.tables.Cart),
		KeyConditionExpression:   aws.String("#u = :u"),
		ExpressionAttributeNames: map[string]string{"#u": attrUserID},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: userID},
		},
		ConsistentRead: aws.Bool(true),
	})
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query cart: %w", err)
		}
		var page []cartDoc
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal cart: %w", err)
		}
		for _, d := range page {
			items = append(items, d.model())
		}
	}
	return items, nil
}

func (s *Store) GetCart(ctx context.Context, userID string) ([]models.CartItem, error) {
	return s.queryCart(ctx, userID)
}

// PutCartItem replaces the row for (user, product). The key makes a second
// row for the same pair impossible.
func (s *Store) PutCartItem(ctx context.Context, item *models.CartItem) (bool, error) {
	av, err := attributevalue.MarshalMap(toCartDoc(*item))
	if err != nil {
		return false, fmt.Errorf("marshal cart item: %w", err)
	}
	out, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:    aws.String(s.tables.Cart),
		Item:         av,
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, fmt.Errorf("put cart item: %w", err)
	}
	return len(out.Attributes) == 0, nil
}

func (s *Store) RemoveCartItem(ctx context.Context, userID, productID string) (int64, error) {
	out, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(s.tables.Cart),
		Key:          cartKey(userID, productID),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return 0, fmt.Errorf("delete cart item: %w", err)
	}
	if len(out.Attributes) == 0 {
		return 0, nil
	}
	return 1, nil
}

// Checkout writes the order and deletes the cart rows it was built from in a
// single transaction. Each delete is conditioned on the quantity that was
// read, so a cart changed in between cancels the whole transaction.
func (s *Store) Checkout(ctx context.Context, userID string, build func([]models.CartItem) models.Order) (*models.Order, error) {
	items, err := s.queryCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, models.ErrEmptyCart
	}
	if len(items) > maxCartRows {
		return nil, fmt.Errorf("%d rows, at most %d: %w", len(items), maxCartRows, models.ErrCartTooLarge)
	}

	order := build(items)
	in, err := s.checkoutInput(order, items)
	if err != nil {
		return nil, err
	}

	if _, err := s.client.TransactWriteItems(ctx, in); err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			return nil, fmt.Errorf("cart of %q changed during checkout: %w", userID, models.ErrConflict)
		}
		return nil, fmt.Errorf("checkout: %w", err)
	}
	return &order, nil
}

func (s *Store) checkoutInput(order models.Order, items []models.CartItem) (*dynamodb.TransactWriteItemsInput, error) {
	av, err := attributevalue.MarshalMap(toOrderDoc(order))
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}

	actions := make([]types.TransactWriteItem, 0, len(items)+1)
	actions = append(actions, types.TransactWriteItem{
		Put: &types.Put{
			TableName:                aws.String(s.tables.Orders),
			Item:                     av,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": attrID},
		},
	})
	for _, it := range items {
		actions = append(actions, types.TransactWriteItem{
			Delete: &types.Delete{
				TableName:                aws.String(s.tables.Cart),
				Key:                      cartKey(it.UserID, it.ProductID),
				ConditionExpression:      aws.String("#q = :q"),
				ExpressionAttributeNames: map[string]string{"#q": attrQuantity},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":q": &types.AttributeValueMemberN{Value: strconv.Itoa(it.Quantity)},
				},
			},
		})
	}

	return &dynamodb.TransactWriteItemsInput{
		TransactItems:      actions,
		ClientRequestToken: aws.String(order.ID),
	}, nil
}

func (s *Store) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	p := dynamodb.NewQueryPaginator(s.client, &dynamodb.QueryInput{
		TableName:                aws.String(s.tables.Orders),
		KeyConditionExpression:   aws.String("#u = :u"),
		ExpressionAttributeNames: map[string]string{"#u": attrUserID},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":u": &types.AttributeValueMemberS{Value: userID},
		},
	})
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query orders: %w", err)
		}
		var page []orderDoc
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal orders: %w", err)
		}
		for _, d := range page {
			orders = append(orders, d.model())
		}
	}
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}
