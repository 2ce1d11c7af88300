package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/aws"
)

// ErrItemNotFound indicates the referenced line id is not in the cart.
var ErrItemNotFound = errors.New("item not found in cart")

// Store encapsulates operations on the carts table. Each cart is a single
// document keyed by user_id; writes replace the whole document
// (last-write-wins, no locking).
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewStore creates a new cart Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

// Get fetches the user's cart. Returns (nil, nil) if the user has none yet.
func (s *Store) Get(ctx context.Context, userID string) (*Cart, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var c Cart
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	return &c, nil
}

// Save writes the whole cart document back.
func (s *Store) Save(ctx context.Context, c *Cart) error {
	now := s.nowFunc()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	if c.Items == nil {
		c.Items = []CartItem{}
	}

	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	}); err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// GetOrNew fetches the user's cart, creating an empty in-memory one if none
// exists yet. The lazy upsert is persisted by the following Save.
func (s *Store) GetOrNew(ctx context.Context, userID string) (*Cart, error) {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = &Cart{UserID: userID, Items: []CartItem{}}
	}
	return c, nil
}

// AddItem applies the add-or-increment rule: an existing (sneaker, size) line
// gains quantity, otherwise a new line is appended with a fresh line id.
func (c *Cart) AddItem(sneakerID string, quantity int, size float64) {
	for i := range c.Items {
		if c.Items[i].SneakerID == sneakerID && c.Items[i].Size == size {
			c.Items[i].Quantity += quantity
			return
		}
	}
	c.Items = append(c.Items, CartItem{
		ItemID:    uuid.NewString(),
		SneakerID: sneakerID,
		Quantity:  quantity,
		Size:      size,
	})
}

// UpdateItem replaces a line's quantity. Quantity <= 0 removes the line;
// that is defined behavior, not an error. Returns ErrItemNotFound for an
// unknown line id.
func (c *Cart) UpdateItem(itemID string, quantity int) error {
	for i := range c.Items {
		if c.Items[i].ItemID != itemID {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = quantity
		}
		return nil
	}
	return ErrItemNotFound
}

// RemoveItem deletes a line unconditionally. Returns ErrItemNotFound if the
// line id is not present.
func (c *Cart) RemoveItem(itemID string) error {
	for i := range c.Items {
		if c.Items[i].ItemID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}
