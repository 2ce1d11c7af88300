package cart

import (
	"time"

	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/catalog"
)

// CartItem is one line in a cart. Line identity is the (SneakerID, Size)
// pair; adding the same pair again increments Quantity instead of appending.
type CartItem struct {
	ItemID    string  `dynamodbav:"item_id" json:"item_id"`
	SneakerID string  `dynamodbav:"sneaker_id" json:"sneaker_id"`
	Quantity  int     `dynamodbav:"quantity" json:"quantity"`
	Size      float64 `dynamodbav:"size" json:"size"`
}

// Cart is the per-user document stored in the carts table. One cart per user,
// created lazily on first add.
type Cart struct {
	UserID    string     `dynamodbav:"user_id" json:"user_id"` // PK
	Items     []CartItem `dynamodbav:"items" json:"items"`
	CreatedAt time.Time  `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt time.Time  `dynamodbav:"updated_at" json:"updated_at"`
}

// ExpandedItem is a cart line joined with its current sneaker record, the
// shape returned by the cart API.
type ExpandedItem struct {
	ItemID   string          `json:"item_id"`
	Sneaker  catalog.Sneaker `json:"sneaker"`
	Quantity int             `json:"quantity"`
	Size     float64         `json:"size"`
}

// SneakerIDs returns the referenced sneaker ids in line order (duplicates
// possible across sizes).
func (c *Cart) SneakerIDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.SneakerID)
	}
	return ids
}
