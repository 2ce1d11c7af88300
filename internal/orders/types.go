package orders

import "time"

// Order statuses, in fulfillment sequence. Transitions are forward-only and
// applied by administrative actors, never by the owning user.
const (
	StatusPending        = "PENDING"
	StatusShipped        = "SHIPPED"
	StatusOutForDelivery = "OUT_FOR_DELIVERY"
	StatusDelivered      = "DELIVERED"
)

// statusRank orders the statuses for forward-only transition checks.
var statusRank = map[string]int{
	StatusPending:        0,
	StatusShipped:        1,
	StatusOutForDelivery: 2,
	StatusDelivered:      3,
}

// ValidStatus reports whether s belongs to the status enumeration.
func ValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// IsForwardTransition reports whether moving from -> to advances the
// fulfillment sequence.
func IsForwardTransition(from, to string) bool {
	fr, ok1 := statusRank[from]
	tr, ok2 := statusRank[to]
	return ok1 && ok2 && tr > fr
}

// OrderItem is a denormalized snapshot of a cart line at conversion time.
// PriceCents is the sneaker's price when the order was created and is never
// recomputed.
type OrderItem struct {
	SneakerID  string  `dynamodbav:"sneaker_id" json:"sneaker_id"`
	Quantity   int     `dynamodbav:"quantity" json:"quantity"`
	Size       float64 `dynamodbav:"size" json:"size"`
	PriceCents int64   `dynamodbav:"price_cents" json:"price_cents"`
}

// Order is the item stored in the orders table. Immutable after creation
// except for Status.
type Order struct {
	OrderID    string      `dynamodbav:"order_id" json:"order_id"` // PK
	UserID     string      `dynamodbav:"user_id" json:"user_id"`   // GSI user_id-index
	Items      []OrderItem `dynamodbav:"items" json:"items"`
	TotalCents int64       `dynamodbav:"total_cents" json:"total_cents"`
	Status     string      `dynamodbav:"status" json:"status"`
	CreatedAt  time.Time   `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt  time.Time   `dynamodbav:"updated_at" json:"updated_at"`
}
