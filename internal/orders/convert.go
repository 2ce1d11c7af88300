package orders

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/aws"
	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/cart"
	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/catalog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "converter").Logger()

// Conversion preconditions.
var (
	// ErrEmptyCart: the cart is missing or has zero items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNoValidItems: the cart had items but every referenced sneaker was
	// deleted after being added.
	ErrNoValidItems = errors.New("all items in cart are no longer available")
)

// Converter turns a user's cart into an order: it joins cart lines against
// the current catalog, drops dangling references, snapshots current prices,
// and persists the order and the emptied cart in one transaction.
type Converter struct {
	carts     *cart.Store
	catalog   *catalog.Store
	orders    *Store
	cartTable string
	publisher *aws.Publisher
	metrics   *aws.Metrics
}

// NewConverter wires the conversion flow. publisher and metrics may be nil in
// tests; both are best-effort after the transaction commits.
func NewConverter(carts *cart.Store, cat *catalog.Store, ord *Store, cartTable string, publisher *aws.Publisher, metrics *aws.Metrics) *Converter {
	return &Converter{
		carts:     carts,
		catalog:   cat,
		orders:    ord,
		cartTable: cartTable,
		publisher: publisher,
		metrics:   metrics,
	}
}

// Convert runs the cart-to-order conversion for the given user.
//
// The cart is cleared only as part of the same transaction that persists the
// order; on any failure before or during the transaction the stored cart is
// untouched. The SQS event and metrics after the commit are best-effort: the
// order already exists, so their failure is logged and swallowed.
func (cv *Converter) Convert(ctx context.Context, userID string) (*Order, error) {
	c, err := cv.carts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if c == nil || len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	known, err := cv.catalog.BatchGet(ctx, c.SneakerIDs())
	if err != nil {
		return nil, fmt.Errorf("expand sneakers: %w", err)
	}

	// Dangling references are silently filtered; only fatal if nothing survives.
	items := make([]OrderItem, 0, len(c.Items))
	var total int64
	for _, it := range c.Items {
		sn, ok := known[it.SneakerID]
		if !ok {
			continue
		}
		items = append(items, OrderItem{
			SneakerID:  it.SneakerID,
			Quantity:   it.Quantity,
			Size:       it.Size,
			PriceCents: sn.PriceCents,
		})
		total += sn.PriceCents * int64(it.Quantity)
	}
	if len(items) == 0 {
		return nil, ErrNoValidItems
	}

	order := Order{
		OrderID:    uuid.NewString(),
		UserID:     userID,
		Items:      items,
		TotalCents: total,
		Status:     StatusPending,
	}

	if err := cv.orders.CreateWithCartClear(ctx, &order, cv.cartTable, c); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	if cv.publisher != nil {
		ev := aws.OrderCreatedEvent{
			OrderID:    order.OrderID,
			UserID:     userID,
			TotalCents: order.TotalCents,
		}
		if err := cv.publisher.PublishOrderCreated(ctx, ev); err != nil {
			logger.Error().Err(err).Str("order_id", order.OrderID).Msg("order event publish failed")
		}
	}
	if cv.metrics != nil {
		if err := cv.metrics.PutCount(ctx, "OrdersConverted", 1, nil); err != nil {
			logger.Warn().Err(err).Msg("metric emit failed")
		}
	}

	return &order, nil
}
