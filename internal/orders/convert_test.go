package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/cart"
	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/catalog"
)

func newConverterFixture(t *testing.T) (*mockDynamo, *Converter) {
	t.Helper()
	mock := newMockDynamo()
	cv := NewConverter(
		cart.NewStore(mock, "carts"),
		catalog.NewStore(mock, "sneakers"),
		NewStore(mock, "orders"),
		"carts",
		nil, nil,
	)
	return mock, cv
}

func seedSneaker(t *testing.T, m *mockDynamo, id string, priceCents int64) {
	t.Helper()
	sn := catalog.Sneaker{SneakerID: id, Name: "Model " + id, Brand: "Nike", PriceCents: priceCents, SKU: id}
	if err := catalog.NewStore(m, "sneakers").Create(context.Background(), sn); err != nil {
		t.Fatalf("seed sneaker %s: %v", id, err)
	}
}

func TestConvert_SnapshotsPricesAndClearsCart(t *testing.T) {
	mock, cv := newConverterFixture(t)
	ctx := context.Background()

	seedSneaker(t, mock, "sn-a", 100)
	seedSneaker(t, mock, "sn-b", 50)

	c := &cart.Cart{UserID: "u1"}
	c.AddItem("sn-a", 1, 9)
	c.AddItem("sn-b", 3, 10)
	if err := cart.NewStore(mock, "carts").Save(ctx, c); err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	order, err := cv.Convert(ctx, "u1")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if order.TotalCents != 250 { // 1*100 + 3*50
		t.Fatalf("expected total 250, got %d", order.TotalCents)
	}
	if order.Status != StatusPending {
		t.Fatalf("expected PENDING, got %s", order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}
	for _, it := range order.Items {
		if it.SneakerID == "sn-b" && it.PriceCents != 50 {
			t.Fatalf("price not snapshotted: %+v", it)
		}
	}

	stored, err := NewStore(mock, "orders").Get(ctx, order.OrderID)
	if err != nil || stored == nil {
		t.Fatalf("order not persisted: %v", err)
	}
	if n := cartItemCount(t, mock, "u1"); n != 0 {
		t.Fatalf("expected cleared cart after conversion, %d items remain", n)
	}
}

func TestConvert_EmptyOrMissingCart(t *testing.T) {
	mock, cv := newConverterFixture(t)
	ctx := context.Background()

	if _, err := cv.Convert(ctx, "nobody"); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("missing cart: expected ErrEmptyCart, got %v", err)
	}

	empty := &cart.Cart{UserID: "u1"}
	if err := cart.NewStore(mock, "carts").Save(ctx, empty); err != nil {
		t.Fatalf("seed cart: %v", err)
	}
	if _, err := cv.Convert(ctx, "u1"); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("empty cart: expected ErrEmptyCart, got %v", err)
	}
}

func TestConvert_FiltersDanglingReferences(t *testing.T) {
	mock, cv := newConverterFixture(t)
	ctx := context.Background()

	seedSneaker(t, mock, "sn-live", 100)

	c := &cart.Cart{UserID: "u1"}
	c.AddItem("sn-live", 2, 9)
	c.AddItem("sn-deleted", 5, 10)
	if err := cart.NewStore(mock, "carts").Save(ctx, c); err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	order, err := cv.Convert(ctx, "u1")
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(order.Items) != 1 || order.Items[0].SneakerID != "sn-live" {
		t.Fatalf("dangling line not filtered: %+v", order.Items)
	}
	if order.TotalCents != 200 {
		t.Fatalf("expected total 200, got %d", order.TotalCents)
	}
}

func TestConvert_AllItemsDangling(t *testing.T) {
	mock, cv := newConverterFixture(t)
	ctx := context.Background()

	c := &cart.Cart{UserID: "u1"}
	c.AddItem("sn-gone", 1, 9)
	if err := cart.NewStore(mock, "carts").Save(ctx, c); err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	if _, err := cv.Convert(ctx, "u1"); !errors.Is(err, ErrNoValidItems) {
		t.Fatalf("expected ErrNoValidItems, got %v", err)
	}
	// a failed conversion must not touch the stored cart
	if n := cartItemCount(t, mock, "u1"); n != 1 {
		t.Fatalf("cart modified by failed conversion, %d items", n)
	}
}

func TestConvert_TransactionFailureLeavesCartUntouched(t *testing.T) {
	mock, cv := newConverterFixture(t)
	ctx := context.Background()

	seedSneaker(t, mock, "sn-a", 100)
	c := &cart.Cart{UserID: "u1"}
	c.AddItem("sn-a", 2, 9)
	if err := cart.NewStore(mock, "carts").Save(ctx, c); err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	mock.failTransact = errors.New("injected transact failure")
	if _, err := cv.Convert(ctx, "u1"); err == nil {
		t.Fatal("expected conversion to fail")
	}
	if mock.transacts != 1 {
		t.Fatalf("expected exactly one transaction attempt, got %d", mock.transacts)
	}
	if n := cartItemCount(t, mock, "u1"); n != 1 {
		t.Fatalf("cart modified by failed transaction, %d items", n)
	}

	// no stray order document either
	all, err := NewStore(mock, "orders").ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected no orders after failed transaction, got %d", len(all))
	}
}
