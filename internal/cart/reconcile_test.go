package cart

import (
	"testing"

	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/catalog"
)

func TestReconcile_DropsDanglingReferences(t *testing.T) {
	c := &Cart{UserID: "u1"}
	c.AddItem("sn-live", 2, 9)
	c.AddItem("sn-dead", 1, 10)

	known := map[string]catalog.Sneaker{
		"sn-live": {SneakerID: "sn-live", Name: "Air Zoom", PriceCents: 12000},
	}

	expanded, changed := Reconcile(c, known)
	if !changed {
		t.Fatal("expected changed=true when a reference dangles")
	}
	if len(expanded) != 1 || expanded[0].Sneaker.SneakerID != "sn-live" {
		t.Fatalf("unexpected expanded items: %+v", expanded)
	}
	if len(c.Items) != 1 || c.Items[0].SneakerID != "sn-live" {
		t.Fatalf("stored items not cleaned: %+v", c.Items)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	c := &Cart{UserID: "u1"}
	c.AddItem("sn-live", 2, 9)
	c.AddItem("sn-dead", 1, 10)

	known := map[string]catalog.Sneaker{
		"sn-live": {SneakerID: "sn-live"},
	}

	first, changed := Reconcile(c, known)
	if !changed {
		t.Fatal("expected first pass to drop a line")
	}
	second, changed := Reconcile(c, known)
	if changed {
		t.Fatal("second pass must not change anything")
	}
	if len(first) != len(second) {
		t.Fatalf("passes disagree: %d vs %d", len(first), len(second))
	}
}

func TestReconcile_AllDanglingEmptiesCart(t *testing.T) {
	c := &Cart{UserID: "u1"}
	c.AddItem("sn-dead", 2, 9)

	expanded, changed := Reconcile(c, map[string]catalog.Sneaker{})
	if !changed {
		t.Fatal("expected changed=true")
	}
	if len(expanded) != 0 {
		t.Fatalf("expected empty view, got %+v", expanded)
	}
	if len(c.Items) != 0 {
		t.Fatalf("expected empty stored list, got %+v", c.Items)
	}
}

func TestReconcile_NothingDanglingKeepsOrder(t *testing.T) {
	c := &Cart{UserID: "u1"}
	c.AddItem("sn-a", 1, 9)
	c.AddItem("sn-b", 2, 10)

	known := map[string]catalog.Sneaker{
		"sn-a": {SneakerID: "sn-a"},
		"sn-b": {SneakerID: "sn-b"},
	}

	expanded, changed := Reconcile(c, known)
	if changed {
		t.Fatal("expected changed=false")
	}
	if len(expanded) != 2 || expanded[0].Sneaker.SneakerID != "sn-a" || expanded[1].Sneaker.SneakerID != "sn-b" {
		t.Fatalf("line order not preserved: %+v", expanded)
	}
}
