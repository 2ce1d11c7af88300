package cart

import "github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/catalog"

// Reconcile drops every cart line whose referenced sneaker is absent from the
// known set and returns the surviving lines joined with their sneaker
// records. changed reports whether any line was dropped, so callers know to
// persist the cleanup.
//
// The function is idempotent: reconciling an already-reconciled cart against
// the same known set drops nothing.
func Reconcile(c *Cart, known map[string]catalog.Sneaker) (expanded []ExpandedItem, changed bool) {
	kept := make([]CartItem, 0, len(c.Items))
	expanded = make([]ExpandedItem, 0, len(c.Items))

	for _, it := range c.Items {
		sn, ok := known[it.SneakerID]
		if !ok {
			changed = true
			continue
		}
		kept = append(kept, it)
		expanded = append(expanded, ExpandedItem{
			ItemID:   it.ItemID,
			Sneaker:  sn,
			Quantity: it.Quantity,
			Size:     it.Size,
		})
	}

	c.Items = kept
	return expanded, changed
}
