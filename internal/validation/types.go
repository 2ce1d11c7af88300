package validation

// AddCartItemRequest is the payload for POST /cart.
// Quantity must be at least 1; a non-positive add is rejected outright rather
// than interpreted as a removal.
type AddCartItemRequest struct {
	SneakerID string  `json:"sneaker_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
	Size      float64 `json:"size" validate:"required,gt=0"`
}

// UpdateCartItemRequest is the payload for PUT /cart/:itemId.
// Quantity is a pointer so zero is distinguishable from absent: updating to
// 0 or below removes the line by definition.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// SustainabilityInput mirrors catalog.Sustainability with range validation.
type SustainabilityInput struct {
	CarbonFootprint  float64 `json:"carbon_footprint" validate:"min=0"`
	RecycledMaterial int     `json:"recycled_material" validate:"min=0,max=100"`
	Repairable       bool    `json:"repairable"`
	Wears            int     `json:"wears" validate:"min=0"`
}

// SneakerRequest is the payload for POST /sneakers and PUT /sneakers/:id
// (full replace on update).
type SneakerRequest struct {
	Name           string              `json:"name" validate:"required"`
	Brand          string              `json:"brand" validate:"required"`
	PriceCents     int64               `json:"price_cents" validate:"required,gt=0"` // minor currency units
	Sizes          []float64           `json:"sizes" validate:"required,min=1,dive,gt=0"`
	Images         []string            `json:"images" validate:"required,min=1,dive,uri"`
	SKU            string              `json:"sku" validate:"required"`
	Sustainability SustainabilityInput `json:"sustainability"`
	Description    string              `json:"description,omitempty"`
	Category       []string            `json:"category,omitempty"`
	Model3D        string              `json:"model_3d,omitempty"`
}

// UpdateOrderStatusRequest is the payload for PUT /orders/:id/status.
// order_status checks membership in the fulfillment enumeration; forward-only
// ordering is enforced by the handler against the order's current status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,order_status"`
}
