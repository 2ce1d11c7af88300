package catalog

import "time"

// Sustainability metadata attached to every sneaker.
type Sustainability struct {
	CarbonFootprint  float64 `dynamodbav:"carbon_footprint" json:"carbon_footprint"`   // kg CO2e
	RecycledMaterial int     `dynamodbav:"recycled_material" json:"recycled_material"` // percent 0-100
	Repairable       bool    `dynamodbav:"repairable" json:"repairable"`
	Wears            int     `dynamodbav:"wears" json:"wears"` // expected lifespan in wears
}

// Sneaker is the item stored in the sneakers DynamoDB table.
// Prices are in minor currency units (cents).
type Sneaker struct {
	SneakerID      string         `dynamodbav:"sneaker_id" json:"sneaker_id"` // PK
	Name           string         `dynamodbav:"name" json:"name"`
	Brand          string         `dynamodbav:"brand" json:"brand"`
	PriceCents     int64          `dynamodbav:"price_cents" json:"price_cents"`
	Sizes          []float64      `dynamodbav:"sizes" json:"sizes"`
	Images         []string       `dynamodbav:"images" json:"images"`
	SKU            string         `dynamodbav:"sku" json:"sku"`
	Sustainability Sustainability `dynamodbav:"sustainability" json:"sustainability"`
	Description    string         `dynamodbav:"description,omitempty" json:"description,omitempty"`
	Category       []string       `dynamodbav:"category,omitempty" json:"category,omitempty"`
	Model3D        string         `dynamodbav:"model_3d,omitempty" json:"model_3d,omitempty"` // AR model path
	CreatedBy      string         `dynamodbav:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt      time.Time      `dynamodbav:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `dynamodbav:"updated_at" json:"updated_at"`
}

// OffersSize reports whether the sneaker is sold in the given size.
func (s Sneaker) OffersSize(size float64) bool {
	for _, v := range s.Sizes {
		if v == size {
			return true
		}
	}
	return false
}
