package validation

import (
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/BlackCoffeeCode/SneakerMarketWebApp/internal/orders"
)

// New returns a configured validator with custom validations registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// register struct-level validation for SneakerRequest to reject
	// duplicate size entries.
	v.RegisterStructValidation(sneakerStructValidation, SneakerRequest{})

	// order_status delegates to the status enumeration so the valid set is
	// defined in one place.
	_ = v.RegisterValidation("order_status", func(fl validatorv10.FieldLevel) bool {
		return orders.ValidStatus(fl.Field().String())
	})

	return v
}

// sneakerStructValidation ensures the offered size set has no duplicates.
func sneakerStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(SneakerRequest)

	seen := make(map[float64]struct{}, len(req.Sizes))
	for _, size := range req.Sizes {
		if _, dup := seen[size]; dup {
			sl.ReportError(req.Sizes, "sizes", "Sizes", "unique_sizes", "")
			return
		}
		seen[size] = struct{}{}
	}
}
