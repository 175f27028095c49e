// Package pricing resolves a line item's unit price from a product's
// configured pricing mode and the buyer's selected options. Resolution is
// pure: no state is read or written.
package pricing

import (
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/domain"
	"github.com/RosarioAnthonyWaya/preyesbaskets/pkg/errors"
)

// Resolve computes the unit price for a product and a selection. It returns
// ErrMissingSelection when a lookup-mode product's option group has no chosen
// value. A selection value absent from a price map resolves to 0; callers
// treat a non-positive price as invalid.
func Resolve(product domain.Product, options domain.SelectedOptions) (float64, error) {
	switch product.Mode {
	case domain.PricingModeFixed:
		return resolveFixed(product), nil
	case domain.PricingModeLookup:
		return resolveLookup(product, options)
	case domain.PricingModeBasePlus:
		return resolveBasePlus(product, options), nil
	default:
		// Loader rejects unknown modes, so a hit here means the product
		// bypassed the catalog.
		return 0, nil
	}
}

func resolveFixed(product domain.Product) float64 {
	return product.BasePrice
}

func resolveLookup(product domain.Product, options domain.SelectedOptions) (float64, error) {
	value, ok := options.Get(product.PriceOption)
	if !ok {
		return 0, &errors.ErrMissingSelection{
			ProductID:   product.ID,
			OptionGroup: product.PriceOption,
		}
	}
	return product.PriceMap[value], nil
}

func resolveBasePlus(product domain.Product, options domain.SelectedOptions) float64 {
	price := product.BasePrice
	for group, surcharges := range product.Surcharges {
		values, ok := options[group]
		if !ok {
			continue
		}
		for _, v := range values {
			price += surcharges[v] // unknown values contribute 0
		}
	}
	return price
}
