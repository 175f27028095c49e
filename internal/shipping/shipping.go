// Package shipping computes delivery cost from cart contents and delivery
// count. Two rate tables apply per delivery: the exception table when every
// item in the cart is an exception SKU, the standard table otherwise. The
// exception is all-or-nothing per cart, never per line.
package shipping

import (
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/config"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/domain"
)

// Calculator holds the configured rate tables and exception SKU set
type Calculator struct {
	standard  map[domain.SpeedTier]float64
	exception map[domain.SpeedTier]float64
	skus      map[string]struct{}
}

// NewCalculator builds a calculator from shipping configuration
func NewCalculator(cfg config.ShippingConfig) *Calculator {
	skus := make(map[string]struct{}, len(cfg.ExceptionSKUs))
	for _, id := range cfg.ExceptionSKUs {
		skus[id] = struct{}{}
	}
	return &Calculator{
		standard: map[domain.SpeedTier]float64{
			domain.SpeedTierStandard: cfg.StandardRate,
			domain.SpeedTierExpress:  cfg.ExpressRate,
		},
		exception: map[domain.SpeedTier]float64{
			domain.SpeedTierStandard: cfg.ExceptionRate,
			domain.SpeedTierExpress:  cfg.ExceptionExpressRate,
		},
		skus: skus,
	}
}

// ExceptionOnly reports whether the cart is non-empty and every line's
// product is an exception SKU. One non-exception item disqualifies the
// whole cart.
func (c *Calculator) ExceptionOnly(lines []domain.CartLine) bool {
	if len(lines) == 0 {
		return false
	}
	for _, l := range lines {
		if _, ok := c.skus[l.ProductID]; !ok {
			return false
		}
	}
	return true
}

// PerDelivery returns the flat per-delivery rate for the cart and tier.
// An unrecognized tier falls back to standard.
func (c *Calculator) PerDelivery(lines []domain.CartLine, tier domain.SpeedTier) float64 {
	table := c.standard
	if c.ExceptionOnly(lines) {
		table = c.exception
	}
	return table[tier.OrDefault()]
}

// Total is the per-delivery rate times the delivery count. The count is
// clamped to a minimum of 1 against malformed input.
func (c *Calculator) Total(lines []domain.CartLine, deliveryCount int, tier domain.SpeedTier) float64 {
	return c.PerDelivery(lines, tier) * float64(ClampDeliveries(deliveryCount))
}

// ClampDeliveries floors a delivery count to at least one delivery
func ClampDeliveries(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
