// Package checkout builds the server-authoritative order manifest. This is
// the trust boundary: the cart and delivery request come from a caller the
// system does not control, and client-declared prices are never accepted.
package checkout

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/catalog"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/delivery"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/domain"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/pricing"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/shipping"
	"github.com/RosarioAnthonyWaya/preyesbaskets/pkg/errors"
)

type Orchestrator struct {
	catalog  *catalog.Catalog
	shipping *shipping.Calculator
	logger   *zap.Logger
}

// NewOrchestrator creates a new checkout orchestrator
func NewOrchestrator(cat *catalog.Catalog, calc *shipping.Calculator, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		catalog:  cat,
		shipping: calc,
		logger:   logger,
	}
}

// BuildOrder re-prices every submitted line from the catalog, re-computes
// shipping, validates delivery data, and emits the order manifest handed to
// the payment provider. Submitted unit prices are discarded; product ids are
// trusted only for catalog lookup and exception-rate routing. The inputs are
// never mutated and no partial manifest is ever returned.
func (o *Orchestrator) BuildOrder(lines []domain.CartLine, req domain.DeliveryRequest) (*domain.OrderManifest, error) {
	if len(lines) == 0 {
		return nil, &errors.ErrEmptyCart{}
	}

	if strings.TrimSpace(req.Date) == "" {
		return nil, &errors.ErrMissingDeliveryDate{}
	}

	deliveries := shipping.ClampDeliveries(req.DeliveryCount)
	tier := req.Speed.OrDefault()

	var addresses []domain.Address
	if req.MultiAddress() {
		trimmed := make([]domain.Address, len(req.Addresses))
		for i, a := range req.Addresses {
			trimmed[i] = delivery.TrimAddress(a)
		}
		if err := delivery.ValidateAddresses(trimmed, deliveries); err != nil {
			return nil, err
		}
		addresses = trimmed
	}

	currency := ""
	manifestLines := make([]domain.ManifestLine, 0, len(lines))
	for _, line := range lines {
		product, err := o.catalog.Get(line.ProductID)
		if err != nil {
			o.logger.Warn("Checkout rejected: unknown product", zap.String("product_id", line.ProductID))
			return nil, err
		}

		// Authoritative price; the client's snapshot is ignored entirely.
		unit, err := pricing.Resolve(product, line.Options)
		if err != nil {
			return nil, err
		}
		if unit <= 0 {
			o.logger.Warn("Checkout rejected: non-positive resolved price",
				zap.String("product_id", product.ID),
				zap.Float64("amount", unit))
			return nil, &errors.ErrInvalidPrice{ProductID: product.ID, Amount: unit}
		}

		if currency == "" {
			currency = product.Currency
		}

		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}

		manifestLines = append(manifestLines, domain.ManifestLine{
			ProductID:  product.ID,
			Name:       product.Name,
			UnitAmount: unit,
			Quantity:   qty,
			Options:    line.Options.Clone(),
		})
	}

	perDelivery := o.shipping.PerDelivery(lines, tier)
	shippingLine := domain.ManifestLine{
		Name:       shippingLineName(deliveries),
		UnitAmount: perDelivery * float64(deliveries),
		Quantity:   1,
	}

	manifest := &domain.OrderManifest{
		Currency: currency,
		Lines:    manifestLines,
		Shipping: shippingLine,
		Delivery: domain.DeliveryMeta{
			Count:             deliveries,
			Speed:             tier,
			Date:              strings.TrimSpace(req.Date),
			Addresses:         addresses,
			ProviderCollected: len(addresses) == 0,
		},
	}

	o.logger.Info("Order manifest built",
		zap.Int("line_count", len(manifestLines)),
		zap.Int("deliveries", deliveries),
		zap.String("speed", string(tier)),
		zap.Float64("subtotal", manifest.Subtotal()),
		zap.Float64("shipping", shippingLine.LineTotal()),
		zap.Float64("total", manifest.Total()))

	return manifest, nil
}

func shippingLineName(deliveries int) string {
	unit := "delivery"
	if deliveries > 1 {
		unit = "deliveries"
	}
	return fmt.Sprintf("Shipping (%d %s)", deliveries, unit)
}
