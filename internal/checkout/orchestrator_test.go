package checkout

import (
	"testing"

	"go.uber.org/zap"

	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/catalog"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/config"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/domain"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/shipping"
	"github.com/RosarioAnthonyWaya/preyesbaskets/pkg/errors"
)

const testCatalog = `[
  {"id": "holiday-cheer", "name": "Holiday Cheer Basket", "currency": "gbp", "mode": "fixed", "base_price": 35},
  {"id": "joyful-baskets", "name": "Joyful Basket", "currency": "gbp", "mode": "fixed", "base_price": 42},
  {"id": "box-a", "name": "Signature Gift Box", "currency": "gbp", "mode": "lookup",
   "price_option": "package", "price_map": {"classic": 29, "premium": 45, "deluxe": 89}},
  {"id": "build-your-own", "name": "Build Your Own Hamper", "currency": "gbp", "mode": "basePlus",
   "base_price": 25, "surcharges": {"ribbon": {"satin": 3, "velvet": 5}}}
]`

func newTestOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	cat, err := catalog.Parse([]byte(testCatalog))
	if err != nil {
		t.Fatalf("failed to parse test catalog: %v", err)
	}
	calc := shipping.NewCalculator(config.ShippingConfig{
		StandardRate:         11,
		ExpressRate:          15,
		ExceptionRate:        8,
		ExceptionExpressRate: 12,
		ExceptionSKUs:        []string{"holiday-cheer", "joyful-baskets"},
	})
	return NewOrchestrator(cat, calc, zap.NewNop())
}

func standardRequest() domain.DeliveryRequest {
	return domain.DeliveryRequest{
		DeliveryCount: 1,
		Speed:         domain.SpeedTierStandard,
		Date:          "2026-09-10",
	}
}

func validAddress() domain.Address {
	return domain.Address{
		Name:     "Rosa Waya",
		Phone:    "07700900123",
		Line1:    "14 Orchard Lane",
		City:     "Leeds",
		Postcode: "LS1 4AB",
	}
}

func TestBuildOrder_DiscardsClientPrice(t *testing.T) {
	o := newTestOrchestrator(t)

	lines := []domain.CartLine{{
		ProductID: "box-a",
		Name:      "Signature Gift Box",
		UnitPrice: 0.01, // client-declared, must be ignored
		Quantity:  1,
		Options:   domain.SelectedOptions{"package": {"deluxe"}},
	}}

	manifest, err := o.BuildOrder(lines, standardRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := manifest.Lines[0].UnitAmount; got != 89 {
		t.Errorf("expected server-resolved price 89, got %v", got)
	}
	if got := manifest.Subtotal(); got != 89 {
		t.Errorf("expected subtotal 89, got %v", got)
	}
}

func TestBuildOrder_EndToEndTotals(t *testing.T) {
	o := newTestOrchestrator(t)

	lines := []domain.CartLine{{
		ProductID: "box-a",
		Quantity:  2,
		Options:   domain.SelectedOptions{"package": {"premium"}},
	}}

	manifest, err := o.BuildOrder(lines, standardRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := manifest.Subtotal(); got != 90 {
		t.Errorf("expected subtotal 90, got %v", got)
	}
	if got := manifest.Shipping.LineTotal(); got != 11 {
		t.Errorf("expected shipping 11, got %v", got)
	}
	if got := manifest.Total(); got != 101 {
		t.Errorf("expected total 101, got %v", got)
	}
	if manifest.Currency != "gbp" {
		t.Errorf("expected currency gbp, got %q", manifest.Currency)
	}
	if !manifest.Delivery.ProviderCollected {
		t.Error("expected provider-collected marker with no addresses")
	}
}

func TestBuildOrder_EmptyCart(t *testing.T) {
	o := newTestOrchestrator(t)

	_, err := o.BuildOrder(nil, standardRequest())
	if _, ok := err.(*errors.ErrEmptyCart); !ok {
		t.Fatalf("expected *ErrEmptyCart, got %T (%v)", err, err)
	}
}

func TestBuildOrder_UnknownProduct(t *testing.T) {
	o := newTestOrchestrator(t)

	lines := []domain.CartLine{{ProductID: "vanished", Quantity: 1}}
	_, err := o.BuildOrder(lines, standardRequest())
	unknown, ok := err.(*errors.ErrUnknownProduct)
	if !ok {
		t.Fatalf("expected *ErrUnknownProduct, got %T (%v)", err, err)
	}
	if unknown.ProductID != "vanished" {
		t.Errorf("expected product id in error, got %q", unknown.ProductID)
	}
}

func TestBuildOrder_MissingSelectionPropagates(t *testing.T) {
	o := newTestOrchestrator(t)

	lines := []domain.CartLine{{ProductID: "box-a", Quantity: 1}}
	_, err := o.BuildOrder(lines, standardRequest())
	if _, ok := err.(*errors.ErrMissingSelection); !ok {
		t.Fatalf("expected *ErrMissingSelection, got %T (%v)", err, err)
	}
}

func TestBuildOrder_UnknownLookupValueIsInvalidPrice(t *testing.T) {
	o := newTestOrchestrator(t)

	lines := []domain.CartLine{{
		ProductID: "box-a",
		Quantity:  1,
		Options:   domain.SelectedOptions{"package": {"mega"}},
	}}
	_, err := o.BuildOrder(lines, standardRequest())
	if _, ok := err.(*errors.ErrInvalidPrice); !ok {
		t.Fatalf("expected *ErrInvalidPrice, got %T (%v)", err, err)
	}
}

func TestBuildOrder_MissingDeliveryDate(t *testing.T) {
	o := newTestOrchestrator(t)

	req := standardRequest()
	req.Date = "   "
	lines := []domain.CartLine{{ProductID: "holiday-cheer", Quantity: 1}}
	_, err := o.BuildOrder(lines, req)
	if _, ok := err.(*errors.ErrMissingDeliveryDate); !ok {
		t.Fatalf("expected *ErrMissingDeliveryDate, got %T (%v)", err, err)
	}
}

func TestBuildOrder_ExceptionShippingRoutedByProductIDs(t *testing.T) {
	o := newTestOrchestrator(t)

	lines := []domain.CartLine{
		{ProductID: "holiday-cheer", Quantity: 2},
		{ProductID: "joyful-baskets", Quantity: 1},
	}
	manifest, err := o.BuildOrder(lines, standardRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := manifest.Shipping.LineTotal(); got != 8 {
		t.Errorf("expected exception shipping 8, got %v", got)
	}

	// Adding a non-exception item loses the exception rate for the whole cart
	mixed := append(lines, domain.CartLine{
		ProductID: "box-a",
		Quantity:  1,
		Options:   domain.SelectedOptions{"package": {"classic"}},
	})
	manifest, err = o.BuildOrder(mixed, standardRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := manifest.Shipping.LineTotal(); got != 11 {
		t.Errorf("expected standard shipping 11 for mixed cart, got %v", got)
	}
}

func TestBuildOrder_ShippingMultipliedByDeliveries(t *testing.T) {
	o := newTestOrchestrator(t)

	req := standardRequest()
	req.DeliveryCount = 3
	req.Addresses = []domain.Address{validAddress(), validAddress(), validAddress()}

	lines := []domain.CartLine{{ProductID: "holiday-cheer", Quantity: 3}}
	manifest, err := o.BuildOrder(lines, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := manifest.Shipping.LineTotal(); got != 24 {
		t.Errorf("expected shipping 8*3=24, got %v", got)
	}
	if manifest.Delivery.Count != 3 {
		t.Errorf("expected delivery count 3, got %d", manifest.Delivery.Count)
	}
	if manifest.Delivery.ProviderCollected {
		t.Error("expected provider-collected marker off in multi-address mode")
	}
	if manifest.Shipping.Name != "Shipping (3 deliveries)" {
		t.Errorf("unexpected shipping line name %q", manifest.Shipping.Name)
	}
}

func TestBuildOrder_MalformedDeliveryCountClampedToOne(t *testing.T) {
	o := newTestOrchestrator(t)

	req := standardRequest()
	req.DeliveryCount = -4

	lines := []domain.CartLine{{ProductID: "holiday-cheer", Quantity: 1}}
	manifest, err := o.BuildOrder(lines, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if manifest.Delivery.Count != 1 {
		t.Errorf("expected clamped delivery count 1, got %d", manifest.Delivery.Count)
	}
	if got := manifest.Shipping.LineTotal(); got != 8 {
		t.Errorf("expected shipping 8, got %v", got)
	}
}

func TestBuildOrder_MultiAddressValidation(t *testing.T) {
	o := newTestOrchestrator(t)
	lines := []domain.CartLine{{ProductID: "holiday-cheer", Quantity: 1}}

	// Count mismatch: 2 deliveries, 1 address
	req := standardRequest()
	req.DeliveryCount = 2
	req.Addresses = []domain.Address{validAddress()}
	_, err := o.BuildOrder(lines, req)
	if _, ok := err.(*errors.ErrDeliveryCountMismatch); !ok {
		t.Fatalf("expected *ErrDeliveryCountMismatch, got %T (%v)", err, err)
	}

	// Invalid second address surfaces index and fields
	bad := validAddress()
	bad.Postcode = "LS1"
	req.Addresses = []domain.Address{validAddress(), bad}
	_, err = o.BuildOrder(lines, req)
	incomplete, ok := err.(*errors.ErrIncompleteAddress)
	if !ok {
		t.Fatalf("expected *ErrIncompleteAddress, got %T (%v)", err, err)
	}
	if incomplete.Index != 1 {
		t.Errorf("expected index 1, got %d", incomplete.Index)
	}
}

func TestBuildOrder_ExplicitAddressesActivateMultiAddressMode(t *testing.T) {
	o := newTestOrchestrator(t)
	lines := []domain.CartLine{{ProductID: "holiday-cheer", Quantity: 1}}

	// deliveryCount 1 but an address supplied: multi-address validation applies
	req := standardRequest()
	req.Addresses = []domain.Address{validAddress()}
	manifest, err := o.BuildOrder(lines, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if manifest.Delivery.ProviderCollected {
		t.Error("expected explicit address to disable provider collection")
	}
	if len(manifest.Delivery.Addresses) != 1 {
		t.Errorf("expected 1 address on manifest, got %d", len(manifest.Delivery.Addresses))
	}
}

func TestBuildOrder_DoesNotMutateCallerState(t *testing.T) {
	o := newTestOrchestrator(t)

	lines := []domain.CartLine{{
		ProductID: "box-a",
		Name:      "client name",
		UnitPrice: 0.01,
		Quantity:  2,
		Options:   domain.SelectedOptions{"package": {"deluxe"}},
	}}
	req := standardRequest()
	req.Addresses = []domain.Address{{
		Name:     "  Rosa Waya  ",
		Phone:    "07700900123",
		Line1:    "14 Orchard Lane",
		City:     "Leeds",
		Postcode: "LS1 4AB",
	}}

	manifest, err := o.BuildOrder(lines, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lines[0].UnitPrice != 0.01 || lines[0].Name != "client name" {
		t.Error("expected submitted lines to be left untouched")
	}
	if req.Addresses[0].Name != "  Rosa Waya  " {
		t.Error("expected submitted addresses to be left untouched")
	}
	if manifest.Delivery.Addresses[0].Name != "Rosa Waya" {
		t.Error("expected manifest addresses to be trimmed copies")
	}

	// Mutating the manifest's options must not touch the submitted cart
	manifest.Lines[0].Options["package"] = []string{"classic"}
	if lines[0].Options["package"][0] != "deluxe" {
		t.Error("expected manifest options to be deep copies")
	}
}

func TestBuildOrder_BasePlusLinePricing(t *testing.T) {
	o := newTestOrchestrator(t)

	lines := []domain.CartLine{{
		ProductID: "build-your-own",
		Quantity:  1,
		Options:   domain.SelectedOptions{"ribbon": {"velvet"}},
	}}
	manifest, err := o.BuildOrder(lines, standardRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := manifest.Lines[0].UnitAmount; got != 30 {
		t.Errorf("expected 25+5=30, got %v", got)
	}
	if manifest.Lines[0].Name != "Build Your Own Hamper" {
		t.Errorf("expected catalog name snapshot, got %q", manifest.Lines[0].Name)
	}
}
