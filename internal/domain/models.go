package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry: pricing configuration for one product.
// Prices and surcharges are major units in the product's currency (pounds,
// not pence); conversion to minor units happens only at the payment boundary.
type Product struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Currency string      `json:"currency"`
	Mode     PricingMode `json:"mode"`

	// fixed and basePlus
	BasePrice float64 `json:"base_price,omitempty"`

	// lookup: the option group whose selected value keys the price map
	PriceOption string             `json:"price_option,omitempty"`
	PriceMap    map[string]float64 `json:"price_map,omitempty"`

	// basePlus: option group -> option value -> additive surcharge
	Surcharges map[string]map[string]float64 `json:"surcharges,omitempty"`
}

// CartLine is one distinct product+options combination with a quantity.
// Name and UnitPrice are snapshots taken at add time; UnitPrice is client-side
// display data and is never trusted by the checkout path.
type CartLine struct {
	ProductID string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice float64         `json:"price"`
	Quantity  int             `json:"quantity"`
	Options   SelectedOptions `json:"options,omitempty"`
	Note      string          `json:"note,omitempty"`
}

// MergeKey is the identity used for cart merging: product id plus the
// canonical signature of the selected options. The note does not participate.
func (l CartLine) MergeKey() string {
	return MergeKey(l.ProductID, l.Options)
}

// MergeKey builds the canonical cart line identity for a product and selection
func MergeKey(productID string, options SelectedOptions) string {
	sig := options.Signature()
	if sig == "" {
		return productID
	}
	return productID + "__" + sig
}

// Address is one delivery address. Fields are stored trimmed.
type Address struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
}

// DeliveryRequest describes how an order should be delivered. Addresses is
// either empty (single delivery, address collected by the payment provider)
// or holds exactly DeliveryCount entries (multi-address mode).
type DeliveryRequest struct {
	DeliveryCount int       `json:"delivery_count"`
	Speed         SpeedTier `json:"speed"`
	Date          string    `json:"date"`
	Addresses     []Address `json:"addresses,omitempty"`
}

// MultiAddress reports whether multi-address mode is active: more than one
// delivery requested, or addresses explicitly supplied.
func (r DeliveryRequest) MultiAddress() bool {
	return r.DeliveryCount > 1 || len(r.Addresses) > 0
}

// ManifestLine is one server-priced line of an order manifest
type ManifestLine struct {
	ProductID  string          `json:"product_id,omitempty"`
	Name       string          `json:"name"`
	UnitAmount float64         `json:"unit_amount"`
	Quantity   int             `json:"quantity"`
	Options    SelectedOptions `json:"options,omitempty"`
}

// LineTotal is the line's amount in major units
func (l ManifestLine) LineTotal() float64 {
	return l.UnitAmount * float64(l.Quantity)
}

// DeliveryMeta is the delivery metadata carried on an order manifest.
// ProviderCollected marks single-address orders whose address the payment
// provider collects itself.
type DeliveryMeta struct {
	Count             int       `json:"count"`
	Speed             SpeedTier `json:"speed"`
	Date              string    `json:"date"`
	Addresses         []Address `json:"addresses,omitempty"`
	ProviderCollected bool      `json:"provider_collected"`
}

// OrderManifest is the server-authoritative, fully-priced description of an
// order: every amount on it was re-resolved from the catalog, never taken
// from the client. It is the sole input to payment session creation.
type OrderManifest struct {
	Currency string         `json:"currency"`
	Lines    []ManifestLine `json:"lines"`
	Shipping ManifestLine   `json:"shipping"`
	Delivery DeliveryMeta   `json:"delivery"`
}

// Subtotal is the sum of the product lines, excluding shipping
func (m OrderManifest) Subtotal() float64 {
	var sum float64
	for _, l := range m.Lines {
		sum += l.LineTotal()
	}
	return sum
}

// Total is subtotal plus shipping
func (m OrderManifest) Total() float64 {
	return m.Subtotal() + m.Shipping.LineTotal()
}

// OrderRecord is the archived form of a created checkout session
type OrderRecord struct {
	ID            uuid.UUID
	SessionID     string
	SessionURL    string
	Currency      string
	Subtotal      float64
	Shipping      float64
	Total         float64
	DeliveryCount int
	DeliverySpeed SpeedTier
	DeliveryDate  string
	Addresses     []Address      // JSONB
	Lines         []ManifestLine // JSONB
	CreatedAt     time.Time
}

// IdempotencyKey stores idempotency information for checkout submissions
type IdempotencyKey struct {
	Key         string
	OrderID     uuid.UUID
	RequestHash string
	CreatedAt   time.Time
}
