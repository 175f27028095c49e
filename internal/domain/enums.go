package domain

// PricingMode is the strategy used to resolve a unit price from a product's
// configuration and the buyer's selections
type PricingMode string

const (
	// PricingModeFixed - a single base price, options do not affect it
	PricingModeFixed PricingMode = "fixed"
	// PricingModeLookup - price read from a per-option-value price map
	PricingModeLookup PricingMode = "lookup"
	// PricingModeBasePlus - base price plus per-option-value surcharges
	PricingModeBasePlus PricingMode = "basePlus"
)

// IsValid checks if the pricing mode is valid
func (m PricingMode) IsValid() bool {
	switch m {
	case PricingModeFixed, PricingModeLookup, PricingModeBasePlus:
		return true
	default:
		return false
	}
}

// SpeedTier is a delivery speed tier
type SpeedTier string

const (
	SpeedTierStandard SpeedTier = "standard"
	SpeedTierExpress  SpeedTier = "express"
)

// IsValid checks if the speed tier is valid
func (t SpeedTier) IsValid() bool {
	switch t {
	case SpeedTierStandard, SpeedTierExpress:
		return true
	default:
		return false
	}
}

// OrDefault returns the tier itself when valid, otherwise the standard tier.
// Malformed client input falls back to standard rather than failing.
func (t SpeedTier) OrDefault() SpeedTier {
	if t.IsValid() {
		return t
	}
	return SpeedTierStandard
}
