package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/catalog"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/domain"
)

// Loads the catalog file and prints every product with its pricing mode,
// so a bad deploy fails here instead of at server startup.
func main() {
	_ = godotenv.Load()

	path := os.Getenv("CATALOG_PATH")
	if path == "" {
		path = "./catalog.json"
	}
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cat, err := catalog.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Catalog check failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Catalog OK: %d products in %s\n\n", cat.Len(), path)
	for _, p := range cat.List() {
		fmt.Printf("%-24s %-10s %s\n", p.ID, p.Mode, p.Name)
		switch p.Mode {
		case domain.PricingModeFixed:
			fmt.Printf("  price: %.2f %s\n", p.BasePrice, p.Currency)
		case domain.PricingModeLookup:
			fmt.Printf("  option %q, %d priced values\n", p.PriceOption, len(p.PriceMap))
		case domain.PricingModeBasePlus:
			fmt.Printf("  base %.2f %s, %d surcharge groups\n", p.BasePrice, p.Currency, len(p.Surcharges))
		}
	}
}
