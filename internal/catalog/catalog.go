package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/domain"
	"github.com/RosarioAnthonyWaya/preyesbaskets/pkg/errors"
)

// Catalog is the deploy-time product catalog: a read-only mapping from
// product id to pricing configuration. Safe for concurrent use once loaded.
type Catalog struct {
	products map[string]domain.Product
	order    []string // file order, for stable listings
}

// Load reads the catalog file. A missing or malformed file is a fatal
// configuration error for the process, not a per-order error.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a catalog from raw JSON: an array of products
func Parse(data []byte) (*Catalog, error) {
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{products: make(map[string]domain.Product, len(products))}
	for _, p := range products {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog product with empty id (name %q)", p.Name)
		}
		if !p.Mode.IsValid() {
			return nil, fmt.Errorf("catalog product %s: invalid pricing mode %q", p.ID, p.Mode)
		}
		if _, exists := c.products[p.ID]; exists {
			return nil, fmt.Errorf("catalog product %s: duplicate id", p.ID)
		}
		if p.Currency == "" {
			p.Currency = "gbp"
		}
		c.products[p.ID] = p
		c.order = append(c.order, p.ID)
	}
	return c, nil
}

// Get looks up a product by id
func (c *Catalog) Get(id string) (domain.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return domain.Product{}, &errors.ErrUnknownProduct{ProductID: id}
	}
	return p, nil
}

// List returns all products in file order
func (c *Catalog) List() []domain.Product {
	out := make([]domain.Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.products[id])
	}
	return out
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.products)
}
