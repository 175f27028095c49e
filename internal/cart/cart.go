// Package cart models the buyer's basket: an ordered collection of line
// items with merge-by-signature and quantity rules. A Cart is an explicit
// value owned by its caller; there is no process-wide cart.
package cart

import (
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/domain"
)

// Cart is an ordered sequence of cart lines, insertion order preserved.
// Ordering affects display only, never pricing.
type Cart struct {
	lines []domain.CartLine
}

// New creates an empty cart
func New() *Cart {
	return &Cart{}
}

// FromLines creates a cart from existing lines, merging duplicates
func FromLines(lines []domain.CartLine) *Cart {
	c := New()
	for _, l := range lines {
		c.Add(l)
	}
	return c
}

// Add merges the line into the cart. A line with the same merge key
// increments the existing line's quantity; the existing snapshot (name,
// price, options) wins. Otherwise the line is appended.
func (c *Cart) Add(line domain.CartLine) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	key := line.MergeKey()
	for i := range c.lines {
		if c.lines[i].MergeKey() == key {
			c.lines[i].Quantity += line.Quantity
			return
		}
	}
	line.Options = line.Options.Clone()
	c.lines = append(c.lines, line)
}

// SetQuantity sets a line's quantity exactly. A quantity of zero or below
// removes the line; a quantity below one is never persisted.
func (c *Cart) SetQuantity(key string, qty int) {
	if qty <= 0 {
		c.Remove(key)
		return
	}
	for i := range c.lines {
		if c.lines[i].MergeKey() == key {
			c.lines[i].Quantity = qty
			return
		}
	}
}

// Increment raises a line's quantity by one
func (c *Cart) Increment(key string) {
	for i := range c.lines {
		if c.lines[i].MergeKey() == key {
			c.SetQuantity(key, c.lines[i].Quantity+1)
			return
		}
	}
}

// Decrement lowers a line's quantity by one, removing the line at zero.
// Decrementing a missing line is a no-op.
func (c *Cart) Decrement(key string) {
	for i := range c.lines {
		if c.lines[i].MergeKey() == key {
			c.SetQuantity(key, c.lines[i].Quantity-1)
			return
		}
	}
}

// Remove deletes a line by key. Removing a missing key is a no-op.
func (c *Cart) Remove(key string) {
	for i := range c.lines {
		if c.lines[i].MergeKey() == key {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Lines returns the lines in insertion order. The slice is a copy.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty reports whether the cart holds no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalQuantity is the sum of line quantities, recomputed on demand
func (c *Cart) TotalQuantity() int {
	var total int
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// Subtotal is the sum of unit price times quantity over all lines. Unit
// prices here are add-time snapshots: display data, not checkout truth.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, l := range c.lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}
