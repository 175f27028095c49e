package errors

import (
	"fmt"
	"strings"
)

// ErrNotFound is returned when a stored resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnknownProduct is returned when a submitted product id is not in the catalog
type ErrUnknownProduct struct {
	ProductID string
}

func (e *ErrUnknownProduct) Error() string {
	return fmt.Sprintf("unknown product: %s", e.ProductID)
}

// ErrMissingSelection is returned when a pricing mode requires an option that
// has not been chosen (the "pick a package first" condition)
type ErrMissingSelection struct {
	ProductID   string
	OptionGroup string
}

func (e *ErrMissingSelection) Error() string {
	return fmt.Sprintf("missing selection for %s: option %q required", e.ProductID, e.OptionGroup)
}

// ErrInvalidPrice is returned when a resolved unit price is zero or negative
type ErrInvalidPrice struct {
	ProductID string
	Amount    float64
}

func (e *ErrInvalidPrice) Error() string {
	return fmt.Sprintf("invalid price for %s: %.2f", e.ProductID, e.Amount)
}

// ErrEmptyCart is returned when an order is built from an empty cart
type ErrEmptyCart struct{}

func (e *ErrEmptyCart) Error() string {
	return "cart is empty"
}

// ErrMissingDeliveryDate is returned when no delivery date was supplied
type ErrMissingDeliveryDate struct{}

func (e *ErrMissingDeliveryDate) Error() string {
	return "delivery date is required"
}

// ErrDeliveryCountMismatch is returned when the supplied address count does not
// equal the requested delivery count
type ErrDeliveryCountMismatch struct {
	Expected int
	Got      int
}

func (e *ErrDeliveryCountMismatch) Error() string {
	return fmt.Sprintf("expected %d delivery addresses, got %d", e.Expected, e.Got)
}

// ErrIncompleteAddress is returned for the first invalid address encountered.
// Index is positional: address i corresponds to delivery i.
type ErrIncompleteAddress struct {
	Index  int
	Fields []string
}

func (e *ErrIncompleteAddress) Error() string {
	return fmt.Sprintf("address %d is incomplete: %s", e.Index, strings.Join(e.Fields, ", "))
}
