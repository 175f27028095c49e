package cart

import (
	"context"
	"encoding/json"

	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/domain"
)

// Store is the opaque persistence collaborator: get/set of a serialized cart
// under a key. Implementations decide where the bytes live.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// LoadCart reads a cart from the store. A read failure or malformed content
// is treated as an empty cart, never as a fatal error.
func LoadCart(ctx context.Context, store Store, key string) *Cart {
	data, err := store.Get(ctx, key)
	if err != nil || len(data) == 0 {
		return New()
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return New()
	}
	return FromLines(lines)
}

// SaveCart serializes a cart and writes it to the store
func SaveCart(ctx context.Context, store Store, key string, c *Cart) error {
	data, err := json.Marshal(c.Lines())
	if err != nil {
		return err
	}
	return store.Set(ctx, key, data)
}
