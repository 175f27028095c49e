package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/cart"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/domain"
)

// OrderRepository defines order archive data access methods. The archive
// records every created checkout session for ops and reconciliation.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.OrderRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.OrderRecord, error)
	GetBySessionID(ctx context.Context, sessionID string) (*domain.OrderRecord, error)
	List(ctx context.Context, limit, offset int) ([]*domain.OrderRecord, error)
}

// IdempotencyKeyRepository defines idempotency key data access methods
type IdempotencyKeyRepository interface {
	GetByKey(ctx context.Context, key string) (*domain.IdempotencyKey, error)
	Create(ctx context.Context, key *domain.IdempotencyKey) error
}

// Repositories aggregates all repositories. Cart is the opaque serialized
// cart store used by the server-held cart endpoints.
type Repositories struct {
	Order          OrderRepository
	IdempotencyKey IdempotencyKeyRepository
	Cart           cart.Store
}
