package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/repository"
)

// NewRepositories creates a new set of repositories
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Order:          NewOrderRepository(db, logger),
		IdempotencyKey: NewIdempotencyKeyRepository(db, logger),
		Cart:           NewCartStore(db, logger),
	}
}
