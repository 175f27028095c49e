package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// cartStore keeps serialized carts in a key-value table. It backs the
// server-held cart endpoints; the content is opaque at this layer.
type cartStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCartStore creates a new postgres-backed cart store
func NewCartStore(db *sql.DB, logger *zap.Logger) *cartStore {
	return &cartStore{
		db:     db,
		logger: logger,
	}
}

func (s *cartStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT data FROM carts WHERE key = $1`

	var data []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("Failed to read cart", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return data, nil
}

func (s *cartStore) Set(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO carts (key, data, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET data = $2, updated_at = $3
	`

	_, err := s.db.ExecContext(ctx, query, key, data, time.Now())
	if err != nil {
		s.logger.Error("Failed to write cart", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (s *cartStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM carts WHERE key = $1`

	_, err := s.db.ExecContext(ctx, query, key)
	if err != nil {
		s.logger.Error("Failed to delete cart", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}
