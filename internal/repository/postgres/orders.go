package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/domain"
	"github.com/RosarioAnthonyWaya/preyesbaskets/pkg/errors"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order archive repository
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.OrderRecord) error {
	query := `
		INSERT INTO orders (
			id, session_id, session_url, currency, subtotal, shipping, total,
			delivery_count, delivery_speed, delivery_date, addresses, lines, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	addressesJSON, err := json.Marshal(order.Addresses)
	if err != nil {
		return err
	}
	linesJSON, err := json.Marshal(order.Lines)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		order.ID,
		order.SessionID,
		order.SessionURL,
		order.Currency,
		order.Subtotal,
		order.Shipping,
		order.Total,
		order.DeliveryCount,
		order.DeliverySpeed,
		order.DeliveryDate,
		addressesJSON,
		linesJSON,
		order.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to create order record", zap.Error(err))
		return err
	}

	return nil
}

const orderColumns = `
	id, session_id, session_url, currency, subtotal, shipping, total,
	delivery_count, delivery_speed, delivery_date, addresses, lines, created_at
`

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.OrderRecord, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), id.String())
}

func (r *orderRepository) GetBySessionID(ctx context.Context, sessionID string) (*domain.OrderRecord, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE session_id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, sessionID), sessionID)
}

func (r *orderRepository) scanOne(row *sql.Row, ref string) (*domain.OrderRecord, error) {
	var order domain.OrderRecord
	var addressesJSON, linesJSON []byte

	err := row.Scan(
		&order.ID,
		&order.SessionID,
		&order.SessionURL,
		&order.Currency,
		&order.Subtotal,
		&order.Shipping,
		&order.Total,
		&order.DeliveryCount,
		&order.DeliverySpeed,
		&order.DeliveryDate,
		&addressesJSON,
		&linesJSON,
		&order.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "order", ID: ref}
	}
	if err != nil {
		r.logger.Error("Failed to get order record", zap.Error(err))
		return nil, err
	}

	if len(addressesJSON) > 0 {
		if err := json.Unmarshal(addressesJSON, &order.Addresses); err != nil {
			return nil, err
		}
	}
	if len(linesJSON) > 0 {
		if err := json.Unmarshal(linesJSON, &order.Lines); err != nil {
			return nil, err
		}
	}

	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, limit, offset int) ([]*domain.OrderRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list order records", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.OrderRecord
	for rows.Next() {
		var order domain.OrderRecord
		var addressesJSON, linesJSON []byte
		if err := rows.Scan(
			&order.ID,
			&order.SessionID,
			&order.SessionURL,
			&order.Currency,
			&order.Subtotal,
			&order.Shipping,
			&order.Total,
			&order.DeliveryCount,
			&order.DeliverySpeed,
			&order.DeliveryDate,
			&addressesJSON,
			&linesJSON,
			&order.CreatedAt,
		); err != nil {
			return nil, err
		}
		if len(addressesJSON) > 0 {
			if err := json.Unmarshal(addressesJSON, &order.Addresses); err != nil {
				return nil, err
			}
		}
		if len(linesJSON) > 0 {
			if err := json.Unmarshal(linesJSON, &order.Lines); err != nil {
				return nil, err
			}
		}
		orders = append(orders, &order)
	}

	return orders, rows.Err()
}
