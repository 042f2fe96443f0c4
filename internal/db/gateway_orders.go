package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GatewayOrderStore records payment intents created with the gateway so that
// confirmations can be cross-checked against a known order and amount.
type GatewayOrderStore struct {
	pool *pgxpool.Pool
}

func NewGatewayOrderStore(pool *pgxpool.Pool) *GatewayOrderStore {
	return &GatewayOrderStore{pool: pool}
}

func (s *GatewayOrderStore) Create(ctx context.Context, order *GatewayOrder) error {
	if order.ID == "" {
		return fmt.Errorf("gateway order id is required")
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO gateway_orders (id, amount, currency, receipt, status, user_id, user_email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		order.ID, order.Amount, order.Currency, order.Receipt, order.Status,
		order.UserID, order.UserEmail, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert gateway order: %w", err)
	}
	return nil
}

func (s *GatewayOrderStore) Get(ctx context.Context, id string) (*GatewayOrder, error) {
	order := &GatewayOrder{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, amount, currency, receipt, status, user_id, user_email,
			payment_id, signature, order_code, created_at
		FROM gateway_orders WHERE id = $1`, id,
	).Scan(
		&order.ID, &order.Amount, &order.Currency, &order.Receipt, &order.Status,
		&order.UserID, &order.UserEmail,
		&order.PaymentID, &order.Signature, &order.OrderCode, &order.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load gateway order: %w", err)
	}
	return order, nil
}

// MarkPaid records the verified payment id and signature and links the local
// order created for it.
func (s *GatewayOrderStore) MarkPaid(ctx context.Context, id, paymentID, signature, orderCode string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE gateway_orders
		SET status = 'paid', payment_id = $2, signature = $3, order_code = $4
		WHERE id = $1`,
		id, paymentID, signature, orderCode,
	)
	if err != nil {
		return fmt.Errorf("failed to mark gateway order paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
