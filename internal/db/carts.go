package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
)

type CartStore struct {
	pool *pgxpool.Pool
}

func NewCartStore(pool *pgxpool.Pool) *CartStore {
	return &CartStore{pool: pool}
}

// Get returns the user's cart. A user with no cart row gets an empty cart,
// not an error.
func (s *CartStore) Get(ctx context.Context, userID string) (*Cart, error) {
	var (
		itemsJSON []byte
		updatedAt time.Time
	)
	err := s.pool.QueryRow(ctx,
		`SELECT items, updated_at FROM carts WHERE user_id = $1`, userID,
	).Scan(&itemsJSON, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return &Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	cart := &Cart{UserID: userID, UpdatedAt: updatedAt}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &cart.Items); err != nil {
			return nil, fmt.Errorf("failed to decode cart items: %w", err)
		}
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart, nil
}

// Save upserts the whole cart. Carts are small so the row is replaced rather
// than patched.
func (s *CartStore) Save(ctx context.Context, cart *Cart) error {
	if cart.UserID == "" {
		return fmt.Errorf("cart owner is required")
	}
	cart.UpdatedAt = time.Now().UTC()

	itemsJSON, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to encode cart items: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO carts (user_id, items, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET items = EXCLUDED.items, updated_at = EXCLUDED.updated_at`,
		cart.UserID, itemsJSON, cart.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Clear empties the user's cart. Clearing an absent cart is a no-op.
func (s *CartStore) Clear(ctx context.Context, userID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
