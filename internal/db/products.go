package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductStore struct {
	pool *pgxpool.Pool
}

func NewProductStore(pool *pgxpool.Pool) *ProductStore {
	return &ProductStore{pool: pool}
}

const productColumns = `id, name, description, price, sku, images, shades, weight_grams, hsn, gst, stock, created_at`

func (s *ProductStore) Get(ctx context.Context, id string) (*Product, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	return scanProduct(row)
}

func (s *ProductStore) List(ctx context.Context) ([]*Product, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (s *ProductStore) Create(ctx context.Context, product *Product) error {
	if product.ID == "" {
		return fmt.Errorf("product id is required")
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}

	imagesJSON, err := json.Marshal(product.Images)
	if err != nil {
		return fmt.Errorf("failed to encode product images: %w", err)
	}
	shadesJSON, err := json.Marshal(product.Shades)
	if err != nil {
		return fmt.Errorf("failed to encode product shades: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO products (id, name, description, price, sku, images, shades, weight_grams, hsn, gst, stock, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		product.ID, product.Name, product.Description, product.Price, product.SKU,
		imagesJSON, shadesJSON, product.WeightGrams, product.HSN, product.GST,
		product.Stock, product.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (s *ProductStore) Update(ctx context.Context, product *Product) error {
	imagesJSON, err := json.Marshal(product.Images)
	if err != nil {
		return fmt.Errorf("failed to encode product images: %w", err)
	}
	shadesJSON, err := json.Marshal(product.Shades)
	if err != nil {
		return fmt.Errorf("failed to encode product shades: %w", err)
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE products
		SET name = $2, description = $3, price = $4, sku = $5, images = $6,
		    shades = $7, weight_grams = $8, hsn = $9, gst = $10, stock = $11
		WHERE id = $1`,
		product.ID, product.Name, product.Description, product.Price, product.SKU,
		imagesJSON, shadesJSON, product.WeightGrams, product.HSN, product.GST,
		product.Stock,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*Product, error) {
	var (
		product    Product
		imagesJSON []byte
		shadesJSON []byte
	)
	err := row.Scan(
		&product.ID, &product.Name, &product.Description, &product.Price, &product.SKU,
		&imagesJSON, &shadesJSON, &product.WeightGrams, &product.HSN, &product.GST,
		&product.Stock, &product.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan product: %w", err)
	}

	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &product.Images); err != nil {
			return nil, fmt.Errorf("failed to decode product images: %w", err)
		}
	}
	if len(shadesJSON) > 0 {
		if err := json.Unmarshal(shadesJSON, &product.Shades); err != nil {
			return nil, fmt.Errorf("failed to decode product shades: %w", err)
		}
	}
	return &product, nil
}
