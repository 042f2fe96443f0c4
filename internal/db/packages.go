package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
)

type PackageStore struct {
	pool *pgxpool.Pool
}

func NewPackageStore(pool *pgxpool.Pool) *PackageStore {
	return &PackageStore{pool: pool}
}

const packageColumns = `id, order_code, name, package_number, dimensions, weight, items, status, created_by, created_at`

func (s *PackageStore) Create(ctx context.Context, pkg *Package) error {
	if pkg.ID == uuid.Nil {
		pkg.ID = uuid.New()
	}
	if pkg.CreatedAt.IsZero() {
		pkg.CreatedAt = time.Now().UTC()
	}
	if pkg.Status == "" {
		pkg.Status = models.ShipmentCreated
	}

	dimensionsJSON, err := json.Marshal(pkg.Dimensions)
	if err != nil {
		return fmt.Errorf("failed to encode package dimensions: %w", err)
	}
	weightJSON, err := json.Marshal(pkg.Weight)
	if err != nil {
		return fmt.Errorf("failed to encode package weight: %w", err)
	}
	itemsJSON, err := json.Marshal(pkg.Items)
	if err != nil {
		return fmt.Errorf("failed to encode package items: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO packages (id, order_code, name, package_number, dimensions, weight, items, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		pkg.ID, pkg.OrderCode, pkg.Name, pkg.PackageNumber,
		dimensionsJSON, weightJSON, itemsJSON,
		string(pkg.Status), pkg.CreatedBy, pkg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert package: %w", err)
	}
	return nil
}

func (s *PackageStore) Get(ctx context.Context, id uuid.UUID) (*Package, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+packageColumns+` FROM packages WHERE id = $1`, id)
	return scanPackage(row)
}

// List returns packages newest first, optionally narrowed to one order.
func (s *PackageStore) List(ctx context.Context, orderCode string) ([]*Package, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+packageColumns+` FROM packages WHERE ($1 = '' OR order_code = $1) ORDER BY created_at DESC`,
		orderCode,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	defer rows.Close()

	var packages []*Package
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}
	return packages, rows.Err()
}

func (s *PackageStore) Update(ctx context.Context, pkg *Package) error {
	dimensionsJSON, err := json.Marshal(pkg.Dimensions)
	if err != nil {
		return fmt.Errorf("failed to encode package dimensions: %w", err)
	}
	weightJSON, err := json.Marshal(pkg.Weight)
	if err != nil {
		return fmt.Errorf("failed to encode package weight: %w", err)
	}
	itemsJSON, err := json.Marshal(pkg.Items)
	if err != nil {
		return fmt.Errorf("failed to encode package items: %w", err)
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE packages
		SET name = $2, package_number = $3, dimensions = $4, weight = $5, items = $6, status = $7
		WHERE id = $1`,
		pkg.ID, pkg.Name, pkg.PackageNumber,
		dimensionsJSON, weightJSON, itemsJSON,
		string(pkg.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to update package: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PackageStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPackage(row pgx.Row) (*Package, error) {
	var (
		pkg            Package
		dimensionsJSON []byte
		weightJSON     []byte
		itemsJSON      []byte
		status         string
	)
	err := row.Scan(
		&pkg.ID, &pkg.OrderCode, &pkg.Name, &pkg.PackageNumber,
		&dimensionsJSON, &weightJSON, &itemsJSON,
		&status, &pkg.CreatedBy, &pkg.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan package: %w", err)
	}
	pkg.Status = models.ShipmentStatus(status)

	if len(dimensionsJSON) > 0 {
		if err := json.Unmarshal(dimensionsJSON, &pkg.Dimensions); err != nil {
			return nil, fmt.Errorf("failed to decode package dimensions: %w", err)
		}
	}
	if len(weightJSON) > 0 {
		if err := json.Unmarshal(weightJSON, &pkg.Weight); err != nil {
			return nil, fmt.Errorf("failed to decode package weight: %w", err)
		}
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &pkg.Items); err != nil {
			return nil, fmt.Errorf("failed to decode package items: %w", err)
		}
	}
	return &pkg, nil
}
