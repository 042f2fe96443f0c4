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

type AdminStore struct {
	pool *pgxpool.Pool
}

func NewAdminStore(pool *pgxpool.Pool) *AdminStore {
	return &AdminStore{pool: pool}
}

func (s *AdminStore) Create(ctx context.Context, admin *AdminUser) error {
	if admin.UID == "" || admin.Email == "" {
		return fmt.Errorf("admin uid and email are required")
	}
	if admin.CreatedAt.IsZero() {
		admin.CreatedAt = time.Now().UTC()
	}

	permissionsJSON, err := json.Marshal(admin.Permissions)
	if err != nil {
		return fmt.Errorf("failed to encode admin permissions: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO admins (uid, email, display_name, phone_number, super_admin, permissions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		admin.UID, admin.Email, admin.DisplayName, admin.PhoneNumber,
		admin.SuperAdmin, permissionsJSON, admin.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert admin: %w", err)
	}
	return nil
}

func (s *AdminStore) GetByEmail(ctx context.Context, email string) (*AdminUser, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT uid, email, display_name, phone_number, super_admin, permissions, created_at
		FROM admins WHERE email = $1`, email)
	return scanAdmin(row)
}

func (s *AdminStore) List(ctx context.Context) ([]*AdminUser, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT uid, email, display_name, phone_number, super_admin, permissions, created_at
		FROM admins ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer rows.Close()

	var admins []*AdminUser
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, admin)
	}
	return admins, rows.Err()
}

func scanAdmin(row pgx.Row) (*AdminUser, error) {
	var (
		admin           AdminUser
		permissionsJSON []byte
	)
	err := row.Scan(
		&admin.UID, &admin.Email, &admin.DisplayName, &admin.PhoneNumber,
		&admin.SuperAdmin, &permissionsJSON, &admin.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan admin: %w", err)
	}
	if len(permissionsJSON) > 0 {
		if err := json.Unmarshal(permissionsJSON, &admin.Permissions); err != nil {
			return nil, fmt.Errorf("failed to decode admin permissions: %w", err)
		}
	}
	return &admin, nil
}
