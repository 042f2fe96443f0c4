package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
)

// CredentialStore persists one token row per external system so that
// authentication survives restarts.
type CredentialStore struct {
	pool *pgxpool.Pool
}

func NewCredentialStore(pool *pgxpool.Pool) *CredentialStore {
	return &CredentialStore{pool: pool}
}

func (s *CredentialStore) Get(ctx context.Context, system models.CredentialSystem) (*CredentialToken, error) {
	token := &CredentialToken{System: system}
	err := s.pool.QueryRow(ctx, `
		SELECT access_token, refresh_token, issued_at, expires_at
		FROM credential_tokens WHERE system = $1`, string(system),
	).Scan(&token.AccessToken, &token.RefreshToken, &token.IssuedAt, &token.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load credential token: %w", err)
	}
	return token, nil
}

func (s *CredentialStore) Put(ctx context.Context, token *CredentialToken) error {
	if token == nil || token.System == "" {
		return fmt.Errorf("credential token system is required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO credential_tokens (system, access_token, refresh_token, issued_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (system) DO UPDATE SET
			access_token  = EXCLUDED.access_token,
			refresh_token = CASE WHEN EXCLUDED.refresh_token = '' THEN credential_tokens.refresh_token ELSE EXCLUDED.refresh_token END,
			issued_at     = EXCLUDED.issued_at,
			expires_at    = EXCLUDED.expires_at`,
		string(token.System), token.AccessToken, token.RefreshToken, token.IssuedAt, token.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store credential token: %w", err)
	}
	return nil
}
