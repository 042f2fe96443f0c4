// Package credentials manages access tokens for the external systems: an
// OAuth refresh flow for the accounting system and a login-session flow for
// the shipping aggregator. A single Manager is constructed in app wiring and
// injected everywhere a token is needed; there is no package-level token
// state.
package credentials

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/oauth2"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/cache"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
)

var (
	// ErrNotAuthenticated means no token exists at all; the one-time
	// interactive authorization has not been completed.
	ErrNotAuthenticated = errors.New("not authenticated with external system")
	// ErrUnavailable means a token exists but could not be refreshed; the
	// caller should surface a retryable auth failure rather than proceed
	// with a stale token.
	ErrUnavailable = errors.New("external system authentication unavailable")
)

const (
	// zohoSafetyMargin is the lead time before expiry at which a refresh
	// is proactively triggered, so a request never races expiry mid-flight.
	zohoSafetyMargin = 5 * time.Minute
	// shipRocketTokenTTL is the fixed validity window of a carrier login
	// session.
	shipRocketTokenTTL = 24 * time.Hour
)

// TokenStore persists tokens across restarts. Implemented by
// db.CredentialStore.
type TokenStore interface {
	Get(ctx context.Context, system models.CredentialSystem) (*models.CredentialToken, error)
	Put(ctx context.Context, token *models.CredentialToken) error
}

// Refresher exchanges a refresh token for a fresh access token. Implemented
// by zoho.AuthConfig.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// CarrierLogin performs the carrier's username/password login. Implemented
// by shiprocket.Authenticator.
type CarrierLogin interface {
	Login(ctx context.Context) (string, error)
}

type Manager struct {
	store     TokenStore
	mirror    cache.Provider
	refresher Refresher
	carrier   CarrierLogin
	now       func() time.Time
	logger    *slog.Logger
}

func NewManager(store TokenStore, mirror cache.Provider, refresher Refresher, carrier CarrierLogin, logger *slog.Logger) *Manager {
	return &Manager{
		store:     store,
		mirror:    mirror,
		refresher: refresher,
		carrier:   carrier,
		now:       time.Now,
		logger:    logger,
	}
}

// ZohoToken returns a usable accounting access token, refreshing it when it
// is inside the safety margin. Two concurrent refreshes may both succeed;
// the provider treats refresh as idempotent and the last write wins.
func (m *Manager) ZohoToken(ctx context.Context) (string, error) {
	now := m.now()

	if token := m.mirrored(ctx, models.SystemZoho); token != nil && token.Usable(now, zohoSafetyMargin) {
		return token.AccessToken, nil
	}

	stored, err := m.store.Get(ctx, models.SystemZoho)
	if err != nil || stored == nil || stored.RefreshToken == "" {
		return "", ErrNotAuthenticated
	}
	if stored.Usable(now, zohoSafetyMargin) {
		m.remember(ctx, stored, zohoSafetyMargin)
		return stored.AccessToken, nil
	}

	refreshed, err := m.refresher.Refresh(ctx, stored.RefreshToken)
	if err != nil {
		m.logger.Error("accounting token refresh failed", "error", err)
		return "", ErrUnavailable
	}

	token := &models.CredentialToken{
		System:       models.SystemZoho,
		AccessToken:  refreshed.AccessToken,
		RefreshToken: stored.RefreshToken,
		IssuedAt:     now,
		ExpiresAt:    refreshed.Expiry,
	}
	if refreshed.RefreshToken != "" {
		token.RefreshToken = refreshed.RefreshToken
	}
	if err := m.store.Put(ctx, token); err != nil {
		m.logger.Error("failed to persist refreshed accounting token", "error", err)
	}
	m.remember(ctx, token, zohoSafetyMargin)
	return token.AccessToken, nil
}

// StoreZohoToken persists the token pair from the interactive authorization
// callback.
func (m *Manager) StoreZohoToken(ctx context.Context, tok *oauth2.Token) error {
	token := &models.CredentialToken{
		System:       models.SystemZoho,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		IssuedAt:     m.now(),
		ExpiresAt:    tok.Expiry,
	}
	if err := m.store.Put(ctx, token); err != nil {
		return err
	}
	m.remember(ctx, token, zohoSafetyMargin)
	return nil
}

// ShipRocketToken returns a cached carrier session token, logging in again
// only once the previous session has expired.
func (m *Manager) ShipRocketToken(ctx context.Context) (string, error) {
	now := m.now()

	if token := m.mirrored(ctx, models.SystemShipRocket); token != nil && token.Usable(now, 0) {
		return token.AccessToken, nil
	}

	stored, err := m.store.Get(ctx, models.SystemShipRocket)
	if err == nil && stored != nil && stored.Usable(now, 0) {
		m.remember(ctx, stored, 0)
		return stored.AccessToken, nil
	}

	sessionToken, err := m.carrier.Login(ctx)
	if err != nil {
		m.logger.Error("carrier login failed", "error", err)
		return "", ErrUnavailable
	}

	token := &models.CredentialToken{
		System:      models.SystemShipRocket,
		AccessToken: sessionToken,
		IssuedAt:    now,
		ExpiresAt:   now.Add(shipRocketTokenTTL),
	}
	if err := m.store.Put(ctx, token); err != nil {
		m.logger.Error("failed to persist carrier token", "error", err)
	}
	m.remember(ctx, token, 0)
	return token.AccessToken, nil
}

func (m *Manager) mirrored(ctx context.Context, system models.CredentialSystem) *models.CredentialToken {
	if m.mirror == nil {
		return nil
	}
	raw, err := m.mirror.Get(ctx, cache.TokenKey(string(system)))
	if err != nil {
		return nil
	}
	token, err := decodeToken(raw)
	if err != nil {
		return nil
	}
	return token
}

func (m *Manager) remember(ctx context.Context, token *models.CredentialToken, margin time.Duration) {
	if m.mirror == nil {
		return
	}
	ttl := token.ExpiresAt.Add(-margin).Sub(m.now())
	if ttl <= 0 {
		return
	}
	raw, err := encodeToken(token)
	if err != nil {
		return
	}
	if err := m.mirror.Set(ctx, cache.TokenKey(string(token.System)), raw, ttl); err != nil {
		m.logger.Warn("failed to mirror credential token", "system", token.System, "error", err)
	}
}
