package credentials

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
)

type fakeTokenStore struct {
	tokens map[models.CredentialSystem]*models.CredentialToken
	getErr error
	puts   []*models.CredentialToken
}

func (s *fakeTokenStore) Get(_ context.Context, system models.CredentialSystem) (*models.CredentialToken, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.tokens[system], nil
}

func (s *fakeTokenStore) Put(_ context.Context, token *models.CredentialToken) error {
	if s.tokens == nil {
		s.tokens = map[models.CredentialSystem]*models.CredentialToken{}
	}
	s.tokens[token.System] = token
	s.puts = append(s.puts, token)
	return nil
}

type fakeRefresher struct {
	token *oauth2.Token
	err   error
	calls int
}

func (r *fakeRefresher) Refresh(context.Context, string) (*oauth2.Token, error) {
	r.calls++
	return r.token, r.err
}

type fakeCarrier struct {
	token string
	err   error
	calls int
}

func (c *fakeCarrier) Login(context.Context) (string, error) {
	c.calls++
	return c.token, c.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestManager(store TokenStore, refresher Refresher, carrier CarrierLogin, now time.Time) *Manager {
	m := NewManager(store, nil, refresher, carrier, discardLogger())
	m.now = func() time.Time { return now }
	return m
}

func TestZohoTokenReturnsStoredTokenOutsideSafetyMargin(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	store := &fakeTokenStore{tokens: map[models.CredentialSystem]*models.CredentialToken{
		models.SystemZoho: {
			System:       models.SystemZoho,
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			ExpiresAt:    now.Add(time.Hour),
		},
	}}
	refresher := &fakeRefresher{}
	m := newTestManager(store, refresher, nil, now)

	got, err := m.ZohoToken(context.Background())
	if err != nil {
		t.Fatalf("ZohoToken() error = %v", err)
	}
	if got != "access-1" {
		t.Fatalf("ZohoToken() = %q, want %q", got, "access-1")
	}
	if refresher.calls != 0 {
		t.Fatalf("refresh calls = %d, want 0", refresher.calls)
	}
}

func TestZohoTokenRefreshesInsideSafetyMargin(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	store := &fakeTokenStore{tokens: map[models.CredentialSystem]*models.CredentialToken{
		models.SystemZoho: {
			System:       models.SystemZoho,
			AccessToken:  "stale",
			RefreshToken: "refresh-1",
			ExpiresAt:    now.Add(2 * time.Minute), // inside the 5 minute margin
		},
	}}
	refresher := &fakeRefresher{token: &oauth2.Token{
		AccessToken: "fresh",
		Expiry:      now.Add(time.Hour),
	}}
	m := newTestManager(store, refresher, nil, now)

	got, err := m.ZohoToken(context.Background())
	if err != nil {
		t.Fatalf("ZohoToken() error = %v", err)
	}
	if got != "fresh" {
		t.Fatalf("ZohoToken() = %q, want %q", got, "fresh")
	}
	if refresher.calls != 1 {
		t.Fatalf("refresh calls = %d, want 1", refresher.calls)
	}
	if len(store.puts) != 1 {
		t.Fatalf("persisted tokens = %d, want 1", len(store.puts))
	}
	// Providers may omit the refresh token from the refresh response; the
	// previous one must survive.
	if store.puts[0].RefreshToken != "refresh-1" {
		t.Fatalf("persisted refresh token = %q, want %q", store.puts[0].RefreshToken, "refresh-1")
	}
}

func TestZohoTokenAdoptsRotatedRefreshToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	store := &fakeTokenStore{tokens: map[models.CredentialSystem]*models.CredentialToken{
		models.SystemZoho: {
			System:       models.SystemZoho,
			AccessToken:  "stale",
			RefreshToken: "refresh-1",
			ExpiresAt:    now.Add(-time.Minute),
		},
	}}
	refresher := &fakeRefresher{token: &oauth2.Token{
		AccessToken:  "fresh",
		RefreshToken: "refresh-2",
		Expiry:       now.Add(time.Hour),
	}}
	m := newTestManager(store, refresher, nil, now)

	if _, err := m.ZohoToken(context.Background()); err != nil {
		t.Fatalf("ZohoToken() error = %v", err)
	}
	if store.puts[0].RefreshToken != "refresh-2" {
		t.Fatalf("persisted refresh token = %q, want rotated %q", store.puts[0].RefreshToken, "refresh-2")
	}
}

func TestZohoTokenWithoutStoredTokenIsNotAuthenticated(t *testing.T) {
	t.Parallel()

	m := newTestManager(&fakeTokenStore{}, &fakeRefresher{}, nil, time.Now())

	_, err := m.ZohoToken(context.Background())
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("ZohoToken() error = %v, want ErrNotAuthenticated", err)
	}
}

func TestZohoTokenRefreshFailureIsUnavailable(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	store := &fakeTokenStore{tokens: map[models.CredentialSystem]*models.CredentialToken{
		models.SystemZoho: {
			System:       models.SystemZoho,
			AccessToken:  "stale",
			RefreshToken: "refresh-1",
			ExpiresAt:    now.Add(-time.Minute),
		},
	}}
	refresher := &fakeRefresher{err: errors.New("upstream down")}
	m := newTestManager(store, refresher, nil, now)

	_, err := m.ZohoToken(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("ZohoToken() error = %v, want ErrUnavailable", err)
	}
}

func TestShipRocketTokenReusesStoredSession(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	store := &fakeTokenStore{tokens: map[models.CredentialSystem]*models.CredentialToken{
		models.SystemShipRocket: {
			System:      models.SystemShipRocket,
			AccessToken: "session-1",
			ExpiresAt:   now.Add(12 * time.Hour),
		},
	}}
	carrier := &fakeCarrier{token: "session-2"}
	m := newTestManager(store, nil, carrier, now)

	got, err := m.ShipRocketToken(context.Background())
	if err != nil {
		t.Fatalf("ShipRocketToken() error = %v", err)
	}
	if got != "session-1" {
		t.Fatalf("ShipRocketToken() = %q, want %q", got, "session-1")
	}
	if carrier.calls != 0 {
		t.Fatalf("login calls = %d, want 0", carrier.calls)
	}
}

func TestShipRocketTokenLogsInWhenSessionExpired(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	store := &fakeTokenStore{tokens: map[models.CredentialSystem]*models.CredentialToken{
		models.SystemShipRocket: {
			System:      models.SystemShipRocket,
			AccessToken: "expired",
			ExpiresAt:   now.Add(-time.Minute),
		},
	}}
	carrier := &fakeCarrier{token: "session-2"}
	m := newTestManager(store, nil, carrier, now)

	got, err := m.ShipRocketToken(context.Background())
	if err != nil {
		t.Fatalf("ShipRocketToken() error = %v", err)
	}
	if got != "session-2" {
		t.Fatalf("ShipRocketToken() = %q, want %q", got, "session-2")
	}
	if carrier.calls != 1 {
		t.Fatalf("login calls = %d, want 1", carrier.calls)
	}

	persisted := store.tokens[models.SystemShipRocket]
	if persisted.AccessToken != "session-2" {
		t.Fatalf("persisted token = %q, want %q", persisted.AccessToken, "session-2")
	}
	if want := now.Add(24 * time.Hour); !persisted.ExpiresAt.Equal(want) {
		t.Fatalf("persisted expiry = %v, want %v", persisted.ExpiresAt, want)
	}
}

func TestShipRocketTokenLoginFailureIsUnavailable(t *testing.T) {
	t.Parallel()

	carrier := &fakeCarrier{err: errors.New("bad credentials")}
	m := newTestManager(&fakeTokenStore{}, nil, carrier, time.Now())

	_, err := m.ShipRocketToken(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("ShipRocketToken() error = %v, want ErrUnavailable", err)
	}
}
