package zoho

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
)

// AuthConfig drives the accounting system's OAuth2 flows: the one-time
// authorization-code exchange and the recurring refresh-token exchange.
type AuthConfig struct {
	oauth *oauth2.Config
}

const oauthScope = "ZohoInventory.fullaccess.all"

func NewAuthConfig(clientID, clientSecret, accountsURL, redirectURL string) *AuthConfig {
	accountsURL = strings.TrimRight(accountsURL, "/")
	return &AuthConfig{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  accountsURL + "/oauth/v2/auth",
				TokenURL: accountsURL + "/oauth/v2/token",
			},
			Scopes:      []string{oauthScope},
			RedirectURL: redirectURL,
		},
	}
}

// AuthCodeURL builds the interactive authorization redirect. access_type
// offline is required to receive a refresh token.
func (a *AuthConfig) AuthCodeURL(state string) string {
	return a.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for the initial token pair.
func (a *AuthConfig) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := a.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

// Refresh trades a refresh token for a fresh access token.
func (a *AuthConfig) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	source := a.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh access token: %w", err)
	}
	return token, nil
}
