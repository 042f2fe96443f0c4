package models

import "time"

// CredentialSystem identifies which external system a cached token belongs to.
type CredentialSystem string

const (
	SystemZoho       CredentialSystem = "zoho"
	SystemShipRocket CredentialSystem = "shiprocket"
)

// CredentialToken is the persisted authentication state for one external
// system. Tokens are refreshed in place and superseded, never deleted.
type CredentialToken struct {
	System       CredentialSystem `json:"system"`
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken,omitempty"`
	IssuedAt     time.Time        `json:"issuedAt"`
	ExpiresAt    time.Time        `json:"expiresAt"`
}

// Usable reports whether the token can still be presented to the provider.
// The safety margin keeps a request from racing expiry mid-flight.
func (t *CredentialToken) Usable(now time.Time, margin time.Duration) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	return now.Before(t.ExpiresAt.Add(-margin))
}
