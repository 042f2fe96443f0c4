// Package auth verifies bearer identity tokens and exposes the decoded
// principal trusted for authorization checks.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNoToken      = errors.New("no bearer token provided")
	ErrInvalidToken = errors.New("invalid bearer token")
)

// Principal is the decoded identity attached to a verified request. The
// Admin flag gates admin-only operations.
type Principal struct {
	SubjectID string
	Email     string
	Admin     bool
}

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) (*Verifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("auth token secret is required")
	}
	return &Verifier{secret: []byte(secret)}, nil
}

type claims struct {
	Email string `json:"email"`
	Admin bool   `json:"admin"`
	jwt.RegisteredClaims
}

// Verify parses and validates a bearer token, returning the principal it
// carries.
func (v *Verifier) Verify(tokenString string) (*Principal, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, ErrNoToken
	}

	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return &Principal{
		SubjectID: c.Subject,
		Email:     c.Email,
		Admin:     c.Admin,
	}, nil
}

// Mint issues a signed token for the given principal. Used by the admin
// bootstrap flow and by tests.
func (v *Verifier) Mint(p Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: p.Email,
		Admin: p.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.SubjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(v.secret)
}

// FromAuthorizationHeader extracts the raw token from an Authorization
// header value.
func FromAuthorizationHeader(header string) (string, error) {
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", ErrNoToken
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")), nil
}
