package auth

import (
	"errors"
	"testing"
	"time"
)

func TestVerifierRoundTrip(t *testing.T) {
	t.Parallel()

	v, err := NewVerifier("unit-test-signing-secret")
	if err != nil {
		t.Fatalf("NewVerifier() error = %v", err)
	}

	minted, err := v.Mint(Principal{SubjectID: "user-1", Email: "asha@example.com", Admin: true}, time.Hour)
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}

	principal, err := v.Verify(minted)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if principal.SubjectID != "user-1" || principal.Email != "asha@example.com" || !principal.Admin {
		t.Fatalf("Verify() = %+v, want minted principal", principal)
	}
}

func TestVerifierRejections(t *testing.T) {
	t.Parallel()

	v, err := NewVerifier("unit-test-signing-secret")
	if err != nil {
		t.Fatalf("NewVerifier() error = %v", err)
	}
	other, err := NewVerifier("a-different-signing-secret")
	if err != nil {
		t.Fatalf("NewVerifier() error = %v", err)
	}

	foreign, err := other.Mint(Principal{SubjectID: "user-1"}, time.Hour)
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}
	expired, err := v.Mint(Principal{SubjectID: "user-1"}, -time.Minute)
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}
	noSubject, err := v.Mint(Principal{}, time.Hour)
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "empty token", token: "", wantErr: ErrNoToken},
		{name: "garbage token", token: "not.a.jwt", wantErr: ErrInvalidToken},
		{name: "wrong secret", token: foreign, wantErr: ErrInvalidToken},
		{name: "expired token", token: expired, wantErr: ErrInvalidToken},
		{name: "missing subject", token: noSubject, wantErr: ErrInvalidToken},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := v.Verify(tc.token)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Verify() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewVerifierRequiresSecret(t *testing.T) {
	t.Parallel()

	if _, err := NewVerifier("  "); err == nil {
		t.Fatalf("NewVerifier(blank) error = nil, want error")
	}
}

func TestFromAuthorizationHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing header", header: "", wantErr: true},
		{name: "wrong scheme", header: "Basic dXNlcg==", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := FromAuthorizationHeader(tc.header)
			if (err != nil) != tc.wantErr {
				t.Fatalf("FromAuthorizationHeader() error = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("FromAuthorizationHeader() = %q, want %q", got, tc.want)
			}
		})
	}
}
