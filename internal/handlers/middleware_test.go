package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/auth"
)

func testVerifier(t *testing.T) *auth.Verifier {
	t.Helper()
	v, err := auth.NewVerifier("unit-test-signing-secret")
	if err != nil {
		t.Fatalf("NewVerifier() error = %v", err)
	}
	return v
}

func testHandlers(t *testing.T) *Handlers {
	t.Helper()
	return &Handlers{
		verifier: testVerifier(t),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func mintToken(t *testing.T, v *auth.Verifier, p auth.Principal) string {
	t.Helper()
	token, err := v.Mint(p, time.Hour)
	if err != nil {
		t.Fatalf("Mint() error = %v", err)
	}
	return token
}

func TestRequireAuthAttachesPrincipal(t *testing.T) {
	t.Parallel()

	h := testHandlers(t)
	token := mintToken(t, h.verifier, auth.Principal{SubjectID: "user-1", Email: "asha@example.com"})

	var got auth.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFromContext(r.Context())
		if !ok {
			t.Fatalf("principal missing from request context")
		}
		got = principal
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	h.RequireAuth(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got.SubjectID != "user-1" || got.Email != "asha@example.com" {
		t.Fatalf("principal = %+v, want minted identity", got)
	}
}

func TestRequireAuthRejections(t *testing.T) {
	t.Parallel()

	h := testHandlers(t)
	foreign, err := auth.NewVerifier("a-different-signing-secret")
	if err != nil {
		t.Fatalf("NewVerifier() error = %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic dXNlcg=="},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{name: "foreign signature", header: "Bearer " + mintToken(t, foreign, auth.Principal{SubjectID: "user-1"})},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Fatalf("next handler reached without valid token")
			})
			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			h.RequireAuth(next).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	h := testHandlers(t)

	tests := []struct {
		name      string
		principal *auth.Principal
		wantCode  int
	}{
		{
			name:      "admin passes",
			principal: &auth.Principal{SubjectID: "user-1", Admin: true},
			wantCode:  http.StatusNoContent,
		},
		{
			name:      "non admin forbidden",
			principal: &auth.Principal{SubjectID: "user-1"},
			wantCode:  http.StatusForbidden,
		},
		{
			name:      "no principal unauthorized",
			principal: nil,
			wantCode:  http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})
			req := httptest.NewRequest(http.MethodGet, "/api/admin/admins", nil)
			if tc.principal != nil {
				ctx := context.WithValue(req.Context(), principalContextKey{}, *tc.principal)
				req = req.WithContext(ctx)
			}
			rec := httptest.NewRecorder()

			h.RequireAdmin(next).ServeHTTP(rec, req)

			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantCode)
			}
		})
	}
}
