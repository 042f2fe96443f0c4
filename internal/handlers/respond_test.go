package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/credentials"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/services"
)

func TestWriteErrorMapping(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "invalid signature",
			err:      services.ErrInvalidSignature,
			wantCode: http.StatusBadRequest,
			wantBody: "Invalid payment signature",
		},
		{
			name:     "invalid input keeps detail",
			err:      fmt.Errorf("%w: quantity must be positive", services.ErrInvalidInput),
			wantCode: http.StatusBadRequest,
			wantBody: "invalid input: quantity must be positive",
		},
		{
			name:     "unauthorized",
			err:      services.ErrUnauthorized,
			wantCode: http.StatusUnauthorized,
			wantBody: "Authentication required",
		},
		{
			name:     "forbidden",
			err:      services.ErrForbidden,
			wantCode: http.StatusForbidden,
			wantBody: "Permission denied",
		},
		{
			name:     "not found keeps detail",
			err:      fmt.Errorf("%w: order ORD1", services.ErrNotFound),
			wantCode: http.StatusNotFound,
			wantBody: "resource not found: order ORD1",
		},
		{
			name:     "upstream unavailable",
			err:      services.ErrUpstreamUnavailable,
			wantCode: http.StatusServiceUnavailable,
			wantBody: "Service temporarily unavailable",
		},
		{
			name:     "persistence failure",
			err:      fmt.Errorf("%w: order could not be saved", services.ErrPersistence),
			wantCode: http.StatusInternalServerError,
			wantBody: "Internal server error",
		},
		{
			name:     "credentials missing",
			err:      credentials.ErrNotAuthenticated,
			wantCode: http.StatusServiceUnavailable,
			wantBody: "Service temporarily unavailable",
		},
		{
			name:     "credentials unavailable",
			err:      credentials.ErrUnavailable,
			wantCode: http.StatusServiceUnavailable,
			wantBody: "Service temporarily unavailable",
		},
		{
			name:     "unexpected error is opaque",
			err:      fmt.Errorf("pq: connection reset"),
			wantCode: http.StatusInternalServerError,
			wantBody: "Internal server error",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			writeError(rec, logger, tc.err)

			if rec.Code != tc.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantCode)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("response is not JSON: %v", err)
			}
			if body["error"] != tc.wantBody {
				t.Fatalf("error body = %q, want %q", body["error"], tc.wantBody)
			}
		})
	}
}

func TestDecodeJSONRejectsBadBody(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
	rec := httptest.NewRecorder()

	var out struct{}
	if decodeJSON(rec, req, &out) {
		t.Fatalf("decodeJSON(empty body) = true, want false")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestIntQueryParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "empty uses fallback", raw: "", want: 25},
		{name: "valid value", raw: "3", want: 3},
		{name: "non numeric uses fallback", raw: "abc", want: 25},
		{name: "zero uses fallback", raw: "0", want: 25},
		{name: "negative uses fallback", raw: "-2", want: 25},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := intQueryParam(tc.raw, 25); got != tc.want {
				t.Fatalf("intQueryParam(%q) = %d, want %d", tc.raw, got, tc.want)
			}
		})
	}
}
