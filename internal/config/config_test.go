package config

import (
	"strings"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/orders")
	t.Setenv("AUTH_TOKEN_SECRET", "unit-test-signing-secret")
	t.Setenv("ADMIN_MASTER_PASSWORD", "s3cret")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp_test_secret")
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.RazorpayBaseURL != "https://api.razorpay.com/v1" {
		t.Fatalf("RazorpayBaseURL = %q, want gateway default", cfg.RazorpayBaseURL)
	}
	if cfg.CacheProvider != "memory" {
		t.Fatalf("CacheProvider = %q, want memory", cfg.CacheProvider)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.ClearCartAfterCheckout {
		t.Fatalf("ClearCartAfterCheckout = true, want false by default")
	}
	if cfg.Defaults.Shipping.City != "Mumbai" || cfg.Defaults.Package.WeightKG != 0.5 {
		t.Fatalf("Defaults = %+v, want built-in integration defaults", cfg.Defaults)
	}
	if cfg.ZohoEnabled() || cfg.ShipRocketEnabled() {
		t.Fatalf("integrations enabled without credentials")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "short auth token secret",
			env:     map[string]string{"AUTH_TOKEN_SECRET": "short"},
			wantErr: "AuthTokenSecret",
		},
		{
			name:    "zoho client id without secret",
			env:     map[string]string{"ZOHO_CLIENT_ID": "client-1"},
			wantErr: "ZOHO_CLIENT_ID and ZOHO_CLIENT_SECRET",
		},
		{
			name: "zoho without organization id",
			env: map[string]string{
				"ZOHO_CLIENT_ID":     "client-1",
				"ZOHO_CLIENT_SECRET": "secret-1",
				"BASE_URL":           "https://orders.example.com",
			},
			wantErr: "ZOHO_ORGANIZATION_ID",
		},
		{
			name: "zoho without base url",
			env: map[string]string{
				"ZOHO_CLIENT_ID":       "client-1",
				"ZOHO_CLIENT_SECRET":   "secret-1",
				"ZOHO_ORGANIZATION_ID": "org-1",
			},
			wantErr: "BASE_URL",
		},
		{
			name:    "shiprocket email without password",
			env:     map[string]string{"SHIPROCKET_EMAIL": "ops@example.com"},
			wantErr: "SHIPROCKET_EMAIL and SHIPROCKET_PASSWORD",
		},
		{
			name:    "invalid sender email",
			env:     map[string]string{"ORDER_EMAIL_SENDER": "not-an-email"},
			wantErr: "OrderEmailSender",
		},
		{
			name:    "unknown cache provider",
			env:     map[string]string{"CACHE_PROVIDER": "memcached"},
			wantErr: "CacheProvider",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			setRequiredEnv(t)
			for key, value := range tc.env {
				t.Setenv(key, value)
			}

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() error = nil, want failure mentioning %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Load() error = %v, want mention of %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadEnabledIntegrations(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ZOHO_CLIENT_ID", "client-1")
	t.Setenv("ZOHO_CLIENT_SECRET", "secret-1")
	t.Setenv("ZOHO_ORGANIZATION_ID", "org-1")
	t.Setenv("BASE_URL", "https://orders.example.com")
	t.Setenv("SHIPROCKET_EMAIL", "ops@example.com")
	t.Setenv("SHIPROCKET_PASSWORD", "carrier-pass")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.ZohoEnabled() {
		t.Fatalf("ZohoEnabled() = false, want true")
	}
	if !cfg.ShipRocketEnabled() {
		t.Fatalf("ShipRocketEnabled() = false, want true")
	}
}

func TestLoadDefaultsOverlay(t *testing.T) {
	t.Parallel()

	defaults, err := LoadDefaults("")
	if err != nil {
		t.Fatalf("LoadDefaults() error = %v", err)
	}
	if defaults.Shipping.PickupLocation != "Home" {
		t.Fatalf("PickupLocation = %q, want Home", defaults.Shipping.PickupLocation)
	}
	if defaults.Package.LengthCM != 10 {
		t.Fatalf("LengthCM = %d, want 10", defaults.Package.LengthCM)
	}

	if _, err := LoadDefaults("/nonexistent/defaults.yaml"); err == nil {
		t.Fatalf("LoadDefaults(missing file) error = nil, want error")
	}
}
