package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required" validate:"required"`

	AuthTokenSecret     string `env:"AUTH_TOKEN_SECRET,required" validate:"required,min=16"`
	AdminMasterPassword string `env:"ADMIN_MASTER_PASSWORD,required" validate:"required"`

	RazorpayKeyID     string `env:"RAZORPAY_KEY_ID,required" validate:"required"`
	RazorpayKeySecret string `env:"RAZORPAY_KEY_SECRET,required" validate:"required"`
	RazorpayBaseURL   string `env:"RAZORPAY_BASE_URL" envDefault:"https://api.razorpay.com/v1" validate:"required,url"`

	ZohoClientID       string `env:"ZOHO_CLIENT_ID"`
	ZohoClientSecret   string `env:"ZOHO_CLIENT_SECRET"`
	ZohoOrganizationID string `env:"ZOHO_ORGANIZATION_ID"`
	ZohoAPIBaseURL     string `env:"ZOHO_API_BASE_URL" envDefault:"https://www.zohoapis.in/inventory/v1" validate:"required,url"`
	ZohoAccountsURL    string `env:"ZOHO_ACCOUNTS_URL" envDefault:"https://accounts.zoho.in" validate:"required,url"`

	ShipRocketEmail    string `env:"SHIPROCKET_EMAIL"`
	ShipRocketPassword string `env:"SHIPROCKET_PASSWORD"`
	ShipRocketBaseURL  string `env:"SHIPROCKET_BASE_URL" envDefault:"https://apiv2.shiprocket.in/v1/external" validate:"required,url"`

	ResendAPIKey     string `env:"RESEND_API_KEY"`
	OrderEmailSender string `env:"ORDER_EMAIL_SENDER" validate:"omitempty,email"`

	CacheProvider         string `env:"CACHE_PROVIDER" envDefault:"memory" validate:"omitempty,oneof=memory redis"`
	RedisConnectionString string `env:"REDIS_CONNECTION_STRING" envDefault:"redis://localhost:6379/0" validate:"required_if=CacheProvider redis"`

	BaseURL string `env:"BASE_URL" validate:"omitempty,url"`

	ExternalCallTimeout    time.Duration `env:"EXTERNAL_CALL_TIMEOUT" envDefault:"15s"`
	ClearCartAfterCheckout bool          `env:"CLEAR_CART_AFTER_CHECKOUT" envDefault:"false"`
	IntegrationDefaults    string        `env:"INTEGRATION_DEFAULTS_FILE"`

	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text" validate:"omitempty,oneof=text json"`
	Port      string     `env:"PORT" envDefault:"8080"`

	// Defaults is populated from IntegrationDefaults (or built-in values)
	// by Load; it is not read from the environment.
	Defaults Defaults `env:"-"`
}

var configValidator = validator.New()

func Load() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	defaults, err := LoadDefaults(cfg.IntegrationDefaults)
	if err != nil {
		return nil, err
	}
	cfg.Defaults = defaults

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if err := configValidator.Struct(c); err != nil {
		return err
	}

	hasZohoClientID := strings.TrimSpace(c.ZohoClientID) != ""
	hasZohoClientSecret := strings.TrimSpace(c.ZohoClientSecret) != ""
	if hasZohoClientID != hasZohoClientSecret {
		return fmt.Errorf("ZOHO_CLIENT_ID and ZOHO_CLIENT_SECRET must be set together")
	}
	if hasZohoClientID && strings.TrimSpace(c.ZohoOrganizationID) == "" {
		return fmt.Errorf("ZOHO_ORGANIZATION_ID is required when Zoho credentials are set")
	}
	if hasZohoClientID && strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("BASE_URL is required for the Zoho OAuth callback")
	}

	hasShipRocketEmail := strings.TrimSpace(c.ShipRocketEmail) != ""
	hasShipRocketPassword := strings.TrimSpace(c.ShipRocketPassword) != ""
	if hasShipRocketEmail != hasShipRocketPassword {
		return fmt.Errorf("SHIPROCKET_EMAIL and SHIPROCKET_PASSWORD must be set together")
	}

	if baseURL := strings.TrimSpace(c.BaseURL); baseURL != "" {
		parsed, err := url.Parse(baseURL)
		if err != nil || parsed.Hostname() == "" {
			return fmt.Errorf("BASE_URL must be a valid absolute URL")
		}
	}

	return nil
}

// ZohoEnabled reports whether accounting-system sync can run at all.
func (c *Config) ZohoEnabled() bool {
	return strings.TrimSpace(c.ZohoClientID) != ""
}

// ShipRocketEnabled reports whether carrier sync can run at all.
func (c *Config) ShipRocketEnabled() bool {
	return strings.TrimSpace(c.ShipRocketEmail) != ""
}
