package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/auth"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/cache"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/config"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/credentials"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/db"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/email"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/handlers"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/observability"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/razorpay"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/services"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/shiprocket"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/zoho"
)

type App struct {
	Config        *config.Config
	Logger        *slog.Logger
	DB            *pgxpool.Pool
	CacheProvider cache.Provider
	Handlers      *handlers.Handlers
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	database, err := db.Connect(startupCtx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	cacheProvider, err := cache.NewProvider(cache.Config{
		Provider:              cfg.CacheProvider,
		RedisConnectionString: cfg.RedisConnectionString,
	})
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize cache provider: %w", err)
	}

	verifier, err := auth.NewVerifier(cfg.AuthTokenSecret)
	if err != nil {
		closeCacheProvider(logger, cacheProvider)
		database.Close()
		return nil, fmt.Errorf("failed to initialize token verifier: %w", err)
	}

	orderStore := db.NewOrderStore(database)
	cartStore := db.NewCartStore(database)
	productStore := db.NewProductStore(database)
	credentialStore := db.NewCredentialStore(database)
	gatewayOrderStore := db.NewGatewayOrderStore(database)
	packageStore := db.NewPackageStore(database)
	shipmentStore := db.NewShipmentStore(database)
	adminStore := db.NewAdminStore(database)

	httpClient := observability.NewHTTPClient(cfg.ExternalCallTimeout)

	var zohoAuth *zoho.AuthConfig
	if cfg.ZohoEnabled() {
		redirectURL := strings.TrimRight(cfg.BaseURL, "/") + "/auth/zoho/callback"
		zohoAuth = zoho.NewAuthConfig(cfg.ZohoClientID, cfg.ZohoClientSecret, cfg.ZohoAccountsURL, redirectURL)
	}

	var carrierLogin *shiprocket.Authenticator
	if cfg.ShipRocketEnabled() {
		carrierLogin = shiprocket.NewAuthenticator(httpClient, cfg.ShipRocketBaseURL, cfg.ShipRocketEmail, cfg.ShipRocketPassword)
	}

	var credentialManager *credentials.Manager
	if zohoAuth != nil || carrierLogin != nil {
		var refresher credentials.Refresher
		if zohoAuth != nil {
			refresher = zohoAuth
		}
		var carrier credentials.CarrierLogin
		if carrierLogin != nil {
			carrier = carrierLogin
		}
		credentialManager = credentials.NewManager(
			credentialStore,
			cacheProvider,
			refresher,
			carrier,
			logger.With("component", "credentials"),
		)
	}

	razorpayClient := razorpay.NewClient(
		httpClient,
		cfg.RazorpayBaseURL,
		cfg.RazorpayKeyID,
		cfg.RazorpayKeySecret,
		logger.With("component", "razorpay_client"),
	)

	cartService := services.NewCartService(cartStore, productStore, logger.With("component", "cart_service"))

	var shippingSync *services.ShippingSync
	var carrierClient *shiprocket.Client
	if carrierLogin != nil {
		carrierClient = shiprocket.NewClient(httpClient, cfg.ShipRocketBaseURL, credentialManager, logger.With("component", "shiprocket_client"))
		shippingSync = services.NewShippingSync(carrierClient, orderStore, cfg.Defaults, logger.With("component", "shipping_sync"))
	}

	var accountingSync *services.AccountingSync
	var customerService *services.CustomerService
	var zohoClient *zoho.Client
	if zohoAuth != nil {
		zohoClient = zoho.NewClient(httpClient, cfg.ZohoAPIBaseURL, cfg.ZohoOrganizationID, credentialManager, logger.With("component", "zoho_client"))
		accountingSync = services.NewAccountingSync(zohoClient, orderStore, logger.With("component", "accounting_sync"))
	}

	var emailSender email.Provider = email.Noop{}
	if cfg.ResendAPIKey != "" && cfg.OrderEmailSender != "" {
		emailSender = email.NewResendProvider(cfg.ResendAPIKey, cfg.OrderEmailSender)
	}
	emailRenderer, err := email.NewRenderer()
	if err != nil {
		closeCacheProvider(logger, cacheProvider)
		database.Close()
		return nil, fmt.Errorf("failed to initialize email templates: %w", err)
	}

	orderService := services.NewOrderService(
		orderStore,
		gatewayOrderStore,
		razorpayClient,
		cartService,
		shippingSync,
		accountingSync,
		emailSender,
		emailRenderer,
		cfg.ClearCartAfterCheckout,
		logger.With("component", "order_service"),
	)
	if zohoClient != nil {
		customerService = services.NewCustomerService(zohoClient, orderService, logger.With("component", "customer_service"))
	}

	paymentService := services.NewPaymentService(razorpayClient, gatewayOrderStore, logger.With("component", "payment_service"))
	fulfillmentService := services.NewFulfillmentService(packageStore, shipmentStore, orderStore, logger.With("component", "fulfillment_service"))
	adminService := services.NewAdminService(adminStore, cfg.AdminMasterPassword, logger.With("component", "admin_service"))

	h, err := handlers.New(handlers.Dependencies{
		Config:             cfg,
		DB:                 database,
		CacheProvider:      cacheProvider,
		Verifier:           verifier,
		OrderService:       orderService,
		CartService:        cartService,
		PaymentService:     paymentService,
		FulfillmentService: fulfillmentService,
		AdminService:       adminService,
		CustomerService:    customerService,
		ProductStore:       productStore,
		ZohoAuth:           zohoAuth,
		CredentialManager:  credentialManager,
		CarrierTracker:     carrierClient,
		Logger:             logger,
	})
	if err != nil {
		closeCacheProvider(logger, cacheProvider)
		database.Close()
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	return &App{
		Config:        cfg,
		Logger:        logger,
		DB:            database,
		CacheProvider: cacheProvider,
		Handlers:      h,
	}, nil
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.CacheProvider != nil {
		closeCacheProvider(a.Logger, a.CacheProvider)
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	format := strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	switch format {
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	case "text", "":
		return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
			Level: cfg.LogLevel,
		}))
	}
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: cfg.LogLevel}))
}

func closeCacheProvider(logger *slog.Logger, provider cache.Provider) {
	if provider == nil {
		return
	}
	if err := provider.Close(); err != nil && logger != nil {
		logger.Warn("failed to close cache provider", "error", err)
	}
}
