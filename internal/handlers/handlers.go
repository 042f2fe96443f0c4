package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/auth"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/cache"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/config"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/credentials"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/db"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/services"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/shiprocket"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/zoho"
)

const maxBodyBytes = 1 << 20 // 1 MB

// Handlers provides the HTTP surface of the order backend.
type Handlers struct {
	config             *config.Config
	db                 *pgxpool.Pool
	cacheProvider      cache.Provider
	verifier           *auth.Verifier
	orderService       *services.OrderService
	cartService        *services.CartService
	paymentService     *services.PaymentService
	fulfillmentService *services.FulfillmentService
	adminService       *services.AdminService
	customerService    *services.CustomerService
	productStore       *db.ProductStore
	zohoAuth           *zoho.AuthConfig
	credentialManager  *credentials.Manager
	carrierTracker     carrierTracker
	logger             *slog.Logger
}

type Dependencies struct {
	Config             *config.Config
	DB                 *pgxpool.Pool
	CacheProvider      cache.Provider
	Verifier           *auth.Verifier
	OrderService       *services.OrderService
	CartService        *services.CartService
	PaymentService     *services.PaymentService
	FulfillmentService *services.FulfillmentService
	AdminService       *services.AdminService
	CustomerService    *services.CustomerService
	ProductStore       *db.ProductStore
	ZohoAuth           *zoho.AuthConfig
	CredentialManager  *credentials.Manager
	CarrierTracker     *shiprocket.Client
	Logger             *slog.Logger
}

func New(deps Dependencies) (*Handlers, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if deps.Config == nil {
		return nil, fmt.Errorf("handlers dependencies: config is required")
	}
	if deps.DB == nil {
		return nil, fmt.Errorf("handlers dependencies: db is required")
	}
	if deps.CacheProvider == nil {
		return nil, fmt.Errorf("handlers dependencies: cacheProvider is required")
	}
	if deps.Verifier == nil {
		return nil, fmt.Errorf("handlers dependencies: verifier is required")
	}
	if deps.OrderService == nil {
		return nil, fmt.Errorf("handlers dependencies: orderService is required")
	}
	if deps.CartService == nil {
		return nil, fmt.Errorf("handlers dependencies: cartService is required")
	}
	if deps.PaymentService == nil {
		return nil, fmt.Errorf("handlers dependencies: paymentService is required")
	}
	if deps.FulfillmentService == nil {
		return nil, fmt.Errorf("handlers dependencies: fulfillmentService is required")
	}
	if deps.AdminService == nil {
		return nil, fmt.Errorf("handlers dependencies: adminService is required")
	}
	if deps.ProductStore == nil {
		return nil, fmt.Errorf("handlers dependencies: productStore is required")
	}

	h := &Handlers{
		config:             deps.Config,
		db:                 deps.DB,
		cacheProvider:      deps.CacheProvider,
		verifier:           deps.Verifier,
		orderService:       deps.OrderService,
		cartService:        deps.CartService,
		paymentService:     deps.PaymentService,
		fulfillmentService: deps.FulfillmentService,
		adminService:       deps.AdminService,
		customerService:    deps.CustomerService,
		productStore:       deps.ProductStore,
		zohoAuth:           deps.ZohoAuth,
		credentialManager:  deps.CredentialManager,
		logger:             logger,
	}
	if deps.CarrierTracker != nil {
		h.carrierTracker = deps.CarrierTracker
	}
	return h, nil
}

// Health reports liveness plus database reachability.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := h.db.Ping(r.Context()); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]string{"status": status})
}
