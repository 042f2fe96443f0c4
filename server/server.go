package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/config"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/handlers"
)

type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	handlers   *handlers.Handlers
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger, h *handlers.Handlers) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if h == nil {
		return nil, fmt.Errorf("handlers are required")
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		handlers: h,
	}

	router := s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return s, nil
}

func (s *Server) Run() error {
	s.logger.Info("server starting", "port", s.cfg.Port)

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Close(ctx context.Context) error {
	if s == nil || s.httpServer == nil {
		return nil
	}

	s.logger.Info("server shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) buildRouter() *mux.Router {
	h := s.handlers

	r := mux.NewRouter()
	r.Use(h.RequestLogger)
	r.HandleFunc("/health", h.Health).Methods("GET").Name("health")

	// One-time interactive accounting authorization; no bearer token exists
	// when the operator runs it.
	r.HandleFunc("/auth/zoho", h.ZohoAuthRedirect).Methods("GET").Name("auth.zoho")
	r.HandleFunc("/auth/zoho/callback", h.ZohoAuthCallback).Methods("GET").Name("auth.zoho.callback")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(h.RequireAuth)

	api.HandleFunc("/products", h.ListProducts).Methods("GET").Name("products.list")
	api.HandleFunc("/products/{id}", h.GetProduct).Methods("GET").Name("products.get")

	api.HandleFunc("/cart", h.GetCart).Methods("GET").Name("cart.get")
	api.HandleFunc("/cart", h.ClearCart).Methods("DELETE").Name("cart.clear")
	api.HandleFunc("/cart/items", h.AddCartItem).Methods("POST").Name("cart.items.add")
	api.HandleFunc("/cart/items", h.UpdateCartItem).Methods("PUT").Name("cart.items.update")
	api.HandleFunc("/cart/items", h.RemoveCartItem).Methods("DELETE").Name("cart.items.remove")

	api.HandleFunc("/orders", h.CreateOrder).Methods("POST").Name("orders.create")
	api.HandleFunc("/orders", h.ListOrders).Methods("GET").Name("orders.list")
	api.HandleFunc("/orders/{code}", h.GetOrder).Methods("GET").Name("orders.get")

	api.HandleFunc("/payment/orders", h.CreatePaymentIntent).Methods("POST").Name("payment.orders.create")
	api.HandleFunc("/payment/orders/{id}", h.GetPaymentIntent).Methods("GET").Name("payment.orders.get")
	api.HandleFunc("/payment/payments/{paymentId}/order", h.GetOrderByPayment).Methods("GET").Name("payment.payments.order")

	// Admin creation is guarded by the master password in the body, not by an
	// existing admin session, so the first admin can bootstrap itself.
	api.HandleFunc("/admins", h.CreateAdmin).Methods("POST").Name("admins.create")

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(h.RequireAdmin)
	admin.HandleFunc("/admins", h.ListAdmins).Methods("GET").Name("admin.admins.list")
	admin.HandleFunc("/products", h.CreateProduct).Methods("POST").Name("admin.products.create")
	admin.HandleFunc("/products/{id}", h.UpdateProduct).Methods("PUT").Name("admin.products.update")
	admin.HandleFunc("/products/{id}", h.DeleteProduct).Methods("DELETE").Name("admin.products.delete")

	admin.HandleFunc("/packages", h.CreatePackage).Methods("POST").Name("admin.packages.create")
	admin.HandleFunc("/packages", h.ListPackages).Methods("GET").Name("admin.packages.list")
	admin.HandleFunc("/packages/{id}", h.GetPackage).Methods("GET").Name("admin.packages.get")
	admin.HandleFunc("/packages/{id}", h.UpdatePackage).Methods("PUT").Name("admin.packages.update")
	admin.HandleFunc("/packages/{id}", h.DeletePackage).Methods("DELETE").Name("admin.packages.delete")

	admin.HandleFunc("/shipments", h.CreateShipment).Methods("POST").Name("admin.shipments.create")
	admin.HandleFunc("/shipments", h.ListShipments).Methods("GET").Name("admin.shipments.list")
	admin.HandleFunc("/shipments/{id}", h.GetShipment).Methods("GET").Name("admin.shipments.get")
	admin.HandleFunc("/shipments/{id}", h.UpdateShipment).Methods("PUT").Name("admin.shipments.update")
	admin.HandleFunc("/track/{shipmentId}", h.TrackShipment).Methods("GET").Name("admin.track")

	admin.HandleFunc("/customers", h.ListCustomers).Methods("GET").Name("admin.customers.list")
	admin.HandleFunc("/customers", h.CreateCustomer).Methods("POST").Name("admin.customers.create")
	admin.HandleFunc("/customers/{id}", h.GetCustomer).Methods("GET").Name("admin.customers.get")
	admin.HandleFunc("/payments", h.ListCustomerPayments).Methods("GET").Name("admin.payments.list")
	admin.HandleFunc("/payments/{id}", h.GetCustomerPayment).Methods("GET").Name("admin.payments.get")
	admin.HandleFunc("/items", h.ListCatalogItems).Methods("GET").Name("admin.items.list")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "Not found"}`))
	})

	return r
}
