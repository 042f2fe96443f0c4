package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/logging"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/services"
)

// CreateOrder places an order from the request body, or from the caller's
// cart when no items are supplied.
func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, logger, services.ErrUnauthorized)
		return
	}

	var input services.CheckoutInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.orderService.Checkout(r.Context(), principal, input)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, logger, services.ErrUnauthorized)
		return
	}

	code := mux.Vars(r)["code"]
	order, err := h.orderService.Get(r.Context(), principal, code)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, logger, services.ErrUnauthorized)
		return
	}

	query := r.URL.Query()
	input := services.ListOrdersInput{
		Status:        query.Get("status"),
		PaymentStatus: query.Get("paymentStatus"),
		Page:          intQueryParam(query.Get("page"), 1),
		PageSize:      intQueryParam(query.Get("pageSize"), 20),
	}

	orders, total, err := h.orderService.List(r.Context(), principal, input)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"orders": orders,
		"total":  total,
		"page":   input.Page,
	})
}

func intQueryParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
