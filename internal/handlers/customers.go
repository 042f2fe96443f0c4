package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/logging"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/services"
)

// Customer directory routes are admin-only passthroughs to the accounting
// system, with payments enriched by the local order they settled.

func (h *Handlers) ListCustomers(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	if h.customerService == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Customer directory is not configured"})
		return
	}

	query := r.URL.Query()
	contacts, total, err := h.customerService.ListCustomers(r.Context(), services.ListCustomersInput{
		Page:    intQueryParam(query.Get("page"), 1),
		PerPage: intQueryParam(query.Get("perPage"), 25),
		Name:    query.Get("name"),
		Email:   query.Get("email"),
		Phone:   query.Get("phone"),
	})
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"customers": contacts,
		"total":     total,
	})
}

func (h *Handlers) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	if h.customerService == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Customer directory is not configured"})
		return
	}

	var input services.CreateCustomerInput
	if !decodeJSON(w, r, &input) {
		return
	}

	contact, err := h.customerService.CreateCustomer(r.Context(), input)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

func (h *Handlers) GetCustomer(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	if h.customerService == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Customer directory is not configured"})
		return
	}

	contact, err := h.customerService.GetCustomer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (h *Handlers) ListCustomerPayments(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	if h.customerService == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Customer directory is not configured"})
		return
	}

	query := r.URL.Query()
	payments, total, err := h.customerService.ListPayments(r.Context(),
		intQueryParam(query.Get("page"), 1),
		intQueryParam(query.Get("perPage"), 25),
	)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"payments": payments,
		"total":    total,
	})
}

func (h *Handlers) ListCatalogItems(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	if h.customerService == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Customer directory is not configured"})
		return
	}

	items, err := h.customerService.ListCatalogItems(r.Context())
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handlers) GetCustomerPayment(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	if h.customerService == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Customer directory is not configured"})
		return
	}

	payment, err := h.customerService.GetPayment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, payment)
}
