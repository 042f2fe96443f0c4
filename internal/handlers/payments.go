package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/logging"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/services"
)

// CreatePaymentIntent registers a payment with the gateway ahead of checkout
// and returns the gateway order id the storefront passes to the widget.
func (h *Handlers) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, logger, services.ErrUnauthorized)
		return
	}

	var input services.CreateIntentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	intent, err := h.paymentService.CreateIntent(r.Context(), principal, input)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"order": intent,
		"keyId": h.config.RazorpayKeyID,
	})
}

func (h *Handlers) GetPaymentIntent(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	intent, err := h.paymentService.GetIntent(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, intent)
}

// GetOrderByPayment resolves the local order created for a verified gateway
// payment.
func (h *Handlers) GetOrderByPayment(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	order, err := h.orderService.GetByGatewayPaymentID(r.Context(), mux.Vars(r)["paymentId"])
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
