package handlers

import (
	"net/http"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/logging"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/services"
)

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, logger, services.ErrUnauthorized)
		return
	}

	cart, err := h.cartService.Get(r.Context(), principal.SubjectID)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handlers) AddCartItem(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, logger, services.ErrUnauthorized)
		return
	}

	var input services.AddItemInput
	if !decodeJSON(w, r, &input) {
		return
	}

	cart, err := h.cartService.Add(r.Context(), principal.SubjectID, input)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

type updateCartItemRequest struct {
	ProductID string `json:"productId"`
	ShadeID   string `json:"shadeId"`
	Quantity  int    `json:"quantity"`
}

func (h *Handlers) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, logger, services.ErrUnauthorized)
		return
	}

	var input updateCartItemRequest
	if !decodeJSON(w, r, &input) {
		return
	}

	cart, err := h.cartService.UpdateQuantity(r.Context(), principal.SubjectID, input.ProductID, input.ShadeID, input.Quantity)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handlers) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, logger, services.ErrUnauthorized)
		return
	}

	query := r.URL.Query()
	cart, err := h.cartService.Remove(r.Context(), principal.SubjectID, query.Get("productId"), query.Get("shadeId"))
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, logger, services.ErrUnauthorized)
		return
	}

	if err := h.cartService.Clear(r.Context(), principal.SubjectID); err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
