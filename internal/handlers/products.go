package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/db"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/logging"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/services"
)

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	products, err := h.productStore.List(r.Context())
	if err != nil {
		writeError(w, logger, err)
		return
	}
	if products == nil {
		products = []*models.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	product, err := h.productStore.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, logger, services.ErrNotFound)
			return
		}
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// CreateProduct is admin-only; the router gates it behind RequireAdmin.
func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	var product models.Product
	if !decodeJSON(w, r, &product) {
		return
	}
	if product.ID == "" || product.Name == "" || product.Price <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "id, name and a positive price are required"})
		return
	}

	if err := h.productStore.Create(r.Context(), &product); err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	var product models.Product
	if !decodeJSON(w, r, &product) {
		return
	}
	product.ID = mux.Vars(r)["id"]
	if product.Name == "" || product.Price <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and a positive price are required"})
		return
	}

	if err := h.productStore.Update(r.Context(), &product); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, logger, services.ErrNotFound)
			return
		}
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	if err := h.productStore.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			writeError(w, logger, services.ErrNotFound)
			return
		}
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}
