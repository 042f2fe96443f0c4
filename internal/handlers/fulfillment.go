package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/logging"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/services"
)

// Packaging and shipment routes. All of them sit behind RequireAdmin.

func (h *Handlers) CreatePackage(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, logger, services.ErrUnauthorized)
		return
	}

	var input services.CreatePackageInput
	if !decodeJSON(w, r, &input) {
		return
	}

	pkg, err := h.fulfillmentService.CreatePackage(r.Context(), principal.SubjectID, input)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, pkg)
}

func (h *Handlers) GetPackage(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, logger, fmt.Errorf("%w: invalid package id", services.ErrInvalidInput))
		return
	}
	pkg, err := h.fulfillmentService.GetPackage(r.Context(), id)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, pkg)
}

func (h *Handlers) ListPackages(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	packages, err := h.fulfillmentService.ListPackages(r.Context(), r.URL.Query().Get("orderId"))
	if err != nil {
		writeError(w, logger, err)
		return
	}
	if packages == nil {
		packages = []*models.Package{}
	}
	writeJSON(w, http.StatusOK, packages)
}

func (h *Handlers) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, logger, fmt.Errorf("%w: invalid package id", services.ErrInvalidInput))
		return
	}

	var input services.UpdatePackageInput
	if !decodeJSON(w, r, &input) {
		return
	}

	pkg, err := h.fulfillmentService.UpdatePackage(r.Context(), id, input)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, pkg)
}

func (h *Handlers) DeletePackage(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, logger, fmt.Errorf("%w: invalid package id", services.ErrInvalidInput))
		return
	}

	if err := h.fulfillmentService.DeletePackage(r.Context(), id); err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Package deleted"})
}

func (h *Handlers) CreateShipment(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, logger, services.ErrUnauthorized)
		return
	}

	var input services.CreateShipmentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	shipment, err := h.fulfillmentService.CreateShipment(r.Context(), principal.SubjectID, input)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, shipment)
}

func (h *Handlers) GetShipment(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, logger, fmt.Errorf("%w: invalid shipment id", services.ErrInvalidInput))
		return
	}
	shipment, err := h.fulfillmentService.GetShipment(r.Context(), id)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, shipment)
}

func (h *Handlers) ListShipments(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)

	shipments, err := h.fulfillmentService.ListShipments(r.Context(), r.URL.Query().Get("orderId"))
	if err != nil {
		writeError(w, logger, err)
		return
	}
	if shipments == nil {
		shipments = []*models.Shipment{}
	}
	writeJSON(w, http.StatusOK, shipments)
}

type updateShipmentRequest struct {
	TrackingNumber string `json:"trackingNumber"`
	CourierName    string `json:"courierName"`
	Status         string `json:"status"`
}

// UpdateShipment handles both tracking assignment and status transitions from
// the same admin form.
func (h *Handlers) UpdateShipment(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeError(w, logger, services.ErrUnauthorized)
		return
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, logger, fmt.Errorf("%w: invalid shipment id", services.ErrInvalidInput))
		return
	}

	var input updateShipmentRequest
	if !decodeJSON(w, r, &input) {
		return
	}

	if input.TrackingNumber != "" {
		if err := h.fulfillmentService.AssignTracking(r.Context(), id, input.TrackingNumber, input.CourierName, principal.SubjectID); err != nil {
			writeError(w, logger, err)
			return
		}
	}
	if input.Status != "" {
		if err := h.fulfillmentService.UpdateShipmentStatus(r.Context(), id, models.ShipmentStatus(input.Status), principal.SubjectID); err != nil {
			writeError(w, logger, err)
			return
		}
	}

	shipment, err := h.fulfillmentService.GetShipment(r.Context(), id)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, shipment)
}
