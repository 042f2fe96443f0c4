package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/logging"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/shiprocket"
)

type carrierTracker interface {
	TrackShipment(ctx context.Context, shipmentID string) (*shiprocket.TrackingResponse, error)
}

// TrackShipment proxies a live tracking lookup to the carrier by its shipment
// id, as recorded in the order's integration refs.
func (h *Handlers) TrackShipment(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context(), h.logger)
	if h.carrierTracker == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Carrier integration is not configured"})
		return
	}

	shipmentID := mux.Vars(r)["shipmentId"]
	tracking, err := h.carrierTracker.TrackShipment(r.Context(), shipmentID)
	if err != nil {
		writeError(w, logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tracking)
}
