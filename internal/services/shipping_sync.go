package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/config"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/logging"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/shiprocket"
)

// StepStatus reports the outcome of one best-effort integration step. The
// error text is included so clients can show a degraded-sync notice without
// the order itself failing.
type StepStatus struct {
	Attempted bool   `json:"attempted"`
	Synced    bool   `json:"synced"`
	Error     string `json:"error,omitempty"`
}

// SyncStatus aggregates the integration outcomes of one checkout.
type SyncStatus struct {
	Shipping   StepStatus `json:"shipping"`
	Accounting StepStatus `json:"accounting"`
}

type carrierClient interface {
	CreateAdhocOrder(ctx context.Context, req shiprocket.AdhocOrderRequest) (*shiprocket.AdhocOrderResponse, error)
}

type refAppender interface {
	AppendIntegrationRefs(ctx context.Context, code string, refs models.IntegrationRefs) error
}

// ShippingSync pushes a placed order to the shipping aggregator and records
// the identifiers it assigns.
type ShippingSync struct {
	carrier  carrierClient
	orders   refAppender
	defaults config.Defaults
	now      func() time.Time
	logger   *slog.Logger
}

func NewShippingSync(carrier carrierClient, orders refAppender, defaults config.Defaults, logger *slog.Logger) *ShippingSync {
	return &ShippingSync{
		carrier:  carrier,
		orders:   orders,
		defaults: defaults,
		now:      time.Now,
		logger:   logger,
	}
}

// Sync creates the carrier-side order. Failures are returned to the caller
// for reporting but must never abort the order that triggered the sync.
func (s *ShippingSync) Sync(ctx context.Context, order *models.Order) error {
	logger := logging.FromContext(ctx, s.logger)

	payload := shiprocket.BuildAdhocOrder(order, s.defaults, s.now())
	resp, err := s.carrier.CreateAdhocOrder(ctx, payload)
	if err != nil {
		logger.Error("carrier order creation failed", "order", order.Code, "error", err)
		return err
	}

	refs := models.IntegrationRefs{
		CarrierOrderID:    resp.OrderID.String(),
		CarrierShipmentID: resp.ShipmentID.String(),
		TrackingNumber:    resp.TrackingNumber,
		CourierName:       resp.CourierName,
	}
	if err := s.orders.AppendIntegrationRefs(ctx, order.Code, refs); err != nil {
		logger.Error("failed to record carrier references", "order", order.Code, "error", err)
		return err
	}
	order.Refs.CarrierOrderID = refs.CarrierOrderID
	order.Refs.CarrierShipmentID = refs.CarrierShipmentID
	order.Refs.TrackingNumber = refs.TrackingNumber
	order.Refs.CourierName = refs.CourierName

	logger.Info("order synced to carrier",
		"order", order.Code,
		"carrierOrderId", refs.CarrierOrderID,
		"carrierShipmentId", refs.CarrierShipmentID,
	)
	return nil
}
