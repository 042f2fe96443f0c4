package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/db"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/logging"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
)

// Carrier-side packaging defaults applied when the admin form leaves a
// dimension or weight blank.
const (
	defaultDimensionCM = 10
	defaultWeightGrams = 500
	dimensionUnit      = "cm"
	weightUnit         = "g"
)

type packageStore interface {
	Create(ctx context.Context, pkg *models.Package) error
	Get(ctx context.Context, id uuid.UUID) (*models.Package, error)
	List(ctx context.Context, orderCode string) ([]*models.Package, error)
	Update(ctx context.Context, pkg *models.Package) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type shipmentStore interface {
	Create(ctx context.Context, shipment *models.Shipment) error
	Get(ctx context.Context, id uuid.UUID) (*models.Shipment, error)
	List(ctx context.Context, orderCode string) ([]*models.Shipment, error)
	UpdateTracking(ctx context.Context, id uuid.UUID, trackingNumber, courierName, updatedBy string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ShipmentStatus, updatedBy string) error
}

type orderLookup interface {
	GetByCode(ctx context.Context, code string) (*models.Order, error)
}

// FulfillmentService manages the back-office packaging records built after an
// order exists. Every record is tied to an order by code.
type FulfillmentService struct {
	packages  packageStore
	shipments shipmentStore
	orders    orderLookup
	logger    *slog.Logger
}

func NewFulfillmentService(packages *db.PackageStore, shipments *db.ShipmentStore, orders *db.OrderStore, logger *slog.Logger) *FulfillmentService {
	return &FulfillmentService{packages: packages, shipments: shipments, orders: orders, logger: logger}
}

type CreatePackageInput struct {
	OrderCode     string            `json:"orderId"`
	Name          string            `json:"packageName"`
	PackageNumber string            `json:"packageNumber"`
	Dimensions    models.Dimensions `json:"dimensions"`
	Weight        models.Weight     `json:"weight"`
	Items         []models.LineItem `json:"items"`
}

func (s *FulfillmentService) CreatePackage(ctx context.Context, createdBy string, input CreatePackageInput) (*models.Package, error) {
	logger := logging.FromContext(ctx, s.logger)

	order, err := s.requireOrder(ctx, input.OrderCode)
	if err != nil {
		return nil, err
	}

	pkg := &models.Package{
		OrderCode:     order.Code,
		Name:          input.Name,
		PackageNumber: input.PackageNumber,
		Dimensions:    normalizeDimensions(input.Dimensions),
		Weight:        normalizeWeight(input.Weight),
		Items:         input.Items,
		Status:        models.ShipmentCreated,
		CreatedBy:     createdBy,
	}
	if len(pkg.Items) == 0 {
		pkg.Items = order.Items
	}
	if err := s.packages.Create(ctx, pkg); err != nil {
		return nil, err
	}
	logger.Info("package created", "package", pkg.ID, "order", order.Code)
	return pkg, nil
}

func (s *FulfillmentService) GetPackage(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	pkg, err := s.packages.Get(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: package %s", ErrNotFound, id)
		}
		return nil, err
	}
	return pkg, nil
}

func (s *FulfillmentService) ListPackages(ctx context.Context, orderCode string) ([]*models.Package, error) {
	return s.packages.List(ctx, orderCode)
}

type UpdatePackageInput struct {
	Name          string            `json:"packageName"`
	PackageNumber string            `json:"packageNumber"`
	Dimensions    models.Dimensions `json:"dimensions"`
	Weight        models.Weight     `json:"weight"`
	Items         []models.LineItem `json:"items"`
}

// UpdatePackage replaces the editable fields of a package. The order binding
// and audit fields are immutable once created.
func (s *FulfillmentService) UpdatePackage(ctx context.Context, id uuid.UUID, input UpdatePackageInput) (*models.Package, error) {
	pkg, err := s.GetPackage(ctx, id)
	if err != nil {
		return nil, err
	}

	pkg.Name = input.Name
	pkg.PackageNumber = input.PackageNumber
	pkg.Dimensions = normalizeDimensions(input.Dimensions)
	pkg.Weight = normalizeWeight(input.Weight)
	if len(input.Items) > 0 {
		pkg.Items = input.Items
	}

	if err := s.packages.Update(ctx, pkg); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: package %s", ErrNotFound, id)
		}
		return nil, err
	}
	return pkg, nil
}

func (s *FulfillmentService) DeletePackage(ctx context.Context, id uuid.UUID) error {
	err := s.packages.Delete(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("%w: package %s", ErrNotFound, id)
	}
	return err
}

type CreateShipmentInput struct {
	OrderCode            string            `json:"orderId"`
	DeliveryMethod       string            `json:"deliveryMethod"`
	ExpectedDeliveryDate string            `json:"expectedDeliveryDate"`
	TrackingNumber       string            `json:"trackingNumber"`
	CourierName          string            `json:"courierName"`
	Dimensions           models.Dimensions `json:"dimensions"`
	Weight               models.Weight     `json:"weight"`
}

// CreateShipment snapshots the order's customer, address and totals into a
// standalone shipment record.
func (s *FulfillmentService) CreateShipment(ctx context.Context, createdBy string, input CreateShipmentInput) (*models.Shipment, error) {
	logger := logging.FromContext(ctx, s.logger)

	order, err := s.requireOrder(ctx, input.OrderCode)
	if err != nil {
		return nil, err
	}

	shipment := &models.Shipment{
		OrderCode:            order.Code,
		OrderDate:            order.CreatedAt.Format("2006-01-02"),
		TrackingNumber:       input.TrackingNumber,
		CourierName:          input.CourierName,
		DeliveryMethod:       input.DeliveryMethod,
		ExpectedDeliveryDate: input.ExpectedDeliveryDate,
		Status:               models.ShipmentCreated,
		ShippingAddress:      order.ShippingAddress,
		BillingAddress:       order.BillingAddress,
		Items:                order.Items,
		Dimensions:           normalizeDimensions(input.Dimensions),
		Weight:               normalizeWeight(input.Weight),
		Subtotal:             order.Subtotal,
		ShippingCharge:       order.ShippingCharge,
		Discount:             order.Discount,
		PaymentMethod:        string(order.PaymentMethod),
		CreatedBy:            createdBy,
	}
	if order.ShippingAddress != nil {
		shipment.CustomerName = order.ShippingAddress.Name
		shipment.CustomerPhone = order.ShippingAddress.Phone
		shipment.CustomerEmail = order.ShippingAddress.Email
	}
	if err := s.shipments.Create(ctx, shipment); err != nil {
		return nil, err
	}
	logger.Info("shipment created", "shipment", shipment.ID, "order", order.Code)
	return shipment, nil
}

func (s *FulfillmentService) GetShipment(ctx context.Context, id uuid.UUID) (*models.Shipment, error) {
	shipment, err := s.shipments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: shipment %s", ErrNotFound, id)
		}
		return nil, err
	}
	return shipment, nil
}

func (s *FulfillmentService) ListShipments(ctx context.Context, orderCode string) ([]*models.Shipment, error) {
	return s.shipments.List(ctx, orderCode)
}

func (s *FulfillmentService) AssignTracking(ctx context.Context, id uuid.UUID, trackingNumber, courierName, updatedBy string) error {
	if trackingNumber == "" {
		return fmt.Errorf("%w: tracking number is required", ErrInvalidInput)
	}
	err := s.shipments.UpdateTracking(ctx, id, trackingNumber, courierName, updatedBy)
	if errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("%w: shipment %s", ErrNotFound, id)
	}
	return err
}

func (s *FulfillmentService) UpdateShipmentStatus(ctx context.Context, id uuid.UUID, status models.ShipmentStatus, updatedBy string) error {
	switch status {
	case models.ShipmentCreated, models.ShipmentPickedUp, models.ShipmentInTransit, models.ShipmentDelivered:
	default:
		return fmt.Errorf("%w: unknown shipment status %q", ErrInvalidInput, status)
	}
	err := s.shipments.UpdateStatus(ctx, id, status, updatedBy)
	if errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("%w: shipment %s", ErrNotFound, id)
	}
	return err
}

func (s *FulfillmentService) requireOrder(ctx context.Context, code string) (*models.Order, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: order id is required", ErrInvalidInput)
	}
	order, err := s.orders.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, code)
		}
		return nil, err
	}
	return order, nil
}

func normalizeDimensions(d models.Dimensions) models.Dimensions {
	if d.Length <= 0 {
		d.Length = defaultDimensionCM
	}
	if d.Width <= 0 {
		d.Width = defaultDimensionCM
	}
	if d.Height <= 0 {
		d.Height = defaultDimensionCM
	}
	d.Unit = dimensionUnit
	return d
}

func normalizeWeight(w models.Weight) models.Weight {
	if w.Value <= 0 {
		w.Value = defaultWeightGrams
	}
	w.Unit = weightUnit
	return w
}
