package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
)

type ShipmentStore struct {
	pool *pgxpool.Pool
}

func NewShipmentStore(pool *pgxpool.Pool) *ShipmentStore {
	return &ShipmentStore{pool: pool}
}

const shipmentColumns = `id, order_code, order_date, tracking_number, courier_name, delivery_method,
	expected_delivery_date, status, customer_name, customer_phone, customer_email,
	shipping_address, billing_address, items, dimensions, weight,
	subtotal, shipping_charge, discount, payment_method, created_by, created_at, updated_by`

func (s *ShipmentStore) Create(ctx context.Context, shipment *Shipment) error {
	if shipment.ID == uuid.Nil {
		shipment.ID = uuid.New()
	}
	if shipment.CreatedAt.IsZero() {
		shipment.CreatedAt = time.Now().UTC()
	}
	if shipment.Status == "" {
		shipment.Status = models.ShipmentCreated
	}

	shippingJSON, err := json.Marshal(shipment.ShippingAddress)
	if err != nil {
		return fmt.Errorf("failed to encode shipment shipping address: %w", err)
	}
	var billingJSON []byte
	if shipment.BillingAddress != nil {
		billingJSON, err = json.Marshal(shipment.BillingAddress)
		if err != nil {
			return fmt.Errorf("failed to encode shipment billing address: %w", err)
		}
	}
	itemsJSON, err := json.Marshal(shipment.Items)
	if err != nil {
		return fmt.Errorf("failed to encode shipment items: %w", err)
	}
	dimensionsJSON, err := json.Marshal(shipment.Dimensions)
	if err != nil {
		return fmt.Errorf("failed to encode shipment dimensions: %w", err)
	}
	weightJSON, err := json.Marshal(shipment.Weight)
	if err != nil {
		return fmt.Errorf("failed to encode shipment weight: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO shipments (
			id, order_code, order_date, tracking_number, courier_name, delivery_method,
			expected_delivery_date, status, customer_name, customer_phone, customer_email,
			shipping_address, billing_address, items, dimensions, weight,
			subtotal, shipping_charge, discount, payment_method, created_by, created_at, updated_by
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23
		)`,
		shipment.ID, shipment.OrderCode, shipment.OrderDate, shipment.TrackingNumber,
		shipment.CourierName, shipment.DeliveryMethod,
		shipment.ExpectedDeliveryDate, string(shipment.Status),
		shipment.CustomerName, shipment.CustomerPhone, shipment.CustomerEmail,
		shippingJSON, billingJSON, itemsJSON, dimensionsJSON, weightJSON,
		shipment.Subtotal, shipment.ShippingCharge, shipment.Discount,
		shipment.PaymentMethod, shipment.CreatedBy, shipment.CreatedAt, shipment.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert shipment: %w", err)
	}
	return nil
}

func (s *ShipmentStore) Get(ctx context.Context, id uuid.UUID) (*Shipment, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+shipmentColumns+` FROM shipments WHERE id = $1`, id)
	return scanShipment(row)
}

// List returns shipments newest first, optionally narrowed to one order.
func (s *ShipmentStore) List(ctx context.Context, orderCode string) ([]*Shipment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+shipmentColumns+` FROM shipments WHERE ($1 = '' OR order_code = $1) ORDER BY created_at DESC`,
		orderCode,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}
	defer rows.Close()

	var shipments []*Shipment
	for rows.Next() {
		shipment, err := scanShipment(rows)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, shipment)
	}
	return shipments, rows.Err()
}

// UpdateTracking records the carrier tracking assignment for a shipment.
func (s *ShipmentStore) UpdateTracking(ctx context.Context, id uuid.UUID, trackingNumber, courierName, updatedBy string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE shipments SET tracking_number = $2, courier_name = $3, updated_by = $4 WHERE id = $1`,
		id, trackingNumber, courierName, updatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update shipment tracking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ShipmentStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ShipmentStatus, updatedBy string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE shipments SET status = $2, updated_by = $3 WHERE id = $1`,
		id, string(status), updatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update shipment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanShipment(row pgx.Row) (*Shipment, error) {
	var (
		shipment       Shipment
		status         string
		shippingJSON   []byte
		billingJSON    []byte
		itemsJSON      []byte
		dimensionsJSON []byte
		weightJSON     []byte
	)
	err := row.Scan(
		&shipment.ID, &shipment.OrderCode, &shipment.OrderDate, &shipment.TrackingNumber,
		&shipment.CourierName, &shipment.DeliveryMethod,
		&shipment.ExpectedDeliveryDate, &status,
		&shipment.CustomerName, &shipment.CustomerPhone, &shipment.CustomerEmail,
		&shippingJSON, &billingJSON, &itemsJSON, &dimensionsJSON, &weightJSON,
		&shipment.Subtotal, &shipment.ShippingCharge, &shipment.Discount,
		&shipment.PaymentMethod, &shipment.CreatedBy, &shipment.CreatedAt, &shipment.UpdatedBy,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan shipment: %w", err)
	}
	shipment.Status = models.ShipmentStatus(status)

	if len(shippingJSON) > 0 {
		shipment.ShippingAddress = &models.Address{}
		if err := json.Unmarshal(shippingJSON, shipment.ShippingAddress); err != nil {
			return nil, fmt.Errorf("failed to decode shipment shipping address: %w", err)
		}
	}
	if len(billingJSON) > 0 {
		shipment.BillingAddress = &models.Address{}
		if err := json.Unmarshal(billingJSON, shipment.BillingAddress); err != nil {
			return nil, fmt.Errorf("failed to decode shipment billing address: %w", err)
		}
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &shipment.Items); err != nil {
			return nil, fmt.Errorf("failed to decode shipment items: %w", err)
		}
	}
	if len(dimensionsJSON) > 0 {
		if err := json.Unmarshal(dimensionsJSON, &shipment.Dimensions); err != nil {
			return nil, fmt.Errorf("failed to decode shipment dimensions: %w", err)
		}
	}
	if len(weightJSON) > 0 {
		if err := json.Unmarshal(weightJSON, &shipment.Weight); err != nil {
			return nil, fmt.Errorf("failed to decode shipment weight: %w", err)
		}
	}
	return &shipment, nil
}
