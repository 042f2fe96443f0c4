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

type OrderStore struct {
	pool *pgxpool.Pool
}

func NewOrderStore(pool *pgxpool.Pool) *OrderStore {
	return &OrderStore{pool: pool}
}

const orderColumns = `id, code, user_id, user_email, customer_id, payment_method, status, payment_status,
	items, subtotal, shipping_charge, discount, total, shipping_address, billing_address,
	carrier_order_id, carrier_shipment_id, tracking_number, courier_name,
	salesorder_id, invoice_id, accounting_payment_id,
	gateway_order_id, gateway_payment_id, gateway_signature, created_at`

// Create validates the draft, assigns id, code and timestamp, and inserts the
// order. It is the only step of checkout whose failure aborts the request.
func (s *OrderStore) Create(ctx context.Context, order *Order) error {
	if err := order.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.Code == "" {
		order.Code = models.NewOrderCode(now)
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}
	shippingJSON, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("failed to encode shipping address: %w", err)
	}
	var billingJSON []byte
	if order.BillingAddress != nil {
		billingJSON, err = json.Marshal(order.BillingAddress)
		if err != nil {
			return fmt.Errorf("failed to encode billing address: %w", err)
		}
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO orders (
			id, code, user_id, user_email, customer_id, payment_method, status, payment_status,
			items, subtotal, shipping_charge, discount, total, shipping_address, billing_address,
			carrier_order_id, carrier_shipment_id, tracking_number, courier_name,
			salesorder_id, invoice_id, accounting_payment_id,
			gateway_order_id, gateway_payment_id, gateway_signature, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19,
			$20, $21, $22,
			$23, $24, $25, $26
		)`,
		order.ID, order.Code, order.UserID, order.UserEmail, order.CustomerID,
		string(order.PaymentMethod), string(order.Status), string(order.PaymentStatus),
		itemsJSON, order.Subtotal, order.ShippingCharge, order.Discount, order.Total,
		shippingJSON, billingJSON,
		order.Refs.CarrierOrderID, order.Refs.CarrierShipmentID, order.Refs.TrackingNumber, order.Refs.CourierName,
		order.Refs.SalesOrderID, order.Refs.InvoiceID, order.Refs.AccountingPaymentID,
		order.Refs.GatewayOrderID, order.Refs.GatewayPaymentID, order.Refs.GatewaySignature,
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// AppendIntegrationRefs merges non-empty fields of refs into the stored order.
// A field that is already set is never overwritten with empty, so each sync
// step only ever adds identifiers.
func (s *OrderStore) AppendIntegrationRefs(ctx context.Context, code string, refs models.IntegrationRefs) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE orders SET
			carrier_order_id      = COALESCE(NULLIF($2,  ''), carrier_order_id),
			carrier_shipment_id   = COALESCE(NULLIF($3,  ''), carrier_shipment_id),
			tracking_number       = COALESCE(NULLIF($4,  ''), tracking_number),
			courier_name          = COALESCE(NULLIF($5,  ''), courier_name),
			salesorder_id         = COALESCE(NULLIF($6,  ''), salesorder_id),
			invoice_id            = COALESCE(NULLIF($7,  ''), invoice_id),
			accounting_payment_id = COALESCE(NULLIF($8,  ''), accounting_payment_id),
			gateway_order_id      = COALESCE(NULLIF($9,  ''), gateway_order_id),
			gateway_payment_id    = COALESCE(NULLIF($10, ''), gateway_payment_id),
			gateway_signature     = COALESCE(NULLIF($11, ''), gateway_signature)
		WHERE code = $1`,
		code,
		refs.CarrierOrderID, refs.CarrierShipmentID, refs.TrackingNumber, refs.CourierName,
		refs.SalesOrderID, refs.InvoiceID, refs.AccountingPaymentID,
		refs.GatewayOrderID, refs.GatewayPaymentID, refs.GatewaySignature,
	)
	if err != nil {
		return fmt.Errorf("failed to update order references: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *OrderStore) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	return scanOrder(row)
}

func (s *OrderStore) GetByCode(ctx context.Context, code string) (*Order, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE code = $1`, code)
	return scanOrder(row)
}

func (s *OrderStore) GetByGatewayPaymentID(ctx context.Context, paymentID string) (*Order, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE gateway_payment_id = $1`, paymentID)
	return scanOrder(row)
}

// ListFilter narrows List. Zero values mean no constraint.
type ListFilter struct {
	UserID        string
	Status        models.OrderStatus
	PaymentStatus models.PaymentStatus
	Page          int
	PageSize      int
}

// List returns orders newest first along with the total match count.
func (s *OrderStore) List(ctx context.Context, filter ListFilter) ([]*Order, int, error) {
	where := "WHERE ($1 = '' OR user_id = $1) AND ($2 = '' OR status = $2) AND ($3 = '' OR payment_status = $3)"
	args := []any{filter.UserID, string(filter.Status), string(filter.PaymentStatus)}

	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	query := "SELECT " + orderColumns + " FROM orders " + where +
		" ORDER BY created_at DESC LIMIT $4 OFFSET $5"
	rows, err := s.pool.Query(ctx, query, append(args, pageSize, (page-1)*pageSize)...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus sets the fulfillment status of an order by code.
func (s *OrderStore) UpdateStatus(ctx context.Context, code string, status models.OrderStatus) error {
	tag, err := s.pool.Exec(ctx, `UPDATE orders SET status = $2 WHERE code = $1`, code, string(status))
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		order        Order
		method       string
		status       string
		payStatus    string
		itemsJSON    []byte
		shippingJSON []byte
		billingJSON  []byte
	)
	err := row.Scan(
		&order.ID, &order.Code, &order.UserID, &order.UserEmail, &order.CustomerID,
		&method, &status, &payStatus,
		&itemsJSON, &order.Subtotal, &order.ShippingCharge, &order.Discount, &order.Total,
		&shippingJSON, &billingJSON,
		&order.Refs.CarrierOrderID, &order.Refs.CarrierShipmentID, &order.Refs.TrackingNumber, &order.Refs.CourierName,
		&order.Refs.SalesOrderID, &order.Refs.InvoiceID, &order.Refs.AccountingPaymentID,
		&order.Refs.GatewayOrderID, &order.Refs.GatewayPaymentID, &order.Refs.GatewaySignature,
		&order.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	order.PaymentMethod = models.PaymentMethod(method)
	order.Status = models.OrderStatus(status)
	order.PaymentStatus = models.PaymentStatus(payStatus)

	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
			return nil, fmt.Errorf("failed to decode order items: %w", err)
		}
	}
	if len(shippingJSON) > 0 {
		order.ShippingAddress = &models.Address{}
		if err := json.Unmarshal(shippingJSON, order.ShippingAddress); err != nil {
			return nil, fmt.Errorf("failed to decode shipping address: %w", err)
		}
	}
	if len(billingJSON) > 0 {
		order.BillingAddress = &models.Address{}
		if err := json.Unmarshal(billingJSON, order.BillingAddress); err != nil {
			return nil, fmt.Errorf("failed to decode billing address: %w", err)
		}
	}
	return &order, nil
}
