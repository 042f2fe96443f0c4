package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// Address is a postal address as supplied by the storefront. Any field may be
// empty; integration payload builders fill gaps from configured defaults.
type Address struct {
	Name    string `json:"name,omitempty"`
	Line1   string `json:"address"`
	Line2   string `json:"address2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	PinCode string `json:"pinCode"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// LineItem is a priced snapshot of one product variant at order time. It is
// immutable once embedded in an order; later catalog price changes do not
// affect it.
type LineItem struct {
	ProductID   string `json:"productId"`
	Name        string `json:"productName"`
	UnitPrice   int64  `json:"unitPrice"` // minor currency units
	Quantity    int    `json:"quantity"`
	ShadeID     string `json:"shadeId,omitempty"`
	ShadeName   string `json:"shade,omitempty"`
	SKU         string `json:"productSku,omitempty"`
	WeightGrams int    `json:"weightGrams,omitempty"`
	Discount    int64  `json:"discount,omitempty"`
	Tax         int64  `json:"tax,omitempty"`
	HSN         string `json:"hsn,omitempty"`
}

// IntegrationRefs holds identifiers issued by external systems. Fields are
// sparse: each sync step appends its own subset and never clears one that is
// already set.
type IntegrationRefs struct {
	CarrierOrderID      string `json:"shipRocketOrderId,omitempty"`
	CarrierShipmentID   string `json:"shipRocketShipmentId,omitempty"`
	TrackingNumber      string `json:"trackingNumber,omitempty"`
	CourierName         string `json:"courierName,omitempty"`
	SalesOrderID        string `json:"zohoSalesOrderId,omitempty"`
	InvoiceID           string `json:"zohoInvoiceId,omitempty"`
	AccountingPaymentID string `json:"zohoPaymentId,omitempty"`
	GatewayOrderID      string `json:"razorpayOrderId,omitempty"`
	GatewayPaymentID    string `json:"razorpayPaymentId,omitempty"`
	GatewaySignature    string `json:"razorpaySignature,omitempty"`
}

type Order struct {
	ID              uuid.UUID       `json:"id"`
	Code            string          `json:"orderId"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	Status          OrderStatus     `json:"status"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	Items           []LineItem      `json:"items"`
	Subtotal        int64           `json:"subtotal"`
	ShippingCharge  int64           `json:"shippingCharges"`
	Discount        int64           `json:"discountAmount"`
	Total           int64           `json:"totalAmount"`
	ShippingAddress *Address        `json:"shippingAddress"`
	BillingAddress  *Address        `json:"billingAddress,omitempty"`
	CustomerID      string          `json:"customerId,omitempty"` // accounting-system contact id
	UserID          string          `json:"userId"`
	UserEmail       string          `json:"userEmail,omitempty"`
	Refs            IntegrationRefs `json:"integrationRefs"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Validate checks the draft-order invariants enforced before the ledger
// accepts a write.
func (o *Order) Validate() error {
	if len(o.Items) == 0 {
		return fmt.Errorf("order must contain at least one line item")
	}
	for i, item := range o.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("line item %d: quantity must be positive", i)
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("line item %d: unit price must not be negative", i)
		}
	}
	if o.Subtotal < 0 || o.ShippingCharge < 0 || o.Discount < 0 {
		return fmt.Errorf("order amounts must not be negative")
	}
	if got := o.Subtotal + o.ShippingCharge - o.Discount; got != o.Total {
		return fmt.Errorf("total %d does not match subtotal %d + shipping %d - discount %d", o.Total, o.Subtotal, o.ShippingCharge, o.Discount)
	}
	if o.Total < 0 {
		return fmt.Errorf("order total must not be negative")
	}
	if o.ShippingAddress == nil {
		return fmt.Errorf("shipping address is required")
	}
	if o.UserID == "" {
		return fmt.Errorf("owning user is required")
	}
	switch o.PaymentMethod {
	case PaymentMethodCOD, PaymentMethodOnline:
	default:
		return fmt.Errorf("unknown payment method %q", o.PaymentMethod)
	}
	return nil
}

// NewOrderCode returns the caller-visible order code. Codes are monotonic by
// creation time within a process.
func NewOrderCode(now time.Time) string {
	return fmt.Sprintf("ORD%d", now.UnixMilli())
}
