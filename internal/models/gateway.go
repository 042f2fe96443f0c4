package models

import "time"

// GatewayOrder records a payment intent created with the payment gateway at
// checkout-intent time. Confirmations are cross-checked against it before an
// order may be marked paid.
type GatewayOrder struct {
	ID        string    `json:"orderId"` // gateway-assigned id
	Amount    int64     `json:"amount"`  // minor currency units
	Currency  string    `json:"currency"`
	Receipt   string    `json:"receipt"`
	Status    string    `json:"status"`
	UserID    string    `json:"userId"`
	UserEmail string    `json:"userEmail"`
	PaymentID string    `json:"paymentId,omitempty"`
	Signature string    `json:"signature,omitempty"`
	OrderCode string    `json:"orderDocumentId,omitempty"` // local order linked after verification
	CreatedAt time.Time `json:"createdAt"`
}

// AdminUser is a back-office account. The admin claim on the identity token
// is authoritative for authorization; this record exists for listing and
// audit.
type AdminUser struct {
	UID         string            `json:"uid"`
	Email       string            `json:"email"`
	DisplayName string            `json:"displayName"`
	PhoneNumber string            `json:"phoneNumber,omitempty"`
	SuperAdmin  bool              `json:"superAdmin"`
	Permissions map[string]bool   `json:"permissions,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// Product is a catalog entry. Cart snapshots capture its price at snapshot
// time.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"` // minor currency units
	SKU         string    `json:"sku,omitempty"`
	Images      []string  `json:"images,omitempty"`
	Shades      []Shade   `json:"shades,omitempty"`
	WeightGrams int       `json:"weightGrams,omitempty"`
	HSN         string    `json:"hsn,omitempty"`
	GST         int64     `json:"gst,omitempty"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Shade struct {
	ID   string `json:"shadeId"`
	Name string `json:"name"`
	Hex  string `json:"hex,omitempty"`
}
