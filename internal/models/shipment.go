package models

import (
	"time"

	"github.com/google/uuid"
)

type ShipmentStatus string

const (
	ShipmentCreated   ShipmentStatus = "created"
	ShipmentPickedUp  ShipmentStatus = "picked_up"
	ShipmentInTransit ShipmentStatus = "in_transit"
	ShipmentDelivered ShipmentStatus = "delivered"
)

type Dimensions struct {
	Length int    `json:"length"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Unit   string `json:"unit"`
}

type Weight struct {
	Value int    `json:"weight"`
	Unit  string `json:"unit"`
}

// Package mirrors carrier-side packaging for an order. Packages are created
// by admin action after the order exists and live independently of it, tied
// back by order code.
type Package struct {
	ID            uuid.UUID      `json:"id"`
	OrderCode     string         `json:"orderId"`
	Name          string         `json:"packageName"`
	PackageNumber string         `json:"packageNumber"`
	Dimensions    Dimensions     `json:"dimensions"`
	Weight        Weight         `json:"weight"`
	Items         []LineItem     `json:"items"`
	Status        ShipmentStatus `json:"status"`
	CreatedBy     string         `json:"createdBy"`
	CreatedAt     time.Time      `json:"createdAt"`
}

type Shipment struct {
	ID                   uuid.UUID      `json:"id"`
	OrderCode            string         `json:"orderId"`
	OrderDate            string         `json:"orderDate"`
	TrackingNumber       string         `json:"trackingNumber,omitempty"`
	CourierName          string         `json:"courierName,omitempty"`
	DeliveryMethod       string         `json:"deliveryMethod"`
	ExpectedDeliveryDate string         `json:"expectedDeliveryDate,omitempty"`
	Status               ShipmentStatus `json:"status"`
	CustomerName         string         `json:"customerName,omitempty"`
	CustomerPhone        string         `json:"customerPhone,omitempty"`
	CustomerEmail        string         `json:"customerEmail,omitempty"`
	ShippingAddress      *Address       `json:"shippingAddress"`
	BillingAddress       *Address       `json:"billingAddress,omitempty"`
	Items                []LineItem     `json:"orderItems"`
	Dimensions           Dimensions     `json:"dimensions"`
	Weight               Weight         `json:"weight"`
	Subtotal             int64          `json:"subTotal"`
	ShippingCharge       int64          `json:"shippingCharges"`
	Discount             int64          `json:"totalDiscount"`
	PaymentMethod        string         `json:"paymentMethod"`
	CreatedBy            string         `json:"createdBy"`
	CreatedAt            time.Time      `json:"createdAt"`
	UpdatedBy            string         `json:"updatedBy,omitempty"`
}
