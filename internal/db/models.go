package db

import "github.com/RUSHi-VAiRALE/ecombackend/internal/models"

type Order = models.Order
type OrderStatus = models.OrderStatus
type PaymentStatus = models.PaymentStatus
type Cart = models.Cart
type Product = models.Product
type Package = models.Package
type Shipment = models.Shipment
type GatewayOrder = models.GatewayOrder
type AdminUser = models.AdminUser
type CredentialToken = models.CredentialToken

const (
	StatusPending   = models.StatusPending
	StatusConfirmed = models.StatusConfirmed

	PaymentPending = models.PaymentPending
	PaymentPaid    = models.PaymentPaid
	PaymentFailed  = models.PaymentFailed
)
