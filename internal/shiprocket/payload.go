package shiprocket

import (
	"fmt"
	"time"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/config"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
)

// AdhocOrderRequest is the carrier's create-adhoc-order payload.
type AdhocOrderRequest struct {
	OrderID        string `json:"order_id"`
	OrderDate      string `json:"order_date"`
	PickupLocation string `json:"pickup_location"`

	BillingCustomerName string `json:"billing_customer_name"`
	BillingLastName     string `json:"billing_last_name"`
	BillingAddress      string `json:"billing_address"`
	BillingAddress2     string `json:"billing_address_2"`
	BillingCity         string `json:"billing_city"`
	BillingPincode      string `json:"billing_pincode"`
	BillingState        string `json:"billing_state"`
	BillingCountry      string `json:"billing_country"`
	BillingPhone        string `json:"billing_phone"`
	BillingEmail        string `json:"billing_email"`

	ShippingCustomerName string `json:"shipping_customer_name"`
	ShippingLastName     string `json:"shipping_last_name"`
	ShippingAddress      string `json:"shipping_address"`
	ShippingAddress2     string `json:"shipping_address_2"`
	ShippingCity         string `json:"shipping_city"`
	ShippingPincode      string `json:"shipping_pincode"`
	ShippingState        string `json:"shipping_state"`
	ShippingCountry      string `json:"shipping_country"`
	ShippingPhone        string `json:"shipping_phone"`
	ShippingEmail        string `json:"shipping_email"`

	OrderItems []AdhocOrderItem `json:"order_items"`

	PaymentMethod      string  `json:"payment_method"`
	ShippingIsBilling  bool    `json:"shipping_is_billing"`
	ShippingCharges    int64   `json:"shipping_charges"`
	GiftwrapCharges    int64   `json:"giftwrap_charges"`
	TransactionCharges int64   `json:"transaction_charges"`
	TotalDiscount      int64   `json:"total_discount"`
	SubTotal           int64   `json:"sub_total"`
	Length             int     `json:"length"`
	Breadth            int     `json:"breadth"`
	Height             int     `json:"height"`
	Weight             float64 `json:"weight"`
}

type AdhocOrderItem struct {
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	Units        int    `json:"units"`
	SellingPrice int64  `json:"selling_price"`
	Discount     int64  `json:"discount"`
	Tax          int64  `json:"tax"`
	HSN          string `json:"hsn"`
}

// NormalizedAddress is an order address with every carrier-required field
// populated, falling back to configured defaults.
type NormalizedAddress struct {
	Name    string
	Line1   string
	Line2   string
	City    string
	State   string
	Country string
	PinCode string
	Phone   string
	Email   string
}

// ApplyAddressDefaults is the single place defaulting policy for carrier
// addresses lives. Every blank field is replaced so the carrier's
// required-field validation passes.
func ApplyAddressDefaults(addr *models.Address, defaults config.ShippingDefaults) NormalizedAddress {
	normalized := NormalizedAddress{
		Name:    defaults.CustomerName,
		Line1:   defaults.AddressLine,
		City:    defaults.City,
		State:   defaults.State,
		Country: defaults.Country,
		PinCode: defaults.PinCode,
		Phone:   defaults.Phone,
		Email:   defaults.Email,
	}
	if addr == nil {
		return normalized
	}
	if addr.Name != "" {
		normalized.Name = addr.Name
	}
	if addr.Line1 != "" {
		normalized.Line1 = addr.Line1
	}
	normalized.Line2 = addr.Line2
	if addr.City != "" {
		normalized.City = addr.City
	}
	if addr.State != "" {
		normalized.State = addr.State
	}
	if addr.Country != "" {
		normalized.Country = addr.Country
	}
	if addr.PinCode != "" {
		normalized.PinCode = addr.PinCode
	}
	if addr.Phone != "" {
		normalized.Phone = addr.Phone
	}
	if addr.Email != "" {
		normalized.Email = addr.Email
	}
	return normalized
}

// BuildAdhocOrder maps an order onto the carrier payload, applying the
// configured fallback defaults for addresses, SKUs, dimensions and weight.
func BuildAdhocOrder(order *models.Order, defaults config.Defaults, now time.Time) AdhocOrderRequest {
	shipping := ApplyAddressDefaults(order.ShippingAddress, defaults.Shipping)
	billing := shipping
	if order.BillingAddress != nil {
		billing = ApplyAddressDefaults(order.BillingAddress, defaults.Shipping)
	}

	items := make([]AdhocOrderItem, len(order.Items))
	var totalWeightKG float64
	for i, item := range order.Items {
		sku := item.SKU
		if sku == "" {
			sku = item.ProductID
		}
		if sku == "" {
			sku = fmt.Sprintf("SKU-%s-%d", order.Code, i)
		}
		items[i] = AdhocOrderItem{
			Name:         item.Name,
			SKU:          sku,
			Units:        item.Quantity,
			SellingPrice: item.UnitPrice,
			Discount:     item.Discount,
			Tax:          item.Tax,
			HSN:          item.HSN,
		}
		if item.WeightGrams > 0 {
			totalWeightKG += float64(item.WeightGrams) / 1000 * float64(item.Quantity)
		}
	}
	if totalWeightKG == 0 {
		totalWeightKG = defaults.Package.WeightKG
	}

	paymentMethod := "Prepaid"
	if order.PaymentMethod == models.PaymentMethodCOD {
		paymentMethod = "COD"
	}

	return AdhocOrderRequest{
		OrderID:        order.Code,
		OrderDate:      now.Format("2006-01-02"),
		PickupLocation: defaults.Shipping.PickupLocation,

		BillingCustomerName: billing.Name,
		BillingAddress:      billing.Line1,
		BillingAddress2:     billing.Line2,
		BillingCity:         billing.City,
		BillingPincode:      billing.PinCode,
		BillingState:        billing.State,
		BillingCountry:      billing.Country,
		BillingPhone:        billing.Phone,
		BillingEmail:        billing.Email,

		ShippingCustomerName: shipping.Name,
		ShippingAddress:      shipping.Line1,
		ShippingAddress2:     shipping.Line2,
		ShippingCity:         shipping.City,
		ShippingPincode:      shipping.PinCode,
		ShippingState:        shipping.State,
		ShippingCountry:      shipping.Country,
		ShippingPhone:        shipping.Phone,
		ShippingEmail:        shipping.Email,

		OrderItems: items,

		PaymentMethod:     paymentMethod,
		ShippingIsBilling: order.BillingAddress == nil,
		ShippingCharges:   order.ShippingCharge,
		TotalDiscount:     order.Discount,
		SubTotal:          order.Subtotal,
		Length:            defaults.Package.LengthCM,
		Breadth:           defaults.Package.BreadthCM,
		Height:            defaults.Package.HeightCM,
		Weight:            totalWeightKG,
	}
}
