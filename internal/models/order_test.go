package models

import (
	"strings"
	"testing"
	"time"
)

func validOrder() *Order {
	return &Order{
		Code:          "ORD1700000000000",
		PaymentMethod: PaymentMethodCOD,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
		Items: []LineItem{
			{ProductID: "prod-1", Name: "Lipstick", UnitPrice: 49900, Quantity: 2},
		},
		Subtotal:        99800,
		ShippingCharge:  5000,
		Discount:        1000,
		Total:           103800,
		ShippingAddress: &Address{Line1: "12 MG Road", City: "Pune", PinCode: "411001"},
		UserID:          "user-1",
	}
}

func TestOrderValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(o *Order)
		wantErr bool
	}{
		{
			name:    "valid cod order",
			mutate:  func(o *Order) {},
			wantErr: false,
		},
		{
			name:    "valid online order",
			mutate:  func(o *Order) { o.PaymentMethod = PaymentMethodOnline },
			wantErr: false,
		},
		{
			name:    "no line items",
			mutate:  func(o *Order) { o.Items = nil },
			wantErr: true,
		},
		{
			name:    "zero quantity",
			mutate:  func(o *Order) { o.Items[0].Quantity = 0 },
			wantErr: true,
		},
		{
			name:    "negative unit price",
			mutate:  func(o *Order) { o.Items[0].UnitPrice = -1 },
			wantErr: true,
		},
		{
			name:    "total does not add up",
			mutate:  func(o *Order) { o.Total = 99800 },
			wantErr: true,
		},
		{
			name: "negative discount",
			mutate: func(o *Order) {
				o.Discount = -500
				o.Total = o.Subtotal + o.ShippingCharge + 500
			},
			wantErr: true,
		},
		{
			name:    "missing shipping address",
			mutate:  func(o *Order) { o.ShippingAddress = nil },
			wantErr: true,
		},
		{
			name:    "missing owning user",
			mutate:  func(o *Order) { o.UserID = "" },
			wantErr: true,
		},
		{
			name:    "unknown payment method",
			mutate:  func(o *Order) { o.PaymentMethod = "wire" },
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			order := validOrder()
			tc.mutate(order)

			err := order.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewOrderCode(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1700000000123)
	code := NewOrderCode(now)

	if code != "ORD1700000000123" {
		t.Fatalf("NewOrderCode() = %q, want %q", code, "ORD1700000000123")
	}
	if !strings.HasPrefix(code, "ORD") {
		t.Fatalf("NewOrderCode() = %q, want ORD prefix", code)
	}

	later := NewOrderCode(now.Add(time.Second))
	if later <= code {
		t.Fatalf("NewOrderCode() not monotonic: %q then %q", code, later)
	}
}
