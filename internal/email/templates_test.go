package email

import (
	"strings"
	"testing"
	"time"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
)

func TestRenderOrderConfirmation(t *testing.T) {
	t.Parallel()

	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	order := &models.Order{
		Code:          "ORD1700000000000",
		PaymentMethod: models.PaymentMethodOnline,
		Items: []models.LineItem{
			{Name: "Lipstick", ShadeName: "Red", UnitPrice: 49900, Quantity: 2},
		},
		Subtotal:       99800,
		ShippingCharge: 5000,
		Total:          104800,
		ShippingAddress: &models.Address{
			Name:    "Asha",
			Line1:   "7 Park Lane",
			City:    "Delhi",
			PinCode: "110001",
			Email:   "asha@example.com",
		},
		UserID:    "user-1",
		CreatedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	}

	message, err := renderer.RenderOrderConfirmation(order)
	if err != nil {
		t.Fatalf("RenderOrderConfirmation() error = %v", err)
	}

	if message.To != "asha@example.com" {
		t.Fatalf("To = %q, want shipping address email", message.To)
	}
	if message.Subject != "Order Confirmed - ORD1700000000000" {
		t.Fatalf("Subject = %q, want order code included", message.Subject)
	}

	for _, want := range []string{"Hi Asha", "ORD1700000000000", "March 15, 2024", "Lipstick (Red)", "₹499.00", "₹1048.00", "7 Park Lane", "110001"} {
		if !strings.Contains(message.Text, want) {
			t.Fatalf("text body missing %q:\n%s", want, message.Text)
		}
	}
	if !strings.Contains(message.HTML, "<strong>ORD1700000000000</strong>") {
		t.Fatalf("HTML body missing highlighted order code")
	}
}
