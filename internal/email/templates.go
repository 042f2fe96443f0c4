// Package email provides email templates.
package email

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
)

// OrderInfo carries the fields the order templates render.
type OrderInfo struct {
	OrderNumber   string
	CustomerName  string
	CustomerEmail string
	OrderDate     string
	PaymentMethod string
	Items         []OrderItem
	Subtotal      string
	Shipping      string
	Discount      string
	Total         string
	AddressLines  []string
}

// OrderItem represents a single line in an order email.
type OrderItem struct {
	Name       string
	Shade      string
	Quantity   int
	UnitPrice  string
	TotalPrice string
}

type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl := template.New("email")
	if _, err := tmpl.New("order_confirmation_text").Parse(orderConfirmationText); err != nil {
		return nil, fmt.Errorf("failed to parse text template: %w", err)
	}
	if _, err := tmpl.New("order_confirmation_html").Parse(orderConfirmationHTML); err != nil {
		return nil, fmt.Errorf("failed to parse HTML template: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// RenderOrderConfirmation builds the confirmation email for a placed order.
func (r *Renderer) RenderOrderConfirmation(order *models.Order) (*Email, error) {
	info := buildOrderInfo(order)

	var textBuf, htmlBuf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&textBuf, "order_confirmation_text", info); err != nil {
		return nil, fmt.Errorf("failed to render text template: %w", err)
	}
	if err := r.templates.ExecuteTemplate(&htmlBuf, "order_confirmation_html", info); err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}

	return &Email{
		To:      order.ShippingAddress.Email,
		Subject: fmt.Sprintf("Order Confirmed - %s", info.OrderNumber),
		Text:    textBuf.String(),
		HTML:    htmlBuf.String(),
	}, nil
}

func buildOrderInfo(order *models.Order) *OrderInfo {
	info := &OrderInfo{
		OrderNumber:   order.Code,
		CustomerName:  order.ShippingAddress.Name,
		CustomerEmail: order.ShippingAddress.Email,
		OrderDate:     order.CreatedAt.Format("January 2, 2006"),
		PaymentMethod: string(order.PaymentMethod),
		Subtotal:      formatAmount(order.Subtotal),
		Shipping:      formatAmount(order.ShippingCharge),
		Discount:      formatAmount(order.Discount),
		Total:         formatAmount(order.Total),
	}
	if info.OrderDate == "January 1, 0001" {
		info.OrderDate = time.Now().Format("January 2, 2006")
	}
	for _, item := range order.Items {
		info.Items = append(info.Items, OrderItem{
			Name:       item.Name,
			Shade:      item.ShadeName,
			Quantity:   item.Quantity,
			UnitPrice:  formatAmount(item.UnitPrice),
			TotalPrice: formatAmount(item.UnitPrice * int64(item.Quantity)),
		})
	}
	addr := order.ShippingAddress
	for _, line := range []string{addr.Line1, addr.Line2, addr.City, addr.State, addr.Country, addr.PinCode} {
		if line != "" {
			info.AddressLines = append(info.AddressLines, line)
		}
	}
	return info
}

func formatAmount(minor int64) string {
	return fmt.Sprintf("₹%.2f", float64(minor)/100)
}

const orderConfirmationText = `Hi {{.CustomerName}},

Thank you for your order! Your order {{.OrderNumber}} placed on {{.OrderDate}} has been confirmed.

Items:
{{range .Items}}  - {{.Name}}{{if .Shade}} ({{.Shade}}){{end}} x{{.Quantity}} @ {{.UnitPrice}} = {{.TotalPrice}}
{{end}}
Subtotal: {{.Subtotal}}
Shipping: {{.Shipping}}
Discount: {{.Discount}}
Total:    {{.Total}}

Payment method: {{.PaymentMethod}}

Shipping to:
{{range .AddressLines}}  {{.}}
{{end}}
We will email you again once your order ships.
`

const orderConfirmationHTML = `<html>
<body style="font-family: sans-serif; color: #333;">
  <h2>Order Confirmed</h2>
  <p>Hi {{.CustomerName}},</p>
  <p>Thank you for your order! Your order <strong>{{.OrderNumber}}</strong> placed on {{.OrderDate}} has been confirmed.</p>
  <table cellpadding="6" cellspacing="0" border="1" style="border-collapse: collapse;">
    <tr><th>Item</th><th>Qty</th><th>Price</th><th>Total</th></tr>
    {{range .Items}}<tr><td>{{.Name}}{{if .Shade}} ({{.Shade}}){{end}}</td><td>{{.Quantity}}</td><td>{{.UnitPrice}}</td><td>{{.TotalPrice}}</td></tr>
    {{end}}
  </table>
  <p>
    Subtotal: {{.Subtotal}}<br>
    Shipping: {{.Shipping}}<br>
    Discount: {{.Discount}}<br>
    <strong>Total: {{.Total}}</strong>
  </p>
  <p>Payment method: {{.PaymentMethod}}</p>
  <p>
    Shipping to:<br>
    {{range .AddressLines}}{{.}}<br>{{end}}
  </p>
  <p>We will email you again once your order ships.</p>
</body>
</html>
`
