package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/logging"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/zoho"
)

type accountingClient interface {
	CreateContact(ctx context.Context, contact zoho.Contact) (*zoho.Contact, error)
	ListContacts(ctx context.Context, page, perPage int, filters map[string]string) ([]zoho.Contact, int, error)
	CreateSalesOrder(ctx context.Context, params zoho.SalesOrderParams) (string, error)
	CreateInvoice(ctx context.Context, params zoho.InvoiceParams) (string, error)
	CreateCustomerPayment(ctx context.Context, params zoho.CustomerPaymentParams) (string, error)
}

// AccountingSync mirrors a placed order into the accounting system as a
// sales order, an invoice, and, for paid orders, a recorded payment. Each
// identifier is persisted as soon as it is issued, so a failure partway
// through keeps everything already created.
type AccountingSync struct {
	accounting accountingClient
	orders     refAppender
	now        func() time.Time
	logger     *slog.Logger
}

func NewAccountingSync(accounting accountingClient, orders refAppender, logger *slog.Logger) *AccountingSync {
	return &AccountingSync{
		accounting: accounting,
		orders:     orders,
		now:        time.Now,
		logger:     logger,
	}
}

// Sync runs the sales order, invoice, payment chain. The first failing step
// stops the chain; identifiers recorded by earlier steps are kept.
func (s *AccountingSync) Sync(ctx context.Context, order *models.Order) error {
	logger := logging.FromContext(ctx, s.logger)

	contactID, err := s.ensureContact(ctx, order)
	if err != nil {
		logger.Error("accounting contact resolution failed", "order", order.Code, "error", err)
		return err
	}
	order.CustomerID = contactID

	salesOrderID, err := s.accounting.CreateSalesOrder(ctx, s.salesOrderParams(contactID, order))
	if err != nil {
		logger.Error("accounting sales order creation failed", "order", order.Code, "error", err)
		return err
	}
	if err := s.orders.AppendIntegrationRefs(ctx, order.Code, models.IntegrationRefs{SalesOrderID: salesOrderID}); err != nil {
		logger.Error("failed to record sales order reference", "order", order.Code, "error", err)
		return err
	}
	order.Refs.SalesOrderID = salesOrderID

	invoiceID, err := s.accounting.CreateInvoice(ctx, s.invoiceParams(contactID, order))
	if err != nil {
		logger.Error("accounting invoice creation failed", "order", order.Code, "error", err)
		return err
	}
	if err := s.orders.AppendIntegrationRefs(ctx, order.Code, models.IntegrationRefs{InvoiceID: invoiceID}); err != nil {
		logger.Error("failed to record invoice reference", "order", order.Code, "error", err)
		return err
	}
	order.Refs.InvoiceID = invoiceID

	if order.PaymentStatus != models.PaymentPaid {
		logger.Info("order synced to accounting", "order", order.Code,
			"salesOrderId", salesOrderID, "invoiceId", invoiceID)
		return nil
	}

	paymentID, err := s.accounting.CreateCustomerPayment(ctx, s.paymentParams(contactID, invoiceID, order))
	if err != nil {
		logger.Error("accounting payment recording failed", "order", order.Code, "error", err)
		return err
	}
	if err := s.orders.AppendIntegrationRefs(ctx, order.Code, models.IntegrationRefs{AccountingPaymentID: paymentID}); err != nil {
		logger.Error("failed to record payment reference", "order", order.Code, "error", err)
		return err
	}
	order.Refs.AccountingPaymentID = paymentID

	logger.Info("order synced to accounting", "order", order.Code,
		"salesOrderId", salesOrderID, "invoiceId", invoiceID, "paymentId", paymentID)
	return nil
}

// ensureContact reuses an existing customer by email, creating one when no
// match exists. The resolved id is reused within the order.
func (s *AccountingSync) ensureContact(ctx context.Context, order *models.Order) (string, error) {
	if order.CustomerID != "" {
		return order.CustomerID, nil
	}

	email := order.UserEmail
	if email == "" && order.ShippingAddress != nil {
		email = order.ShippingAddress.Email
	}

	if email != "" {
		contacts, _, err := s.accounting.ListContacts(ctx, 1, 1, map[string]string{"email": email})
		if err == nil && len(contacts) > 0 {
			return contacts[0].ContactID, nil
		}
	}

	name := "Customer"
	if order.ShippingAddress != nil && order.ShippingAddress.Name != "" {
		name = order.ShippingAddress.Name
	}
	var phone string
	if order.ShippingAddress != nil {
		phone = order.ShippingAddress.Phone
	}

	created, err := s.accounting.CreateContact(ctx, zoho.Contact{
		ContactName: name,
		Email:       email,
		Phone:       phone,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create accounting contact: %w", err)
	}
	return created.ContactID, nil
}

func (s *AccountingSync) salesOrderParams(contactID string, order *models.Order) zoho.SalesOrderParams {
	return zoho.SalesOrderParams{
		CustomerID:      contactID,
		ReferenceNumber: order.Code,
		Date:            s.now().Format("2006-01-02"),
		LineItems:       accountingLineItems(order),
		ShippingCharge:  toMajor(order.ShippingCharge),
		Discount:        toMajor(order.Discount),
	}
}

// invoiceParams dates the invoice today. A settled online payment marks it
// paid up front; COD stays unpaid with payment expected on delivery day.
func (s *AccountingSync) invoiceParams(contactID string, order *models.Order) zoho.InvoiceParams {
	today := s.now().Format("2006-01-02")
	status := "unpaid"
	if order.PaymentStatus == models.PaymentPaid {
		status = "paid"
	}
	return zoho.InvoiceParams{
		CustomerID:      contactID,
		ReferenceNumber: order.Code,
		Date:            today,
		DueDate:         today,
		Status:          status,
		LineItems:       accountingLineItems(order),
		ShippingCharge:  toMajor(order.ShippingCharge),
		Discount:        toMajor(order.Discount),
	}
}

func (s *AccountingSync) paymentParams(contactID, invoiceID string, order *models.Order) zoho.CustomerPaymentParams {
	return zoho.CustomerPaymentParams{
		CustomerID:      contactID,
		PaymentMode:     "banktransfer",
		Amount:          toMajor(order.Total),
		Date:            s.now().Format("2006-01-02"),
		ReferenceNumber: order.Refs.GatewayPaymentID,
		Invoices: []zoho.PaymentInvoice{
			{InvoiceID: invoiceID, AmountApplied: toMajor(order.Total)},
		},
	}
}

func accountingLineItems(order *models.Order) []zoho.SalesOrderLineItem {
	items := make([]zoho.SalesOrderLineItem, 0, len(order.Items))
	for _, item := range order.Items {
		description := item.ShadeName
		items = append(items, zoho.SalesOrderLineItem{
			Name:        item.Name,
			Description: description,
			Quantity:    item.Quantity,
			Rate:        toMajor(item.UnitPrice),
		})
	}
	return items
}

// toMajor converts minor currency units to the decimal amounts the accounting
// API expects.
func toMajor(minor int64) float64 {
	return float64(minor) / 100
}
