package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/logging"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/zoho"
)

type customerDirectory interface {
	ListContacts(ctx context.Context, page, perPage int, filters map[string]string) ([]zoho.Contact, int, error)
	GetContact(ctx context.Context, contactID string) (*zoho.Contact, error)
	ListCustomerPayments(ctx context.Context, page, perPage int, filters map[string]string) ([]zoho.CustomerPayment, int, error)
	GetCustomerPayment(ctx context.Context, paymentID string) (*zoho.CustomerPayment, error)
	ListItems(ctx context.Context) ([]zoho.Item, error)
	CreateContact(ctx context.Context, contact zoho.Contact) (*zoho.Contact, error)
}

// CustomerService exposes the accounting system's customer directory and
// payment history to the back office, enriching payments with the local order
// they settled.
type CustomerService struct {
	directory customerDirectory
	orders    interface {
		GetByGatewayPaymentID(ctx context.Context, paymentID string) (*models.Order, error)
	}
	logger *slog.Logger
}

func NewCustomerService(directory customerDirectory, orders *OrderService, logger *slog.Logger) *CustomerService {
	return &CustomerService{directory: directory, orders: orders, logger: logger}
}

type ListCustomersInput struct {
	Page    int
	PerPage int
	Name    string
	Email   string
	Phone   string
}

func (s *CustomerService) ListCustomers(ctx context.Context, input ListCustomersInput) ([]zoho.Contact, int, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.PerPage < 1 || input.PerPage > 200 {
		input.PerPage = 25
	}
	filters := map[string]string{
		"contact_name": input.Name,
		"email":        input.Email,
		"phone":        input.Phone,
	}
	contacts, total, err := s.directory.ListContacts(ctx, input.Page, input.PerPage, filters)
	if err != nil {
		return nil, 0, s.mapDirectoryError(ctx, err)
	}
	return contacts, total, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, contactID string) (*zoho.Contact, error) {
	contact, err := s.directory.GetContact(ctx, contactID)
	if err != nil {
		if errors.Is(err, zoho.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %s", ErrNotFound, contactID)
		}
		return nil, s.mapDirectoryError(ctx, err)
	}
	return contact, nil
}

type CreateCustomerInput struct {
	Name    string `json:"customerName"`
	Company string `json:"companyName"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

// CreateCustomer registers a contact in the accounting system ahead of any
// order, so back-office staff can invoice customers who buy offline.
func (s *CustomerService) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*zoho.Contact, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if input.Email == "" {
		return nil, fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}
	contact, err := s.directory.CreateContact(ctx, zoho.Contact{
		ContactName: input.Name,
		CompanyName: input.Company,
		Email:       input.Email,
		Phone:       input.Phone,
	})
	if err != nil {
		return nil, s.mapDirectoryError(ctx, err)
	}
	return contact, nil
}

// PaymentWithOrder pairs an accounting payment with the local order that
// produced it, when one can be matched by gateway payment reference.
type PaymentWithOrder struct {
	Payment zoho.CustomerPayment `json:"payment"`
	Order   *models.Order        `json:"order,omitempty"`
}

func (s *CustomerService) ListPayments(ctx context.Context, page, perPage int) ([]PaymentWithOrder, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 200 {
		perPage = 25
	}
	payments, total, err := s.directory.ListCustomerPayments(ctx, page, perPage, nil)
	if err != nil {
		return nil, 0, s.mapDirectoryError(ctx, err)
	}

	enriched := make([]PaymentWithOrder, 0, len(payments))
	for _, payment := range payments {
		entry := PaymentWithOrder{Payment: payment}
		if payment.ReferenceNumber != "" {
			if order, err := s.orders.GetByGatewayPaymentID(ctx, payment.ReferenceNumber); err == nil {
				entry.Order = order
			}
		}
		enriched = append(enriched, entry)
	}
	return enriched, total, nil
}

func (s *CustomerService) GetPayment(ctx context.Context, paymentID string) (*PaymentWithOrder, error) {
	payment, err := s.directory.GetCustomerPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, zoho.ErrNotFound) {
			return nil, fmt.Errorf("%w: payment %s", ErrNotFound, paymentID)
		}
		return nil, s.mapDirectoryError(ctx, err)
	}

	entry := &PaymentWithOrder{Payment: *payment}
	if payment.ReferenceNumber != "" {
		if order, err := s.orders.GetByGatewayPaymentID(ctx, payment.ReferenceNumber); err == nil {
			entry.Order = order
		}
	}
	return entry, nil
}

// ListCatalogItems returns the accounting system's view of the product
// catalog, used to reconcile it against the local one.
func (s *CustomerService) ListCatalogItems(ctx context.Context) ([]zoho.Item, error) {
	items, err := s.directory.ListItems(ctx)
	if err != nil {
		return nil, s.mapDirectoryError(ctx, err)
	}
	return items, nil
}

func (s *CustomerService) mapDirectoryError(ctx context.Context, err error) error {
	logging.FromContext(ctx, s.logger).Error("accounting directory request failed", "error", err)
	return fmt.Errorf("%w: accounting system", ErrUpstreamUnavailable)
}
