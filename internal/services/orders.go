package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/getsentry/sentry-go/attribute"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/auth"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/db"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/email"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/logging"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/observability"
)

type orderStore interface {
	Create(ctx context.Context, order *models.Order) error
	GetByCode(ctx context.Context, code string) (*models.Order, error)
	GetByGatewayPaymentID(ctx context.Context, paymentID string) (*models.Order, error)
	List(ctx context.Context, filter db.ListFilter) ([]*models.Order, int, error)
}

type gatewayOrderStore interface {
	Get(ctx context.Context, id string) (*models.GatewayOrder, error)
	MarkPaid(ctx context.Context, id, paymentID, signature, orderCode string) error
}

type signatureVerifier interface {
	VerifyPayment(orderID, paymentID, signature string) bool
}

type orderSyncer interface {
	Sync(ctx context.Context, order *models.Order) error
}

type cartClearer interface {
	Snapshot(ctx context.Context, userID string) ([]models.LineItem, error)
	Clear(ctx context.Context, userID string) error
}

// OrderService coordinates checkout: it verifies payment, writes the order
// ledger entry, and fans out to the integrations.
type OrderService struct {
	orders        orderStore
	gatewayOrders gatewayOrderStore
	verifier      signatureVerifier
	cart          cartClearer
	shipping      orderSyncer
	accounting    orderSyncer
	emailSender   email.Provider
	emailRenderer *email.Renderer
	clearCart     bool
	logger        *slog.Logger
}

func NewOrderService(
	orders *db.OrderStore,
	gatewayOrders *db.GatewayOrderStore,
	verifier signatureVerifier,
	cart *CartService,
	shipping *ShippingSync,
	accounting *AccountingSync,
	emailSender email.Provider,
	emailRenderer *email.Renderer,
	clearCartAfterCheckout bool,
	logger *slog.Logger,
) *OrderService {
	if emailSender == nil {
		emailSender = email.Noop{}
	}
	s := &OrderService{
		orders:        orders,
		gatewayOrders: gatewayOrders,
		verifier:      verifier,
		emailSender:   emailSender,
		emailRenderer: emailRenderer,
		clearCart:     clearCartAfterCheckout,
		logger:        logger,
	}
	if cart != nil {
		s.cart = cart
	}
	if shipping != nil {
		s.shipping = shipping
	}
	if accounting != nil {
		s.accounting = accounting
	}
	return s
}

type CheckoutInput struct {
	Items           []models.LineItem `json:"items"`
	CustomerID      string            `json:"customerId"`
	ShippingAddress *models.Address   `json:"shippingAddress"`
	BillingAddress  *models.Address   `json:"billingAddress"`
	PaymentMethod   string            `json:"paymentMethod"`
	ShippingCharge  int64             `json:"shippingCharges"`
	Discount        int64             `json:"discountAmount"`

	// Present only for online payments.
	GatewayOrderID   string `json:"razorpayOrderId"`
	GatewayPaymentID string `json:"razorpayPaymentId"`
	GatewaySignature string `json:"razorpaySignature"`
}

type CheckoutResult struct {
	Order *models.Order `json:"order"`
	Sync  SyncStatus    `json:"syncStatus"`
}

// Checkout places an order. The ledger write is the only step whose failure
// aborts the request; the shipping and accounting syncs, the cart clear, and
// the confirmation email are best effort and reported via SyncStatus.
func (s *OrderService) Checkout(ctx context.Context, principal auth.Principal, input CheckoutInput) (*CheckoutResult, error) {
	span := sentry.StartSpan(
		ctx,
		"service.order.checkout",
		sentry.WithOpName("service.order"),
		sentry.WithDescription("Checkout"),
		sentry.WithSpanOrigin(sentry.SpanOriginManual),
	)
	defer span.Finish()
	ctx = span.Context()

	logger := logging.FromContext(ctx, s.logger)
	meter := observability.MeterFromContext(ctx)
	meter.Count("order.checkout.received", 1, sentry.WithAttributes(
		attribute.String("payment_method", input.PaymentMethod),
	))

	order, err := s.buildOrder(ctx, principal, input)
	if err != nil {
		meter.Count("order.checkout.rejected", 1)
		return nil, err
	}

	if err := s.orders.Create(ctx, order); err != nil {
		logger.Error("failed to write order", "error", err)
		return nil, fmt.Errorf("%w: order could not be saved", ErrPersistence)
	}
	logger.Info("order placed",
		"order", order.Code,
		"paymentMethod", order.PaymentMethod,
		"total", order.Total,
	)
	meter.Count("order.checkout.placed", 1)

	if order.PaymentMethod == models.PaymentMethodOnline && s.gatewayOrders != nil {
		if err := s.gatewayOrders.MarkPaid(ctx, input.GatewayOrderID, input.GatewayPaymentID, input.GatewaySignature, order.Code); err != nil {
			logger.Error("failed to link gateway order", "order", order.Code, "error", err)
		}
	}

	result := &CheckoutResult{Order: order}
	result.Sync = s.fanOut(ctx, order)

	if s.clearCart && s.cart != nil {
		if err := s.cart.Clear(ctx, principal.SubjectID); err != nil {
			logger.Error("failed to clear cart after checkout", "order", order.Code, "error", err)
		}
	}
	s.sendConfirmation(ctx, order)

	return result, nil
}

// buildOrder resolves line items, verifies online payments, and assembles the
// draft order. No external state is modified here.
func (s *OrderService) buildOrder(ctx context.Context, principal auth.Principal, input CheckoutInput) (*models.Order, error) {
	method := models.PaymentMethod(input.PaymentMethod)
	switch method {
	case models.PaymentMethodCOD, models.PaymentMethodOnline:
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, input.PaymentMethod)
	}

	items := input.Items
	if len(items) == 0 {
		if s.cart == nil {
			return nil, fmt.Errorf("%w: no items to order", ErrInvalidInput)
		}
		snapshot, err := s.cart.Snapshot(ctx, principal.SubjectID)
		if err != nil {
			return nil, err
		}
		items = snapshot
	}

	var subtotal int64
	for i, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: line item %d has non-positive quantity", ErrInvalidInput, i)
		}
		subtotal += item.UnitPrice * int64(item.Quantity)
	}
	if input.ShippingCharge < 0 || input.Discount < 0 {
		return nil, fmt.Errorf("%w: charges must not be negative", ErrInvalidInput)
	}

	order := &models.Order{
		PaymentMethod:   method,
		CustomerID:      input.CustomerID,
		Status:          models.StatusPending,
		PaymentStatus:   models.PaymentPending,
		Items:           items,
		Subtotal:        subtotal,
		ShippingCharge:  input.ShippingCharge,
		Discount:        input.Discount,
		Total:           subtotal + input.ShippingCharge - input.Discount,
		ShippingAddress: input.ShippingAddress,
		BillingAddress:  input.BillingAddress,
		UserID:          principal.SubjectID,
		UserEmail:       principal.Email,
	}

	if method == models.PaymentMethodOnline {
		if err := s.verifyOnlinePayment(ctx, input); err != nil {
			return nil, err
		}
		order.Status = models.StatusConfirmed
		order.PaymentStatus = models.PaymentPaid
		order.Refs.GatewayOrderID = input.GatewayOrderID
		order.Refs.GatewayPaymentID = input.GatewayPaymentID
		order.Refs.GatewaySignature = input.GatewaySignature
	}

	if err := order.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return order, nil
}

// verifyOnlinePayment cross-checks the confirmation against the recorded
// payment intent and its signature. A signature mismatch must leave no trace
// of an order.
func (s *OrderService) verifyOnlinePayment(ctx context.Context, input CheckoutInput) error {
	if input.GatewayOrderID == "" || input.GatewayPaymentID == "" || input.GatewaySignature == "" {
		return fmt.Errorf("%w: payment confirmation fields are required", ErrInvalidInput)
	}
	if s.gatewayOrders != nil {
		if _, err := s.gatewayOrders.Get(ctx, input.GatewayOrderID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return fmt.Errorf("%w: unknown payment order", ErrNotFound)
			}
			return err
		}
	}
	if !s.verifier.VerifyPayment(input.GatewayOrderID, input.GatewayPaymentID, input.GatewaySignature) {
		return ErrInvalidSignature
	}
	return nil
}

// fanOut runs the best-effort integration syncs. Each failure is recorded,
// never propagated; a shipping failure does not stop the accounting sync.
// Accounting runs only for checkouts that carried an accounting customer id.
func (s *OrderService) fanOut(ctx context.Context, order *models.Order) SyncStatus {
	var status SyncStatus

	if s.shipping != nil {
		status.Shipping.Attempted = true
		if err := s.shipping.Sync(ctx, order); err != nil {
			status.Shipping.Error = err.Error()
		} else {
			status.Shipping.Synced = true
		}
	}
	if s.accounting != nil && order.CustomerID != "" {
		status.Accounting.Attempted = true
		if err := s.accounting.Sync(ctx, order); err != nil {
			status.Accounting.Error = err.Error()
		} else {
			status.Accounting.Synced = true
		}
	}
	return status
}

func (s *OrderService) sendConfirmation(ctx context.Context, order *models.Order) {
	if s.emailRenderer == nil {
		return
	}
	logger := logging.FromContext(ctx, s.logger)

	if order.ShippingAddress == nil || order.ShippingAddress.Email == "" {
		return
	}
	message, err := s.emailRenderer.RenderOrderConfirmation(order)
	if err != nil {
		logger.Error("failed to render confirmation email", "order", order.Code, "error", err)
		return
	}
	if err := s.emailSender.SendEmail(ctx, message); err != nil {
		logger.Error("failed to send confirmation email", "order", order.Code, "error", err)
	}
}

// Get returns one order by code. Non-admin callers may only read their own.
func (s *OrderService) Get(ctx context.Context, principal auth.Principal, code string) (*models.Order, error) {
	order, err := s.orders.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, code)
		}
		return nil, err
	}
	if !principal.Admin && order.UserID != principal.SubjectID {
		return nil, ErrForbidden
	}
	return order, nil
}

type ListOrdersInput struct {
	Status        string
	PaymentStatus string
	Page          int
	PageSize      int
}

// List returns the caller's orders newest first. Admin callers see all users.
func (s *OrderService) List(ctx context.Context, principal auth.Principal, input ListOrdersInput) ([]*models.Order, int, error) {
	filter := db.ListFilter{
		Status:        models.OrderStatus(input.Status),
		PaymentStatus: models.PaymentStatus(input.PaymentStatus),
		Page:          input.Page,
		PageSize:      input.PageSize,
	}
	if !principal.Admin {
		filter.UserID = principal.SubjectID
	}
	return s.orders.List(ctx, filter)
}

// GetByGatewayPaymentID looks up the local order created for a verified
// gateway payment.
func (s *OrderService) GetByGatewayPaymentID(ctx context.Context, paymentID string) (*models.Order, error) {
	order, err := s.orders.GetByGatewayPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: no order for payment %s", ErrNotFound, paymentID)
		}
		return nil, err
	}
	return order, nil
}
