package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/auth"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/db"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/email"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
)

type fakeOrderStore struct {
	created    []*models.Order
	byCode     map[string]*models.Order
	createErr  error
	lastFilter db.ListFilter
}

func (s *fakeOrderStore) Create(_ context.Context, order *models.Order) error {
	if s.createErr != nil {
		return s.createErr
	}
	if order.Code == "" {
		order.Code = fmt.Sprintf("ORD-TEST-%d", len(s.created)+1)
	}
	order.CreatedAt = time.Now().UTC()
	s.created = append(s.created, order)
	return nil
}

func (s *fakeOrderStore) GetByCode(_ context.Context, code string) (*models.Order, error) {
	if order, ok := s.byCode[code]; ok {
		return order, nil
	}
	return nil, db.ErrNotFound
}

func (s *fakeOrderStore) GetByGatewayPaymentID(_ context.Context, paymentID string) (*models.Order, error) {
	for _, order := range s.byCode {
		if order.Refs.GatewayPaymentID == paymentID {
			return order, nil
		}
	}
	return nil, db.ErrNotFound
}

func (s *fakeOrderStore) List(_ context.Context, filter db.ListFilter) ([]*models.Order, int, error) {
	s.lastFilter = filter
	return nil, 0, nil
}

type fakeGatewayStore struct {
	orders       map[string]*models.GatewayOrder
	markedPaid   []string
	markedOrders []string
}

func (s *fakeGatewayStore) Get(_ context.Context, id string) (*models.GatewayOrder, error) {
	if order, ok := s.orders[id]; ok {
		return order, nil
	}
	return nil, db.ErrNotFound
}

func (s *fakeGatewayStore) MarkPaid(_ context.Context, id, _, _, orderCode string) error {
	s.markedPaid = append(s.markedPaid, id)
	s.markedOrders = append(s.markedOrders, orderCode)
	return nil
}

type stubVerifier struct {
	ok bool
}

func (v stubVerifier) VerifyPayment(_, _, _ string) bool { return v.ok }

type stubSyncer struct {
	err   error
	calls int
}

func (s *stubSyncer) Sync(_ context.Context, _ *models.Order) error {
	s.calls++
	return s.err
}

type fakeCheckoutCart struct {
	items  []models.LineItem
	clears int
}

func (c *fakeCheckoutCart) Snapshot(_ context.Context, _ string) ([]models.LineItem, error) {
	if len(c.items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidInput)
	}
	return c.items, nil
}

func (c *fakeCheckoutCart) Clear(_ context.Context, _ string) error {
	c.clears++
	return nil
}

func checkoutItems() []models.LineItem {
	return []models.LineItem{
		{ProductID: "prod-1", Name: "Lipstick", UnitPrice: 49900, Quantity: 2},
	}
}

func checkoutAddress() *models.Address {
	return &models.Address{Name: "Asha", Line1: "7 Park Lane", City: "Delhi", PinCode: "110001"}
}

func newTestOrderService(orders *fakeOrderStore, gateway *fakeGatewayStore, verifier stubVerifier) *OrderService {
	return &OrderService{
		orders:        orders,
		gatewayOrders: gateway,
		verifier:      verifier,
		emailSender:   email.Noop{},
		logger:        testLogger(),
	}
}

func buyer() auth.Principal {
	return auth.Principal{SubjectID: "user-1", Email: "asha@example.com"}
}

func TestCheckoutCOD(t *testing.T) {
	t.Parallel()

	orders := &fakeOrderStore{}
	svc := newTestOrderService(orders, &fakeGatewayStore{}, stubVerifier{})

	result, err := svc.Checkout(context.Background(), buyer(), CheckoutInput{
		Items:           checkoutItems(),
		ShippingAddress: checkoutAddress(),
		PaymentMethod:   "cod",
		ShippingCharge:  5000,
	})
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}

	order := result.Order
	if order.Status != models.StatusPending || order.PaymentStatus != models.PaymentPending {
		t.Fatalf("status = %s/%s, want pending/pending", order.Status, order.PaymentStatus)
	}
	if order.Subtotal != 99800 {
		t.Fatalf("subtotal = %d, want 99800", order.Subtotal)
	}
	if order.Total != 104800 {
		t.Fatalf("total = %d, want 104800", order.Total)
	}
	if len(orders.created) != 1 {
		t.Fatalf("orders written = %d, want 1", len(orders.created))
	}
	if result.Sync.Shipping.Attempted || result.Sync.Accounting.Attempted {
		t.Fatalf("sync status = %+v, want no attempts without configured integrations", result.Sync)
	}
}

func TestCheckoutOnlineVerified(t *testing.T) {
	t.Parallel()

	orders := &fakeOrderStore{}
	gateway := &fakeGatewayStore{orders: map[string]*models.GatewayOrder{
		"order_gw_1": {ID: "order_gw_1", Amount: 104800, UserID: "user-1"},
	}}
	svc := newTestOrderService(orders, gateway, stubVerifier{ok: true})

	result, err := svc.Checkout(context.Background(), buyer(), CheckoutInput{
		Items:            checkoutItems(),
		ShippingAddress:  checkoutAddress(),
		PaymentMethod:    "online",
		ShippingCharge:   5000,
		GatewayOrderID:   "order_gw_1",
		GatewayPaymentID: "pay_1",
		GatewaySignature: "sig_1",
	})
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}

	order := result.Order
	if order.Status != models.StatusConfirmed || order.PaymentStatus != models.PaymentPaid {
		t.Fatalf("status = %s/%s, want confirmed/paid", order.Status, order.PaymentStatus)
	}
	if order.Refs.GatewayOrderID != "order_gw_1" || order.Refs.GatewayPaymentID != "pay_1" || order.Refs.GatewaySignature != "sig_1" {
		t.Fatalf("gateway refs = %+v, want confirmation fields recorded", order.Refs)
	}
	if len(gateway.markedPaid) != 1 || gateway.markedPaid[0] != "order_gw_1" {
		t.Fatalf("marked paid = %v, want [order_gw_1]", gateway.markedPaid)
	}
	if gateway.markedOrders[0] != order.Code {
		t.Fatalf("gateway linked order = %q, want %q", gateway.markedOrders[0], order.Code)
	}
}

func TestCheckoutOnlineRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    CheckoutInput
		verifier stubVerifier
		wantErr  error
	}{
		{
			name: "unknown gateway order",
			input: CheckoutInput{
				Items:            checkoutItems(),
				ShippingAddress:  checkoutAddress(),
				PaymentMethod:    "online",
				GatewayOrderID:   "order_gw_404",
				GatewayPaymentID: "pay_1",
				GatewaySignature: "sig_1",
			},
			verifier: stubVerifier{ok: true},
			wantErr:  ErrNotFound,
		},
		{
			name: "invalid signature",
			input: CheckoutInput{
				Items:            checkoutItems(),
				ShippingAddress:  checkoutAddress(),
				PaymentMethod:    "online",
				GatewayOrderID:   "order_gw_1",
				GatewayPaymentID: "pay_1",
				GatewaySignature: "forged",
			},
			verifier: stubVerifier{ok: false},
			wantErr:  ErrInvalidSignature,
		},
		{
			name: "missing confirmation fields",
			input: CheckoutInput{
				Items:           checkoutItems(),
				ShippingAddress: checkoutAddress(),
				PaymentMethod:   "online",
			},
			verifier: stubVerifier{ok: true},
			wantErr:  ErrInvalidInput,
		},
		{
			name: "unknown payment method",
			input: CheckoutInput{
				Items:           checkoutItems(),
				ShippingAddress: checkoutAddress(),
				PaymentMethod:   "wire",
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			orders := &fakeOrderStore{}
			gateway := &fakeGatewayStore{orders: map[string]*models.GatewayOrder{
				"order_gw_1": {ID: "order_gw_1"},
			}}
			svc := newTestOrderService(orders, gateway, tc.verifier)

			_, err := svc.Checkout(context.Background(), buyer(), tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Checkout() error = %v, want %v", err, tc.wantErr)
			}
			if len(orders.created) != 0 {
				t.Fatalf("orders written = %d, want 0 after rejection", len(orders.created))
			}
		})
	}
}

func TestCheckoutShippingFailureDoesNotAbort(t *testing.T) {
	t.Parallel()

	orders := &fakeOrderStore{}
	shipping := &stubSyncer{err: errors.New("carrier down")}
	accounting := &stubSyncer{}

	svc := newTestOrderService(orders, &fakeGatewayStore{}, stubVerifier{})
	svc.shipping = shipping
	svc.accounting = accounting

	result, err := svc.Checkout(context.Background(), buyer(), CheckoutInput{
		Items:           checkoutItems(),
		CustomerID:      "contact-1",
		ShippingAddress: checkoutAddress(),
		PaymentMethod:   "cod",
	})
	if err != nil {
		t.Fatalf("Checkout() error = %v, want success despite sync failure", err)
	}

	if !result.Sync.Shipping.Attempted || result.Sync.Shipping.Synced {
		t.Fatalf("shipping status = %+v, want attempted and failed", result.Sync.Shipping)
	}
	if result.Sync.Shipping.Error == "" {
		t.Fatalf("shipping error = empty, want failure recorded")
	}
	if accounting.calls != 1 || !result.Sync.Accounting.Synced {
		t.Fatalf("accounting status = %+v (calls %d), want attempted after shipping failure", result.Sync.Accounting, accounting.calls)
	}
}

func TestCheckoutAccountingRequiresCustomerID(t *testing.T) {
	t.Parallel()

	orders := &fakeOrderStore{}
	shipping := &stubSyncer{}
	accounting := &stubSyncer{}

	svc := newTestOrderService(orders, &fakeGatewayStore{}, stubVerifier{})
	svc.shipping = shipping
	svc.accounting = accounting

	result, err := svc.Checkout(context.Background(), buyer(), CheckoutInput{
		Items:           checkoutItems(),
		ShippingAddress: checkoutAddress(),
		PaymentMethod:   "cod",
	})
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}

	if accounting.calls != 0 || result.Sync.Accounting.Attempted {
		t.Fatalf("accounting status = %+v (calls %d), want skipped without a customer id", result.Sync.Accounting, accounting.calls)
	}
	if !result.Sync.Shipping.Attempted {
		t.Fatalf("shipping status = %+v, want attempted regardless", result.Sync.Shipping)
	}

	withCustomer, err := svc.Checkout(context.Background(), buyer(), CheckoutInput{
		Items:           checkoutItems(),
		CustomerID:      "contact-1",
		ShippingAddress: checkoutAddress(),
		PaymentMethod:   "cod",
	})
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if accounting.calls != 1 || !withCustomer.Sync.Accounting.Attempted {
		t.Fatalf("accounting calls = %d, want sync once a customer id is present", accounting.calls)
	}
	if withCustomer.Order.CustomerID != "contact-1" {
		t.Fatalf("CustomerID = %q, want carried onto the order", withCustomer.Order.CustomerID)
	}
}

func TestCheckoutFromCartSnapshot(t *testing.T) {
	t.Parallel()

	orders := &fakeOrderStore{}
	cart := &fakeCheckoutCart{items: checkoutItems()}

	svc := newTestOrderService(orders, &fakeGatewayStore{}, stubVerifier{})
	svc.cart = cart
	svc.clearCart = true

	result, err := svc.Checkout(context.Background(), buyer(), CheckoutInput{
		ShippingAddress: checkoutAddress(),
		PaymentMethod:   "cod",
	})
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if len(result.Order.Items) != 1 || result.Order.Items[0].ProductID != "prod-1" {
		t.Fatalf("order items = %+v, want cart snapshot", result.Order.Items)
	}
	if cart.clears != 1 {
		t.Fatalf("cart clears = %d, want 1", cart.clears)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	t.Parallel()

	svc := newTestOrderService(&fakeOrderStore{}, &fakeGatewayStore{}, stubVerifier{})
	svc.cart = &fakeCheckoutCart{}

	_, err := svc.Checkout(context.Background(), buyer(), CheckoutInput{
		ShippingAddress: checkoutAddress(),
		PaymentMethod:   "cod",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Checkout() error = %v, want ErrInvalidInput", err)
	}
}

func TestCheckoutLedgerWriteFailure(t *testing.T) {
	t.Parallel()

	orders := &fakeOrderStore{createErr: errors.New("connection reset")}
	svc := newTestOrderService(orders, &fakeGatewayStore{}, stubVerifier{})

	_, err := svc.Checkout(context.Background(), buyer(), CheckoutInput{
		Items:           checkoutItems(),
		ShippingAddress: checkoutAddress(),
		PaymentMethod:   "cod",
	})
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("Checkout() error = %v, want ErrPersistence", err)
	}
}

func TestOrderGetEnforcesOwnership(t *testing.T) {
	t.Parallel()

	orders := &fakeOrderStore{byCode: map[string]*models.Order{
		"ORD1": {Code: "ORD1", UserID: "user-1"},
	}}
	svc := newTestOrderService(orders, &fakeGatewayStore{}, stubVerifier{})
	ctx := context.Background()

	if _, err := svc.Get(ctx, auth.Principal{SubjectID: "user-1"}, "ORD1"); err != nil {
		t.Fatalf("Get(owner) error = %v", err)
	}
	if _, err := svc.Get(ctx, auth.Principal{SubjectID: "user-2"}, "ORD1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Get(other user) error = %v, want ErrForbidden", err)
	}
	if _, err := svc.Get(ctx, auth.Principal{SubjectID: "user-2", Admin: true}, "ORD1"); err != nil {
		t.Fatalf("Get(admin) error = %v", err)
	}
	if _, err := svc.Get(ctx, auth.Principal{SubjectID: "user-1"}, "ORD404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestOrderListScopesNonAdminToOwnOrders(t *testing.T) {
	t.Parallel()

	orders := &fakeOrderStore{}
	svc := newTestOrderService(orders, &fakeGatewayStore{}, stubVerifier{})
	ctx := context.Background()

	if _, _, err := svc.List(ctx, auth.Principal{SubjectID: "user-1"}, ListOrdersInput{}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if orders.lastFilter.UserID != "user-1" {
		t.Fatalf("filter.UserID = %q, want user-1", orders.lastFilter.UserID)
	}

	if _, _, err := svc.List(ctx, auth.Principal{SubjectID: "user-1", Admin: true}, ListOrdersInput{}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if orders.lastFilter.UserID != "" {
		t.Fatalf("admin filter.UserID = %q, want unscoped", orders.lastFilter.UserID)
	}
}
