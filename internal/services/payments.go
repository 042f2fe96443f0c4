package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/RUSHi-VAiRALE/ecombackend/internal/auth"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/db"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/logging"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/models"
	"github.com/RUSHi-VAiRALE/ecombackend/internal/razorpay"
)

type gatewayClient interface {
	CreateOrder(ctx context.Context, params razorpay.CreateOrderParams) (*razorpay.Order, error)
}

type gatewayOrderCreator interface {
	Create(ctx context.Context, order *models.GatewayOrder) error
	Get(ctx context.Context, id string) (*models.GatewayOrder, error)
}

// PaymentService creates payment intents with the gateway ahead of checkout
// and records them for later cross-checking.
type PaymentService struct {
	gateway gatewayClient
	intents gatewayOrderCreator
	logger  *slog.Logger
}

func NewPaymentService(gateway *razorpay.Client, intents *db.GatewayOrderStore, logger *slog.Logger) *PaymentService {
	return &PaymentService{gateway: gateway, intents: intents, logger: logger}
}

type CreateIntentInput struct {
	Amount   int64  `json:"amount"` // minor currency units
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateIntent registers the upcoming payment with the gateway. The returned
// record carries the gateway order id the storefront hands to the payment
// widget.
func (s *PaymentService) CreateIntent(ctx context.Context, principal auth.Principal, input CreateIntentInput) (*models.GatewayOrder, error) {
	logger := logging.FromContext(ctx, s.logger)

	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if input.Currency == "" {
		input.Currency = "INR"
	}

	created, err := s.gateway.CreateOrder(ctx, razorpay.CreateOrderParams{
		Amount:   input.Amount,
		Currency: input.Currency,
		Receipt:  input.Receipt,
		Notes: map[string]string{
			"userId": principal.SubjectID,
		},
	})
	if err != nil {
		logger.Error("gateway order creation failed", "error", err)
		return nil, fmt.Errorf("%w: payment gateway rejected the order", ErrUpstreamUnavailable)
	}

	record := &models.GatewayOrder{
		ID:        created.ID,
		Amount:    created.Amount,
		Currency:  created.Currency,
		Receipt:   created.Receipt,
		Status:    created.Status,
		UserID:    principal.SubjectID,
		UserEmail: principal.Email,
	}
	if err := s.intents.Create(ctx, record); err != nil {
		logger.Error("failed to record payment intent", "gatewayOrderId", created.ID, "error", err)
		return nil, err
	}

	logger.Info("payment intent created", "gatewayOrderId", created.ID, "amount", created.Amount)
	return record, nil
}

// GetIntent returns a recorded payment intent by gateway order id.
func (s *PaymentService) GetIntent(ctx context.Context, id string) (*models.GatewayOrder, error) {
	intent, err := s.intents.Get(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: payment order %s", ErrNotFound, id)
		}
		return nil, err
	}
	return intent, nil
}
