// Package razorpay wraps the payment gateway's REST API.
package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	keyID      string
	keySecret  string
	logger     *slog.Logger
}

func NewClient(httpClient *http.Client, baseURL, keyID, keySecret string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		keyID:      keyID,
		keySecret:  keySecret,
		logger:     logger,
	}
}

type CreateOrderParams struct {
	Amount   int64             `json:"amount"` // minor currency units
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder registers a payment intent with the gateway. The returned id
// is what the storefront hands to the checkout widget and what the
// confirmation signature is computed over.
func (c *Client) CreateOrder(ctx context.Context, params CreateOrderParams) (*Order, error) {
	if params.Amount <= 0 {
		return nil, fmt.Errorf("order amount must be positive")
	}
	if params.Currency == "" {
		params.Currency = "INR"
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}
	defer c.closeBody(resp.Body)

	if resp.StatusCode != http.StatusOK {
		payload, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("gateway returned status %d (failed to read response body: %w)", resp.StatusCode, readErr)
		}
		return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(payload))
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("failed to decode gateway order: %w", err)
	}
	return &order, nil
}

// VerifyPayment checks a payment confirmation against this client's key
// secret.
func (c *Client) VerifyPayment(orderID, paymentID, signature string) bool {
	return VerifySignature(c.keySecret, orderID, paymentID, signature)
}

func (c *Client) closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil && c.logger != nil {
		c.logger.Warn("failed to close gateway response body", "error", err)
	}
}
