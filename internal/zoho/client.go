// Package zoho wraps the accounting system's inventory REST API.
package zoho

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// TokenSource yields a usable accounting access token. Implemented by the
// credentials manager.
type TokenSource interface {
	ZohoToken(ctx context.Context) (string, error)
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	organizationID string
	tokens         TokenSource
	logger         *slog.Logger
}

func NewClient(httpClient *http.Client, baseURL, organizationID string, tokens TokenSource, logger *slog.Logger) *Client {
	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(baseURL, "/"),
		organizationID: organizationID,
		tokens:         tokens,
		logger:         logger,
	}
}

// CreateContact registers a customer in the accounting system.
func (c *Client) CreateContact(ctx context.Context, contact Contact) (*Contact, error) {
	contact.ContactType = "customer"
	var result contactResponse
	if err := c.do(ctx, http.MethodPost, "/contacts", nil, contact, &result); err != nil {
		return nil, err
	}
	return &result.Contact, nil
}

// ListContacts pages through customers with optional field filters.
func (c *Client) ListContacts(ctx context.Context, page, perPage int, filters map[string]string) ([]Contact, int, error) {
	query := url.Values{}
	query.Set("page", fmt.Sprint(page))
	query.Set("per_page", fmt.Sprint(perPage))
	for field, value := range filters {
		if value != "" {
			query.Add("filter_by", fmt.Sprintf("%s.contains:%s", field, value))
		}
	}
	var result contactsResponse
	if err := c.do(ctx, http.MethodGet, "/contacts", query, nil, &result); err != nil {
		return nil, 0, err
	}
	total := result.PageContext.Total
	if total == 0 {
		total = len(result.Contacts)
	}
	return result.Contacts, total, nil
}

func (c *Client) GetContact(ctx context.Context, contactID string) (*Contact, error) {
	var result contactResponse
	if err := c.do(ctx, http.MethodGet, "/contacts/"+contactID, nil, nil, &result); err != nil {
		return nil, err
	}
	if result.Contact.ContactID == "" {
		return nil, ErrNotFound
	}
	return &result.Contact, nil
}

// CreateSalesOrder mirrors an order as an accounting sales order and returns
// its id.
func (c *Client) CreateSalesOrder(ctx context.Context, params SalesOrderParams) (string, error) {
	var result salesOrderResponse
	if err := c.do(ctx, http.MethodPost, "/salesorders", nil, params, &result); err != nil {
		return "", err
	}
	if result.SalesOrder.SalesOrderID == "" {
		return "", fmt.Errorf("accounting system returned no sales order id: %s", result.Message)
	}
	return result.SalesOrder.SalesOrderID, nil
}

// CreateInvoice raises an invoice against a customer and returns its id.
func (c *Client) CreateInvoice(ctx context.Context, params InvoiceParams) (string, error) {
	var result invoiceResponse
	if err := c.do(ctx, http.MethodPost, "/invoices", nil, params, &result); err != nil {
		return "", err
	}
	if result.Invoice.InvoiceID == "" {
		return "", fmt.Errorf("accounting system returned no invoice id: %s", result.Message)
	}
	return result.Invoice.InvoiceID, nil
}

// CreateCustomerPayment records a received payment applied to an invoice and
// returns the payment id.
func (c *Client) CreateCustomerPayment(ctx context.Context, params CustomerPaymentParams) (string, error) {
	var result customerPaymentResponse
	if err := c.do(ctx, http.MethodPost, "/customerpayments", nil, params, &result); err != nil {
		return "", err
	}
	if result.Payment.PaymentID == "" {
		return "", fmt.Errorf("accounting system returned no payment id: %s", result.Message)
	}
	return result.Payment.PaymentID, nil
}

// ListCustomerPayments pages through recorded payments.
func (c *Client) ListCustomerPayments(ctx context.Context, page, perPage int, filters map[string]string) ([]CustomerPayment, int, error) {
	query := url.Values{}
	query.Set("page", fmt.Sprint(page))
	query.Set("per_page", fmt.Sprint(perPage))
	for key, value := range filters {
		if value != "" {
			query.Set(key, value)
		}
	}
	var result customerPaymentsResponse
	if err := c.do(ctx, http.MethodGet, "/customerpayments", query, nil, &result); err != nil {
		return nil, 0, err
	}
	total := result.PageContext.Total
	if total == 0 {
		total = len(result.CustomerPayments)
	}
	return result.CustomerPayments, total, nil
}

func (c *Client) GetCustomerPayment(ctx context.Context, paymentID string) (*CustomerPayment, error) {
	var result customerPaymentDetailResponse
	if err := c.do(ctx, http.MethodGet, "/customerpayments/"+paymentID, nil, nil, &result); err != nil {
		return nil, err
	}
	if result.CustomerPayment.PaymentID == "" {
		return nil, ErrNotFound
	}
	return &result.CustomerPayment, nil
}

// ListItems fetches the accounting-side product catalog.
func (c *Client) ListItems(ctx context.Context) ([]Item, error) {
	var result itemsResponse
	if err := c.do(ctx, http.MethodGet, "/items", nil, nil, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

var ErrNotFound = fmt.Errorf("accounting record not found")

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	token, err := c.tokens.ZohoToken(ctx)
	if err != nil {
		return err
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("organization_id", c.organizationID)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path+"?"+query.Encode(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Zoho-oauthtoken "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("accounting request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && c.logger != nil {
			c.logger.Warn("failed to close accounting response body", "error", closeErr)
		}
	}()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		responseBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("accounting system returned status %d (failed to read response body: %w)", resp.StatusCode, readErr)
		}
		return fmt.Errorf("accounting system returned status %d: %s", resp.StatusCode, string(responseBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode accounting response: %w", err)
		}
	}
	return nil
}
