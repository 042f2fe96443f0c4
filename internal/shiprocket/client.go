// Package shiprocket wraps the shipping aggregator's external API.
package shiprocket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// TokenSource yields a usable carrier session token. Implemented by the
// credentials manager.
type TokenSource interface {
	ShipRocketToken(ctx context.Context) (string, error)
}

// Authenticator performs the username/password login flow. It is separate
// from Client so the credentials manager can log in without holding a token.
type Authenticator struct {
	httpClient *http.Client
	baseURL    string
	email      string
	password   string
}

func NewAuthenticator(httpClient *http.Client, baseURL, email, password string) *Authenticator {
	return &Authenticator{
		httpClient: httpClient,
		baseURL:    baseURL,
		email:      email,
		password:   password,
	}
}

// Login exchanges the configured credentials for a session token. Tokens are
// valid for roughly 24 hours; the caller owns caching.
func (a *Authenticator) Login(ctx context.Context) (string, error) {
	body, err := json.Marshal(map[string]string{
		"email":    a.email,
		"password": a.password,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("carrier login failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("carrier login returned status %d: %s", resp.StatusCode, string(payload))
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode carrier login response: %w", err)
	}
	if result.Token == "" {
		return "", fmt.Errorf("carrier login response missing token")
	}
	return result.Token, nil
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	logger     *slog.Logger
}

func NewClient(httpClient *http.Client, baseURL string, tokens TokenSource, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		tokens:     tokens,
		logger:     logger,
	}
}

// AdhocOrderResponse carries the identifiers the carrier assigns when an
// order is registered.
type AdhocOrderResponse struct {
	OrderID        json.Number `json:"order_id"`
	ShipmentID     json.Number `json:"shipment_id"`
	TrackingNumber string      `json:"tracking_number"`
	CourierName    string      `json:"courier_name"`
	Status         string      `json:"status"`
}

// CreateAdhocOrder registers an order with the carrier and returns its
// assigned identifiers.
func (c *Client) CreateAdhocOrder(ctx context.Context, order AdhocOrderRequest) (*AdhocOrderResponse, error) {
	var result AdhocOrderResponse
	if err := c.post(ctx, "/orders/create/adhoc", order, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TrackingResponse is the carrier's shipment tracking report.
type TrackingResponse struct {
	TrackingData struct {
		TrackStatus   int    `json:"track_status"`
		ShipmentTrack []struct {
			CurrentStatus string `json:"current_status"`
			Destination   string `json:"destination"`
			EDD           string `json:"edd"`
		} `json:"shipment_track"`
	} `json:"tracking_data"`
}

// TrackShipment looks up live tracking by the carrier's shipment id.
func (c *Client) TrackShipment(ctx context.Context, shipmentID string) (*TrackingResponse, error) {
	token, err := c.tokens.ShipRocketToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/courier/track/shipment/"+shipmentID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("carrier tracking lookup failed: %w", err)
	}
	defer c.closeBody(resp.Body)

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("carrier tracking returned status %d: %s", resp.StatusCode, string(payload))
	}

	var result TrackingResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode carrier tracking response: %w", err)
	}
	return &result, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	token, err := c.tokens.ShipRocketToken(ctx)
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("carrier request failed: %w", err)
	}
	defer c.closeBody(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		responseBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("carrier returned status %d (failed to read response body: %w)", resp.StatusCode, readErr)
		}
		return fmt.Errorf("carrier returned status %d: %s", resp.StatusCode, string(responseBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode carrier response: %w", err)
		}
	}
	return nil
}

func (c *Client) closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil && c.logger != nil {
		c.logger.Warn("failed to close carrier response body", "error", err)
	}
}
