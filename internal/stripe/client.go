// Package stripe is a thin client for the Stripe Checkout API. It is the
// only place amounts are converted to minor units; everywhere else the
// system works in pounds.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/config"
	"github.com/RosarioAnthonyWaya/preyesbaskets/internal/domain"
)

type Client struct {
	secretKey  string
	baseURL    string
	successURL string
	cancelURL  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Stripe Checkout client
func NewClient(cfg config.StripeConfig, logger *zap.Logger) *Client {
	baseURL := strings.TrimSuffix(cfg.APIBaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	return &Client{
		secretKey:  cfg.SecretKey,
		baseURL:    baseURL,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Session is the slice of a Stripe checkout session this service reads
type Session struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// MinorUnits converts a major-unit amount to the provider's integer minor
// units (pounds to pence), rounded to the nearest integer.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CreateSession creates a hosted payment session for an order manifest and
// returns the session, including the redirect URL.
func (c *Client) CreateSession(ctx context.Context, manifest *domain.OrderManifest) (*Session, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("success_url", c.successURL)
	form.Set("cancel_url", c.cancelURL)

	for i, line := range manifest.Lines {
		name := line.Name
		if label := line.Options.Label(); label != "" {
			name = fmt.Sprintf("%s (%s)", name, label)
		}
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[quantity]", strconv.Itoa(line.Quantity))
		form.Set(prefix+"[price_data][currency]", manifest.Currency)
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(MinorUnits(line.UnitAmount), 10))
		form.Set(prefix+"[price_data][product_data][name]", name)
		form.Set(prefix+"[price_data][product_data][metadata][product_id]", line.ProductID)
	}

	// Shipping rides as the final line item
	i := len(manifest.Lines)
	prefix := fmt.Sprintf("line_items[%d]", i)
	form.Set(prefix+"[quantity]", "1")
	form.Set(prefix+"[price_data][currency]", manifest.Currency)
	form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(MinorUnits(manifest.Shipping.LineTotal()), 10))
	form.Set(prefix+"[price_data][product_data][name]", manifest.Shipping.Name)

	perDelivery := manifest.Shipping.LineTotal() / float64(manifest.Delivery.Count)
	form.Set("metadata[deliveries_count]", strconv.Itoa(manifest.Delivery.Count))
	form.Set("metadata[shipping_per_delivery_gbp]", strconv.FormatFloat(perDelivery, 'f', -1, 64))
	form.Set("metadata[delivery_speed]", string(manifest.Delivery.Speed))
	form.Set("metadata[delivery_date]", manifest.Delivery.Date)
	if !manifest.Delivery.ProviderCollected {
		form.Set("metadata[multi_address]", "true")
	}

	var session Session
	if err := c.do(ctx, http.MethodPost, "/v1/checkout/sessions", form, &session); err != nil {
		return nil, err
	}

	c.logger.Info("Stripe checkout session created",
		zap.String("session_id", session.ID),
		zap.Int("line_count", len(manifest.Lines)))

	return &session, nil
}

// RetrieveSession fetches a session so callers can verify payment status
func (c *Client) RetrieveSession(ctx context.Context, sessionID string) (*Session, error) {
	var session Session
	path := "/v1/checkout/sessions/" + url.PathEscape(sessionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("stripe API error: status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("stripe API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(respBody))
	}
	return nil
}
