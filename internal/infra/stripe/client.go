// Package stripe provides a thin client for the Stripe Checkout API.
// Session creation is a pass-through: one call, one new session, no retry.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/boddenberg/credits-checkout-go/internal/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("stripe")

// Client wraps HTTP calls to the Stripe API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
	logger     *zap.Logger
}

// NewClient creates a Stripe client. baseURL is overridable for tests.
func NewClient(httpClient *http.Client, baseURL, secretKey string, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		secretKey:  secretKey,
		logger:     logger,
	}
}

// checkoutSessionResponse maps the fields we use from Stripe's response.
type checkoutSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type stripeErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// CreateCheckoutSession creates a hosted Checkout session for one price.
// Not idempotent: every successful call is a new payment session, so the
// caller owns not invoking it twice for the same intent.
func (c *Client) CreateCheckoutSession(ctx context.Context, intent *domain.CheckoutIntent) (*domain.CheckoutSession, error) {
	ctx, span := tracer.Start(ctx, "Stripe.CreateCheckoutSession")
	defer span.End()
	span.SetAttributes(
		attribute.String("user.id", intent.UserID),
		attribute.String("price.id", intent.PriceID),
	)

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][price]", intent.PriceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", intent.SuccessURL)
	form.Set("cancel_url", intent.CancelURL)
	form.Set("client_reference_id", intent.UserID)
	if intent.Reference != "" {
		form.Set("metadata[request_ref]", intent.Reference)
	}

	endpoint := fmt.Sprintf("%s/v1/checkout/sessions", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.secretKey))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("stripe: request failed", zap.Error(err))
		return nil, &domain.ErrUpstream{Service: "stripe", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ErrUpstream{Service: "stripe", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var stripeErr stripeErrorResponse
		_ = json.Unmarshal(body, &stripeErr)
		c.logger.Warn("stripe: non-2xx response",
			zap.Int("status", resp.StatusCode),
			zap.String("type", stripeErr.Error.Type),
			zap.String("message", stripeErr.Error.Message),
		)
		return nil, &domain.ErrUpstream{
			Service: "stripe",
			Err:     fmt.Errorf("checkout session create returned %d: %s", resp.StatusCode, stripeErr.Error.Message),
		}
	}

	var session checkoutSessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, &domain.ErrUpstream{Service: "stripe", Err: fmt.Errorf("failed to decode session: %w", err)}
	}
	if session.ID == "" || session.URL == "" {
		return nil, &domain.ErrUpstream{Service: "stripe", Err: fmt.Errorf("session response missing id or url")}
	}

	c.logger.Info("stripe: checkout session created",
		zap.String("session_id", session.ID),
		zap.String("user_id", intent.UserID),
	)

	return &domain.CheckoutSession{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}
