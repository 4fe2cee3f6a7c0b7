package domain

// ============================================================
// Checkout — Stripe Checkout session types
// ============================================================

// CheckoutIntent is the input to the payment adapter. One intent maps to
// exactly one created session; creation is not idempotent, so callers must
// not submit the same intent twice.
type CheckoutIntent struct {
	UserID     string `json:"userId"`
	PriceID    string `json:"priceId"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
	// Reference ties the session back to this request in provider dashboards.
	Reference string `json:"reference,omitempty"`
}

// CheckoutSession is the provider's answer: where to send the user.
type CheckoutSession struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// CheckoutSessionRequest is the body for POST /v1/checkout/session.
type CheckoutSessionRequest struct {
	PriceID string `json:"priceId"`
}

// ============================================================
// Credit packages
// ============================================================

// CreditPackage is a purchasable bundle of credits, read from the
// credit_packages table. PriceID is the Stripe price identifier.
type CreditPackage struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Credits     int     `json:"credits"`
	PriceCents  int64   `json:"price_cents"`
	Currency    string  `json:"currency"`
	PriceID     string  `json:"price_id"`
	Description string  `json:"description,omitempty"`
	Discount    float64 `json:"discount,omitempty"`
	Active      bool    `json:"active"`
}

// PackagesResponse is the 200 body for GET /v1/packages.
type PackagesResponse struct {
	Packages []CreditPackage `json:"packages"`
}
