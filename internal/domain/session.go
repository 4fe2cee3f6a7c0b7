package domain

// ============================================================
// Session — Supabase-issued identity
// ============================================================

// Session is the proof of authenticated identity for one request,
// resolved from the access-token cookie or Authorization header.
type Session struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
}

// TokenPair is the result of a refresh-token exchange with GoTrue.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// ============================================================
// Metrics snapshot
// ============================================================

// CheckoutMetrics is the JSON snapshot served by GET /v1/metrics/checkout.
type CheckoutMetrics struct {
	TotalRequests   int64   `json:"totalRequests"`
	ErrorRate       float64 `json:"errorRate"`
	SessionsCreated int64   `json:"checkoutSessionsCreated"`
	SessionsFailed  int64   `json:"checkoutSessionsFailed"`
	CacheHitRate    float64 `json:"cacheHitRate"`
	Period          string  `json:"period"`
}

// ============================================================
// Health
// ============================================================

// ServiceHealth reports the status of one dependency.
type ServiceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"` // healthy, degraded, unhealthy
	LatencyMs   int64  `json:"latency_ms"`
	LastChecked string `json:"last_checked"`
}

// HealthStatus is the body for GET /healthz.
type HealthStatus struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
}

// SuccessResponse is a generic success message body.
type SuccessResponse struct {
	Message string `json:"message"`
}
