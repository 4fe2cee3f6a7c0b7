package domain

import "time"

// ============================================================
// Credits — balance and purchase history
// ============================================================

// CreditBalance is the user's current credit balance, derived by Supabase
// from the purchase/consumption ledger. This service only reads it.
type CreditBalance struct {
	UserID    string    `json:"user_id"`
	Balance   int       `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreditPurchase is one completed package purchase.
type CreditPurchase struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	PackageID       string    `json:"package_id"`
	Credits         int       `json:"credits"`
	AmountCents     int64     `json:"amount_cents"`
	Currency        string    `json:"currency"`
	StripeSessionID string    `json:"stripe_session_id,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreditsSummary is the 200 body for GET /v1/credits/summary.
type CreditsSummary struct {
	Balance         *CreditBalance   `json:"balance"`
	RecentPurchases []CreditPurchase `json:"recentPurchases"`
}
