// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the service layer
// from the Supabase and Stripe adapters, which keeps the core testable
// without a real HTTP transport behind it.
package port

import (
	"context"

	"github.com/boddenberg/credits-checkout-go/internal/domain"
)

// SessionVerifier resolves provider-issued tokens into sessions.
// Lookup returning (nil, nil) means "no session" — anonymous, never fatal.
type SessionVerifier interface {
	Lookup(ctx context.Context, accessToken string) (*domain.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
}

// CheckoutCreator creates exactly one new payment session per call.
// The operation is not idempotent; callers must not retry it.
type CheckoutCreator interface {
	CreateCheckoutSession(ctx context.Context, intent *domain.CheckoutIntent) (*domain.CheckoutSession, error)
}

// PackageStore lists the purchasable credit packages. Reads are idempotent
// and safe to retry.
type PackageStore interface {
	ListCreditPackages(ctx context.Context) ([]domain.CreditPackage, error)
}

// CreditsStore reads a user's credit balance and purchase history.
type CreditsStore interface {
	GetCreditBalance(ctx context.Context, userID string) (*domain.CreditBalance, error)
	ListCreditPurchases(ctx context.Context, userID string, limit int) ([]domain.CreditPurchase, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
