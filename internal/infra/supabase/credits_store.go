package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/boddenberg/credits-checkout-go/internal/domain"
	"github.com/boddenberg/credits-checkout-go/internal/infra/resilience"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Credit packages & ledger — reads via PostgREST
// ============================================================

// packageRow maps credit_packages table columns to our domain.
type packageRow struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Credits     int     `json:"credits"`
	PriceCents  int64   `json:"price_cents"`
	Currency    string  `json:"currency"`
	PriceID     string  `json:"stripe_price_id"`
	Description string  `json:"description"`
	Discount    float64 `json:"discount"`
	Active      bool    `json:"active"`
}

// ListCreditPackages fetches the active package catalog. The read is
// idempotent, so it goes through the retry path behind the breaker.
func (c *Client) ListCreditPackages(ctx context.Context) ([]domain.CreditPackage, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListCreditPackages")
	defer span.End()

	var packages []domain.CreditPackage

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := c.doRest(ctx, "credit_packages?active=eq.true&order=credits.asc")
			if err != nil {
				return err
			}

			if body == nil || string(body) == "[]" {
				packages = []domain.CreditPackage{}
				return nil
			}

			var rows []packageRow
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("failed to decode credit_packages: %w", err)
			}

			packages = make([]domain.CreditPackage, 0, len(rows))
			for _, r := range rows {
				packages = append(packages, domain.CreditPackage{
					ID:          r.ID,
					Name:        r.Name,
					Credits:     r.Credits,
					PriceCents:  r.PriceCents,
					Currency:    r.Currency,
					PriceID:     r.PriceID,
					Description: r.Description,
					Discount:    r.Discount,
					Active:      r.Active,
				})
			}
			return nil
		})
	})

	if err != nil {
		return nil, classifyProviderErr("supabase/packages", err)
	}

	return packages, nil
}

// balanceRow maps credit_balances table columns.
type balanceRow struct {
	UserID    string `json:"user_id"`
	Balance   int    `json:"balance"`
	UpdatedAt string `json:"updated_at"`
}

// GetCreditBalance fetches the user's derived credit balance.
func (c *Client) GetCreditBalance(ctx context.Context, userID string) (*domain.CreditBalance, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetCreditBalance")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	var balance *domain.CreditBalance

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			path := fmt.Sprintf("credit_balances?user_id=eq.%s&limit=1", userID)
			body, err := c.doRest(ctx, path)
			if err != nil {
				return err
			}

			// An empty row set is a successful read: the user simply has
			// no balance row yet. It must not trip retries or the breaker.
			if body == nil || string(body) == "[]" {
				balance = nil
				return nil
			}

			var rows []balanceRow
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("failed to decode credit_balances: %w", err)
			}
			if len(rows) == 0 {
				balance = nil
				return nil
			}

			r := rows[0]
			updatedAt, _ := time.Parse(time.RFC3339, r.UpdatedAt)
			balance = &domain.CreditBalance{
				UserID:    r.UserID,
				Balance:   r.Balance,
				UpdatedAt: updatedAt,
			}
			return nil
		})
	})

	if err != nil {
		return nil, classifyProviderErr("supabase/credits", err)
	}
	if balance == nil {
		return nil, &domain.ErrNotFound{Resource: "credit_balance", ID: userID}
	}

	return balance, nil
}

// purchaseRow maps credit_purchases table columns.
type purchaseRow struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	PackageID       string `json:"package_id"`
	Credits         int    `json:"credits"`
	AmountCents     int64  `json:"amount_cents"`
	Currency        string `json:"currency"`
	StripeSessionID string `json:"stripe_session_id"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
}

// ListCreditPurchases fetches the user's most recent completed purchases.
func (c *Client) ListCreditPurchases(ctx context.Context, userID string, limit int) ([]domain.CreditPurchase, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListCreditPurchases")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userID))

	var purchases []domain.CreditPurchase

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			path := fmt.Sprintf("credit_purchases?user_id=eq.%s&order=created_at.desc&limit=%d", userID, limit)
			body, err := c.doRest(ctx, path)
			if err != nil {
				return err
			}

			if body == nil || string(body) == "[]" {
				purchases = []domain.CreditPurchase{}
				return nil
			}

			var rows []purchaseRow
			if err := json.Unmarshal(body, &rows); err != nil {
				return fmt.Errorf("failed to decode credit_purchases: %w", err)
			}

			purchases = make([]domain.CreditPurchase, 0, len(rows))
			for _, r := range rows {
				createdAt, _ := time.Parse(time.RFC3339, r.CreatedAt)
				purchases = append(purchases, domain.CreditPurchase{
					ID:              r.ID,
					UserID:          r.UserID,
					PackageID:       r.PackageID,
					Credits:         r.Credits,
					AmountCents:     r.AmountCents,
					Currency:        r.Currency,
					StripeSessionID: r.StripeSessionID,
					Status:          r.Status,
					CreatedAt:       createdAt,
				})
			}
			return nil
		})
	})

	if err != nil {
		return nil, classifyProviderErr("supabase/purchases", err)
	}

	return purchases, nil
}
