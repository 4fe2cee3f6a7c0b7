package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/boddenberg/credits-checkout-go/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// SessionVerifier implementation — GoTrue auth endpoints
// ============================================================

// goTrueUser maps the GET /auth/v1/user response.
type goTrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Lookup resolves an access token into a session via GoTrue.
// Any rejection from the provider means "no session" — the caller treats
// the request as anonymous, never as a fatal error.
func (c *Client) Lookup(ctx context.Context, accessToken string) (*domain.Session, error) {
	ctx, span := tracer.Start(ctx, "Supabase.Lookup")
	defer span.End()

	url := fmt.Sprintf("%s/auth/v1/user", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("supabase: session lookup failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("supabase: token rejected", zap.Int("status", resp.StatusCode))
		return nil, nil // no session
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var user goTrueUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	if user.ID == "" {
		return nil, nil
	}

	return &domain.Session{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}

// Refresh exchanges a refresh token for a new token pair via GoTrue.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	ctx, span := tracer.Start(ctx, "Supabase.Refresh")
	defer span.End()

	payload, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/auth/v1/token?grant_type=refresh_token", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("supabase: token refresh failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("supabase: refresh token rejected", zap.Int("status", resp.StatusCode))
		return nil, &domain.ErrUnauthorized{Message: "refresh token rejected"}
	}

	var pair domain.TokenPair
	if err := json.Unmarshal(body, &pair); err != nil {
		return nil, fmt.Errorf("failed to decode token pair: %w", err)
	}
	return &pair, nil
}
