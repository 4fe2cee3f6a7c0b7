package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/boddenberg/credits-checkout-go/internal/config"
	"github.com/boddenberg/credits-checkout-go/internal/domain"
	"github.com/boddenberg/credits-checkout-go/internal/port"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type contextKey string

const sessionKey contextKey = "session"

const (
	accessCookieName  = "sb-access-token"
	refreshCookieName = "sb-refresh-token"
)

// SessionMiddleware resolves the caller's session from the access-token
// cookie or the Authorization header and injects it into the request
// context. Resolution is best effort: a missing, expired, or rejected
// token leaves the request anonymous, never rejects it. Handlers that
// require a user decide for themselves.
//
// When the access token is expired and a refresh token cookie is present,
// the middleware refreshes the session and rewrites both cookies on the
// response before continuing.
func SessionMiddleware(verifier port.SessionVerifier, jwtSecret string, cookies config.CookieConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accessToken := tokenFromRequest(r)
			if accessToken == "" {
				next.ServeHTTP(w, r)
				return
			}

			session, expired := resolveSession(r.Context(), verifier, jwtSecret, accessToken, logger)

			if session == nil && expired {
				if refreshed := tryRefresh(w, r, verifier, jwtSecret, cookies, logger); refreshed != nil {
					session = refreshed
				}
			}

			if session == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext extracts the resolved session, or nil when anonymous.
func SessionFromContext(ctx context.Context) *domain.Session {
	v, _ := ctx.Value(sessionKey).(*domain.Session)
	return v
}

func tokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(accessCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

// resolveSession verifies the access token locally when the JWT secret is
// configured, otherwise asks the auth server. The second return reports
// whether the token failed specifically because it is expired.
func resolveSession(ctx context.Context, verifier port.SessionVerifier, jwtSecret, accessToken string, logger *zap.Logger) (*domain.Session, bool) {
	if jwtSecret != "" {
		session, err := verifyLocal(jwtSecret, accessToken)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return nil, true
			}
			logger.Debug("session: token rejected", zap.Error(err))
			return nil, false
		}
		return session, false
	}

	session, err := verifier.Lookup(ctx, accessToken)
	if err != nil {
		logger.Warn("session: lookup failed", zap.Error(err))
		return nil, false
	}
	// A rejected token may just be expired; signal so a refresh is attempted.
	if session == nil {
		return nil, true
	}
	return session, false
}

func verifyLocal(secret, tokenString string) (*domain.Session, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("token missing subject")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return &domain.Session{UserID: sub, Email: email, Role: role}, nil
}

func tryRefresh(w http.ResponseWriter, r *http.Request, verifier port.SessionVerifier, jwtSecret string, cookies config.CookieConfig, logger *zap.Logger) *domain.Session {
	refreshCookie, err := r.Cookie(refreshCookieName)
	if err != nil || refreshCookie.Value == "" {
		return nil
	}

	pair, err := verifier.Refresh(r.Context(), refreshCookie.Value)
	if err != nil {
		logger.Debug("session: refresh rejected", zap.Error(err))
		return nil
	}

	session, _ := resolveSession(r.Context(), verifier, jwtSecret, pair.AccessToken, logger)
	if session == nil {
		return nil
	}

	setSessionCookies(w, pair, cookies)
	logger.Info("session refreshed", zap.String("user_id", session.UserID))
	return session
}

func setSessionCookies(w http.ResponseWriter, pair *domain.TokenPair, cookies config.CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessCookieName,
		Value:    pair.AccessToken,
		Domain:   cookies.Domain,
		Path:     cookies.Path,
		MaxAge:   cookies.MaxAge,
		Secure:   cookies.Secure,
		HttpOnly: cookies.HTTPOnly,
		SameSite: cookies.SameSite,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    pair.RefreshToken,
		Domain:   cookies.Domain,
		Path:     cookies.Path,
		MaxAge:   cookies.MaxAge,
		Secure:   cookies.Secure,
		HttpOnly: cookies.HTTPOnly,
		SameSite: cookies.SameSite,
	})
}
