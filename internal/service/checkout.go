package service

import (
	"context"
	"time"

	"github.com/boddenberg/credits-checkout-go/internal/domain"
	"github.com/boddenberg/credits-checkout-go/internal/infra/observability"
	"github.com/boddenberg/credits-checkout-go/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var checkoutTracer = otel.Tracer("checkout-service")

// CheckoutService creates payment sessions for credit package purchases.
type CheckoutService struct {
	creator    port.CheckoutCreator
	successURL string
	cancelURL  string
	metrics    *observability.Metrics
	logger     *zap.Logger
}

func NewCheckoutService(creator port.CheckoutCreator, successURL, cancelURL string, metrics *observability.Metrics, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		creator:    creator,
		successURL: successURL,
		cancelURL:  cancelURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// CreateSession creates exactly one checkout session for the given user and
// price. Failures are never retried here: a retry could double-charge.
func (s *CheckoutService) CreateSession(ctx context.Context, userID, priceID string) (*domain.CheckoutSession, error) {
	ctx, span := checkoutTracer.Start(ctx, "CheckoutService.CreateSession")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("checkout_create", time.Since(start))
	}()

	intent := &domain.CheckoutIntent{
		UserID:     userID,
		PriceID:    priceID,
		SuccessURL: s.successURL,
		CancelURL:  s.cancelURL,
		Reference:  uuid.New().String(),
	}

	session, err := s.creator.CreateCheckoutSession(ctx, intent)
	if err != nil {
		s.metrics.IncrCheckoutSession("failed")
		s.metrics.IncrExternalError("stripe")
		s.logger.Warn("checkout session creation failed",
			zap.String("user_id", userID),
			zap.String("price_id", priceID),
			zap.Error(err),
		)
		return nil, err
	}

	s.metrics.IncrCheckoutSession("created")
	return session, nil
}
