package service

import (
	"context"
	"time"

	"github.com/boddenberg/credits-checkout-go/internal/domain"
	"github.com/boddenberg/credits-checkout-go/internal/infra/observability"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var contactTracer = otel.Tracer("contact-service")

// ContactService turns validated submissions into processed contact records.
type ContactService struct {
	delay   time.Duration
	metrics *observability.Metrics
	logger  *zap.Logger
}

func NewContactService(delay time.Duration, metrics *observability.Metrics, logger *zap.Logger) *ContactService {
	return &ContactService{
		delay:   delay,
		metrics: metrics,
		logger:  logger,
	}
}

// Process applies the default message, simulates downstream processing for
// the configured delay, and stamps the submission. The delay is bounded by
// the request context so a cancelled client never holds a worker.
func (s *ContactService) Process(ctx context.Context, sub domain.ContactSubmission) (*domain.ContactData, error) {
	ctx, span := contactTracer.Start(ctx, "ContactService.Process")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("contact_process", time.Since(start))
	}()

	message := sub.Message
	if message == "" {
		message = domain.DefaultContactMessage
	}

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}

	data := &domain.ContactData{
		Name:      sub.Name,
		Email:     sub.Email,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	s.logger.Info("contact submission processed",
		zap.String("email", data.Email),
	)
	return data, nil
}
