package service

import (
	"context"
	"errors"
	"time"

	"github.com/boddenberg/credits-checkout-go/internal/domain"
	"github.com/boddenberg/credits-checkout-go/internal/infra/observability"
	"github.com/boddenberg/credits-checkout-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var creditsTracer = otel.Tracer("credits-service")

const (
	packagesCacheKey   = "packages"
	recentPurchaseSize = 10
)

// CreditsService serves the credit package catalog and per-user balances.
type CreditsService struct {
	store    port.CreditsStore
	packages port.PackageStore
	cache    port.Cache[[]domain.CreditPackage]
	metrics  *observability.Metrics
	logger   *zap.Logger
}

func NewCreditsService(store port.CreditsStore, packages port.PackageStore, cache port.Cache[[]domain.CreditPackage], metrics *observability.Metrics, logger *zap.Logger) *CreditsService {
	return &CreditsService{
		store:    store,
		packages: packages,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
	}
}

// ListPackages returns the active credit packages, served from cache when
// fresh. The catalog changes rarely, so a stale-by-TTL read is acceptable.
func (s *CreditsService) ListPackages(ctx context.Context) ([]domain.CreditPackage, error) {
	ctx, span := creditsTracer.Start(ctx, "CreditsService.ListPackages")
	defer span.End()

	if cached, ok := s.cache.Get(packagesCacheKey); ok {
		s.metrics.IncrCacheHit(packagesCacheKey)
		return cached, nil
	}
	s.metrics.IncrCacheMiss(packagesCacheKey)

	packages, err := s.packages.ListCreditPackages(ctx)
	if err != nil {
		s.metrics.IncrExternalError("supabase")
		return nil, err
	}

	s.cache.Set(packagesCacheKey, packages)
	return packages, nil
}

// GetBalance returns the user's credit balance. Users without a balance row
// yet are reported as zero, not as an error.
func (s *CreditsService) GetBalance(ctx context.Context, userID string) (*domain.CreditBalance, error) {
	ctx, span := creditsTracer.Start(ctx, "CreditsService.GetBalance")
	defer span.End()

	balance, err := s.store.GetCreditBalance(ctx, userID)
	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			return &domain.CreditBalance{
				UserID:    userID,
				Balance:   0,
				UpdatedAt: time.Now().UTC(),
			}, nil
		}
		return nil, err
	}
	return balance, nil
}

// GetSummary fetches the balance and recent purchases concurrently.
func (s *CreditsService) GetSummary(ctx context.Context, userID string) (*domain.CreditsSummary, error) {
	ctx, span := creditsTracer.Start(ctx, "CreditsService.GetSummary")
	defer span.End()

	var (
		balance   *domain.CreditBalance
		purchases []domain.CreditPurchase
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.GetBalance(gctx, userID)
		if err != nil {
			return err
		}
		balance = b
		return nil
	})
	g.Go(func() error {
		p, err := s.store.ListCreditPurchases(gctx, userID, recentPurchaseSize)
		if err != nil {
			return err
		}
		purchases = p
		return nil
	})
	if err := g.Wait(); err != nil {
		s.metrics.IncrExternalError("supabase")
		s.logger.Warn("credits summary fetch failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	if purchases == nil {
		purchases = []domain.CreditPurchase{}
	}
	return &domain.CreditsSummary{
		Balance:         balance,
		RecentPurchases: purchases,
	}, nil
}
