package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boddenberg/credits-checkout-go/internal/config"
	"github.com/boddenberg/credits-checkout-go/internal/domain"
	"github.com/boddenberg/credits-checkout-go/internal/handler"
	"github.com/boddenberg/credits-checkout-go/internal/infra/cache"
	"github.com/boddenberg/credits-checkout-go/internal/infra/observability"
	"github.com/boddenberg/credits-checkout-go/internal/infra/resilience"
	"github.com/boddenberg/credits-checkout-go/internal/infra/stripe"
	"github.com/boddenberg/credits-checkout-go/internal/infra/supabase"
	"github.com/boddenberg/credits-checkout-go/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = godotenv.Load()

	// --- Config ---
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("supabase_url", cfg.SupabaseURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Duration("processing_delay", cfg.ProcessingDelay),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "credits-checkout")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	packageCache := cache.New[[]domain.CreditPackage](cfg.CacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("supabase")

	// --- Clients ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	supabaseClient := supabase.NewClient(
		httpClient,
		cfg.SupabaseURL,
		cfg.SupabaseAnonKey,
		cfg.SupabaseServiceKey,
		cb,
		resilienceCfg,
		logger,
	)
	stripeClient := stripe.NewClient(httpClient, cfg.StripeAPIURL, cfg.StripeSecretKey, logger)

	// --- Services ---
	contactSvc := service.NewContactService(cfg.ProcessingDelay, metrics, logger)
	checkoutSvc := service.NewCheckoutService(stripeClient, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL, metrics, logger)
	creditsSvc := service.NewCreditsService(supabaseClient, supabaseClient, packageCache, metrics, logger)

	// --- Router ---
	router := handler.NewRouter(
		contactSvc,
		checkoutSvc,
		creditsSvc,
		supabaseClient,
		handler.RouterConfig{
			AllowedOrigins: cfg.AllowedOrigins,
			JWTSecret:      cfg.SupabaseJWTSecret,
			Cookie:         cfg.Cookie,
		},
		metrics,
		logger,
	)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
