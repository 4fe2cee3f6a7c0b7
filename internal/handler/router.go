package handler

import (
	"net/http"
	"time"

	"github.com/boddenberg/credits-checkout-go/internal/config"
	"github.com/boddenberg/credits-checkout-go/internal/domain"
	"github.com/boddenberg/credits-checkout-go/internal/infra/observability"
	"github.com/boddenberg/credits-checkout-go/internal/port"
	"github.com/boddenberg/credits-checkout-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// RouterConfig carries the non-service knobs the router needs.
type RouterConfig struct {
	AllowedOrigins []string
	JWTSecret      string
	Cookie         config.CookieConfig
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(
	contactSvc *service.ContactService,
	checkoutSvc *service.CheckoutService,
	creditsSvc *service.CreditsService,
	sessions port.SessionVerifier,
	cfg RouterConfig,
	metrics *observability.Metrics,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.MetricsMiddleware(metrics))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Unknown routes and wrong methods answer in JSON like everything else.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(creditsSvc, logger))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {
		r.Use(SessionMiddleware(sessions, cfg.JWTSecret, cfg.Cookie, logger))

		r.Post("/contact", contactHandler(contactSvc, metrics, logger))
		r.Post("/checkout/session", checkoutSessionHandler(checkoutSvc, logger))
		r.Get("/packages", listPackagesHandler(creditsSvc, logger))
		r.Get("/credits/balance", creditBalanceHandler(creditsSvc, logger))
		r.Get("/credits/summary", creditsSummaryHandler(creditsSvc, logger))
		r.Get("/metrics/checkout", checkoutMetricsHandler(metrics))
	})

	return r
}

// ============================================================
// Métricas & Health
// ============================================================

func healthzHandler(creditsSvc *service.CreditsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "credits-api", Status: "healthy", LatencyMs: 0, LastChecked: now},
		}

		if creditsSvc != nil {
			start := time.Now()
			_, err := creditsSvc.ListPackages(ctx)
			latency := time.Since(start).Milliseconds()
			status := "healthy"
			if err != nil {
				status = "degraded"
				logger.Warn("healthz: supabase probe failed", zap.Error(err))
			}
			services = append(services, domain.ServiceHealth{
				Name: "supabase", Status: status, LatencyMs: latency, LastChecked: now,
			})
		}

		overallStatus := "healthy"
		for _, s := range services {
			if s.Status == "unhealthy" {
				overallStatus = "unhealthy"
				break
			}
			if s.Status == "degraded" {
				overallStatus = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overallStatus,
			Services: services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func checkoutMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetCheckoutSnapshot())
	}
}
