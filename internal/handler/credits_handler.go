package handler

import (
	"net/http"

	"github.com/boddenberg/credits-checkout-go/internal/domain"
	"github.com/boddenberg/credits-checkout-go/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Credits — GET /v1/packages, /v1/credits/balance, /v1/credits/summary
// ============================================================

func listPackagesHandler(svc *service.CreditsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/packages")
		defer span.End()

		packages, err := svc.ListPackages(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if packages == nil {
			packages = []domain.CreditPackage{}
		}
		writeJSON(w, http.StatusOK, domain.PackagesResponse{Packages: packages})
	}
}

func creditBalanceHandler(svc *service.CreditsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/credits/balance")
		defer span.End()

		session := SessionFromContext(ctx)
		if session == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		span.SetAttributes(attribute.String("user.id", session.UserID))

		balance, err := svc.GetBalance(ctx, session.UserID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, balance)
	}
}

func creditsSummaryHandler(svc *service.CreditsService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/credits/summary")
		defer span.End()

		session := SessionFromContext(ctx)
		if session == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		span.SetAttributes(attribute.String("user.id", session.UserID))

		summary, err := svc.GetSummary(ctx, session.UserID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}
