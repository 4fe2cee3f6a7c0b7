package handler

import (
	"encoding/json"
	"net/http"

	"github.com/boddenberg/credits-checkout-go/internal/domain"
	"github.com/boddenberg/credits-checkout-go/internal/service"
	"github.com/boddenberg/credits-checkout-go/internal/validation"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Checkout — POST /v1/checkout/session
// ============================================================

func checkoutSessionHandler(svc *service.CheckoutService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/checkout/session")
		defer span.End()

		// Auth is checked before the body is read: an anonymous caller
		// gets 401 even when the request is also missing a price ID.
		session := SessionFromContext(ctx)
		if session == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req domain.CheckoutSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, validation.MsgInvalidBody)
			return
		}
		if req.PriceID == "" {
			writeError(w, http.StatusBadRequest, validation.MsgPriceRequired)
			return
		}
		span.SetAttributes(
			attribute.String("user.id", session.UserID),
			attribute.String("price.id", req.PriceID),
		)

		checkout, err := svc.CreateSession(ctx, session.UserID, req.PriceID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, checkout)
	}
}
