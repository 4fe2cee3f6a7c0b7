package handler

import (
	"encoding/json"
	"net/http"

	"github.com/boddenberg/credits-checkout-go/internal/domain"
	"github.com/boddenberg/credits-checkout-go/internal/infra/observability"
	"github.com/boddenberg/credits-checkout-go/internal/service"
	"github.com/boddenberg/credits-checkout-go/internal/validation"

	"go.uber.org/zap"
)

// ============================================================
// Contact form — POST /v1/contact
// ============================================================

func contactHandler(svc *service.ContactService, metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/contact")
		defer span.End()

		// The payload is decoded loosely so type mismatches (e.g. a numeric
		// message) surface as field errors rather than a decode failure.
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			details := domain.FieldErrors{"body": {validation.MsgInvalidBody}}
			metrics.IncrValidationFailure(details)
			writeValidationError(w, validation.MsgValidationFail, details)
			return
		}

		result := validation.Contact(payload)
		if !result.Valid {
			metrics.IncrValidationFailure(result.Errors)
			writeValidationError(w, validation.MsgValidationFail, result.Errors)
			return
		}

		data, err := svc.Process(ctx, result.Data)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, domain.ContactResponse{
			Success: true,
			Data:    data,
		})
	}
}
