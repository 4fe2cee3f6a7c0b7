package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/boddenberg/credits-checkout-go/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// Shared helper functions
// ============================================================

type errorResponse struct {
	Error   string             `json:"error"`
	Details domain.FieldErrors `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeValidationError(w http.ResponseWriter, msg string, details domain.FieldErrors) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg, Details: details})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// handleServiceError maps domain errors to HTTP responses. Raw upstream
// error text goes to the log only, never to the client.
func handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var validation *domain.ErrValidation
	var unauthorized *domain.ErrUnauthorized
	var upstream *domain.ErrUpstream
	var circuitOpen *domain.ErrCircuitOpen
	var notFound *domain.ErrNotFound

	switch {
	case errors.As(err, &validation):
		logger.Debug("validation error", zap.String("error", err.Error()))
		writeValidationError(w, "Validation failed", validation.Fields)
	case errors.As(err, &unauthorized):
		logger.Warn("unauthorized", zap.String("error", err.Error()))
		writeError(w, http.StatusUnauthorized, unauthorized.Message)
	case errors.As(err, &circuitOpen):
		logger.Error("circuit breaker open", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	case errors.As(err, &upstream):
		logger.Error("upstream failure", zap.String("service", upstream.Service), zap.Error(err))
		writeError(w, http.StatusBadGateway, "upstream service error")
	case errors.As(err, &notFound):
		logger.Debug("not found", zap.String("error", err.Error()))
		writeError(w, http.StatusNotFound, err.Error())
	default:
		logger.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
