package transport

import (
	"errors"
	"net/http"

	"joyeria-api/internal/middleware"
	"joyeria-api/internal/repository"
	"joyeria-api/internal/service"

	"go.uber.org/zap"
)

// respondServiceError maps the service error taxonomy to HTTP responses.
// Anything unrecognized is logged and reported as a 500; the process never
// dies on a request error.
func respondServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		middleware.RespondWithErrorCode(w, http.StatusBadRequest, middleware.CodeValidation, validationErr.Reason, map[string]interface{}{
			"field": validationErr.Field,
		})
		return
	}

	var fanoutErr *service.PartialFanoutError
	if errors.As(err, &fanoutErr) {
		// The primary write stood; only the per-product fan-out was partial.
		middleware.RespondWithErrorCode(w, http.StatusBadGateway, middleware.CodePartialFanout, "feedback saved but some product comments failed", map[string]interface{}{
			"order_id":        fanoutErr.OrderID,
			"failed_products": fanoutErr.FailedProducts,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrAuthRequired):
		middleware.RespondWithErrorCode(w, http.StatusUnauthorized, middleware.CodeAuthRequired, "sign in to continue", nil)
	case errors.Is(err, service.ErrSubmissionInFlight):
		middleware.RespondWithError(w, http.StatusConflict, "an order submission is already in progress")
	case errors.Is(err, service.ErrProposalNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "checkout proposal not found or expired")
	case errors.Is(err, repository.ErrProductNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, repository.ErrOrderNotFound):
		middleware.RespondWithError(w, http.StatusNotFound, "order not found")
	default:
		logger.Error("Request failed", zap.Error(err))
		middleware.RespondWithErrorCode(w, http.StatusInternalServerError, middleware.CodeProviderError, "internal server error", nil)
	}
}
