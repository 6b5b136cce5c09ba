package transport

import (
	"net/http"

	"joyeria-api/internal/middleware"
	"joyeria-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FeedbackRequest represents the rating/comment payload for an order. An
// omitted rating keeps the order's current one, so the comment can be edited
// on its own
type FeedbackRequest struct {
	Rating  int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment string `json:"comment"`
}

// HistoryResponse is the purchase history payload: past orders newest first,
// plus the customer's average over their nonzero ratings
type HistoryResponse struct {
	Orders        []OrderResponse `json:"orders"`
	AverageRating float64         `json:"average_rating"`
}

// HistoryHandler handles HTTP requests for purchase history and order feedback
type HistoryHandler struct {
	history service.HistoryService
	logger  *zap.Logger
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(history service.HistoryService, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		history: history,
		logger:  logger,
	}
}

// RegisterRoutes registers history routes; all of them require an identity
func (h *HistoryHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Patch("/{id}/feedback", h.SetFeedback)
	})
}

// List handles reading the identity's purchase history
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithErrorCode(w, http.StatusUnauthorized, middleware.CodeAuthRequired, "sign in to continue", nil)
		return
	}

	history, err := h.history.ListOrders(r.Context(), userID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	orders := make([]OrderResponse, 0, len(history.Orders))
	for _, order := range history.Orders {
		orders = append(orders, toOrderResponse(order))
	}

	middleware.RespondWithJSON(w, http.StatusOK, HistoryResponse{
		Orders:        orders,
		AverageRating: history.AverageRating,
	})
}

// SetFeedback handles rating an order, which fans the rating out to each
// purchased product's comments
func (h *HistoryHandler) SetFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithErrorCode(w, http.StatusUnauthorized, middleware.CodeAuthRequired, "sign in to continue", nil)
		return
	}

	orderID := chi.URLParam(r, "id")

	var req FeedbackRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Feedback validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.history.SetFeedback(r.Context(), userID, orderID, req.Rating, req.Comment); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "feedback recorded"})
}
