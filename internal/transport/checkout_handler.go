package transport

import (
	"encoding/json"
	"net/http"

	"joyeria-api/internal/domain"
	"joyeria-api/internal/middleware"
	"joyeria-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CheckoutFormRequest represents the payment form. Field checks happen in the
// service so the first failing field is reported alone, in form order.
type CheckoutFormRequest struct {
	PayerName      string `json:"payer_name"`
	CardNumber     string `json:"card_number"`
	DeliveryMethod string `json:"delivery_method"`
	Address        string `json:"address"`
}

// ConfirmRequest carries the single-use proposal token back
type ConfirmRequest struct {
	ProposalID string `json:"proposal_id" validate:"required"`
}

// ProposalResponse is the confirmation summary shown before an order is placed
type ProposalResponse struct {
	ProposalID     string  `json:"proposal_id"`
	Total          float64 `json:"total"`
	DisplayTotal   string  `json:"display_total"`
	DeliveryMethod string  `json:"delivery_method"`
	Address        string  `json:"address"`
}

// OrderResponse represents a persisted order
type OrderResponse struct {
	ID             string              `json:"id"`
	Items          []OrderItemResponse `json:"items"`
	Total          float64             `json:"total"`
	DisplayTotal   string              `json:"display_total"`
	DeliveryMethod string              `json:"delivery_method"`
	Address        string              `json:"address"`
	Rating         int                 `json:"rating"`
	Comment        string              `json:"comment,omitempty"`
	CreatedAt      string              `json:"created_at"`
}

// OrderItemResponse represents one order line item
type OrderItemResponse struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	DisplayPrice string  `json:"display_price"`
}

// CheckoutHandler handles HTTP requests for the two-phase checkout
type CheckoutHandler struct {
	checkout service.CheckoutService
	logger   *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkout service.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		logger:   logger,
	}
}

// RegisterRoutes registers checkout routes; all of them require an identity
func (h *CheckoutHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/checkout", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/", h.Propose)
		r.Post("/confirm", h.Confirm)
	})
}

// Propose handles the first checkout phase: validate the form and return a
// confirmation summary with a single-use token
func (h *CheckoutHandler) Propose(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithErrorCode(w, http.StatusUnauthorized, middleware.CodeAuthRequired, "sign in to continue", nil)
		return
	}

	var req CheckoutFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("Checkout decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	proposal, err := h.checkout.Propose(r.Context(), userID, service.CheckoutRequest{
		PayerName:      req.PayerName,
		CardNumber:     req.CardNumber,
		DeliveryMethod: domain.DeliveryMethod(req.DeliveryMethod),
		Address:        req.Address,
	})
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProposalResponse{
		ProposalID:     proposal.ID,
		Total:          proposal.Total,
		DisplayTotal:   domain.FormatAmount(proposal.Total),
		DeliveryMethod: string(proposal.DeliveryMethod),
		Address:        proposal.Address,
	})
}

// Confirm handles the second checkout phase: commit the proposed order
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithErrorCode(w, http.StatusUnauthorized, middleware.CodeAuthRequired, "sign in to continue", nil)
		return
	}

	var req ConfirmRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Confirm validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.checkout.Confirm(r.Context(), userID, req.ProposalID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, toOrderResponse(order))
}

func toOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID:    item.ProductID,
			Name:         item.Name,
			Price:        item.Price,
			DisplayPrice: domain.FormatAmount(item.Price),
		})
	}

	return OrderResponse{
		ID:             o.ID,
		Items:          items,
		Total:          o.Total,
		DisplayTotal:   o.DisplayTotal(),
		DeliveryMethod: string(o.DeliveryMethod),
		Address:        o.Address,
		Rating:         o.Rating,
		Comment:        o.Comment,
		CreatedAt:      o.DisplayDate(),
	}
}
